package framedebug

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/display"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTree(t *testing.T) *frame.Box {
	root := frame.NewAnonymousBox(frame.AnonymousBlock, style.InitialStyle())
	txt := frame.NewTextBox("Hello\tWorld, and more", root.Style)
	require.NoError(t, root.Add(txt))
	root.SetGeometry(0, 0, 100*dimen.PX, 20*dimen.PX)
	return root
}

func TestDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	var b strings.Builder
	require.NoError(t, Dump(&b, smallTree(t)))
	out := b.String()
	assert.Contains(t, out, "anon-block")
	assert.Contains(t, out, "content=")
	assert.Equal(t, 6, strings.Count(out, "\n"), "three lines per box")
	b.Reset()
	require.NoError(t, Dump(&b, nil))
	assert.Equal(t, "<empty box tree>\n", b.String())
}

func TestDumpDisplayList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	list := display.List{
		display.PushClip{Rect: dimen.RectXYWH(0, 0, dimen.PX, dimen.PX)},
		display.SolidRect{},
		display.PopClip{},
	}
	var b strings.Builder
	require.NoError(t, DumpDisplayList(&b, list))
	assert.Contains(t, b.String(), "3 commands")
	assert.Contains(t, b.String(), "\n  solid-rect", "commands are indented by clip depth")
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	var b strings.Builder
	require.NoError(t, ToGraphViz(smallTree(t), &b))
	dot := b.String()
	assert.True(t, strings.HasPrefix(dot, "digraph g {"))
	assert.Contains(t, dot, "node00001 -> node00002")
	assert.Contains(t, dot, "Hello\\\\tWorl…")
	assert.True(t, strings.HasSuffix(dot, "}\n"))
}
