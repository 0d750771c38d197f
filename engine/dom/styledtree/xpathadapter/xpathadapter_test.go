package xpathadapter

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/dom/cascade"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var markup = `<html><body>
<div id="a"><p class="x">one</p><p>two</p></div>
<p id="last">three</p>
</body></html>`

func styled(t *testing.T) *styledtree.StyNode {
	doc, err := html.ParseString(markup)
	require.NoError(t, err)
	root, err := cascade.New(nil, config.Default()).Cascade(doc.Root())
	require.NoError(t, err)
	return root
}

func TestSelect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	root := styled(t)
	nodes, err := Select(root, "//p")
	require.NoError(t, err)
	assert.Len(t, nodes, 3)
	nodes, err = Select(root, "/html/body/div/p[2]")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "two", styledtree.TextOf(nodes[0]))
	nodes, err = Select(root, "//p[@class='x']/following-sibling::p")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "two", styledtree.TextOf(nodes[0]))
	nodes, err = Select(root, "//*[@id]")
	require.NoError(t, err)
	assert.Len(t, nodes, 2)
	_, err = Select(root, "//p[")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	root := styled(t)
	v, err := Evaluate(root, "count(//p)")
	require.NoError(t, err)
	assert.Equal(t, float64(3), v)
	v, err = Evaluate(root, "string(//p[@id='last'])")
	require.NoError(t, err)
	assert.Equal(t, "three", v)
}
