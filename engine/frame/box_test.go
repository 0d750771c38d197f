package frame

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/stretchr/testify/assert"
)

func styled(decls map[string]string) *style.ComputedStyle {
	return style.Resolve(nil, decls, style.Environment{})
}

func TestBoxOwnership(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	root := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	a := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	b := NewTextBox("Hello", style.InitialStyle())
	assert.NoError(t, root.Add(a))
	assert.NoError(t, a.Add(b))
	assert.Equal(t, ErrNullChild, root.Add(nil))
	assert.Equal(t, ErrOwned, root.Add(b))
	assert.Equal(t, ErrCycle, a.Add(a))
	assert.Equal(t, ErrCycle, b.Add(root))
	assert.Same(t, a, b.Parent())
	assert.Equal(t, 1, root.ChildCount())
	ch, ok := root.Child(0)
	assert.True(t, ok)
	assert.Same(t, a, ch)
	_, ok = root.Child(1)
	assert.False(t, ok)
	assert.Equal(t, `text "Hello"`, b.String())
}

func TestSetGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	box := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	box.Margins = Edges{10 * dimen.PX, 10 * dimen.PX, 10 * dimen.PX, 10 * dimen.PX}
	box.Borders = Edges{dimen.PX, dimen.PX, dimen.PX, dimen.PX}
	box.Paddings = Edges{5 * dimen.PX, 0, 5 * dimen.PX, 0}
	box.SetGeometry(0, 0, 100*dimen.PX, 20*dimen.PX)
	assert.Equal(t, dimen.RectXYWH(10*dimen.PX, 10*dimen.PX, 102*dimen.PX, 32*dimen.PX), box.Border)
	assert.Equal(t, dimen.RectXYWH(11*dimen.PX, 16*dimen.PX, 100*dimen.PX, 20*dimen.PX), box.Content)
	assert.Equal(t, 122*dimen.PX, box.MarginBoxWidth())
	assert.True(t, box.Margin.Encloses(box.Border))
	assert.True(t, box.Border.Encloses(box.Padding))
	assert.True(t, box.Padding.Encloses(box.Content))
	//
	box.Margins[Left] = -20 * dimen.PX
	box.SetGeometry(0, 0, -5*dimen.PX, 0)
	assert.Equal(t, -20*dimen.PX, box.Border.X())
	assert.Equal(t, dimen.Dimen(0), box.Content.Width())
	assert.True(t, box.Margin.Encloses(box.Border))
}

func TestTranslate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	root := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	txt := NewTextBox("x", style.InitialStyle())
	_ = root.Add(txt)
	root.SetGeometry(0, 0, 50*dimen.PX, 10*dimen.PX)
	txt.Runs = append(txt.Runs, TextRun{Text: "x", Rect: dimen.RectXYWH(0, 0, 8*dimen.PX, 10*dimen.PX), Baseline: 8 * dimen.PX})
	root.Translate(5*dimen.PX, 7*dimen.PX)
	assert.Equal(t, 5*dimen.PX, root.Content.X())
	assert.Equal(t, 15*dimen.PX, txt.Runs[0].Baseline)
	assert.Equal(t, 7*dimen.PX, txt.Runs[0].Rect.Y())
}

func TestCollapseMargins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	assert.Equal(t, 20*dimen.PX, CollapseMargins(10*dimen.PX, 20*dimen.PX))
	assert.Equal(t, 10*dimen.PX, CollapseMargins(20*dimen.PX, -10*dimen.PX))
	assert.Equal(t, -15*dimen.PX, CollapseMargins(-5*dimen.PX, -15*dimen.PX))
	assert.Equal(t, dimen.Dimen(0), CollapseMargins())
}

func TestScrollState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	scroller := NewAnonymousBox(BlockBox, styled(map[string]string{"overflow-y": "scroll"}))
	assert.True(t, scroller.IsScrollContainer())
	inner := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	_ = scroller.Add(inner)
	scroller.SetGeometry(0, 0, 100*dimen.PX, 50*dimen.PX)
	inner.SetGeometry(0, 0, 100*dimen.PX, 200*dimen.PX)
	scroller.UpdateScrollExtent()
	s := scroller.ScrollState()
	assert.Equal(t, 150*dimen.PX, s.MaxY)
	s.ScrollBy(0, 500*dimen.PX)
	assert.Equal(t, 150*dimen.PX, s.Y)
	s.ScrollBy(0, -1000*dimen.PX)
	assert.Equal(t, dimen.Dimen(0), s.Y)
	assert.Nil(t, inner.ScrollState())
}

func TestHitTest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	root := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	root.SetGeometry(0, 0, 200*dimen.PX, 200*dimen.PX)
	a := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	a.SetGeometry(0, 0, 100*dimen.PX, 100*dimen.PX)
	top := NewAnonymousBox(BlockBox, styled(map[string]string{"position": "relative", "z-index": "5"}))
	top.SetGeometry(50*dimen.PX, 50*dimen.PX, 100*dimen.PX, 100*dimen.PX)
	b := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	b.SetGeometry(50*dimen.PX, 50*dimen.PX, 100*dimen.PX, 100*dimen.PX)
	_ = root.Add(a)
	_ = root.Add(top)
	_ = root.Add(b)
	assert.Same(t, a, HitTest(root, dimen.Point{X: 10 * dimen.PX, Y: 10 * dimen.PX}))
	// top is later in paint order than b, although b comes later in the document
	assert.Same(t, top, HitTest(root, dimen.Point{X: 60 * dimen.PX, Y: 60 * dimen.PX}))
	assert.Same(t, root, HitTest(root, dimen.Point{X: 190 * dimen.PX, Y: 10 * dimen.PX}))
	assert.Nil(t, HitTest(root, dimen.Point{X: 300 * dimen.PX, Y: 10 * dimen.PX}))
	assert.Nil(t, HitTest(nil, dimen.Origin))
}

func TestHitTestScrolled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.frame")
	defer teardown()
	//
	scroller := NewAnonymousBox(BlockBox, styled(map[string]string{"overflow-x": "hidden", "overflow-y": "hidden"}))
	scroller.SetGeometry(0, 0, 100*dimen.PX, 100*dimen.PX)
	first := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	first.SetGeometry(0, 0, 100*dimen.PX, 100*dimen.PX)
	second := NewAnonymousBox(AnonymousBlock, style.InitialStyle())
	second.SetGeometry(0, 100*dimen.PX, 100*dimen.PX, 100*dimen.PX)
	_ = scroller.Add(first)
	_ = scroller.Add(second)
	scroller.UpdateScrollExtent()
	p := dimen.Point{X: 10 * dimen.PX, Y: 10 * dimen.PX}
	assert.Same(t, first, HitTest(scroller, p))
	scroller.ScrollState().ScrollTo(0, 100*dimen.PX)
	assert.Same(t, second, HitTest(scroller, p))
	// clipped content is not hit
	assert.Nil(t, HitTest(scroller, dimen.Point{X: 10 * dimen.PX, Y: 150 * dimen.PX}))
}
