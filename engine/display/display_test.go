package display_test

import (
	"image/color"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/display"
	"github.com/npillmayer/tambo/engine/dom/cascade"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/engine/dom/selector"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/npillmayer/tambo/engine/frame/boxtree"
	"github.com/npillmayer/tambo/engine/frame/layout"
	"github.com/npillmayer/tambo/engine/resources"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAdvancer struct{}

func (fixedAdvancer) Advance(s string, font text.FontSpec) dimen.Dimen {
	return dimen.Dimen(utf8.RuneCountInString(s)) * 8 * dimen.PX
}

func (fixedAdvancer) Metrics(font text.FontSpec) (dimen.Dimen, dimen.Dimen) {
	return 12 * dimen.PX, 4 * dimen.PX
}

func px(n int) dimen.Dimen {
	return dimen.Dimen(n) * dimen.PX
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// render lays out markup in an 800px wide viewport and returns the root
// box.
func render(t *testing.T, body string) *frame.Box {
	markup := `<html><head><style>body { margin: 0 }</style></head><body>` + body + `</body></html>`
	doc, err := html.ParseString(markup)
	require.NoError(t, err)
	idx := selector.NewIndex()
	next := 0
	for _, src := range doc.StyleSheets() {
		var ss *cssom.StyleSheet
		ss, next, err = cssom.ParseStyleSheet(src, cssom.Author, next)
		require.NoError(t, err)
		idx.AddSheet(ss)
	}
	sn, err := cascade.New(idx, config.Default()).Cascade(doc.Root())
	require.NoError(t, err)
	root, err := boxtree.BuildBoxTree(sn)
	require.NoError(t, err)
	env := &layout.Env{
		Measurer: text.NewMeasurer(fixedAdvancer{}),
		Images:   resources.Static{"a.png": {Width: 100, Height: 50}},
		Viewport: dimen.Point{X: px(800), Y: px(600)},
	}
	require.NoError(t, layout.NewLayouter(env).Layout(root))
	return root
}

func ops(list display.List) []display.Op {
	var o []display.Op
	for _, cmd := range list {
		o = append(o, cmd.Op())
	}
	return o
}

func rects(list display.List) []display.SolidRect {
	var r []display.SolidRect
	for _, cmd := range list {
		if sr, ok := cmd.(display.SolidRect); ok {
			r = append(r, sr)
		}
	}
	return r
}

func TestVerify(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	assert.NoError(t, display.Verify(display.List{display.PushClip{}, display.SolidRect{}, display.PopClip{}}))
	err := display.Verify(display.List{display.PopClip{}})
	assert.ErrorIs(t, err, display.ErrUnbalancedClips)
	assert.Equal(t, core.EINTERNAL, core.Code(err))
	assert.ErrorIs(t, display.Verify(display.List{display.PushClip{}}), display.ErrUnbalancedClips)
}

func TestBackgroundAndBorder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<div style="background-color:red;border:2px solid blue;width:10px;height:10px"></div>`)
	list := display.Generate(root, dimen.Origin)
	require.Equal(t, []display.Op{display.OpSolidRect, display.OpBorder}, ops(list))
	bg := list[0].(display.SolidRect)
	assert.Equal(t, dimen.RectXYWH(0, 0, px(14), px(14)), bg.Rect)
	assert.Equal(t, red, bg.Color)
	border := list[1].(display.Border)
	assert.Equal(t, bg.Rect, border.Rect)
	assert.Equal(t, [4]dimen.Dimen{px(2), px(2), px(2), px(2)}, border.Widths)
	assert.Equal(t, blue, border.Colors[frame.Left])
}

func TestStackingOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<div style="position:relative;z-index:2;background-color:red;height:10px"></div>`+
		`<div style="position:relative;z-index:-1;background-color:blue;height:10px"></div>`+
		`<div style="background-color:green;height:10px"></div>`)
	r := rects(display.Generate(root, dimen.Origin))
	require.Len(t, r, 3)
	assert.Equal(t, blue, r[0].Color, "negative z-index paints below the flow")
	assert.Equal(t, px(20), r[1].Rect.TopL.Y)
	assert.Equal(t, red, r[2].Color, "positive z-index paints above the flow")
}

func TestClipBalance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<div style="overflow:hidden;height:10px">`+
		`<div style="height:50px;background-color:red"></div>`+
		`<div style="position:relative;z-index:1;background-color:blue;height:5px"></div></div>`)
	list := display.Generate(root, dimen.Origin)
	require.NoError(t, display.Verify(list))
	assert.Equal(t, []display.Op{
		display.OpPushClip, display.OpSolidRect, display.OpPopClip,
		display.OpPushClip, display.OpSolidRect, display.OpPopClip,
	}, ops(list), "out-of-flow context re-establishes the clip of its ancestor")
	clip := list[0].(display.PushClip)
	assert.Equal(t, dimen.RectXYWH(0, 0, px(800), px(10)), clip.Rect)
	assert.Equal(t, clip, list[3])
}

func TestScrollOffsets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<div style="height:10px;background-color:blue"></div>`+
		`<div style="overflow:scroll;height:20px"><div style="height:100px;background-color:red"></div></div>`)
	scroller := root.Find("body")
	require.NotNil(t, scroller)
	scroller = scroller.Children()[1]
	scroller.ScrollState().ScrollTo(0, px(30))
	r := rects(display.Generate(root, dimen.Point{Y: px(5)}))
	require.Len(t, r, 2)
	assert.Equal(t, px(-5), r[0].Rect.TopL.Y, "viewport scroll")
	assert.Equal(t, px(10-5-30), r[1].Rect.TopL.Y, "viewport and container scroll")
}

func TestTextRuns(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<div style="color:red;text-decoration:underline">ab</div>`)
	list := display.Generate(root, dimen.Origin)
	require.Equal(t, []display.Op{display.OpTextRun, display.OpSolidRect}, ops(list))
	run := list[0].(display.TextRun)
	assert.Equal(t, "ab", run.Text)
	assert.Equal(t, dimen.Point{X: 0, Y: px(12)}, run.Origin)
	assert.Equal(t, px(16), run.Width)
	assert.Equal(t, red, run.Color)
	underline := list[1].(display.SolidRect)
	assert.Equal(t, dimen.RectXYWH(0, px(13), px(16), px(1)), underline.Rect)
}

func TestVisibilityAndOpacity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<div style="visibility:hidden;background-color:red;height:5px">`+
		`<div style="visibility:visible;background-color:blue;height:5px"></div></div>`+
		`<div style="opacity:0.5;background-color:red;height:5px"></div>`)
	r := rects(display.Generate(root, dimen.Origin))
	require.Len(t, r, 2)
	assert.Equal(t, blue, r[0].Color, "hidden parent does not hide visible child")
	assert.Equal(t, color.RGBA{R: 128, A: 128}, r[1].Color)
}

func TestImages(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	root := render(t, `<img src="a.png">`)
	list := display.Generate(root, dimen.Origin)
	require.Equal(t, 1, list.Count(display.OpImage))
	img := list[0].(display.Image)
	assert.Equal(t, "a.png", img.Handle)
	assert.Equal(t, px(100), img.Rect.Width())
	assert.Equal(t, px(50), img.Rect.Height())
	assert.False(t, img.Pending)
}

func TestGenerateNil(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.display")
	defer teardown()
	//
	assert.Empty(t, display.Generate(nil, dimen.Origin))
}
