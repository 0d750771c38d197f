package layout_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineBreaking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p style="width:100px">aaaa bbbb cccc</p>`)
	p := body.Find("p")
	require.NotNil(t, p)
	txt := child(t, p, 0)
	require.Len(t, txt.Runs, 3)
	assert.Equal(t, "aaaa ", txt.Runs[0].Text)
	assert.Equal(t, p.Content.TopL, txt.Runs[0].Rect.TopL)
	assert.Equal(t, px(40), txt.Runs[1].Rect.TopL.X-p.Content.TopL.X)
	assert.Equal(t, p.Content.TopL.X, txt.Runs[2].Rect.TopL.X, "third word wraps")
	assert.Equal(t, px(16), txt.Runs[2].Rect.TopL.Y-p.Content.TopL.Y)
	assert.Equal(t, px(32), p.Content.Height())
	assert.Equal(t, txt.Runs[0].Rect.TopL.Y+px(12), txt.Runs[0].Baseline)
}

func TestForcedBreaksAndNoWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p>a<br>b</p><p style="width:20px;white-space:nowrap">aaa bbb</p>`+
		`<pre>x
y</pre>`)
	p1, p2 := child(t, body, 0), child(t, body, 1)
	assert.Equal(t, px(32), p1.Content.Height())
	assert.Equal(t, px(16), p2.Content.Height())
	assert.Equal(t, px(32), body.Find("pre").Content.Height())
}

func TestEmergencyBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p style="width:20px">aaaaaa</p>`)
	p := body.Find("p")
	assert.Equal(t, px(48), p.Content.Height())
	assert.Len(t, child(t, p, 0).Runs, 3)
}

func TestTextAlign(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p style="width:100px;text-align:center">ab</p>`+
		`<p style="width:100px;text-align:right">ab </p>`+
		`<p style="width:100px;direction:rtl">ab</p>`)
	for i, want := range []int{42, 84, 84} {
		p := child(t, body, i)
		run := child(t, p, 0).Runs[0]
		assert.Equal(t, px(want), run.Rect.TopL.X-p.Content.TopL.X, "paragraph #%d", i)
	}
}

func TestLineHeight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p style="line-height:30px">x</p>`)
	p := body.Find("p")
	assert.Equal(t, px(30), p.Content.Height())
	run := child(t, p, 0).Runs[0]
	assert.Equal(t, px(7), run.Rect.TopL.Y-p.Content.TopL.Y, "half-leading above the glyphs")
}

func TestInlineBoxGeometry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p style="width:400px">ab <span style="padding-left:4px;padding-right:4px">cd</span></p>`)
	p := body.Find("p")
	span := p.Find("span")
	require.NotNil(t, span)
	assert.Equal(t, frame.InlineBox, span.Type)
	assert.Equal(t, px(24), span.Border.TopL.X-p.Content.TopL.X)
	assert.Equal(t, px(24), span.Border.Width())
	cd := child(t, span, 0)
	require.Len(t, cd.Runs, 1)
	assert.Equal(t, px(28), cd.Runs[0].Rect.TopL.X-p.Content.TopL.X)
	assert.Equal(t, cd.Runs[0].Rect, cd.Border, "text box encloses its runs")
}

func TestInlineBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<p style="width:400px">ab<span style="display:inline-block;width:50px;height:40px"></span></p>`)
	p := body.Find("p")
	ib := p.Find("span")
	require.NotNil(t, ib)
	assert.Equal(t, frame.InlineBlockBox, ib.Type)
	assert.Equal(t, dimen.Point{X: px(16), Y: 0}, offset(ib, p))
	assert.Equal(t, px(44), p.Content.Height(), "inline-block sits on the baseline")
}

func TestShrinkToFit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div><span style="display:inline-block">aaa bb</span></div>`+
		`<div style="width:10px"><span style="display:inline-block">aaa bb</span></div>`)
	wide := child(t, body, 0).Find("span")
	assert.Equal(t, px(48), wide.Border.Width(), "max-content width")
	narrow := child(t, body, 1).Find("span")
	assert.Equal(t, px(24), narrow.Border.Width(), "min-content width")
}
