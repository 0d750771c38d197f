package layout_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/stretchr/testify/assert"
)

func TestFlexGrow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;width:300px">`+
		`<div style="flex-grow:1"></div><div style="width:100px;height:40px"></div></div>`)
	flex := child(t, body, 0)
	a, b := child(t, flex, 0), child(t, flex, 1)
	assert.Equal(t, frame.FlexItem, a.Type)
	assert.Equal(t, px(200), a.Border.Width())
	assert.Equal(t, dimen.Point{X: px(200), Y: 0}, offset(b, flex))
	assert.Equal(t, px(40), a.Border.Height(), "items stretch to the line's cross size")
	assert.Equal(t, px(40), flex.Content.Height())
}

func TestFlexShrink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;width:200px">`+
		`<div style="width:150px"></div><div style="width:150px"></div></div>`+
		`<div style="display:flex;width:200px">`+
		`<div style="width:150px;flex-shrink:0"></div><div style="width:150px;min-width:80px"></div></div>`)
	even := child(t, body, 0)
	assert.Equal(t, px(100), child(t, even, 0).Border.Width())
	assert.Equal(t, px(100), child(t, even, 1).Border.Width())
	frozen := child(t, body, 1)
	assert.Equal(t, px(150), child(t, frozen, 0).Border.Width())
	assert.Equal(t, px(80), child(t, frozen, 1).Border.Width(), "min-width clamps shrinking")
}

func TestFlexJustifyAndOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;width:300px;justify-content:center">`+
		`<div style="width:100px"></div></div>`+
		`<div style="display:flex;width:300px;flex-direction:row-reverse"><div style="width:100px"></div></div>`+
		`<div style="display:flex;width:300px"><div style="order:2;width:10px"></div>`+
		`<div style="order:1;width:20px"></div></div>`+
		`<div style="display:flex;width:300px;justify-content:space-between">`+
		`<div style="width:100px"></div><div style="width:100px"></div></div>`)
	centered := child(t, body, 0)
	assert.Equal(t, px(100), offset(child(t, centered, 0), centered).X)
	reversed := child(t, body, 1)
	assert.Equal(t, px(200), offset(child(t, reversed, 0), reversed).X)
	ordered := child(t, body, 2)
	assert.Equal(t, px(20), offset(child(t, ordered, 0), ordered).X)
	assert.Equal(t, dimen.Zero, offset(child(t, ordered, 1), ordered).X)
	between := child(t, body, 3)
	assert.Equal(t, px(200), offset(child(t, between, 1), between).X)
}

func TestFlexWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;flex-wrap:wrap;width:250px">`+
		`<div style="width:100px;height:10px"></div><div style="width:100px;height:10px"></div>`+
		`<div style="width:100px;height:10px"></div></div>`)
	flex := child(t, body, 0)
	assert.Equal(t, dimen.Point{X: px(100), Y: 0}, offset(child(t, flex, 1), flex))
	assert.Equal(t, dimen.Point{X: 0, Y: px(10)}, offset(child(t, flex, 2), flex))
	assert.Equal(t, px(20), flex.Content.Height())
}

func TestFlexColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;flex-direction:column;width:100px">`+
		`<div style="height:20px"></div><div style="height:30px"></div></div>`+
		`<div style="display:flex;flex-direction:column;height:100px">`+
		`<div style="height:20px"></div><div style="flex-grow:1"></div></div>`)
	col := child(t, body, 0)
	second := child(t, col, 1)
	assert.Equal(t, dimen.Point{X: 0, Y: px(20)}, offset(second, col))
	assert.Equal(t, px(100), second.Border.Width(), "column items stretch horizontally")
	assert.Equal(t, px(50), col.Content.Height())
	grown := child(t, child(t, body, 1), 1)
	assert.Equal(t, px(80), grown.Border.Height())
}

func TestFlexAlignItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;width:300px;height:100px;align-items:center">`+
		`<div style="width:10px;height:20px"></div><div style="width:10px;height:40px;align-self:flex-end"></div></div>`)
	flex := child(t, body, 0)
	assert.Equal(t, px(40), offset(child(t, flex, 0), flex).Y)
	assert.Equal(t, px(60), offset(child(t, flex, 1), flex).Y)
}

func TestFlexTextItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:flex;width:300px">abc<span>de</span></div>`)
	flex := child(t, body, 0)
	anon := child(t, flex, 0)
	assert.Equal(t, frame.FlexItem, anon.Type)
	assert.Equal(t, px(24), anon.Border.Width(), "anonymous item is as wide as its text")
	assert.Equal(t, px(24), offset(child(t, flex, 1), flex).X)
	assert.Equal(t, px(16), flex.Content.Height())
}
