package layout_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/stretchr/testify/assert"
)

func TestGridTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:grid;grid-template-columns:100px 1fr;width:300px">`+
		`<div style="height:20px"></div><div></div><div style="height:10px"></div></div>`)
	grid := child(t, body, 0)
	a, b, c := child(t, grid, 0), child(t, grid, 1), child(t, grid, 2)
	assert.Equal(t, frame.GridItem, a.Type)
	assert.Equal(t, px(100), a.Border.Width())
	assert.Equal(t, dimen.Point{X: px(100), Y: 0}, offset(b, grid))
	assert.Equal(t, px(200), b.Border.Width(), "fr track takes the free space")
	assert.Equal(t, px(20), b.Border.Height(), "items stretch to their row")
	assert.Equal(t, dimen.Point{X: 0, Y: px(20)}, offset(c, grid))
	assert.Equal(t, px(30), grid.Content.Height())
}

func TestGridLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:grid;grid-template-columns:50px 50px 50px">`+
		`<div style="grid-column-start:2;grid-column-end:span 2;height:10px"></div><div></div></div>`+
		`<div style="display:grid;grid-template-columns:50px 50px 50px">`+
		`<div style="grid-column-start:-2"></div></div>`+
		`<div style="display:grid;grid-template-columns:50px 50px 50px;grid-template-rows:10px 10px">`+
		`<div style="grid-row-start:2"></div><div></div></div>`)
	spans := child(t, body, 0)
	wide := child(t, spans, 0)
	assert.Equal(t, px(50), offset(wide, spans).X)
	assert.Equal(t, px(100), wide.Border.Width())
	assert.Equal(t, dimen.Point{X: 0, Y: px(10)}, offset(child(t, spans, 1), spans),
		"auto cursor continues behind the spanning item")
	negative := child(t, body, 1)
	assert.Equal(t, px(100), offset(child(t, negative, 0), negative).X)
	rows := child(t, body, 2)
	assert.Equal(t, dimen.Point{X: 0, Y: px(10)}, offset(child(t, rows, 0), rows))
	assert.Equal(t, dimen.Point{X: 0, Y: 0}, offset(child(t, rows, 1), rows))
}

func TestGridGapsAndColumnFlow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.layout")
	defer teardown()
	//
	body := layoutBody(t, `<div style="display:grid;grid-template-columns:50px 50px;column-gap:10px;row-gap:5px">`+
		`<div style="height:10px"></div><div></div><div></div></div>`+
		`<div style="display:grid;grid-auto-flow:column;grid-template-rows:10px 10px;width:300px">`+
		`<div></div><div></div><div></div></div>`)
	gapped := child(t, body, 0)
	assert.Equal(t, px(60), offset(child(t, gapped, 1), gapped).X)
	assert.Equal(t, dimen.Point{X: 0, Y: px(15)}, offset(child(t, gapped, 2), gapped))
	flow := child(t, body, 1)
	assert.Equal(t, dimen.Point{X: 0, Y: px(10)}, offset(child(t, flow, 1), flow))
	assert.Equal(t, dimen.Point{X: px(150), Y: 0}, offset(child(t, flow, 2), flow),
		"auto columns share the free space")
}
