package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestParseDimen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.core")
	defer teardown()
	//
	d, _, err := ParseDimen("12px")
	assert.NoError(t, err)
	assert.Equal(t, 12*PX, d)
	//
	d, _, err = ParseDimen("0")
	assert.NoError(t, err)
	assert.Equal(t, Zero, d)
	//
	d, ispcnt, err := ParseDimen("20%")
	assert.NoError(t, err)
	assert.True(t, ispcnt)
	assert.Equal(t, 20*PX, d)
	//
	d, _, err = ParseDimen("1.5in")
	assert.NoError(t, err)
	assert.Equal(t, 144*PX, d)
	//
	d, _, err = ParseDimen("12pt")
	assert.NoError(t, err)
	assert.Equal(t, 16*PX, d)
	//
	_, _, err = ParseDimen("12em")
	assert.Error(t, err)
	_, _, err = ParseDimen("px")
	assert.Error(t, err)
}

func TestRectOperations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.core")
	defer teardown()
	//
	r := RectXYWH(10*PX, 10*PX, 100*PX, 50*PX)
	assert.Equal(t, 100*PX, r.Width())
	assert.True(t, r.Contains(Point{10 * PX, 10 * PX}))
	assert.False(t, r.Contains(Point{110 * PX, 10 * PX}))
	inner := r.Inset(5*PX, 5*PX, 5*PX, 5*PX)
	assert.True(t, r.Encloses(inner))
	assert.Equal(t, 90*PX, inner.Width())
	// inset beyond extent clamps to zero
	tiny := r.Inset(40*PX, 0, 40*PX, 0)
	assert.Equal(t, Zero, tiny.Height())
	moved := r.Translate(5*PX, -10*PX)
	assert.Equal(t, Point{15 * PX, 0}, moved.TopL)
	u := r.Union(RectXYWH(0, 0, 5*PX, 5*PX))
	assert.Equal(t, Origin, u.TopL)
	assert.Equal(t, Point{110 * PX, 60 * PX}, u.BotR)
	assert.Equal(t, r, r.Union(Rect{}))
}

func TestFromFloatSaturates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.core")
	defer teardown()
	//
	assert.Equal(t, Dimen(Infinity), FromFloat(1e12, PX))
	assert.Equal(t, 3*PX/2, FromFloat(1.5, PX))
	assert.Equal(t, 5*PX, Clamp(3*PX, 5*PX, 10*PX))
}
