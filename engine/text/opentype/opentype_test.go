package opentype

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/core/font"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func TestFromFixed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	assert.Equal(t, 10*dimen.PX, FromFixed(fixed.I(10)))
	assert.Equal(t, dimen.PX/2, FromFixed(fixed.Int26_6(32)))
}

func TestFallbackMeasurement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	m := Measurer(font.NewRegistry())
	fs := text.FontSpec{Families: []string{"sans-serif"}, Size: 16 * dimen.PX, Weight: 400}
	frags := m.Measure("Hello World", fs, 0)
	require.Len(t, frags, 2)
	assert.Greater(t, int64(frags[0].Width), int64(frags[0].Trailing))
	assert.Greater(t, int64(frags[0].Trailing), int64(0))
	asc, desc := m.Metrics(fs)
	assert.Greater(t, int64(asc), int64(desc))
	double := m.Measure("Hello", text.FontSpec{Families: []string{"sans-serif"}, Size: 32 * dimen.PX}, 0)
	single := m.Measure("Hello", fs, 0)
	assert.InDelta(t, float64(2*single[0].Width), float64(double[0].Width), float64(dimen.PX))
}
