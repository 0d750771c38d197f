package monospace

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonospaceFragments(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	m := Measurer(10*dimen.PX, nil)
	frags := m.Measure("Hello World", text.FontSpec{Size: 16 * dimen.PX}, 0)
	require.Len(t, frags, 2)
	assert.Equal(t, "Hello ", frags[0].Text)
	assert.Equal(t, 60*dimen.PX, frags[0].Width)
	assert.Equal(t, 10*dimen.PX, frags[0].Trailing)
	assert.Equal(t, 50*dimen.PX, frags[1].Width)
	assert.Equal(t, dimen.Dimen(0), frags[1].Trailing)
	assert.Equal(t, (16 * dimen.PX).Scale(0.8), frags[1].Ascent)
}

func TestMonospaceWideAndForced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	m := Measurer(10*dimen.PX, nil)
	frags := m.Measure("ab\ncd", text.FontSpec{Size: 16 * dimen.PX}, 0)
	require.Len(t, frags, 2)
	assert.True(t, frags[0].ForcedBreak)
	assert.Equal(t, "ab", frags[0].Text)
	assert.Equal(t, 20*dimen.PX, frags[0].Width)
	//
	w := text.Width(m.Measure("日本", text.FontSpec{Size: 16 * dimen.PX}, 0))
	assert.Equal(t, 40*dimen.PX, w, "wide characters take two cells")
}

func TestEmergencyBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	m := Measurer(10*dimen.PX, nil)
	frags := m.Measure("abcdefgh", text.FontSpec{Size: 16 * dimen.PX}, 30*dimen.PX)
	require.Len(t, frags, 3)
	assert.Equal(t, "abc", frags[0].Text)
	assert.Equal(t, "gh", frags[2].Text)
	assert.Len(t, m.Measure("abcdefgh", text.FontSpec{}, 0), 1)
}

func TestCache(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	c := text.NewCache(Measurer(10*dimen.PX, nil), 2)
	font := text.FontSpec{Families: []string{"mono"}, Size: 12 * dimen.PX}
	first := c.Measure("one two", font, 0)
	again := c.Measure("one two", font, 0)
	assert.Equal(t, first, again)
	hits, misses := c.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
	c.Measure("three", font, 0)
	c.Measure("four", font, 0)
	assert.Equal(t, 2, c.Len(), "oldest entry evicted")
	c.Measure("one two", font, 0)
	_, misses = c.Stats()
	assert.Equal(t, 4, misses)
}
