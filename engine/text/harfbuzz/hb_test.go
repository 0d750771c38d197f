package harfbuzz

import (
	"fmt"
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/core/font"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/tambo/engine/text/opentype"
	"github.com/npillmayer/uax/bidi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestHBScript(t *testing.T) {
	id := "Plrd"
	script := language.MustParseScript(id)
	hbScript := Script4HB(script)
	hstr := fmt.Sprintf("%x", uint32(hbScript))
	if hstr != "706c7264" {
		t.Logf("script %q: %x => %x", id, script, uint32(hbScript))
		t.Errorf("expected HB script of 706c7264, is %s", hstr)
	}
}

func TestHBLang(t *testing.T) {
	langT, err := language.Parse("de_DE")
	if err != nil {
		t.Error(err)
	}
	h := Lang4HB(langT)
	if h != "de-de" {
		t.Logf("Go lang = %v", langT)
		t.Logf("HB lang = %v, expected de-de", h)
		t.Fail()
	}
}

func TestHBDir(t *testing.T) {
	assert.Equal(t, hb.RightToLeft, Direction4HB(bidi.RightToLeft))
	assert.Equal(t, hb.LeftToRight, Direction4HB(bidi.LeftToRight))
}

func TestShapedAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.text")
	defer teardown()
	//
	reg := font.NewRegistry()
	fs := text.FontSpec{Families: []string{"sans-serif"}, Size: 16 * dimen.PX, Weight: 400}
	shaped := NewAdvancer(reg, language.English).Advance("Hello", fs)
	plain := opentype.NewAdvancer(reg).Advance("Hello", fs)
	require.Greater(t, int64(shaped), int64(0))
	assert.InDelta(t, float64(plain), float64(shaped), float64(2*dimen.PX),
		"without kerning pairs, shaped and plain advances agree")
	//
	m := Measurer(reg, language.English)
	frags := m.Measure("Hello World", fs, 0)
	require.Len(t, frags, 2)
	assert.Greater(t, int64(frags[0].Trailing), int64(0))
}
