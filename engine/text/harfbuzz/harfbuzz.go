/*
Package harfbuzz measures text with advances of shaped glyphs.

Shaping is done by a Go port of HarfBuzz (github.com/benoitkugler/textlayout).
Shaped advances respect kerning and ligatures, which the plain x/image
advances of package opentype do not. Fonts are resolved through a font
registry, as for package opentype.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"sync"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/core/font"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/tambo/engine/text/opentype"
	"github.com/npillmayer/uax/bidi"
	"golang.org/x/text/language"
)

// tracer traces with key 'tambo.text'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.text")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a bidi direction to a HarfBuzz direction.
func Direction4HB(d bidi.Direction) hb.Direction {
	if d == bidi.RightToLeft {
		return hb.RightToLeft
	}
	return hb.LeftToRight
}

// --- Advancer --------------------------------------------------------------

// Advancer shapes text with HarfBuzz and sums the glyph advances.
// Vertical metrics are taken from the x/image face of the font.
type Advancer struct {
	sync.Mutex
	faces     *opentype.Advancer
	hbfonts   map[*font.ScalableFont]*hb.Font
	language  language.Tag
	script    language.Script
	direction bidi.Direction
}

// Measurer creates a measurer for shaped text. If registry is nil, a fresh
// registry is used.
func Measurer(registry *font.Registry, lang language.Tag) *text.BreakingMeasurer {
	return text.NewMeasurer(NewAdvancer(registry, lang))
}

// NewAdvancer creates a HarfBuzz advancer for a language. The script is
// derived from the language.
func NewAdvancer(registry *font.Registry, lang language.Tag) *Advancer {
	script, _ := lang.Script()
	return &Advancer{
		faces:     opentype.NewAdvancer(registry),
		hbfonts:   make(map[*font.ScalableFont]*hb.Font),
		language:  lang,
		script:    script,
		direction: bidi.LeftToRight,
	}
}

// SetDirection sets the text direction for shaping.
func (a *Advancer) SetDirection(dir bidi.Direction) {
	a.Lock()
	defer a.Unlock()
	a.direction = dir
}

// Advance is part of interface text.Advancer.
func (a *Advancer) Advance(s string, fs text.FontSpec) dimen.Dimen {
	if s == "" {
		return 0
	}
	tc := a.faces.TypeCase(fs)
	if tc == nil {
		return 0
	}
	a.Lock()
	defer a.Unlock()
	hbfont := a.hbFont(tc.ScalableFontParent())
	if hbfont == nil {
		return a.faces.Advance(s, fs)
	}
	buf := hb.NewBuffer()
	buf.Props.Direction = Direction4HB(a.direction)
	buf.Props.Language = Lang4HB(a.language)
	buf.Props.Script = Script4HB(a.script)
	runes := []rune(s)
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(hbfont, nil)
	var units int64
	for i := range buf.Pos {
		units += int64(buf.Pos[i].XAdvance)
	}
	upem := int64(tc.UnitsPerEm())
	if upem <= 0 {
		upem = 1000
	}
	// font units → pixels at the type case's size
	return dimen.FromFloat(float64(units)*tc.Size()/float64(upem), dimen.PX)
}

// Metrics is part of interface text.Advancer.
func (a *Advancer) Metrics(fs text.FontSpec) (dimen.Dimen, dimen.Dimen) {
	return a.faces.Metrics(fs)
}

func (a *Advancer) hbFont(sf *font.ScalableFont) *hb.Font {
	if f, ok := a.hbfonts[sf]; ok {
		return f
	}
	face, err := hbtt.Parse(bytes.NewReader(sf.Binary), true)
	if err != nil {
		tracer().Errorf("HarfBuzz cannot parse font %s: %v", sf.Fontname, err)
		a.hbfonts[sf] = nil
		return nil
	}
	f := hb.NewFont(face)
	a.hbfonts[sf] = f
	return f
}

var _ text.Advancer = &Advancer{}
