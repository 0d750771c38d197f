/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size for
a certain script and language. The name is reminiscend on the wooden
boxes of typesetters in the aera of metal type.
An example is "Helvetica regular 11pt, Latin, en_US".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Fonts are held in a Registry. Every layout engine owns its registry, which
caches type cases per size. Families which are not registered are searched
as system fonts. If everything fails, the Go Sans fallback font is used.

----------------------------------------------------------------------

# BSD License

# Copyright (c) 2017–22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package font

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tambo/core"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'tambo.font'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.font")
}

// ScalableFont is a font variant, independent of size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container
}

// TypeCase is a font at a given size (in CSS pixels).
type TypeCase struct {
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	size               float64
}

// LoadOpenTypeFont loads and parses a font file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses the binary data of a TrueType or OpenType font.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// PrepareCase creates a type case for a font size in pixels.
// Sizes are kept within 1px and 1000px.
func (sf *ScalableFont) PrepareCase(size float64) (*TypeCase, error) {
	typecase := &TypeCase{scalableFontParent: sf}
	if size < 1.0 || size > 1000.0 {
		tracer().Infof("font size must be 1px < size < 1000px, is %g (set to 16px)", size)
		size = 16.0
	}
	options := &opentype.FaceOptions{
		Size:    size,
		DPI:     72, // 1 point renders as 1 pixel, so size is in pixels
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create face for %s", sf.Fontname)
	}
	typecase.face = f
	typecase.size = size
	return typecase, nil
}

// ScalableFontParent returns the font this type case has been created from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Face returns the x/image face of a type case.
func (tc *TypeCase) Face() xfont.Face {
	return tc.face
}

// Size is the size of the type case in pixels.
func (tc *TypeCase) Size() float64 {
	return tc.size
}

// UnitsPerEm returns the design units of the font.
func (tc *TypeCase) UnitsPerEm() int {
	if tc.scalableFontParent == nil || tc.scalableFontParent.SFNT == nil {
		return 1000
	}
	return int(tc.scalableFontParent.SFNT.UnitsPerEm())
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	return gofont
}

// --- Font Registry ---------------------------------------------------------

// Registry holds fonts and type cases. It is safe for concurrent use.
type Registry struct {
	sync.Mutex
	fonts     map[string]*ScalableFont
	typecases map[string]*TypeCase
	missing   map[string]bool // variants not found as system fonts
	find      func(string) (string, error)
}

// NewRegistry creates an empty font registry. Fonts not stored explicitly
// will be searched for with go-findfont.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*ScalableFont),
		typecases: make(map[string]*TypeCase),
		missing:   make(map[string]bool),
		find:      findfont.Find,
	}
	return fr
}

// StoreFont stores a font under its (normalized) name.
func (fr *Registry) StoreFont(f *ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fname := NormalizeFontname(f.Fontname)
	tracer().Debugf("registry stores font %s as %s", f.Fontname, fname)
	fr.fonts[fname] = f
}

// TypeCase returns a type case for a registered font. If the font is unknown,
// a type case of the fallback font is returned together with an error.
func (fr *Registry) TypeCase(name string, size float64) (*TypeCase, error) {
	fr.Lock()
	defer fr.Unlock()
	if t, ok := fr.cachedCase(NormalizeFontname(name), size); ok {
		return t, nil
	}
	return fr.fallbackCase(name, size)
}

// Resolve finds a type case for a CSS font family list, style and weight.
// Families are tried in order: registered fonts first, then system fonts.
// Generic families and missing fonts end up with the fallback font; the error
// returned then carries code core.EMISSING.
func (fr *Registry) Resolve(families []string, style xfont.Style, weight xfont.Weight,
	size float64) (*TypeCase, error) {
	//
	fr.Lock()
	defer fr.Unlock()
	for _, family := range families {
		family = strings.Trim(strings.TrimSpace(family), `"'`)
		if family == "" || isGenericFamily(family) {
			continue
		}
		for _, vname := range variantNames(family, style, weight) {
			if t, ok := fr.cachedCase(vname, size); ok {
				return t, nil
			}
			if f := fr.findSystemFont(vname); f != nil {
				fr.fonts[vname] = f
				t, ok := fr.cachedCase(vname, size)
				if ok {
					return t, nil
				}
			}
		}
	}
	return fr.fallbackCase(strings.Join(families, ","), size)
}

func (fr *Registry) cachedCase(fname string, size float64) (*TypeCase, bool) {
	tname := NormalizeTypeCaseName(fname, size)
	if t, ok := fr.typecases[tname]; ok {
		return t, true
	}
	if f, ok := fr.fonts[fname]; ok {
		t, err := f.PrepareCase(size)
		if err != nil {
			tracer().Errorf("font %s: %v", fname, err)
			return nil, false
		}
		tracer().Debugf("font registry has font %s, caches at %.2f", fname, size)
		fr.typecases[tname] = t
		return t, true
	}
	return nil, false
}

func (fr *Registry) findSystemFont(vname string) *ScalableFont {
	if fr.missing[vname] || fr.find == nil {
		return nil
	}
	candidate := strings.ReplaceAll(vname, "_", " ")
	fpath, err := fr.find(candidate)
	if err != nil || fpath == "" {
		fpath, err = fr.find(strings.ReplaceAll(vname, "_", ""))
	}
	if err != nil || fpath == "" {
		fr.missing[vname] = true
		return nil
	}
	f, err := LoadOpenTypeFont(fpath)
	if err != nil {
		tracer().Infof("system font %s unusable: %v", fpath, err)
		fr.missing[vname] = true
		return nil
	}
	tracer().Debugf("%s is a system font at %s", vname, fpath)
	return f
}

func (fr *Registry) fallbackCase(name string, size float64) (*TypeCase, error) {
	err := core.Error(core.EMISSING, "font %s not found, using fallback", name)
	if t, ok := fr.cachedCase("fallback", size); ok {
		return t, err
	}
	fr.fonts["fallback"] = FallbackFont()
	t, _ := fr.cachedCase("fallback", size)
	tracer().Debugf("font registry caches fallback font at %.2f", size)
	return t, err
}

// DebugList traces the contents of the registry.
func (fr *Registry) DebugList() {
	tracer().Debugf("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Debugf("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Debugf("typecase [%s] = %v", k, v.scalableFontParent.Fontname)
	}
	tracer().Debugf("------------------------")
}

// NormalizeFontname creates a registry key from a font name or a font file name.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// NormalizeTypeCaseName creates a registry key for a font at a given size.
func NormalizeTypeCaseName(fname string, size float64) string {
	fname = NormalizeFontname(fname)
	fname = fmt.Sprintf("%s-%.2f", fname, size)
	return fname
}

// --- CSS font properties ---------------------------------------------------

// WeightFromCSS maps a numeric CSS font-weight to an x/image weight.
func WeightFromCSS(w int) xfont.Weight {
	if w < 100 {
		w = 100
	} else if w > 900 {
		w = 900
	}
	return xfont.Weight((w+50)/100 - 4)
}

func variantNames(family string, style xfont.Style, weight xfont.Weight) []string {
	base := NormalizeFontname(family)
	var suffix string
	if weight >= xfont.WeightSemiBold {
		suffix = "bold"
	}
	if style == xfont.StyleItalic || style == xfont.StyleOblique {
		suffix += "italic"
	}
	if suffix == "" {
		return []string{base, base + "-regular"}
	}
	return []string{base + "-" + suffix, base + "_" + suffix, base}
}

func isGenericFamily(f string) bool {
	switch strings.ToLower(f) {
	case "serif", "sans-serif", "monospace", "cursive", "fantasy", "system-ui":
		return true
	}
	return false
}
