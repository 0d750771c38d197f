/*
Package opentype measures text with OpenType and TrueType fonts.

Fonts are looked up in a font registry by CSS family list, weight and style;
advances come from golang.org/x/image faces, without shaping. Missing fonts
are replaced by the registry's fallback font.
*/
package opentype

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/core/font"
	"github.com/npillmayer/tambo/engine/text"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'tambo.text'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.text")
}

// Advancer provides advances and metrics from x/image font faces.
type Advancer struct {
	registry *font.Registry
}

// Measurer creates a measurer backed by a font registry. If registry is nil,
// a fresh registry is used.
func Measurer(registry *font.Registry) *text.BreakingMeasurer {
	return text.NewMeasurer(NewAdvancer(registry))
}

// NewAdvancer creates an advancer backed by a font registry.
func NewAdvancer(registry *font.Registry) *Advancer {
	if registry == nil {
		registry = font.NewRegistry()
	}
	return &Advancer{registry: registry}
}

// TypeCase resolves the type case for a font spec.
func (a *Advancer) TypeCase(fs text.FontSpec) *font.TypeCase {
	style := xfont.StyleNormal
	if fs.Italic {
		style = xfont.StyleItalic
	}
	size := fs.Size.Px()
	if size <= 0 {
		size = 16
	}
	tc, err := a.registry.Resolve(fs.Families, style, font.WeightFromCSS(fs.Weight), size)
	if err != nil && core.Code(err) != core.EMISSING {
		tracer().Errorf("cannot resolve font %s: %v", fs, err)
	}
	return tc
}

// Advance is part of interface text.Advancer.
func (a *Advancer) Advance(s string, fs text.FontSpec) dimen.Dimen {
	tc := a.TypeCase(fs)
	if tc == nil {
		return 0
	}
	return FromFixed(xfont.MeasureString(tc.Face(), s))
}

// Metrics is part of interface text.Advancer.
func (a *Advancer) Metrics(fs text.FontSpec) (dimen.Dimen, dimen.Dimen) {
	tc := a.TypeCase(fs)
	if tc == nil {
		return fs.Size.Scale(0.8), fs.Size.Scale(0.2)
	}
	m := tc.Face().Metrics()
	return FromFixed(m.Ascent), FromFixed(m.Descent)
}

// FromFixed converts a 26.6 fixed point pixel value to a dimension.
func FromFixed(v fixed.Int26_6) dimen.Dimen {
	return dimen.Dimen(int64(v) * int64(dimen.PX) / 64)
}

var _ text.Advancer = &Advancer{}
