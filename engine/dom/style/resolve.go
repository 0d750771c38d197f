package style

import (
	"image/color"
	"strings"
	"sync"

	"github.com/npillmayer/tambo/core/dimen"
)

// Environment holds document-wide values the resolver needs for converting
// relative units.
type Environment struct {
	Viewport     dimen.Point // for vw, vh, vmin, vmax
	RootFontSize dimen.Dimen // for rem; 16px if zero
}

// resolution is the context of resolving the properties of a single element.
type resolution struct {
	parent         *ComputedStyle
	parentFontSize dimen.Dimen
	fontSize       dimen.Dimen
	rootFontSize   dimen.Dimen
	viewport       dimen.Point
	currentColor   color.RGBA
}

func (r *resolution) absolutize(d DimenT) DimenT {
	return d.Absolutize(r.fontSize, r.rootFontSize, r.viewport)
}

var defaultFontSize = 16 * dimen.PX

var initialStyle *ComputedStyle
var initialOnce sync.Once

// InitialStyle returns a computed style with every property at its initial
// value. The result is a fresh copy and may be modified by the caller.
func InitialStyle() *ComputedStyle {
	initialOnce.Do(func() {
		initialStyle = computeInitial()
	})
	cs := *initialStyle
	return &cs
}

func computeInitial() *ComputedStyle {
	ctx := &resolution{
		parentFontSize: defaultFontSize,
		fontSize:       defaultFontSize,
		rootFontSize:   defaultFontSize,
		currentColor:   color.RGBA{A: 255},
	}
	cs := &ComputedStyle{}
	for _, p := range properties {
		if err := p.set(cs, p.Initial, ctx); err != nil {
			panic("initial value of " + p.Name + " does not parse: " + err.Error())
		}
		ctx.update(p, cs)
	}
	fixup(cs, nil)
	return cs
}

func (r *resolution) update(p *Property, cs *ComputedStyle) {
	switch p.Name {
	case "font-size":
		r.fontSize = cs.FontSize
	case "color":
		r.currentColor = cs.Color
	}
}

// Resolve computes the style of an element from the computed style of its
// parent and the cascaded values, i.e. the winning declaration value for each
// longhand property. parent is nil for the root element.
//
// Undeclared inherited properties take the parent's value, other undeclared
// properties their initial value. Keywords `inherit`, `initial` and `unset`
// are supported for every property. Values which do not parse are dropped,
// as if they had not been declared. Resolve never modifies parent.
func Resolve(parent *ComputedStyle, cascaded map[string]string, env Environment) *ComputedStyle {
	initial := InitialStyle()
	ctx := &resolution{
		parent:         parent,
		parentFontSize: initial.FontSize,
		rootFontSize:   env.RootFontSize,
		viewport:       env.Viewport,
		currentColor:   initial.Color,
	}
	if ctx.rootFontSize == 0 {
		ctx.rootFontSize = defaultFontSize
	}
	if parent != nil {
		ctx.parentFontSize = parent.FontSize
		ctx.currentColor = parent.Color
	}
	ctx.fontSize = ctx.parentFontSize
	cs := &ComputedStyle{}
	for _, p := range properties {
		value, declared := cascaded[p.Name]
		value = strings.TrimSpace(value)
		inherit := p.Inherited
		if declared {
			switch strings.ToLower(value) {
			case "inherit":
				inherit, declared = true, false
			case "initial":
				inherit, declared = false, false
			case "unset":
				declared = false
			}
		}
		if declared {
			err := p.set(cs, value, ctx)
			if err == nil {
				ctx.update(p, cs)
				continue
			}
			tracer().Debugf("dropping %s: %s: %v", p.Name, value, err)
		}
		if inherit && parent != nil {
			p.copy(cs, parent)
		} else if p.Initial == "currentcolor" {
			_ = p.set(cs, p.Initial, ctx)
		} else {
			p.copy(cs, initial)
		}
		ctx.update(p, cs)
	}
	fixup(cs, parent)
	return cs
}

// fixup applies rules spanning more than one property.
func fixup(cs *ComputedStyle, parent *ComputedStyle) {
	for e := 0; e < 4; e++ {
		if cs.BorderStyle[e] == BorderNone || cs.BorderStyle[e] == BorderHidden {
			cs.BorderWidth[e] = 0
		}
	}
	if parent == nil && cs.Display.IsInlineLevel() { // the root element is block-level
		cs.Display = (cs.Display &^ InlineMode) | BlockMode
	}
	if cs.Position == PositionSticky { // sticky positioning falls back to relative
		cs.Position = PositionRelative
	}
}

// Valid is true if value is an acceptable value for a longhand property.
// The CSS-wide keywords are valid for every property.
func Valid(property, value string) bool {
	p, ok := Lookup(property)
	if !ok {
		return false
	}
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "":
		return false
	case "inherit", "initial", "unset":
		return true
	}
	ctx := &resolution{
		parentFontSize: defaultFontSize,
		fontSize:       defaultFontSize,
		rootFontSize:   defaultFontSize,
		currentColor:   color.RGBA{A: 255},
	}
	return p.set(InitialStyle(), value, ctx) == nil
}
