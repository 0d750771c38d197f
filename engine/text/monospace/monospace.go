package monospace

import (
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// CellFactor is the width of a cell relative to the font size.
const CellFactor = 0.6

type advancer struct {
	context *uax11.Context
	cell    dimen.Dimen // fixed cell width; 0 = derive from font size
}

// Measurer creates a measurer for monospace text. If cell is non-zero, every
// cell has this width regardless of the font size. A nil context selects
// Latin context for ambiguous East Asian widths.
func Measurer(cell dimen.Dimen, context *uax11.Context) *text.BreakingMeasurer {
	adv := &advancer{cell: cell, context: context}
	if context == nil {
		adv.context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return text.NewMeasurer(adv)
}

// Advance sums the cell widths of the grapheme clusters of s.
func (ms *advancer) Advance(s string, font text.FontSpec) dimen.Dimen {
	gstr := grapheme.StringFromString(s)
	em := ms.cellWidth(font)
	var w dimen.Dimen
	for i := 0; i < gstr.Len(); i++ {
		grphm := []byte(gstr.Nth(i))
		if len(grphm) == 1 && grphm[0] < 0x20 { // control characters do not advance
			continue
		}
		w += dimen.Dimen(uax11.Width(grphm, ms.context)) * em
	}
	return w
}

// Metrics returns ascent and descent, 4/5 and 1/5 of the font size.
func (ms *advancer) Metrics(font text.FontSpec) (dimen.Dimen, dimen.Dimen) {
	size := font.Size
	if size <= 0 {
		size = 16 * dimen.PX
	}
	return size.Scale(0.8), size.Scale(0.2)
}

func (ms *advancer) cellWidth(font text.FontSpec) dimen.Dimen {
	if ms.cell > 0 {
		return ms.cell
	}
	if font.Size <= 0 {
		tracer().Debugf("monospace measurer has no font size, using 16px")
		return (16 * dimen.PX).Scale(CellFactor)
	}
	return font.Size.Scale(CellFactor)
}
