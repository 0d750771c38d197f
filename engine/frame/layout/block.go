package layout

import (
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/frame"
)

// BlockContext stacks block-level children vertically, collapsing
// adjoining vertical margins.
type BlockContext struct{}

// Type is BlockFormatting.
func (BlockContext) Type() ContextType { return BlockFormatting }

// Layout stacks the children of box. Margins of the first and last child
// escape to the box itself if nothing separates them from the margins of
// the box.
func (BlockContext) Layout(l *Layouter, box *frame.Box, c Constraints) Result {
	bfc := establishesBFC(box)
	collapseTop := !bfc && box.Borders[frame.Top] == 0 && box.Paddings[frame.Top] == 0
	collapseBot := !bfc && box.Borders[frame.Bottom] == 0 && box.Paddings[frame.Bottom] == 0 &&
		!c.Height.Definite && !hasMinHeight(box)
	var res Result
	var pending marginPair
	y, atTop := dimen.Zero, true
	cb := Constraints{Width: c.Width, Height: c.Height, Direction: box.Style.Direction}
	for _, child := range box.Children() {
		l.Resolve(child, cb)
		m := l.collapsedMarginsOf(child)
		pending = pending.join(m.top)
		borderTop := y + pending.value()
		if atTop && collapseTop {
			borderTop = 0
		}
		child.Translate(0, borderTop-child.Margins[frame.Top])
		if m.through {
			continue // margins keep collapsing with the next sibling
		}
		if atTop && collapseTop {
			escaped := pending
			res.escapeTop = &escaped
		}
		if !res.HasBaseline && l.HasBaseline(child) {
			res.Baseline = borderTop + child.Baseline
			res.HasBaseline = true
		}
		y = borderTop + child.Border.Height()
		pending = m.bottom
		atTop = false
	}
	switch {
	case atTop && collapseTop && collapseBot:
		res.empty = true
		escaped := pending
		res.escapeTop = &escaped
	case atTop && collapseTop:
		escaped := pending
		res.escapeTop = &escaped
	case collapseBot && !atTop:
		escaped := pending
		res.escapeBot = &escaped
	default:
		y += dimen.Max(0, pending.value())
	}
	res.Height = dimen.Max(0, y)
	return res
}

// Intrinsic returns the widest contributions of the children.
func (BlockContext) Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen) {
	for _, child := range box.Children() {
		mn, mx := l.intrinsicOuter(child)
		min, max = dimen.Max(min, mn), dimen.Max(max, mx)
	}
	return
}

func hasMinHeight(box *frame.Box) bool {
	d, ok := box.Style.MinHeight.Resolve(0, false)
	return ok && d > 0
}
