package layout

import (
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
)

// marginPair tracks a set of adjoining vertical margins by its largest
// positive and most negative member.
type marginPair struct {
	pos, neg dimen.Dimen
}

func pairOf(m dimen.Dimen) marginPair {
	if m < 0 {
		return marginPair{neg: m}
	}
	return marginPair{pos: m}
}

func (p marginPair) join(q marginPair) marginPair {
	return marginPair{pos: dimen.Max(p.pos, q.pos), neg: dimen.Min(p.neg, q.neg)}
}

// value is the collapsed margin of the set.
func (p marginPair) value() dimen.Dimen {
	return p.pos + p.neg
}

// collapsedMargins are the margins of a block-level box after collapsing
// with the margins of its first and last in-flow children. If through is
// set, top and bottom margins of the box adjoin each other.
type collapsedMargins struct {
	top, bottom marginPair
	through     bool
}

// collapseThrough joins the margins of a box with the margins escaping
// from its content and records the result for the parent context.
func (l *Layouter) collapseThrough(box *frame.Box, res Result, contentHeight dimen.Dimen) {
	top, bot := pairOf(box.Margins[frame.Top]), pairOf(box.Margins[frame.Bottom])
	if res.escapeTop != nil {
		top = top.join(*res.escapeTop)
	}
	if res.escapeBot != nil {
		bot = bot.join(*res.escapeBot)
	}
	if res.empty && contentHeight == 0 && l.verticalDecoration(box) == 0 {
		all := top.join(bot)
		l.margins[box] = collapsedMargins{top: all, bottom: all, through: true}
		box.Margins[frame.Top], box.Margins[frame.Bottom] = all.value(), 0
		return
	}
	l.margins[box] = collapsedMargins{top: top, bottom: bot}
	box.Margins[frame.Top], box.Margins[frame.Bottom] = top.value(), bot.value()
}

func (l *Layouter) collapsedMarginsOf(box *frame.Box) collapsedMargins {
	if cm, ok := l.margins[box]; ok {
		return cm
	}
	return collapsedMargins{
		top:    pairOf(box.Margins[frame.Top]),
		bottom: pairOf(box.Margins[frame.Bottom]),
	}
}

// establishesBFC is true for boxes whose content is isolated from the
// margins of the outside: child margins never collapse with theirs.
func establishesBFC(box *frame.Box) bool {
	if box.Parent() == nil {
		return true
	}
	switch box.Type {
	case frame.InlineBlockBox, frame.TableBox, frame.TableCell, frame.TableCaption,
		frame.FlexItem, frame.GridItem, frame.ReplacedBox:
		return true
	}
	d := box.Display()
	if d.Contains(style.FlowRoot) || d.Overlaps(style.FlexMode|style.GridMode|style.TableMode) {
		return true
	}
	cs := box.Style
	return cs.ClipsOverflow() || cs.Position == style.PositionAbsolute || cs.Position == style.PositionFixed
}
