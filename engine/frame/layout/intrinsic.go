package layout

import (
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
)

type intrinsicSizes struct {
	min, max dimen.Dimen
}

// intrinsicContent returns the min-content and max-content widths of the
// content box of a box. Results are cached for the duration of a pass.
func (l *Layouter) intrinsicContent(box *frame.Box) (dimen.Dimen, dimen.Dimen) {
	if s, ok := l.intrinsic[box]; ok {
		return s.min, s.max
	}
	if box.Style == nil {
		box.Style = style.InitialStyle()
	}
	min, max := ContextFor(box).Intrinsic(l, box)
	min, max = dimen.Max(0, min), dimen.Max(0, max)
	if max < min {
		max = min
	}
	l.intrinsic[box] = intrinsicSizes{min: min, max: max}
	tracer().Debugf("intrinsic widths of %s = [%v…%v]", box, min, max)
	return min, max
}

// intrinsicOuter returns the min-content and max-content contributions of
// a box to its parent, i.e. the widths of its margin box. Percentages of
// the unknown containing block count as zero.
func (l *Layouter) intrinsicOuter(box *frame.Box) (dimen.Dimen, dimen.Dimen) {
	if box.Style == nil {
		box.Style = style.InitialStyle()
	}
	l.resolveEdges(box, Indefinite)
	cs := box.Style
	pb := l.horizontalDecoration(box)
	m := dimen.Max(0, box.Margins.Horizontal())
	if box.IsReplaced() {
		w := l.replacedWidth(box, Constraints{}) + pb + m
		return w, w
	}
	var min, max dimen.Dimen
	if w, ok := l.specifiedWidth(box, Constraints{}); ok {
		min, max = w, w
	} else {
		min, max = l.intrinsicContent(box)
	}
	adjust := dimen.Zero
	if cs.BoxSizing == style.BorderBox {
		adjust = pb
	}
	if mx, ok := cs.MaxWidth.Resolve(0, false); ok {
		min, max = dimen.Min(min, mx-adjust), dimen.Min(max, mx-adjust)
	}
	if mn, ok := cs.MinWidth.Resolve(0, false); ok {
		min, max = dimen.Max(min, mn-adjust), dimen.Max(max, mn-adjust)
	}
	return dimen.Max(0, min) + pb + m, dimen.Max(0, max) + pb + m
}

// Intrinsic returns the min-content and max-content widths of the border
// box of a box.
func (l *Layouter) Intrinsic(box *frame.Box) (min, max dimen.Dimen) {
	if l.intrinsic == nil {
		l.intrinsic = make(map[*frame.Box]intrinsicSizes)
		l.margins = make(map[*frame.Box]collapsedMargins)
		l.baselines = make(map[*frame.Box]bool)
	}
	min, max = l.intrinsicOuter(box)
	m := dimen.Max(0, box.Margins.Horizontal())
	return min - m, max - m
}
