package layout

import (
	"sort"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/npillmayer/uax/bidi"
)

// FlexContext lays out flex items along a main axis, with flexible sizes,
// line wrapping and alignment on both axes.
type FlexContext struct{}

// Type is FlexFormatting.
func (FlexContext) Type() ContextType { return FlexFormatting }

type flexItem struct {
	box        *frame.Box
	base       dimen.Dimen // flex base size of the content box
	hypo       dimen.Dimen // base size clamped by min and max
	minMain    dimen.Dimen
	maxMain    dimen.Dimen
	target     dimen.Dimen // used main size of the content box
	violation  dimen.Dimen
	frozen     bool
	decoMain   dimen.Dimen // padding and border on the main axis
	marginMain dimen.Dimen
	grow       float64
	shrink     float64
	main       dimen.Dimen // position of the margin box on the main axis
	cross      dimen.Dimen // position of the margin box on the cross axis
	outerCross dimen.Dimen
	ascent     dimen.Dimen // baseline offset from the top of the margin box
}

func (it *flexItem) outerHypo() dimen.Dimen {
	return it.hypo + it.decoMain + it.marginMain
}

func (it *flexItem) outerBase() dimen.Dimen {
	return it.base + it.decoMain + it.marginMain
}

func (it *flexItem) outerTarget() dimen.Dimen {
	return it.target + it.decoMain + it.marginMain
}

type flexLine struct {
	items  []*flexItem
	cross  dimen.Dimen
	ascent dimen.Dimen
}

// flexer holds the state of laying out one flex container.
type flexer struct {
	l         *Layouter
	box       *frame.Box
	c         Constraints
	column    bool
	mainSize  Extent
	crossSize Extent
	mainGap   dimen.Dimen
	crossGap  dimen.Dimen
}

func newFlexer(l *Layouter, box *frame.Box, c Constraints) *flexer {
	cs := box.Style
	f := &flexer{l: l, box: box, c: c, column: cs.FlexDirection.IsColumn()}
	colGap, _ := cs.ColumnGap.Resolve(c.Width.Size, c.Width.Definite)
	rowGap, _ := cs.RowGap.Resolve(c.Height.Size, c.Height.Definite)
	if f.column {
		f.mainSize, f.crossSize = c.Height, c.Width
		f.mainGap, f.crossGap = rowGap, colGap
	} else {
		f.mainSize, f.crossSize = c.Width, c.Height
		f.mainGap, f.crossGap = colGap, rowGap
	}
	return f
}

// Layout runs the flex layout algorithm on the children of box.
func (FlexContext) Layout(l *Layouter, box *frame.Box, c Constraints) Result {
	f := newFlexer(l, box, c)
	items := f.collectItems()
	lines := f.wrap(items)
	for _, ln := range lines {
		f.resolveFlexible(ln)
		f.layoutItems(ln)
	}
	crossTotal := f.crossSizes(lines)
	mainUsed := f.place(lines, crossTotal)
	var res Result
	if len(lines) > 0 && len(lines[0].items) > 0 {
		first := lines[0].items[0]
		res.HasBaseline = true
		if f.column {
			res.Baseline = first.main + first.ascent
		} else {
			res.Baseline = first.cross + first.ascent
		}
	}
	if f.column {
		res.Height = mainUsed
	} else {
		res.Height = crossTotal
	}
	tracer().Debugf("%s: %d flex lines", box, len(lines))
	return res
}

// Intrinsic sums the contributions of items along a row, and takes the
// widest item for columns and multi-line rows.
func (FlexContext) Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen) {
	cs := box.Style
	gap, _ := cs.ColumnGap.Resolve(0, false)
	n := 0
	for _, ch := range box.Children() {
		mn, mx := l.intrinsicOuter(ch)
		if cs.FlexDirection.IsColumn() {
			min, max = dimen.Max(min, mn), dimen.Max(max, mx)
			continue
		}
		if cs.FlexWrap == style.NoWrap {
			min += mn
		} else {
			min = dimen.Max(min, mn)
		}
		max += mx
		n++
	}
	if n > 1 {
		max += gap * dimen.Dimen(n-1)
		if cs.FlexWrap == style.NoWrap {
			min += gap * dimen.Dimen(n-1)
		}
	}
	return
}

// collectItems determines base and hypothetical sizes of the items and
// sorts them by property `order`.
func (f *flexer) collectItems() []*flexItem {
	items := make([]*flexItem, 0, f.box.ChildCount())
	for _, ch := range f.box.Children() {
		if ch.Style == nil {
			ch.Style = style.InitialStyle()
		}
		f.l.resolveEdges(ch, f.c.Width)
		it := &flexItem{box: ch, grow: ch.Style.FlexGrow, shrink: ch.Style.FlexShrink}
		if f.column {
			it.decoMain = f.l.verticalDecoration(ch)
			it.marginMain = ch.Margins.Vertical()
		} else {
			it.decoMain = f.l.horizontalDecoration(ch)
			it.marginMain = ch.Margins.Horizontal()
		}
		it.base = f.baseSize(it)
		it.minMain, it.maxMain = f.mainBounds(it)
		it.hypo = dimen.Clamp(it.base, it.minMain, it.maxMain)
		items = append(items, it)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].box.Style.Order < items[j].box.Style.Order
	})
	return items
}

func (f *flexer) baseSize(it *flexItem) dimen.Dimen {
	cs := it.box.Style
	if b, ok := cs.FlexBasis.Resolve(f.mainSize.Size, f.mainSize.Definite); ok {
		if cs.BoxSizing == style.BorderBox {
			b -= it.decoMain
		}
		return dimen.Max(0, b)
	}
	if f.column {
		if h, ok := f.l.specifiedHeight(it.box, Constraints{Height: f.c.Height}); ok {
			return h
		}
		f.l.Resolve(it.box, f.crossConstraints(it))
		return it.box.Content.Height()
	}
	if w, ok := f.l.specifiedWidth(it.box, Constraints{Width: f.c.Width}); ok {
		return w
	}
	_, max := f.l.intrinsicContent(it.box)
	return max
}

// mainBounds returns min and max main sizes of an item. An auto minimum
// width is the min-content width, unless the item clips its content.
func (f *flexer) mainBounds(it *flexItem) (dimen.Dimen, dimen.Dimen) {
	cs := it.box.Style
	minD, maxD, ref := cs.MinWidth, cs.MaxWidth, f.c.Width
	if f.column {
		minD, maxD, ref = cs.MinHeight, cs.MaxHeight, f.c.Height
	}
	adjust := dimen.Zero
	if cs.BoxSizing == style.BorderBox {
		adjust = it.decoMain
	}
	var min, max dimen.Dimen = 0, dimen.Infinity
	if m, ok := maxD.Resolve(ref.Size, ref.Definite); ok {
		max = dimen.Max(0, m-adjust)
	}
	if m, ok := minD.Resolve(ref.Size, ref.Definite); ok {
		min = dimen.Max(0, m-adjust)
	} else if !f.column && !cs.ClipsOverflow() {
		min, _ = f.l.intrinsicContent(it.box)
		if w, ok := f.l.specifiedWidth(it.box, Constraints{Width: f.c.Width}); ok {
			min = dimen.Min(min, w)
		}
		min = dimen.Min(min, max)
	}
	if max < min {
		max = min
	}
	return min, max
}

// wrap distributes items into flex lines.
func (f *flexer) wrap(items []*flexItem) []*flexLine {
	if len(items) == 0 {
		return nil
	}
	if f.box.Style.FlexWrap == style.NoWrap || !f.mainSize.Definite {
		return []*flexLine{{items: items}}
	}
	var lines []*flexLine
	cur := &flexLine{}
	var used dimen.Dimen
	for _, it := range items {
		w := it.outerHypo()
		if len(cur.items) > 0 && used+f.mainGap+w > f.mainSize.Size {
			lines = append(lines, cur)
			cur, used = &flexLine{}, 0
		}
		if len(cur.items) > 0 {
			used += f.mainGap
		}
		cur.items = append(cur.items, it)
		used += w
	}
	return append(lines, cur)
}

// resolveFlexible distributes free space of a line among its items,
// freezing items whose target sizes violate their min or max sizes.
func (f *flexer) resolveFlexible(ln *flexLine) {
	if !f.mainSize.Definite {
		for _, it := range ln.items {
			it.target = it.hypo
		}
		return
	}
	gaps := f.mainGap * dimen.Dimen(len(ln.items)-1)
	var sumHypo dimen.Dimen
	for _, it := range ln.items {
		sumHypo += it.outerHypo()
	}
	growing := sumHypo+gaps < f.mainSize.Size
	for _, it := range ln.items {
		factor := it.shrink
		if growing {
			factor = it.grow
		}
		it.target, it.frozen = it.base, false
		if factor <= 0 || growing && it.base > it.hypo || !growing && it.base < it.hypo {
			it.target, it.frozen = it.hypo, true
		}
	}
	for round := 0; round <= len(ln.items); round++ {
		free := f.mainSize.Size - gaps
		var sumFactor, sumScaled float64
		unfrozen := 0
		for _, it := range ln.items {
			if it.frozen {
				free -= it.outerTarget()
				continue
			}
			free -= it.outerBase()
			unfrozen++
			sumFactor += it.grow
			sumScaled += it.shrink * float64(it.base)
		}
		if unfrozen == 0 {
			break
		}
		if !growing {
			sumFactor = 0
			for _, it := range ln.items {
				if !it.frozen {
					sumFactor += it.shrink
				}
			}
		}
		if sumFactor < 1 && sumFactor > 0 {
			free = free.Scale(sumFactor)
		}
		var total dimen.Dimen
		for _, it := range ln.items {
			if it.frozen {
				continue
			}
			t := it.base
			switch {
			case growing && free > 0 && sumFactor > 0:
				t += free.Scale(it.grow / sumFactor)
			case !growing && free < 0 && sumScaled > 0:
				t += free.Scale(it.shrink * float64(it.base) / sumScaled)
			}
			clamped := dimen.Clamp(dimen.Max(0, t), it.minMain, it.maxMain)
			it.violation = clamped - t
			it.target = clamped
			total += it.violation
		}
		for _, it := range ln.items {
			if it.frozen {
				continue
			}
			if total == 0 || total > 0 && it.violation > 0 || total < 0 && it.violation < 0 {
				it.frozen = true
			}
		}
	}
}

// alignOf returns the used cross-axis alignment of an item.
func (f *flexer) alignOf(it *flexItem) style.Align {
	a := it.box.Style.AlignSelf
	if a == style.AlignAuto {
		a = f.box.Style.AlignItems
	}
	if a == style.AlignNormal || a == style.AlignAuto {
		a = style.AlignStretch
	}
	return a
}

func (f *flexer) stretches(it *flexItem) bool {
	if f.alignOf(it) != style.AlignStretch {
		return false
	}
	cs := it.box.Style
	if f.column {
		return cs.Width.IsAuto() || cs.Width.IsNone()
	}
	autoMargin := cs.Margin[frame.Top].IsAuto() || cs.Margin[frame.Bottom].IsAuto()
	return (cs.Height.IsAuto() || cs.Height.IsNone()) && !autoMargin
}

// crossConstraints are the constraints for an item of a column container
// before its main size is known.
func (f *flexer) crossConstraints(it *flexItem) Constraints {
	c := Constraints{Width: f.c.Width, Height: f.c.Height, Direction: f.box.Style.Direction}
	if f.stretches(it) && !it.box.IsReplaced() {
		c.FixedWidth = Definite(f.c.Width.Size - it.box.Margins.Horizontal())
	} else {
		c.ShrinkToFit = true
	}
	return c
}

// layoutItems lays out the items of a line at their used main sizes.
func (f *flexer) layoutItems(ln *flexLine) {
	for _, it := range ln.items {
		fixed := Definite(it.target + it.decoMain)
		if f.column {
			c := f.crossConstraints(it)
			c.FixedHeight = fixed
			f.l.Resolve(it.box, c)
			it.outerCross = it.box.MarginBoxWidth()
		} else {
			f.l.Resolve(it.box, Constraints{
				Width:      f.c.Width,
				Height:     f.c.Height,
				Direction:  f.box.Style.Direction,
				FixedWidth: fixed,
			})
			it.outerCross = it.box.MarginBoxHeight()
		}
		it.ascent = it.box.Margins[frame.Top] + it.box.Baseline
	}
}

// crossSizes computes the cross sizes of lines, distributes free cross
// space to stretched lines and stretches items. It returns the cross size
// of the container's content box.
func (f *flexer) crossSizes(lines []*flexLine) dimen.Dimen {
	for _, ln := range lines {
		var below dimen.Dimen
		for _, it := range ln.items {
			ln.cross = dimen.Max(ln.cross, it.outerCross)
			if !f.column && f.alignOf(it) == style.AlignBaseline {
				ln.ascent = dimen.Max(ln.ascent, it.ascent)
				below = dimen.Max(below, it.outerCross-it.ascent)
			}
		}
		ln.cross = dimen.Max(ln.cross, ln.ascent+below)
	}
	if len(lines) == 1 && f.crossSize.Definite {
		lines[0].cross = f.crossSize.Size
	}
	total := f.crossTotal(lines)
	ac := f.box.Style.AlignContent
	if f.crossSize.Definite && len(lines) > 1 && total < f.crossSize.Size &&
		(ac == style.AlignNormal || ac == style.AlignStretch) {
		extra := (f.crossSize.Size - total) / dimen.Dimen(len(lines))
		for _, ln := range lines {
			ln.cross += extra
		}
	}
	for _, ln := range lines {
		for _, it := range ln.items {
			if !f.column && f.stretches(it) && it.outerCross != ln.cross {
				f.l.Resolve(it.box, Constraints{
					Width:       f.c.Width,
					Height:      f.c.Height,
					Direction:   f.box.Style.Direction,
					FixedWidth:  Definite(it.target + it.decoMain),
					FixedHeight: Definite(ln.cross - it.box.Margins.Vertical()),
				})
				it.outerCross = it.box.MarginBoxHeight()
				it.ascent = it.box.Margins[frame.Top] + it.box.Baseline
			}
		}
	}
	if f.crossSize.Definite {
		return f.crossSize.Size
	}
	return f.crossTotal(lines)
}

func (f *flexer) crossTotal(lines []*flexLine) dimen.Dimen {
	var total dimen.Dimen
	for i, ln := range lines {
		if i > 0 {
			total += f.crossGap
		}
		total += ln.cross
	}
	return total
}

// distribute returns the leading offset and the extra spacing between
// n subjects for a content distribution value.
func distribute(a style.Align, free dimen.Dimen, n int) (start, between dimen.Dimen) {
	if n == 0 {
		return 0, 0
	}
	switch a {
	case style.AlignEnd:
		return free, 0
	case style.AlignCenter:
		return free / 2, 0
	case style.AlignSpaceBetween:
		if n > 1 && free > 0 {
			return 0, free / dimen.Dimen(n-1)
		}
	case style.AlignSpaceAround:
		if free > 0 {
			between = free / dimen.Dimen(n)
			return between / 2, between
		}
		return free / 2, 0
	case style.AlignSpaceEvenly:
		if free > 0 {
			between = free / dimen.Dimen(n+1)
			return between, between
		}
		return free / 2, 0
	}
	return 0, 0
}

// place positions the items of all lines on both axes and returns the main
// size used by the content.
func (f *flexer) place(lines []*flexLine, crossTotal dimen.Dimen) dimen.Dimen {
	cs := f.box.Style
	free := crossTotal - f.crossTotal(lines)
	crossPos, crossBetween := distribute(cs.AlignContent, free, len(lines))
	var mainUsed dimen.Dimen
	for _, ln := range lines {
		used := f.mainGap * dimen.Dimen(len(ln.items)-1)
		for _, it := range ln.items {
			used += it.outerTarget()
		}
		mainUsed = dimen.Max(mainUsed, used)
	}
	mainAvail := mainUsed
	if f.mainSize.Definite {
		mainAvail = f.mainSize.Size
	}
	mirror := cs.FlexDirection.IsReverse()
	if !f.column && cs.Direction == bidi.RightToLeft {
		mirror = !mirror
	}
	for _, ln := range lines {
		f.placeMain(ln, mainAvail, mirror)
		for _, it := range ln.items {
			off := ln.cross - it.outerCross
			startAuto, endAuto := f.crossAutoMargins(it)
			switch {
			case startAuto && endAuto:
				off /= 2
			case startAuto:
			case endAuto:
				off = 0
			default:
				switch f.alignOf(it) {
				case style.AlignEnd:
				case style.AlignCenter:
					off /= 2
				case style.AlignBaseline:
					if !f.column {
						off = ln.ascent - it.ascent
						break
					}
					off = 0
				default:
					off = 0
				}
			}
			it.cross = crossPos + off
		}
		crossPos += ln.cross + f.crossGap + crossBetween
	}
	for _, ln := range lines {
		for _, it := range ln.items {
			if cs.FlexWrap == style.WrapReverse {
				it.cross = crossTotal - it.cross - it.outerCross
			}
			if f.column {
				it.box.Translate(it.cross, it.main)
			} else {
				it.box.Translate(it.main, it.cross)
			}
		}
	}
	if f.mainSize.Definite {
		return f.mainSize.Size
	}
	return mainUsed
}

func (f *flexer) placeMain(ln *flexLine, mainAvail dimen.Dimen, mirror bool) {
	used := f.mainGap * dimen.Dimen(len(ln.items)-1)
	autos := 0
	for _, it := range ln.items {
		used += it.outerTarget()
		s, e := f.mainAutoMargins(it)
		if s {
			autos++
		}
		if e {
			autos++
		}
	}
	free := mainAvail - used
	var pos, between, perAuto dimen.Dimen
	if autos > 0 && free > 0 {
		perAuto = free / dimen.Dimen(autos)
	} else {
		pos, between = distribute(f.box.Style.JustifyContent, free, len(ln.items))
	}
	for _, it := range ln.items {
		s, e := f.mainAutoMargins(it)
		if s {
			pos += perAuto
		}
		it.main = pos
		pos += it.outerTarget() + f.mainGap + between
		if e {
			pos += perAuto
		}
		if mirror {
			it.main = mainAvail - it.main - it.outerTarget()
		}
	}
}

func (f *flexer) mainAutoMargins(it *flexItem) (bool, bool) {
	m := it.box.Style.Margin
	if f.column {
		return m[frame.Top].IsAuto(), m[frame.Bottom].IsAuto()
	}
	return m[frame.Left].IsAuto(), m[frame.Right].IsAuto()
}

func (f *flexer) crossAutoMargins(it *flexItem) (bool, bool) {
	m := it.box.Style.Margin
	if f.column {
		return m[frame.Left].IsAuto(), m[frame.Right].IsAuto()
	}
	return m[frame.Top].IsAuto(), m[frame.Bottom].IsAuto()
}
