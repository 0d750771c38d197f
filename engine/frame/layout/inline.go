package layout

import (
	"strings"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/uax/bidi"
)

// InlineContext breaks inline-level content into line boxes.
//
// Content is flattened into a sequence of items: text fragments, atomic
// inlines, and the start and end edges of inline boxes. Lines are filled
// greedily, breaking only at opportunities reported by the text measurer
// and around atomic inlines. Text runs are attached to their text boxes;
// the rectangles of inline boxes are the union of their fragments on all
// lines.
type InlineContext struct{}

// Type is InlineFormatting.
func (InlineContext) Type() ContextType { return InlineFormatting }

type itemKind uint8

const (
	itemText itemKind = iota
	itemAtomic
	itemOpen
	itemClose
)

type inlineItem struct {
	kind       itemKind
	box        *frame.Box
	frag       text.Fragment
	font       text.FontSpec
	width      dimen.Dimen
	minWidth   dimen.Dimen // min-content contribution of atomics, when measuring
	trailing   dimen.Dimen // hanging white space
	ascent     dimen.Dimen // including half-leading
	descent    dimen.Dimen // including half-leading
	path       []*frame.Box
	breakAfter bool
	forced     bool
}

type lineBox struct {
	items []*inlineItem
	width dimen.Dimen
}

// visibleWidth is the width of a line without hanging white space at its end.
func (ln *lineBox) visibleWidth() dimen.Dimen {
	w := ln.width
	for i := len(ln.items) - 1; i >= 0; i-- {
		it := ln.items[i]
		if it.kind == itemClose {
			continue
		}
		if it.kind == itemText {
			w -= it.trailing
		}
		break
	}
	return w
}

// phantom lines have neither text nor atomics nor visible edges; they
// take no space.
func (ln *lineBox) phantom() bool {
	for _, it := range ln.items {
		if it.kind == itemAtomic || it.width != 0 || it.kind == itemText && it.frag.Text != "" {
			return false
		}
		if it.kind == itemText && it.forced {
			return false
		}
	}
	return true
}

// Layout fills line boxes and positions their content.
func (InlineContext) Layout(l *Layouter, box *frame.Box, c Constraints) Result {
	avail := c.Width.Size
	items := l.collectInline(box, avail, false)
	lines := breakLines(items, avail)
	cs := box.Style
	a, d := l.env.Measurer.Metrics(FontSpecOf(cs))
	ht, hb := halfLeading(cs, a, d)
	strutA, strutD := a+ht, d+hb
	frags := make(map[*frame.Box]dimen.Rect)
	var res Result
	y := dimen.Zero
	for _, ln := range lines {
		if ln.phantom() {
			continue
		}
		asc, desc := l.lineMetrics(ln, strutA, strutD, cs.FontSize/2)
		baseline := y + asc
		x := alignOffset(cs, avail-ln.visibleWidth())
		l.placeLine(ln, x, y, baseline, asc+desc, cs.FontSize/2, frags)
		if !res.HasBaseline {
			res.Baseline, res.HasBaseline = baseline, true
		}
		y += asc + desc
	}
	for b, r := range frags {
		setInlineGeometry(b, r)
	}
	for _, it := range items {
		if it.kind == itemText && len(it.box.Runs) > 0 {
			r := it.box.Runs[0].Rect
			for _, run := range it.box.Runs[1:] {
				r = r.Union(run.Rect)
			}
			it.box.Margin, it.box.Border, it.box.Padding, it.box.Content = r, r, r, r
			it.box.Baseline = it.box.Runs[0].Baseline - r.TopL.Y
		}
	}
	tracer().Debugf("%s: %d lines, height %v", box, len(lines), y)
	res.Height = y
	return res
}

// Intrinsic measures the widest unbreakable sequence (min-content) and the
// widest line without soft wraps (max-content).
func (InlineContext) Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen) {
	items := l.collectInline(box, 0, true)
	var run, line dimen.Dimen
	for i, it := range items {
		mw := it.width
		if it.kind == itemAtomic {
			mw = it.minWidth
		}
		run += mw
		line += it.width
		last := i == len(items)-1
		if it.breakAfter || last {
			min = dimen.Max(min, run-it.trailing)
			run = 0
		}
		if it.forced || last {
			max = dimen.Max(max, line-it.trailing)
			line = 0
		}
	}
	return
}

// --- Collecting items ------------------------------------------------------

type inlineCollector struct {
	l         *Layouter
	avail     dimen.Dimen
	cb        Extent
	measuring bool
	dir       bidi.Direction
	items     []*inlineItem
	prevSpace bool // previous text ended in collapsible white space
}

// collectInline flattens the inline content of a container. If measuring
// is set, atomic inlines are not laid out but report their intrinsic
// contributions.
func (l *Layouter) collectInline(container *frame.Box, avail dimen.Dimen, measuring bool) []*inlineItem {
	ic := &inlineCollector{
		l:         l,
		avail:     avail,
		cb:        Definite(avail),
		measuring: measuring,
		dir:       container.Style.Direction,
		prevSpace: true,
	}
	if measuring {
		ic.cb = Indefinite
	}
	for _, ch := range container.Children() {
		ic.collect(ch, nil)
	}
	return ic.items
}

func (ic *inlineCollector) collect(b *frame.Box, path []*frame.Box) {
	if b.Style == nil {
		b.Style = style.InitialStyle()
	}
	switch b.Type {
	case frame.AnonymousInline:
		ic.text(b, path)
	case frame.InlineBox:
		ic.l.resolveEdges(b, ic.cb)
		open := &inlineItem{kind: itemOpen, box: b, path: path,
			width: b.Margins[frame.Left] + b.Borders[frame.Left] + b.Paddings[frame.Left]}
		ic.items = append(ic.items, open)
		inner := append(path[:len(path):len(path)], b)
		for _, ch := range b.Children() {
			ic.collect(ch, inner)
		}
		cl := &inlineItem{kind: itemClose, box: b, path: path,
			width: b.Margins[frame.Right] + b.Borders[frame.Right] + b.Paddings[frame.Right]}
		if last := ic.items[len(ic.items)-1]; last != open {
			cl.breakAfter, last.breakAfter = last.breakAfter, false
			cl.forced, last.forced = last.forced, false
			cl.trailing = last.trailing
		}
		ic.items = append(ic.items, cl)
	default:
		ic.atomic(b, path)
	}
}

func (ic *inlineCollector) text(b *frame.Box, path []*frame.Box) {
	if !ic.measuring {
		b.Runs = b.Runs[:0]
	}
	cs := b.Style
	ws := cs.WhiteSpace
	txt := b.Text
	if ws.CollapsesSpaces() && ic.prevSpace {
		txt = strings.TrimLeft(txt, " ")
	}
	if txt == "" {
		return
	}
	font := FontSpecOf(cs)
	emergency := dimen.Zero
	if ws.Wraps() && !ic.measuring {
		emergency = ic.avail
	}
	frags := ic.l.env.Measurer.Measure(txt, font, emergency)
	a, d := ic.l.env.Measurer.Metrics(font)
	ht, hb := halfLeading(cs, a, d)
	for i, f := range frags {
		it := &inlineItem{
			kind:     itemText,
			box:      b,
			frag:     f,
			font:     font,
			width:    f.Width,
			trailing: f.Trailing,
			ascent:   f.Ascent + ht,
			descent:  f.Descent + hb,
			path:     path,
			forced:   f.ForcedBreak,
		}
		it.breakAfter = f.ForcedBreak || ws.Wraps() && (i < len(frags)-1 || f.Trailing > 0)
		ic.items = append(ic.items, it)
	}
	ic.prevSpace = ws.CollapsesSpaces() && (strings.HasSuffix(txt, " ") || strings.HasSuffix(txt, "\n"))
}

func (ic *inlineCollector) atomic(b *frame.Box, path []*frame.Box) {
	it := &inlineItem{kind: itemAtomic, box: b, path: path, breakAfter: true}
	if ic.measuring {
		it.minWidth, it.width = ic.l.intrinsicOuter(b)
	} else {
		ic.l.Resolve(b, Constraints{Width: ic.cb, Direction: ic.dir, ShrinkToFit: true})
		it.width = b.MarginBoxWidth()
		it.minWidth = it.width
	}
	for i := len(ic.items) - 1; i >= 0; i-- { // break opportunity before the atomic
		if ic.items[i].kind != itemOpen {
			ic.items[i].breakAfter = true
			break
		}
	}
	ic.items = append(ic.items, it)
	ic.prevSpace = false
}

// --- Line breaking ---------------------------------------------------------

// breakLines fills lines greedily. A line is broken before an item if the
// preceding item allows a break and the unbreakable sequence starting at
// the item does not fit.
func breakLines(items []*inlineItem, avail dimen.Dimen) []*lineBox {
	seq := make([]dimen.Dimen, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.breakAfter || i == len(items)-1 {
			seq[i] = it.width - it.trailing
		} else {
			seq[i] = it.width + seq[i+1]
		}
	}
	var lines []*lineBox
	cur := &lineBox{}
	for i, it := range items {
		if i > 0 && items[i-1].breakAfter && len(cur.items) > 0 && cur.width+seq[i] > avail {
			lines = append(lines, cur)
			cur = &lineBox{}
		}
		cur.items = append(cur.items, it)
		cur.width += it.width
		if it.forced {
			lines = append(lines, cur)
			cur = &lineBox{}
		}
	}
	if len(cur.items) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// --- Placing lines ---------------------------------------------------------

// lineMetrics returns the extent of a line above and below its baseline.
func (l *Layouter) lineMetrics(ln *lineBox, strutA, strutD, xHeight dimen.Dimen) (asc, desc dimen.Dimen) {
	asc, desc = strutA, strutD
	var hanging dimen.Dimen // top- and bottom-aligned atomics
	for _, it := range ln.items {
		switch it.kind {
		case itemText:
			asc, desc = dimen.Max(asc, it.ascent), dimen.Max(desc, it.descent)
		case itemOpen, itemClose:
			a, d := l.env.Measurer.Metrics(FontSpecOf(it.box.Style))
			ht, hb := halfLeading(it.box.Style, a, d)
			asc, desc = dimen.Max(asc, a+ht), dimen.Max(desc, d+hb)
		case itemAtomic:
			switch it.box.Style.VerticalAlign {
			case style.VAlignTop, style.VAlignBottom:
				hanging = dimen.Max(hanging, it.box.MarginBoxHeight())
			default:
				above := atomicAscent(it.box, xHeight)
				asc = dimen.Max(asc, above)
				desc = dimen.Max(desc, it.box.MarginBoxHeight()-above)
			}
		}
	}
	if hanging > asc+desc {
		desc += hanging - (asc + desc)
	}
	return
}

// atomicAscent is the extent of an atomic inline above the baseline of
// its line.
func atomicAscent(b *frame.Box, xHeight dimen.Dimen) dimen.Dimen {
	if b.Style.VerticalAlign == style.VAlignMiddle {
		return (b.MarginBoxHeight() + xHeight) / 2
	}
	return b.Margins[frame.Top] + b.Baseline
}

func (l *Layouter) placeLine(ln *lineBox, x, top, baseline, height, xHeight dimen.Dimen,
	frags map[*frame.Box]dimen.Rect) {
	//
	open := make(map[*frame.Box]dimen.Dimen)
	if len(ln.items) > 0 { // inline boxes continued from the previous line
		for _, b := range ln.items[0].path {
			open[b] = x
		}
		if first := ln.items[0]; first.kind == itemClose {
			open[first.box] = x
		}
	}
	fragment := func(b *frame.Box, from, to dimen.Dimen) {
		a, d := l.env.Measurer.Metrics(FontSpecOf(b.Style))
		r := dimen.Rect{
			TopL: dimen.Point{X: from, Y: baseline - a - b.Paddings[frame.Top] - b.Borders[frame.Top]},
			BotR: dimen.Point{X: dimen.Max(from, to), Y: baseline + d + b.Paddings[frame.Bottom] + b.Borders[frame.Bottom]},
		}
		if prev, ok := frags[b]; ok {
			r = prev.Union(r)
		}
		frags[b] = r
	}
	for _, it := range ln.items {
		switch it.kind {
		case itemText:
			f := it.frag
			if f.Text != "" {
				it.box.Runs = append(it.box.Runs, frame.TextRun{
					Text:     f.Text,
					Font:     it.font,
					Rect:     dimen.RectXYWH(x, baseline-f.Ascent, f.Width, f.Ascent+f.Descent),
					Baseline: baseline,
				})
			}
			x += it.width
		case itemAtomic:
			b := it.box
			var y dimen.Dimen
			switch b.Style.VerticalAlign {
			case style.VAlignTop:
				y = top
			case style.VAlignBottom:
				y = top + height - b.MarginBoxHeight()
			default:
				y = baseline - atomicAscent(b, xHeight)
			}
			b.Translate(x, y)
			x += it.width
		case itemOpen:
			open[it.box] = x + it.box.Margins[frame.Left]
			x += it.width
		case itemClose:
			start, ok := open[it.box]
			if !ok {
				start = x
			}
			x += it.width
			fragment(it.box, start, x-it.box.Margins[frame.Right])
			delete(open, it.box)
		}
	}
	for b, start := range open {
		fragment(b, start, x)
	}
}

// setInlineGeometry derives the rectangles of an inline box from the union
// of its border-box fragments.
func setInlineGeometry(b *frame.Box, border dimen.Rect) {
	b.Border = border
	b.Padding = border.Inset(b.Borders[frame.Top], b.Borders[frame.Right],
		b.Borders[frame.Bottom], b.Borders[frame.Left])
	b.Content = b.Padding.Inset(b.Paddings[frame.Top], b.Paddings[frame.Right],
		b.Paddings[frame.Bottom], b.Paddings[frame.Left])
	b.Margin = border.Outset(0, dimen.Max(0, b.Margins[frame.Right]), 0, dimen.Max(0, b.Margins[frame.Left]))
}

// halfLeading splits the difference between line height and font extent
// above and below. Line height `normal` adds no leading.
func halfLeading(cs *style.ComputedStyle, ascent, descent dimen.Dimen) (top, bottom dimen.Dimen) {
	if cs.LineHeight.Normal {
		return 0, 0
	}
	lead := cs.UsedLineHeight() - (ascent + descent)
	return lead / 2, lead - lead/2
}

// alignOffset is the start position of a line with free space free.
func alignOffset(cs *style.ComputedStyle, free dimen.Dimen) dimen.Dimen {
	if free <= 0 {
		return 0
	}
	rtl := cs.Direction == bidi.RightToLeft
	switch cs.TextAlign {
	case style.TextAlignCenter:
		return free / 2
	case style.TextAlignRight:
		return free
	case style.TextAlignEnd:
		if !rtl {
			return free
		}
	case style.TextAlignStart, style.TextAlignJustify:
		if rtl {
			return free
		}
	}
	return 0
}
