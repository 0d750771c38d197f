package display

import (
	"image/color"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
)

// Generator creates display lists. A generator may be reused for
// consecutive passes, but is not safe for concurrent use.
type Generator struct {
	list List
}

// NewGenerator creates a display list generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate creates the display list for a laid-out box tree. scroll is the
// scroll offset of the viewport; the box tree is in document coordinates,
// the display list is in viewport coordinates.
func Generate(root *frame.Box, scroll dimen.Point) List {
	return NewGenerator().Generate(root, scroll)
}

// Generate creates the display list for a laid-out box tree, see the
// package-level function.
func (g *Generator) Generate(root *frame.Box, scroll dimen.Point) List {
	g.list = make(List, 0, 256)
	if root == nil {
		return g.list
	}
	g.paintLayer(layer{
		box:     root,
		offset:  dimen.Point{X: -scroll.X, Y: -scroll.Y},
		opacity: 1,
	})
	tracer().Debugf("display list with %d commands", len(g.list))
	return g.list
}

func (g *Generator) emit(cmd Command) {
	g.list = append(g.list, cmd)
}

// layer is a stacking context to paint. Contexts painted out of document
// order carry the clips of the ancestors between them and the enclosing
// context, bottom-most first.
type layer struct {
	box     *frame.Box
	offset  dimen.Point
	clips   []dimen.Rect
	opacity float64
}

// painter paints the normal flow of one stacking context.
type painter struct {
	g      *Generator
	clips  *arraystack.Stack // of dimen.Rect
	levels *treemap.Map      // z-index → []layer
}

func (g *Generator) paintLayer(ly layer) {
	for _, r := range ly.clips {
		g.emit(PushClip{Rect: r})
	}
	box := ly.box
	opacity := ly.opacity
	if box.Style != nil {
		opacity *= box.Style.Opacity
	}
	sized := establishesLayer(box) && box.Style.Width.IsAbsolute() && box.Style.Height.IsAbsolute()
	if sized {
		g.emit(PushClip{Rect: shift(box.Border, ly.offset)})
	}
	p := &painter{
		g:      g,
		clips:  arraystack.New(),
		levels: treemap.NewWithIntComparator(),
	}
	p.descend(box, ly.offset, opacity, false) // collect child contexts
	g.decorate(box, ly.offset, opacity)
	p.paintLevels(func(z int) bool { return z < 0 })
	p.descend(box, ly.offset, opacity, true)
	p.paintLevels(func(z int) bool { return z > 0 })
	if sized {
		g.emit(PopClip{})
	}
	for range ly.clips {
		g.emit(PopClip{})
	}
}

// paintLevels paints the collected child contexts of selected levels in
// ascending z-order.
func (p *painter) paintLevels(selected func(int) bool) {
	it := p.levels.Iterator()
	for it.Next() {
		if !selected(it.Key().(int)) {
			continue
		}
		for _, ly := range it.Value().([]layer) {
			p.g.paintLayer(ly)
		}
	}
}

// descend walks the children of a box. With paint unset it only collects
// child contexts with a z-index other than 0; with paint set it emits
// commands for the normal flow. Both walks track clips and scroll offsets
// the same way.
func (p *painter) descend(box *frame.Box, offset dimen.Point, opacity float64, paint bool) {
	clip, clipped := clipRect(box, offset)
	if clipped {
		p.clips.Push(clip)
		if paint {
			p.g.emit(PushClip{Rect: clip})
		}
	}
	inner := offset
	if box.Scroll != nil {
		inner = dimen.Point{X: offset.X - box.Scroll.X, Y: offset.Y - box.Scroll.Y}
	}
	for _, ch := range box.Children() {
		if establishesLayer(ch) {
			if z := frame.StackLevel(ch); z != 0 {
				if !paint {
					p.postpone(z, layer{box: ch, offset: inner, clips: p.clipChain(), opacity: opacity})
				}
			} else if paint {
				p.g.paintLayer(layer{box: ch, offset: inner, opacity: opacity})
			}
			continue
		}
		if paint {
			p.g.decorate(ch, inner, opacity)
		}
		p.descend(ch, inner, opacity, paint)
	}
	if clipped {
		p.clips.Pop()
		if paint {
			p.g.emit(PopClip{})
		}
	}
}

func (p *painter) postpone(z int, ly layer) {
	var level []layer
	if v, found := p.levels.Get(z); found {
		level = v.([]layer)
	}
	p.levels.Put(z, append(level, ly))
}

// clipChain returns the clips currently in effect, bottom-most first.
func (p *painter) clipChain() []dimen.Rect {
	values := p.clips.Values() // top-most first
	chain := make([]dimen.Rect, len(values))
	for i, v := range values {
		chain[len(values)-1-i] = v.(dimen.Rect)
	}
	return chain
}

// decorate emits the commands for the box itself: background, border,
// replaced content and text runs.
func (g *Generator) decorate(box *frame.Box, offset dimen.Point, opacity float64) {
	cs := box.Style
	if cs == nil || cs.Visibility == style.Hidden {
		return
	}
	if box.Element != nil && box.Type != frame.AnonymousInline {
		if cs.BackgroundColor.A > 0 {
			g.emit(SolidRect{Rect: shift(box.Border, offset), Color: fade(cs.BackgroundColor, opacity)})
		}
		if b, ok := borderOf(box, offset, opacity); ok {
			g.emit(b)
		}
	}
	if box.IsReplaced() {
		g.emit(Image{
			Rect:    shift(box.Content, offset),
			Source:  box.Image.Src,
			Handle:  box.Image.Handle,
			Pending: box.Image.Pending,
			Opacity: opacity,
		})
	}
	for _, run := range box.Runs {
		origin := dimen.Point{X: run.Rect.TopL.X + offset.X, Y: run.Baseline + offset.Y}
		c := fade(cs.Color, opacity)
		g.emit(TextRun{Text: run.Text, Font: run.Font, Origin: origin, Width: run.Rect.Width(), Color: c})
		g.decorateText(cs, shift(run.Rect, offset), origin.Y, c)
	}
}

// decorateText emits thin rectangles for underline, overline and
// line-through.
func (g *Generator) decorateText(cs *style.ComputedStyle, r dimen.Rect, baseline dimen.Dimen, c color.RGBA) {
	if cs.TextDecoration == style.DecorationNone || r.Width() <= 0 {
		return
	}
	thickness := dimen.Max(dimen.PX, cs.FontSize/16)
	line := func(y dimen.Dimen) {
		g.emit(SolidRect{Rect: dimen.RectXYWH(r.TopL.X, y, r.Width(), thickness), Color: c})
	}
	if cs.TextDecoration&style.DecorationUnderline != 0 {
		line(baseline + thickness)
	}
	if cs.TextDecoration&style.DecorationOverline != 0 {
		line(r.TopL.Y)
	}
	if cs.TextDecoration&style.DecorationLineThrough != 0 {
		line((r.TopL.Y+baseline)/2 + thickness)
	}
}

func borderOf(box *frame.Box, offset dimen.Point, opacity float64) (Border, bool) {
	b := Border{Rect: shift(box.Border, offset)}
	visible := false
	for e := 0; e < 4; e++ {
		st := box.Style.BorderStyle[e]
		if box.Borders[e] <= 0 || st == style.BorderNone || st == style.BorderHidden {
			continue
		}
		b.Widths[e] = box.Borders[e]
		b.Colors[e] = fade(box.Style.BorderColor[e], opacity)
		b.Styles[e] = st
		visible = true
	}
	return b, visible
}

// establishesLayer is true for boxes painted as a stacking context of
// their own.
func establishesLayer(box *frame.Box) bool {
	return box.Style != nil && box.Type != frame.AnonymousInline && box.Style.EstablishesStackingContext()
}

// clipRect returns the padding box of a box clipping its overflow.
func clipRect(box *frame.Box, offset dimen.Point) (dimen.Rect, bool) {
	if box.Style == nil || box.Type == frame.AnonymousInline || !box.Style.ClipsOverflow() {
		return dimen.Rect{}, false
	}
	return shift(box.Padding, offset), true
}

func shift(r dimen.Rect, offset dimen.Point) dimen.Rect {
	return r.Translate(offset.X, offset.Y)
}

// fade applies an opacity to a color with premultiplied alpha.
func fade(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return color.RGBA{}
	}
	scale := func(v uint8) uint8 { return uint8(float64(v)*opacity + 0.5) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
