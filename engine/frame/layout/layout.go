package layout

import (
	"errors"
	"fmt"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/npillmayer/tambo/engine/resources"
	"github.com/npillmayer/tambo/engine/text"
	"github.com/npillmayer/tambo/engine/text/monospace"
	"github.com/npillmayer/uax/bidi"
)

// ErrNullBox is returned for layout requests without a box tree.
var ErrNullBox = errors.New("cannot lay out null box")

// Env is the explicit context of layout: external services and
// document-wide values. Caches live inside the services, so an Env should
// be scoped to one document.
type Env struct {
	Measurer    text.Measurer          // text measurement service
	Images      resources.ImageService // image decode service
	Viewport    dimen.Point            // size of the initial containing block
	Placeholder dimen.Point            // size of images without intrinsic size or hints
}

// Extent is an available size, either definite or indefinite.
type Extent struct {
	Size     dimen.Dimen
	Definite bool
}

// Definite creates a definite extent. Negative sizes are clamped to zero.
func Definite(d dimen.Dimen) Extent {
	return Extent{Size: dimen.Max(0, d), Definite: true}
}

// Indefinite is an extent of unknown size.
var Indefinite = Extent{}

func (e Extent) String() string {
	if !e.Definite {
		return "indefinite"
	}
	return e.Size.String()
}

// Constraints are the input of a layout request: the size of the
// containing block and the writing direction, plus sizes a parent context
// may impose on a box.
type Constraints struct {
	Width, Height Extent         // content size of the containing block
	Direction     bidi.Direction // writing direction of the containing block
	FixedWidth    Extent         // border-box width imposed by the parent, e.g. by flexing
	FixedHeight   Extent         // border-box height imposed by the parent, e.g. by stretching
	ShrinkToFit   bool           // auto width is fit-content instead of fill-available
}

func (c Constraints) String() string {
	return fmt.Sprintf("{w=%v h=%v}", c.Width, c.Height)
}

// Layouter performs layout passes. It holds per-pass caches and is not
// safe for concurrent use.
type Layouter struct {
	env       *Env
	intrinsic map[*frame.Box]intrinsicSizes
	margins   map[*frame.Box]collapsedMargins
	baselines map[*frame.Box]bool // boxes which have a baseline
}

// NewLayouter creates a layouter for an environment. Missing services are
// replaced by defaults: a monospace measurer and an image service which
// knows no images.
func NewLayouter(env *Env) *Layouter {
	if env == nil {
		env = &Env{}
	}
	if env.Measurer == nil {
		env.Measurer = monospace.Measurer(0, nil)
	}
	if env.Images == nil {
		env.Images = resources.Static{}
	}
	if env.Viewport.X <= 0 {
		env.Viewport = dimen.Point{X: 800 * dimen.PX, Y: 600 * dimen.PX}
	}
	return &Layouter{env: env}
}

// Env returns the environment of a layouter.
func (l *Layouter) Env() *Env {
	return l.env
}

// Layout lays out a box tree. The root box is sized against the viewport
// and placed at the origin.
func (l *Layouter) Layout(root *frame.Box) error {
	if root == nil {
		return ErrNullBox
	}
	l.intrinsic = make(map[*frame.Box]intrinsicSizes)
	l.margins = make(map[*frame.Box]collapsedMargins)
	l.baselines = make(map[*frame.Box]bool)
	root.Walk(func(b *frame.Box) bool {
		b.ResetGeometry()
		return true
	})
	dir := bidi.LeftToRight
	if root.Style != nil {
		dir = root.Style.Direction
	}
	c := Constraints{
		Width:     Definite(l.env.Viewport.X),
		Height:    Definite(l.env.Viewport.Y),
		Direction: dir,
	}
	tracer().Debugf("layout of %s in viewport %v", root, l.env.Viewport)
	l.Resolve(root, c)
	return nil
}

// Resolve lays out a box and its descendants, with the top-left corner of
// the margin box at the origin: it computes edges and used width, runs
// the formatting context of the box, then computes the used height and
// populates the four rectangles of the box.
func (l *Layouter) Resolve(box *frame.Box, c Constraints) {
	if l.margins == nil {
		l.intrinsic = make(map[*frame.Box]intrinsicSizes)
		l.margins = make(map[*frame.Box]collapsedMargins)
		l.baselines = make(map[*frame.Box]bool)
	}
	if box.Style == nil {
		box.Style = style.InitialStyle()
	}
	cs := box.Style
	l.resolveEdges(box, c.Width)
	ctx := ContextFor(box)
	cw := l.usedWidth(box, c)
	inner := Constraints{Width: Definite(cw), Direction: cs.Direction}
	ch, hasHeight := l.specifiedHeight(box, c)
	if c.FixedHeight.Definite {
		ch, hasHeight = dimen.Max(0, c.FixedHeight.Size-box.Paddings.Vertical()-box.Borders.Vertical()), true
	}
	if hasHeight {
		inner.Height = Definite(ch)
	}
	res := ctx.Layout(l, box, inner)
	if !hasHeight {
		ch = l.clampHeight(box, c, res.Height)
	} else if !c.FixedHeight.Definite {
		ch = l.clampHeight(box, c, ch)
	}
	l.collapseThrough(box, res, ch)
	box.SetGeometry(0, 0, cw, ch)
	for _, child := range box.Children() {
		child.Translate(box.Content.TopL.X, box.Content.TopL.Y)
	}
	if res.HasBaseline {
		box.Baseline = box.Content.TopL.Y - box.Border.TopL.Y + res.Baseline
		l.baselines[box] = true
	} else {
		box.Baseline = box.Border.Height() + dimen.Max(0, box.Margins[frame.Bottom])
		delete(l.baselines, box)
	}
	if cs.IsPositioned() {
		dx, dy := relativeOffset(cs, c)
		box.Translate(dx, dy)
	}
	if box.IsScrollContainer() {
		box.UpdateScrollExtent()
	}
	tracer().Debugf("%s: %v in %v", box, box.Border, c)
}

// HasBaseline is true if a box has been laid out with a content baseline,
// e.g. from its first line box.
func (l *Layouter) HasBaseline(box *frame.Box) bool {
	return l.baselines[box]
}

// --- Edges -----------------------------------------------------------------

// resolveEdges computes the used values of margins, borders and paddings.
// Percentages refer to the width of the containing block. Auto margins are
// zero at this point.
func (l *Layouter) resolveEdges(box *frame.Box, cbWidth Extent) {
	cs := box.Style
	for e := 0; e < 4; e++ {
		box.Paddings[e] = dimen.Max(0, cs.Padding[e].OrZero(cbWidth.Size))
		if !cbWidth.Definite && cs.Padding[e].IsPercent() {
			box.Paddings[e] = 0
		}
		box.Borders[e] = dimen.Max(0, cs.BorderWidth[e])
		box.Margins[e], _ = cs.Margin[e].Resolve(cbWidth.Size, cbWidth.Definite)
	}
	switch box.Type {
	case frame.AnonymousInline:
		box.Paddings, box.Borders, box.Margins = frame.Edges{}, frame.Edges{}, frame.Edges{}
	case frame.InlineBox:
		box.Margins[frame.Top], box.Margins[frame.Bottom] = 0, 0
	case frame.TableRow, frame.TableRowGroup:
		box.Paddings, box.Borders, box.Margins = frame.Edges{}, frame.Edges{}, frame.Edges{}
	case frame.TableCell:
		box.Margins = frame.Edges{}
	}
}

func (l *Layouter) horizontalDecoration(box *frame.Box) dimen.Dimen {
	return box.Paddings.Horizontal() + box.Borders.Horizontal()
}

func (l *Layouter) verticalDecoration(box *frame.Box) dimen.Dimen {
	return box.Paddings.Vertical() + box.Borders.Vertical()
}

// --- Widths ----------------------------------------------------------------

// usedWidth computes the content width of a box and resolves auto margins.
func (l *Layouter) usedWidth(box *frame.Box, c Constraints) dimen.Dimen {
	pb := l.horizontalDecoration(box)
	if c.FixedWidth.Definite {
		return dimen.Max(0, c.FixedWidth.Size-pb)
	}
	var w dimen.Dimen
	if box.IsReplaced() {
		w = l.replacedWidth(box, c)
	} else if sw, ok := l.specifiedWidth(box, c); ok {
		w = sw
	} else if l.shrinksToFit(box, c) || !c.Width.Definite {
		min, max := l.intrinsicContent(box)
		if c.Width.Definite {
			avail := c.Width.Size - box.Margins.Horizontal() - pb
			w = dimen.Min(max, dimen.Max(min, avail))
		} else {
			w = max
		}
	} else {
		w = c.Width.Size - box.Margins.Horizontal() - pb
	}
	w = l.clampWidth(box, c, w)
	if c.Width.Definite && takesAutoMargins(box) {
		free := c.Width.Size - w - pb - box.Margins.Horizontal()
		autoL, autoR := box.Style.Margin[frame.Left].IsAuto(), box.Style.Margin[frame.Right].IsAuto()
		if free > 0 {
			switch {
			case autoL && autoR:
				box.Margins[frame.Left] = free / 2
				box.Margins[frame.Right] = free - free/2
			case autoL:
				box.Margins[frame.Left] = free
			case autoR:
				box.Margins[frame.Right] = free
			}
		}
	}
	return dimen.Max(0, w)
}

// specifiedWidth returns the content width from property `width`, if it is
// definite.
func (l *Layouter) specifiedWidth(box *frame.Box, c Constraints) (dimen.Dimen, bool) {
	if box.Type == frame.InlineBox || box.Type == frame.AnonymousInline {
		return 0, false
	}
	w, ok := box.Style.Width.Resolve(c.Width.Size, c.Width.Definite)
	if !ok {
		return 0, false
	}
	if box.Style.BoxSizing == style.BorderBox {
		w -= l.horizontalDecoration(box)
	}
	return dimen.Max(0, w), true
}

// specifiedHeight returns the content height from property `height`, if it
// is definite.
func (l *Layouter) specifiedHeight(box *frame.Box, c Constraints) (dimen.Dimen, bool) {
	if box.Type == frame.InlineBox || box.Type == frame.AnonymousInline {
		return 0, false
	}
	h, ok := box.Style.Height.Resolve(c.Height.Size, c.Height.Definite)
	if !ok {
		return 0, false
	}
	if box.Style.BoxSizing == style.BorderBox {
		h -= l.verticalDecoration(box)
	}
	return dimen.Max(0, h), true
}

// clampWidth applies min-width and max-width to a content width.
func (l *Layouter) clampWidth(box *frame.Box, c Constraints, w dimen.Dimen) dimen.Dimen {
	cs := box.Style
	adjust := dimen.Zero
	if cs.BoxSizing == style.BorderBox {
		adjust = l.horizontalDecoration(box)
	}
	if max, ok := cs.MaxWidth.Resolve(c.Width.Size, c.Width.Definite); ok {
		w = dimen.Min(w, max-adjust)
	}
	if min, ok := cs.MinWidth.Resolve(c.Width.Size, c.Width.Definite); ok {
		w = dimen.Max(w, min-adjust)
	}
	return dimen.Max(0, w)
}

// clampHeight applies min-height and max-height to a content height.
func (l *Layouter) clampHeight(box *frame.Box, c Constraints, h dimen.Dimen) dimen.Dimen {
	cs := box.Style
	adjust := dimen.Zero
	if cs.BoxSizing == style.BorderBox {
		adjust = l.verticalDecoration(box)
	}
	if max, ok := cs.MaxHeight.Resolve(c.Height.Size, c.Height.Definite); ok {
		h = dimen.Min(h, max-adjust)
	}
	if min, ok := cs.MinHeight.Resolve(c.Height.Size, c.Height.Definite); ok {
		h = dimen.Max(h, min-adjust)
	}
	return dimen.Max(0, h)
}

// shrinksToFit is true for boxes whose auto width is the fit-content width.
func (l *Layouter) shrinksToFit(box *frame.Box, c Constraints) bool {
	if c.ShrinkToFit {
		return true
	}
	switch box.Type {
	case frame.InlineBlockBox, frame.TableBox:
		return true
	}
	return box.Display().Contains(style.TableMode)
}

// takesAutoMargins is true for block-level boxes in normal flow, for which
// auto horizontal margins absorb free space.
func takesAutoMargins(box *frame.Box) bool {
	switch box.Type {
	case frame.BlockBox, frame.AnonymousBlock, frame.TableBox, frame.TableCaption:
		return true
	case frame.ReplacedBox:
		return box.Display().IsBlockLevel()
	}
	return false
}

// relativeOffset returns the offset of a positioned box from its position
// in normal flow. Absolutely positioned boxes are treated like relatively
// positioned ones.
func relativeOffset(cs *style.ComputedStyle, c Constraints) (dx, dy dimen.Dimen) {
	if l, ok := cs.Inset[frame.Left].Resolve(c.Width.Size, c.Width.Definite); ok {
		dx = l
	} else if r, ok := cs.Inset[frame.Right].Resolve(c.Width.Size, c.Width.Definite); ok {
		dx = -r
	}
	if t, ok := cs.Inset[frame.Top].Resolve(c.Height.Size, c.Height.Definite); ok {
		dy = t
	} else if b, ok := cs.Inset[frame.Bottom].Resolve(c.Height.Size, c.Height.Definite); ok {
		dy = -b
	}
	return
}

// --- Contexts --------------------------------------------------------------

// ContextType enumerates the formatting contexts.
type ContextType uint8

// Formatting context types.
const (
	BlockFormatting ContextType = iota
	InlineFormatting
	FlexFormatting
	GridFormatting
	TableFormatting
	ReplacedContent
)

func (t ContextType) String() string {
	switch t {
	case BlockFormatting:
		return "block"
	case InlineFormatting:
		return "inline"
	case FlexFormatting:
		return "flex"
	case GridFormatting:
		return "grid"
	case TableFormatting:
		return "table"
	case ReplacedContent:
		return "replaced"
	}
	return "?"
}

// Result is the outcome of laying out the children of a box.
type Result struct {
	Height      dimen.Dimen // content height
	Baseline    dimen.Dimen // first baseline, relative to the top of the content box
	HasBaseline bool
	escapeTop   *marginPair // margins of children adjoining the top margin of the box
	escapeBot   *marginPair // margins of children adjoining the bottom margin of the box
	empty       bool        // no in-flow content; margins may collapse through the box
}

// Context is a formatting context. Layout positions the children of a box
// inside its content box, with the content box at the origin. The content
// width is c.Width; c.Height is definite if the box has a definite height.
// Intrinsic returns the min-content and max-content widths of the content
// box.
type Context interface {
	Type() ContextType
	Layout(l *Layouter, box *frame.Box, c Constraints) Result
	Intrinsic(l *Layouter, box *frame.Box) (min, max dimen.Dimen)
}

// ContextFor selects the formatting context a box establishes for its
// children, from its box type and computed display.
func ContextFor(box *frame.Box) Context {
	if box.IsReplaced() {
		return ReplacedContext{}
	}
	d := box.Display()
	switch {
	case d.Contains(style.TableMode) || box.Type == frame.TableBox:
		return TableContext{}
	case d.Contains(style.FlexMode):
		return FlexContext{}
	case d.Contains(style.GridMode):
		return GridContext{}
	}
	if hasInlineContent(box) {
		return InlineContext{}
	}
	return BlockContext{}
}

// hasInlineContent is true if the children of a box are inline-level.
// The box tree builder guarantees that children are either all block-level
// or all inline-level.
func hasInlineContent(box *frame.Box) bool {
	if box.ChildCount() == 0 {
		return false
	}
	for _, ch := range box.Children() {
		if !ch.Type.IsInlineLevel() {
			return false
		}
	}
	return true
}

// FontSpecOf returns the font selection of a computed style.
func FontSpecOf(cs *style.ComputedStyle) text.FontSpec {
	return text.FontSpec{
		Families: cs.FontFamily,
		Size:     cs.FontSize,
		Weight:   cs.FontWeight,
		Italic:   cs.FontStyle != style.FontStyleNormal,
	}
}
