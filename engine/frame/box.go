package frame

/*
BSD License

Copyright (c) 2017–2022, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/engine/text"
)

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top    = style.Top
	Right  = style.Right
	Bottom = style.Bottom
	Left   = style.Left
)

// BoxType is the kind of a layout box.
type BoxType uint8

// Box types. Anonymous boxes have no element.
const (
	BlockBox BoxType = iota
	InlineBox
	InlineBlockBox
	AnonymousBlock
	AnonymousInline // a run of text
	FlexItem
	GridItem
	TableBox
	TableRowGroup
	TableRow
	TableCell
	TableCaption
	ReplacedBox
)

var boxTypeNames = [...]string{
	"block", "inline", "inline-block", "anon-block", "text", "flex-item",
	"grid-item", "table", "row-group", "row", "cell", "caption", "replaced",
}

func (bt BoxType) String() string {
	if int(bt) < len(boxTypeNames) {
		return boxTypeNames[bt]
	}
	return "?"
}

// IsAnonymous is true for box types which never have an element.
func (bt BoxType) IsAnonymous() bool {
	return bt == AnonymousBlock || bt == AnonymousInline
}

// IsInlineLevel is true for box types which take part in an inline
// formatting context of their parent.
func (bt BoxType) IsInlineLevel() bool {
	return bt == InlineBox || bt == InlineBlockBox || bt == AnonymousInline || bt == ReplacedBox
}

// ErrNullChild flags an error condition when a non-nil child has been expected.
var ErrNullChild = errors.New("child box must not be null")

// ErrCycle flags an attempt to make a box a descendant of itself.
var ErrCycle = errors.New("box would become its own descendant")

// ErrOwned flags an attempt to add a box which already has a parent.
var ErrOwned = errors.New("box already has a parent")

// Edges are used widths of margins, borders or paddings.
type Edges [4]dimen.Dimen

// Horizontal returns the sum of left and right edge.
func (e Edges) Horizontal() dimen.Dimen {
	return e[Left] + e[Right]
}

// Vertical returns the sum of top and bottom edge.
func (e Edges) Vertical() dimen.Dimen {
	return e[Top] + e[Bottom]
}

// TextRun is a positioned piece of text on a line.
type TextRun struct {
	Text     string
	Font     text.FontSpec
	Rect     dimen.Rect  // ink-less box: advance width × (ascent + descent)
	Baseline dimen.Dimen // y-coordinate of the baseline
}

// Replaced holds the data of replaced content, currently images.
type Replaced struct {
	Src          string
	HintW, HintH dimen.Dimen // from element attributes, 0 if unset
	Handle       string      // image handle for painting
	Pending      bool        // image was still loading during layout
}

// Box is a layout box. It is created by the box tree builder and
// populated by layout.
type Box struct {
	Type     BoxType
	Style    *style.ComputedStyle
	Element  *styledtree.StyNode // nil for anonymous boxes
	Text     string              // text content of AnonymousInline boxes
	Image    *Replaced           // for replaced elements, see IsReplaced
	ColSpan  int                 // for table cells, ≥ 1
	RowSpan  int                 // for table cells, ≥ 1
	parent   *Box
	children []*Box

	// Used values, populated by layout.
	Margins  Edges
	Borders  Edges
	Paddings Edges
	Margin   dimen.Rect
	Border   dimen.Rect
	Padding  dimen.Rect
	Content  dimen.Rect
	Baseline dimen.Dimen // first baseline, relative to the top of the border box
	Runs     []TextRun   // for text boxes
	Scroll   *ScrollState
}

// NewBox creates a box for a styled node. Text nodes create AnonymousInline
// boxes, which share the style of their parent element.
func NewBox(bt BoxType, sn *styledtree.StyNode) *Box {
	box := &Box{Type: bt, Element: sn, ColSpan: 1, RowSpan: 1}
	if sn != nil {
		box.Style = sn.Styles()
	}
	return box
}

// NewAnonymousBox creates an anonymous box with a given style.
func NewAnonymousBox(bt BoxType, styles *style.ComputedStyle) *Box {
	return &Box{Type: bt, Style: styles, ColSpan: 1, RowSpan: 1}
}

// NewTextBox creates a text run box.
func NewTextBox(txt string, styles *style.ComputedStyle) *Box {
	box := NewAnonymousBox(AnonymousInline, styles)
	box.Text = txt
	return box
}

// DOMNode returns the element of a box, if any.
func (box *Box) DOMNode() dom.Node {
	if box.Element == nil {
		return nil
	}
	return box.Element.DOMNode()
}

// IsReplaced is true for boxes of replaced elements. Inside flex and grid
// containers these have type FlexItem or GridItem.
func (box *Box) IsReplaced() bool {
	return box.Type == ReplacedBox || box.Image != nil
}

// Display returns the computed display mode of a box.
func (box *Box) Display() style.DisplayMode {
	if box.Style == nil {
		return style.NoMode
	}
	if box.Type == AnonymousBlock {
		return style.BlockMode | style.FlowMode
	}
	return box.Style.Display
}

// Parent returns the owner of a box.
func (box *Box) Parent() *Box {
	return box.parent
}

// Children returns the children of a box. Clients must not modify the slice.
func (box *Box) Children() []*Box {
	return box.children
}

// ChildCount returns the number of children.
func (box *Box) ChildCount() int {
	return len(box.children)
}

// Child returns the child at position i.
func (box *Box) Child(i int) (*Box, bool) {
	if i < 0 || i >= len(box.children) {
		return nil, false
	}
	return box.children[i], true
}

// Add appends a child box. It refuses boxes which already have an owner
// and boxes which would make the tree cyclic.
func (box *Box) Add(child *Box) error {
	if child == nil {
		return ErrNullChild
	}
	if child.parent != nil {
		return ErrOwned
	}
	for b := box; b != nil; b = b.parent {
		if b == child {
			return ErrCycle
		}
	}
	child.parent = box
	box.children = append(box.children, child)
	return nil
}

// Walk calls f for a box and its descendants, in document order. If f
// returns false, the descendants of a box are skipped.
func (box *Box) Walk(f func(*Box) bool) {
	if !f(box) {
		return
	}
	for _, ch := range box.children {
		ch.Walk(f)
	}
}

// Find returns the first box in document order whose element has the
// given tag name.
func (box *Box) Find(tag string) *Box {
	var found *Box
	box.Walk(func(b *Box) bool {
		if found == nil && b.Element != nil && b.Element.TagName() == tag {
			found = b
		}
		return found == nil
	})
	return found
}

// IsScrollContainer is true if the box clips its content and may be scrolled.
func (box *Box) IsScrollContainer() bool {
	return box.Style != nil && box.Type != AnonymousInline && box.Style.ClipsOverflow()
}

// --- Geometry --------------------------------------------------------------

// SetGeometry populates the four rectangles of a box from the top-left
// corner of its margin box and the size of its content box.
// Negative extents are clamped to zero.
func (box *Box) SetGeometry(x, y, contentW, contentH dimen.Dimen) {
	contentW = dimen.Max(0, contentW)
	contentH = dimen.Max(0, contentH)
	bx := x + box.Margins[Left]
	by := y + box.Margins[Top]
	bw := contentW + box.Paddings.Horizontal() + box.Borders.Horizontal()
	bh := contentH + box.Paddings.Vertical() + box.Borders.Vertical()
	box.Border = dimen.RectXYWH(bx, by, bw, bh)
	box.Padding = box.Border.Inset(box.Borders[Top], box.Borders[Right],
		box.Borders[Bottom], box.Borders[Left])
	box.Content = box.Padding.Inset(box.Paddings[Top], box.Paddings[Right],
		box.Paddings[Bottom], box.Paddings[Left])
	box.Margin = box.Border.Outset(dimen.Max(0, box.Margins[Top]), dimen.Max(0, box.Margins[Right]),
		dimen.Max(0, box.Margins[Bottom]), dimen.Max(0, box.Margins[Left]))
}

// MarginBoxWidth is the used width of a box, including margins. Unlike
// the width of the margin rectangle, it honors negative margins.
func (box *Box) MarginBoxWidth() dimen.Dimen {
	return box.Border.Width() + box.Margins.Horizontal()
}

// MarginBoxHeight is the used height of a box, including margins.
func (box *Box) MarginBoxHeight() dimen.Dimen {
	return box.Border.Height() + box.Margins.Vertical()
}

// Translate moves a box and all of its descendants.
func (box *Box) Translate(dx, dy dimen.Dimen) {
	if dx == 0 && dy == 0 {
		return
	}
	box.Walk(func(b *Box) bool {
		b.Margin = b.Margin.Translate(dx, dy)
		b.Border = b.Border.Translate(dx, dy)
		b.Padding = b.Padding.Translate(dx, dy)
		b.Content = b.Content.Translate(dx, dy)
		for i := range b.Runs {
			b.Runs[i].Rect = b.Runs[i].Rect.Translate(dx, dy)
			b.Runs[i].Baseline += dy
		}
		return true
	})
}

// ResetGeometry clears all values populated by layout, except scroll
// state.
func (box *Box) ResetGeometry() {
	box.Margins, box.Borders, box.Paddings = Edges{}, Edges{}, Edges{}
	box.Margin, box.Border, box.Padding, box.Content = dimen.Rect{}, dimen.Rect{}, dimen.Rect{}, dimen.Rect{}
	box.Baseline = 0
	box.Runs = box.Runs[:0]
}

// CollapseMargins collapses adjoining vertical margins: the largest positive
// margin plus the most negative one.
func CollapseMargins(margins ...dimen.Dimen) dimen.Dimen {
	var pos, neg dimen.Dimen
	for _, m := range margins {
		if m > pos {
			pos = m
		} else if m < neg {
			neg = m
		}
	}
	return pos + neg
}

// --- Debugging -------------------------------------------------------------

func (box *Box) String() string {
	if box == nil {
		return "<nil box>"
	}
	switch {
	case box.Type == AnonymousInline:
		return fmt.Sprintf("%s %q", box.Type, shortText(box.Text))
	case box.Element != nil:
		name := box.Element.TagName()
		if id := dom.ID(box.Element.DOMNode()); id != "" {
			name += "#" + id
		}
		return fmt.Sprintf("%s <%s>", box.Type, name)
	}
	return box.Type.String()
}

// DebugString returns a textual representation of a box's geometry.
// Intended for debugging.
func (box *Box) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", box.Display().Symbol(), box.String())
	fmt.Fprintf(&b, "   margin  = %v\n", box.Margin)
	fmt.Fprintf(&b, "   border  = %v\n", box.Border)
	fmt.Fprintf(&b, "   padding = %v\n", box.Padding)
	fmt.Fprintf(&b, "   content = %v\n", box.Content)
	return b.String()
}

func shortText(s string) string {
	r := []rune(s)
	if len(r) > 16 {
		return string(r[:16]) + "…"
	}
	return s
}
