package boxtree

import (
	"errors"
	"strconv"
	"strings"

	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/engine/frame"
)

// ErrNoBoxTreeCreated is returned if the styled tree has no usable root
// element.
var ErrNoBoxTreeCreated = errors.New("no box tree created")

const maxSpan = 1000

// BuildBoxTree creates the layout box tree for a styled tree.
// A root box is created even if the root element has display `none`.
func BuildBoxTree(root *styledtree.StyNode) (*frame.Box, error) {
	if root == nil || root.IsText() || root.Styles() == nil {
		return nil, ErrNoBoxTreeCreated
	}
	box := makeBox(root, style.NoMode)
	if box == nil {
		tracer().Infof("root element is not displayed, creating empty root box")
		box = frame.NewAnonymousBox(frame.AnonymousBlock,
			anonymousStyle(root.Styles(), style.BlockMode|style.FlowMode))
	}
	return box, nil
}

// makeBox creates the principal box for an element, together with the
// boxes of its descendants. It returns nil for elements which are not
// displayed.
func makeBox(sn *styledtree.StyNode, parentDisplay style.DisplayMode) *frame.Box {
	cs := sn.Styles()
	if cs.Display == style.DisplayNone || cs.Display == style.NoMode {
		tracer().Debugf("no box for <%s> with display=none", sn.TagName())
		return nil
	}
	if cs.Display.Contains(style.TableColumnMode) {
		return nil // columns do not render content
	}
	if sn.TagName() == "br" {
		box := frame.NewBox(frame.AnonymousInline, sn)
		box.Text = "\n"
		return box
	}
	box := frame.NewBox(boxTypeFor(sn, parentDisplay), sn)
	if sn.TagName() == "img" {
		box.Image = replacedContent(sn)
		return box
	}
	if box.Type == frame.TableCell {
		box.ColSpan = spanAttribute(sn, "colspan")
		box.RowSpan = spanAttribute(sn, "rowspan")
	}
	kids := childBoxes(sn, box)
	if box.Type == frame.InlineBox && hasBlockLevel(kids) {
		tracer().Debugf("inline <%s> contains block-level boxes, is laid out as a block", sn.TagName())
		box.Type = frame.BlockBox
	}
	for _, kid := range fixup(box, kids) {
		if err := box.Add(kid); err != nil {
			tracer().Errorf("cannot add %s to %s: %v", kid, box, err)
		}
	}
	return box
}

func boxTypeFor(sn *styledtree.StyNode, parentDisplay style.DisplayMode) frame.BoxType {
	d := sn.Styles().Display
	switch {
	case isFlexContainer(parentDisplay):
		return frame.FlexItem
	case isGridContainer(parentDisplay):
		return frame.GridItem
	case sn.TagName() == "img":
		return frame.ReplacedBox
	case d.Contains(style.TableCaptionMode):
		return frame.TableCaption
	case d.Contains(style.TableCellMode):
		return frame.TableCell
	case d.Contains(style.TableRowMode):
		return frame.TableRow
	case d.Contains(style.TableRowGroupMode):
		return frame.TableRowGroup
	case d.IsAtomicInline():
		return frame.InlineBlockBox
	case d.IsInlineLevel():
		return frame.InlineBox
	case d.Contains(style.TableMode):
		return frame.TableBox
	}
	return frame.BlockBox
}

func isFlexContainer(d style.DisplayMode) bool {
	return d.Contains(style.FlexMode)
}

func isGridContainer(d style.DisplayMode) bool {
	return d.Contains(style.GridMode)
}

// childBoxes creates the boxes for the children of an element. Children
// with display `contents` are replaced by their own children.
func childBoxes(sn *styledtree.StyNode, box *frame.Box) []*frame.Box {
	var kids []*frame.Box
	for _, ch := range sn.Children() {
		if ch.IsText() {
			cs := ch.Styles()
			if cs == nil {
				cs = box.Style
			}
			txt := processWhitespace(ch.Text(), cs.WhiteSpace)
			if txt == "" {
				continue
			}
			tbox := frame.NewBox(frame.AnonymousInline, ch)
			tbox.Style = cs
			tbox.Text = txt
			kids = append(kids, tbox)
			continue
		}
		if ch.Styles() != nil && ch.Styles().Display.Contains(style.ContentsMode) {
			kids = append(kids, childBoxes(ch, box)...)
			continue
		}
		if kid := makeBox(ch, box.Display()); kid != nil {
			kids = append(kids, kid)
		}
	}
	return kids
}

// replacedContent collects the image source and size hints of an image
// element.
func replacedContent(sn *styledtree.StyNode) *frame.Replaced {
	r := &frame.Replaced{}
	n := sn.DOMNode()
	r.Src, _ = n.Attribute("src")
	r.Src = strings.TrimSpace(r.Src)
	if w, ok := n.Attribute("width"); ok {
		r.HintW = pixelAttribute(w)
	}
	if h, ok := n.Attribute("height"); ok {
		r.HintH = pixelAttribute(h)
	}
	return r
}

// pixelAttribute parses HTML length attributes like "100" or "100px".
// Percentages and garbage yield 0.
func pixelAttribute(v string) dimen.Dimen {
	v = strings.TrimSuffix(strings.TrimSpace(v), "px")
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return dimen.FromFloat(n, dimen.PX)
}

func spanAttribute(sn *styledtree.StyNode, key string) int {
	v, ok := sn.DOMNode().Attribute(key)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	if n > maxSpan {
		return maxSpan
	}
	return n
}

// anonymousStyle creates the style of an anonymous box: inherited
// properties from the parent, initial values for all others.
func anonymousStyle(parent *style.ComputedStyle, display style.DisplayMode) *style.ComputedStyle {
	cs := style.Resolve(parent, nil, style.Environment{})
	cs.Display = display
	return cs
}
