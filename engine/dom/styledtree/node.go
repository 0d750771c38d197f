package styledtree

import (
	"fmt"
	"strings"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/style"
)

// StyNode is a style node, the building block of the styled tree.
type StyNode struct {
	node     dom.Node
	styles   *style.ComputedStyle
	parent   *StyNode
	children []*StyNode
}

// NewNode creates a new styled node linked to a document node.
func NewNode(n dom.Node, styles *style.ComputedStyle) *StyNode {
	return &StyNode{node: n, styles: styles}
}

// DOMNode gets the document node corresponding to this styled node.
func (sn *StyNode) DOMNode() dom.Node {
	return sn.node
}

// Styles returns the computed style of the node. Text nodes return the
// style of their parent element.
func (sn *StyNode) Styles() *style.ComputedStyle {
	return sn.styles
}

// SetStyles sets the computed style of a styled node.
func (sn *StyNode) SetStyles(styles *style.ComputedStyle) {
	sn.styles = styles
}

// IsText is true for text nodes.
func (sn *StyNode) IsText() bool {
	return sn.node != nil && sn.node.IsText()
}

// TagName returns the tag of the element, or "" for text nodes.
func (sn *StyNode) TagName() string {
	if sn.node == nil {
		return ""
	}
	return sn.node.TagName()
}

// Text returns the character data of a text node.
func (sn *StyNode) Text() string {
	if sn.node == nil {
		return ""
	}
	return sn.node.Text()
}

// Parent returns the parent node, or nil for the root.
func (sn *StyNode) Parent() *StyNode {
	return sn.parent
}

// AddChild appends a child node. ch must not already be part of a tree.
func (sn *StyNode) AddChild(ch *StyNode) {
	if ch == nil {
		return
	}
	if ch.parent != nil {
		panic(fmt.Sprintf("styled node %v already has a parent", ch))
	}
	ch.parent = sn
	sn.children = append(sn.children, ch)
}

// Children returns the child nodes.
func (sn *StyNode) Children() []*StyNode {
	return sn.children
}

// ChildCount returns the number of children.
func (sn *StyNode) ChildCount() int {
	return len(sn.children)
}

// Child returns the child at position i.
func (sn *StyNode) Child(i int) (*StyNode, bool) {
	if i < 0 || i >= len(sn.children) {
		return nil, false
	}
	return sn.children[i], true
}

// IndexOf returns the position of ch among the children of sn, or -1.
func (sn *StyNode) IndexOf(ch *StyNode) int {
	for i, c := range sn.children {
		if c == ch {
			return i
		}
	}
	return -1
}

// Walk visits sn and its descendants in document order. If f returns false,
// the children of a node are skipped.
func (sn *StyNode) Walk(f func(*StyNode) bool) {
	if !f(sn) {
		return
	}
	for _, ch := range sn.children {
		ch.Walk(f)
	}
}

// Find returns the first descendant-or-self element with a given tag.
func (sn *StyNode) Find(tag string) *StyNode {
	var found *StyNode
	sn.Walk(func(n *StyNode) bool {
		if found == nil && n.TagName() == tag {
			found = n
		}
		return found == nil
	})
	return found
}

func (sn *StyNode) String() string {
	if sn.IsText() {
		t := strings.TrimSpace(sn.Text())
		if len(t) > 20 {
			t = t[:20] + "…"
		}
		return fmt.Sprintf("\"%s\"", t)
	}
	if id := dom.ID(sn.node); id != "" {
		return fmt.Sprintf("<%s#%s>", sn.TagName(), id)
	}
	return fmt.Sprintf("<%s>", sn.TagName())
}

// --- Inner text ------------------------------------------------------------

// InnerText creates a text cord for the textual content of an element and all
// its descendents. Elements styled with display:none are skipped.
//
// The fragment organization of the resulting cord reflects the hierarchy of
// the element's descendents: every text node contributes a leaf.
func InnerText(sn *StyNode) (cords.Cord, error) {
	if sn == nil {
		return cords.Cord{}, cords.ErrIllegalArguments
	}
	b := cords.NewBuilder()
	collectText(sn, b)
	return b.Cord(), nil
}

// TextOf returns the inner text of an element as a string.
func TextOf(sn *StyNode) string {
	text, err := InnerText(sn)
	if err != nil || text.IsVoid() {
		return ""
	}
	var sb strings.Builder
	text.EachLeaf(func(l cords.Leaf, _ uint64) error {
		sb.WriteString(l.String())
		return nil
	})
	return sb.String()
}

func collectText(sn *StyNode, b *cords.Builder) {
	if sn.IsText() {
		if value := sn.Text(); value != "" {
			b.Append(Leaf{element: sn.parent, content: value})
		}
		return
	}
	if sn.styles != nil && sn.styles.Display == style.DisplayNone {
		return
	}
	for _, ch := range sn.children {
		collectText(ch, b)
	}
}

// Leaf is the leaf type created for cords from calls to InnerText.
type Leaf struct {
	element *StyNode
	content string
}

// Element returns the element containing the text of the leaf.
func (l Leaf) Element() *StyNode {
	return l.element
}

// Weight of a leaf is its string length in bytes.
func (l Leaf) Weight() uint64 {
	return uint64(len(l.content))
}

func (l Leaf) String() string {
	return l.content
}

// Split splits a leaf at position i, resulting in 2 new leafs.
func (l Leaf) Split(i uint64) (cords.Leaf, cords.Leaf) {
	return Leaf{element: l.element, content: l.content[:i]},
		Leaf{element: l.element, content: l.content[i:]}
}

// Substring returns a string segment of the leaf's text fragment.
func (l Leaf) Substring(i, j uint64) []byte {
	return []byte(l.content)[i:j]
}

var _ cords.Leaf = Leaf{}
