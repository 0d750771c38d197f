package dom

// Node is an element or a text node of a document.
type Node interface {
	IsText() bool    // text nodes carry character data only
	TagName() string // lower-case tag name, empty for text nodes
	Attribute(key string) (string, bool)
	Attributes() []Attribute // in document order
	Children() []Node        // element and text children
	Parent() Node            // nil for the root element
	Text() string            // character data of a text node
}

// Attribute is a key/value pair of an element node.
type Attribute struct {
	Key, Value string
}

// ID returns the value of the id attribute of a node, if any.
func ID(n Node) string {
	id, _ := n.Attribute("id")
	return id
}

// Index returns the position of n among the element siblings, and the
// number of element siblings. The root element has index 0 of 1.
func Index(n Node) (int, int) {
	p := n.Parent()
	if p == nil {
		return 0, 1
	}
	pos, count := -1, 0
	for _, ch := range p.Children() {
		if ch.IsText() {
			continue
		}
		if ch == n {
			pos = count
		}
		count++
	}
	return pos, count
}

// PreviousElement returns the element sibling preceding n, or nil.
func PreviousElement(n Node) Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	var prev Node
	for _, ch := range p.Children() {
		if ch == n {
			return prev
		}
		if !ch.IsText() {
			prev = ch
		}
	}
	return nil
}
