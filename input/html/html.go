/*
Package html adapts parsed HTML to the node interface of the layout engine.

Markup is parsed with golang.org/x/net/html. Adapter nodes are created once
per HTML node and cached, so node identity stays stable for the lifetime of a
document. Comments, doctype and processing nodes are not visible.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"io"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/engine/dom"
	xhtml "golang.org/x/net/html"
)

// tracer traces with key 'tambo.dom'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.dom")
}

// Document is a parsed HTML document.
type Document struct {
	root  *Node
	nodes map[*xhtml.Node]*Node
}

// Parse reads HTML markup and returns the document. Parsing errors of the
// markup are repaired by the HTML5 parsing algorithm; only read errors are
// reported.
func Parse(r io.Reader) (*Document, error) {
	h, err := xhtml.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML")
	}
	return FromNode(h), nil
}

// ParseString is a convenience function for parsing markup from a string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// FromNode wraps an existing HTML tree. h may be a document node or an element.
func FromNode(h *xhtml.Node) *Document {
	doc := &Document{nodes: make(map[*xhtml.Node]*Node)}
	if h.Type == xhtml.DocumentNode {
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode {
				h = c
				break
			}
		}
	}
	doc.root = doc.wrap(h)
	return doc
}

// Root returns the root element, usually <html>.
func (doc *Document) Root() dom.Node {
	if doc == nil || doc.root == nil {
		return nil
	}
	return doc.root
}

// Find returns the first element with a given tag, in document order, or nil.
func (doc *Document) Find(tag string) dom.Node {
	var found dom.Node
	walk(doc.root, func(n *Node) bool {
		if found == nil && n.TagName() == tag {
			found = n
		}
		return found == nil
	})
	return found
}

// StyleSheets collects the text of <style> elements in document order.
func (doc *Document) StyleSheets() []string {
	var sheets []string
	walk(doc.root, func(n *Node) bool {
		if n.TagName() == "style" {
			var b strings.Builder
			for c := n.h.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == xhtml.TextNode {
					b.WriteString(c.Data)
				}
			}
			sheets = append(sheets, b.String())
			return false
		}
		return true
	})
	tracer().Debugf("document contains %d style sheets", len(sheets))
	return sheets
}

func (doc *Document) wrap(h *xhtml.Node) *Node {
	if h == nil {
		return nil
	}
	if n, ok := doc.nodes[h]; ok {
		return n
	}
	n := &Node{h: h, doc: doc}
	doc.nodes[h] = n
	return n
}

func walk(n *Node, f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, ch := range n.Children() {
		walk(ch.(*Node), f)
	}
}

// --- Nodes -----------------------------------------------------------------

// Node wraps an element or text node of x/net/html.
type Node struct {
	h        *xhtml.Node
	doc      *Document
	children []dom.Node
	done     bool
}

var _ dom.Node = &Node{}

// HTMLNode returns the underlying x/net/html node.
func (n *Node) HTMLNode() *xhtml.Node {
	return n.h
}

// IsText is part of interface dom.Node.
func (n *Node) IsText() bool {
	return n.h.Type == xhtml.TextNode
}

// TagName is part of interface dom.Node.
func (n *Node) TagName() string {
	if n.h.Type != xhtml.ElementNode {
		return ""
	}
	return strings.ToLower(n.h.Data)
}

// Attribute is part of interface dom.Node.
func (n *Node) Attribute(key string) (string, bool) {
	for _, a := range n.h.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Attributes is part of interface dom.Node.
func (n *Node) Attributes() []dom.Attribute {
	attrs := make([]dom.Attribute, 0, len(n.h.Attr))
	for _, a := range n.h.Attr {
		attrs = append(attrs, dom.Attribute{Key: strings.ToLower(a.Key), Value: a.Val})
	}
	return attrs
}

// Children is part of interface dom.Node.
func (n *Node) Children() []dom.Node {
	if !n.done {
		for c := n.h.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xhtml.ElementNode || c.Type == xhtml.TextNode {
				n.children = append(n.children, n.doc.wrap(c))
			}
		}
		n.done = true
	}
	return n.children
}

// Parent is part of interface dom.Node.
func (n *Node) Parent() dom.Node {
	if n == n.doc.root || n.h.Parent == nil || n.h.Parent.Type != xhtml.ElementNode {
		return nil
	}
	return n.doc.wrap(n.h.Parent)
}

// Text is part of interface dom.Node.
func (n *Node) Text() string {
	if n.h.Type == xhtml.TextNode {
		return n.h.Data
	}
	return ""
}

func (n *Node) String() string {
	if n.IsText() {
		s := n.h.Data
		if len(s) > 20 {
			s = s[:20] + "…"
		}
		return "\"" + s + "\""
	}
	return "<" + n.TagName() + ">"
}
