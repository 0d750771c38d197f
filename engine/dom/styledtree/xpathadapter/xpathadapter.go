/*
Package xpathadapter implements an xpath.NodeNavigator.

We use this library for XPath queries:

	github.com/antchfx/xpath

Package xpathadapter implements an adapter to enable antchfx/xpath to
access a styled tree, where nodes are of type styledtree.StyNode. The
navigator starts at a virtual document node, so absolute paths like
`/html/body/p` work as expected.

For a description of the various methods of interface xpath.NodeNavigator
please refer to the documentation of antchfx/xpath. It is not replicated here.

BSD License

Copyright (c) 2017–22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
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
package xpathadapter

import (
	"errors"

	"github.com/antchfx/xpath"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
)

// tracer traces with key 'tambo.dom'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.dom")
}

// NodeNavigator navigates a styled tree. A nil current node denotes the
// virtual document node above the root element.
type NodeNavigator struct {
	root, current *styledtree.StyNode
	attr          int // attributes index
}

// NewNavigator creates a new xpath.NodeNavigator for a styled tree.
func NewNavigator(node *styledtree.StyNode) *NodeNavigator {
	return &NodeNavigator{
		root: node,
		attr: -1,
	}
}

// CurrentNode returns the styled node a navigator is positioned at.
func CurrentNode(nav xpath.NodeNavigator) (*styledtree.StyNode, error) {
	mynav, ok := nav.(*NodeNavigator)
	if !ok {
		return nil, errors.New("navigator is not of type xpathadapter.NodeNavigator")
	}
	return mynav.current, nil
}

// Select evaluates an XPath expression on a styled tree and returns the
// matching nodes in document order. Attribute results are reported by their
// owning element.
func Select(root *styledtree.StyNode, expr string) ([]*styledtree.StyNode, error) {
	xp, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "illegal xpath expression: %s", expr)
	}
	var result []*styledtree.StyNode
	seen := make(map[*styledtree.StyNode]bool)
	iter := xp.Select(NewNavigator(root))
	for iter.MoveNext() {
		n, _ := CurrentNode(iter.Current())
		if n != nil && !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	tracer().Debugf("xpath %q selected %d nodes", expr, len(result))
	return result, nil
}

// Evaluate evaluates an XPath expression which yields a value, e.g.
// `count(//p)` or `string(//h1)`.
func Evaluate(root *styledtree.StyNode, expr string) (interface{}, error) {
	xp, err := xpath.Compile(expr)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "illegal xpath expression: %s", expr)
	}
	return xp.Evaluate(NewNavigator(root)), nil
}

func (nav *NodeNavigator) NodeType() xpath.NodeType {
	switch {
	case nav.current == nil:
		return xpath.RootNode
	case nav.current.IsText():
		return xpath.TextNode
	case nav.attr != -1:
		return xpath.AttributeNode
	}
	return xpath.ElementNode
}

func (nav *NodeNavigator) LocalName() string {
	if nav.current == nil {
		return ""
	}
	if nav.attr != -1 {
		return nav.current.DOMNode().Attributes()[nav.attr].Key
	}
	return nav.current.TagName()
}

func (*NodeNavigator) Prefix() string {
	return ""
}

func (nav *NodeNavigator) Value() string {
	switch {
	case nav.current == nil:
		return styledtree.TextOf(nav.root)
	case nav.current.IsText():
		return nav.current.Text()
	case nav.attr != -1:
		return nav.current.DOMNode().Attributes()[nav.attr].Value
	}
	return styledtree.TextOf(nav.current)
}

func (nav *NodeNavigator) Copy() xpath.NodeNavigator {
	n := *nav
	return &n
}

func (nav *NodeNavigator) MoveToRoot() {
	nav.current = nil
	nav.attr = -1
}

func (nav *NodeNavigator) MoveToParent() bool {
	if nav.attr != -1 {
		nav.attr = -1 // move from attributes to element
		return true
	}
	if nav.current == nil {
		return false
	}
	if nav.current == nav.root {
		nav.current = nil
		return true
	}
	nav.current = nav.current.Parent()
	return nav.current != nil
}

func (nav *NodeNavigator) MoveToNextAttribute() bool {
	if nav.current == nil || nav.current.IsText() {
		return false
	}
	if nav.attr >= len(nav.current.DOMNode().Attributes())-1 {
		return false
	}
	nav.attr++
	return true
}

func (nav *NodeNavigator) MoveToChild() bool {
	if nav.attr != -1 {
		return false
	}
	if nav.current == nil {
		nav.current = nav.root
		return nav.root != nil
	}
	child, ok := nav.current.Child(0)
	if ok {
		nav.current = child
	}
	return ok
}

func (nav *NodeNavigator) MoveToFirst() bool {
	if nav.attr != -1 || nav.current == nil || nav.current == nav.root {
		return false
	}
	first, ok := nav.current.Parent().Child(0)
	if !ok || first == nav.current {
		return false
	}
	nav.current = first
	return true
}

func (nav *NodeNavigator) String() string {
	return nav.Value()
}

func (nav *NodeNavigator) MoveToNext() bool {
	return nav.moveSibling(+1)
}

func (nav *NodeNavigator) MoveToPrevious() bool {
	return nav.moveSibling(-1)
}

func (nav *NodeNavigator) moveSibling(delta int) bool {
	if nav.attr != -1 || nav.current == nil || nav.current == nav.root {
		return false
	}
	parent := nav.current.Parent()
	sibling, ok := parent.Child(parent.IndexOf(nav.current) + delta)
	if ok {
		nav.current = sibling
	}
	return ok
}

func (nav *NodeNavigator) MoveTo(other xpath.NodeNavigator) bool {
	n, ok := other.(*NodeNavigator)
	if !ok || n.root != nav.root {
		return false
	}
	nav.current = n.current
	nav.attr = n.attr
	return true
}

var _ xpath.NodeNavigator = &NodeNavigator{}
