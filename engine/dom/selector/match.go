package selector

import (
	"strings"

	"github.com/npillmayer/tambo/engine/dom"
)

// Match checks if a selector matches an element node. Matching proceeds from
// the subject compound leftwards. Text nodes never match.
func (sel *Selector) Match(n dom.Node) bool {
	if n == nil || n.IsText() {
		return false
	}
	return sel.matchAt(len(sel.compounds)-1, n)
}

func (sel *Selector) matchAt(i int, n dom.Node) bool {
	if !sel.compounds[i].Matches(n) {
		return false
	}
	if i == 0 {
		return true
	}
	switch sel.combinators[i-1] {
	case Child:
		p := n.Parent()
		return p != nil && sel.matchAt(i-1, p)
	case Descendant:
		for p := n.Parent(); p != nil; p = p.Parent() {
			if sel.matchAt(i-1, p) {
				return true
			}
		}
	case Adjacent:
		prev := dom.PreviousElement(n)
		return prev != nil && sel.matchAt(i-1, prev)
	case Sibling:
		for prev := dom.PreviousElement(n); prev != nil; prev = dom.PreviousElement(prev) {
			if sel.matchAt(i-1, prev) {
				return true
			}
		}
	}
	return false
}

// Matches checks a single compound selector against an element.
func (c *Compound) Matches(n dom.Node) bool {
	if c.PseudoElement != "" {
		return false
	}
	if c.Tag != "" && c.Tag != "*" && c.Tag != n.TagName() {
		return false
	}
	if c.ID != "" && c.ID != dom.ID(n) {
		return false
	}
	if len(c.Classes) > 0 {
		classes := ClassesOf(n)
		for _, cls := range c.Classes {
			if !contains(classes, cls) {
				return false
			}
		}
	}
	for _, a := range c.Attrs {
		if !a.matches(n) {
			return false
		}
	}
	for _, pc := range c.Pseudos {
		if !pc.matches(n) {
			return false
		}
	}
	return true
}

// ClassesOf returns the classes of an element.
func ClassesOf(n dom.Node) []string {
	cls, ok := n.Attribute("class")
	if !ok {
		return nil
	}
	return strings.Fields(cls)
}

func (a AttrSelector) matches(n dom.Node) bool {
	v, ok := n.Attribute(a.Key)
	if !ok {
		return false
	}
	switch a.Op {
	case AttrExists:
		return true
	case AttrEquals:
		return v == a.Value
	case AttrIncludes:
		return a.Value != "" && contains(strings.Fields(v), a.Value)
	case AttrDashMatch:
		return v == a.Value || strings.HasPrefix(v, a.Value+"-")
	case AttrPrefix:
		return a.Value != "" && strings.HasPrefix(v, a.Value)
	case AttrSuffix:
		return a.Value != "" && strings.HasSuffix(v, a.Value)
	case AttrSubstring:
		return a.Value != "" && strings.Contains(v, a.Value)
	}
	return false
}

func (pc PseudoClass) matches(n dom.Node) bool {
	switch pc.Name {
	case "root":
		return n.Parent() == nil
	case "first-child":
		pos, _ := dom.Index(n)
		return pos == 0
	case "last-child":
		pos, count := dom.Index(n)
		return pos == count-1
	case "only-child":
		_, count := dom.Index(n)
		return count == 1
	case "nth-child":
		pos, _ := dom.Index(n)
		return nthMatches(pc.A, pc.B, pos+1)
	case "nth-last-child":
		pos, count := dom.Index(n)
		return nthMatches(pc.A, pc.B, count-pos)
	case "empty":
		for _, ch := range n.Children() {
			if !ch.IsText() || strings.TrimSpace(ch.Text()) != "" {
				return false
			}
		}
		return true
	case "link", "any-link":
		_, href := n.Attribute("href")
		return href && n.TagName() == "a"
	case "not":
		return !pc.Not.Matches(n)
	}
	return false // dynamic states (hover, focus, …) never hold in a static layout
}

// nthMatches checks if index (1-based) is A*k+B for some k ≥ 0.
func nthMatches(a, b, index int) bool {
	if a == 0 {
		return index == b
	}
	d := index - b
	return d%a == 0 && d/a >= 0
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
