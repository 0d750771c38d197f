package selector

import "fmt"

// Specificity is the specificity of a selector:
// (inline, ids, classes/attributes/pseudo-classes, types/pseudo-elements).
// Specificities are compared lexicographically.
type Specificity [4]int

// InlineSpecificity is the specificity of declarations of a style attribute.
var InlineSpecificity = Specificity{1, 0, 0, 0}

// Compare returns -1, 0 or +1 if s is less than, equal to or greater than other.
func (s Specificity) Compare(other Specificity) int {
	for i := 0; i < 4; i++ {
		if s[i] < other[i] {
			return -1
		} else if s[i] > other[i] {
			return 1
		}
	}
	return 0
}

// Less is a shortcut for s.Compare(other) < 0.
func (s Specificity) Less(other Specificity) bool {
	return s.Compare(other) < 0
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", s[0], s[1], s[2], s[3])
}

// Specificity calculates the specificity of a selector from its shape.
// The inline component is always 0.
func (sel *Selector) Specificity() Specificity {
	var spec Specificity
	for _, c := range sel.compounds {
		spec = spec.add(c.specificity())
	}
	return spec
}

func (c *Compound) specificity() Specificity {
	var spec Specificity
	if c.ID != "" {
		spec[1]++
	}
	spec[2] += len(c.Classes) + len(c.Attrs)
	for _, pc := range c.Pseudos {
		if pc.Name == "not" {
			spec = spec.add(pc.Not.specificity())
		} else {
			spec[2]++
		}
	}
	if c.Tag != "" && c.Tag != "*" {
		spec[3]++
	}
	if c.PseudoElement != "" {
		spec[3]++
	}
	return spec
}

func (s Specificity) add(o Specificity) Specificity {
	for i := range s {
		s[i] += o[i]
	}
	return s
}
