package selector

import (
	"sort"

	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/cssom"
)

// Index files the selectors of style rules by the key of their subject
// compound. An index is built once per set of style sheets and is read-only
// afterwards.
type Index struct {
	ids       map[string][]entry
	classes   map[string][]entry
	tags      map[string][]entry
	universal []entry
	count     int // running number of entries, i.e. insertion order
	dropped   int // number of malformed selectors
}

type entry struct {
	rule  *cssom.Rule
	sel   *Selector
	order int
}

// Candidate is a selector of a rule, which may match a node.
type Candidate struct {
	Rule     *cssom.Rule
	Selector *Selector
}

// Matched is a rule which matches a node, together with the highest
// specificity of its matching selectors.
type Matched struct {
	Rule        *cssom.Rule
	Specificity Specificity
}

// NewIndex creates an index for the rules of a set of style sheets.
func NewIndex(sheets ...*cssom.StyleSheet) *Index {
	idx := &Index{
		ids:     make(map[string][]entry),
		classes: make(map[string][]entry),
		tags:    make(map[string][]entry),
	}
	for _, sheet := range sheets {
		idx.AddSheet(sheet)
	}
	return idx
}

// AddSheet adds all rules of a style sheet.
func (idx *Index) AddSheet(sheet *cssom.StyleSheet) {
	if sheet == nil {
		return
	}
	for _, r := range sheet.Rules {
		idx.Add(r)
	}
}

// Add files every selector of a rule. Malformed selectors are dropped;
// the remaining selectors of the rule are unaffected.
func (idx *Index) Add(r *cssom.Rule) {
	for _, text := range r.Selectors() {
		sel, err := Parse(text)
		if err != nil {
			tracer().Infof("dropping selector: %v", err)
			idx.dropped++
			continue
		}
		e := entry{rule: r, sel: sel, order: idx.count}
		idx.count++
		subj := sel.Subject()
		switch {
		case subj.ID != "":
			idx.ids[subj.ID] = append(idx.ids[subj.ID], e)
		case len(subj.Classes) > 0:
			idx.classes[subj.Classes[0]] = append(idx.classes[subj.Classes[0]], e)
		case subj.Tag != "" && subj.Tag != "*":
			idx.tags[subj.Tag] = append(idx.tags[subj.Tag], e)
		default:
			idx.universal = append(idx.universal, e)
		}
	}
}

// Size returns the number of selectors in the index.
func (idx *Index) Size() int {
	return idx.count
}

// Dropped returns the number of malformed selectors encountered.
func (idx *Index) Dropped() int {
	return idx.dropped
}

// Candidates returns all selectors which may match an element, in insertion
// order.
func (idx *Index) Candidates(n dom.Node) []Candidate {
	if n == nil || n.IsText() {
		return nil
	}
	var entries []entry
	if id := dom.ID(n); id != "" {
		entries = append(entries, idx.ids[id]...)
	}
	seen := make(map[string]bool)
	for _, cls := range ClassesOf(n) {
		if !seen[cls] {
			seen[cls] = true
			entries = append(entries, idx.classes[cls]...)
		}
	}
	entries = append(entries, idx.tags[n.TagName()]...)
	entries = append(entries, idx.universal...)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].order < entries[j].order
	})
	cands := make([]Candidate, len(entries))
	for i, e := range entries {
		cands[i] = Candidate{Rule: e.rule, Selector: e.sel}
	}
	return cands
}

// Match returns the rules matching an element. Each rule appears once, with
// the highest specificity among its matching selectors. The result is in
// order of first match.
func (idx *Index) Match(n dom.Node) []Matched {
	var result []Matched
	pos := make(map[*cssom.Rule]int)
	for _, c := range idx.Candidates(n) {
		if !c.Selector.Match(n) {
			continue
		}
		spec := c.Selector.Specificity()
		if i, ok := pos[c.Rule]; ok {
			if result[i].Specificity.Less(spec) {
				result[i].Specificity = spec
			}
			continue
		}
		pos[c.Rule] = len(result)
		result = append(result, Matched{Rule: c.Rule, Specificity: spec})
	}
	return result
}
