package cascade

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/engine/dom/selector"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
)

// Tier is a priority level of declarations, derived from origin and
// importance.
type Tier int8

// Tiers, from lowest to highest priority.
const (
	UserAgentNormal Tier = iota
	AuthorNormal
	InlineNormal
	AuthorImportant
	InlineImportant
	UserAgentImportant
)

func (t Tier) String() string {
	switch t {
	case UserAgentNormal:
		return "ua"
	case AuthorNormal:
		return "author"
	case InlineNormal:
		return "inline"
	case AuthorImportant:
		return "author!"
	case InlineImportant:
		return "inline!"
	case UserAgentImportant:
		return "ua!"
	}
	return "?"
}

// TierOf returns the tier of a declaration of a given origin.
func TierOf(origin cssom.Origin, important bool) Tier {
	switch origin {
	case cssom.UserAgent:
		if important {
			return UserAgentImportant
		}
		return UserAgentNormal
	case cssom.Inline:
		if important {
			return InlineImportant
		}
		return InlineNormal
	}
	if important {
		return AuthorImportant
	}
	return AuthorNormal
}

// Winner is the declaration which won the cascade for a longhand property.
type Winner struct {
	Property    string
	Value       string
	Tier        Tier
	Specificity selector.Specificity
	Source      int // source index of the rule
	order       int // position of the declaration within the element's set
}

// beats is true if w takes precedence over other.
func (w Winner) beats(other Winner) bool {
	if w.Tier != other.Tier {
		return w.Tier > other.Tier
	}
	if c := w.Specificity.Compare(other.Specificity); c != 0 {
		return c > 0
	}
	if w.Source != other.Source {
		return w.Source > other.Source
	}
	return w.order > other.order
}

func (w Winner) String() string {
	return fmt.Sprintf("%s: %s [%s %s #%d]", w.Property, w.Value, w.Tier, w.Specificity, w.Source)
}

// DeclarationSet is the set of winning declarations of an element, sorted by
// property name.
type DeclarationSet []Winner

// Values returns the cascaded values as a map property → value.
func (ds DeclarationSet) Values() map[string]string {
	m := make(map[string]string, len(ds))
	for _, w := range ds {
		m[w.Property] = w.Value
	}
	return m
}

// Lookup returns the winner for a property.
func (ds DeclarationSet) Lookup(property string) (Winner, bool) {
	i := sort.Search(len(ds), func(i int) bool { return ds[i].Property >= property })
	if i < len(ds) && ds[i].Property == property {
		return ds[i], true
	}
	return Winner{}, false
}

// Source positions of declarations not stemming from style sheets.
const (
	presentationalSource = -1
	userAgentSource      = -2
	inlineSource         = math.MaxInt32
)

// Cascader computes styled trees from element trees. A cascader is bound to
// a style index and the engine settings; it may be used for any number of
// passes, but not concurrently.
type Cascader struct {
	index    *selector.Index
	settings config.Settings
	env      style.Environment
	winners  map[dom.Node]DeclarationSet // of the last pass
}

// New creates a cascader for a style index. idx may be nil, i.e. no author
// rules are present.
func New(idx *selector.Index, settings config.Settings) *Cascader {
	if idx == nil {
		idx = selector.NewIndex()
	}
	return &Cascader{
		index:    idx,
		settings: settings,
		env: style.Environment{
			Viewport: dimen.Point{X: settings.ViewportWidth, Y: settings.ViewportHeight},
		},
	}
}

// SetViewport changes the viewport used for viewport-relative units.
func (c *Cascader) SetViewport(width, height dimen.Dimen) {
	c.settings.ViewportWidth, c.settings.ViewportHeight = width, height
	c.env.Viewport = dimen.Point{X: width, Y: height}
}

// Cascade builds the styled tree for the element tree rooted at root,
// top-down. Text nodes share the computed style of their parent element.
func (c *Cascader) Cascade(root dom.Node) (*styledtree.StyNode, error) {
	if root == nil || root.IsText() {
		return nil, core.Error(core.EINVALID, "cascade needs a root element")
	}
	c.winners = make(map[dom.Node]DeclarationSet)
	sn := c.cascade(root, nil)
	tracer().Debugf("cascade computed styles for %d elements", len(c.winners))
	return sn, nil
}

func (c *Cascader) cascade(n dom.Node, parent *styledtree.StyNode) *styledtree.StyNode {
	if n.IsText() {
		return styledtree.NewNode(n, parent.Styles())
	}
	var parentStyle *style.ComputedStyle
	if parent != nil {
		parentStyle = parent.Styles()
	}
	winners := c.Compete(n)
	c.winners[n] = winners
	cs := style.Resolve(parentStyle, winners.Values(), c.env)
	sn := styledtree.NewNode(n, cs)
	for _, ch := range n.Children() {
		sn.AddChild(c.cascade(ch, sn))
	}
	return sn
}

// Winners returns the winning declarations of an element from the last pass.
func (c *Cascader) Winners(n dom.Node) DeclarationSet {
	return c.winners[n]
}

// Compete collects all declarations applying to an element and returns the
// winner for every longhand property.
func (c *Cascader) Compete(n dom.Node) DeclarationSet {
	var cands []Winner
	add := func(decls []cssom.Declaration, origin cssom.Origin, spec selector.Specificity, source int) {
		for _, d := range decls {
			for _, lh := range style.Expand(d) {
				if !style.Valid(lh.Property, lh.Value) {
					tracer().Debugf("dropping invalid declaration %s: %s", lh.Property, lh.Value)
					continue
				}
				cands = append(cands, Winner{
					Property:    lh.Property,
					Value:       lh.Value,
					Tier:        TierOf(origin, lh.Important),
					Specificity: spec,
					Source:      source,
					order:       len(cands),
				})
			}
		}
	}
	add(cssom.UserAgentDefaults(n.TagName()), cssom.UserAgent, selector.Specificity{0, 0, 0, 1}, userAgentSource)
	if c.settings.CSSEnabled {
		add(Presentational(n), cssom.Author, selector.Specificity{}, presentationalSource)
		for _, m := range c.index.Match(n) {
			add(m.Rule.Declarations(), m.Rule.Origin(), m.Specificity, m.Rule.SourceIndex())
		}
		if text, ok := n.Attribute("style"); ok && strings.TrimSpace(text) != "" {
			decls, err := cssom.ParseInlineStyle(text)
			if err != nil {
				tracer().Infof("dropping style attribute of <%s>: %v", n.TagName(), err)
			}
			add(decls, cssom.Inline, selector.InlineSpecificity, inlineSource)
		}
	}
	best := make(map[string]Winner, len(cands))
	for _, w := range cands {
		if cur, ok := best[w.Property]; !ok || w.beats(cur) {
			best[w.Property] = w
		}
	}
	set := make(DeclarationSet, 0, len(best))
	for _, w := range best {
		set = append(set, w)
	}
	sort.Slice(set, func(i, j int) bool { return set[i].Property < set[j].Property })
	return set
}
