package selector

import (
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core"
	"github.com/npillmayer/tambo/engine/dom"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var markup = `<html><body>
<div id="main" class="content wide">
  <p class="intro">First <a href="x.html" lang="en-US">link</a></p>
  <p>Second</p>
  <ul><li>1</li><li class="odd">2</li><li>3</li><li>4</li><li>5</li></ul>
  <span data-x="alpha beta"></span>
</div>
<p></p>
</body></html>`

func parseDoc(t *testing.T) *html.Document {
	doc, err := html.ParseString(markup)
	require.NoError(t, err)
	return doc
}

func TestParseSelectors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.selector")
	defer teardown()
	//
	sel, err := Parse("div#main > p.intro a[href]")
	require.NoError(t, err)
	assert.Equal(t, 3, sel.Len())
	subj := sel.Subject()
	assert.Equal(t, "a", subj.Tag)
	assert.Equal(t, AttrExists, subj.Attrs[0].Op)
	assert.Equal(t, []Combinator{Child, Descendant}, sel.combinators)
	//
	for _, bad := range []string{"", "p >", "#", "p..x", "a[href", ":unknown-thing", "p::before span"} {
		_, err := Parse(bad)
		assert.Error(t, err, "expected %q to be malformed", bad)
		assert.Equal(t, core.EMALFORMED, core.Code(err))
	}
}

func TestSpecificity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.selector")
	defer teardown()
	//
	for text, expected := range map[string]Specificity{
		"*":                      {0, 0, 0, 0},
		"p":                      {0, 0, 0, 1},
		"div p":                  {0, 0, 0, 2},
		".intro":                 {0, 0, 1, 0},
		"p.intro[lang]":          {0, 0, 2, 1},
		"#main":                  {0, 1, 0, 0},
		"#main > p:first-child":  {0, 1, 1, 1},
		"li:not(.odd)":           {0, 0, 1, 1},
		"ul li:nth-child(2n+1)":  {0, 0, 1, 2},
		"div#main.content .wide": {0, 1, 2, 1},
	} {
		sel := MustParse(text)
		assert.Equal(t, expected, sel.Specificity(), "specificity of %q", text)
	}
	assert.True(t, Specificity{0, 0, 9, 9}.Less(Specificity{0, 1, 0, 0}))
	assert.True(t, Specificity{0, 9, 0, 0}.Less(InlineSpecificity))
}

func TestMatchAgreesWithCascadia(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.selector")
	defer teardown()
	//
	doc := parseDoc(t)
	selectors := []string{
		"p", "div p", "body > p", "#main", ".intro", "div.content.wide",
		"p + p", "p ~ span", "li:first-child", "li:last-child", "li:nth-child(odd)",
		"li:nth-child(2n)", "li:nth-child(-n+2)", "li:nth-last-child(1)", "li:not(.odd)",
		"a[href$=html]", "a[lang|=en]", "span[data-x~=beta]", "span[data-x^=al]",
		"span[data-x*=pha]", "html", "ul > li.odd", "* > a", "div > *",
	}
	var nodes []dom.Node
	var collect func(dom.Node)
	collect = func(n dom.Node) {
		if !n.IsText() {
			nodes = append(nodes, n)
		}
		for _, ch := range n.Children() {
			collect(ch)
		}
	}
	collect(doc.Root())
	for _, text := range selectors {
		sel := MustParse(text)
		cs, err := cascadia.Compile(text)
		require.NoError(t, err)
		for _, n := range nodes {
			expected := cs.Match(n.(*html.Node).HTMLNode())
			assert.Equal(t, expected, sel.Match(n), "selector %q on %v", text, n)
		}
	}
}

func TestPseudoClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.selector")
	defer teardown()
	//
	doc := parseDoc(t)
	assert.True(t, MustParse(":root").Match(doc.Root()))
	assert.False(t, MustParse(":root").Match(doc.Find("body")))
	span := doc.Find("span")
	assert.True(t, MustParse("span:empty").Match(span))
	assert.False(t, MustParse("div:empty").Match(doc.Find("div")))
	assert.True(t, MustParse("a:link").Match(doc.Find("a")))
	assert.False(t, MustParse("a:hover").Match(doc.Find("a")))
}

func TestIndexCandidates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.selector")
	defer teardown()
	//
	sheet, _, err := cssom.ParseStyleSheet(`
		p { color: red }
		.intro { color: green }
		#main p.intro, div p { color: blue }
		* { margin: 0 }
		li { color: gray }
		p:::bad, span { color: black }
	`, cssom.Author, 0)
	require.NoError(t, err)
	idx := NewIndex(sheet)
	assert.Equal(t, 1, idx.Dropped())
	assert.Equal(t, 7, idx.Size())
	//
	doc := parseDoc(t)
	intro := doc.Find("p")
	cands := idx.Candidates(intro)
	assert.Len(t, cands, 5, "expected p, .intro, #main p.intro, div p, *")
	matched := idx.Match(intro)
	require.Len(t, matched, 4)
	assert.Equal(t, sheet.Rules[0], matched[0].Rule)
	assert.Equal(t, sheet.Rules[2], matched[2].Rule)
	assert.Equal(t, Specificity{0, 1, 1, 1}, matched[2].Specificity,
		"rule must carry the highest specificity of its matching selectors")
	// the li rule must not be a candidate for <p>
	for _, c := range cands {
		assert.NotEqual(t, sheet.Rules[4], c.Rule)
	}
}
