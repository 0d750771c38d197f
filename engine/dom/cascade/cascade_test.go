package cascade

import (
	"image/color"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/engine/dom/selector"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var markup = `<html><body>
<div id="main" class="box">
  <p class="intro" style="color: blue; margin-left: 3px !important">Hello <b>World</b></p>
  <p id="second">Second</p>
</div>
<table border="1" cellpadding="4" bgcolor="ff6600"><tr><td valign="top">x</td></tr></table>
</body></html>`

var sheet = `
p { color: red; margin-left: 10px !important; padding: 1px 2px }
#second { color: green }
.box p { color: yellow }
div > p { font-size: 2em }
p { color: purple }
b { font-weight: 300 }
td { padding-top: 9px }
p:hover { color: black }
`

func setup(t *testing.T, settings config.Settings) (*Cascader, *html.Document) {
	doc, err := html.ParseString(markup)
	require.NoError(t, err)
	ss, _, err := cssom.ParseStyleSheet(sheet, cssom.Author, 0)
	require.NoError(t, err)
	return New(selector.NewIndex(ss), settings), doc
}

func find(t *testing.T, root *styledtree.StyNode, id string) *styledtree.StyNode {
	var found *styledtree.StyNode
	root.Walk(func(n *styledtree.StyNode) bool {
		if !n.IsText() {
			if v, ok := n.DOMNode().Attribute("id"); ok && v == id {
				found = n
			}
		}
		return found == nil
	})
	require.NotNil(t, found, "no element with id %q", id)
	return found
}

func TestCascadeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.cascade")
	defer teardown()
	//
	c, doc := setup(t, config.Default())
	root, err := c.Cascade(doc.Root())
	require.NoError(t, err)
	second := find(t, root, "second")
	assert.Equal(t, color.RGBA{0, 128, 0, 255}, second.Styles().Color, "id selector beats later type selectors")
	assert.Equal(t, 32*dimen.PX, second.Styles().FontSize, "2em of the parent's 16px")
	//
	intro := root.Find("p")
	require.NotNil(t, intro)
	cs := intro.Styles()
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, cs.Color, "inline normal beats author normal")
	assert.Equal(t, 3*dimen.PX, cs.Margin[style.Left].Unwrap(), "inline important beats author important")
	assert.Equal(t, 2*dimen.PX, cs.Padding[style.Right].Unwrap(), "shorthand expanded before competing")
	assert.Equal(t, 16*dimen.PX, cs.Margin[style.Top].Unwrap(), "user-agent default")
	//
	w, ok := c.Winners(intro.DOMNode()).Lookup("margin-left")
	require.True(t, ok)
	assert.Equal(t, InlineImportant, w.Tier)
	w, ok = c.Winners(intro.DOMNode()).Lookup("color")
	require.True(t, ok)
	assert.Equal(t, InlineNormal, w.Tier)
	//
	b := intro.Find("b")
	require.NotNil(t, b)
	assert.Equal(t, 300, b.Styles().FontWeight, "author rule beats user-agent bold")
	assert.Equal(t, cs.Color, b.Styles().Color, "color is inherited")
	text := b.Children()[0]
	require.True(t, text.IsText())
	assert.Same(t, b.Styles(), text.Styles(), "text nodes share their parent's style")
}

func TestSourceOrderBreaksTies(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.cascade")
	defer teardown()
	//
	doc, err := html.ParseString(`<html><body><p class="a b">x</p></body></html>`)
	require.NoError(t, err)
	ss, _, err := cssom.ParseStyleSheet(`.a { color: red } .b { color: lime } p { color: blue }`, cssom.Author, 0)
	require.NoError(t, err)
	c := New(selector.NewIndex(ss), config.Default())
	root, err := c.Cascade(doc.Root())
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, root.Find("p").Styles().Color)
}

func TestMalformedDeclarationFallsBack(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.cascade")
	defer teardown()
	//
	doc, err := html.ParseString(`<html><body><p style="color: notacolor">x</p>` +
		`<div style="height:10px">y</div></body></html>`)
	require.NoError(t, err)
	ss, _, err := cssom.ParseStyleSheet(`p { color: red; width: 50px } p { color: bogus; width: wide }`, cssom.Author, 0)
	require.NoError(t, err)
	c := New(selector.NewIndex(ss), config.Default())
	root, err := c.Cascade(doc.Root())
	require.NoError(t, err)
	p := root.Find("p")
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, p.Styles().Color, "valid author value survives malformed winners")
	assert.Equal(t, 50*dimen.PX, p.Styles().Width.Unwrap())
	w, ok := c.Winners(p.DOMNode()).Lookup("color")
	require.True(t, ok)
	assert.Equal(t, "red", w.Value)
	assert.Equal(t, 10*dimen.PX, root.Find("div").Styles().Height.Unwrap(), "inline style without semicolon")
}

func TestPresentationalAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.cascade")
	defer teardown()
	//
	c, doc := setup(t, config.Default())
	root, err := c.Cascade(doc.Root())
	require.NoError(t, err)
	table := root.Find("table")
	require.NotNil(t, table)
	assert.Equal(t, color.RGBA{255, 102, 0, 255}, table.Styles().BackgroundColor)
	assert.Equal(t, 1*dimen.PX, table.Styles().BorderWidth[style.Top])
	td := root.Find("td")
	require.NotNil(t, td)
	assert.Equal(t, 9*dimen.PX, td.Styles().Padding[style.Top].Unwrap(), "author rule beats attribute")
	assert.Equal(t, 4*dimen.PX, td.Styles().Padding[style.Left].Unwrap(), "attribute beats user-agent default")
	assert.Equal(t, style.VAlignTop, td.Styles().VerticalAlign)
	assert.Equal(t, 1*dimen.PX, td.Styles().BorderWidth[style.Left])
}

func TestCSSDisabled(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.cascade")
	defer teardown()
	//
	settings := config.Default()
	settings.CSSEnabled = false
	c, doc := setup(t, settings)
	root, err := c.Cascade(doc.Root())
	require.NoError(t, err)
	p := root.Find("p")
	assert.Equal(t, color.RGBA{A: 255}, p.Styles().Color, "neither rules nor style attributes apply")
	assert.Equal(t, 16*dimen.PX, p.Styles().Margin[style.Top].Unwrap())
	assert.True(t, p.Styles().Display.IsBlockLevel())
	assert.Equal(t, 8*dimen.PX, root.Find("body").Styles().Margin[style.Left].Unwrap())
	assert.Equal(t, style.Transparent, root.Find("table").Styles().BackgroundColor)
	head := root.Find("head")
	require.NotNil(t, head)
	assert.Equal(t, style.DisplayNone, head.Styles().Display)
}

func TestTierOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.cascade")
	defer teardown()
	//
	tiers := []Tier{
		TierOf(cssom.UserAgent, false), TierOf(cssom.Author, false), TierOf(cssom.Inline, false),
		TierOf(cssom.Author, true), TierOf(cssom.Inline, true), TierOf(cssom.UserAgent, true),
	}
	for i := 1; i < len(tiers); i++ {
		assert.True(t, tiers[i-1] < tiers[i], "tier %d", i)
	}
	lo := Winner{Tier: AuthorNormal, Specificity: selector.Specificity{0, 1, 0, 0}, Source: 9}
	hi := Winner{Tier: InlineNormal, Specificity: selector.InlineSpecificity}
	assert.True(t, hi.beats(lo))
	assert.False(t, lo.beats(hi))
}
