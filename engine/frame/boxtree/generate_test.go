package boxtree_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/core/dimen"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/dom/cascade"
	"github.com/npillmayer/tambo/engine/dom/cssom"
	"github.com/npillmayer/tambo/engine/dom/selector"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/engine/frame"
	"github.com/npillmayer/tambo/engine/frame/boxtree"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func styledTree(t *testing.T, markup string) *styledtree.StyNode {
	doc, err := html.ParseString(markup)
	require.NoError(t, err)
	idx := selector.NewIndex()
	next := 0
	for _, text := range doc.StyleSheets() {
		var ss *cssom.StyleSheet
		ss, next, err = cssom.ParseStyleSheet(text, cssom.Author, next)
		require.NoError(t, err)
		idx.AddSheet(ss)
	}
	root, err := cascade.New(idx, config.Default()).Cascade(doc.Root())
	require.NoError(t, err)
	return root
}

func build(t *testing.T, markup string) *frame.Box {
	root, err := boxtree.BuildBoxTree(styledTree(t, markup))
	require.NoError(t, err)
	require.NotNil(t, root)
	return root
}

func types(box *frame.Box) []frame.BoxType {
	var bt []frame.BoxType
	for _, ch := range box.Children() {
		bt = append(bt, ch.Type)
	}
	return bt
}

func TestBuildBoxTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><head><title>x</title></head><body><p>Hello <b>World</b>!</p>
	<div style="display:none">gone</div></body></html>`)
	assert.Equal(t, frame.BlockBox, root.Type)
	require.Equal(t, 1, root.ChildCount()) // head is not displayed
	body, _ := root.Child(0)
	assert.Equal(t, "body", body.Element.TagName())
	require.Equal(t, 1, body.ChildCount())
	p := body.Find("p")
	require.NotNil(t, p)
	assert.Equal(t, []frame.BoxType{frame.AnonymousInline, frame.InlineBox, frame.AnonymousInline}, types(p))
	txt, _ := p.Child(0)
	assert.Equal(t, "Hello ", txt.Text)
	assert.Nil(t, root.Find("div"))
}

func TestBuildFromNil(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	_, err := boxtree.BuildBoxTree(nil)
	assert.Equal(t, boxtree.ErrNoBoxTreeCreated, err)
	root := build(t, `<html style="display:none"><body>x</body></html>`)
	assert.Equal(t, frame.AnonymousBlock, root.Type)
	assert.Equal(t, 0, root.ChildCount())
}

func TestAnonymousBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><div id="mixed">Some text<p>para</p>more</div>
	<div id="blocks"> <p>a</p>
	  <p>b</p> </div></body></html>`)
	body := root.Find("body")
	mixed, _ := body.Child(0)
	assert.Equal(t, []frame.BoxType{frame.AnonymousBlock, frame.BlockBox, frame.AnonymousBlock}, types(mixed))
	anon, _ := mixed.Child(0)
	assert.Nil(t, anon.Element)
	assert.Equal(t, "Some text", anon.Children()[0].Text)
	blocks, _ := body.Child(1)
	assert.Equal(t, []frame.BoxType{frame.BlockBox, frame.BlockBox}, types(blocks))
}

func TestInlineContainingBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><span>a<div>b</div></span></body></html>`)
	span := root.Find("span")
	assert.Equal(t, frame.BlockBox, span.Type)
	assert.Equal(t, []frame.BoxType{frame.AnonymousBlock, frame.BlockBox}, types(span))
}

func TestFlexItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><div style="display:flex">text<span>a</span> <p>b</p></div>
	<div style="display:grid"><b>x</b><i>y</i></div></body></html>`)
	flex := root.Find("div")
	assert.Equal(t, []frame.BoxType{frame.FlexItem, frame.FlexItem, frame.FlexItem}, types(flex))
	first, _ := flex.Child(0)
	assert.Nil(t, first.Element)
	assert.Equal(t, "text", first.Children()[0].Text)
	grid, _ := root.Find("body").Child(1)
	assert.Equal(t, []frame.BoxType{frame.GridItem, frame.GridItem}, types(grid))
}

func TestReplacedItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><div style="display:flex"><img src="a.png"></div>
	<div style="display:grid"><img src="b.png" width="10"></div></body></html>`)
	item, ok := root.Find("div").Child(0)
	require.True(t, ok)
	assert.Equal(t, frame.FlexItem, item.Type, "container decides the box type")
	assert.True(t, item.IsReplaced())
	require.NotNil(t, item.Image)
	assert.Equal(t, "a.png", item.Image.Src)
	grid, _ := root.Find("body").Child(1)
	cell, ok := grid.Child(0)
	require.True(t, ok)
	assert.Equal(t, frame.GridItem, cell.Type)
	require.NotNil(t, cell.Image)
	assert.Equal(t, 10*dimen.PX, cell.Image.HintW)
}

func TestTableFixup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><table>
	  <tr><td colspan="2" rowspan="x">a</td></tr>
	</table><div style="display:table-cell">stray</div></body></html>`)
	table := root.Find("table")
	require.NotNil(t, table)
	assert.Equal(t, []frame.BoxType{frame.TableRowGroup}, types(table)) // tbody inserted by the parser
	td := root.Find("td")
	assert.Equal(t, frame.TableCell, td.Type)
	assert.Equal(t, 2, td.ColSpan)
	assert.Equal(t, 1, td.RowSpan)
	body := root.Find("body")
	require.Equal(t, 2, body.ChildCount())
	anonTable, _ := body.Child(1)
	assert.Equal(t, frame.TableBox, anonTable.Type)
	assert.Nil(t, anonTable.Element)
	row, _ := anonTable.Child(0)
	assert.Equal(t, frame.TableRow, row.Type)
	assert.Equal(t, []frame.BoxType{frame.TableCell}, types(row))
}

func TestStrayRowContent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><div style="display:table-row">loose<span>text</span></div></body></html>`)
	row := root.Find("div")
	require.Equal(t, frame.TableRow, row.Type)
	require.Equal(t, []frame.BoxType{frame.TableCell}, types(row))
	cell, _ := row.Child(0)
	assert.Nil(t, cell.Element)
	assert.Equal(t, []frame.BoxType{frame.AnonymousInline, frame.InlineBox}, types(cell))
}

func TestReplacedAndBreaks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><p><img src=" cat.png " width="100" height="50%">a<br>b</p></body></html>`)
	p := root.Find("p")
	assert.Equal(t, []frame.BoxType{frame.ReplacedBox, frame.AnonymousInline,
		frame.AnonymousInline, frame.AnonymousInline}, types(p))
	img, _ := p.Child(0)
	require.NotNil(t, img.Image)
	assert.Equal(t, "cat.png", img.Image.Src)
	assert.Equal(t, 100*dimen.PX, img.Image.HintW)
	assert.Equal(t, dimen.Dimen(0), img.Image.HintH)
	br, _ := p.Child(2)
	assert.Equal(t, "\n", br.Text)
}

func TestDisplayContents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	root := build(t, `<html><body><div id="outer"><section style="display:contents"><p>a</p><p>b</p></section></div></body></html>`)
	outer := root.Find("div")
	assert.Equal(t, []frame.BoxType{frame.BlockBox, frame.BlockBox}, types(outer))
	assert.Nil(t, root.Find("section"))
}
