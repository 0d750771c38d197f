package styledtree_test

import (
	"testing"

	"github.com/npillmayer/cords"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/engine/config"
	"github.com/npillmayer/tambo/engine/dom/cascade"
	"github.com/npillmayer/tambo/engine/dom/styledtree"
	"github.com/npillmayer/tambo/input/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var myhtml = `
	<!DOCTYPE html>
	<html>
	<head><title>Ignored</title></head>
	<body>
	<h1>My First Heading</h1>
	<p>My <b>first</b> paragraph.</p>
	</body>
	</html>
`

func buildTree(t *testing.T) *styledtree.StyNode {
	doc, err := html.ParseString(myhtml)
	require.NoError(t, err)
	root, err := cascade.New(nil, config.Default()).Cascade(doc.Root())
	require.NoError(t, err)
	return root
}

func TestStyledTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	root := buildTree(t)
	assert.Equal(t, "html", root.TagName())
	assert.Nil(t, root.Parent())
	p := root.Find("p")
	require.NotNil(t, p)
	assert.Equal(t, "body", p.Parent().TagName())
	assert.Equal(t, p, p.Parent().Children()[p.Parent().IndexOf(p)])
	_, ok := p.Child(99)
	assert.False(t, ok)
	assert.Equal(t, "<p>", p.String())
	assert.Panics(t, func() { root.AddChild(p) }, "nodes have a single owner")
}

func TestInnerText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	root := buildTree(t)
	text, err := styledtree.InnerText(root.Find("p"))
	require.NoError(t, err)
	require.False(t, text.IsVoid())
	var elements []string
	text.EachLeaf(func(leaf cords.Leaf, _ uint64) error {
		elements = append(elements, leaf.(styledtree.Leaf).Element().TagName())
		return nil
	})
	assert.Equal(t, []string{"p", "b", "p"}, elements)
	assert.Equal(t, "My first paragraph.", styledtree.TextOf(root.Find("p")))
	assert.NotContains(t, styledtree.TextOf(root), "Ignored", "display:none content is skipped")
	_, err = styledtree.InnerText(nil)
	assert.Error(t, err)
}
