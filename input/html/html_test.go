package html

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/engine/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var markup = `<!DOCTYPE html>
<html><head><style>p { color: red }</style></head>
<body><!-- comment --><p id="first" class="a b">Hello <b>World</b></p><p>2nd</p></body></html>`

func TestParseAndNavigate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	doc, err := ParseString(markup)
	require.NoError(t, err)
	root := doc.Root()
	assert.Equal(t, "html", root.TagName())
	assert.Nil(t, root.Parent())
	body := doc.Find("body")
	require.NotNil(t, body)
	assert.Len(t, body.Children(), 2, "comment must not be visible")
	p := body.Children()[0]
	assert.Equal(t, "first", dom.ID(p))
	cls, ok := p.Attribute("class")
	assert.True(t, ok)
	assert.Equal(t, "a b", cls)
	assert.True(t, p.Children()[0].IsText())
	assert.Equal(t, "Hello ", p.Children()[0].Text())
	assert.Same(t, p.(*Node), p.Children()[1].Parent().Parent().Children()[0].(*Node))
}

func TestSiblingHelpers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	doc, _ := ParseString(markup)
	body := doc.Find("body")
	p2 := body.Children()[1]
	pos, count := dom.Index(p2)
	assert.Equal(t, 1, pos)
	assert.Equal(t, 2, count)
	assert.Equal(t, body.Children()[0], dom.PreviousElement(p2))
}

func TestStyleSheets(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.dom")
	defer teardown()
	//
	doc, _ := ParseString(markup)
	sheets := doc.StyleSheets()
	require.Len(t, sheets, 1)
	assert.Equal(t, "p { color: red }", sheets[0])
}
