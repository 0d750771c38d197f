package boxtree

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tambo/engine/dom/style"
	"github.com/stretchr/testify/assert"
)

func TestProcessWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tambo.boxtree")
	defer teardown()
	//
	assert.Equal(t, " Hello World ", processWhitespace("\n  Hello \t World\n", style.WhiteSpaceNormal))
	assert.Equal(t, "a b", processWhitespace("a\r\nb", style.WhiteSpaceNoWrap))
	assert.Equal(t, "a\n  b", processWhitespace("a\r\n  b", style.WhiteSpacePre))
	assert.Equal(t, "x       y", processWhitespace("x\ty", style.WhiteSpacePreWrap))
	assert.Equal(t, "a\nb c", processWhitespace("a   \n   b   c", style.WhiteSpacePreLine))
	assert.Equal(t, "Hello ", processWhitespace("Hello   ", style.WhiteSpacePreLine))
}
