package boxtree

import (
	"strings"

	"github.com/npillmayer/tambo/engine/dom/style"
)

/*
                  New lines    Spaces and tabs     Text wrapping     End-of-line spaces
                  ---------------------------------------------------------------------
    normal        Collapse     Collapse            Wrap              Remove
    nowrap        Collapse     Collapse            No wrap           Remove
    pre           Preserve     Preserve            No wrap           Preserve
    pre-wrap      Preserve     Preserve            Wrap              Hang
    pre-line      Preserve     Collapse            Wrap              Remove

Wrapping and end-of-line handling are left to inline layout.
*/

const tabSize = 8

// processWhitespace prepares the text of a text node for layout.
func processWhitespace(s string, ws style.WhiteSpace) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	switch ws {
	case style.WhiteSpacePre, style.WhiteSpacePreWrap:
		return expandTabs(s)
	case style.WhiteSpacePreLine:
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			l = collapseSpaces(l)
			if i > 0 {
				l = strings.TrimLeft(l, " ")
			}
			if i < len(lines)-1 {
				l = strings.TrimRight(l, " ")
			}
			lines[i] = l
		}
		return strings.Join(lines, "\n")
	}
	return collapseSpaces(s)
}

// collapseSpaces replaces every sequence of white space by a single space.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\f':
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
		default:
			b.WriteRune(r)
			inSpace = false
		}
	}
	return b.String()
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
