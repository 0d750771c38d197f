package text

import (
	"strings"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"golang.org/x/text/unicode/norm"
)

// Breaker finds line-break opportunities. A Breaker is not safe for
// concurrent use.
type Breaker struct {
	segmenter *segment.Segmenter
}

// NewBreaker creates a UAX#14 line breaker.
func NewBreaker() *Breaker {
	return &Breaker{
		segmenter: segment.NewSegmenter(uax14.NewLineWrap()),
	}
}

// Segments splits NFC-normalized text into pieces, each ending at a break
// opportunity. Concatenating the pieces yields the normalized input.
// Hard line breaks (newlines) end a segment and are kept as a suffix of it.
func (b *Breaker) Segments(s string) []string {
	s = norm.NFC.String(s)
	if s == "" {
		return nil
	}
	var segs []string
	b.segmenter.Init(strings.NewReader(s))
	for b.segmenter.Next() {
		segs = append(segs, b.segmenter.Text())
	}
	if err := b.segmenter.Err(); err != nil {
		tracer().Errorf("line breaking failed: %v", err)
		return []string{s}
	}
	return mergeSegments(segs, s)
}

// mergeSegments guards against segmenter output which does not reproduce
// the input.
func mergeSegments(segs []string, s string) []string {
	if strings.Join(segs, "") != s {
		tracer().Infof("line breaker lost text, falling back to space separation")
		return splitAfterSpaces(s)
	}
	return segs
}

// splitAfterSpaces splits after runs of spaces and after newlines.
func splitAfterSpaces(s string) []string {
	var segs []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || (s[i] == ' ' && (i+1 == len(s) || s[i+1] != ' ')) {
			segs = append(segs, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		segs = append(segs, s[start:])
	}
	return segs
}

// Graphemes splits a string into grapheme clusters.
func Graphemes(s string) []string {
	grapheme.SetupGraphemeClasses()
	gstr := grapheme.StringFromString(s)
	n := gstr.Len()
	clusters := make([]string, 0, n)
	for i := 0; i < n; i++ {
		clusters = append(clusters, gstr.Nth(i))
	}
	return clusters
}

// trailingSpace returns the length in bytes of trailing white space of s,
// excluding newlines.
func trailingSpace(s string) int {
	i := len(s)
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	return len(s) - i
}
