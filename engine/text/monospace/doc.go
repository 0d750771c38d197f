/*
Package monospace measures text as if set in a monospaced font.

Every grapheme cluster advances by one or two cells, depending on its East
Asian width (UAX#11). The cell width is a fixed fraction of the font size.
Monospace measurement is deterministic and independent of installed fonts,
which makes it the measurer of choice for tests and terminal output.
*/
package monospace

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tambo.text'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.text")
}
