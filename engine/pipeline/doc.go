/*
Package pipeline runs complete rendering passes.

A pass takes an element tree and its style sheets through the cascade,
builds the box tree, lays it out and generates the display list. The
result of a pass is published as an immutable snapshot; readers always see
the last complete pass, never a partial one. Passes are serialized: an
engine has a single writer.

Between passes, clients may scroll the viewport or individual scroll
containers. Scrolling regenerates the display list without re-layout.
Scroll offsets of scroll containers are kept per element and survive
subsequent passes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pipeline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.engine'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.engine")
}
