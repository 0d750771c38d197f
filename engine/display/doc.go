/*
Package display turns a laid-out box tree into a display list.

A display list is a flat sequence of paint commands in painting order:

	solid-rect   background colors and text decorations
	border       the four border edges of a box
	text-run     a run of text, positioned at its baseline
	image        replaced content
	push-clip    start clipping to a rectangle
	pop-clip     end the innermost clip

Clip commands are always balanced. The display list is regenerated from
scratch for every pass; generation reads the box tree and never modifies it.

Painting follows stacking contexts. A stacking context paints its own
background and border, then child contexts with negative z-index, then the
normal flow of its descendants in document order (including child contexts
with z-index 0), and finally child contexts with positive z-index. Levels
are kept in a tree map, so contexts paint in ascending z-order and in
document order within a level.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package display

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.display'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.display")
}
