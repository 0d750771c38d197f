/*
Package layout positions the boxes of a box tree.

Layout is driven by a dispatcher: Resolve computes the edges and the used
width of a box, runs the formatting context the box establishes for its
children, and finally computes the used height and the four rectangles of
the box. Formatting contexts form a closed set of variants behind one
contract:

	block     vertical stacking with margin collapsing
	inline    line boxes from text fragments and atomic inlines
	flex      flexible sizing along a main axis, with wrapping
	grid      two-dimensional track sizing and auto-placement
	table     column widths from cell content, spanning cells
	replaced  images, sized from intrinsic dimensions

Every box is laid out with the top-left corner of its margin box at the
origin; the parent's context then moves it to its final position. All
coordinates end up relative to the root box, which sits at the origin.

Layout never fails on degenerate input: negative sizes are clamped to zero,
percentages of indefinite sizes behave like `auto`, and images which are
still loading are laid out with size hints or a placeholder.

Invaluable:
https://developer.mozilla.org/en-US/docs/Web/CSS/Visual_formatting_model

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.layout'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.layout")
}
