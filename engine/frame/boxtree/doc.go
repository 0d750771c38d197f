/*
Package boxtree produces a box tree from a styled tree.

Every element with a display other than `none` produces a principal box.
Runs of text produce anonymous inline boxes. The builder then reconciles
the children of every box with the formatting context of their parent:

▪︎ Block containers with both block-level and inline-level children wrap
each run of inline-level children into an anonymous block box.

▪︎ Children of flex and grid containers become flex or grid items. Runs of
text are wrapped into anonymous items.

▪︎ Tables get anonymous rows and cells for stray content, and stray table
parts outside of a table get an anonymous table.

White space of text runs is processed according to property `white-space`.
Collapsible white space between block-level boxes produces no box at all.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package boxtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.boxtree'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.boxtree")
}
