/*
Package style resolves CSS property values into computed styles.

Every supported property is registered in a trie, together with its initial
value and whether it is inherited. Shorthand properties are registered as
well; they are expanded into longhands before the cascade selects winning
declarations (see Expand).

Resolve computes the ComputedStyle of an element from the winning values of
its declarations and the computed style of its parent. Font-relative units
(em, ex, ch, rem) and viewport units (vw, vh, vmin, vmax) are converted to
absolute dimensions; percentages and `auto` are kept symbolic, as they depend
on the size of the containing block and are resolved during layout.

Computed styles are immutable after creation. A style pass creates a new
set of computed styles for the whole document.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.style'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.style")
}
