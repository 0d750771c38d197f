/*
Package frame holds the layout box tree.

A layout box is produced for every element which takes part in rendering,
plus anonymous boxes for runs of text and for wrapping inline content
next to block siblings. Boxes own their children; each box has a
non-owning link to its parent. Adding a box which already has an owner,
or which is an ancestor of the new parent, is refused.

Layout populates four nested rectangles per box, following the CSS box
model:

	margin ⊇ border ⊇ padding ⊇ content

All rectangles are in document coordinates. Negative margins move the
border box, but the margin rectangle is never smaller than the border box.

Boxes of scroll containers carry a scroll state, which is presentation
data and survives re-layout only if the client copies it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.frame'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.frame")
}
