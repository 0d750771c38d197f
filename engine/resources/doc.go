/*
Package resources resolves external resources for layout, currently images.

Layout never blocks on a resource. The first lookup of an image source
starts loading it in the background and reports the image as pending;
layout then uses size hints or a placeholder. When loading completes, an
optional callback fires, so clients may schedule a new pass. Subsequent
lookups report the decoded size (or an error for missing images).

Only the image header is decoded, as layout needs no pixel data.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'tambo.resources'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.resources")
}
