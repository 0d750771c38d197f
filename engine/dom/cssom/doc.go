/*
Package cssom holds parsed style rules.

Style sheets come from three origins: the user agent (built-in defaults per
HTML tag), authors (<style> elements and external sheets) and inline style
attributes. Parsing CSS text is done with github.com/aymerick/douceur; this
package reduces the result to what the cascade needs: rules with selector
texts, declarations, an origin and a source index.

Malformed input never makes parsing fail as a whole. At-rules, declarations
without a property or value and empty rules are dropped and traced.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.cssom")
}
