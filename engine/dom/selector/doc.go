/*
Package selector implements CSS selectors, selector matching and an index
of style rules.

Selectors are parsed into a chain of compound selectors joined by
combinators. Matching proceeds right-to-left: the rightmost (subject)
compound is tested against a node first, then ancestors or preceding
siblings are searched for the remaining compounds.

To avoid testing every rule against every node, rules are kept in an Index.
Each selector of a rule is filed under exactly one key of its subject
compound, in order of priority: id, first class, tag name, universal.
For a node, the candidate rules are the union of the buckets for the node's
id, classes, tag and the universal bucket.

Every selector is validated with github.com/andybalholm/cascadia before it
enters the index; selectors which fail to compile are malformed and dropped
without affecting other selectors of the same rule.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tambo.selector'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.selector")
}
