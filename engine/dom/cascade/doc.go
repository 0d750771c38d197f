/*
Package cascade computes the styles of a document's elements.

For every element the cascade collects the declarations which apply to it:
user-agent defaults for the element's tag, presentational attributes,
matching rules from a style index and the element's style attribute.
Shorthands are expanded, then the declarations compete per longhand
property. The winning values are handed to the style resolver, top-down,
so every element sees the computed style of its parent.

Declarations compete in tiers (lowest first):

	user-agent normal
	author normal          presentational attributes, then style rules
	inline normal          style attribute
	author !important
	inline !important
	user-agent !important

Within a tier, higher specificity wins, then later source position.

BSD License

Copyright (c) 2017–22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package cascade

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'tambo.cascade'.
func tracer() tracing.Trace {
	return tracing.Select("tambo.cascade")
}
