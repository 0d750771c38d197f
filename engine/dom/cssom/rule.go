package cssom

/*
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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */

import (
	"fmt"
	"strings"
)

// Origin is the origin of a style rule.
type Origin int8

// Origins, in ascending order of precedence for normal declarations.
const (
	UserAgent Origin = iota
	Author
	Inline
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user-agent"
	case Author:
		return "author"
	case Inline:
		return "inline"
	}
	return "unknown-origin"
}

// Declaration is a single property/value pair.
type Declaration struct {
	Property  string // lower-case property name
	Value     string
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return fmt.Sprintf("%s: %s !important", d.Property, d.Value)
	}
	return fmt.Sprintf("%s: %s", d.Property, d.Value)
}

// Rule is a parsed style rule: a group of selectors and a block of
// declarations. Rules are immutable once created.
type Rule struct {
	selectors    []string
	declarations []Declaration
	origin       Origin
	source       int
}

// NewRule creates a rule. source is the position of the rule within its
// origin; later rules win over earlier ones.
func NewRule(selectors []string, decls []Declaration, origin Origin, source int) *Rule {
	return &Rule{
		selectors:    selectors,
		declarations: decls,
		origin:       origin,
		source:       source,
	}
}

// Selectors returns the selector texts of the rule.
func (r *Rule) Selectors() []string { return r.selectors }

// Declarations returns the declarations of the rule in source order.
func (r *Rule) Declarations() []Declaration { return r.declarations }

// Origin returns the origin of the rule.
func (r *Rule) Origin() Origin { return r.origin }

// SourceIndex returns the position of the rule within its origin.
func (r *Rule) SourceIndex() int { return r.source }

func (r *Rule) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(r.selectors, ", "))
	b.WriteString(" { ")
	for _, d := range r.declarations {
		b.WriteString(d.String())
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

// StyleSheet is a list of rules from a single origin.
type StyleSheet struct {
	Origin Origin
	Rules  []*Rule
}

// Len returns the number of rules in a style sheet.
func (sheet *StyleSheet) Len() int {
	if sheet == nil {
		return 0
	}
	return len(sheet.Rules)
}
