package style

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
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/tambo/core/dimen"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002

	dimenEM    uint32 = 0x0010
	dimenEX    uint32 = 0x0020
	dimenCH    uint32 = 0x0040
	dimenREM   uint32 = 0x0080
	dimenVW    uint32 = 0x0100
	dimenVH    uint32 = 0x0200
	dimenVMIN  uint32 = 0x0400
	dimenVMAX  uint32 = 0x0800
	dimenPRCNT uint32 = 0x1000
)

// --- DimenT-----------------------------------------------------------------

// DimenT is an option type for CSS dimensions. It is either unset, auto,
// an absolute dimension or a relative one. For relative dimensions the
// factor is held in fixed point, scaled by dimen.PX (i.e., 1.5em is stored
// as 1.5*PX with unit flag em).
type DimenT struct {
	d     dimen.Dimen
	flags uint32
}

// SomeDimen creates an optional dimen with an initial value of x.
func SomeDimen(x dimen.Dimen) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an optional dimen without an initial value.
func Dimen() DimenT {
	return DimenT{d: 0, flags: dimenNone}
}

// Auto creates a dimension with value `auto`.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// Percent creates a percentage dimension.
func Percent(p float64) DimenT {
	return DimenT{d: dimen.FromFloat(p, dimen.PX), flags: dimenPRCNT}
}

// Unwrap returns the underlying dimension of o. For relative dimensions,
// this is the scaled factor.
func (o DimenT) Unwrap() dimen.Dimen {
	return o.d
}

// Factor returns the factor of a relative dimension, i.e. 80 for `80%`.
func (o DimenT) Factor() float64 {
	return o.d.Px()
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsAuto returns true if o has value `auto`.
func (o DimenT) IsAuto() bool {
	return o.flags&dimenAuto > 0
}

// IsAbsolute returns true if o holds a fixed dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags&dimenAbsolute > 0
}

// IsPercent returns true if o is a percentage.
func (o DimenT) IsPercent() bool {
	return o.flags&dimenPRCNT > 0
}

// IsRelative returns true if o represents a valid relative dimension (`%`, `em`, etc.).
func (o DimenT) IsRelative() bool {
	return o.flags&0xfff0 > 0
}

// Resolve returns the absolute value of o. Percentages are calculated with
// respect to ref, if ref is definite. The second return value is false if o
// has no definite value (unset, auto, or percentage of an indefinite
// reference).
func (o DimenT) Resolve(ref dimen.Dimen, definite bool) (dimen.Dimen, bool) {
	switch {
	case o.IsAbsolute():
		return o.d, true
	case o.IsPercent() && definite:
		return ref.Scale(o.Factor() / 100), true
	}
	return 0, false
}

// OrZero is like Resolve, but returns 0 if o has no definite value.
func (o DimenT) OrZero(ref dimen.Dimen) dimen.Dimen {
	d, _ := o.Resolve(ref, true)
	return d
}

// Absolutize converts font- and viewport-relative units to absolute
// dimensions. Percentages and auto are left as they are.
func (o DimenT) Absolutize(fontSize, rootFontSize dimen.Dimen, viewport dimen.Point) DimenT {
	f := o.Factor()
	switch o.flags & 0x0ff0 {
	case dimenEM:
		return SomeDimen(fontSize.Scale(f))
	case dimenEX, dimenCH:
		return SomeDimen(fontSize.Scale(f / 2))
	case dimenREM:
		return SomeDimen(rootFontSize.Scale(f))
	case dimenVW:
		return SomeDimen(viewport.X.Scale(f / 100))
	case dimenVH:
		return SomeDimen(viewport.Y.Scale(f / 100))
	case dimenVMIN:
		return SomeDimen(dimen.Min(viewport.X, viewport.Y).Scale(f / 100))
	case dimenVMAX:
		return SomeDimen(dimen.Max(viewport.X, viewport.Y).Scale(f / 100))
	}
	return o
}

func (o DimenT) String() string {
	if o.IsNone() {
		return "DimenT.None"
	}
	if o.IsAuto() {
		return "auto"
	}
	if o.IsRelative() {
		if unit, ok := relUnitMap[o.flags&0xfff0]; ok {
			return strconv.FormatFloat(o.Factor(), 'f', -1, 64) + unit
		}
	}
	return o.d.String()
}

var relUnitMap map[uint32]string = map[uint32]string{
	dimenEM:    "em",
	dimenEX:    "ex",
	dimenCH:    "ch",
	dimenREM:   "rem",
	dimenVW:    "vw",
	dimenVH:    "vh",
	dimenVMIN:  "vmin",
	dimenVMAX:  "vmax",
	dimenPRCNT: "%",
}

var relUnitStringMap map[string]uint32 = map[string]uint32{
	"em":   dimenEM,
	"ex":   dimenEX,
	"ch":   dimenCH,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
	"%":    dimenPRCNT,
}

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)(%|[a-zA-Z]{1,4})?$`)

var errDimenFormat = errors.New("format error parsing dimension")

// ParseDimen parses a string to return an optional dimension. Syntax is CSS Unit.
// Valid dimensions are
//
//	15px
//	80%
//	-3.5rem
//	auto
//
// A unitless number is accepted for 0 only.
func ParseDimen(s string) (DimenT, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" {
		return Auto(), nil
	}
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return Dimen(), errDimenFormat
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil { // this cannot happen
		return Dimen(), errDimenFormat
	}
	if d[2] == "" {
		if n != 0 {
			return Dimen(), fmt.Errorf("%w: missing unit in %q", errDimenFormat, s)
		}
		return SomeDimen(0), nil
	}
	if unit, ok := relUnitStringMap[d[2]]; ok {
		return DimenT{d: dimen.FromFloat(n, dimen.PX), flags: unit}, nil
	}
	scale, _, err := dimen.UnitScale(d[2])
	if err != nil {
		return Dimen(), fmt.Errorf("%w: unknown unit %q", errDimenFormat, d[2])
	}
	return SomeDimen(dimen.FromFloat(n, scale)), nil
}

// MaxDimen returns the greater of two absolute dimensions. If one of them is
// not absolute, the other one is returned.
func MaxDimen(d1, d2 DimenT) DimenT {
	if !d1.IsAbsolute() {
		return d2
	}
	if !d2.IsAbsolute() {
		return d1
	}
	return SomeDimen(dimen.Max(d1.d, d2.d))
}

// MinDimen returns the smaller of two absolute dimensions. If one of them is
// not absolute, the other one is returned.
func MinDimen(d1, d2 DimenT) DimenT {
	if !d1.IsAbsolute() {
		return d2
	}
	if !d2.IsAbsolute() {
		return d1
	}
	return SomeDimen(dimen.Min(d1.d, d2.d))
}
