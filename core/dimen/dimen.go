// Package dimen implements dimensions and units for screen layout.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Dimen is a dimension type.
// Values are in scaled pixels: one CSS pixel is 60 units. A CSS pixel is
// 1/96 inch, which lets inches, points and picas convert without loss.
// With int32 this gives a range of roughly ±35 million pixels.
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1    // scaled pixel = PX / 60
	PX   Dimen = 60   // CSS pixel = 1/96 inch
	PT   Dimen = 80   // point = 1/72 inch
	BP   Dimen = PT   // big point (PDF)
	PC   Dimen = 960  // pica = 12pt
	MM   Dimen = 227  // millimeters, rounded
	CM   Dimen = 2268 // centimeters, rounded
	IN   Dimen = 5760 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Stringer implementation.
func (d Dimen) String() string {
	if d%PX == 0 {
		return fmt.Sprintf("%dpx", int32(d/PX))
	}
	return fmt.Sprintf("%.2fpx", d.Px())
}

// Px returns a dimension in CSS pixels.
func (d Dimen) Px() float64 {
	return float64(d) / float64(PX)
}

// Points returns a dimension in points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(PT)
}

// FromFloat converts a floating point value in units of scale to a dimension,
// rounding to the nearest scaled pixel and saturating at ±Infinity.
func FromFloat(v float64, scale Dimen) Dimen {
	f := math.Round(v * float64(scale))
	if f >= Infinity {
		return Infinity
	} else if f <= -Infinity {
		return -Infinity
	}
	return Dimen(f)
}

// Scale multiplies d by a factor, rounding to the nearest scaled pixel.
func (d Dimen) Scale(f float64) Dimen {
	return FromFloat(float64(d)*f, SP)
}

// Point is a point on the canvas.
type Point struct {
	X, Y Dimen
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

func (p Point) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

// Rect is a rectangle, given by its top-left and bottom-right corner.
// BotR is exclusive.
type Rect struct {
	TopL, BotR Point
}

// RectXYWH creates a rectangle from position and extent. Negative extents
// are clamped to zero.
func RectXYWH(x, y, w, h Dimen) Rect {
	return Rect{
		TopL: Point{x, y},
		BotR: Point{x + Max(0, w), y + Max(0, h)},
	}
}

// Width returns the width of a rectangle, i.e. the difference between x-coordinates
// of bottom-right and top-left corner.
func (r Rect) Width() Dimen {
	return r.BotR.X - r.TopL.X
}

// Height returns the height of a rectangle, i.e. the difference between y-coordinates
// of bottom-right and top-left corner.
func (r Rect) Height() Dimen {
	return r.BotR.Y - r.TopL.Y
}

// X is the left edge.
func (r Rect) X() Dimen { return r.TopL.X }

// Y is the top edge.
func (r Rect) Y() Dimen { return r.TopL.Y }

// Empty is true for rectangles without area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains checks if a point lies within r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.TopL.X && p.X < r.BotR.X && p.Y >= r.TopL.Y && p.Y < r.BotR.Y
}

// Encloses checks if r fully contains s (boundaries may touch).
func (r Rect) Encloses(s Rect) bool {
	return s.TopL.X >= r.TopL.X && s.TopL.Y >= r.TopL.Y &&
		s.BotR.X <= r.BotR.X && s.BotR.Y <= r.BotR.Y
}

// Translate moves a rectangle by (dx,dy).
func (r Rect) Translate(dx, dy Dimen) Rect {
	r.TopL.X += dx
	r.TopL.Y += dy
	r.BotR.X += dx
	r.BotR.Y += dy
	return r
}

// Union returns the smallest rectangle containing r and s. Empty rectangles
// do not contribute.
func (r Rect) Union(s Rect) Rect {
	if r.Width() <= 0 && r.Height() <= 0 {
		return s
	}
	if s.Width() <= 0 && s.Height() <= 0 {
		return r
	}
	return Rect{
		TopL: Point{Min(r.TopL.X, s.TopL.X), Min(r.TopL.Y, s.TopL.Y)},
		BotR: Point{Max(r.BotR.X, s.BotR.X), Max(r.BotR.Y, s.BotR.Y)},
	}
}

// Intersect returns the overlap of r and s, which may be empty.
func (r Rect) Intersect(s Rect) Rect {
	i := Rect{
		TopL: Point{Max(r.TopL.X, s.TopL.X), Max(r.TopL.Y, s.TopL.Y)},
		BotR: Point{Min(r.BotR.X, s.BotR.X), Min(r.BotR.Y, s.BotR.Y)},
	}
	if i.BotR.X < i.TopL.X {
		i.BotR.X = i.TopL.X
	}
	if i.BotR.Y < i.TopL.Y {
		i.BotR.Y = i.TopL.Y
	}
	return i
}

// Inset shrinks a rectangle by edge widths, given clockwise starting at the top.
// The result never has negative extent.
func (r Rect) Inset(top, right, bottom, left Dimen) Rect {
	x, y := r.TopL.X+left, r.TopL.Y+top
	return RectXYWH(x, y, r.Width()-left-right, r.Height()-top-bottom)
}

// Outset grows a rectangle by edge widths, given clockwise starting at the top.
func (r Rect) Outset(top, right, bottom, left Dimen) Rect {
	return r.Inset(-top, -right, -bottom, -left)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%v,%v %vx%v]", r.TopL.X, r.TopL.Y, r.Width(), r.Height())
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)(%|[a-zA-Z]{2})?$`)

// ErrFormat is returned for strings which do not denote a dimension.
var ErrFormat = errors.New("format error parsing dimension")

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit,
// restricted to absolute units. A number without a unit is taken as pixels.
// If a percentage value is given (`80%`), the second return value will be true
// and the dimension holds the percentage scaled by PX (i.e. 80% → 80*PX).
func ParseDimen(s string) (Dimen, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, ErrFormat
	}
	scale, ispcnt, err := UnitScale(d[2])
	if err != nil {
		return 0, false, err
	}
	if ispcnt {
		scale = PX
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, ErrFormat
	}
	return FromFloat(n, scale), ispcnt, nil
}

// UnitScale returns the scale of an absolute unit. The second return value
// is true for "%".
func UnitScale(unit string) (Dimen, bool, error) {
	switch unit {
	case "px", "PX", "":
		return PX, false, nil
	case "pt", "PT":
		return PT, false, nil
	case "pc", "PC":
		return PC, false, nil
	case "mm", "MM":
		return MM, false, nil
	case "cm", "CM":
		return CM, false, nil
	case "in", "IN":
		return IN, false, nil
	case "sp", "SP":
		return SP, false, nil
	case "%":
		return 1, true, nil
	}
	return 0, false, ErrFormat
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b Dimen) Dimen {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b Dimen) Dimen {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts d to [lo,hi]. If lo > hi, lo wins.
func Clamp(d, lo, hi Dimen) Dimen {
	if d > hi {
		d = hi
	}
	if d < lo {
		d = lo
	}
	return d
}
