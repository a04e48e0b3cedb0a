// Package dimen implements dimensions and units for placing content on
// printed pages.
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
// Values are in scaled big points (different from TeX).
type Dimen int32

// Some pre-defined dimensions
const (
	Zero Dimen = 0
	SP   Dimen = 1       // scaled point = BP / 65536
	BP   Dimen = 65536   // big point (PDF) = 1/72 inch
	PX   Dimen = 65536   // "pixels" at 72 dpi
	PT   Dimen = 65291   // printers point 1/72.27 inch
	MM   Dimen = 185771  // millimeters
	CM   Dimen = 1857710 // centimeters
	IN   Dimen = 4718592 // inch
)

// Infinity is the largest possible dimension
const Infinity = math.MaxInt32

// Some common paper sizes
var DINA4 = Point{210 * MM, 297 * MM}
var DINA5 = Point{148 * MM, 210 * MM}
var USLetter = Point{216 * MM, 279 * MM}

// DefaultPageMargin is the page margin a print renderer will use if not
// told otherwise (40bp on each side).
const DefaultPageMargin Dimen = 40 * BP

// Stringer implementation.
func (d Dimen) String() string {
	return fmt.Sprintf("%dsp", int32(d))
}

// Points returns a dimension in big (PDF) points.
func (d Dimen) Points() float64 {
	return float64(d) / float64(BP)
}

// FromPoints creates a dimension from a value in big points.
func FromPoints(bp float64) Dimen {
	return Dimen(math.Round(bp * float64(BP)))
}

// FromPixels converts a pixel count at a given resolution (dots per inch)
// to a dimension. A non-positive dpi is taken as 72 dpi.
func FromPixels(px int, dpi float64) Dimen {
	if dpi <= 0 {
		dpi = 72
	}
	return Dimen(math.Round(float64(px) * float64(IN) / dpi))
}

// Point is a point on a page.
type Point struct {
	X, Y Dimen
}

// ContentWidth returns the usable width of a paper format p with margin m
// on the left and right.
func (p Point) ContentWidth(m Dimen) Dimen {
	return Max(0, p.X-2*m)
}

// FitWidth scales an extent (w, h) proportionally to be no wider than max.
// Extents narrower than max are returned unchanged. A non-positive max means
// "no limit".
func FitWidth(w, h, max Dimen) (Dimen, Dimen) {
	if max <= 0 || w <= max || w <= 0 {
		return w, h
	}
	scaled := float64(h) * float64(max) / float64(w)
	return max, Dimen(math.Round(scaled))
}

// ---------------------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+(?:\.[0-9]+)?)([a-zA-Z]{2})?$`)

// ParseDimen parses a string to return a dimension. Syntax is CSS Unit,
// without percentages. Unit-less values are taken as big points.
//
func ParseDimen(s string) (Dimen, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, errors.New("format error parsing dimension")
	}
	scale := BP
	if len(d) > 2 {
		switch d[2] {
		case "pt", "PT":
			scale = PT
		case "mm", "MM":
			scale = MM
		case "bp", "px", "BP", "PX", "":
			scale = BP
		case "cm", "CM":
			scale = CM
		case "in", "IN":
			scale = IN
		case "sp", "SP":
			scale = SP
		default:
			return 0, errors.New("format error parsing dimension: unknown unit " + d[2])
		}
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, errors.New("format error parsing dimension")
	}
	return Dimen(math.Round(n * float64(scale))), nil
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
