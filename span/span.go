// SPDX-License-Identifier: Unlicense OR MIT

// Package span defines the input data model (§3): the positioned text
// fragments and per-glyph placements a lower-level page tracer hands
// to the layout analyzer.
package span

import (
	"github.com/pdf-rs/pdf-text/font"
	"github.com/pdf-rs/pdf-text/geom"
)

// Transform is a 2x3 affine transform from a span's em-space into
// device space: [a c e; b d f] applied as
//
//	x' = a*x + c*y + e
//	y' = b*x + d*y + f
type Transform struct {
	A, B, C, D, E, F float32
}

// Identity is the default transform when none is supplied.
var Identity = Transform{A: 1, D: 1}

// Apply maps an em-space point into device space.
func (t Transform) Apply(x, y float32) geom.Point {
	return geom.Point{
		X: t.A*x + t.C*y + t.E,
		Y: t.B*x + t.D*y + t.F,
	}
}

// TextChar is one glyph's horizontal placement within its span's
// em-space (§3).
type TextChar struct {
	// Offset is the byte index of this glyph's text in the owning
	// span's Text.
	Offset int
	Pos    float32
	Width  float32
}

// TextSpan is one tracer-produced run of glyphs sharing a font and
// transform (§3).
type TextSpan struct {
	Rect      geom.Rect
	Transform Transform
	Font      *font.Font
	FontSize  float32
	Text      string
	Chars     []TextChar
}

// Box pairs a Rect with the stable index of the TextSpan it bounds
// (§3); the layout tree operates on Boxes and never mutates the
// underlying spans.
type Box struct {
	Rect  geom.Rect
	Index int
}

// Boxes builds the initial Box slice for a span sequence, in input
// order.
func Boxes(spans []TextSpan) []Box {
	boxes := make([]Box, len(spans))
	for i, s := range spans {
		boxes[i] = Box{Rect: s.Rect, Index: i}
	}
	return boxes
}

// IsNumber reports whether s is non-empty and consists solely of ASCII
// digits (§4.6).
func IsNumber(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// AvgFontSize is the mean font size across spans, and false if spans
// is empty.
func AvgFontSize(spans []TextSpan) (float32, bool) {
	if len(spans) == 0 {
		return 0, false
	}
	var sum float32
	for _, s := range spans {
		sum += s.FontSize
	}
	return sum / float32(len(spans)), true
}
