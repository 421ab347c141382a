// SPDX-License-Identifier: Unlicense OR MIT

// Package font describes the font references carried by a text span
// and the evidence triangles the classifier (§4.6) accumulates over
// them. Actual font decoding is an external collaborator's job (§1);
// this package only needs enough of a font's identity to tell spans
// apart and to recognize boldness by name.
package font

import "strings"

// A Font is an opaque reference to a typeface, supplied by the
// renderer collaborator. Two Fonts are the same font iff they are the
// same pointer — the analyzer never decodes the face itself, so name
// equality is not a substitute for identity (two distinct embedded
// subsets can share a BaseFont name).
type Font struct {
	// Name is the font's PostScript/BaseFont name, as reported by the
	// renderer. Used only for the Bold heuristic below.
	Name string
}

// Bold reports whether f's name marks it as a bold variant. This is
// the same substring heuristic classify.rs uses: PDF subset fonts
// commonly encode weight in the BaseFont name ("Arial-BoldMT" etc.)
// and there is no portable, decoding-free way to ask a PDF font for
// its weight.
func (f *Font) Bold() bool {
	return f != nil && strings.Contains(f.Name, "Bold")
}

// Class is the semantic label classify assigns to a collection of
// spans.
type Class int

const (
	Paragraph Class = iota
	Number
	Header
	Mixed
)

func (c Class) String() string {
	switch c {
	case Number:
		return "Number"
	case Header:
		return "Header"
	case Paragraph:
		return "Paragraph"
	case Mixed:
		return "Mixed"
	default:
		return "Paragraph"
	}
}

// Tri is a three-valued summary of boolean evidence collected across a
// span collection.
type Tri int

const (
	Unknown Tri = iota
	True
	False
	Maybe
)

// TriCount is a classifier triangle: it accumulates true/false
// observations and collapses them to a Tri, optionally carrying the
// true fraction when the evidence is mixed.
type TriCount struct {
	tru, fal int
}

// Add records one boolean observation.
func (t *TriCount) Add(b bool) {
	if b {
		t.tru++
	} else {
		t.fal++
	}
}

// Count collapses the accumulated observations. Unknown means no
// observations were recorded; Maybe carries the true fraction.
func (t *TriCount) Count() (Tri, float32) {
	switch {
	case t.tru == 0 && t.fal == 0:
		return Unknown, 0
	case t.fal == 0:
		return True, 1
	case t.tru == 0:
		return False, 0
	default:
		frac := float32(t.tru) / float32(t.tru+t.fal)
		return Maybe, frac
	}
}
