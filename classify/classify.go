// SPDX-License-Identifier: Unlicense OR MIT

// Package classify labels a collection of spans as Number, Header,
// Paragraph or Mixed (§4.6), triangulating on numericness, boldness
// and font uniformity.
package classify

import (
	"github.com/pdf-rs/pdf-text/font"
	"github.com/pdf-rs/pdf-text/span"
)

// Of classifies spans. An empty input classifies as Mixed: its bold
// triangle stays Unknown, so none of the Number, Header or Paragraph
// cases apply despite the synthetic uniform=true bias described below.
func Of(spans []span.TextSpan) font.Class {
	var numeric, bold, uniform font.TriCount
	var firstFont *font.Font
	seenFont := false

	for _, s := range spans {
		numeric.Add(span.IsNumber(s.Text))
		if s.Font != nil {
			bold.Add(s.Font.Bold())
			if !seenFont {
				firstFont = s.Font
				seenFont = true
			} else {
				uniform.Add(s.Font == firstFont)
			}
		}
	}
	// Bias single-span (or single-font) runs toward uniform=True;
	// preserved verbatim from the reference classifier (open question
	// #3 in SPEC_FULL.md).
	uniform.Add(true)

	numTri, _ := numeric.Count()
	boldTri, _ := bold.Count()
	uniTri, _ := uniform.Count()

	switch {
	case numTri == font.True && uniTri == font.True:
		return font.Number
	case boldTri == font.True && uniTri == font.True:
		return font.Header
	case boldTri == font.False:
		return font.Paragraph
	case boldTri == font.Maybe:
		return font.Paragraph
	default:
		return font.Mixed
	}
}
