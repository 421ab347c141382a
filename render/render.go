// SPDX-License-Identifier: Unlicense OR MIT

// Package render specifies the external collaborator interfaces (§6):
// the renderer that traces a page into spans and strokes, and the
// pattern source the analyzer replays to pick up text and lines
// hidden inside fill/stroke patterns. Nothing in this package decodes
// a page itself; that stays the caller's responsibility, per §1's
// exclusion of PDF parsing, font decoding and vector rasterization.
package render

import (
	"log"

	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/lines"
	"github.com/pdf-rs/pdf-text/span"
)

// RenderError wraps a failure surfaced by the renderer collaborator
// (§7): a page, font or pattern that failed to load. Page/font
// failures are fatal to the invocation; pattern failures are logged
// and skipped by VisitPatterns below.
type RenderError struct {
	// Resource names what failed to load ("page", "font", "pattern").
	Resource string
	Err      error
}

func (e *RenderError) Error() string {
	return "render: failed to load " + e.Resource + ": " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }

// Trace is one renderer invocation's output (§6 Inputs): the page's
// view box, the text spans traced within it, and the line strokes
// traced from vector content.
type Trace struct {
	BBox    geom.Rect
	Spans   []span.TextSpan
	Strokes []lines.Stroke
}

// PatternID identifies a fill/stroke pattern a page references.
type PatternID uint64

// PatternSource loads and retraces the patterns a page's fills or
// strokes reference (§6: "the caller replays each pattern through its
// own tracer"). Implementations live outside this module; Go's
// image/vector ecosystem supplies several (e.g. golang.org/x/image's
// rasterizer), but decoding the actual pattern content is explicitly
// out of scope here (§1).
type PatternSource interface {
	// Patterns returns the set of pattern IDs referenced by the page
	// already traced into base.
	Patterns(base Trace) []PatternID
	// Trace replays one pattern, returning the additional spans and
	// strokes it contributes, or a *RenderError if the pattern failed
	// to load.
	Trace(id PatternID) (Trace, error)
}

// VisitPatterns replays every pattern base's PatternSource exposes and
// appends their spans/strokes to base, in encounter order. A pattern
// that fails to load is logged and skipped (§7); the analysis proceeds
// with whatever patterns did load.
func VisitPatterns(base Trace, src PatternSource) Trace {
	for _, id := range src.Patterns(base) {
		t, err := src.Trace(id)
		if err != nil {
			log.Printf("pdf-text: failed to load pattern %d: %v", id, err)
			continue
		}
		base.Spans = append(base.Spans, t.Spans...)
		base.Strokes = append(base.Strokes, t.Strokes...)
	}
	return base
}
