// SPDX-License-Identifier: Unlicense OR MIT

// Package pdftext reconstructs the logical reading structure of a
// single rendered page — words, lines, paragraphs, headers and tables
// — from the positioned text spans and line strokes a renderer
// collaborator traces out of it (§1-§2). Analyze is the package's
// single entry point; everything else lives in the subpackages it
// wires together: geom, span, font, classify, word, lines, layout,
// table and flow.
package pdftext

import (
	"github.com/bytedance/sonic"

	"github.com/pdf-rs/pdf-text/flow"
	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/layout"
	"github.com/pdf-rs/pdf-text/lines"
	"github.com/pdf-rs/pdf-text/span"
)

// Options configures one Analyze call (§6 "Config enumeration").
type Options struct {
	// Transform is pre-applied to every span's device-space rect
	// before analysis; the zero value is treated as span.Identity.
	Transform span.Transform
	// WithoutHeaderAndFooter runs the §4.3 header/footer trimmer so
	// the resulting Flow comes out without them.
	WithoutHeaderAndFooter bool
}

func (o Options) transform() span.Transform {
	if o.Transform == (span.Transform{}) {
		return span.Identity
	}
	return o.Transform
}

// Analyze builds the layout tree for spans within bbox (using strokes
// to resolve table rulings) and emits the resulting Flow (§4.2-§4.7).
// Empty input is not an error: it yields an empty Flow (§7).
func Analyze(bbox geom.Rect, spans []span.TextSpan, strokes []lines.Stroke, opts Options) (*flow.Flow, error) {
	spans = applyTransform(spans, opts.transform())

	root := layout.Build(spans, bbox, strokes, layout.Options{
		WithoutHeaderAndFooter: opts.WithoutHeaderAndFooter,
	})

	f := flow.New()
	flow.Build(f, spans, &root, bbox.MinX())
	return f, nil
}

// applyTransform pre-composes t onto every span's transform and rect,
// leaving the caller's slice untouched.
func applyTransform(spans []span.TextSpan, t span.Transform) []span.TextSpan {
	if t == span.Identity {
		return spans
	}
	out := make([]span.TextSpan, len(spans))
	for i, s := range spans {
		s.Transform = compose(t, s.Transform)
		s.Rect = transformRect(t, s.Rect)
		out[i] = s
	}
	return out
}

// compose returns the transform equivalent to applying inner then
// outer.
func compose(outer, inner span.Transform) span.Transform {
	return span.Transform{
		A: outer.A*inner.A + outer.C*inner.B,
		B: outer.B*inner.A + outer.D*inner.B,
		C: outer.A*inner.C + outer.C*inner.D,
		D: outer.B*inner.C + outer.D*inner.D,
		E: outer.A*inner.E + outer.C*inner.F + outer.E,
		F: outer.B*inner.E + outer.D*inner.F + outer.F,
	}
}

func transformRect(t span.Transform, r geom.Rect) geom.Rect {
	p1 := t.Apply(r.MinX(), r.MinY())
	p2 := t.Apply(r.MaxX(), r.MaxY())
	return geom.Rect{Min: p1, Max: p2}.Canon()
}

// MarshalFlow encodes f as the wire format described in §6: a
// straightforward field-for-field JSON encoding.
func MarshalFlow(f *flow.Flow) ([]byte, error) {
	return sonic.Marshal(f)
}

// UnmarshalFlow decodes a Flow previously produced by MarshalFlow.
func UnmarshalFlow(data []byte) (*flow.Flow, error) {
	var f flow.Flow
	if err := sonic.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
