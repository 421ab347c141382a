// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"testing"

	"github.com/pdf-rs/pdf-text/font"
	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/layout"
	"github.com/pdf-rs/pdf-text/span"
)

// wordSpan builds a single TextSpan whose glyphs lay out text
// left-to-right with no internal gaps, so word.Concat treats the
// whole span as one word.
func wordSpan(text string, x, y, glyphWidth, fontSize float32) span.TextSpan {
	chars := make([]span.TextChar, len(text))
	pos := x
	for i := range text {
		chars[i] = span.TextChar{Offset: i, Pos: pos, Width: glyphWidth}
		pos += glyphWidth
	}
	return span.TextSpan{
		Rect:      geom.RectXYWH(x, y, pos-x, fontSize),
		Transform: span.Identity,
		FontSize:  fontSize,
		Text:      text,
		Chars:     chars,
	}
}

func buildFlow(t *testing.T, spans []span.TextSpan, bbox geom.Rect, opts layout.Options) *Flow {
	t.Helper()
	root := layout.Build(spans, bbox, nil, opts)
	f := New()
	Build(f, spans, &root, bbox.MinX())
	return f
}

// S1 — a single line with two words separated by a wide gap yields one
// Run with one Line holding both words.
func TestS1SingleLineTwoWords(t *testing.T) {
	spans := []span.TextSpan{
		wordSpan("hello", 0, 0, 6, 12),
		wordSpan("world", 100, 0, 6, 12),
	}
	bbox := geom.RectXYWH(0, 0, 200, 20)
	f := buildFlow(t, spans, bbox, layout.Options{})

	if len(f.Runs) != 1 {
		t.Fatalf("got %d runs, want 1: %+v", len(f.Runs), f.Runs)
	}
	words := f.Runs[0].Lines[0].Words
	if len(words) != 2 || words[0].Text != "hello" || words[1].Text != "world" {
		t.Errorf("got words %+v", words)
	}
}

// A lone bold span classifies as a Header run.
func TestHeaderSpanBuildsHeaderRun(t *testing.T) {
	header := wordSpan("TITLE", 0, 0, 8, 20)
	header.Font = &font.Font{Name: "Arial-BoldMT"}

	spans := []span.TextSpan{header}
	bbox := geom.RectXYWH(0, 0, 200, 40)
	f := buildFlow(t, spans, bbox, layout.Options{})

	if len(f.Runs) != 1 {
		t.Fatalf("got %d runs, want 1: %+v", len(f.Runs), f.Runs)
	}
	if f.Runs[0].Kind != RunHeader {
		t.Errorf("run kind = %v, want Header", f.Runs[0].Kind)
	}
}

// A lone plain span never classifies as a Header run.
func TestPlainSpanIsNotHeaderRun(t *testing.T) {
	body := wordSpan("bodytext", 0, 0, 6, 10)
	spans := []span.TextSpan{body}
	bbox := geom.RectXYWH(0, 0, 200, 40)
	f := buildFlow(t, spans, bbox, layout.Options{})

	if len(f.Runs) != 1 {
		t.Fatalf("got %d runs, want 1: %+v", len(f.Runs), f.Runs)
	}
	if f.Runs[0].Kind == RunHeader {
		t.Errorf("run kind = Header, want non-Header for plain text")
	}
}

// S4 — a numeric footer near the bottom of the page is dropped when
// WithoutHeaderAndFooter is true, and retained as its own Run when
// false.
func TestS4FooterFlag(t *testing.T) {
	body := wordSpan("bodytext", 0, 0, 6, 10)
	// The body cluster's box is stretched to fill most of the page, so
	// the gap before the footer falls within the bottom 20% band that
	// topBottomGap treats as footer territory.
	body.Rect = geom.RectXYWH(0, 0, 48, 165)
	footer := wordSpan("42", 0, 190, 6, 10)
	spans := []span.TextSpan{body, footer}
	bbox := geom.RectXYWH(0, 0, 200, 200)

	trimmed := buildFlow(t, spans, bbox, layout.Options{WithoutHeaderAndFooter: true})
	var trimmedHasFooter bool
	for _, r := range trimmed.Runs {
		for _, l := range r.Lines {
			for _, w := range l.Words {
				if w.Text == "42" {
					trimmedHasFooter = true
				}
			}
		}
	}
	if trimmedHasFooter {
		t.Errorf("WithoutHeaderAndFooter=true: footer %q should have been dropped, runs=%+v", "42", trimmed.Runs)
	}

	kept := buildFlow(t, spans, bbox, layout.Options{WithoutHeaderAndFooter: false})
	var keptHasFooter bool
	for _, r := range kept.Runs {
		for _, l := range r.Lines {
			for _, w := range l.Words {
				if w.Text == "42" {
					keptHasFooter = true
				}
			}
		}
	}
	if !keptHasFooter {
		t.Errorf("WithoutHeaderAndFooter=false: footer %q should be retained, runs=%+v", "42", kept.Runs)
	}
}

// A 3x3 grid of short, well-separated cells triggers the table
// detector; every cell lowers into a TableContent in row-major order.
func TestTableLowering(t *testing.T) {
	var spans []span.TextSpan
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			x := float32(col) * 30
			y := float32(row) * 30
			spans = append(spans, wordSpan("c", x, y, 6, 12))
		}
	}
	bbox := geom.RectXYWH(0, 0, 100, 100)
	f := buildFlow(t, spans, bbox, layout.Options{})

	if len(f.Tables) != 1 {
		t.Fatalf("got %d tables, want 1: %+v", len(f.Tables), f.Tables)
	}
	tc := f.Tables[0]
	if tc.Rows != 3 || tc.Cols != 3 {
		t.Fatalf("table dims = %dx%d, want 3x3", tc.Rows, tc.Cols)
	}
	if len(tc.Cells) != 9 {
		t.Fatalf("got %d cells, want 9: %+v", len(tc.Cells), tc.Cells)
	}
	for _, c := range tc.Cells {
		if c.RowSpan != 1 || c.ColSpan != 1 {
			t.Errorf("cell (%d,%d) span = %dx%d, want 1x1", c.Row, c.Col, c.RowSpan, c.ColSpan)
		}
	}
}

// Building the same input twice produces byte-for-byte identical
// output (§8 invariant: determinism).
func TestBuildDeterministic(t *testing.T) {
	spans := []span.TextSpan{
		wordSpan("hello", 0, 0, 6, 12),
		wordSpan("world", 100, 0, 6, 12),
		wordSpan("again", 0, 60, 6, 12),
	}
	bbox := geom.RectXYWH(0, 0, 200, 100)

	f1 := buildFlow(t, spans, bbox, layout.Options{})
	f2 := buildFlow(t, spans, bbox, layout.Options{})

	if len(f1.Runs) != len(f2.Runs) {
		t.Fatalf("run count differs across runs: %d vs %d", len(f1.Runs), len(f2.Runs))
	}
	for i := range f1.Runs {
		w1 := f1.Runs[i].Lines[0].Words
		w2 := f2.Runs[i].Lines[0].Words
		if len(w1) != len(w2) {
			t.Fatalf("run %d word count differs: %d vs %d", i, len(w1), len(w2))
		}
		for j := range w1 {
			if w1[j].Text != w2[j].Text || w1[j].Rect != w2[j].Rect {
				t.Errorf("run %d word %d differs: %+v vs %+v", i, j, w1[j], w2[j])
			}
		}
	}
}
