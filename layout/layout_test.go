// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"testing"

	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/span"
)

func sp(x, y, w, h, fontSize float32) span.TextSpan {
	return span.TextSpan{Rect: geom.RectXYWH(x, y, w, h), Transform: span.Identity, FontSize: fontSize, Text: "x"}
}

func TestBuildEmpty(t *testing.T) {
	n := Build(nil, geom.RectXYWH(0, 0, 100, 100), nil, Options{})
	if n.Tag() != Singleton {
		t.Errorf("Build(nil) tag = %v, want Singleton", n.Tag())
	}
	var out []int
	n.Indices(&out)
	if len(out) != 0 {
		t.Errorf("Build(nil) indices = %v, want empty", out)
	}
}

// Two far-apart boxes on the same line split into a two-cell Grid
// that covers both spans.
func TestBuildSplitsOnGap(t *testing.T) {
	spans := []span.TextSpan{
		sp(0, 0, 10, 10, 10),
		sp(100, 0, 10, 10, 10),
	}
	bbox := geom.RectXYWH(0, 0, 200, 50)
	n := Build(spans, bbox, nil, Options{})

	var out []int
	n.Indices(&out)
	if len(out) != 2 {
		t.Fatalf("Indices = %v, want both spans covered", out)
	}
	if len(n.Cells()) != 2 {
		t.Errorf("got %d cells, want a two-cell Grid", len(n.Cells()))
	}
}

// S3 — header then body: a bold, larger-font cluster followed (after
// a vertical gap) by a plain paragraph cluster should tag the header
// cluster's class as Header once it reaches the flow emitter; here we
// only check the tree retains all three spans.
func TestBuildHeaderThenBody(t *testing.T) {
	spans := []span.TextSpan{
		sp(0, 0, 40, 18, 18),
		sp(0, 40, 40, 12, 12),
		sp(0, 55, 40, 12, 12),
	}
	bbox := geom.RectXYWH(0, 0, 100, 100)
	n := Build(spans, bbox, nil, Options{})
	var out []int
	n.Indices(&out)
	if len(out) != 3 {
		t.Fatalf("Indices = %v, want all 3 spans retained", out)
	}
}

func TestGridCellCountInvariant(t *testing.T) {
	spans := []span.TextSpan{
		sp(0, 0, 10, 10, 10), sp(100, 0, 10, 10, 10),
		sp(0, 100, 10, 10, 10), sp(100, 100, 10, 10, 10),
	}
	bbox := geom.RectXYWH(0, 0, 300, 300)
	n := Build(spans, bbox, nil, Options{})
	checkGridInvariant(t, &n)
}

func checkGridInvariant(t *testing.T, n *Node) {
	t.Helper()
	if n.Cells() == nil {
		return
	}
	want := (len(n.XSplits()) + 1) * (len(n.YSplits()) + 1)
	if n.Table() == nil && len(n.Cells()) != want && len(n.XSplits()) > 0 {
		t.Errorf("grid cell count = %d, want %d", len(n.Cells()), want)
	}
	cells := n.Cells()
	for i := range cells {
		checkGridInvariant(t, &cells[i])
	}
}
