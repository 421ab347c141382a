// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"fmt"
	"strings"

	"github.com/pdf-rs/pdf-text/classify"
	"github.com/pdf-rs/pdf-text/span"
)

// Describe renders a human-readable, indented dump of n for debugging
// (a plain-text stand-in for the reference's SVG tree dump): one line
// per node, naming its tag and either its leaf classification, its
// grid shape, or its table dimensions.
func Describe(spans []span.TextSpan, n *Node) string {
	var b strings.Builder
	describe(&b, spans, n, 0)
	return b.String()
}

func describe(b *strings.Builder, spans []span.TextSpan, n *Node, level int) {
	indent := strings.Repeat("  ", level)
	switch {
	case n.table != nil:
		fmt.Fprintf(b, "%sTable rows=%d cols=%d\n", indent, n.table.Rows, n.table.Cols)
	case n.cells != nil:
		fmt.Fprintf(b, "%sGrid tag=%s rows=%d cols=%d\n", indent, tagName(n.Tag()), len(n.ySplits)+1, len(n.xSplits)+1)
		for i := range n.cells {
			describe(b, spans, &n.cells[i], level+1)
		}
	default:
		class := classify.Of(selectSpans(spans, boxesFor(n.indices)))
		fmt.Fprintf(b, "%sFinal class=%s n=%d\n", indent, class, len(n.indices))
	}
}

// boxesFor builds the minimal []span.Box Describe needs to reuse
// selectSpans; only Index is meaningful here.
func boxesFor(indices []int) []span.Box {
	boxes := make([]span.Box, len(indices))
	for i, idx := range indices {
		boxes[i] = span.Box{Index: idx}
	}
	return boxes
}

func tagName(t Tag) string {
	switch t {
	case Line:
		return "Line"
	case Paragraph:
		return "Paragraph"
	case Complex:
		return "Complex"
	default:
		return "Singleton"
	}
}
