// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"github.com/pdf-rs/pdf-text/classify"
	"github.com/pdf-rs/pdf-text/font"
	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/lines"
	"github.com/pdf-rs/pdf-text/span"
	"github.com/pdf-rs/pdf-text/table"
	"github.com/pdf-rs/pdf-text/util"
)

// Options configures one Build invocation (§7).
type Options struct {
	// WithoutHeaderAndFooter runs the header/footer trimmer (§4.3),
	// dropping boxes that look like a running head or page number so
	// the resulting tree (and Flow) comes out without them. False
	// bypasses the trimmer and keeps every span.
	WithoutHeaderAndFooter bool
}

// Build runs the full layout analysis (§4.2-§4.3) over spans within
// bbox, using strokes to resolve table rulings, and returns the root
// of the layout tree.
func Build(spans []span.TextSpan, bbox geom.Rect, strokes []lines.Stroke, opts Options) Node {
	if len(spans) == 0 {
		return singleton(nil)
	}

	boxes := span.Boxes(spans)
	avgFontSize, _ := span.AvgFontSize(spans)

	probablyHeader := func(bs []span.Box) bool {
		class := classify.Of(selectSpans(spans, bs))
		if class == font.Header || class == font.Number {
			return true
		}
		f, ok := avgFontSize2(spans, bs)
		return ok && f > avgFontSize
	}
	probablyFooter := func(bs []span.Box) bool {
		sortX(bs)
		xGaps := gaps(avgFontSize, bs, xExtent)
		count := 0
		total := 0
		for _, cell := range splitBy(bs, xGaps, func(b span.Box) float32 { return b.Rect.MinX() }) {
			total++
			if probablyHeader(cell) {
				count++
			}
		}
		return count == total
	}

	sortY(boxes)
	if opts.WithoutHeaderAndFooter {
		top, bottom, haveTop, haveBottom := topBottomGap(boxes, bbox)
		if haveBottom && probablyFooter(boxes[bottom:]) {
			boxes = boxes[:bottom]
		}
		if haveTop && probablyHeader(boxes[:top]) {
			boxes = boxes[top:]
		}

		sortX(boxes)
		left, right, haveLeft, haveRight := leftRightGap(boxes, bbox)
		if haveRight && probablyHeader(boxes[right:]) {
			boxes = boxes[:right]
		}
		if haveLeft && probablyHeader(boxes[:left]) {
			boxes = boxes[left:]
		}
	}

	lineInfo := lines.Analyze(strokes)
	return split(boxes, spans, lineInfo)
}

func selectSpans(spans []span.TextSpan, bs []span.Box) []span.TextSpan {
	out := make([]span.TextSpan, len(bs))
	for i, b := range bs {
		out[i] = spans[b.Index]
	}
	return out
}

func avgFontSize2(spans []span.TextSpan, bs []span.Box) (float32, bool) {
	var sizes []float32
	for _, b := range bs {
		sizes = append(sizes, spans[b.Index].FontSize)
	}
	return util.Avg(sizes)
}

// split recursively cuts boxes by their largest available horizontal
// or vertical gap (§4.2 steps 1-8).
func split(boxes []span.Box, spans []span.TextSpan, lineInfo lines.Lines) Node {
	numBoxes := len(boxes)
	if numBoxes < 2 {
		return singleton(boxes)
	}

	sortX(boxes)
	maxXGap, _, haveX := distX(boxes)
	sortY(boxes)
	maxYGap, _, haveY := distY(boxes)

	const xyRatio = 1.0

	var maxGap float32
	switch {
	case haveX && haveY:
		maxGap = maxXGap
		if maxYGap*xyRatio > maxGap {
			maxGap = maxYGap * xyRatio
		}
	case haveX:
		maxGap = maxXGap
	case haveY:
		maxGap = maxYGap * xyRatio
	default:
		sortX(boxes)
		return singleton(boxes)
	}

	xThreshold := maxGap * 0.5
	if xThreshold < 1.0 {
		xThreshold = 1.0
	}
	yThreshold := maxGap * 0.5 / xyRatio
	if yThreshold < 0.1 {
		yThreshold = 0.1
	}

	yGaps := gaps(yThreshold, boxes, yExtent)

	sortX(boxes)
	xGaps := gaps(xThreshold, boxes, xExtent)

	if len(xGaps) == 0 && len(yGaps) == 0 {
		return overlappingLines(boxes)
	}

	if len(xGaps) > 1 && len(yGaps) > 1 {
		return splitTable(boxes, spans, lineInfo)
	}

	sortY(boxes)
	var cells []Node
	for _, row := range splitBy(boxes, yGaps, func(b span.Box) float32 { return b.Rect.MinY() }) {
		if len(xGaps) > 0 {
			sortX(row)
			for _, cell := range splitBy(row, xGaps, func(b span.Box) float32 { return b.Rect.MinX() }) {
				sortY(cell)
				cells = append(cells, split(cell, spans, lineInfo))
			}
		} else {
			cells = append(cells, split(row, spans, lineInfo))
		}
	}

	tag := Complex
	switch {
	case len(yGaps) == 0:
		if allAtMost(cells, Line) {
			tag = Line
		}
	case len(xGaps) == 0:
		if allAtMost(cells, Line) {
			tag = Paragraph
		}
	}

	return gridNode(tag, xGaps, yGaps, cells)
}

func allAtMost(cells []Node, max Tag) bool {
	for i := range cells {
		if cells[i].Tag() > max {
			return false
		}
	}
	return true
}

// overlappingLines handles the degenerate case where boxes share no
// clean x- or y-gap: it groups boxes into lines by y-center proximity
// relative to the average box height (§4.2 step 7's fallback, when the
// table detector isn't entered).
func overlappingLines(boxes []span.Box) Node {
	sortY(boxes)
	var heights []float32
	for _, b := range boxes {
		heights = append(heights, b.Rect.Height())
	}
	avgHeight, _ := util.Avg(heights)

	yCenter := boxes[0].Rect.Center().Y
	var lineNodes []Node
	var ySplits []float32

	start := 0
	for {
		found := -1
		for i := start; i < len(boxes); i++ {
			if boxes[i].Rect.Center().Y > 0.5*avgHeight+yCenter {
				found = i
				break
			}
		}
		if found < 0 {
			sortX(boxes[start:])
			lineNodes = append(lineNodes, singleton(boxes[start:]))
			break
		}
		end := found
		sortX(boxes[start:end])
		var rects []geom.Rect
		for _, b := range boxes[start:end] {
			rects = append(rects, b.Rect)
		}
		bbox := geom.UnionAll(rects)
		ySplits = append(ySplits, bbox.MaxY())
		lineNodes = append(lineNodes, singleton(boxes[start:end]))
		yCenter = boxes[end].Rect.Center().Y
		start = end
	}

	switch len(lineNodes) {
	case 0:
		return singleton(nil)
	case 1:
		return lineNodes[0]
	default:
		return gridNode(Paragraph, nil, ySplits, lineNodes)
	}
}

// splitTable delegates to the table package and lowers its sections
// back into layout Nodes (§4.4).
func splitTable(boxes []span.Box, spans []span.TextSpan, lineInfo lines.Lines) Node {
	sections := table.Detect(boxes, spans, lineInfo)

	var ySplits []float32
	var cells []Node
	for _, s := range sections {
		if s.Node.Table != nil {
			cells = append(cells, tableNode(s.Node.Table))
		} else {
			cells = append(cells, Node{indices: s.Node.Indices})
		}
	}
	for i := 1; i < len(sections); i++ {
		ySplits = append(ySplits, 0.5*(sections[i-1].Y.End+sections[i].Y.Start))
	}

	if len(cells) > 1 {
		return gridNode(Complex, nil, ySplits, cells)
	}
	return cells[0]
}
