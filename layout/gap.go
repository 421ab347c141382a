// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"sort"

	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/span"
)

// extent pulls a box's extent along one axis.
type extent func(span.Box) (float32, float32)

func xExtent(b span.Box) (float32, float32) { return b.Rect.MinX(), b.Rect.MaxX() }
func yExtent(b span.Box) (float32, float32) { return b.Rect.MinY(), b.Rect.MaxY() }

func sortX(boxes []span.Box) {
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Rect.MinX() < boxes[j].Rect.MinX() })
}
func sortY(boxes []span.Box) {
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Rect.MinY() < boxes[j].Rect.MinY() })
}

// gapEntry is one whitespace run between consecutive boxes along an
// axis: [start, end) with splitIdx the index of the first box after
// the gap.
type gapEntry struct {
	start, end float32
	splitIdx   int
}

// gapList returns every whitespace run between adjacent boxes (sorted
// along the relevant axis by the caller), regardless of size.
func gapList(boxes []span.Box, span extent) []gapEntry {
	if len(boxes) == 0 {
		return nil
	}
	_, lastMax := span(boxes[0])
	var out []gapEntry
	for idx, b := range boxes[1:] {
		min, max := span(b)
		if min > lastMax {
			out = append(out, gapEntry{lastMax, min, idx + 1})
		}
		if max > lastMax {
			lastMax = max
		}
	}
	return out
}

// gaps returns the midpoint of every whitespace run at least threshold
// wide.
func gaps(threshold float32, boxes []span.Box, span extent) []float32 {
	if len(boxes) == 0 {
		return nil
	}
	_, lastMax := span(boxes[0])
	var out []float32
	for _, b := range boxes[1:] {
		min, max := span(b)
		if min-lastMax >= threshold {
			out = append(out, 0.5*(lastMax+min))
		}
		if max > lastMax {
			lastMax = max
		}
	}
	return out
}

// maxGapSize returns the width and midpoint of the single widest
// whitespace run, and false if there is no gap between the boxes
// (always so when boxes has fewer than two elements).
func maxGapSize(boxes []span.Box, span extent) (size, mid float32, ok bool) {
	entries := gapList(boxes, span)
	if len(entries) == 0 {
		return 0, 0, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.end-e.start > best.end-best.start {
			best = e
		}
	}
	return best.end - best.start, 0.5 * (best.start + best.end), true
}

func distX(boxes []span.Box) (size, mid float32, ok bool) { return maxGapSize(boxes, xExtent) }
func distY(boxes []span.Box) (size, mid float32, ok bool) { return maxGapSize(boxes, yExtent) }

// splitBy partitions list at each point in at, along the axis by
// reports; points must be sorted ascending. Every box with by(box) <=
// point goes to the segment before that point.
func splitBy(list []span.Box, at []float32, by func(span.Box) float32) [][]span.Box {
	var out [][]span.Box
	start := 0
	for _, p := range at {
		idx := len(list)
		for i := start; i < len(list); i++ {
			if by(list[i]) > p {
				idx = i
				break
			}
		}
		out = append(out, list[start:idx])
		start = idx
	}
	out = append(out, list[start:])
	return out
}

// topBottomGap locates the header/footer candidate split points: the
// index where the topmost gap-list entry ends, if it falls within the
// top 20% of bbox's height, and symmetrically for the bottom 20%.
func topBottomGap(boxes []span.Box, bbox geom.Rect) (top, bottom int, haveTop, haveBottom bool) {
	if len(boxes) < 2 {
		return 0, 0, false, false
	}
	entries := gapList(boxes, yExtent)
	if len(entries) == 0 {
		return 0, 0, false, false
	}
	topLimit := bbox.MinY() + bbox.Height()*0.2
	bottomLimit := bbox.MinY() + bbox.Height()*0.8

	// Mirrors the reference's two sequential matches on the same
	// iterator: the bottom candidate comes from the last remaining gap
	// only once the first gap has already qualified as a header; if it
	// hasn't, the very same first gap is tested against the footer
	// limit instead of consulting the list's true last entry.
	first := entries[0]
	if first.start < topLimit {
		if len(entries) >= 2 {
			last := entries[len(entries)-1]
			if last.start > bottomLimit {
				return first.splitIdx, last.splitIdx, true, true
			}
		}
		return first.splitIdx, 0, true, false
	}
	if first.start > bottomLimit {
		return 0, first.splitIdx, false, true
	}
	return 0, 0, false, false
}

// leftRightGap is topBottomGap's horizontal counterpart.
func leftRightGap(boxes []span.Box, bbox geom.Rect) (left, right int, haveLeft, haveRight bool) {
	if len(boxes) < 2 {
		return 0, 0, false, false
	}
	entries := gapList(boxes, xExtent)
	if len(entries) == 0 {
		return 0, 0, false, false
	}
	leftLimit := bbox.MinX() + bbox.Width()*0.2
	rightLimit := bbox.MinX() + bbox.Width()*0.8

	first := entries[0]
	if first.start < leftLimit {
		if len(entries) >= 2 {
			last := entries[len(entries)-1]
			if last.start > rightLimit {
				return first.splitIdx, last.splitIdx, true, true
			}
		}
		return first.splitIdx, 0, true, false
	}
	if first.start > rightLimit {
		return 0, first.splitIdx, false, true
	}
	return 0, 0, false, false
}
