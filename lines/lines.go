// SPDX-License-Identifier: Unlicense OR MIT

// Package lines collapses ruling-stroke endpoints into clustered
// horizontal and vertical lines and builds the boolean grid the table
// detector consults to veto implicit row merges across ruled
// boundaries (§4.1).
package lines

import "sort"

// clusterGap is the tolerance, in device units, for merging
// near-coincident stroke coordinates into one ruling.
const clusterGap = 10.0

// Cluster is a dedup'd run of near-coincident stroke coordinates.
type Cluster struct {
	Start, End float32
}

// Lines is the geometric summary of a page's ruling strokes.
type Lines struct {
	HLines []Cluster
	VLines []Cluster
	// Grid is laid out len(VLines) rows of len(HLines) bools: Grid[v][h]
	// is true where a ruling crosses that vline/hline cell.
	Grid [][]bool
}

// Stroke is a line segment [x1,y1,x2,y2] from vector content.
type Stroke [4]float32

// Analyze classifies each stroke as horizontal (y1==y2), vertical
// (x1==x2) or neither, and builds the clustered Lines summary.
// NaN-producing strokes are excluded, per §4.1.
func Analyze(strokes []Stroke) Lines {
	var hCoords, vCoords []float32

	for _, s := range strokes {
		x1, y1, x2, y2 := s[0], s[1], s[2], s[3]
		if isNaN(x1) || isNaN(y1) || isNaN(x2) || isNaN(y2) {
			continue
		}
		if x1 == x2 {
			vCoords = append(vCoords, x1)
		} else if y1 == y2 {
			hCoords = append(hCoords, y1)
		}
	}

	hlines := dedup(sortedUnique(hCoords))
	vlines := dedup(sortedUnique(vCoords))

	grid := make([][]bool, len(vlines))
	for i := range grid {
		grid[i] = make([]bool, len(hlines))
	}

	for _, s := range strokes {
		x1, y1, x2, y2 := s[0], s[1], s[2], s[3]
		if isNaN(x1) || isNaN(y1) || isNaN(x2) || isNaN(y2) {
			continue
		}
		switch {
		case x1 == x2:
			vIdx := indexContaining(vlines, x1)
			hStart := indexFirstStartAtLeast(hlines, y1)
			hEnd := indexFirstEndAtLeast(hlines, y2)
			if vIdx < len(vlines) {
				for h := hStart; h < hEnd && h < len(hlines); h++ {
					grid[vIdx][h] = true
				}
			}
		case y1 == y2:
			hIdx := indexContaining(hlines, y1)
			vStart := indexFirstStartAtLeast(vlines, x1)
			vEnd := indexFirstEndAtLeast(vlines, x2)
			if hIdx < len(hlines) {
				for v := vStart; v < vEnd && v < len(vlines); v++ {
					grid[v][hIdx] = true
				}
			}
		}
	}

	return Lines{HLines: hlines, VLines: vlines, Grid: grid}
}

func isNaN(f float32) bool { return f != f }

func sortedUnique(xs []float32) []float32 {
	if len(xs) == 0 {
		return nil
	}
	out := append([]float32(nil), xs...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	dedup := out[:1]
	for _, v := range out[1:] {
		if v != dedup[len(dedup)-1] {
			dedup = append(dedup, v)
		}
	}
	return dedup
}

// dedup greedily merges consecutive sorted coordinates whose successor
// is within clusterGap of the running last value, into (start, end)
// clusters. This tolerates slight misalignment of stroked rulings.
func dedup(sorted []float32) []Cluster {
	var out []Cluster
	i := 0
	for i < len(sorted) {
		start := sorted[i]
		last := start
		i++
		for i < len(sorted) && last+clusterGap > sorted[i] {
			last = sorted[i]
			i++
		}
		out = append(out, Cluster{start, last})
	}
	return out
}

// indexContaining returns the index of the cluster whose [Start,End]
// contains coord, or len(clusters) if none does.
func indexContaining(clusters []Cluster, coord float32) int {
	for i, c := range clusters {
		if c.Start <= coord && coord <= c.End {
			return i
		}
	}
	return len(clusters)
}

// indexFirstStartAtLeast returns the index of the first cluster whose
// Start is >= coord, i.e. the first cluster lying at or after coord —
// used for the crossing range's start bound.
func indexFirstStartAtLeast(clusters []Cluster, coord float32) int {
	for i, c := range clusters {
		if coord <= c.Start {
			return i
		}
	}
	return len(clusters)
}

// indexFirstEndAtLeast returns the index of the first cluster whose
// End is >= coord, i.e. the first cluster coord could fall at or
// before — used for the crossing range's end bound (analyze_lines'
// "coord <= b" predicate).
func indexFirstEndAtLeast(clusters []Cluster, coord float32) int {
	for i, c := range clusters {
		if coord <= c.End {
			return i
		}
	}
	return len(clusters)
}
