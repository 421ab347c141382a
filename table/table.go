// SPDX-License-Identifier: Unlicense OR MIT

// Package table implements the sparse row/col-spanning grid the table
// detector (§4.4) builds cells into, plus the detector itself.
package table

import (
	"sort"

	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/lines"
	"github.com/pdf-rs/pdf-text/span"
	"github.com/pdf-rs/pdf-text/util"
)

// Cell is one occupied position of a Table: a value together with the
// span it covers.
type Cell[T any] struct {
	Value            T
	Row, Col         int
	RowSpan, ColSpan int
}

// Table is a dense logical (Rows x Cols) grid in which a cell may span
// multiple rows/columns (§3). Only the top-left logical position of a
// spanning cell is addressable by SetCell/CellValue; the remaining
// positions it covers are marked occupied so later writes don't
// overlap it.
type Table[T any] struct {
	Rows, Cols int
	cells      map[int]*Cell[T] // keyed by row*Cols+col, top-left position only
	owner      map[int]int      // every covered position -> key of its cell's top-left
}

// Empty creates a Table with the given logical dimensions and no
// cells set.
func Empty[T any](rows, cols int) *Table[T] {
	return &Table[T]{
		Rows:  rows,
		Cols:  cols,
		cells: make(map[int]*Cell[T]),
		owner: make(map[int]int),
	}
}

func (t *Table[T]) key(row, col int) int { return row*t.Cols + col }

// SetCell places value at (row, col), overwriting whatever existing
// cells the new cell's span covers, even ones whose own top-left lies
// outside it (§3: "set_cell at (r,c) overwrites the covered region").
func (t *Table[T]) SetCell(value T, row, col, rowSpan, colSpan int) {
	newKey := t.key(row, col)
	release := func(key int) {
		for pos, o := range t.owner {
			if o == key {
				delete(t.owner, pos)
			}
		}
		delete(t.cells, key)
	}
	release(newKey)
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			k := t.key(r, c)
			if ownerKey, ok := t.owner[k]; ok && ownerKey != newKey {
				release(ownerKey)
			}
			t.owner[k] = newKey
		}
	}
	t.cells[newKey] = &Cell[T]{Value: value, Row: row, Col: col, RowSpan: rowSpan, ColSpan: colSpan}
}

// CellValue returns a pointer to the value stored at the top-left
// position (row, col), and whether a cell starts exactly there. A
// position covered by a spanning cell whose top-left lies elsewhere
// does not count.
func (t *Table[T]) CellValue(row, col int) (*T, bool) {
	c, ok := t.cells[t.key(row, col)]
	if !ok {
		return nil, false
	}
	return &c.Value, true
}

// Occupied reports whether (row, col) is covered by any cell,
// including positions covered only via row/col span.
func (t *Table[T]) Occupied(row, col int) bool {
	_, ok := t.owner[t.key(row, col)]
	return ok
}

// Cells returns every cell in the table, ordered by (row, col) of
// their top-left position.
func (t *Table[T]) Cells() []*Cell[T] {
	out := make([]*Cell[T], 0, len(t.cells))
	for _, c := range t.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// run is a maximal contiguous horizontal group of boxes in a text line
// whose x-extents touch or overlap (built the same way build_line
// groups boxes in the reference table splitter).
type run struct {
	x       geom.Span
	indices []int
}

// textLine is one vertically-overlapping group of boxes, partitioned
// into horizontal runs and tagged by its widest inter-run gap.
type textLine struct {
	tag  lineTag
	y    geom.Span
	runs []run
}

type lineTag int

const (
	tagUnknown lineTag = iota
	tagText
	tagTable
)

// buildLines groups boxes (already sorted by y by the caller) into
// vertically-overlapping rows, then partitions each row into runs and
// tags it (§4.4 steps 1-3).
func buildLines(boxes []span.Box, spans []span.TextSpan) []textLine {
	if len(boxes) == 0 {
		return nil
	}

	var groups [][]span.Box
	y := geom.NewSpan(boxes[0].Rect.MinY(), boxes[0].Rect.MaxY())
	group := []span.Box{boxes[0]}
	for _, b := range boxes[1:] {
		y2 := geom.NewSpan(b.Rect.MinY(), b.Rect.MaxY())
		if overlap, ok := y.Intersect(y2); ok {
			y = overlap
		} else {
			groups = append(groups, group)
			group = nil
			y = y2
		}
		group = append(group, b)
	}
	groups = append(groups, group)

	lns := make([]textLine, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].Rect.MinX() < g[j].Rect.MinX() })
		lns = append(lns, buildLine(g, spans))
	}
	return lns
}

func buildLine(boxes []span.Box, spans []span.TextSpan) textLine {
	var runs []run
	x := geom.NewSpan(boxes[0].Rect.MinX(), boxes[0].Rect.MaxX())
	yFull := geom.NewSpan(boxes[0].Rect.MinY(), boxes[0].Rect.MaxY())
	items := []int{boxes[0].Index}

	for _, b := range boxes[1:] {
		y2 := geom.NewSpan(b.Rect.MinY(), b.Rect.MaxY())
		if u, ok := yFull.Union(y2); ok {
			yFull = u
		}
		x2 := geom.NewSpan(b.Rect.MinX(), b.Rect.MaxX())
		if u, ok := x.Union(x2); ok {
			x = u
			items = append(items, b.Index)
		} else {
			runs = append(runs, run{x: x, indices: items})
			x = x2
			items = []int{b.Index}
		}
	}
	runs = append(runs, run{x: x, indices: items})

	var fontSizes []float32
	for _, b := range boxes {
		fontSizes = append(fontSizes, spans[b.Index].FontSize)
	}
	f, _ := util.Avg(fontSizes)

	var maxGap float32
	haveGap := false
	for i := 1; i < len(runs); i++ {
		g := runs[i].x.Start - runs[i-1].x.End
		if !haveGap || g > maxGap {
			maxGap = g
			haveGap = true
		}
	}

	var tag lineTag
	switch {
	case !haveGap:
		tag = tagUnknown
	case maxGap < 0.3*f:
		tag = tagText
	default:
		tag = tagTable
	}

	return textLine{tag: tag, y: yFull, runs: runs}
}

// Node is the minimal shape the table detector hands back to the
// layout tree builder: either a leaf span-index list or a built table.
// The layout package wraps these into its own Node variants.
type Node struct {
	Indices []int
	Table   *Table[[]int]
}

// Section is one vertical part of a detected region: either a single
// text line lowered to Indices, or a table spanning one or more lines.
type Section struct {
	Y    geom.Span
	Node Node
}

// Detect runs the §4.4 table detector over a region already known to
// have >= 2 x-gaps and >= 2 y-gaps. It returns the vertical sections in
// reading order: plain-text lines interleaved with detected tables.
func Detect(boxes []span.Box, spans []span.TextSpan, lineInfo lines.Lines) []Section {
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].Rect.MinY() < boxes[j].Rect.MinY() })
	lns := buildLines(boxes, spans)

	var sections []Section
	start := 0
	for start < len(lns) {
		p := -1
		for i := start; i < len(lns); i++ {
			if lns[i].tag == tagUnknown || lns[i].tag == tagTable {
				p = i
				break
			}
		}
		if p < 0 {
			break
		}
		tableStart := p
		tableEnd := len(lns)
		for i := tableStart + 1; i < len(lns); i++ {
			if lns[i].tag == tagText {
				tableEnd = i
				break
			}
		}

		for _, ln := range lns[start:tableStart] {
			sections = append(sections, Section{Y: ln.y, Node: Node{Indices: flattenRuns(ln.runs)}})
		}

		sections = append(sections, detectSection(lns[tableStart:tableEnd], lineInfo))
		start = tableEnd
	}

	for _, ln := range lns[start:] {
		sections = append(sections, Section{Y: ln.y, Node: Node{Indices: flattenRuns(ln.runs)}})
	}
	return sections
}

func flattenRuns(runs []run) []int {
	var out []int
	for _, r := range runs {
		out = append(out, r.indices...)
	}
	return out
}

// detectSection builds one Table from a contiguous run of Unknown/Table
// lines (§4.4 steps 5-8).
func detectSection(section []textLine, lineInfo lines.Lines) Section {
	var columns []geom.Span
	for _, ln := range section {
		for _, r := range ln.runs {
			found := false
			for i, c := range columns {
				if overlap, ok := c.Intersect(r.x); ok {
					columns[i] = overlap
					found = true
				}
			}
			if !found {
				columns = append(columns, r.x)
			}
		}
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].Start < columns[j].Start })

	var vgaps []float32
	for i := 1; i < len(section); i++ {
		vgaps = append(vgaps, section[i].y.Start-section[i-1].y.End)
	}
	threshold, _ := util.Avg(vgaps)

	tbl := Empty[[]int](len(section), len(columns))
	row := -1
	var prevEnd float32
	havePrevEnd := false

	for _, ln := range section {
		combine := false
		if havePrevEnd {
			if ln.y.Start-prevEnd < threshold {
				combine = !crossesRuling(lineInfo, prevEnd, ln.y.Start)
			}
		}
		if !combine {
			row++
		}

		for _, r := range ln.runs {
			firstCol, lastCol, ok := intersectingCols(columns, r.x)
			if !ok {
				continue
			}
			if combine {
				if cell, ok := tbl.CellValue(row, firstCol); ok {
					*cell = append(*cell, r.indices...)
					continue
				}
			}
			colspan := lastCol - firstCol + 1
			tbl.SetCell(append([]int(nil), r.indices...), row, firstCol, 1, colspan)
		}
		prevEnd = ln.y.End
		havePrevEnd = true
	}

	y := geom.NewSpan(section[0].y.Start, section[len(section)-1].y.End)
	return Section{Y: y, Node: Node{Table: tbl}}
}

// crossesRuling reports whether a horizontal ruling in lineInfo falls
// strictly between yTop and yBottom, vetoing an implicit row merge.
func crossesRuling(lineInfo lines.Lines, yTop, yBottom float32) bool {
	for _, h := range lineInfo.HLines {
		mid := 0.5 * (h.Start + h.End)
		if yTop < mid && mid < yBottom {
			return true
		}
	}
	return false
}

func intersectingCols(columns []geom.Span, x geom.Span) (first, last int, ok bool) {
	first, last = -1, -1
	for i, c := range columns {
		if _, does := c.Intersect(x); does {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last, first >= 0
}

// Concat joins the text of the spans named by indices, in the order
// given, and returns it with their union bounding box. It only needs
// the span texts, not the layout tree; the flow package lowers table
// cells with word.Concat instead.
func Concat(spans []span.TextSpan, indices []int) (string, geom.Rect) {
	var text string
	var rects []geom.Rect
	for _, i := range indices {
		text += spans[i].Text
		rects = append(rects, spans[i].Rect)
	}
	if len(rects) == 0 {
		return text, geom.Rect{}
	}
	return text, geom.UnionAll(rects)
}
