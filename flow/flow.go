// SPDX-License-Identifier: Unlicense OR MIT

// Package flow walks a built layout.Node tree depth-first and emits
// the reading-order output document (§4.7): paragraphs, headers and
// table cells, with paragraph indentation used to split runs at
// logical paragraph boundaries.
package flow

import (
	"strings"

	"github.com/pdf-rs/pdf-text/classify"
	"github.com/pdf-rs/pdf-text/font"
	"github.com/pdf-rs/pdf-text/geom"
	"github.com/pdf-rs/pdf-text/layout"
	"github.com/pdf-rs/pdf-text/span"
	"github.com/pdf-rs/pdf-text/table"
	"github.com/pdf-rs/pdf-text/util"
	"github.com/pdf-rs/pdf-text/word"
)

// Word is one word's text and device-space bounding box in the output
// document.
type Word struct {
	Text string    `json:"text"`
	Rect geom.Rect `json:"rect"`
}

// Line is one visual line of Words.
type Line struct {
	Words []Word `json:"words"`
}

// RunType labels the semantic role of a Run.
type RunType int

const (
	RunParagraphContinuation RunType = iota
	RunParagraph
	RunHeader
	RunCell
)

func (t RunType) String() string {
	switch t {
	case RunParagraphContinuation:
		return "ParagraphContinuation"
	case RunHeader:
		return "Header"
	case RunCell:
		return "Cell"
	default:
		return "Paragraph"
	}
}

// MarshalJSON renders RunType the way the reference's serde derive
// would: the variant name as a bare JSON string.
func (t RunType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON parses the bare variant-name string MarshalJSON
// produces.
func (t *RunType) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "ParagraphContinuation":
		*t = RunParagraphContinuation
	case "Header":
		*t = RunHeader
	case "Cell":
		*t = RunCell
	default:
		*t = RunParagraph
	}
	return nil
}

// Run is one contiguous stretch of Lines sharing a RunType.
type Run struct {
	Lines []Line  `json:"lines"`
	Kind  RunType `json:"kind"`
}

// CellContent is a table cell lowered to plain text plus its union
// bounding box (§4.7: "table layout preserved; full table-to-Flow
// lowering is deliberately conservative").
type CellContent struct {
	Text string    `json:"text"`
	Rect geom.Rect `json:"rect"`
}

// TableContent is one detected table, lowered to its non-empty cells
// in row-major reading order; row/col spans are preserved per cell.
type TableContent struct {
	Rows  int         `json:"rows"`
	Cols  int         `json:"cols"`
	Cells []TableCell `json:"cells"`
}

// TableCell is one lowered table cell with its logical position and
// span.
type TableCell struct {
	CellContent
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
}

// Flow is the analyzer's output document (§3): the Run segmentation
// plus the lowered tables. Build does not fill Lines; every emitted
// Line is reached through Runs.
type Flow struct {
	Lines  []Line         `json:"lines"`
	Runs   []Run          `json:"runs"`
	Tables []TableContent `json:"tables"`
}

// New returns an empty Flow.
func New() *Flow {
	return &Flow{}
}

func (f *Flow) addLine(words []Word, kind RunType) {
	if len(words) > 0 {
		f.Runs = append(f.Runs, Run{Lines: []Line{{Words: words}}, Kind: kind})
	}
}

func (f *Flow) addTable(t TableContent) {
	f.Tables = append(f.Tables, t)
}

// Build walks node and appends its content to f, in reading order.
// xAnchor is the horizontal split position inherited from the nearest
// enclosing Complex grid's column boundary; it is threaded through
// purely to mirror the reference signature; this port does not use it
// beyond passing it along to nested Complex grids, since no consumer
// of cells needs it directly.
func Build(f *Flow, spans []span.TextSpan, n *layout.Node, xAnchor float32) {
	switch {
	case n.Table() != nil:
		buildTable(f, spans, n.Table())
	case n.Cells() != nil:
		buildGrid(f, spans, n, xAnchor)
	default:
		buildFinal(f, spans, indicesOf(n))
	}
}

func indicesOf(n *layout.Node) []int {
	var out []int
	n.Indices(&out)
	return out
}

func buildFinal(f *Flow, spans []span.TextSpan, indices []int) {
	if len(indices) == 0 {
		return
	}
	nodeSpans := selectSpans(spans, indices)
	class := classify.Of(nodeSpans)

	var buf []byte
	words := concatWords(&buf, nodeSpans)

	f.addLine(words, runKindFor(class))
}

func runKindFor(class font.Class) RunType {
	if class == font.Header {
		return RunHeader
	}
	return RunParagraph
}

func concatWords(buf *[]byte, spans []span.TextSpan) []Word {
	ws := word.Concat(buf, spans)
	out := make([]Word, len(ws))
	for i, w := range ws {
		out[i] = Word{Text: w.Text, Rect: w.Rect}
	}
	return out
}

func selectSpans(spans []span.TextSpan, indices []int) []span.TextSpan {
	out := make([]span.TextSpan, len(indices))
	for i, idx := range indices {
		out[i] = spans[idx]
	}
	return out
}

func buildGrid(f *Flow, spans []span.TextSpan, n *layout.Node, xAnchor float32) {
	switch n.Tag() {
	case layout.Singleton, layout.Line:
		var indices []int
		n.Indices(&indices)
		buildFinal(f, spans, indices)
	case layout.Paragraph:
		buildParagraph(f, spans, n)
	case layout.Complex:
		// x_anchor cycles [xAnchor, XSplits()...] by column, mirroring
		// the reference's `once(x_anchor).chain(x).cycle()` zipped
		// against the row-major cell list.
		cells := n.Cells()
		xSplits := n.XSplits()
		columns := len(xSplits) + 1
		for i := range cells {
			col := i % columns
			anchor := xAnchor
			if col > 0 {
				anchor = xSplits[col-1]
			}
			Build(f, spans, &cells[i], anchor)
		}
	}
}

// buildParagraph implements §4.7's indented-continuation detector: it
// first measures every line's bounding box, classifies the paragraph
// as left- or right-indented by a majority vote against the paragraph
// bbox's left margin (offset by half the mean line height), then walks
// the lines again splitting into a new Run wherever a line's side
// flips relative to that majority.
func buildParagraph(f *Flow, spans []span.TextSpan, n *layout.Node) {
	type lineSpan struct {
		bbox geom.Rect
		end  int // index into the flattened indices slice
	}

	var indices []int
	var lineSpans []lineSpan
	for _, cell := range n.Cells() {
		start := len(indices)
		cell.Indices(&indices)
		if len(indices) > start {
			cellSpans := selectSpans(spans, indices[start:])
			bbox := unionRects(cellSpans)
			lineSpans = append(lineSpans, lineSpan{bbox: bbox, end: len(indices)})
		}
	}
	if len(lineSpans) == 0 {
		return
	}

	paraSpans := selectSpans(spans, indices)
	class := classify.Of(paraSpans)

	var bboxes []geom.Rect
	for _, ls := range lineSpans {
		bboxes = append(bboxes, ls.bbox)
	}
	bbox := geom.UnionAll(bboxes)

	var heights []float32
	for _, s := range paraSpans {
		heights = append(heights, s.Rect.Height())
	}
	lineHeight, _ := util.Avg(heights)
	leftMargin := bbox.MinX() + 0.5*lineHeight

	var left, right int
	for _, ls := range lineSpans {
		if ls.bbox.MinX() >= leftMargin {
			right++
		} else {
			left++
		}
	}
	indent := left > right

	kind := runKindFor(class)

	var buf []byte
	var flowLines []Line
	lineStart := 0
	for i, ls := range lineSpans {
		if lineStart != 0 {
			if (ls.bbox.MinX() >= leftMargin) == indent {
				f.Runs = append(f.Runs, Run{Lines: flowLines, Kind: kind})
				flowLines = nil
			} else {
				// Continuation line within the same run: separate it from
				// the prior line's text so word.Concat's trailing-space
				// check doesn't treat its first glyph as abutting the
				// previous line's last glyph.
				buf = append(buf, '\n')
			}
		}
		if ls.end > lineStart {
			words := concatWords(&buf, selectSpans(spans, indices[lineStart:ls.end]))
			if len(words) > 0 {
				flowLines = append(flowLines, Line{Words: words})
			}
		}
		lineStart = ls.end
		_ = i
	}
	f.Runs = append(f.Runs, Run{Lines: flowLines, Kind: kind})
}

func unionRects(spans []span.TextSpan) geom.Rect {
	rects := make([]geom.Rect, len(spans))
	for i, s := range spans {
		rects[i] = s.Rect
	}
	return geom.UnionAll(rects)
}

// buildTable lowers every non-empty cell of t into a CellContent and
// appends a TableContent to f, preserving each cell's logical
// position and span. Empty cells (no contributing indices) are
// dropped, matching the reference's flat_map filter.
func buildTable(f *Flow, spans []span.TextSpan, t *table.Table[[]int]) {
	var tc TableContent
	tc.Rows, tc.Cols = t.Rows, t.Cols
	for _, c := range t.Cells() {
		if len(c.Value) == 0 {
			continue
		}
		cellSpans := selectSpans(spans, c.Value)
		var buf []byte
		word.Concat(&buf, cellSpans)
		tc.Cells = append(tc.Cells, TableCell{
			CellContent: CellContent{Text: string(buf), Rect: unionRects(cellSpans)},
			Row:         c.Row,
			Col:         c.Col,
			RowSpan:     c.RowSpan,
			ColSpan:     c.ColSpan,
		})
	}
	if len(tc.Cells) == 0 {
		return
	}
	f.addTable(tc)
}
