// SPDX-License-Identifier: Unlicense OR MIT

// Package layout builds the recursive XY-cut layout tree (§4.2): the
// Node variants, the top-level entry point that trims header/footer
// bands before recursing, and the gap-driven splitter that chooses
// between a plain grid cut, the overlapping-line resolver and the
// table detector.
package layout

import (
	"github.com/pdf-rs/pdf-text/span"
	"github.com/pdf-rs/pdf-text/table"
)

// Tag classifies a Node by the shape of whitespace that produced it.
// Tags are ordered: a Grid node's Tag is never weaker than the
// strongest tag among its children (§4.2 step 8).
type Tag int

const (
	Singleton Tag = iota
	Line
	Paragraph
	Complex
)

// Node is a layout tree node (§3). Exactly one of the three shapes
// applies, discriminated by Tag/Table:
//
//   - a Table node has Table set and no Cells/XSplits/YSplits.
//   - a Grid node has Cells laid out row-major, (len(YSplits)+1) rows
//     of (len(XSplits)+1) columns.
//   - a Final (leaf) node has neither Cells nor Table, only Indices.
type Node struct {
	tag     Tag
	indices []int
	xSplits []float32
	ySplits []float32
	cells   []Node
	table   *table.Table[[]int]
}

// Tag reports n's shape classification.
func (n *Node) Tag() Tag {
	if n.table != nil {
		return Complex
	}
	if n.cells != nil {
		return n.tag
	}
	return Singleton
}

// Indices appends every span index reachable from n, in reading
// order, to out.
func (n *Node) Indices(out *[]int) {
	switch {
	case n.table != nil:
		for _, c := range n.table.Cells() {
			*out = append(*out, c.Value...)
		}
	case n.cells != nil:
		for i := range n.cells {
			n.cells[i].Indices(out)
		}
	default:
		*out = append(*out, n.indices...)
	}
}

// Cells returns n's Grid children, or nil if n is not a Grid.
func (n *Node) Cells() []Node { return n.cells }

// XSplits and YSplits return the gap midpoints a Grid node was cut
// at; both are empty for a Final or Table node, and XSplits is empty
// for a Grid produced only by a vertical cut.
func (n *Node) XSplits() []float32 { return n.xSplits }
func (n *Node) YSplits() []float32 { return n.ySplits }

// Table returns n's table, or nil if n is not a Table node.
func (n *Node) Table() *table.Table[[]int] { return n.table }

func singleton(boxes []span.Box) Node {
	indices := make([]int, len(boxes))
	for i, b := range boxes {
		indices[i] = b.Index
	}
	return Node{indices: indices}
}

func gridNode(tag Tag, xSplits, ySplits []float32, cells []Node) Node {
	return Node{tag: tag, xSplits: xSplits, ySplits: ySplits, cells: cells}
}

func tableNode(t *table.Table[[]int]) Node {
	return Node{table: t}
}
