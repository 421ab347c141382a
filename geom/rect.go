// SPDX-License-Identifier: Unlicense OR MIT

// Package geom is a float32 implementation of axis-aligned rectangles
// in device space, the coordinate frame every other package in this
// module operates in.
package geom

// A Point is a two dimensional point in device space.
type Point struct {
	X, Y float32
}

// A Rect is an axis-aligned bounding box. Min is the top-left-ish
// corner of the box's visual extent and Max the bottom-right-ish
// corner; unlike image.Rectangle no canonicalization is assumed, so
// callers that build a Rect from untrusted extents should call Canon.
type Rect struct {
	Min, Max Point
}

// RectXYWH builds a Rect from a top-left corner and a size, the shape
// spans describe their boxes in (§3).
func RectXYWH(x, y, w, h float32) Rect {
	return Rect{Point{x, y}, Point{x + w, y + h}}
}

// MinX, MaxX, MinY, MaxY are the edges of r.
func (r Rect) MinX() float32 { return r.Min.X }
func (r Rect) MaxX() float32 { return r.Max.X }
func (r Rect) MinY() float32 { return r.Min.Y }
func (r Rect) MaxY() float32 { return r.Max.Y }

// Width and Height are r's size along each axis.
func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Center is the midpoint of r.
func (r Rect) Center() Point {
	return Point{0.5 * (r.Min.X + r.Max.X), 0.5 * (r.Min.Y + r.Max.Y)}
}

// Canon returns the canonical version of r, where Min is to the upper
// left of Max.
func (r Rect) Canon() Rect {
	if r.Max.X < r.Min.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// Union returns the smallest Rect containing both r and s.
func (r Rect) Union(s Rect) Rect {
	if s.Min.X < r.Min.X {
		r.Min.X = s.Min.X
	}
	if s.Min.Y < r.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if s.Max.X > r.Max.X {
		r.Max.X = s.Max.X
	}
	if s.Max.Y > r.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Intersects reports whether r and s share any area.
func (r Rect) Intersects(s Rect) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X && r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// UnionAll reduces rects to their bounding Rect. It panics if rects is
// empty; callers should guard the zero-span case themselves, since
// "no rects" has no single sensible bounding box.
func UnionAll(rects []Rect) Rect {
	out := rects[0]
	for _, r := range rects[1:] {
		out = out.Union(r)
	}
	return out
}

// Span is a one-dimensional interval, used for both x- and y-extents
// during table detection (§4.4).
type Span struct {
	Start, End float32
}

// NewSpan builds a canonical Span from two edges, swapping them if
// start is after end.
func NewSpan(a, b float32) Span {
	if a > b {
		a, b = b, a
	}
	return Span{a, b}
}

// Intersect returns the overlap of s and o, and whether one exists.
func (s Span) Intersect(o Span) (Span, bool) {
	if s.Start <= o.End && o.Start <= s.End {
		start := s.Start
		if o.Start > start {
			start = o.Start
		}
		end := s.End
		if o.End < end {
			end = o.End
		}
		return Span{start, end}, true
	}
	return Span{}, false
}

// Union returns the smallest Span enclosing both s and o, and whether
// they touch or overlap (two disjoint spans have no union Span).
func (s Span) Union(o Span) (Span, bool) {
	if s.Start <= o.End && o.Start <= s.End {
		start := s.Start
		if o.Start < start {
			start = o.Start
		}
		end := s.End
		if o.End > end {
			end = o.End
		}
		return Span{start, end}, true
	}
	return Span{}, false
}
