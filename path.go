package vglite

import "math"

// PathElement is one drawing command of a Path.
// It is sealed: the only implementations are MoveTo, LineTo, QuadTo,
// CubicTo and Close.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new contour at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a straight segment to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bézier segment.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bézier segment.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current contour back to its start point.
type Close struct{}

func (Close) isPathElement() {}

// Path is an immutable sequence of drawing commands in local coordinates.
// Build one with a PathBuilder. A Path can be drawn any number of times,
// with any transform, from any number of goroutines.
type Path struct {
	elements []PathElement
}

// Len returns the number of commands.
func (p *Path) Len() int {
	return len(p.elements)
}

// Elements returns a copy of the commands.
func (p *Path) Elements() []PathElement {
	out := make([]PathElement, len(p.elements))
	copy(out, p.elements)
	return out
}

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool {
	return p == nil || len(p.elements) == 0
}

// Bounds returns the bounding box of all points, control points included.
// An empty path returns a zero box.
func (p *Path) Bounds() (minPt, maxPt Point) {
	minPt = Pt(math.Inf(1), math.Inf(1))
	maxPt = Pt(math.Inf(-1), math.Inf(-1))
	add := func(q Point) {
		minPt.X, minPt.Y = math.Min(minPt.X, q.X), math.Min(minPt.Y, q.Y)
		maxPt.X, maxPt.Y = math.Max(maxPt.X, q.X), math.Max(maxPt.Y, q.Y)
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			add(e.Point)
		case LineTo:
			add(e.Point)
		case QuadTo:
			add(e.Control)
			add(e.Point)
		case CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minPt.X > maxPt.X {
		return Point{}, Point{}
	}
	return minPt, maxPt
}

// Transform returns a new path with every point mapped through m.
// Affine maps preserve Bézier curves, so control points map directly.
func (p *Path) Transform(m Matrix) *Path {
	out := &Path{elements: make([]PathElement, len(p.elements))}
	for i, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			out.elements[i] = MoveTo{Point: m.TransformPoint(e.Point)}
		case LineTo:
			out.elements[i] = LineTo{Point: m.TransformPoint(e.Point)}
		case QuadTo:
			out.elements[i] = QuadTo{Control: m.TransformPoint(e.Control), Point: m.TransformPoint(e.Point)}
		case CubicTo:
			out.elements[i] = CubicTo{
				Control1: m.TransformPoint(e.Control1),
				Control2: m.TransformPoint(e.Control2),
				Point:    m.TransformPoint(e.Point),
			}
		case Close:
			out.elements[i] = e
		}
	}
	return out
}
