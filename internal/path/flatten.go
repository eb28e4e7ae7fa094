// Package path flattens Bézier paths into line segments for scan conversion.
package path

import "math"

// Point is a 2D point in device space.
type Point struct {
	X, Y float64
}

// DefaultTolerance is the flattening tolerance in device pixels used when
// a caller passes a non-positive tolerance.
const DefaultTolerance = 0.1

// maxDepth bounds curve subdivision (2^16 segments per curve).
const maxDepth = 16

// PathElement is one path command in device coordinates.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a contour.
type MoveTo struct{ Point Point }

func (MoveTo) isPathElement() {}

// LineTo draws a line.
type LineTo struct{ Point Point }

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic curve.
type QuadTo struct{ Control, Point Point }

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic curve.
type CubicTo struct{ Control1, Control2, Point Point }

func (CubicTo) isPathElement() {}

// Close closes the contour.
type Close struct{}

func (Close) isPathElement() {}

// Flatten converts elements into polylines, one per contour. Curves are
// subdivided until every control point lies within tolerance of its chord.
// Contours are returned open; fill callers close them implicitly.
func Flatten(elements []PathElement, tolerance float64) [][]Point {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var contours [][]Point
	var cur []Point
	var current Point

	flush := func() {
		if len(cur) > 1 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			current = e.Point
			cur = []Point{current}
		case LineTo:
			if cur == nil {
				cur = []Point{current}
			}
			current = e.Point
			cur = append(cur, current)
		case QuadTo:
			if cur == nil {
				cur = []Point{current}
			}
			flattenQuadratic(current, e.Control, e.Point, tolerance, 0, &cur)
			current = e.Point
		case CubicTo:
			if cur == nil {
				cur = []Point{current}
			}
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, 0, &cur)
			current = e.Point
		case Close:
			if len(cur) > 0 {
				current = cur[0]
			}
			flush()
		}
	}
	flush()
	return contours
}

func (p Point) lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

func flattenQuadratic(p0, p1, p2 Point, tolerance float64, depth int, points *[]Point) {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := q0.lerp(q1, 0.5)
	flattenQuadratic(p0, q0, q2, tolerance, depth+1, points)
	flattenQuadratic(q2, q1, p2, tolerance, depth+1, points)
}

// flattenCubic subdivides with de Casteljau's algorithm.
func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, depth int, points *[]Point) {
	dist := math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3))
	if depth >= maxDepth || dist < tolerance {
		*points = append(*points, p3)
		return
	}
	q0 := p0.lerp(p1, 0.5)
	q1 := p1.lerp(p2, 0.5)
	q2 := p2.lerp(p3, 0.5)
	r0 := q0.lerp(q1, 0.5)
	r1 := q1.lerp(q2, 0.5)
	s := r0.lerp(r1, 0.5)
	flattenCubic(p0, q0, r0, s, tolerance, depth+1, points)
	flattenCubic(s, r1, q2, p3, tolerance, depth+1, points)
}

// distanceToLine returns the distance from p to the segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	abx, aby := b.X-a.X, b.Y-a.Y
	l2 := abx*abx + aby*aby
	if l2 < 1e-20 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*abx + (p.Y-a.Y)*aby) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+abx*t), p.Y-(a.Y+aby*t))
}
