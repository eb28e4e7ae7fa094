package vglite

import "fmt"

// kappa is the control point distance for a quarter-circle cubic.
const kappa = 0.5522847498307936

// PathBuilder accumulates drawing commands and produces an immutable Path.
//
// Methods return the builder for chaining. The first invalid command
// (a drawing command with no current point, or a non-finite coordinate)
// is remembered and reported by Finish; later commands are ignored.
//
//	path, err := vglite.NewPathBuilder().
//	    MoveTo(0, 0).LineTo(10, 0).LineTo(10, 10).Close().
//	    Finish()
type PathBuilder struct {
	elements   []PathElement
	start      Point
	current    Point
	hasCurrent bool
	closed     bool
	err        error
}

// NewPathBuilder returns an empty builder.
func NewPathBuilder() *PathBuilder {
	return &PathBuilder{elements: make([]PathElement, 0, 16)}
}

// Begin discards all commands and any recorded error.
func (b *PathBuilder) Begin() *PathBuilder {
	b.elements = b.elements[:0]
	b.start, b.current = Point{}, Point{}
	b.hasCurrent, b.closed = false, false
	b.err = nil
	return b
}

func (b *PathBuilder) fail(op string, pts ...Point) bool {
	if b.err != nil {
		return true
	}
	for _, p := range pts {
		if !p.finite() {
			b.err = fmt.Errorf("%w: %s at command %d has non-finite coordinate", ErrMalformedPath, op, len(b.elements))
			return true
		}
	}
	if op != "move_to" && !b.hasCurrent {
		b.err = fmt.Errorf("%w: %s at command %d without move_to", ErrMalformedPath, op, len(b.elements))
		return true
	}
	return false
}

// reopen starts a new contour at the closed contour's start point when a
// drawing command follows Close.
func (b *PathBuilder) reopen() {
	if b.closed {
		b.elements = append(b.elements, MoveTo{Point: b.start})
		b.closed = false
	}
}

// MoveTo starts a new contour.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	p := Pt(x, y)
	if b.fail("move_to", p) {
		return b
	}
	b.elements = append(b.elements, MoveTo{Point: p})
	b.start, b.current = p, p
	b.hasCurrent, b.closed = true, false
	return b
}

// LineTo adds a straight segment.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	p := Pt(x, y)
	if b.fail("line_to", p) {
		return b
	}
	b.reopen()
	b.elements = append(b.elements, LineTo{Point: p})
	b.current = p
	return b
}

// QuadTo adds a quadratic Bézier segment.
func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	c, p := Pt(cx, cy), Pt(x, y)
	if b.fail("quad_to", c, p) {
		return b
	}
	b.reopen()
	b.elements = append(b.elements, QuadTo{Control: c, Point: p})
	b.current = p
	return b
}

// CubicTo adds a cubic Bézier segment.
func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	c1, c2, p := Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y)
	if b.fail("cubic_to", c1, c2, p) {
		return b
	}
	b.reopen()
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: p})
	b.current = p
	return b
}

// Close closes the current contour.
func (b *PathBuilder) Close() *PathBuilder {
	if b.fail("close") {
		return b
	}
	b.elements = append(b.elements, Close{})
	b.current = b.start
	b.closed = true
	return b
}

// CurrentPoint returns the pen position and whether one exists.
func (b *PathBuilder) CurrentPoint() (Point, bool) {
	return b.current, b.hasCurrent
}

// Rect adds a closed axis-aligned rectangle contour.
func (b *PathBuilder) Rect(x, y, w, h float64) *PathBuilder {
	return b.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// RoundRect adds a rectangle with elliptical corners of radii rx, ry.
func (b *PathBuilder) RoundRect(x, y, w, h, rx, ry float64) *PathBuilder {
	rx, ry = min(rx, w/2), min(ry, h/2)
	if rx <= 0 || ry <= 0 {
		return b.Rect(x, y, w, h)
	}
	kx, ky := kappa*rx, kappa*ry
	return b.MoveTo(x+rx, y).
		LineTo(x+w-rx, y).
		CubicTo(x+w-rx+kx, y, x+w, y+ry-ky, x+w, y+ry).
		LineTo(x+w, y+h-ry).
		CubicTo(x+w, y+h-ry+ky, x+w-rx+kx, y+h, x+w-rx, y+h).
		LineTo(x+rx, y+h).
		CubicTo(x+rx-kx, y+h, x, y+h-ry+ky, x, y+h-ry).
		LineTo(x, y+ry).
		CubicTo(x, y+ry-ky, x+rx-kx, y, x+rx, y).
		Close()
}

// Circle adds a closed circle contour.
func (b *PathBuilder) Circle(cx, cy, r float64) *PathBuilder {
	return b.Ellipse(cx, cy, r, r)
}

// Ellipse adds a closed axis-aligned ellipse contour made of four cubics.
func (b *PathBuilder) Ellipse(cx, cy, rx, ry float64) *PathBuilder {
	kx, ky := kappa*rx, kappa*ry
	return b.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry).
		CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy).
		CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry).
		CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy).
		Close()
}

// Append copies every command of p onto the builder.
func (b *PathBuilder) Append(p *Path) *PathBuilder {
	if p == nil {
		return b
	}
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			b.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			b.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			b.QuadTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			b.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			b.Close()
		}
	}
	return b
}

// Finish returns the built path, or the first recorded error.
// The builder can be reused after Begin.
func (b *PathBuilder) Finish() (*Path, error) {
	if b.err != nil {
		return nil, b.err
	}
	els := make([]PathElement, len(b.elements))
	copy(els, b.elements)
	return &Path{elements: els}, nil
}
