package vglite

import "fmt"

// LinearGradient blends colors along the axis Start→End in gradient
// space. Transform maps gradient space to the space the path is drawn in.
type LinearGradient struct {
	Start, End    Point
	Stops         []ColorStop
	Transform     Matrix // zero value means identity
	Spread        SpreadMode
	Interpolation Interpolation
}

// NewLinearGradient creates a gradient along (x0, y0)→(x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start:     Pt(x0, y0),
		End:       Pt(x1, y1),
		Transform: Identity(),
	}
}

// AddColorStop appends a stop. Stops must be added in non-decreasing
// offset order.
func (g *LinearGradient) AddColorStop(offset float64, c RGBA) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// Validate reports ErrInvalidGradient for fewer than two stops, offsets
// out of order or range, or a zero-length axis.
func (g *LinearGradient) Validate() error {
	if err := validateStops(g.Stops); err != nil {
		return err
	}
	if g.Start == g.End {
		return fmt.Errorf("%w: zero-length axis at %v", ErrInvalidGradient, g.Start)
	}
	return nil
}

type linearPaint struct {
	inv     Matrix
	start   Point
	axis    Point
	invLen2 float64
	ramp    stopRamp
}

// ResolveGradient returns the paint of g drawn with matrix m. Device
// positions are mapped through the inverse of m∘g.Transform, projected
// onto the gradient axis, spread and interpolated between the bracketing
// stops.
func ResolveGradient(g *LinearGradient, m Matrix) (Paint, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil gradient", ErrInvalidGradient)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	inv, err := gradientMatrix(m, g.Transform)
	if err != nil {
		return nil, err
	}
	axis := g.End.Sub(g.Start)
	return &linearPaint{
		inv:     inv,
		start:   g.Start,
		axis:    axis,
		invLen2: 1 / axis.Dot(axis),
		ramp:    newStopRamp(g.Stops, g.Spread, g.Interpolation),
	}, nil
}

func (p *linearPaint) ColorAt(x, y float64) RGBA {
	q := p.inv.TransformPoint(Pt(x, y))
	t := q.Sub(p.start).Dot(p.axis) * p.invLen2
	return p.ramp.at(t)
}
