package vglite

import (
	"fmt"
	"math"
)

// RadialGradient blends colors outward from Focus to the circle
// (Center, Radius): t is 0 at Focus and 1 on the circle.
type RadialGradient struct {
	Center        Point
	Focus         Point
	Radius        float64
	Stops         []ColorStop
	Transform     Matrix // zero value means identity
	Spread        SpreadMode
	Interpolation Interpolation
}

// NewRadialGradient creates a gradient centered at (cx, cy) with the
// focus at the center.
func NewRadialGradient(cx, cy, r float64) *RadialGradient {
	return &RadialGradient{
		Center:    Pt(cx, cy),
		Focus:     Pt(cx, cy),
		Radius:    r,
		Transform: Identity(),
	}
}

// AddColorStop appends a stop.
func (g *RadialGradient) AddColorStop(offset float64, c RGBA) *RadialGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// Validate reports ErrInvalidGradient for bad stops or a non-positive radius.
func (g *RadialGradient) Validate() error {
	if err := validateStops(g.Stops); err != nil {
		return err
	}
	if !(g.Radius > 0) || math.IsInf(g.Radius, 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidGradient, g.Radius)
	}
	return nil
}

type radialPaint struct {
	inv    Matrix
	center Point
	focus  Point
	radius float64
	ramp   stopRamp
}

// ResolveRadialGradient returns the paint of g drawn with matrix m.
// A focus outside the circle is pulled just inside it.
func ResolveRadialGradient(g *RadialGradient, m Matrix) (Paint, error) {
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
	focus := g.Focus
	if d := focus.Sub(g.Center); d.Length() > g.Radius*0.999 {
		focus = g.Center.Add(d.Mul(g.Radius * 0.999 / d.Length()))
	}
	return &radialPaint{
		inv:    inv,
		center: g.Center,
		focus:  focus,
		radius: g.Radius,
		ramp:   newStopRamp(g.Stops, g.Spread, g.Interpolation),
	}, nil
}

func (p *radialPaint) ColorAt(x, y float64) RGBA {
	q := p.inv.TransformPoint(Pt(x, y))
	return p.ramp.at(p.offset(q))
}

// offset returns |q-focus| / |hit-focus| where hit is the point where the
// ray from the focus through q meets the circle.
func (p *radialPaint) offset(q Point) float64 {
	d := q.Sub(p.focus)
	if p.focus == p.center {
		return d.Length() / p.radius
	}
	f := p.focus.Sub(p.center)
	a := d.Dot(d)
	if a == 0 {
		return 0
	}
	// Solve |f + s·d| = r for the positive root s.
	b := 2 * f.Dot(d)
	c := f.Dot(f) - p.radius*p.radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 1
	}
	s := (-b + math.Sqrt(disc)) / (2 * a)
	if s <= 0 {
		return 1
	}
	return 1 / s
}
