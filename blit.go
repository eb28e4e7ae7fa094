package vglite

import (
	"fmt"
	"math"
)

// Filter selects how source pixels are sampled by Blit.
type Filter int

const (
	// FilterPoint takes the nearest source pixel.
	FilterPoint Filter = iota
	// FilterBilinear interpolates the four nearest source pixels.
	FilterBilinear
)

// Blit draws src onto target. m maps source pixel space (the rectangle
// 0,0 to src.Width,src.Height) into target space. The edges of the
// transformed rectangle are anti-aliased like any other path.
func Blit(target, src *Buffer, m Matrix, mode BlendMode, filter Filter, opts ...DrawOption) error {
	if err := target.checkTarget(); err != nil {
		return fmt.Errorf("blit target: %w", err)
	}
	if err := src.checkTarget(); err != nil {
		return fmt.Errorf("blit source: %w", err)
	}
	paint, err := NewImagePaint(src, m, filter)
	if err != nil {
		return fmt.Errorf("blit: %w", err)
	}
	rect, err := NewPathBuilder().Rect(0, 0, float64(src.Width), float64(src.Height)).Finish()
	if err != nil {
		return err
	}
	return DrawPaint(target, rect, FillNonZero, m, mode, paint, opts...)
}

type imagePaint struct {
	src    *Buffer
	inv    Matrix
	filter Filter
}

// NewImagePaint returns a paint that samples src placed in device space
// by m. Positions outside src clamp to its edge pixels.
func NewImagePaint(src *Buffer, m Matrix, filter Filter) (Paint, error) {
	if err := src.checkTarget(); err != nil {
		return nil, err
	}
	inv, ok := m.Invert()
	if !ok {
		return nil, fmt.Errorf("%w: singular image transform", ErrInvalidArgument)
	}
	return &imagePaint{src: src, inv: inv, filter: filter}, nil
}

func (p *imagePaint) ColorAt(x, y float64) RGBA {
	q := p.inv.TransformPoint(Pt(x, y))
	if p.filter == FilterPoint {
		return p.texel(int(math.Floor(q.X)), int(math.Floor(q.Y)))
	}

	// Texel centers sit at half-integer positions.
	u, v := q.X-0.5, q.Y-0.5
	x0, y0 := math.Floor(u), math.Floor(v)
	fx, fy := u-x0, v-y0
	ix, iy := int(x0), int(y0)

	c00 := p.texel(ix, iy).Premultiply()
	c10 := p.texel(ix+1, iy).Premultiply()
	c01 := p.texel(ix, iy+1).Premultiply()
	c11 := p.texel(ix+1, iy+1).Premultiply()
	c := c00.Lerp(c10, fx).Lerp(c01.Lerp(c11, fx), fy)
	if c.A <= 0 {
		return Transparent
	}
	return RGBA{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// texel reads a source pixel with clamp-to-edge addressing.
func (p *imagePaint) texel(x, y int) RGBA {
	x = min(max(x, 0), p.src.Width-1)
	y = min(max(y, 0), p.src.Height-1)
	return p.src.PixelAt(x, y)
}
