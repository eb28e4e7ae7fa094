package vglite

import (
	"fmt"

	"github.com/gogpu/vglite/internal/blend"
	"github.com/gogpu/vglite/internal/path"
	"github.com/gogpu/vglite/internal/raster"
)

// Draw fills p, transformed by m, with the solid color c.
//
// Coverage is computed with rule and anti-aliased according to the
// quality option. Each covered pixel is composited with mode, weighted by
// its coverage. Geometry outside the target is silently clipped.
// Draw fails with ErrInvalidTarget when target has no storage.
func Draw(target *Buffer, p *Path, rule FillRule, m Matrix, mode BlendMode, c RGBA, opts ...DrawOption) error {
	return DrawPaint(target, p, rule, m, mode, ResolveSolid(c), opts...)
}

// DrawGradient fills p with a linear gradient. The gradient's own
// Transform is applied in the path's local space, so the gradient follows
// m together with the path.
func DrawGradient(target *Buffer, p *Path, rule FillRule, m Matrix, g *LinearGradient, mode BlendMode, opts ...DrawOption) error {
	if err := target.checkTarget(); err != nil {
		return fmt.Errorf("draw gradient: %w", err)
	}
	paint, err := ResolveGradient(g, m)
	if err != nil {
		return fmt.Errorf("draw gradient: %w", err)
	}
	return DrawPaint(target, p, rule, m, mode, paint, opts...)
}

// DrawRadialGradient fills p with a radial gradient, like DrawGradient.
func DrawRadialGradient(target *Buffer, p *Path, rule FillRule, m Matrix, g *RadialGradient, mode BlendMode, opts ...DrawOption) error {
	if err := target.checkTarget(); err != nil {
		return fmt.Errorf("draw gradient: %w", err)
	}
	paint, err := ResolveRadialGradient(g, m)
	if err != nil {
		return fmt.Errorf("draw gradient: %w", err)
	}
	return DrawPaint(target, p, rule, m, mode, paint, opts...)
}

// DrawPaint fills p with an arbitrary paint evaluated in device space.
func DrawPaint(target *Buffer, p *Path, rule FillRule, m Matrix, mode BlendMode, paint Paint, opts ...DrawOption) error {
	if err := target.checkTarget(); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	if p == nil {
		return fmt.Errorf("draw: %w: nil path", ErrMalformedPath)
	}
	if paint == nil {
		return fmt.Errorf("draw: %w: nil paint", ErrInvalidArgument)
	}
	if !mode.valid() {
		return fmt.Errorf("draw: %w: blend mode %v", ErrNotSupported, mode)
	}

	o := applyDrawOptions(opts)
	clip := o.clipRect(target)
	if clip.Empty() || p.Empty() {
		return nil
	}

	lines := flattenPath(p, m, o.quality.Tolerance())
	c := compositor{target: target, fn: mode.fn(), clip: clip}
	if sp, ok := paint.(solidPaint); ok {
		c.setSolid(sp.c)
	} else {
		c.paint = paint
	}

	r := raster.NewRasterizer(target.Width, target.Height, o.quality.Samples())
	r.Fill(lines, rule.raster(), c.span)
	return nil
}

// flattenPath transforms p into device space and flattens it to lines.
func flattenPath(p *Path, m Matrix, tolerance float64) []path.Line {
	pt := func(q Point) path.Point {
		d := m.TransformPoint(q)
		return path.Point{X: d.X, Y: d.Y}
	}
	els := make([]path.PathElement, 0, len(p.elements))
	for _, el := range p.elements {
		switch e := el.(type) {
		case MoveTo:
			els = append(els, path.MoveTo{Point: pt(e.Point)})
		case LineTo:
			els = append(els, path.LineTo{Point: pt(e.Point)})
		case QuadTo:
			els = append(els, path.QuadTo{Control: pt(e.Control), Point: pt(e.Point)})
		case CubicTo:
			els = append(els, path.CubicTo{Control1: pt(e.Control1), Control2: pt(e.Control2), Point: pt(e.Point)})
		case Close:
			els = append(els, path.Close{})
		}
	}
	return path.CollectLines(els, tolerance)
}

// compositor blends paint into target for the spans the rasterizer emits.
type compositor struct {
	target *Buffer
	fn     blend.BlendFunc
	clip   Rect

	paint          Paint
	solid          bool
	sr, sg, sb, sa byte // premultiplied solid source
}

func (c *compositor) setSolid(col RGBA) {
	c.solid = true
	c.sr, c.sg, c.sb, c.sa = blend.Premultiply(col.Bytes())
}

func (c *compositor) span(y, x0 int, coverage []float32) {
	if y < c.clip.Y || y >= c.clip.Y+c.clip.Height {
		return
	}
	for i, cov := range coverage {
		x := x0 + i
		if x < c.clip.X || x >= c.clip.X+c.clip.Width {
			continue
		}
		a := byte(cov*255 + 0.5)
		if a == 0 {
			continue
		}
		sr, sg, sb, sa := c.sr, c.sg, c.sb, c.sa
		if !c.solid {
			sr, sg, sb, sa = blend.Premultiply(c.paint.ColorAt(float64(x)+0.5, float64(y)+0.5).Bytes())
		}
		c.target.composite(x, y, sr, sg, sb, sa, c.fn, a)
	}
}

// composite blends a premultiplied source into pixel (x, y) with the
// given coverage (0-255).
func (b *Buffer) composite(x, y int, sr, sg, sb, sa byte, fn blend.BlendFunc, coverage byte) {
	dr, dg, db, da := blend.Premultiply(b.load(x, y))
	fr, fg, fb, fa := fn(sr, sg, sb, sa, dr, dg, db, da)
	r, g, bl, a := blend.Unpremultiply(
		blend.Lerp(dr, fr, coverage),
		blend.Lerp(dg, fg, coverage),
		blend.Lerp(db, fb, coverage),
		blend.Lerp(da, fa, coverage),
	)
	b.store(x, y, r, g, bl, a)
}
