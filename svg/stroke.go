package svg

import (
	"iter"

	"honnef.co/go/curve"

	"github.com/gogpu/vglite"
)

// stroke outlines p in local space and fills the outline nonzero, so the
// stroke follows m exactly, non-uniform scales included.
func (r *renderer) stroke(p *vglite.Path, st *Style, m vglite.Matrix) error {
	if st.Stroke.Kind == PaintNone || st.StrokeWidth <= 0 {
		return nil
	}
	alpha := st.StrokeOpacity * st.Opacity
	if alpha <= 0 {
		return nil
	}
	outline := strokeOutline(p, st, r.opts.quality.Tolerance()/max(m.ScaleFactor(), 1e-9))
	if outline.Empty() {
		return nil
	}
	return r.paint(outline, vglite.FillNonZero, m, st.Stroke, alpha)
}

// strokeOutline returns the filled outline of p stroked with st.
func strokeOutline(p *vglite.Path, st *Style, tolerance float64) *vglite.Path {
	style := curve.Stroke{
		Width:       st.StrokeWidth,
		Join:        curveJoin(st.LineJoin),
		MiterLimit:  st.MiterLimit,
		StartCap:    curveCap(st.LineCap),
		EndCap:      curveCap(st.LineCap),
		DashPattern: st.DashArray,
		DashOffset:  st.DashOffset,
	}
	stroked := curve.StrokePath(curveElements(p), style, curve.StrokeOpts{}, tolerance)

	b := vglite.NewPathBuilder()
	for el := range stroked {
		switch el.Kind {
		case curve.MoveToKind:
			b.MoveTo(el.P0.X, el.P0.Y)
		case curve.LineToKind:
			b.LineTo(el.P0.X, el.P0.Y)
		case curve.QuadToKind:
			b.QuadTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
		case curve.CubicToKind:
			b.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case curve.ClosePathKind:
			b.Close()
		}
	}
	out, err := b.Finish()
	if err != nil {
		vglite.Logger().Debug("svg: stroke outline dropped", "err", err)
		return nil
	}
	return out
}

// curveElements yields p as curve path elements.
func curveElements(p *vglite.Path) iter.Seq[curve.PathElement] {
	pt := func(q vglite.Point) curve.Point {
		return curve.Point{X: q.X, Y: q.Y}
	}
	return func(yield func(curve.PathElement) bool) {
		for _, el := range p.Elements() {
			var ce curve.PathElement
			switch e := el.(type) {
			case vglite.MoveTo:
				ce = curve.PathElement{Kind: curve.MoveToKind, P0: pt(e.Point)}
			case vglite.LineTo:
				ce = curve.PathElement{Kind: curve.LineToKind, P0: pt(e.Point)}
			case vglite.QuadTo:
				ce = curve.PathElement{Kind: curve.QuadToKind, P0: pt(e.Control), P1: pt(e.Point)}
			case vglite.CubicTo:
				ce = curve.PathElement{Kind: curve.CubicToKind, P0: pt(e.Control1), P1: pt(e.Control2), P2: pt(e.Point)}
			case vglite.Close:
				ce = curve.PathElement{Kind: curve.ClosePathKind}
			}
			if !yield(ce) {
				return
			}
		}
	}
}

func curveCap(c LineCap) curve.Cap {
	switch c {
	case CapRound:
		return curve.RoundCap
	case CapSquare:
		return curve.SquareCap
	}
	return curve.ButtCap
}

func curveJoin(j LineJoin) curve.Join {
	switch j {
	case JoinRound:
		return curve.RoundJoin
	case JoinBevel:
		return curve.BevelJoin
	}
	return curve.MiterJoin
}
