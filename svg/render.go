package svg

import (
	"errors"
	"fmt"

	"github.com/gogpu/vglite"
	"github.com/gogpu/vglite/fontdb"
)

// RenderOption configures Render.
type RenderOption func(*renderOptions)

type renderOptions struct {
	fillRule   vglite.FillRule
	blend      vglite.BlendMode
	quality    vglite.Quality
	fonts      *fontdb.DB
	background vglite.RGBA
}

func defaultRenderOptions() renderOptions {
	return renderOptions{
		fillRule:   vglite.FillNonZero,
		blend:      vglite.BlendSrcOver,
		quality:    vglite.QualityHigh,
		background: vglite.Transparent,
	}
}

// WithFillRule sets the fill rule for elements without a fill-rule
// property. The default is nonzero.
func WithFillRule(r vglite.FillRule) RenderOption {
	return func(o *renderOptions) {
		o.fillRule = r
	}
}

// WithBlend sets the blend mode every element is drawn with. The default
// is source-over.
func WithBlend(m vglite.BlendMode) RenderOption {
	return func(o *renderOptions) {
		o.blend = m
	}
}

// WithQuality sets the anti-aliasing quality. The default is high.
func WithQuality(q vglite.Quality) RenderOption {
	return func(o *renderOptions) {
		o.quality = q
	}
}

// WithFontDB supplies the fonts text elements are drawn with. Without it
// text is skipped.
func WithFontDB(db *fontdb.DB) RenderOption {
	return func(o *renderOptions) {
		o.fonts = db
	}
}

// WithBackground sets the color the target is cleared to before drawing.
// The default is transparent black.
func WithBackground(c vglite.RGBA) RenderOption {
	return func(o *renderOptions) {
		o.background = c
	}
}

// Render clears target and draws doc into it, mapping the document's
// viewBox (or intrinsic size) onto the whole target. A document with a
// zero-size viewBox only clears the target. It stops at the
// first drawing error; whatever was drawn before remains in target.
func Render(target *vglite.Buffer, doc *Document, opts ...RenderOption) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("svg: render: %w: nil document", vglite.ErrInvalidArgument)
	}
	o := defaultRenderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := renderInto(target, doc, o); err != nil {
		return fmt.Errorf("svg: render: %w", err)
	}
	return nil
}

func renderInto(target *vglite.Buffer, doc *Document, o renderOptions) error {
	if err := target.Clear(nil, o.background); err != nil {
		return err
	}
	if doc.ViewBox != nil && doc.ViewBox.Empty() {
		vglite.Logger().Debug("svg: empty viewBox, nothing drawn")
		return nil
	}
	r := &renderer{
		target: target,
		opts:   o,
		draw:   []vglite.DrawOption{vglite.WithQuality(o.quality)},
	}
	return r.node(doc.Root, rootMatrix(doc, target.Width, target.Height))
}

// rootMatrix maps document user space onto a w×h target.
func rootMatrix(doc *Document, w, h int) vglite.Matrix {
	if doc.ViewBox != nil {
		return viewBoxMatrix(*doc.ViewBox, float64(w), float64(h))
	}
	if doc.Width > 0 && doc.Height > 0 {
		return vglite.Scale(float64(w)/doc.Width, float64(h)/doc.Height)
	}
	return vglite.Identity()
}

type renderer struct {
	target *vglite.Buffer
	opts   renderOptions
	draw   []vglite.DrawOption
}

func (r *renderer) node(n Node, parent vglite.Matrix) error {
	switch n := n.(type) {
	case *Group:
		m := parent.Multiply(n.Transform)
		for _, c := range n.Children {
			if err := r.node(c, m); err != nil {
				return err
			}
		}
		return nil
	case *Shape:
		return r.shape(n, parent.Multiply(n.Transform))
	case *Text:
		return r.text(n, parent.Multiply(n.Transform))
	case *Image:
		return r.image(n, parent.Multiply(n.Transform))
	}
	return nil
}

func (r *renderer) shape(s *Shape, m vglite.Matrix) error {
	st := &s.Style
	rule := r.opts.fillRule
	if st.FillRule != nil {
		rule = *st.FillRule
	}
	if err := r.paint(s.Path, rule, m, st.Fill, st.FillOpacity*st.Opacity); err != nil {
		return fmt.Errorf("fill %s: %w", nodeName("shape", s.ID), err)
	}
	if err := r.stroke(s.Path, st, m); err != nil {
		return fmt.Errorf("stroke %s: %w", nodeName("shape", s.ID), err)
	}
	return nil
}

func nodeName(kind, id string) string {
	if id == "" {
		return kind
	}
	return kind + " #" + id
}

// paint fills p with a fill or stroke paint at the given opacity.
func (r *renderer) paint(p *vglite.Path, rule vglite.FillRule, m vglite.Matrix, paint Paint, alpha float64) error {
	if alpha <= 0 || p.Empty() {
		return nil
	}
	switch paint.Kind {
	case PaintColor:
		return vglite.Draw(r.target, p, rule, m, r.opts.blend, paint.Color.WithAlpha(alpha), r.draw...)
	case PaintGradient:
		return r.gradient(p, rule, m, paint, alpha)
	}
	return nil
}

func (r *renderer) gradient(p *vglite.Path, rule vglite.FillRule, m vglite.Matrix, paint Paint, alpha float64) error {
	g := paint.Gradient
	stops := make([]vglite.ColorStop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = vglite.ColorStop{Offset: s.Offset, Color: s.Color.WithAlpha(alpha)}
	}
	solid := func(c vglite.RGBA) error {
		return vglite.Draw(r.target, p, rule, m, r.opts.blend, c, r.draw...)
	}

	switch len(stops) {
	case 0:
		return nil
	case 1:
		return solid(stops[0].Color)
	}
	last := stops[len(stops)-1].Color

	t := g.Transform
	if g.Units == ObjectBoundingBox {
		lo, hi := p.Bounds()
		w, h := hi.X-lo.X, hi.Y-lo.Y
		if w <= 0 || h <= 0 {
			if paint.Fallback != nil {
				return solid(paint.Fallback.WithAlpha(alpha))
			}
			vglite.Logger().Debug("svg: bounding box gradient on flat shape skipped", "gradient", g.ID)
			return nil
		}
		t = vglite.Translate(lo.X, lo.Y).Multiply(vglite.Scale(w, h)).Multiply(t)
	}

	var err error
	if g.Radial {
		if g.R <= 0 {
			return solid(last)
		}
		rg := &vglite.RadialGradient{
			Center:    vglite.Pt(g.CX, g.CY),
			Focus:     vglite.Pt(g.FX, g.FY),
			Radius:    g.R,
			Stops:     stops,
			Transform: t,
			Spread:    g.Spread,
		}
		err = vglite.DrawRadialGradient(r.target, p, rule, m, rg, r.opts.blend, r.draw...)
	} else {
		if g.X1 == g.X2 && g.Y1 == g.Y2 {
			return solid(last)
		}
		lg := &vglite.LinearGradient{
			Start:     vglite.Pt(g.X1, g.Y1),
			End:       vglite.Pt(g.X2, g.Y2),
			Stops:     stops,
			Transform: t,
			Spread:    g.Spread,
		}
		err = vglite.DrawGradient(r.target, p, rule, m, lg, r.opts.blend, r.draw...)
	}
	if errors.Is(err, vglite.ErrInvalidGradient) {
		vglite.Logger().Warn("svg: invalid gradient drawn as solid", "gradient", g.ID, "err", err)
		if paint.Fallback != nil {
			return solid(paint.Fallback.WithAlpha(alpha))
		}
		return solid(last)
	}
	return err
}
