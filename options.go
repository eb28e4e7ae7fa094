package vglite

// DrawOption configures a single Draw, DrawGradient, DrawPaint or Blit call.
type DrawOption func(*drawOptions)

type drawOptions struct {
	quality Quality
	scissor *Rect
}

func defaultDrawOptions() drawOptions {
	return drawOptions{quality: QualityHigh}
}

func applyDrawOptions(opts []DrawOption) drawOptions {
	o := defaultDrawOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithQuality sets the anti-aliasing quality. The default is QualityHigh.
func WithQuality(q Quality) DrawOption {
	return func(o *drawOptions) {
		o.quality = q
	}
}

// WithScissor restricts drawing to r in addition to the target bounds.
func WithScissor(r Rect) DrawOption {
	return func(o *drawOptions) {
		o.scissor = &r
	}
}

// clipRect returns the region of target the options allow writing to.
func (o *drawOptions) clipRect(target *Buffer) Rect {
	if o.scissor == nil {
		return target.Bounds()
	}
	return o.scissor.intersect(target.Width, target.Height)
}
