package vglite

// Paint yields the source color at a device-space position. Draw calls
// evaluate it at pixel centers (x+0.5, y+0.5). Implementations must be
// pure: the same position always yields the same color.
type Paint interface {
	ColorAt(x, y float64) RGBA
}

// PaintFunc adapts a function to the Paint interface.
type PaintFunc func(x, y float64) RGBA

// ColorAt implements Paint.
func (f PaintFunc) ColorAt(x, y float64) RGBA {
	return f(x, y)
}

type solidPaint struct {
	c RGBA
}

func (p solidPaint) ColorAt(_, _ float64) RGBA {
	return p.c
}

// ResolveSolid returns a paint that is c everywhere.
func ResolveSolid(c RGBA) Paint {
	return solidPaint{c: c}
}
