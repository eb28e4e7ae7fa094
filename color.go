package vglite

import (
	"image/color"
	"math"
	"strconv"
	"strings"
)

// RGBA is a straight-alpha color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB returns an opaque color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// NRGBA returns a color with explicit alpha.
func NRGBA(r, g, b, a float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard library color.
func FromColor(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return FromBytes(n.R, n.G, n.B, n.A)
}

// FromBytes converts 8-bit straight-alpha components.
func FromBytes(r, g, b, a byte) RGBA {
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

// FromABGR unpacks a vg_lite color word laid out as 0xAABBGGRR.
func FromABGR(v uint32) RGBA {
	return FromBytes(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

// ABGR packs c into a vg_lite color word 0xAABBGGRR.
func (c RGBA) ABGR() uint32 {
	r, g, b, a := c.Bytes()
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// Bytes quantizes c to 8-bit straight-alpha components.
func (c RGBA) Bytes() (r, g, b, a byte) {
	return unit8(c.R), unit8(c.G), unit8(c.B), unit8(c.A)
}

// Color converts c to a standard library color.
func (c RGBA) Color() color.Color {
	r, g, b, a := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// Hex parses "#rgb", "#rgba", "#rrggbb" or "#rrggbbaa". The leading '#'
// is optional. Malformed input yields opaque black.
func Hex(hex string) RGBA {
	hex = strings.TrimPrefix(hex, "#")
	n := len(hex)
	if n != 3 && n != 4 && n != 6 && n != 8 {
		return Black
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Black
	}
	if n <= 4 {
		// Widen each nibble to a byte: 0xf -> 0xff.
		var wide uint64
		for i := range n {
			wide = wide<<8 | (v>>(4*(n-1-i))&0xf)*17
		}
		v, n = wide, 2*n
	}
	if n == 6 {
		v = v<<8 | 0xff
	}
	return FromBytes(byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// WithAlpha returns c with its alpha multiplied by a.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A *= a
	return c
}

// Premultiply returns c with color channels multiplied by alpha.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Lerp interpolates componentwise between c and other.
func (c RGBA) Lerp(other RGBA, t float64) RGBA {
	return RGBA{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

func unit8(x float64) byte {
	if !(x > 0) {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return byte(math.Round(x * 255))
}

// Common colors.
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 1, 0)
	Blue        = RGB(0, 0, 1)
	Transparent = NRGBA(0, 0, 0, 0)
)
