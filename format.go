package vglite

import (
	"image/color"
	"strings"

	"github.com/gogpu/gputypes"
)

// Format is a raster buffer pixel format.
//
// Channel names give the byte order in memory, lowest address first:
// an RGBA8888 pixel is stored as the bytes R, G, B, A. Pixels hold
// straight (non-premultiplied) alpha.
type Format uint8

const (
	// FormatRGBA8888 stores R, G, B, A bytes.
	FormatRGBA8888 Format = iota

	// FormatBGRA8888 stores B, G, R, A bytes. Matches most display
	// controllers and the svglite2bin dump format.
	FormatBGRA8888

	// FormatARGB8888 stores A, R, G, B bytes.
	FormatARGB8888

	// FormatABGR8888 stores A, B, G, R bytes.
	FormatABGR8888

	// FormatRGBX8888 is RGBA8888 with the alpha byte ignored (always 0xff).
	FormatRGBX8888

	// FormatBGRX8888 is BGRA8888 with the alpha byte ignored (always 0xff).
	FormatBGRX8888

	// FormatL8 is 8-bit luminance.
	FormatL8

	// FormatA8 is an 8-bit alpha mask.
	FormatA8

	// FormatIndex8 is 8-bit palette indices into Buffer.Palette.
	FormatIndex8

	formatCount
)

type pixelKind uint8

const (
	kindColor pixelKind = iota
	kindLuma
	kindAlpha
	kindIndex
)

// FormatInfo describes the memory layout of a format.
type FormatInfo struct {
	// BytesPerPixel is the size of one pixel in bytes.
	BytesPerPixel int

	// HasAlpha reports whether the alpha channel is stored.
	HasAlpha bool

	kind       pixelKind
	r, g, b, a int // byte offsets within a pixel; a < 0 when not stored
	name       string
	texture    gputypes.TextureFormat
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatRGBA8888: {BytesPerPixel: 4, HasAlpha: true, r: 0, g: 1, b: 2, a: 3,
		name: "RGBA8888", texture: gputypes.TextureFormatRGBA8Unorm},
	FormatBGRA8888: {BytesPerPixel: 4, HasAlpha: true, r: 2, g: 1, b: 0, a: 3,
		name: "BGRA8888", texture: gputypes.TextureFormatBGRA8Unorm},
	FormatARGB8888: {BytesPerPixel: 4, HasAlpha: true, r: 1, g: 2, b: 3, a: 0,
		name: "ARGB8888", texture: gputypes.TextureFormatUndefined},
	FormatABGR8888: {BytesPerPixel: 4, HasAlpha: true, r: 3, g: 2, b: 1, a: 0,
		name: "ABGR8888", texture: gputypes.TextureFormatUndefined},
	FormatRGBX8888: {BytesPerPixel: 4, r: 0, g: 1, b: 2, a: -1,
		name: "RGBX8888", texture: gputypes.TextureFormatRGBA8Unorm},
	FormatBGRX8888: {BytesPerPixel: 4, r: 2, g: 1, b: 0, a: -1,
		name: "BGRX8888", texture: gputypes.TextureFormatBGRA8Unorm},
	FormatL8: {BytesPerPixel: 1, kind: kindLuma, a: -1,
		name: "L8", texture: gputypes.TextureFormatR8Unorm},
	FormatA8: {BytesPerPixel: 1, HasAlpha: true, kind: kindAlpha,
		name: "A8", texture: gputypes.TextureFormatR8Unorm},
	FormatIndex8: {BytesPerPixel: 1, kind: kindIndex, a: -1,
		name: "INDEX8", texture: gputypes.TextureFormatUndefined},
}

// Info returns the layout of f. Unknown formats return the zero FormatInfo.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// BytesPerPixel returns the pixel size in bytes, or 0 for unknown formats.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha reports whether f stores an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns the vg_lite style name of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "UNKNOWN"
	}
	return formatInfoTable[f].name
}

// TextureFormat returns the GPU texture format with the same memory layout,
// for handing a buffer to a GPU surface. Formats without an exact match
// return gputypes.TextureFormatUndefined.
func (f Format) TextureFormat() gputypes.TextureFormat {
	if !f.IsValid() {
		return gputypes.TextureFormatUndefined
	}
	return formatInfoTable[f].texture
}

// ParseFormat returns the format named s as returned by String, ignoring
// case.
func ParseFormat(s string) (Format, bool) {
	s = strings.TrimSpace(s)
	for f := Format(0); f < formatCount; f++ {
		if strings.EqualFold(formatInfoTable[f].name, s) {
			return f, true
		}
	}
	return 0, false
}

// load decodes one pixel into straight-alpha bytes.
func (fi *FormatInfo) load(px []byte, palette color.Palette) (r, g, b, a byte) {
	switch fi.kind {
	case kindLuma:
		return px[0], px[0], px[0], 255
	case kindAlpha:
		return 0, 0, 0, px[0]
	case kindIndex:
		if int(px[0]) < len(palette) {
			c := color.NRGBAModel.Convert(palette[px[0]]).(color.NRGBA)
			return c.R, c.G, c.B, c.A
		}
		return px[0], px[0], px[0], 255
	}
	a = 255
	if fi.a >= 0 {
		a = px[fi.a]
	}
	return px[fi.r], px[fi.g], px[fi.b], a
}

// store encodes straight-alpha bytes into one pixel.
func (fi *FormatInfo) store(px []byte, palette color.Palette, r, g, b, a byte) {
	switch fi.kind {
	case kindLuma:
		px[0] = luma(r, g, b)
	case kindAlpha:
		px[0] = a
	case kindIndex:
		if len(palette) > 0 {
			px[0] = byte(palette.Index(color.NRGBA{R: r, G: g, B: b, A: a}))
		} else {
			px[0] = luma(r, g, b)
		}
	default:
		px[fi.r] = r
		px[fi.g] = g
		px[fi.b] = b
		if fi.a >= 0 {
			px[fi.a] = a
		} else {
			px[3] = 0xff
		}
	}
}

// luma uses the same weights as image/color.GrayModel.
func luma(r, g, b byte) byte {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return byte(y)
}
