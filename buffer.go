package vglite

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// MaxBufferBytes bounds the storage a single Buffer may allocate.
// Larger requests fail with ErrOutOfMemory.
const MaxBufferBytes = 1 << 30

// Rect is an integer pixel rectangle.
type Rect struct {
	X, Y          int
	Width, Height int
}

// intersect clips r to a w×h raster. The result may be empty.
func (r Rect) intersect(w, h int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.X+r.Width, w), min(r.Y+r.Height, h)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Buffer is a raster target: a pixel grid in one Format with owned storage.
//
// Width, Height, Format and Palette are set by the caller before Allocate.
// Stride and storage are derived and owned by the buffer. A Buffer is not
// safe for concurrent mutation; independent buffers may be used from
// different goroutines.
type Buffer struct {
	Width  int
	Height int
	Format Format

	// Palette maps FormatIndex8 indices to colors. Without a palette,
	// indices are treated as a gray ramp.
	Palette color.Palette

	// Address is an opaque device or physical address for display
	// hardware. It is carried, never dereferenced.
	Address uint64

	stride int
	pix    []byte
}

// NewBuffer creates and allocates a buffer.
func NewBuffer(width, height int, format Format) (*Buffer, error) {
	b := &Buffer{Width: width, Height: height, Format: format}
	if err := b.Allocate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Allocate computes the stride and allocates stride×height bytes of
// zeroed storage, replacing any previous storage.
func (b *Buffer) Allocate() error {
	if !b.Format.IsValid() {
		return fmt.Errorf("allocate %dx%d: %w: %d", b.Width, b.Height, ErrUnsupportedFormat, b.Format)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("allocate %dx%d %v: %w: non-positive size", b.Width, b.Height, b.Format, ErrInvalidTarget)
	}
	stride := b.Width * b.Format.BytesPerPixel()
	if stride/b.Format.BytesPerPixel() != b.Width || stride > MaxBufferBytes/b.Height {
		return fmt.Errorf("allocate %dx%d %v: %w", b.Width, b.Height, b.Format, ErrOutOfMemory)
	}
	b.stride = stride
	b.pix = make([]byte, stride*b.Height)
	Logger().Debug("vglite: buffer allocated",
		"width", b.Width, "height", b.Height, "format", b.Format, "bytes", len(b.pix))
	return nil
}

// Free releases the storage. Freeing an unallocated buffer is a no-op,
// so Free may be called any number of times.
func (b *Buffer) Free() {
	b.pix = nil
	b.stride = 0
}

// Allocated reports whether the buffer has storage.
func (b *Buffer) Allocated() bool {
	return b != nil && b.pix != nil
}

// Stride returns the number of bytes per row, or 0 when unallocated.
func (b *Buffer) Stride() int {
	return b.stride
}

// Pix returns the pixel storage, row-major, Stride bytes per row.
func (b *Buffer) Pix() []byte {
	return b.pix
}

// Bounds returns the full buffer rectangle.
func (b *Buffer) Bounds() Rect {
	return Rect{Width: b.Width, Height: b.Height}
}

func (b *Buffer) checkTarget() error {
	if !b.Allocated() {
		return ErrInvalidTarget
	}
	if len(b.pix) != b.stride*b.Height || b.stride != b.Width*b.Format.BytesPerPixel() {
		return fmt.Errorf("%w: storage does not match %dx%d %v", ErrInvalidTarget, b.Width, b.Height, b.Format)
	}
	return nil
}

func (b *Buffer) offset(x, y int) int {
	return y*b.stride + x*b.Format.BytesPerPixel()
}

// Clear fills r with c, ignoring existing content. A nil r clears the
// whole buffer; other rectangles are clipped to the buffer.
func (b *Buffer) Clear(r *Rect, c RGBA) error {
	if err := b.checkTarget(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	area := b.Bounds()
	if r != nil {
		area = r.intersect(b.Width, b.Height)
	}
	if area.Empty() {
		return nil
	}

	info := b.Format.Info()
	bpp := info.BytesPerPixel
	px := make([]byte, bpp)
	cr, cg, cb, ca := c.Bytes()
	info.store(px, b.Palette, cr, cg, cb, ca)

	for y := area.Y; y < area.Y+area.Height; y++ {
		row := b.pix[b.offset(area.X, y):b.offset(area.X+area.Width, y)]
		for i := 0; i < len(row); i += bpp {
			copy(row[i:i+bpp], px)
		}
	}
	return nil
}

// PixelAt returns the color at (x, y). Out-of-bounds or unallocated
// reads return Transparent.
func (b *Buffer) PixelAt(x, y int) RGBA {
	if !b.Allocated() || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return Transparent
	}
	r, g, bl, a := b.load(x, y)
	return FromBytes(r, g, bl, a)
}

// SetPixel stores c at (x, y). Out-of-bounds writes are dropped.
func (b *Buffer) SetPixel(x, y int, c RGBA) {
	if !b.Allocated() || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	r, g, bl, a := c.Bytes()
	b.store(x, y, r, g, bl, a)
}

func (b *Buffer) load(x, y int) (r, g, bl, a byte) {
	info := &formatInfoTable[b.Format]
	o := b.offset(x, y)
	return info.load(b.pix[o:o+info.BytesPerPixel], b.Palette)
}

func (b *Buffer) store(x, y int, r, g, bl, a byte) {
	info := &formatInfoTable[b.Format]
	o := b.offset(x, y)
	info.store(b.pix[o:o+info.BytesPerPixel], b.Palette, r, g, bl, a)
}

// ToImage converts the buffer to a straight-alpha image.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	if !b.Allocated() {
		return img
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl, a := b.load(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, bl, a
		}
	}
	return img
}

// FromImage allocates an RGBA8888 buffer holding a copy of img.
func FromImage(img image.Image) (*Buffer, error) {
	bounds := img.Bounds()
	b, err := NewBuffer(bounds.Dx(), bounds.Dy(), FormatRGBA8888)
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.store(x, y, c.R, c.G, c.B, c.A)
		}
	}
	return b, nil
}

// WriteTo writes the raw storage, stride×height bytes with no header.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	if err := b.checkTarget(); err != nil {
		return 0, fmt.Errorf("write raw: %w", err)
	}
	n, err := w.Write(b.pix)
	if err != nil {
		return int64(n), fmt.Errorf("write raw: %w: %w", ErrGenericIO, err)
	}
	return int64(n), nil
}
