package vglite

import (
	"bytes"
	"errors"
	"testing"
)

func mustRect(t *testing.T, x, y, w, h float64) *Path {
	t.Helper()
	p, err := NewPathBuilder().Rect(x, y, w, h).Finish()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustBuffer(t *testing.T, w, h int, f Format) *Buffer {
	t.Helper()
	b, err := NewBuffer(w, h, f)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDrawEndToEnd(t *testing.T) {
	b := mustBuffer(t, 4, 4, FormatRGBA8888)
	if err := b.Clear(nil, White); err != nil {
		t.Fatal(err)
	}
	if err := Draw(b, mustRect(t, 0, 0, 2, 2), FillNonZero, Identity(), BlendNone, Black); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := White
			if x < 2 && y < 2 {
				want = Black
			}
			if got := b.PixelAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestDrawFullBufferReplace(t *testing.T) {
	c := FromABGR(0xff336699)
	for _, f := range []Format{FormatRGBA8888, FormatBGRA8888, FormatARGB8888, FormatBGRX8888} {
		t.Run(f.String(), func(t *testing.T) {
			b := mustBuffer(t, 7, 5, f)
			_ = b.Clear(nil, Red)
			if err := Draw(b, mustRect(t, 0, 0, 7, 5), FillNonZero, Identity(), BlendNone, c); err != nil {
				t.Fatal(err)
			}
			for y := 0; y < b.Height; y++ {
				for x := 0; x < b.Width; x++ {
					if got := b.PixelAt(x, y); got != c {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, c)
					}
				}
			}
		})
	}
}

func TestDrawOutOfBoundsLeavesBuffer(t *testing.T) {
	b := mustBuffer(t, 8, 8, FormatBGRA8888)
	_ = b.Clear(nil, Blue)
	before := bytes.Clone(b.Pix())

	paths := []*Path{
		mustRect(t, 20, 20, 5, 5),
		mustRect(t, -30, 0, 10, 8),
		mustRect(t, 0, 8, 8, 4),
	}
	for i, p := range paths {
		if err := Draw(b, p, FillNonZero, Identity(), BlendSrcOver, Red); err != nil {
			t.Fatalf("path %d: Draw() error = %v", i, err)
		}
	}
	// A translated in-bounds rectangle moved fully outside.
	if err := Draw(b, mustRect(t, 0, 0, 4, 4), FillNonZero, Translate(100, -100), BlendNone, Red); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Pix(), before) {
		t.Error("drawing outside the buffer changed pixels")
	}
}

func TestDrawFillRules(t *testing.T) {
	p, err := NewPathBuilder().Rect(0, 0, 6, 6).Rect(2, 2, 2, 2).Finish()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		rule   FillRule
		center RGBA
	}{
		{FillNonZero, Black},
		{FillEvenOdd, White},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			b := mustBuffer(t, 6, 6, FormatRGBA8888)
			_ = b.Clear(nil, White)
			if err := Draw(b, p, tt.rule, Identity(), BlendNone, Black); err != nil {
				t.Fatal(err)
			}
			if got := b.PixelAt(3, 3); got != tt.center {
				t.Errorf("center = %v, want %v", got, tt.center)
			}
			if got := b.PixelAt(0, 0); got != Black {
				t.Errorf("ring = %v, want black", got)
			}
		})
	}
}

func TestDrawAntialiasedEdge(t *testing.T) {
	b := mustBuffer(t, 4, 1, FormatRGBA8888)
	_ = b.Clear(nil, White)
	if err := Draw(b, mustRect(t, 0, 0, 1.5, 1), FillNonZero, Identity(), BlendSrcOver, Black); err != nil {
		t.Fatal(err)
	}
	r, _, _, _ := b.PixelAt(1, 0).Bytes()
	if r < 120 || r > 135 {
		t.Errorf("half-covered pixel red = %d, want about 128", r)
	}
	if b.PixelAt(2, 0) != White {
		t.Error("uncovered pixel changed")
	}

	low := mustBuffer(t, 4, 1, FormatRGBA8888)
	_ = low.Clear(nil, White)
	if err := Draw(low, mustRect(t, 0, 0, 1.5, 1), FillNonZero, Identity(), BlendSrcOver, Black, WithQuality(QualityLow)); err != nil {
		t.Fatal(err)
	}
	if r2, _, _, _ := low.PixelAt(1, 0).Bytes(); r2 != r {
		t.Errorf("vertical edge coverage differs by quality: %d vs %d", r2, r)
	}
}

func TestDrawTransformed(t *testing.T) {
	b := mustBuffer(t, 8, 8, FormatRGBA8888)
	m := Translate(4, 4).Multiply(Scale(2, 2))
	if err := Draw(b, mustRect(t, 0, 0, 1, 1), FillNonZero, m, BlendNone, Green); err != nil {
		t.Fatal(err)
	}
	if b.PixelAt(5, 5) != Green || b.PixelAt(3, 3) != Transparent || b.PixelAt(6, 6) != Transparent {
		t.Error("transformed rectangle landed in the wrong place")
	}
}

func TestDrawScissor(t *testing.T) {
	b := mustBuffer(t, 4, 4, FormatRGBA8888)
	err := Draw(b, mustRect(t, 0, 0, 4, 4), FillNonZero, Identity(), BlendNone, Red,
		WithScissor(Rect{X: 1, Y: 1, Width: 2, Height: 2}))
	if err != nil {
		t.Fatal(err)
	}
	if b.PixelAt(0, 0) != Transparent || b.PixelAt(1, 1) != Red || b.PixelAt(3, 3) != Transparent {
		t.Error("scissor not honored")
	}
}

func TestDrawBlendModes(t *testing.T) {
	b := mustBuffer(t, 1, 1, FormatRGBA8888)
	_ = b.Clear(nil, Blue)
	p := mustRect(t, 0, 0, 1, 1)

	if err := Draw(b, p, FillNonZero, Identity(), BlendSrcOver, Red.WithAlpha(0)); err != nil {
		t.Fatal(err)
	}
	if b.PixelAt(0, 0) != Blue {
		t.Error("transparent src-over changed the pixel")
	}
	if err := Draw(b, p, FillNonZero, Identity(), BlendAdditive, Red); err != nil {
		t.Fatal(err)
	}
	if got := b.PixelAt(0, 0); got != RGB(1, 0, 1) {
		t.Errorf("additive = %v, want magenta", got)
	}
}

func TestDrawErrors(t *testing.T) {
	p := mustRect(t, 0, 0, 1, 1)
	var unallocated Buffer
	unallocated.Width, unallocated.Height = 4, 4
	if err := Draw(&unallocated, p, FillNonZero, Identity(), BlendNone, Red); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("unallocated target error = %v", err)
	}
	if err := Draw(nil, p, FillNonZero, Identity(), BlendNone, Red); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("nil target error = %v", err)
	}

	b := mustBuffer(t, 2, 2, FormatRGBA8888)
	if err := Draw(b, nil, FillNonZero, Identity(), BlendNone, Red); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("nil path error = %v", err)
	}
	if err := Draw(b, p, FillNonZero, Identity(), BlendMode(99), Red); !errors.Is(err, ErrNotSupported) {
		t.Errorf("bad blend error = %v", err)
	}
	if err := DrawPaint(b, p, FillNonZero, Identity(), BlendNone, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil paint error = %v", err)
	}
	if err := DrawGradient(b, p, FillNonZero, Identity(), NewLinearGradient(0, 0, 1, 0), BlendNone); !errors.Is(err, ErrInvalidGradient) {
		t.Errorf("gradient without stops error = %v", err)
	}
}

func TestDrawLuminanceTarget(t *testing.T) {
	b := mustBuffer(t, 2, 1, FormatL8)
	if err := Draw(b, mustRect(t, 0, 0, 1, 1), FillNonZero, Identity(), BlendNone, White); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b.Pix(), []byte{255, 0}) {
		t.Errorf("L8 pixels = %v", b.Pix())
	}
}
