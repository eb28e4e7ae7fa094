package vglite

import (
	"errors"
	"testing"
)

func TestBlitIdentity(t *testing.T) {
	src := mustBuffer(t, 2, 2, FormatRGBA8888)
	src.SetPixel(0, 0, Red)
	src.SetPixel(1, 0, Green)
	src.SetPixel(0, 1, Blue)
	src.SetPixel(1, 1, White)

	for _, f := range []Filter{FilterPoint, FilterBilinear} {
		dst := mustBuffer(t, 4, 4, FormatBGRA8888)
		if err := Blit(dst, src, Translate(1, 1), BlendNone, f); err != nil {
			t.Fatal(err)
		}
		checks := map[[2]int]RGBA{
			{1, 1}: Red, {2, 1}: Green, {1, 2}: Blue, {2, 2}: White, {0, 0}: Transparent, {3, 3}: Transparent,
		}
		for p, want := range checks {
			if got := dst.PixelAt(p[0], p[1]); got != want {
				t.Errorf("filter %d: pixel %v = %v, want %v", f, p, got, want)
			}
		}
	}
}

func TestBlitScaledPoint(t *testing.T) {
	src := mustBuffer(t, 1, 1, FormatRGBA8888)
	src.SetPixel(0, 0, Green)
	dst := mustBuffer(t, 4, 4, FormatRGBA8888)
	if err := Blit(dst, src, Scale(4, 4), BlendSrcOver, FilterPoint); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if dst.PixelAt(x, y) != Green {
				t.Fatalf("pixel (%d,%d) = %v", x, y, dst.PixelAt(x, y))
			}
		}
	}
}

func TestBlitBilinearBlends(t *testing.T) {
	src := mustBuffer(t, 2, 1, FormatRGBA8888)
	src.SetPixel(0, 0, Black)
	src.SetPixel(1, 0, White)
	dst := mustBuffer(t, 4, 1, FormatRGBA8888)
	if err := Blit(dst, src, Scale(2, 1), BlendNone, FilterBilinear); err != nil {
		t.Fatal(err)
	}
	r1, _, _, _ := dst.PixelAt(1, 0).Bytes()
	r2, _, _, _ := dst.PixelAt(2, 0).Bytes()
	if !(r1 > 0 && r1 < r2 && r2 < 255) {
		t.Errorf("bilinear ramp = %d, %d", r1, r2)
	}
}

func TestBlitErrors(t *testing.T) {
	dst := mustBuffer(t, 2, 2, FormatRGBA8888)
	var empty Buffer
	if err := Blit(dst, &empty, Identity(), BlendNone, FilterPoint); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("unallocated source error = %v", err)
	}
	if err := Blit(&empty, dst, Identity(), BlendNone, FilterPoint); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("unallocated target error = %v", err)
	}
	if err := Blit(dst, dst, Scale(0, 0), BlendNone, FilterPoint); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("singular matrix error = %v", err)
	}
}
