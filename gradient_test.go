package vglite

import (
	"errors"
	"math"
	"testing"
)

func colorsClose(a, b RGBA, eps float64) bool {
	return math.Abs(a.R-b.R) < eps && math.Abs(a.G-b.G) < eps &&
		math.Abs(a.B-b.B) < eps && math.Abs(a.A-b.A) < eps
}

func TestResolveGradientInterpolation(t *testing.T) {
	g := NewLinearGradient(0, 0, 10, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White)
	paint, err := ResolveGradient(g, Identity())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x    float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{2.5, 0.25},
		{5, 0.5},
		{10, 1},
		{50, 1},
	}
	for _, tt := range tests {
		got := paint.ColorAt(tt.x, 3)
		if math.Abs(got.R-tt.want) > 1e-9 || got.A != 1 {
			t.Errorf("ColorAt(%v) = %v, want gray %v", tt.x, got, tt.want)
		}
	}
}

func TestResolveGradientTinyScale(t *testing.T) {
	g := NewLinearGradient(0, 0, 1e6, 0).
		AddColorStop(0, Black).
		AddColorStop(1, White)
	paint, err := ResolveGradient(g, Scale(1e-7, 1e-7))
	if err != nil {
		t.Fatalf("ResolveGradient() = %v", err)
	}
	// The axis spans 0.1 device pixels.
	if got := paint.ColorAt(0.05, 0); math.Abs(got.R-0.5) > 1e-6 {
		t.Errorf("ColorAt(0.05) = %v, want mid gray", got)
	}
}

func TestResolveGradientIdempotent(t *testing.T) {
	g := NewLinearGradient(0, 0, 7, 3).
		AddColorStop(0, Red).
		AddColorStop(0.4, Green).
		AddColorStop(1, Blue.WithAlpha(0.5))
	m := Rotate(0.3).Multiply(Scale(1.5, 0.75))
	paint, err := ResolveGradient(g, m)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []Point{{0.5, 0.5}, {3.5, 1.5}, {-2, 9}} {
		if a, b := paint.ColorAt(p.X, p.Y), paint.ColorAt(p.X, p.Y); a != b {
			t.Errorf("ColorAt(%v) not idempotent: %v vs %v", p, a, b)
		}
	}
}

func TestResolveGradientTransform(t *testing.T) {
	// Gradient along x in local space, rotated 90° by the draw matrix:
	// device y now runs along the gradient axis.
	g := NewLinearGradient(0, 0, 10, 0).AddColorStop(0, Black).AddColorStop(1, White)
	paint, err := ResolveGradient(g, Rotate(math.Pi/2))
	if err != nil {
		t.Fatal(err)
	}
	if got := paint.ColorAt(0, 5); !colorsClose(got, RGB(0.5, 0.5, 0.5), 1e-9) {
		t.Errorf("ColorAt(0,5) = %v, want mid gray", got)
	}
	if got := paint.ColorAt(5, 0); !colorsClose(got, Black, 1e-9) {
		t.Errorf("ColorAt(5,0) = %v, want black", got)
	}
}

func TestResolveGradientErrors(t *testing.T) {
	tests := []struct {
		name string
		g    *LinearGradient
		m    Matrix
	}{
		{"nil", nil, Identity()},
		{"no stops", NewLinearGradient(0, 0, 1, 0), Identity()},
		{"one stop", NewLinearGradient(0, 0, 1, 0).AddColorStop(0, Red), Identity()},
		{"zero axis", NewLinearGradient(3, 3, 3, 3).AddColorStop(0, Red).AddColorStop(1, Blue), Identity()},
		{"decreasing", NewLinearGradient(0, 0, 1, 0).AddColorStop(0.8, Red).AddColorStop(0.2, Blue), Identity()},
		{"out of range", NewLinearGradient(0, 0, 1, 0).AddColorStop(0, Red).AddColorStop(1.5, Blue), Identity()},
		{"singular", NewLinearGradient(0, 0, 1, 0).AddColorStop(0, Red).AddColorStop(1, Blue), Scale(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ResolveGradient(tt.g, tt.m); !errors.Is(err, ErrInvalidGradient) {
				t.Errorf("ResolveGradient() error = %v, want ErrInvalidGradient", err)
			}
		})
	}
}

func TestGradientSpread(t *testing.T) {
	base := func(s SpreadMode) Paint {
		g := NewLinearGradient(0, 0, 10, 0).AddColorStop(0, Black).AddColorStop(1, White)
		g.Spread = s
		p, err := ResolveGradient(g, Identity())
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	if got := base(SpreadRepeat).ColorAt(12.5, 0).R; math.Abs(got-0.25) > 1e-9 {
		t.Errorf("repeat at 1.25 = %v, want 0.25", got)
	}
	if got := base(SpreadReflect).ColorAt(12.5, 0).R; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("reflect at 1.25 = %v, want 0.75", got)
	}
	if got := base(SpreadPad).ColorAt(12.5, 0).R; got != 1 {
		t.Errorf("pad at 1.25 = %v, want 1", got)
	}
}

func TestGradientHardStop(t *testing.T) {
	g := NewLinearGradient(0, 0, 1, 0).
		AddColorStop(0, Red).AddColorStop(0.5, Red).
		AddColorStop(0.5, Blue).AddColorStop(1, Blue)
	p, err := ResolveGradient(g, Identity())
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ColorAt(0.49, 0); got != Red {
		t.Errorf("before stop = %v", got)
	}
	if got := p.ColorAt(0.51, 0); got != Blue {
		t.Errorf("after stop = %v", got)
	}
}

func TestGradientLinearInterpolation(t *testing.T) {
	g := NewLinearGradient(0, 0, 1, 0).AddColorStop(0, Black).AddColorStop(1, White)
	g.Interpolation = InterpolateLinearRGB
	p, _ := ResolveGradient(g, Identity())
	if got := p.ColorAt(0.5, 0).R; math.Abs(got-0.7354) > 1e-3 {
		t.Errorf("linear-light midpoint = %v", got)
	}
}

func TestRadialGradient(t *testing.T) {
	g := NewRadialGradient(10, 10, 10).AddColorStop(0, White).AddColorStop(1, Black)
	p, err := ResolveRadialGradient(g, Identity())
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ColorAt(10, 10); got != White {
		t.Errorf("center = %v", got)
	}
	if got := p.ColorAt(15, 10).R; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("half radius = %v", got)
	}
	if got := p.ColorAt(40, 10); got != Black {
		t.Errorf("outside = %v", got)
	}

	focal := NewRadialGradient(0, 0, 10).AddColorStop(0, White).AddColorStop(1, Black)
	focal.Focus = Pt(5, 0)
	fp, err := ResolveRadialGradient(focal, Identity())
	if err != nil {
		t.Fatal(err)
	}
	if got := fp.ColorAt(5, 0); got != White {
		t.Errorf("focus = %v", got)
	}
	// Halfway from focus (5,0) to the circle at (10,0).
	if got := fp.ColorAt(7.5, 0).R; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("focal midpoint = %v", got)
	}

	bad := NewRadialGradient(0, 0, 0).AddColorStop(0, White).AddColorStop(1, Black)
	if _, err := ResolveRadialGradient(bad, Identity()); !errors.Is(err, ErrInvalidGradient) {
		t.Errorf("zero radius error = %v", err)
	}
}

func TestDrawGradientPixels(t *testing.T) {
	b := mustBuffer(t, 4, 1, FormatRGBA8888)
	g := NewLinearGradient(0, 0, 4, 0).AddColorStop(0, Black).AddColorStop(1, White)
	if err := DrawGradient(b, mustRect(t, 0, 0, 4, 1), FillEvenOdd, Identity(), g, BlendNone); err != nil {
		t.Fatal(err)
	}
	// Pixel centers sample t = 0.125, 0.375, 0.625, 0.875.
	want := []byte{32, 96, 159, 223}
	for x, w := range want {
		r, _, _, _ := b.PixelAt(x, 0).Bytes()
		if r != w {
			t.Errorf("pixel %d red = %d, want %d", x, r, w)
		}
	}
}
