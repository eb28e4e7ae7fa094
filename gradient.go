package vglite

import (
	"fmt"
	"math"
	"sort"

	"github.com/gogpu/vglite/internal/color"
)

// SpreadMode defines how a gradient continues outside [0, 1].
type SpreadMode int

const (
	// SpreadPad clamps to the end colors.
	SpreadPad SpreadMode = iota
	// SpreadRepeat tiles the gradient.
	SpreadRepeat
	// SpreadReflect mirrors every other tile.
	SpreadReflect
)

// Interpolation selects the color space stops are blended in.
type Interpolation int

const (
	// InterpolateSRGB blends the stored sRGB values directly.
	InterpolateSRGB Interpolation = iota
	// InterpolateLinearRGB blends in linear light.
	InterpolateLinearRGB
)

// ColorStop is a color at an offset along a gradient.
type ColorStop struct {
	Offset float64 // in [0, 1]
	Color  RGBA
}

// validateStops checks the stop list shared by all gradients.
func validateStops(stops []ColorStop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%w: %d color stops, need at least 2", ErrInvalidGradient, len(stops))
	}
	prev := 0.0
	for i, s := range stops {
		if !(s.Offset >= 0 && s.Offset <= 1) {
			return fmt.Errorf("%w: stop %d offset %v outside [0,1]", ErrInvalidGradient, i, s.Offset)
		}
		if s.Offset < prev {
			return fmt.Errorf("%w: stop %d offset %v decreases", ErrInvalidGradient, i, s.Offset)
		}
		prev = s.Offset
	}
	return nil
}

// gradientMatrix returns the device-to-gradient-space transform.
// A zero gradient transform means identity.
func gradientMatrix(m, transform Matrix) (Matrix, error) {
	if transform == (Matrix{}) {
		transform = Identity()
	}
	inv, ok := m.Multiply(transform).Invert()
	if !ok {
		return Matrix{}, fmt.Errorf("%w: singular transform", ErrInvalidGradient)
	}
	return inv, nil
}

func applySpread(t float64, mode SpreadMode) float64 {
	switch mode {
	case SpreadRepeat:
		t -= math.Floor(t)
	case SpreadReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int64(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = clamp01(t)
	}
	return t
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// stopRamp evaluates a validated, ordered stop list.
type stopRamp struct {
	stops  []ColorStop
	spread SpreadMode
	interp Interpolation
}

func newStopRamp(stops []ColorStop, spread SpreadMode, interp Interpolation) stopRamp {
	return stopRamp{stops: append([]ColorStop(nil), stops...), spread: spread, interp: interp}
}

func (r *stopRamp) at(t float64) RGBA {
	t = applySpread(t, r.spread)
	stops := r.stops

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx == len(stops) {
		return stops[len(stops)-1].Color
	}

	s0, s1 := stops[idx-1], stops[idx]
	span := s1.Offset - s0.Offset
	if span <= 0 {
		return s1.Color
	}
	local := (t - s0.Offset) / span
	if r.interp == InterpolateLinearRGB {
		c := color.LerpLinear(
			[4]float64{s0.Color.R, s0.Color.G, s0.Color.B, s0.Color.A},
			[4]float64{s1.Color.R, s1.Color.G, s1.Color.B, s1.Color.A},
			local)
		return RGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	return s0.Color.Lerp(s1.Color, local)
}
