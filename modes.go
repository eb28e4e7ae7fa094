package vglite

import (
	"fmt"

	"github.com/gogpu/vglite/internal/blend"
	"github.com/gogpu/vglite/internal/raster"
)

// FillRule determines which regions of a self-overlapping path are inside.
type FillRule int

const (
	// FillNonZero fills where the signed winding count is non-zero.
	FillNonZero FillRule = iota
	// FillEvenOdd fills where the crossing count is odd.
	FillEvenOdd
)

var fillRuleNames = [...]string{FillNonZero: "nonzero", FillEvenOdd: "evenodd"}

func (r FillRule) String() string {
	if r < 0 || int(r) >= len(fillRuleNames) {
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
	return fillRuleNames[r]
}

// MarshalText implements encoding.TextMarshaler.
func (r FillRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText accepts "nonzero" and "evenodd".
func (r *FillRule) UnmarshalText(text []byte) error {
	v, ok := lookupName(fillRuleNames[:], string(text))
	if !ok {
		return fmt.Errorf("vglite: unknown fill rule %q", text)
	}
	*r = FillRule(v)
	return nil
}

func (r FillRule) raster() raster.FillRule {
	if r == FillEvenOdd {
		return raster.FillRuleEvenOdd
	}
	return raster.FillRuleNonZero
}

// BlendMode selects how a drawn color combines with the target pixel.
// S is the source, D the destination, both premultiplied.
type BlendMode int

const (
	BlendNone     BlendMode = iota // S (replace)
	BlendSrcOver                   // S + D*(1-Sa)
	BlendDstOver                   // S*(1-Da) + D
	BlendSrcIn                     // S*Da
	BlendDstIn                     // D*Sa
	BlendMultiply                  // S*(1-Da) + D*(1-Sa) + S*D
	BlendScreen                    // S + D - S*D
	BlendAdditive                  // S + D
	BlendSubtract                  // D*(1-S)
)

var blendNames = [...]string{
	BlendNone:     "none",
	BlendSrcOver:  "src-over",
	BlendDstOver:  "dst-over",
	BlendSrcIn:    "src-in",
	BlendDstIn:    "dst-in",
	BlendMultiply: "multiply",
	BlendScreen:   "screen",
	BlendAdditive: "additive",
	BlendSubtract: "subtract",
}

var blendModes = [...]blend.BlendMode{
	BlendNone:     blend.BlendSource,
	BlendSrcOver:  blend.BlendSourceOver,
	BlendDstOver:  blend.BlendDestinationOver,
	BlendSrcIn:    blend.BlendSourceIn,
	BlendDstIn:    blend.BlendDestinationIn,
	BlendMultiply: blend.BlendMultiply,
	BlendScreen:   blend.BlendScreen,
	BlendAdditive: blend.BlendAdditive,
	BlendSubtract: blend.BlendSubtract,
}

func (m BlendMode) String() string {
	if m < 0 || int(m) >= len(blendNames) {
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
	return blendNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m BlendMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText accepts the names returned by String.
func (m *BlendMode) UnmarshalText(text []byte) error {
	v, ok := lookupName(blendNames[:], string(text))
	if !ok {
		return fmt.Errorf("vglite: unknown blend mode %q", text)
	}
	*m = BlendMode(v)
	return nil
}

func (m BlendMode) valid() bool {
	return m >= 0 && int(m) < len(blendModes)
}

func (m BlendMode) fn() blend.BlendFunc {
	return blend.GetBlendFunc(blendModes[m])
}

// Quality trades anti-aliasing density and curve tolerance for speed.
// It never changes which pixels are inside a shape.
type Quality int

const (
	QualityLow    Quality = iota // 1 sub-scanline, 0.5px tolerance
	QualityMedium                // 4 sub-scanlines, 0.25px tolerance
	QualityHigh                  // 16 sub-scanlines, 0.1px tolerance
)

var qualityNames = [...]string{QualityLow: "low", QualityMedium: "medium", QualityHigh: "high"}

func (q Quality) String() string {
	if q < 0 || int(q) >= len(qualityNames) {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText accepts "low", "medium" and "high".
func (q *Quality) UnmarshalText(text []byte) error {
	v, ok := lookupName(qualityNames[:], string(text))
	if !ok {
		return fmt.Errorf("vglite: unknown quality %q", text)
	}
	*q = Quality(v)
	return nil
}

// Samples returns the sub-scanlines per pixel row.
func (q Quality) Samples() int {
	switch q {
	case QualityLow:
		return 1
	case QualityMedium:
		return 4
	default:
		return 16
	}
}

// Tolerance returns the curve flattening tolerance in device pixels.
func (q Quality) Tolerance() float64 {
	switch q {
	case QualityLow:
		return 0.5
	case QualityMedium:
		return 0.25
	default:
		return 0.1
	}
}

func lookupName(names []string, s string) (int, bool) {
	for i, n := range names {
		if n == s {
			return i, true
		}
	}
	return 0, false
}
