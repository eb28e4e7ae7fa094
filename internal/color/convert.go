// Package color converts between sRGB and linear-light color values.
package color

import "math"

// SRGBToLinear decodes one sRGB-encoded channel in [0, 1].
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes one linear channel in [0, 1].
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// LerpLinear interpolates two sRGB colors (r, g, b, a) in linear light
// and returns the sRGB result. Alpha is interpolated directly.
func LerpLinear(c0, c1 [4]float64, t float64) [4]float64 {
	var out [4]float64
	for i := 0; i < 3; i++ {
		a, b := SRGBToLinear(c0[i]), SRGBToLinear(c1[i])
		out[i] = LinearToSRGB(a + (b-a)*t)
	}
	out[3] = c0[3] + (c1[3]-c0[3])*t
	return out
}
