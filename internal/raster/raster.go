// Package raster converts line segments into anti-aliased coverage.
//
// Each pixel row is sampled on N evenly spaced sub-scanlines. On every
// sub-scanline the signed edge crossings are sorted and the fill rule
// decides which spans are inside; span ends keep their exact fractional
// x, so horizontal coverage is analytic and vertical coverage is sampled.
// A pixel lying fully inside the shape accumulates exactly 1.0.
package raster

import (
	"math"
	"slices"

	"github.com/gogpu/vglite/internal/path"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero treats a point as inside when the winding count is non-zero.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd treats a point as inside when the crossing count is odd.
	FillRuleEvenOdd
)

func (r FillRule) inside(winding int) bool {
	if r == FillRuleEvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

// EmitFunc receives the coverage of pixels x0..x0+len(coverage)-1 on row y.
// Every value is in (0, 1]. The slice is reused after the call returns.
type EmitFunc func(y, x0 int, coverage []float32)

// Rasterizer scan-converts paths into a width×height grid. It keeps
// scratch buffers between calls and is not safe for concurrent use.
type Rasterizer struct {
	width, height int
	samples       int

	edges     []Edge
	aet       ActiveEdgeTable
	crossings []crossing
	acc       []float64
	cov       []float32
}

// NewRasterizer creates a rasterizer for a width×height target sampling
// each pixel row on samples sub-scanlines (minimum 1).
func NewRasterizer(width, height, samples int) *Rasterizer {
	return &Rasterizer{
		width:   max(width, 0),
		height:  max(height, 0),
		samples: max(samples, 1),
	}
}

// Samples returns the number of sub-scanlines per pixel row.
func (r *Rasterizer) Samples() int {
	return r.samples
}

// Fill scan-converts the closed polygon made of lines and reports the
// coverage of every touched pixel inside the target. Geometry outside
// the target is clipped. Pixels outside the shape's bounding box are
// never reported.
func (r *Rasterizer) Fill(lines []path.Line, rule FillRule, emit EmitFunc) {
	r.edges = r.edges[:0]
	for _, l := range lines {
		if e, ok := NewEdge(l); ok {
			r.edges = append(r.edges, e)
		}
	}
	if len(r.edges) == 0 || r.width == 0 || r.height == 0 {
		return
	}
	slices.SortFunc(r.edges, func(a, b Edge) int {
		switch {
		case a.y0 < b.y0:
			return -1
		case a.y0 > b.y0:
			return 1
		}
		return 0
	})

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i := range r.edges {
		e := &r.edges[i]
		minX = min(minX, e.x0, e.x1)
		maxX = max(maxX, e.x0, e.x1)
		minY = min(minY, e.y0)
		maxY = max(maxY, e.y1)
	}

	y0 := clampInt(math.Floor(minY), 0, r.height)
	y1 := clampInt(math.Ceil(maxY), 0, r.height)
	bx0 := clampInt(math.Floor(minX), 0, r.width)
	bx1 := clampInt(math.Ceil(maxX), 0, r.width)
	if y0 >= y1 || bx0 >= bx1 {
		return
	}

	n := bx1 - bx0
	if cap(r.acc) < n {
		r.acc = make([]float64, n)
		r.cov = make([]float32, n)
	}
	acc := r.acc[:n]
	cov := r.cov[:n]

	r.aet.Reset(r.edges)
	step := 1 / float64(r.samples)

	for y := y0; y < y1; y++ {
		clear(acc)
		touched := false
		for s := 0; s < r.samples; s++ {
			sy := float64(y) + (float64(s)+0.5)*step
			r.aet.Advance(sy)
			if r.aet.Len() == 0 {
				continue
			}
			r.crossings = r.aet.appendCrossings(r.crossings[:0], sy)
			slices.SortFunc(r.crossings, func(a, b crossing) int {
				switch {
				case a.x < b.x:
					return -1
				case a.x > b.x:
					return 1
				}
				return 0
			})
			if r.accumulateSpans(acc, bx0, bx1, rule, step) {
				touched = true
			}
		}
		if touched {
			emitRuns(y, bx0, acc, cov, emit)
		}
	}
}

// accumulateSpans walks the sorted crossings of one sub-scanline and adds
// weight to every pixel overlapped by an inside span.
func (r *Rasterizer) accumulateSpans(acc []float64, bx0, bx1 int, rule FillRule, weight float64) bool {
	winding := 0
	spanStart := 0.0
	hit := false
	for _, c := range r.crossings {
		wasInside := rule.inside(winding)
		winding += c.dir
		isInside := rule.inside(winding)
		switch {
		case !wasInside && isInside:
			spanStart = c.x
		case wasInside && !isInside:
			if addSpan(acc, bx0, bx1, spanStart, c.x, weight) {
				hit = true
			}
		}
	}
	return hit
}

// addSpan adds weight×overlap for the horizontal span [xa, xb).
func addSpan(acc []float64, bx0, bx1 int, xa, xb, weight float64) bool {
	xa = max(xa, float64(bx0))
	xb = min(xb, float64(bx1))
	if xb <= xa {
		return false
	}
	ia := int(math.Floor(xa))
	ib := int(math.Floor(xb))
	if ia == ib {
		acc[ia-bx0] += (xb - xa) * weight
		return true
	}
	acc[ia-bx0] += (float64(ia+1) - xa) * weight
	for x := ia + 1; x < ib; x++ {
		acc[x-bx0] += weight
	}
	if ib < bx1 {
		acc[ib-bx0] += (xb - float64(ib)) * weight
	}
	return true
}

// emitRuns converts accumulated coverage to float32 and reports each run
// of non-zero pixels.
func emitRuns(y, bx0 int, acc []float64, cov []float32, emit EmitFunc) {
	const eps = 1e-9
	start := -1
	for i, a := range acc {
		switch {
		case a >= 1-eps:
			cov[i] = 1
		case a > eps:
			cov[i] = float32(a)
		default:
			cov[i] = 0
		}
		if cov[i] > 0 {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			emit(y, bx0+start, cov[start:i])
			start = -1
		}
	}
	if start >= 0 {
		emit(y, bx0+start, cov[start:])
	}
}

func clampInt(v float64, lo, hi int) int {
	switch {
	case v <= float64(lo):
		return lo
	case v >= float64(hi):
		return hi
	}
	return int(v)
}
