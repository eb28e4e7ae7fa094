package raster

import (
	"math"

	"github.com/gogpu/vglite/internal/path"
)

// Edge is a non-horizontal line segment oriented top to bottom.
type Edge struct {
	x0, y0 float64 // top
	x1, y1 float64 // bottom
	dxdy   float64
	dir    int // +1 when the input segment pointed down, -1 when up
}

// NewEdge creates an edge from a directed segment. ok is false for
// horizontal or non-finite segments, which never cross a scanline.
func NewEdge(l path.Line) (e Edge, ok bool) {
	p0, p1 := l.P0, l.P1
	if !finite(p0) || !finite(p1) || p0.Y == p1.Y {
		return Edge{}, false
	}
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return Edge{
		x0:   p0.X,
		y0:   p0.Y,
		x1:   p1.X,
		y1:   p1.Y,
		dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:  dir,
	}, true
}

// XAtY returns the x coordinate where the edge crosses y.
func (e *Edge) XAtY(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// Dir returns the winding direction of the edge.
func (e *Edge) Dir() int {
	return e.dir
}

func finite(p path.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// crossing is an edge intersection with one sub-scanline.
type crossing struct {
	x   float64
	dir int
}

// ActiveEdgeTable tracks the edges spanning the current sub-scanline.
// Edges must be added in increasing y0 order.
type ActiveEdgeTable struct {
	edges  []Edge
	next   int
	active []int
}

// Reset loads a new set of edges, sorted by top y.
func (aet *ActiveEdgeTable) Reset(edges []Edge) {
	aet.edges = edges
	aet.next = 0
	aet.active = aet.active[:0]
}

// Advance activates edges starting at or above y and retires edges that
// end at or above y. Each sample y must be >= the previous one.
func (aet *ActiveEdgeTable) Advance(y float64) {
	for aet.next < len(aet.edges) && aet.edges[aet.next].y0 <= y {
		aet.active = append(aet.active, aet.next)
		aet.next++
	}
	j := 0
	for _, i := range aet.active {
		if aet.edges[i].y1 > y {
			aet.active[j] = i
			j++
		}
	}
	aet.active = aet.active[:j]
}

// Len returns the number of active edges.
func (aet *ActiveEdgeTable) Len() int {
	return len(aet.active)
}

// appendCrossings appends the crossings of every active edge with y.
func (aet *ActiveEdgeTable) appendCrossings(dst []crossing, y float64) []crossing {
	for _, i := range aet.active {
		e := &aet.edges[i]
		dst = append(dst, crossing{x: e.XAtY(y), dir: e.dir})
	}
	return dst
}
