package raster

import (
	"math"
	"testing"

	"github.com/gogpu/vglite/internal/path"
)

func rectLines(x0, y0, x1, y1 float64, clockwise bool) []path.Line {
	pts := []path.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	if !clockwise {
		pts[1], pts[3] = pts[3], pts[1]
	}
	lines := make([]path.Line, 4)
	for i := range pts {
		lines[i] = path.Line{P0: pts[i], P1: pts[(i+1)%4]}
	}
	return lines
}

// coverageGrid fills lines and returns coverage indexed [y][x].
func coverageGrid(w, h, samples int, lines []path.Line, rule FillRule) [][]float32 {
	grid := make([][]float32, h)
	for i := range grid {
		grid[i] = make([]float32, w)
	}
	NewRasterizer(w, h, samples).Fill(lines, rule, func(y, x0 int, cov []float32) {
		copy(grid[y][x0:], cov)
	})
	return grid
}

func TestFillAlignedRectFullCoverage(t *testing.T) {
	for _, samples := range []int{1, 4, 16} {
		grid := coverageGrid(6, 6, samples, rectLines(1, 1, 5, 4, true), FillRuleNonZero)
		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				want := float32(0)
				if x >= 1 && x < 5 && y >= 1 && y < 4 {
					want = 1
				}
				if grid[y][x] != want {
					t.Errorf("samples=%d: coverage(%d,%d) = %v, want %v", samples, x, y, grid[y][x], want)
				}
			}
		}
	}
}

func TestFillFractionalEdges(t *testing.T) {
	grid := coverageGrid(4, 4, 16, rectLines(0.5, 0, 2.25, 4, true), FillRuleNonZero)
	tests := []struct {
		x    int
		want float32
	}{
		{0, 0.5},
		{1, 1},
		{2, 0.25},
		{3, 0},
	}
	for _, tt := range tests {
		if got := grid[2][tt.x]; math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("coverage x=%d = %v, want %v", tt.x, got, tt.want)
		}
	}

	grid = coverageGrid(2, 2, 4, rectLines(0, 0, 2, 0.5, true), FillRuleNonZero)
	if got := grid[0][0]; got != 0.5 {
		t.Errorf("half-height coverage = %v, want 0.5", got)
	}
}

func TestFillRules(t *testing.T) {
	// Two concentric squares with the same winding.
	lines := append(rectLines(0, 0, 6, 6, true), rectLines(2, 2, 4, 4, true)...)
	nonZero := coverageGrid(6, 6, 4, lines, FillRuleNonZero)
	evenOdd := coverageGrid(6, 6, 4, lines, FillRuleEvenOdd)

	if nonZero[3][3] != 1 {
		t.Errorf("nonzero center = %v, want 1", nonZero[3][3])
	}
	if evenOdd[3][3] != 0 {
		t.Errorf("even-odd center = %v, want 0", evenOdd[3][3])
	}
	if nonZero[0][0] != 1 || evenOdd[0][0] != 1 {
		t.Error("ring pixels should be covered under both rules")
	}

	// Opposite winding: both rules leave the hole empty.
	hole := append(rectLines(0, 0, 6, 6, true), rectLines(2, 2, 4, 4, false)...)
	if got := coverageGrid(6, 6, 4, hole, FillRuleNonZero)[3][3]; got != 0 {
		t.Errorf("nonzero with reversed inner square = %v, want 0", got)
	}
}

func TestFillClipsOutOfBounds(t *testing.T) {
	calls := 0
	NewRasterizer(4, 4, 4).Fill(rectLines(10, 10, 20, 20, true), FillRuleNonZero, func(int, int, []float32) {
		calls++
	})
	if calls != 0 {
		t.Errorf("emit called %d times for geometry outside target", calls)
	}

	grid := coverageGrid(4, 4, 4, rectLines(-100, -100, 100, 100, true), FillRuleNonZero)
	for y := range grid {
		for x := range grid[y] {
			if grid[y][x] != 1 {
				t.Fatalf("oversized rect coverage(%d,%d) = %v", x, y, grid[y][x])
			}
		}
	}
}

func TestFillTriangleArea(t *testing.T) {
	lines := []path.Line{
		{P0: path.Point{X: 0, Y: 0}, P1: path.Point{X: 8, Y: 0}},
		{P0: path.Point{X: 8, Y: 0}, P1: path.Point{X: 0, Y: 8}},
		{P0: path.Point{X: 0, Y: 8}, P1: path.Point{X: 0, Y: 0}},
	}
	grid := coverageGrid(8, 8, 16, lines, FillRuleNonZero)
	var sum float64
	for y := range grid {
		for x := range grid[y] {
			c := grid[y][x]
			if c < 0 || c > 1 {
				t.Fatalf("coverage(%d,%d) = %v out of range", x, y, c)
			}
			sum += float64(c)
		}
	}
	if math.Abs(sum-32) > 0.5 {
		t.Errorf("total coverage = %v, want about 32", sum)
	}
	// Monotonic along the diagonal: pixels closer to the origin corner
	// are more covered.
	if !(grid[0][0] >= grid[3][3] && grid[3][3] >= grid[7][7]) {
		t.Errorf("coverage not monotonic: %v %v %v", grid[0][0], grid[3][3], grid[7][7])
	}
}

func TestNewEdgeRejectsDegenerate(t *testing.T) {
	if _, ok := NewEdge(path.Line{P0: path.Point{X: 0, Y: 1}, P1: path.Point{X: 5, Y: 1}}); ok {
		t.Error("horizontal edge should be rejected")
	}
	if _, ok := NewEdge(path.Line{P0: path.Point{X: math.NaN(), Y: 0}, P1: path.Point{X: 0, Y: 1}}); ok {
		t.Error("NaN edge should be rejected")
	}
	e, ok := NewEdge(path.Line{P0: path.Point{X: 0, Y: 4}, P1: path.Point{X: 4, Y: 0}})
	if !ok || e.Dir() != -1 {
		t.Errorf("upward edge dir = %d, ok = %v", e.Dir(), ok)
	}
	if x := e.XAtY(1); x != 3 {
		t.Errorf("XAtY(1) = %v, want 3", x)
	}
}
