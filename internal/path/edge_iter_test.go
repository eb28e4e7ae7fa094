package path

import (
	"math"
	"testing"
)

func TestCollectLinesSingleContour(t *testing.T) {
	elements := []PathElement{
		MoveTo{Point{0, 0}},
		LineTo{Point{100, 0}},
		LineTo{Point{50, 100}},
		Close{},
	}
	lines := CollectLines(elements, 0)
	want := []Line{
		{Point{0, 0}, Point{100, 0}},
		{Point{100, 0}, Point{50, 100}},
		{Point{50, 100}, Point{0, 0}},
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, lines[i], want[i])
		}
	}
}

func TestCollectLinesImplicitClose(t *testing.T) {
	// An open contour is closed for filling.
	elements := []PathElement{
		MoveTo{Point{0, 0}},
		LineTo{Point{10, 0}},
		LineTo{Point{10, 10}},
	}
	lines := CollectLines(elements, 0)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[2] != (Line{Point{10, 10}, Point{0, 0}}) {
		t.Errorf("closing line = %v", lines[2])
	}
}

func TestCollectLinesMultipleContours(t *testing.T) {
	elements := []PathElement{
		MoveTo{Point{0, 0}}, LineTo{Point{100, 0}}, LineTo{Point{100, 50}}, LineTo{Point{0, 50}}, Close{},
		MoveTo{Point{10, 10}}, LineTo{Point{90, 10}}, LineTo{Point{90, 40}}, LineTo{Point{10, 40}}, Close{},
	}
	lines := CollectLines(elements, 0)
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8", len(lines))
	}
	for i, l := range lines {
		if l.P0 == (Point{0, 50}) && l.P1 == (Point{10, 10}) {
			t.Errorf("line %d connects two contours", i)
		}
	}
}

func TestFlattenCubicWithinTolerance(t *testing.T) {
	// Quarter circle of radius 100.
	const k = 0.5522847498307936 * 100
	elements := []PathElement{
		MoveTo{Point{100, 0}},
		CubicTo{Point{100, k}, Point{k, 100}, Point{0, 100}},
	}
	for _, tol := range []float64{0.5, 0.1} {
		contours := Flatten(elements, tol)
		if len(contours) != 1 {
			t.Fatalf("got %d contours, want 1", len(contours))
		}
		pts := contours[0]
		if pts[len(pts)-1] != (Point{0, 100}) {
			t.Errorf("last point = %v", pts[len(pts)-1])
		}
		for _, p := range pts {
			r := math.Hypot(p.X, p.Y)
			if math.Abs(r-100) > tol+0.05 {
				t.Errorf("tol %v: point %v is %v from circle", tol, p, math.Abs(r-100))
			}
		}
	}
	coarse := len(Flatten(elements, 0.5)[0])
	fine := len(Flatten(elements, 0.1)[0])
	if fine <= coarse {
		t.Errorf("finer tolerance produced %d points, coarse %d", fine, coarse)
	}
}

func TestFlattenQuadratic(t *testing.T) {
	elements := []PathElement{
		MoveTo{Point{0, 0}},
		QuadTo{Point{50, 100}, Point{100, 0}},
	}
	pts := Flatten(elements, 0.1)[0]
	if len(pts) < 3 {
		t.Errorf("quadratic flattened to %d points", len(pts))
	}
}

func TestBounds(t *testing.T) {
	if _, _, _, _, ok := Bounds(nil); ok {
		t.Error("Bounds(nil) should report !ok")
	}
	x0, y0, x1, y1, ok := Bounds([]Line{{Point{3, -1}, Point{-2, 7}}})
	if !ok || x0 != -2 || y0 != -1 || x1 != 3 || y1 != 7 {
		t.Errorf("Bounds = %v %v %v %v %v", x0, y0, x1, y1, ok)
	}
}
