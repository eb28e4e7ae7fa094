package path

// Line is a directed line segment.
type Line struct {
	P0, P1 Point
}

// CollectLines flattens elements and returns the segments of every
// contour, each contour closed back to its first point. Segments of
// different contours are never connected. Horizontal segments are kept;
// the scan converter ignores them.
func CollectLines(elements []PathElement, tolerance float64) []Line {
	var lines []Line
	for _, c := range Flatten(elements, tolerance) {
		for i := 1; i < len(c); i++ {
			lines = append(lines, Line{P0: c[i-1], P1: c[i]})
		}
		first, last := c[0], c[len(c)-1]
		if first != last {
			lines = append(lines, Line{P0: last, P1: first})
		}
	}
	return lines
}

// Bounds returns the bounding box of lines. ok is false when lines is empty.
func Bounds(lines []Line) (minX, minY, maxX, maxY float64, ok bool) {
	if len(lines) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = lines[0].P0.X, lines[0].P0.Y
	maxX, maxY = minX, minY
	for _, l := range lines {
		for _, p := range [2]Point{l.P0, l.P1} {
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY, true
}
