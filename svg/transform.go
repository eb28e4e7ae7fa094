package svg

import (
	"fmt"
	"math"
	"strings"

	"github.com/gogpu/vglite"
)

// parseTransform parses a transform list such as
// "translate(10 20) rotate(45, 5, 5) scale(2)". Transforms apply right to
// left, so the result is the product of the list in written order.
func parseTransform(s string) (vglite.Matrix, error) {
	m := vglite.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return m, fmt.Errorf("transform %q: unbalanced parentheses", s)
		}
		name := strings.TrimSpace(rest[:open])
		args, ok := parseNumberList(rest[open+1 : end])
		if !ok {
			return m, fmt.Errorf("transform %q: bad arguments to %s", s, name)
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return m, fmt.Errorf("transform %q: %w", s, err)
		}
		m = m.Multiply(t)
		rest = strings.TrimLeft(rest[end+1:], " \t\r\n,")
	}
	return m, nil
}

func transformFunc(name string, a []float64) (vglite.Matrix, error) {
	argc := func(counts ...int) error {
		for _, c := range counts {
			if len(a) == c {
				return nil
			}
		}
		return fmt.Errorf("%s takes %v arguments, got %d", name, counts, len(a))
	}
	switch name {
	case "matrix":
		if err := argc(6); err != nil {
			return vglite.Matrix{}, err
		}
		return vglite.Matrix{A: a[0], B: a[2], C: a[4], D: a[1], E: a[3], F: a[5]}, nil
	case "translate":
		if err := argc(1, 2); err != nil {
			return vglite.Matrix{}, err
		}
		if len(a) == 1 {
			return vglite.Translate(a[0], 0), nil
		}
		return vglite.Translate(a[0], a[1]), nil
	case "scale":
		if err := argc(1, 2); err != nil {
			return vglite.Matrix{}, err
		}
		if len(a) == 1 {
			return vglite.Scale(a[0], a[0]), nil
		}
		return vglite.Scale(a[0], a[1]), nil
	case "rotate":
		if err := argc(1, 3); err != nil {
			return vglite.Matrix{}, err
		}
		r := vglite.Rotate(a[0] * math.Pi / 180)
		if len(a) == 3 {
			return vglite.Translate(a[1], a[2]).Multiply(r).Multiply(vglite.Translate(-a[1], -a[2])), nil
		}
		return r, nil
	case "skewX":
		if err := argc(1); err != nil {
			return vglite.Matrix{}, err
		}
		return vglite.Shear(math.Tan(a[0]*math.Pi/180), 0), nil
	case "skewY":
		if err := argc(1); err != nil {
			return vglite.Matrix{}, err
		}
		return vglite.Shear(0, math.Tan(a[0]*math.Pi/180)), nil
	}
	return vglite.Matrix{}, fmt.Errorf("unknown transform %q", name)
}
