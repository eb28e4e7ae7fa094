package svg

import (
	"strings"

	"github.com/gogpu/vglite"
)

var gradientAttrs = []string{
	"x1", "y1", "x2", "y2", "cx", "cy", "r", "fx", "fy",
	"gradientUnits", "gradientTransform", "spreadMethod",
}

// gradient resolves the gradient with the given id, following href
// chains. It returns nil when id does not name a gradient.
func (b *builder) gradient(id string) *Gradient {
	if g, ok := b.gradients[id]; ok {
		return g
	}
	e, ok := b.ids[id]
	if !ok || (e.name != "linearGradient" && e.name != "radialGradient") {
		return nil
	}

	// Walk the href chain; nearer elements override farther ones.
	attrs := make(map[string]string)
	var stops []*element
	seen := map[*element]bool{}
	for cur := e; cur != nil && !seen[cur]; {
		seen[cur] = true
		for _, a := range gradientAttrs {
			if _, set := attrs[a]; set {
				continue
			}
			if v, ok := cur.attrs[a]; ok {
				attrs[a] = v
			}
		}
		if stops == nil {
			for _, c := range cur.children {
				if c.name == "stop" {
					stops = append(stops, c)
				}
			}
		}
		next, ok := b.ids[strings.TrimPrefix(cur.href(), "#")]
		if !ok || (next.name != "linearGradient" && next.name != "radialGradient") {
			break
		}
		cur = next
	}

	g := &Gradient{
		ID:        id,
		Radial:    e.name == "radialGradient",
		Transform: vglite.Identity(),
	}
	if attrs["gradientUnits"] == "userSpaceOnUse" {
		g.Units = UserSpaceOnUse
	}
	switch attrs["spreadMethod"] {
	case "reflect":
		g.Spread = vglite.SpreadReflect
	case "repeat":
		g.Spread = vglite.SpreadRepeat
	}
	if t, ok := attrs["gradientTransform"]; ok {
		if m, err := parseTransform(t); err == nil {
			g.Transform = m
		}
	}

	coord := func(name string, def float64, a axis) float64 {
		v, ok := attrs[name]
		if !ok {
			return def
		}
		if g.Units == ObjectBoundingBox {
			f, ok := parseNumber(v)
			if !ok {
				return def
			}
			return f
		}
		f, ok := parseLength(v, b.viewport, a)
		if !ok {
			return def
		}
		return f
	}
	// Defaults are 0%, 50% or 100% of the coordinate space.
	full := func(a axis) float64 {
		if g.Units == ObjectBoundingBox {
			return 1
		}
		return b.viewport.ref(a)
	}

	if g.Radial {
		g.CX = coord("cx", full(axisX)/2, axisX)
		g.CY = coord("cy", full(axisY)/2, axisY)
		g.R = coord("r", full(axisDiag)/2, axisDiag)
		g.FX = coord("fx", g.CX, axisX)
		g.FY = coord("fy", g.CY, axisY)
	} else {
		g.X1 = coord("x1", 0, axisX)
		g.Y1 = coord("y1", 0, axisY)
		g.X2 = coord("x2", full(axisX), axisX)
		g.Y2 = coord("y2", 0, axisY)
	}
	g.Stops = b.stops(stops)
	b.gradients[id] = g
	return g
}

// stops converts stop elements, clamping offsets into [0,1] and forcing
// them to be non-decreasing.
func (b *builder) stops(els []*element) []vglite.ColorStop {
	out := make([]vglite.ColorStop, 0, len(els))
	prev := 0.0
	for _, e := range els {
		props := map[string]string{}
		for _, k := range []string{"stop-color", "stop-opacity", "color"} {
			if v, ok := e.attrs[k]; ok {
				props[k] = strings.TrimSpace(v)
			}
		}
		if st, ok := e.attrs["style"]; ok {
			for k, v := range parseStyleAttr(st) {
				props[k] = v
			}
		}

		off, _ := parseNumber(e.attrs["offset"])
		off = max(clampUnit(off), prev)
		prev = off

		cur := vglite.Black
		if v, ok := props["color"]; ok {
			if c, ok := parseColor(v, cur); ok {
				cur = c
			}
		}
		c := vglite.Black
		if v, ok := props["stop-color"]; ok {
			if pc, ok := parseColor(v, cur); ok {
				c = pc
			}
		}
		if v, ok := props["stop-opacity"]; ok {
			if a, ok := parseNumber(v); ok {
				c = c.WithAlpha(clampUnit(a))
			}
		}
		out = append(out, vglite.ColorStop{Offset: off, Color: c})
	}
	return out
}
