package svg

import (
	"strings"

	"github.com/gogpu/vglite"
)

// presentation lists the properties read from attributes and style
// declarations, in application order. color comes first so currentColor
// in the same element sees it.
var presentation = []string{
	"color", "display", "visibility", "opacity",
	"font-size", "font-family", "font-weight", "font-style",
	"fill", "fill-opacity", "fill-rule",
	"stroke", "stroke-opacity", "stroke-width", "stroke-linecap",
	"stroke-linejoin", "stroke-miterlimit", "stroke-dasharray", "stroke-dashoffset",
	"text-anchor", "direction",
}

var fontSizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32, "xxx-large": 48,
}

// applyStyle computes e's style on top of the inherited one. It returns
// false when the element is not displayed.
func (b *builder) applyStyle(e *element, s *Style, ctx lengthCtx) bool {
	decls := make(map[string]string)
	for _, p := range presentation {
		if v, ok := e.attrs[p]; ok {
			decls[p] = strings.TrimSpace(v)
		}
	}
	if st, ok := e.attrs["style"]; ok {
		for k, v := range parseStyleAttr(st) {
			decls[k] = v
		}
	}

	// Opacity is not inherited; it folds into the inherited product.
	own := 1.0
	display := true
	for _, p := range presentation {
		v, ok := decls[p]
		if !ok || v == "inherit" {
			continue
		}
		switch p {
		case "display":
			display = v != "none"
		case "opacity":
			if f, ok := parseNumber(v); ok {
				own = clampUnit(f)
			}
		default:
			b.setProperty(s, p, v, ctx)
		}
	}
	s.Opacity *= own
	return display
}

func (b *builder) setProperty(s *Style, name, v string, ctx lengthCtx) {
	bad := false
	switch name {
	case "color":
		if c, ok := parseColor(v, s.color); ok {
			s.color = c
		} else {
			bad = true
		}
	case "visibility":
		s.hidden = v == "hidden" || v == "collapse"
	case "font-size":
		if f, ok := fontSizeKeywords[strings.ToLower(v)]; ok {
			s.FontSize = f
			break
		}
		parent := lengthCtx{vpW: s.FontSize, vpH: s.FontSize, fontSize: s.FontSize}
		if f, ok := parseLength(v, parent, axisX); ok && f > 0 {
			s.FontSize = f
		} else {
			bad = true
		}
	case "font-family":
		if fam := parseFontFamily(v); len(fam) > 0 {
			s.FontFamily = fam
		}
	case "font-weight":
		if w, ok := parseFontWeight(v, s.FontWeight); ok {
			s.FontWeight = w
		} else {
			bad = true
		}
	case "font-style":
		s.Italic = v == "italic" || v == "oblique"
	case "fill":
		if p, ok := b.parsePaint(v, s.color); ok {
			s.Fill = p
		} else {
			bad = true
		}
	case "stroke":
		if p, ok := b.parsePaint(v, s.color); ok {
			s.Stroke = p
		} else {
			bad = true
		}
	case "fill-opacity", "stroke-opacity":
		f, ok := parseNumber(v)
		if !ok {
			bad = true
			break
		}
		if name == "fill-opacity" {
			s.FillOpacity = clampUnit(f)
		} else {
			s.StrokeOpacity = clampUnit(f)
		}
	case "fill-rule":
		var r vglite.FillRule
		if err := r.UnmarshalText([]byte(v)); err == nil {
			s.FillRule = &r
		} else {
			bad = true
		}
	case "stroke-width":
		if f, ok := parseLength(v, ctx, axisDiag); ok && f >= 0 {
			s.StrokeWidth = f
		} else {
			bad = true
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			s.LineCap = CapButt
		case "round":
			s.LineCap = CapRound
		case "square":
			s.LineCap = CapSquare
		default:
			bad = true
		}
	case "stroke-linejoin":
		switch v {
		case "miter", "miter-clip", "arcs":
			s.LineJoin = JoinMiter
		case "round":
			s.LineJoin = JoinRound
		case "bevel":
			s.LineJoin = JoinBevel
		default:
			bad = true
		}
	case "stroke-miterlimit":
		if f, ok := parseNumber(v); ok && f >= 1 {
			s.MiterLimit = f
		} else {
			bad = true
		}
	case "stroke-dasharray":
		s.DashArray = parseDashArray(v, ctx)
	case "stroke-dashoffset":
		if f, ok := parseLength(v, ctx, axisDiag); ok {
			s.DashOffset = f
		} else {
			bad = true
		}
	case "text-anchor":
		switch v {
		case "start":
			s.TextAnchor = AnchorStart
		case "middle":
			s.TextAnchor = AnchorMiddle
		case "end":
			s.TextAnchor = AnchorEnd
		default:
			bad = true
		}
	case "direction":
		if v == "ltr" || v == "rtl" {
			s.Direction = v
		} else {
			bad = true
		}
	}
	if bad {
		vglite.Logger().Debug("svg: invalid property ignored", "property", name, "value", v)
	}
}

// parseDashArray returns nil for "none" or any invalid list. An odd
// count is repeated to make it even; an all-zero list disables dashing.
func parseDashArray(v string, ctx lengthCtx) []float64 {
	if v == "none" {
		return nil
	}
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]float64, 0, len(fields))
	sum := 0.0
	for _, f := range fields {
		d, ok := parseLength(f, ctx, axisDiag)
		if !ok || d < 0 {
			return nil
		}
		out = append(out, d)
		sum += d
	}
	if sum == 0 {
		return nil
	}
	if len(out)%2 == 1 {
		out = append(out, out...)
	}
	return out
}

// parsePaint parses a fill or stroke value.
func (b *builder) parsePaint(v string, cur vglite.RGBA) (Paint, bool) {
	if v == "none" {
		return Paint{Kind: PaintNone}, true
	}
	if id, fb, ok := parseURLRef(v); ok {
		var fallback *vglite.RGBA
		if fb != "" && fb != "none" {
			if c, ok := parseColor(fb, cur); ok {
				fallback = &c
			}
		}
		if g := b.gradient(id); g != nil {
			return Paint{Kind: PaintGradient, Gradient: g, Fallback: fallback}, true
		}
		vglite.Logger().Debug("svg: paint server not found", "id", id)
		if fallback != nil {
			return Paint{Kind: PaintColor, Color: *fallback}, true
		}
		return Paint{Kind: PaintNone}, true
	}
	c, ok := parseColor(v, cur)
	if !ok {
		return Paint{}, false
	}
	return Paint{Kind: PaintColor, Color: c}, true
}

func (s *Style) visible() bool {
	return !s.hidden
}
