package svg

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/gogpu/vglite"
)

// Units per pixel at 96 dpi.
var unitScale = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
}

// axis selects the viewport dimension percentages resolve against.
type axis int

const (
	axisX axis = iota
	axisY
	axisDiag
)

// lengthCtx carries what relative lengths resolve against.
type lengthCtx struct {
	vpW, vpH float64
	fontSize float64
}

func (c lengthCtx) ref(a axis) float64 {
	switch a {
	case axisX:
		return c.vpW
	case axisY:
		return c.vpH
	}
	return math.Hypot(c.vpW, c.vpH) / math.Sqrt2
}

// parseLength parses an SVG length. ok is false for malformed input.
func parseLength(s string, ctx lengthCtx, a axis) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	num, unit := splitUnit(s)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	switch unit = strings.ToLower(unit); unit {
	case "%":
		return v / 100 * ctx.ref(a), true
	case "em":
		return v * ctx.fontSize, true
	case "ex":
		return v * ctx.fontSize / 2, true
	}
	scale, ok := unitScale[unit]
	if !ok {
		return 0, false
	}
	return v * scale, true
}

// splitUnit splits "12.5px" into "12.5" and "px".
func splitUnit(s string) (num, unit string) {
	i := len(s)
	for i > 0 {
		c := s[i-1]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '%' {
			i--
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// parseNumber parses a plain number or percentage as a fraction.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	if pct {
		s = s[:len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if pct {
		v /= 100
	}
	return v, true
}

// parseNumberList parses whitespace and comma separated numbers.
func parseNumberList(s string) ([]float64, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// parseColor parses a CSS color. currentColor resolves to cur.
func parseColor(s string, cur vglite.RGBA) (vglite.RGBA, bool) {
	s = strings.TrimSpace(s)
	ls := strings.ToLower(s)
	switch {
	case ls == "currentcolor":
		return cur, true
	case ls == "transparent":
		return vglite.Transparent, true
	case strings.HasPrefix(ls, "#"):
		switch len(ls) {
		case 4, 5, 7, 9:
		default:
			return vglite.RGBA{}, false
		}
		for _, c := range ls[1:] {
			if !strings.ContainsRune("0123456789abcdef", c) {
				return vglite.RGBA{}, false
			}
		}
		return vglite.Hex(ls), true
	case strings.HasPrefix(ls, "rgb(") || strings.HasPrefix(ls, "rgba("):
		return parseRGBFunc(ls)
	}
	if c, ok := colornames.Map[ls]; ok {
		return vglite.FromColor(c), true
	}
	return vglite.RGBA{}, false
}

func parseRGBFunc(s string) (vglite.RGBA, bool) {
	open := strings.IndexByte(s, '(')
	if !strings.HasSuffix(s, ")") {
		return vglite.RGBA{}, false
	}
	args := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return vglite.RGBA{}, false
	}
	var ch [4]float64
	ch[3] = 1
	for i, a := range args {
		pct := strings.HasSuffix(a, "%")
		v, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return vglite.RGBA{}, false
		}
		switch {
		case pct:
			v /= 100
		case i < 3:
			v /= 255
		}
		ch[i] = clampUnit(v)
	}
	return vglite.NRGBA(ch[0], ch[1], ch[2], ch[3]), true
}

// parseStyleAttr splits a style attribute into declarations.
func parseStyleAttr(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(v), "!important"))
		if k != "" {
			out[k] = v
		}
	}
	return out
}

// parseURLRef extracts the id from "url(#id)" with an optional fallback
// after it.
func parseURLRef(s string) (id, fallback string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "url(") {
		return "", "", false
	}
	end := strings.IndexByte(s, ')')
	if end < 0 {
		return "", "", false
	}
	ref := strings.Trim(strings.TrimSpace(s[4:end]), `"'`)
	if !strings.HasPrefix(ref, "#") {
		return "", "", false
	}
	return ref[1:], strings.TrimSpace(s[end+1:]), true
}

// parseFontFamily splits a font-family list.
func parseFontFamily(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.Trim(strings.TrimSpace(f), `"'`)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseFontWeight(s string, parent int) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return 400, true
	case "bold":
		return 700, true
	case "bolder":
		return min(parent+300, 900), true
	case "lighter":
		return max(parent-300, 100), true
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 || v > 1000 {
		return 0, false
	}
	return v, true
}
