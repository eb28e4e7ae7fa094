package svg

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gogpu/vglite"
)

// ParsePathData parses the d attribute of a path element.
//
// On malformed input it returns the path up to the last complete command
// together with an error wrapping vglite.ErrMalformedPath, so callers can
// render the valid prefix.
func ParsePathData(d string) (*vglite.Path, error) {
	p := pathParser{s: d, b: vglite.NewPathBuilder()}
	perr := p.run()
	path, err := p.b.Finish()
	if err != nil {
		return nil, err
	}
	if perr != nil {
		return path, fmt.Errorf("%w: %w", vglite.ErrMalformedPath, perr)
	}
	return path, nil
}

type pathParser struct {
	s   string
	pos int
	b   *vglite.PathBuilder

	cur, start vglite.Point
	// Last control point for S/s and T/t reflection.
	lastCubic, lastQuad vglite.Point
	prev                byte
}

func (p *pathParser) skipSep() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			p.pos++
		default:
			return
		}
	}
}

func (p *pathParser) number() (float64, error) {
	p.skipSep()
	start := p.pos
	i := p.pos
	if i < len(p.s) && (p.s[i] == '+' || p.s[i] == '-') {
		i++
	}
	digits := false
	for i < len(p.s) && isDigit(p.s[i]) {
		i++
		digits = true
	}
	if i < len(p.s) && p.s[i] == '.' {
		i++
		for i < len(p.s) && isDigit(p.s[i]) {
			i++
			digits = true
		}
	}
	if !digits {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	if i < len(p.s) && (p.s[i] == 'e' || p.s[i] == 'E') {
		j := i + 1
		if j < len(p.s) && (p.s[j] == '+' || p.s[j] == '-') {
			j++
		}
		if j < len(p.s) && isDigit(p.s[j]) {
			for j < len(p.s) && isDigit(p.s[j]) {
				j++
			}
			i = j
		}
	}
	v, err := strconv.ParseFloat(p.s[start:i], 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q at offset %d", p.s[start:i], start)
	}
	p.pos = i
	return v, nil
}

func (p *pathParser) flag() (bool, error) {
	p.skipSep()
	if p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '0':
			p.pos++
			return false, nil
		case '1':
			p.pos++
			return true, nil
		}
	}
	return false, fmt.Errorf("expected flag at offset %d", p.pos)
}

func (p *pathParser) numbers(n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// moreArgs reports whether another implicit repetition of the command
// follows.
func (p *pathParser) moreArgs() bool {
	p.skipSep()
	if p.pos >= len(p.s) {
		return false
	}
	c := p.s[p.pos]
	return isDigit(c) || c == '-' || c == '+' || c == '.'
}

func (p *pathParser) run() error {
	p.skipSep()
	if p.pos < len(p.s) && p.s[p.pos] != 'M' && p.s[p.pos] != 'm' {
		return fmt.Errorf("path must start with moveto, got %q", p.s[p.pos])
	}
	for {
		p.skipSep()
		if p.pos >= len(p.s) {
			return nil
		}
		cmd := p.s[p.pos]
		p.pos++
		if err := p.command(cmd); err != nil {
			return err
		}
		for cmd != 'Z' && cmd != 'z' && p.moreArgs() {
			// Extra coordinate pairs after a moveto are linetos.
			next := cmd
			switch cmd {
			case 'M':
				next = 'L'
			case 'm':
				next = 'l'
			}
			if err := p.command(next); err != nil {
				return err
			}
			cmd = next
		}
	}
}

func (p *pathParser) command(cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	abs := func(x, y float64) vglite.Point {
		if rel {
			return vglite.Pt(p.cur.X+x, p.cur.Y+y)
		}
		return vglite.Pt(x, y)
	}
	upper := cmd &^ 0x20

	switch upper {
	case 'M':
		a, err := p.numbers(2)
		if err != nil {
			return err
		}
		pt := abs(a[0], a[1])
		p.b.MoveTo(pt.X, pt.Y)
		p.cur, p.start = pt, pt
	case 'L':
		a, err := p.numbers(2)
		if err != nil {
			return err
		}
		p.lineTo(abs(a[0], a[1]))
	case 'H':
		a, err := p.numbers(1)
		if err != nil {
			return err
		}
		x := a[0]
		if rel {
			x += p.cur.X
		}
		p.lineTo(vglite.Pt(x, p.cur.Y))
	case 'V':
		a, err := p.numbers(1)
		if err != nil {
			return err
		}
		y := a[0]
		if rel {
			y += p.cur.Y
		}
		p.lineTo(vglite.Pt(p.cur.X, y))
	case 'C':
		a, err := p.numbers(6)
		if err != nil {
			return err
		}
		p.cubicTo(abs(a[0], a[1]), abs(a[2], a[3]), abs(a[4], a[5]))
	case 'S':
		a, err := p.numbers(4)
		if err != nil {
			return err
		}
		c1 := p.cur
		if p.prev == 'C' || p.prev == 'S' {
			c1 = reflect(p.lastCubic, p.cur)
		}
		p.cubicTo(c1, abs(a[0], a[1]), abs(a[2], a[3]))
	case 'Q':
		a, err := p.numbers(4)
		if err != nil {
			return err
		}
		p.quadTo(abs(a[0], a[1]), abs(a[2], a[3]))
	case 'T':
		a, err := p.numbers(2)
		if err != nil {
			return err
		}
		c := p.cur
		if p.prev == 'Q' || p.prev == 'T' {
			c = reflect(p.lastQuad, p.cur)
		}
		p.quadTo(c, abs(a[0], a[1]))
	case 'A':
		r, err := p.numbers(3)
		if err != nil {
			return err
		}
		large, err := p.flag()
		if err != nil {
			return err
		}
		sweep, err := p.flag()
		if err != nil {
			return err
		}
		e, err := p.numbers(2)
		if err != nil {
			return err
		}
		end := abs(e[0], e[1])
		arcToCubics(p.cur, end, r[0], r[1], r[2], large, sweep, func(c1, c2, to vglite.Point) {
			p.b.CubicTo(c1.X, c1.Y, c2.X, c2.Y, to.X, to.Y)
		})
		p.cur = end
	case 'Z':
		p.b.Close()
		p.cur = p.start
	default:
		return fmt.Errorf("unknown path command %q", cmd)
	}
	p.prev = upper
	return nil
}

func (p *pathParser) lineTo(pt vglite.Point) {
	p.b.LineTo(pt.X, pt.Y)
	p.cur = pt
}

func (p *pathParser) cubicTo(c1, c2, pt vglite.Point) {
	p.b.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
	p.lastCubic = c2
	p.cur = pt
}

func (p *pathParser) quadTo(c, pt vglite.Point) {
	p.b.QuadTo(c.X, c.Y, pt.X, pt.Y)
	p.lastQuad = c
	p.cur = pt
}

func reflect(ctrl, about vglite.Point) vglite.Point {
	return vglite.Pt(2*about.X-ctrl.X, 2*about.Y-ctrl.Y)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// arcToCubics converts an SVG elliptical arc from p0 to p1 into cubic
// Béziers of at most 90 degrees each, calling emit for every segment.
// Out-of-range radii are scaled up and a zero radius becomes a line.
func arcToCubics(p0, p1 vglite.Point, rx, ry, angle float64, large, sweep bool, emit func(c1, c2, to vglite.Point)) {
	if p0 == p1 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		emit(p0, p1, p1)
		return
	}

	sinPhi, cosPhi := math.Sincos(angle * math.Pi / 180)
	dx, dy := (p0.X-p1.X)/2, (p0.Y-p1.Y)/2
	x1 := cosPhi*dx + sinPhi*dy
	y1 := -sinPhi*dx + cosPhi*dy

	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (p0.X+p1.X)/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0.Y+p1.Y)/2

	theta1 := vecAngle(1, 0, (x1-cx1)/rx, (y1-cy1)/ry)
	delta := vecAngle((x1-cx1)/rx, (y1-cy1)/ry, (-x1-cx1)/rx, (-y1-cy1)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	n := max(int(math.Ceil(math.Abs(delta)/(math.Pi/2)-1e-9)), 1)
	step := delta / float64(n)
	k := 4.0 / 3 * math.Tan(step/4)

	point := func(t float64) (pt, deriv vglite.Point) {
		sin, cos := math.Sincos(t)
		ex, ey := rx*cos, ry*sin
		pt = vglite.Pt(cosPhi*ex-sinPhi*ey+cx, sinPhi*ex+cosPhi*ey+cy)
		dex, dey := -rx*sin, ry*cos
		deriv = vglite.Pt(cosPhi*dex-sinPhi*dey, sinPhi*dex+cosPhi*dey)
		return pt, deriv
	}

	t := theta1
	from, d0 := point(t)
	for i := 0; i < n; i++ {
		t += step
		to, d1 := point(t)
		if i == n-1 {
			to = p1
		}
		emit(from.Add(d0.Mul(k)), to.Sub(d1.Mul(k)), to)
		from, d0 = to, d1
	}
}

func vecAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}
