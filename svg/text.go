package svg

import (
	"strings"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/vglite"
	"github.com/gogpu/vglite/fontdb"
)

// textPos is a position waiting for the next span to consume it.
type textPos struct {
	x, y   *float64
	dx, dy float64
}

// textSpans appends the spans of a text or tspan element. Only the first
// value of x, y, dx and dy lists is used.
func (b *builder) textSpans(t *Text, e *element, style Style, ctx lengthCtx) {
	pending := b.textPos(e, ctx)
	b.collectSpans(t, e, style, ctx, &pending)
}

func (b *builder) textPos(e *element, ctx lengthCtx) textPos {
	first := func(name string, a axis) (float64, bool) {
		v, ok := e.attrs[name]
		if !ok {
			return 0, false
		}
		f := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		if len(f) == 0 {
			return 0, false
		}
		return parseLength(f[0], ctx, a)
	}
	var p textPos
	if x, ok := first("x", axisX); ok {
		p.x = &x
	}
	if y, ok := first("y", axisY); ok {
		p.y = &y
	}
	p.dx, _ = first("dx", axisX)
	p.dy, _ = first("dy", axisY)
	return p
}

func (b *builder) collectSpans(t *Text, e *element, style Style, ctx lengthCtx, pending *textPos) {
	preserve := e.attrs["xml:space"] == "preserve"
	for _, c := range e.children {
		switch c.name {
		case "#text":
			s := collapseSpace(c.text, preserve)
			if s == "" {
				continue
			}
			span := TextSpan{Text: s, Style: style}
			span.X, span.Y, span.DX, span.DY = pending.x, pending.y, pending.dx, pending.dy
			*pending = textPos{}
			t.Spans = append(t.Spans, span)
		case "tspan", "a":
			cs := style
			if !b.applyStyle(c, &cs, ctx) || !cs.visible() {
				continue
			}
			cctx := ctx
			cctx.fontSize = cs.FontSize
			own := b.textPos(c, cctx)
			if own.x == nil {
				own.x = pending.x
			}
			if own.y == nil {
				own.y = pending.y
			}
			own.dx += pending.dx
			own.dy += pending.dy
			*pending = textPos{}
			b.collectSpans(t, c, cs, cctx, &own)
		}
	}
}

// collapseSpace applies the default xml:space handling: newlines are
// removed, tabs become spaces and runs of spaces collapse to one.
func collapseSpace(s string, preserve bool) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range s {
		switch r {
		case '\n', '\r':
			if preserve {
				sb.WriteByte(' ')
			}
			continue
		case '\t':
			r = ' '
		}
		if r == ' ' && prevSpace && !preserve {
			continue
		}
		prevSpace = r == ' '
		sb.WriteRune(r)
	}
	return sb.String()
}

// trimSpans strips the leading and trailing space of the whole text,
// collapses spaces across span boundaries and drops spans left empty. An
// empty span's position moves to the next span.
func trimSpans(spans []TextSpan) []TextSpan {
	for i := range spans {
		if i > 0 && strings.HasSuffix(spans[i-1].Text, " ") {
			spans[i].Text = strings.TrimLeft(spans[i].Text, " ")
		}
	}
	if len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " ")
		spans[len(spans)-1].Text = strings.TrimRight(spans[len(spans)-1].Text, " ")
	}

	out := spans[:0]
	var carry *TextSpan
	for i := range spans {
		s := spans[i]
		if carry != nil {
			if s.X == nil {
				s.X = carry.X
			}
			if s.Y == nil {
				s.Y = carry.Y
			}
			s.DX += carry.DX
			s.DY += carry.DY
			carry = nil
		}
		if s.Text == "" {
			carry = &s
			continue
		}
		out = append(out, s)
	}
	return out
}

// laidSpan is a span converted to glyph outlines at its pen position.
type laidSpan struct {
	path  *vglite.Path
	style *Style
}

// text draws a text element. Spans whose font cannot be found are
// skipped, as are glyphs without an outline.
func (r *renderer) text(t *Text, m vglite.Matrix) error {
	if r.opts.fonts == nil || r.opts.fonts.Len() == 0 {
		vglite.Logger().Debug("svg: text skipped, no fonts", "id", t.ID)
		return nil
	}

	var (
		pen   vglite.Point
		chunk []laidSpan
		start float64
		anch  TextAnchor
	)
	flush := func() error {
		shift := 0.0
		switch anch {
		case AnchorMiddle:
			shift = -(pen.X - start) / 2
		case AnchorEnd:
			shift = -(pen.X - start)
		}
		for _, s := range chunk {
			p := s.path
			if shift != 0 {
				p = p.Transform(vglite.Translate(shift, 0))
			}
			if err := r.glyphs(p, s.style, m); err != nil {
				return err
			}
		}
		chunk = chunk[:0]
		return nil
	}

	for i := range t.Spans {
		s := &t.Spans[i]
		if s.X != nil || i == 0 {
			if err := flush(); err != nil {
				return err
			}
			if s.X != nil {
				pen.X = *s.X
			}
			start = pen.X + s.DX
			anch = s.Style.TextAnchor
		}
		if s.Y != nil {
			pen.Y = *s.Y
		}
		pen = pen.Add(vglite.Pt(s.DX, s.DY))

		face, ok := r.opts.fonts.Query(fontdb.Query{
			Families: s.Style.FontFamily,
			Weight:   s.Style.FontWeight,
			Italic:   s.Style.Italic,
		})
		if !ok {
			vglite.Logger().Debug("svg: no font for text", "families", s.Style.FontFamily)
			continue
		}
		p, adv := layoutSpan(face, s.Text, s.Style.FontSize, s.Style.Direction, pen)
		pen.X += adv
		if p != nil {
			chunk = append(chunk, laidSpan{path: p, style: &s.Style})
		}
	}
	return flush()
}

// glyphs fills and strokes the outlines of one span.
func (r *renderer) glyphs(p *vglite.Path, st *Style, m vglite.Matrix) error {
	if err := r.paint(p, vglite.FillNonZero, m, st.Fill, st.FillOpacity*st.Opacity); err != nil {
		return err
	}
	return r.stroke(p, st, m)
}

// layoutSpan shapes text with face at size and returns its outlines
// positioned with the baseline origin at pen, plus the total advance.
func layoutSpan(face *fontdb.Face, text string, size float64, direction string, pen vglite.Point) (*vglite.Path, float64) {
	base := bidi.Neutral
	switch direction {
	case "rtl":
		base = bidi.RightToLeft
	case "ltr":
		base = bidi.LeftToRight
	}
	runs := bidiRuns(text, base)

	b := vglite.NewPathBuilder()
	var buf sfnt.Buffer
	shaper := &shaping.HarfbuzzShaper{}
	ppem := fixed.Int26_6(size * 64)
	x := pen.X
	for _, rn := range runs {
		if len(rn.runes) == 0 {
			continue
		}
		dir := di.DirectionLTR
		if rn.rtl {
			dir = di.DirectionRTL
		}
		out := shaper.Shape(shaping.Input{
			Text:      rn.runes,
			RunStart:  0,
			RunEnd:    len(rn.runes),
			Direction: dir,
			Face:      font.NewFace(face.Shaping()),
			Size:      ppem,
			Script:    detectScript(rn.runes),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			if g.GlyphID != 0 {
				ox := x + fixedToFloat(g.XOffset)
				oy := pen.Y - fixedToFloat(g.YOffset)
				appendGlyph(b, face.Outlines(), &buf, sfnt.GlyphIndex(g.GlyphID), ppem, ox, oy)
			}
			x += fixedToFloat(g.Advance)
		}
	}
	p, err := b.Finish()
	if err != nil || p.Empty() {
		return nil, x - pen.X
	}
	return p, x - pen.X
}

type bidiRun struct {
	runes []rune
	rtl   bool
}

// bidiRuns splits text into directional runs in visual order. When the
// bidi analysis fails the whole text is one run in the base direction.
func bidiRuns(text string, base bidi.Direction) []bidiRun {
	if text == "" {
		return nil
	}
	whole := []bidiRun{{runes: []rune(text), rtl: base == bidi.RightToLeft}}
	var para bidi.Paragraph
	if _, err := para.SetString(text, bidi.DefaultDirection(base)); err != nil {
		vglite.Logger().Debug("svg: bidi setup failed", "err", err)
		return whole
	}
	ordering, err := para.Order()
	if err != nil {
		vglite.Logger().Debug("svg: bidi ordering failed", "err", err)
		return whole
	}
	runs := make([]bidiRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		br := ordering.Run(i)
		runs = append(runs, bidiRun{runes: []rune(br.String()), rtl: br.Direction() == bidi.RightToLeft})
	}
	return runs
}

// appendGlyph adds the outline of gid with its origin at (x, y). Glyphs
// the font cannot load are skipped.
func appendGlyph(b *vglite.PathBuilder, f *sfnt.Font, buf *sfnt.Buffer, gid sfnt.GlyphIndex, ppem fixed.Int26_6, x, y float64) {
	segs, err := f.LoadGlyph(buf, gid, ppem, nil)
	if err != nil {
		vglite.Logger().Debug("svg: glyph skipped", "glyph", gid, "err", err)
		return
	}
	pt := func(p fixed.Point26_6) (float64, float64) {
		return x + fixedToFloat(p.X), y + fixedToFloat(p.Y)
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				b.Close()
			}
			b.MoveTo(pt(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			b.LineTo(pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			px, py := pt(seg.Args[1])
			b.QuadTo(cx, cy, px, py)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			px, py := pt(seg.Args[2])
			b.CubicTo(c1x, c1y, c2x, c2y, px, py)
		}
	}
	if open {
		b.Close()
	}
}

// detectScript returns the script of the first letter, Latin when there
// is none.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsLetter(r) {
			return language.LookupScript(r)
		}
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
