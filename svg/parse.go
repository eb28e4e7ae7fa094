package svg

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/gogpu/vglite"
)

// ErrInvalidDocument is returned for input that is not a well-formed SVG
// document. It matches vglite.ErrInvalidArgument with errors.Is.
var ErrInvalidDocument = fmt.Errorf("svg: invalid document: %w", vglite.ErrInvalidArgument)

// maxUseDepth bounds use and nested image expansion.
const maxUseDepth = 16

// element is a raw XML element. Character data is kept as children named
// "#text" so text content stays in document order.
type element struct {
	name     string
	attrs    map[string]string
	children []*element
	text     string
}

func (e *element) attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// href returns the href or xlink:href attribute.
func (e *element) href() string {
	return strings.TrimSpace(e.attrs["href"])
}

// Parse reads an SVG document. Input in encodings other than UTF-8 is
// decoded according to the XML declaration.
func Parse(r io.Reader) (*Document, error) {
	root, err := readTree(r)
	if err != nil {
		return nil, err
	}
	return buildDocument(root, 0)
}

// ParseBytes parses an in-memory SVG document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile parses the SVG document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("svg: open %s: %w: %w", path, vglite.ErrGenericIO, err)
	}
	defer f.Close()
	doc, err := Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("svg: parse %s: %w", path, err)
	}
	return doc, nil
}

func readTree(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity
	decoder.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				// xlink:href and href are equivalent; a plain href wins.
				if a.Name.Local == "href" && a.Name.Space != "" {
					if _, ok := el.attrs["href"]; ok {
						continue
					}
				}
				if a.Name.Space == "xml" || a.Name.Space == "http://www.w3.org/XML/1998/namespace" {
					el.attrs["xml:"+a.Name.Local] = a.Value
					continue
				}
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrInvalidDocument)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, &element{name: "#text", text: string(t)})
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrInvalidDocument)
	}
	if root.name != "svg" {
		return nil, fmt.Errorf("%w: root element is <%s>, want <svg>", ErrInvalidDocument, root.name)
	}
	return root, nil
}

// builder turns the raw tree into render nodes.
type builder struct {
	ids       map[string]*element
	gradients map[string]*Gradient
	resolving map[string]bool
	viewport  lengthCtx
	depth     int // nesting of use and embedded documents
}

func buildDocument(root *element, depth int) (*Document, error) {
	b := &builder{
		ids:       make(map[string]*element),
		gradients: make(map[string]*Gradient),
		resolving: make(map[string]bool),
		depth:     depth,
	}
	b.index(root)

	doc := &Document{}
	ctx := lengthCtx{fontSize: 16}
	if vb, ok := parseViewBox(root.attrs["viewBox"]); ok {
		doc.ViewBox = &vb
	}
	if w, ok := root.attr("width"); ok && !strings.HasSuffix(strings.TrimSpace(w), "%") {
		doc.Width, _ = parseLength(w, ctx, axisX)
	}
	if h, ok := root.attr("height"); ok && !strings.HasSuffix(strings.TrimSpace(h), "%") {
		doc.Height, _ = parseLength(h, ctx, axisY)
	}
	ctx.vpW, ctx.vpH = doc.Size()
	b.viewport = ctx

	style := defaultStyle()
	if !b.applyStyle(root, &style, ctx) {
		doc.Root = &Group{Transform: vglite.Identity()}
		return doc, nil
	}
	ctx.fontSize = style.FontSize
	doc.Root = &Group{
		ID:        root.attrs["id"],
		Transform: vglite.Identity(),
		Children:  b.children(root, style, ctx),
	}
	return doc, nil
}

func (b *builder) index(e *element) {
	if id := strings.TrimSpace(e.attrs["id"]); id != "" {
		if _, dup := b.ids[id]; !dup {
			b.ids[id] = e
		}
	}
	for _, c := range e.children {
		b.index(c)
	}
}

func (b *builder) children(e *element, style Style, ctx lengthCtx) []Node {
	var out []Node
	for _, c := range e.children {
		if n := b.node(c, style, ctx); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// node builds one element, or returns nil for elements that draw nothing.
func (b *builder) node(e *element, parent Style, ctx lengthCtx) Node {
	switch e.name {
	case "#text", "defs", "title", "desc", "metadata", "linearGradient",
		"radialGradient", "stop", "symbol", "clipPath", "mask", "marker",
		"pattern", "filter":
		return nil
	case "style", "script":
		vglite.Logger().Debug("svg: element ignored", "element", e.name)
		return nil
	}

	style := parent
	if !b.applyStyle(e, &style, ctx) {
		return nil
	}
	ctx.fontSize = style.FontSize
	m := b.transform(e)

	switch e.name {
	case "g", "a", "switch":
		return &Group{ID: e.attrs["id"], Transform: m, Children: b.children(e, style, ctx)}
	case "svg":
		return b.nestedSVG(e, style, ctx, m)
	case "use":
		return b.use(e, style, ctx, m)
	case "path", "rect", "circle", "ellipse", "line", "polyline", "polygon":
		p := b.shapePath(e, ctx)
		if p == nil || p.Empty() || !style.visible() {
			return nil
		}
		return &Shape{ID: e.attrs["id"], Transform: m, Path: p, Style: style}
	case "text":
		if !style.visible() {
			return nil
		}
		t := &Text{ID: e.attrs["id"], Transform: m}
		b.textSpans(t, e, style, ctx)
		t.Spans = trimSpans(t.Spans)
		if len(t.Spans) == 0 {
			return nil
		}
		return t
	case "image":
		if !style.visible() {
			return nil
		}
		return b.image(e, style, ctx, m)
	}
	vglite.Logger().Debug("svg: unsupported element skipped", "element", e.name)
	return nil
}

func (b *builder) transform(e *element) vglite.Matrix {
	s, ok := e.attr("transform")
	if !ok {
		return vglite.Identity()
	}
	m, err := parseTransform(s)
	if err != nil {
		vglite.Logger().Debug("svg: bad transform ignored", "element", e.name, "err", err)
		return vglite.Identity()
	}
	return m
}

// nestedSVG maps an inner svg element's viewBox onto its viewport.
func (b *builder) nestedSVG(e *element, style Style, ctx lengthCtx, m vglite.Matrix) Node {
	x, _ := parseLength(e.attrs["x"], ctx, axisX)
	y, _ := parseLength(e.attrs["y"], ctx, axisY)
	w, okW := parseLength(e.attrs["width"], ctx, axisX)
	h, okH := parseLength(e.attrs["height"], ctx, axisY)
	if !okW {
		w = ctx.vpW
	}
	if !okH {
		h = ctx.vpH
	}
	inner := vglite.Translate(x, y)
	if vb, ok := parseViewBox(e.attrs["viewBox"]); ok {
		if vb.Empty() {
			return nil
		}
		inner = inner.Multiply(viewBoxMatrix(vb, w, h))
		ctx.vpW, ctx.vpH = vb.Width, vb.Height
	} else {
		ctx.vpW, ctx.vpH = w, h
	}
	return &Group{ID: e.attrs["id"], Transform: m.Multiply(inner), Children: b.children(e, style, ctx)}
}

// use instantiates the referenced element in place.
func (b *builder) use(e *element, style Style, ctx lengthCtx, m vglite.Matrix) Node {
	ref := strings.TrimPrefix(e.href(), "#")
	target, ok := b.ids[ref]
	if !ok || ref == "" {
		vglite.Logger().Debug("svg: use of unknown element", "href", e.href())
		return nil
	}
	if b.depth >= maxUseDepth || b.resolving["use:"+ref] {
		vglite.Logger().Warn("svg: recursive use skipped", "href", ref)
		return nil
	}
	b.resolving["use:"+ref] = true
	b.depth++
	defer func() {
		b.depth--
		delete(b.resolving, "use:"+ref)
	}()

	x, _ := parseLength(e.attrs["x"], ctx, axisX)
	y, _ := parseLength(e.attrs["y"], ctx, axisY)
	m = m.Multiply(vglite.Translate(x, y))

	var child Node
	if target.name == "symbol" {
		inner := style
		if !b.applyStyle(target, &inner, ctx) {
			return nil
		}
		sm := b.transform(target)
		if vb, ok := parseViewBox(target.attrs["viewBox"]); ok {
			if vb.Empty() {
				return nil
			}
			w, okW := parseLength(e.attrs["width"], ctx, axisX)
			h, okH := parseLength(e.attrs["height"], ctx, axisY)
			if !okW {
				w = vb.Width
			}
			if !okH {
				h = vb.Height
			}
			sm = sm.Multiply(viewBoxMatrix(vb, w, h))
		}
		child = &Group{ID: target.attrs["id"], Transform: sm, Children: b.children(target, inner, ctx)}
	} else {
		child = b.node(target, style, ctx)
	}
	if child == nil {
		return nil
	}
	return &Group{ID: e.attrs["id"], Transform: m, Children: []Node{child}}
}

// shapePath converts a basic shape or path element to a path.
func (b *builder) shapePath(e *element, ctx lengthCtx) *vglite.Path {
	num := func(name string, a axis) float64 {
		v, _ := parseLength(e.attrs[name], ctx, a)
		return v
	}
	pb := vglite.NewPathBuilder()

	switch e.name {
	case "path":
		p, err := ParsePathData(e.attrs["d"])
		if err != nil {
			vglite.Logger().Debug("svg: path data truncated", "id", e.attrs["id"], "err", err)
		}
		return p
	case "rect":
		w, h := num("width", axisX), num("height", axisY)
		if w <= 0 || h <= 0 {
			return nil
		}
		rx, okX := parseLength(e.attrs["rx"], ctx, axisX)
		ry, okY := parseLength(e.attrs["ry"], ctx, axisY)
		switch {
		case okX && !okY:
			ry = rx
		case okY && !okX:
			rx = ry
		}
		pb.RoundRect(num("x", axisX), num("y", axisY), w, h, rx, ry)
	case "circle":
		r := num("r", axisDiag)
		if r <= 0 {
			return nil
		}
		pb.Circle(num("cx", axisX), num("cy", axisY), r)
	case "ellipse":
		rx, okX := parseLength(e.attrs["rx"], ctx, axisX)
		ry, okY := parseLength(e.attrs["ry"], ctx, axisY)
		switch {
		case okX && !okY:
			ry = rx
		case okY && !okX:
			rx = ry
		}
		if rx <= 0 || ry <= 0 {
			return nil
		}
		pb.Ellipse(num("cx", axisX), num("cy", axisY), rx, ry)
	case "line":
		pb.MoveTo(num("x1", axisX), num("y1", axisY)).LineTo(num("x2", axisX), num("y2", axisY))
	case "polyline", "polygon":
		pts, ok := parseNumberList(e.attrs["points"])
		if !ok {
			vglite.Logger().Debug("svg: bad points", "element", e.name)
		}
		if len(pts) < 4 {
			return nil
		}
		pb.MoveTo(pts[0], pts[1])
		for i := 2; i+1 < len(pts); i += 2 {
			pb.LineTo(pts[i], pts[i+1])
		}
		if e.name == "polygon" {
			pb.Close()
		}
	}
	p, err := pb.Finish()
	if err != nil {
		vglite.Logger().Debug("svg: shape skipped", "element", e.name, "err", err)
		return nil
	}
	return p
}

// parseViewBox reports ok for four numbers with non-negative size. A
// negative size makes the attribute invalid; a zero size is kept and
// disables rendering of the element.
func parseViewBox(s string) (ViewBox, bool) {
	v, ok := parseNumberList(s)
	if !ok || len(v) != 4 || v[2] < 0 || v[3] < 0 {
		return ViewBox{}, false
	}
	return ViewBox{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, true
}

// viewBoxMatrix maps vb onto a w×h viewport, scaling each axis
// independently.
func viewBoxMatrix(vb ViewBox, w, h float64) vglite.Matrix {
	return vglite.Scale(w/vb.Width, h/vb.Height).Multiply(vglite.Translate(-vb.X, -vb.Y))
}
