// Package svg parses SVG documents and renders them into vglite buffers.
//
// Parse builds an immutable Document tree from XML. Render walks that tree
// in document order and fills every shape, stroke, text run and image
// into a target Buffer with the root package's rasterizer. A Document may
// be rendered any number of times, concurrently, into independent buffers.
package svg

import (
	"image"

	"github.com/gogpu/vglite"
)

// ViewBox is the user-space rectangle mapped onto the viewport.
type ViewBox struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports a zero width or height. An element with an empty viewBox
// is not rendered.
func (vb ViewBox) Empty() bool {
	return vb.Width == 0 || vb.Height == 0
}

// Document is a parsed SVG document.
type Document struct {
	// Width and Height are the intrinsic size in pixels, 0 when absent
	// or given as a percentage.
	Width, Height float64
	// ViewBox is nil when the root element has none.
	ViewBox *ViewBox
	Root    *Group
}

// Size returns the intrinsic size, falling back to the viewBox size.
func (d *Document) Size() (w, h float64) {
	w, h = d.Width, d.Height
	if d.ViewBox != nil {
		if w == 0 {
			w = d.ViewBox.Width
		}
		if h == 0 {
			h = d.ViewBox.Height
		}
	}
	return w, h
}

// Node is an element of the render tree: *Group, *Shape, *Text or *Image.
type Node interface {
	node()
}

// Group is a container (svg, g, a, switch, or an instantiated use).
// Its opacity is already folded into the styles of its descendants.
type Group struct {
	ID        string
	Transform vglite.Matrix
	Children  []Node
}

// Shape is any element that reduces to a path.
type Shape struct {
	ID        string
	Transform vglite.Matrix
	Path      *vglite.Path
	Style     Style
}

// Text is a text element. Each span carries its own style and position.
type Text struct {
	ID        string
	Transform vglite.Matrix
	Spans     []TextSpan
}

// TextSpan is a run of characters from a text or tspan element. X and Y
// are absolute positions when set; otherwise the span continues from the
// end of the previous one.
type TextSpan struct {
	X, Y   *float64
	DX, DY float64
	Text   string
	Style  Style
}

// Image is an image element with its content decoded at parse time.
// Exactly one of Raster and SVG is set.
type Image struct {
	ID                  string
	Transform           vglite.Matrix
	X, Y, Width, Height float64
	Opacity             float64
	Aspect              AspectRatio
	Raster              image.Image
	SVG                 *Document

	contentW, contentH float64
}

func (*Group) node() {}
func (*Shape) node() {}
func (*Text) node()  {}
func (*Image) node() {}

// PaintKind says how a fill or stroke is painted.
type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintColor
	PaintGradient
)

// Paint is a resolved fill or stroke paint.
type Paint struct {
	Kind     PaintKind
	Color    vglite.RGBA
	Gradient *Gradient
	// Fallback is used when Gradient cannot be resolved.
	Fallback *vglite.RGBA
}

// Units is a gradient coordinate system.
type Units int

const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

// Gradient is a resolved linearGradient or radialGradient with all href
// inheritance applied. Coordinates are in Units.
type Gradient struct {
	ID     string
	Radial bool
	Units  Units

	X1, Y1, X2, Y2 float64 // linear
	CX, CY, R      float64 // radial
	FX, FY         float64

	Stops     []vglite.ColorStop
	Transform vglite.Matrix
	Spread    vglite.SpreadMode
}

// LineCap is a stroke-linecap value.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is a stroke-linejoin value.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// TextAnchor is a text-anchor value.
type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

// Style holds the computed presentation properties of an element.
// Opacity is the product of the element's opacity and every ancestor's.
type Style struct {
	Fill        Paint
	FillOpacity float64
	FillRule    *vglite.FillRule // nil means the render default

	Stroke        Paint
	StrokeOpacity float64
	StrokeWidth   float64
	LineCap       LineCap
	LineJoin      LineJoin
	MiterLimit    float64
	DashArray     []float64
	DashOffset    float64

	Opacity float64

	FontFamily []string
	FontSize   float64
	FontWeight int
	Italic     bool
	TextAnchor TextAnchor
	Direction  string // "ltr", "rtl" or empty for auto

	color  vglite.RGBA // currentColor
	hidden bool
}

func defaultStyle() Style {
	return Style{
		Fill:          Paint{Kind: PaintColor, Color: vglite.Black},
		FillOpacity:   1,
		StrokeOpacity: 1,
		StrokeWidth:   1,
		MiterLimit:    4,
		Opacity:       1,
		FontFamily:    []string{"sans-serif"},
		FontSize:      16,
		FontWeight:    400,
		color:         vglite.Black,
	}
}
