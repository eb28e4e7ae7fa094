package svg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif" // register decoders for data URIs
	_ "image/jpeg"
	_ "image/png"
	"math"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/vglite"
)

// AspectRatio is a parsed preserveAspectRatio value. Align is the
// fractional position (0, 0.5 or 1) of the content on each axis.
type AspectRatio struct {
	None           bool
	AlignX, AlignY float64
	Slice          bool
}

func parseAspectRatio(s string) AspectRatio {
	ar := AspectRatio{AlignX: 0.5, AlignY: 0.5}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ar
	}
	if fields[0] == "defer" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return ar
	}
	align := fields[0]
	if align == "none" {
		ar.None = true
		return ar
	}
	if len(align) == 8 {
		pos := map[string]float64{"Min": 0, "Mid": 0.5, "Max": 1}
		if v, ok := pos[align[1:4]]; ok {
			ar.AlignX = v
		}
		if v, ok := pos[align[5:8]]; ok {
			ar.AlignY = v
		}
	}
	ar.Slice = len(fields) > 1 && fields[1] == "slice"
	return ar
}

// placement maps content of size cw×ch into the w×h box at (x, y).
func (ar AspectRatio) placement(x, y, w, h, cw, ch float64) vglite.Matrix {
	sx, sy := w/cw, h/ch
	if ar.None {
		return vglite.Translate(x, y).Multiply(vglite.Scale(sx, sy))
	}
	s := math.Min(sx, sy)
	if ar.Slice {
		s = math.Max(sx, sy)
	}
	tx := x + (w-cw*s)*ar.AlignX
	ty := y + (h-ch*s)*ar.AlignY
	return vglite.Translate(tx, ty).Multiply(vglite.Scale(s, s))
}

// image decodes an image element. Only data URIs are supported.
func (b *builder) image(e *element, style Style, ctx lengthCtx, m vglite.Matrix) Node {
	href := e.href()
	mime, data, err := decodeDataURI(href)
	if err != nil {
		vglite.Logger().Debug("svg: image skipped", "href", truncate(href, 64), "err", err)
		return nil
	}

	img := &Image{
		ID:        e.attrs["id"],
		Transform: m,
		Opacity:   style.Opacity,
		Aspect:    parseAspectRatio(e.attrs["preserveAspectRatio"]),
	}
	var cw, ch float64
	if mime == "image/svg+xml" {
		if b.depth >= maxUseDepth {
			vglite.Logger().Warn("svg: nested image depth exceeded")
			return nil
		}
		tree, err := readTree(bytes.NewReader(data))
		if err != nil {
			vglite.Logger().Debug("svg: embedded svg skipped", "err", err)
			return nil
		}
		doc, err := buildDocument(tree, b.depth+1)
		if err != nil {
			vglite.Logger().Debug("svg: embedded svg skipped", "err", err)
			return nil
		}
		img.SVG = doc
		cw, ch = doc.Size()
	} else {
		raster, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			vglite.Logger().Debug("svg: image decode failed", "mime", mime, "err", err)
			return nil
		}
		img.Raster = raster
		cw, ch = float64(raster.Bounds().Dx()), float64(raster.Bounds().Dy())
	}

	img.X, _ = parseLength(e.attrs["x"], ctx, axisX)
	img.Y, _ = parseLength(e.attrs["y"], ctx, axisY)
	w, okW := parseLength(e.attrs["width"], ctx, axisX)
	h, okH := parseLength(e.attrs["height"], ctx, axisY)
	switch {
	case !okW && !okH:
		w, h = cw, ch
	case !okW && ch > 0:
		w = h * cw / ch
	case !okH && cw > 0:
		h = w * ch / cw
	}
	if w <= 0 || h <= 0 || cw <= 0 || ch <= 0 {
		return nil
	}
	img.Width, img.Height = w, h
	img.contentW, img.contentH = cw, ch
	return img
}

// decodeDataURI splits "data:[mime][;base64],payload".
func decodeDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(uri), "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: only data URIs are supported", vglite.ErrNotSupported)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: data URI without payload", vglite.ErrInvalidArgument)
	}
	params := strings.Split(meta, ";")
	mime = strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := false
	for _, p := range params[1:] {
		if strings.TrimSpace(p) == "base64" {
			isBase64 = true
		}
	}
	if !isBase64 {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", vglite.ErrInvalidArgument, err)
		}
		return mime, []byte(s), nil
	}
	payload = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		return r
	}, payload)
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", vglite.ErrInvalidArgument, err)
	}
	return mime, data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// image draws an image element. Embedded documents are rendered into a
// scratch RGBA8888 buffer at device resolution and then blitted.
func (r *renderer) image(img *Image, m vglite.Matrix) error {
	if img.Opacity <= 0 {
		return nil
	}
	place := m.Multiply(img.Aspect.placement(img.X, img.Y, img.Width, img.Height, img.contentW, img.contentH))

	var src *vglite.Buffer
	var srcM vglite.Matrix
	if img.SVG != nil {
		s := math.Max(place.ScaleFactor(), 1e-3)
		w := int(math.Ceil(img.contentW * s))
		h := int(math.Ceil(img.contentH * s))
		scratch, err := vglite.NewBuffer(w, h, vglite.FormatRGBA8888)
		if err != nil {
			return fmt.Errorf("image scratch: %w", err)
		}
		defer scratch.Free()
		inner := renderOptions{
			fillRule:   r.opts.fillRule,
			blend:      vglite.BlendSrcOver,
			quality:    r.opts.quality,
			fonts:      r.opts.fonts,
			background: vglite.Transparent,
		}
		if err := renderInto(scratch, img.SVG, inner); err != nil {
			return err
		}
		src = scratch
		srcM = place.Multiply(vglite.Scale(img.contentW/float64(w), img.contentH/float64(h)))
	} else {
		buf, err := vglite.FromImage(img.Raster)
		if err != nil {
			return fmt.Errorf("image: %w", err)
		}
		src = buf
		srcM = place
	}

	if img.Opacity >= 1 {
		return vglite.Blit(r.target, src, srcM, r.opts.blend, vglite.FilterBilinear, r.draw...)
	}
	paint, err := vglite.NewImagePaint(src, srcM, vglite.FilterBilinear)
	if err != nil {
		return err
	}
	faded := vglite.PaintFunc(func(x, y float64) vglite.RGBA {
		c := paint.ColorAt(x, y)
		return c.WithAlpha(img.Opacity)
	})
	rect, err := vglite.NewPathBuilder().Rect(0, 0, float64(src.Width), float64(src.Height)).Finish()
	if err != nil {
		return err
	}
	return vglite.DrawPaint(r.target, rect, vglite.FillNonZero, srcM, r.opts.blend, faded, r.draw...)
}
