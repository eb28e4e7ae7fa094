// Package vglite is a software 2D vector rasterizer with a small,
// buffer-oriented drawing API.
//
// # Overview
//
// vglite fills vector paths into caller-owned pixel buffers. A path is
// built once with [PathBuilder], then drawn any number of times with an
// affine [Matrix], a [FillRule], a [BlendMode] and a paint: a solid
// [RGBA], a [LinearGradient], a [RadialGradient], or any [Paint]. Image
// buffers are composited with [Blit].
//
// The svg sub-package parses SVG documents and renders them through this
// API; fontdb supplies the fonts for SVG text.
//
// # Quick Start
//
//	buf, err := vglite.NewBuffer(256, 256, vglite.FormatBGRA8888)
//	if err != nil {
//	    return err
//	}
//	defer buf.Free()
//
//	buf.Clear(nil, vglite.White)
//
//	p, err := vglite.NewPathBuilder().
//	    MoveTo(16, 16).LineTo(240, 16).LineTo(128, 240).Close().
//	    Finish()
//	if err != nil {
//	    return err
//	}
//	err = vglite.Draw(buf, p, vglite.FillNonZero, vglite.Identity(),
//	    vglite.BlendSrcOver, vglite.RGB(1, 0, 0))
//
// # Architecture
//
// The library is organized into:
//   - Public API: Buffer, Format, Path, Matrix, paints, Draw and Blit
//   - Internal: raster (scanline coverage), path (flattening), blend
//     (compositing), color (sRGB and linear conversion)
//
// # Errors
//
// Every failure wraps one of the sentinel errors such as
// [ErrInvalidArgument] or [ErrMalformedPath]. [Code] maps an error to
// its [ErrorCode], which mirrors the status codes of the GPU driver API
// this package stands in for.
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left pixel corner
//   - X increases right
//   - Y increases down
//   - Pixel centers sit at half-integer coordinates
package vglite
