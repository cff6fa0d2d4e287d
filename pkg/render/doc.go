// Package render converts rendered diagrams between output formats.
//
// # Overview
//
// Diagram renderers (see the [nodelink] subpackage) produce SVG. The
// [ToPDF] and [ToPNG] functions convert that SVG using the external
// rsvg-convert tool from librsvg:
//
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// rsvg-convert must be on PATH; the error explains how to install it
// otherwise.
package render
