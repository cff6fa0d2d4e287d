// Package nodelink renders a net's wire graph as a node-link diagram.
//
// # Overview
//
// Each wire node becomes a box and each wire edge an arrow in the edge's
// direction, so a drawing shows how a router decoded a net: which runs sit
// on which layer, where the vias are, and which nodes land on pins. It is
// a debugging aid for antenna reports.
//
// # Usage
//
// Convert a net to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(net, nodelink.Options{Roots: antenna.Wireroots(net.Wire)})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)
//
// # Styling
//
//   - Fill color follows the routing level; violated nodes are red
//   - Wireroots get a bold outline, gate terminals a double outline
//   - Via edges are dashed and labeled with the via name; shorts are dotted
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
