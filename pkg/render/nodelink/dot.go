package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
	"github.com/matzehuels/antcheck/pkg/render"
)

// Options configures wire graph rendering.
type Options struct {
	// Detailed adds coordinates and layer names to node labels.
	// When false, only the node id and pin are shown.
	Detailed bool

	// Roots are drawn with a bold outline.
	Roots []design.NodeID

	// Violated are drawn filled red.
	Violated []design.NodeID
}

// levelColors cycles through fill colors by routing level.
var levelColors = []string{"#e8f1fb", "#fdf1dc", "#e6f5e9", "#f3e8fa", "#fbe9e7", "#eceff1"}

// ToDOT converts a net's wire graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Nodes are colored by routing level and gate nodes get a double outline.
// Via edges are dashed and labeled with the via name. An unrouted net
// yields an empty graph.
func ToDOT(net *design.Net, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", net.Name)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.05\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")

	g := net.Wire
	if g == nil {
		buf.WriteString("}\n")
		return buf.String()
	}
	roots := nodeSet(opts.Roots)
	violated := nodeSet(opts.Violated)

	buf.WriteString("\n")
	for i := range g.NodeCount() {
		id := design.NodeID(i)
		attrs := fmtAttrs(g, id, fmtLabel(g, id, opts.Detailed), roots[id], violated[id])
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(id), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range g.EdgeCount() {
		e := g.Edge(design.EdgeID(i))
		var attrs []string
		if e.Kind.IsVia() {
			attrs = append(attrs, "style=dashed")
			if e.Via != nil {
				attrs = append(attrs, fmt.Sprintf("label=%q", e.Via.Name))
			}
		} else if e.Kind == design.EdgeShort {
			attrs = append(attrs, "style=dotted")
		}
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeName(e.Source), nodeName(e.Target))
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", nodeName(e.Source), nodeName(e.Target), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id design.NodeID) string { return "n" + strconv.Itoa(int(id)) }

func nodeSet(ids []design.NodeID) map[design.NodeID]bool {
	m := make(map[design.NodeID]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func fmtLabel(g *design.WireGraph, id design.NodeID, detailed bool) string {
	parts := []string{nodeName(id)}
	if it := g.ITerm(id); it != nil {
		parts = append(parts, it.Name())
	}
	if detailed {
		n := g.Node(id)
		parts = append(parts, fmt.Sprintf("%s (%d, %d)", n.Layer.Name, n.X, n.Y))
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(g *design.WireGraph, id design.NodeID, label string, root, violated bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case violated:
		attrs = append(attrs, "fillcolor=\"#f8bbb8\"")
	default:
		level := g.Level(id)
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", levelColors[max(level-1, 0)%len(levelColors)]))
	}
	if root {
		attrs = append(attrs, "penwidth=2.5")
	}
	if it := g.ITerm(id); it != nil && it.MTerm.IsAntennaGate() {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "parse DOT")
	}
	if g == nil {
		return nil, errs.New(errs.ErrCodeInternal, "parse DOT: no graph")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag to a zero-origin viewBox with
// matching width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
