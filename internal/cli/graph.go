package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcheck/pkg/antenna"
	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
	"github.com/matzehuels/antcheck/pkg/render/nodelink"
)

// Graph output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// graphOpts holds options for the graph command.
type graphOpts struct {
	output   string
	format   string
	detailed bool
}

// graphCommand creates the graph command for drawing a net's wire graph.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [design] [net]",
		Short: "Draw a net's wire graph",
		Long: `Graph writes the wire graph of one net as a node-link diagram.

Nodes are colored by routing level, wireroots get a bold outline and gate
terminals a double outline. Nodes of violated wireroots are drawn red.
PDF and PNG output need rsvg-convert (librsvg) on the PATH.`,
		Example: `  antcheck graph top.yaml n1
  antcheck graph top.yaml n1 -o n1.svg --detailed`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, d, err := c.newChecker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			net := d.Net(args[1])
			if net == nil {
				return errs.New(errs.ErrCodeNetNotFound, "net %q not found", args[1])
			}
			format := opts.format
			if format == "" {
				format = formatFromOutput(opts.output)
			}

			res, err := checker.CheckNet(net.Name)
			if err != nil {
				return err
			}
			dot := nodelink.ToDOT(net, graphOptions(net, res, opts.detailed))
			data, err := renderGraph(dot, format)
			if err != nil {
				return err
			}

			if opts.output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return errs.Wrap(errs.ErrCodeReportIO, err, "write %s", opts.output)
			}
			printSuccess("Wrote %s graph of %s", strings.ToUpper(format), net.Name)
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot, svg, pdf, png (default from the output extension)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label nodes with layer and coordinates")

	return cmd
}

// graphOptions marks the net's wireroots and every node of a violated
// wireroot.
func graphOptions(net *design.Net, res antenna.NetResult, detailed bool) nodelink.Options {
	opts := nodelink.Options{Detailed: detailed}
	if net.Wire == nil {
		return opts
	}
	opts.Roots = antenna.Wireroots(net.Wire)

	bad := make(map[design.NodeID]bool)
	for _, g := range res.Gates {
		for _, rec := range g.Wire {
			if rec.Violated() {
				bad[rec.Root] = true
			}
		}
		// Via records are keyed by the wireroot below the via.
		for _, rec := range g.Via {
			if rec.Violated() {
				bad[rec.Root] = true
			}
		}
	}
	for i := range net.Wire.NodeCount() {
		id := design.NodeID(i)
		level := net.Wire.Level(id)
		if level == 0 {
			continue
		}
		if bad[antenna.FindSegmentRoot(net.Wire, id, level)] {
			opts.Violated = append(opts.Violated, id)
		}
	}
	return opts
}

func formatFromOutput(path string) string {
	switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
	case formatSVG, formatPDF, formatPNG:
		return ext
	default:
		return formatDOT
	}
}

func renderGraph(dot, format string) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return nodelink.RenderSVG(dot)
	case formatPDF:
		return nodelink.RenderPDF(dot)
	case formatPNG:
		return nodelink.RenderPNG(dot, 2.0)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported graph format %q", format)
	}
}
