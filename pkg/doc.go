// Package pkg provides the core libraries for antcheck, a process antenna
// rule checker for routed IC designs.
//
// # Overview
//
// During fabrication, long metal runs connected to a transistor gate collect
// charge before the upper layers that would discharge them exist. Antenna
// rules bound the ratio of exposed metal area to gate area per layer. The
// pkg directory is organized into these areas:
//
//  1. [design] - Design model (technology layers and rules, cells, nets, wire graphs)
//  2. [io] - YAML and JSON design files
//  3. [antenna] - The checker (ratio tables, rule evaluation, reports, diodes)
//  4. [render] - Wire graph diagrams and SVG conversion
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through antcheck:
//
//	Design file (YAML/JSON)
//	         ↓
//	    [io] package (decode, validate wire graphs)
//	         ↓
//	    [design] package (Tech + netlist + per-net WireGraph)
//	         ↓
//	    [antenna] package (wireroots → PAR table → CAR table → verdicts)
//	         ↓
//	    Text report, length margins, diode estimates
//
// # Quick Start
//
// Load a design and write the antenna report:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/antcheck/pkg/antenna"
//	    "github.com/matzehuels/antcheck/pkg/io"
//	)
//
//	d, err := io.ImportDesign(ctx, "top.yaml")
//	if err != nil {
//	    return err
//	}
//	res, err := antenna.New(d).CheckFile(ctx, "antenna.rpt", antenna.ReportOptions{})
//	fmt.Println(res.Summary.ViolatedNets, "nets violated")
//
// [design]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/design
// [io]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/io
// [antenna]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/antenna
// [render]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/antcheck/pkg/buildinfo
package pkg
