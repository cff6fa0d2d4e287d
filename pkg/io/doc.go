// Package io reads and writes design files.
//
// # Overview
//
// A design file carries everything the antenna checker needs in one
// document: the technology (layers with their antenna rules, via
// definitions), the cell library (masters and pins with gate and diffusion
// areas), the placed instances, and each net's routing as a wire graph.
// Files are YAML or JSON with identical structure; the extension picks the
// decoder.
//
// # Format
//
//	name: top
//	dbu_per_micron: 1000
//	layers:
//	  - name: M1
//	    type: routing
//	    routing_level: 1
//	    width: 100
//	    antenna:
//	      par: 400
//	      diff_par: [{index: 0, ratio: 400}, {index: 1, ratio: 2200}]
//	  - name: V1
//	    type: cut
//	vias:
//	  - name: VIA12
//	    boxes: [{layer: V1, dx: 100, dy: 100}]
//	masters:
//	  - name: INV_X1
//	    pins:
//	      - {name: A, direction: input, gate_area: [{area: 0.05}]}
//	      - {name: Y, direction: output, diff_area: [{area: 0.1}]}
//	insts:
//	  - {name: u1, master: INV_X1}
//	nets:
//	  - name: n1
//	    nodes:
//	      - {id: a, x: 0, y: 0, layer: M1, pin: u1/A}
//	      - {id: b, x: 5000, y: 0, layer: M1}
//	    edges:
//	      - {from: a, to: b}
//
// Lengths and coordinates are database units; areas are square microns.
// An antenna rule's area_factor and side_area_factor default to 1. Edge
// kinds are segment (the default), short, via and tech_via; via edges name
// their definition.
//
// # Import
//
// Use [ImportDesign] to read a file by path or [ReadDesign] to read from
// any io.Reader. Every failure is an INVALID_DESIGN error naming the net,
// node or edge at fault.
//
// # Export
//
// [WriteDesign] and [ExportDesign] write a design back out. Wire node ids
// are regenerated, so a round trip preserves structure, not ids.
package io
