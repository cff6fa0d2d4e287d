// Package design models a routed block as the antenna checker sees it.
//
// # Overview
//
// A [Design] bundles the technology ([Tech]: layers, antenna rules, via
// definitions), the cell library ([Master], [MTerm]), the placed instances
// ([Inst]) and the nets. Each routed [Net] carries its decoded wiring as a
// [WireGraph].
//
// # Wire Graphs
//
// A wire graph is a forest of points joined by typed edges. SEGMENT and SHORT
// edges stay on one layer; VIA and TECH_VIA edges climb between layers and
// reference a [Via]. Every node has at most one incoming edge, so following
// incoming edges from any node walks back to the start of its path:
//
//	g := design.NewWireGraph()
//	a, _ := g.AddNode(design.Node{X: 0, Y: 0, Layer: m1})
//	b, _ := g.AddNode(design.Node{X: 2000, Y: 0, Layer: m1})
//	g.AddEdge(design.Edge{Kind: design.EdgeSegment, Source: a, Target: b})
//
// Nodes and edges live in arenas and are addressed by [NodeID] and [EdgeID].
// Traversals key their visited sets with a [Bitset] sized to
// [WireGraph.NodeCount] and their derived tables by [NodeID].
//
// # Units
//
// Coordinates, widths, thicknesses and via box sizes are integer database
// units. [Tech.Microns] converts them. Gate and diffusion areas on pins are
// already in square microns.
//
// # Concurrency
//
// A fully built design is read-only and safe to share between goroutines.
// Building one is not.
package design
