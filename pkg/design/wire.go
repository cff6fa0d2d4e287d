package design

import (
	"errors"
)

var (
	// ErrMissingLayer is returned by [WireGraph.AddNode] when the node has
	// no routing layer. Every wire node sits on exactly one layer.
	ErrMissingLayer = errors.New("node layer must not be nil")

	// ErrUnknownSourceNode is returned by [WireGraph.AddEdge] when the
	// source node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [WireGraph.AddEdge] when the
	// target node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrMultipleIncoming is returned by [WireGraph.AddEdge] when the target
	// already has an incoming edge. Decoded wires are trees rooted at the
	// start of each path, so a node is entered at most once.
	ErrMultipleIncoming = errors.New("node already has an incoming edge")

	// ErrMissingVia is returned by [WireGraph.AddEdge] when a VIA or
	// TECH_VIA edge carries no via definition.
	ErrMissingVia = errors.New("via edge must reference a via definition")

	// ErrInvalidEdgeEndpoint is returned by [WireGraph.Validate] when an
	// edge references a node outside the arena.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrInEdgeCycle is returned by [WireGraph.Validate] when following
	// incoming edges from some node never reaches a node without one.
	ErrInEdgeCycle = errors.New("wire graph contains a cycle")
)

// NodeID indexes a node in its graph's arena.
type NodeID int32

// EdgeID indexes an edge in its graph's arena.
type EdgeID int32

// NoNode and NoEdge mark an absent node or edge.
const (
	NoNode NodeID = -1
	NoEdge EdgeID = -1
)

// EdgeKind is the wire-graph edge type.
type EdgeKind int

const (
	// EdgeSegment is a wire segment within one layer.
	EdgeSegment EdgeKind = iota
	// EdgeShort is a zero-width short within one layer.
	EdgeShort
	// EdgeVia crosses layers through a DEF via.
	EdgeVia
	// EdgeTechVia crosses layers through a LEF via.
	EdgeTechVia
)

// IsVia reports whether the edge crosses layers.
func (k EdgeKind) IsVia() bool { return k == EdgeVia || k == EdgeTechVia }

// String returns the edge type name used in design files.
func (k EdgeKind) String() string {
	switch k {
	case EdgeSegment:
		return "segment"
	case EdgeShort:
		return "short"
	case EdgeVia:
		return "via"
	case EdgeTechVia:
		return "tech_via"
	}
	return "unknown"
}

// Node is a point of a decoded wire.
type Node struct {
	X, Y  int
	Layer *Layer

	// ITerm is the instance terminal the node lands on, or nil.
	ITerm *ITerm

	in  EdgeID
	out []EdgeID
}

// Level returns the routing level of the node's layer.
func (n *Node) Level() int { return n.Layer.RoutingLevel }

// Edge connects a source node to a target node.
type Edge struct {
	Kind   EdgeKind
	Source NodeID
	Target NodeID

	// Via is the via definition for VIA and TECH_VIA edges.
	Via *Via
}

// WireGraph is a net's decoded routing stored as an arena.
//
// Node and edge identity is the arena index, so callers key visited sets
// and derived tables by [NodeID]. The zero value is not usable; call
// [NewWireGraph]. WireGraph is not safe for concurrent mutation.
type WireGraph struct {
	nodes []Node
	edges []Edge
}

// NewWireGraph creates an empty wire graph.
func NewWireGraph() *WireGraph {
	return &WireGraph{}
}

// AddNode appends a node and returns its ID.
// Returns ErrMissingLayer if the node has no layer.
func (g *WireGraph) AddNode(n Node) (NodeID, error) {
	if n.Layer == nil {
		return NoNode, ErrMissingLayer
	}
	n.in = NoEdge
	n.out = nil
	g.nodes = append(g.nodes, n)
	return NodeID(len(g.nodes) - 1), nil
}

// AddEdge appends a directed edge and wires it into both endpoints.
// Returns ErrUnknownSourceNode, ErrUnknownTargetNode, ErrMultipleIncoming
// or ErrMissingVia when the edge cannot be added.
func (g *WireGraph) AddEdge(e Edge) (EdgeID, error) {
	if !g.valid(e.Source) {
		return NoEdge, ErrUnknownSourceNode
	}
	if !g.valid(e.Target) {
		return NoEdge, ErrUnknownTargetNode
	}
	if g.nodes[e.Target].in != NoEdge {
		return NoEdge, ErrMultipleIncoming
	}
	if e.Kind.IsVia() && e.Via == nil {
		return NoEdge, ErrMissingVia
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.nodes[e.Target].in = id
	g.nodes[e.Source].out = append(g.nodes[e.Source].out, id)
	return id, nil
}

func (g *WireGraph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Node returns the node with the given ID. The pointer refers into the
// arena and is invalidated by AddNode.
func (g *WireGraph) Node(id NodeID) *Node { return &g.nodes[id] }

// Edge returns the edge with the given ID.
func (g *WireGraph) Edge(id EdgeID) *Edge { return &g.edges[id] }

// NodeCount returns the number of nodes.
func (g *WireGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *WireGraph) EdgeCount() int { return len(g.edges) }

// InEdge returns the node's incoming edge, or nil.
func (g *WireGraph) InEdge(id NodeID) *Edge {
	if e := g.nodes[id].in; e != NoEdge {
		return &g.edges[e]
	}
	return nil
}

// InEdgeID returns the ID of the node's incoming edge, or NoEdge.
func (g *WireGraph) InEdgeID(id NodeID) EdgeID { return g.nodes[id].in }

// OutEdges returns the IDs of the node's outgoing edges in insertion order.
// The returned slice should not be modified.
func (g *WireGraph) OutEdges(id NodeID) []EdgeID { return g.nodes[id].out }

// Level returns the routing level of the node.
func (g *WireGraph) Level(id NodeID) int { return g.nodes[id].Layer.RoutingLevel }

// ITerm returns the terminal the node lands on, or nil.
func (g *WireGraph) ITerm(id NodeID) *ITerm { return g.nodes[id].ITerm }

// Validate checks arena integrity: every edge endpoint exists, every
// target's in-edge points back at the edge, and following in-edges from any
// node terminates.
//
// Cycle detection is O(N) using white/gray/black coloring along the
// in-edge chains.
func (g *WireGraph) Validate() error {
	for i, e := range g.edges {
		if !g.valid(e.Source) || !g.valid(e.Target) {
			return ErrInvalidEdgeEndpoint
		}
		if g.nodes[e.Target].in != EdgeID(i) {
			return ErrMultipleIncoming
		}
		if e.Kind.IsVia() && e.Via == nil {
			return ErrMissingVia
		}
	}
	return g.detectCycles()
}

func (g *WireGraph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]uint8, len(g.nodes))
	var chain []NodeID
	for start := range g.nodes {
		if color[start] != white {
			continue
		}
		chain = chain[:0]
		id := NodeID(start)
		for {
			if color[id] == gray {
				return ErrInEdgeCycle
			}
			if color[id] == black {
				break
			}
			color[id] = gray
			chain = append(chain, id)
			in := g.nodes[id].in
			if in == NoEdge {
				break
			}
			id = g.edges[in].Source
		}
		for _, c := range chain {
			color[c] = black
		}
	}
	return nil
}

// Bitset is a visited set sized to a graph's node arena.
type Bitset []uint64

// NewBitset returns a set able to hold IDs below n.
func NewBitset(n int) Bitset { return make(Bitset, (n+63)/64) }

// Has reports whether id is in the set.
func (b Bitset) Has(id NodeID) bool { return b[id>>6]&(1<<(uint(id)&63)) != 0 }

// Add inserts id.
func (b Bitset) Add(id NodeID) { b[id>>6] |= 1 << (uint(id) & 63) }

// Clear empties the set.
func (b Bitset) Clear() { clear(b) }
