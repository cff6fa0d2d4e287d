package antenna

import "github.com/matzehuels/antcheck/pkg/design"

// walker runs the area walks over one net's wire graph. All walks use
// explicit frame stacks and visit nodes in the same order a depth-first
// recursion would.
type walker struct {
	g    *design.WireGraph
	tech *design.Tech
}

func newWalker(g *design.WireGraph, tech *design.Tech) *walker {
	return &walker{g: g, tech: tech}
}

func (w *walker) microns(dbu int) float64 { return w.tech.Microns(dbu) }

func (w *walker) manhattan(a, b design.NodeID) float64 {
	na, nb := w.g.Node(a), w.g.Node(b)
	return w.microns(abs(na.X-nb.X) + abs(na.Y-nb.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// viaArea returns the cut area of a via edge in square microns, taken from
// the via's last cut-layer box.
func (w *walker) viaArea(e *design.Edge) float64 {
	box, ok := e.Via.CutBox()
	if !ok {
		return 0
	}
	return w.microns(box.DX) * w.microns(box.DY)
}

// =============================================================================
// Wire area
// =============================================================================

type areaEdge struct {
	id design.EdgeID
	in bool
}

type areaFrame struct {
	node     design.NodeID
	edges    []areaEdge
	outCount int
	next     int
}

// wireArea accumulates the metal area and sidewall area of the run around
// root that stays at or below level.
//
// On entry a node collects its incoming edge when the edge's source is
// unvisited, and every outgoing edge while the node itself is unvisited;
// then it is marked visited. A via mouth is charged for an incoming via and
// for an outgoing via only when it is the node's sole collected outgoing
// edge. Segment length is charged only on nodes at level, and such nodes
// are added to levelNodes.
func (w *walker) wireArea(root design.NodeID, level int, visited, levelNodes design.Bitset) (area, side float64) {
	var stack []areaFrame
	push := func(id design.NodeID) {
		f := areaFrame{node: id}
		if in := w.g.InEdge(id); in != nil && !visited.Has(in.Source) {
			f.edges = append(f.edges, areaEdge{id: w.g.InEdgeID(id), in: true})
		}
		if !visited.Has(id) {
			for _, e := range w.g.OutEdges(id) {
				f.outCount++
				f.edges = append(f.edges, areaEdge{id: e})
			}
		}
		visited.Add(id)
		stack = append(stack, f)
	}

	push(root)
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next == len(f.edges) {
			stack = stack[:len(stack)-1]
			continue
		}
		ae := f.edges[f.next]
		f.next++

		node := w.g.Node(f.node)
		width := w.microns(node.Layer.Width)
		thickness := w.microns(node.Layer.Thickness)
		e := w.g.Edge(ae.id)
		far := e.Target
		if ae.in {
			far = e.Source
		}

		if e.Kind.IsVia() {
			if ae.in || f.outCount == 1 {
				area += 0.5 * width * width
				side += thickness * width
			}
			if w.g.Level(far) <= level {
				push(far)
			}
			continue
		}

		if node.Level() == level {
			levelNodes.Add(f.node)
			length := w.manhattan(f.node, far)
			area += length * width
			side += (length + width) * thickness * 2
		}
		push(far)
	}
	return area, side
}

// =============================================================================
// Terminals below a wireroot
// =============================================================================

// terminals accumulates what a wireroot feeds: the summed maximum gate area
// and maximum diffusion area of every distinct terminal reachable without
// climbing above level.
type terminals struct {
	gateArea float64
	diffArea float64
	iterms   []*design.ITerm
	seen     map[*design.ITerm]struct{}
}

func (t *terminals) add(it *design.ITerm) {
	if _, ok := t.seen[it]; ok {
		return
	}
	if t.seen == nil {
		t.seen = make(map[*design.ITerm]struct{})
	}
	t.seen[it] = struct{}{}
	t.iterms = append(t.iterms, it)
	if it.MTerm.Antenna != nil {
		t.gateArea += it.MTerm.Antenna.MaxGateArea()
	}
	t.diffArea += it.MTerm.MaxDiffArea()
}

type belowFrame struct {
	node design.NodeID
	// next is the next outgoing edge to try, or -1 before the incoming edge
	// has been considered.
	next int
}

// termsBelow walks from root collecting terminals. It follows the incoming
// edge when its source is at or below level (a via continues at the
// source's segment start), every outgoing via whose target is at or below
// level (continuing at the target's segment start), and every outgoing
// segment. Visited checks happen when each edge is reached.
func (w *walker) termsBelow(root design.NodeID, level int, visited design.Bitset) terminals {
	var t terminals
	var stack []belowFrame
	push := func(id design.NodeID) {
		if it := w.g.ITerm(id); it != nil {
			t.add(it)
		}
		visited.Add(id)
		stack = append(stack, belowFrame{node: id, next: -1})
	}

	push(root)
outer:
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next < 0 {
			f.next = 0
			if in := w.g.InEdge(f.node); in != nil && w.g.Level(in.Source) <= level && !visited.Has(in.Source) {
				if in.Kind.IsVia() {
					push(FindSegmentStart(w.g, in.Source))
				} else {
					push(in.Source)
				}
				continue
			}
		}

		out := w.g.OutEdges(f.node)
		for f.next < len(out) {
			e := w.g.Edge(out[f.next])
			f.next++
			if visited.Has(e.Target) {
				continue
			}
			if e.Kind.IsVia() {
				if w.g.Level(e.Target) <= level {
					push(FindSegmentStart(w.g, e.Target))
					continue outer
				}
				continue
			}
			push(e.Target)
			continue outer
		}
		stack = stack[:len(stack)-1]
	}
	return t
}

// =============================================================================
// Via area
// =============================================================================

// cutArea sums the cut area of every via that leaves the run below root for
// a layer above level. Lower vias and segments are walked through.
func (w *walker) cutArea(root design.NodeID, level int) float64 {
	var total float64
	stack := []design.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if in := w.g.InEdge(id); in != nil && in.Kind.IsVia() && w.g.Level(in.Source) > level {
			total += w.viaArea(in)
		}
		for _, eid := range w.g.OutEdges(id) {
			e := w.g.Edge(eid)
			if e.Kind.IsVia() && w.g.Level(e.Target) > level {
				total += w.viaArea(e)
				continue
			}
			stack = append(stack, e.Target)
		}
	}
	return total
}

type viaFrame struct {
	node design.NodeID
	next int
}

// findVia returns the first via met depth-first from root that crosses
// above level, checking each node's incoming edge before its outgoing edges.
// It returns nil when there is none.
func (w *walker) findVia(root design.NodeID, level int) *design.Edge {
	var stack []viaFrame
	push := func(id design.NodeID) *design.Edge {
		if in := w.g.InEdge(id); in != nil && in.Kind.IsVia() && w.g.Level(in.Source) > level {
			return in
		}
		stack = append(stack, viaFrame{node: id})
		return nil
	}

	if via := push(root); via != nil {
		return via
	}
outer:
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		out := w.g.OutEdges(f.node)
		for f.next < len(out) {
			e := w.g.Edge(out[f.next])
			f.next++
			if e.Kind.IsVia() && w.g.Level(e.Target) > level {
				return e
			}
			if via := push(e.Target); via != nil {
				return via
			}
			continue outer
		}
		stack = stack[:len(stack)-1]
	}
	return nil
}
