package antenna

import "github.com/matzehuels/antcheck/pkg/design"

// FindSegmentRoot returns the topmost node of the same-level run containing
// id when climbing at the given routing level.
//
// Segments and shorts are always climbed. A via whose source is above level
// ends the climb at the via's target. A via whose source is at or below
// level is climbed, but the result only propagates through it when the root
// found above it lies on level; otherwise the via's target is the root.
func FindSegmentRoot(g *design.WireGraph, id design.NodeID, level int) design.NodeID {
	// Targets of climbed vias, innermost last.
	var vias []design.NodeID
	for {
		in := g.InEdge(id)
		if in == nil {
			break
		}
		if in.Kind.IsVia() {
			if g.Level(in.Source) > level {
				break
			}
			vias = append(vias, id)
		}
		id = in.Source
	}

	root := id
	for i := len(vias) - 1; i >= 0; i-- {
		if g.Level(root) != level {
			root = vias[i]
		}
	}
	return root
}

// FindSegmentStart climbs segments and shorts from id and stops at the first
// node that has no incoming edge, is entered by a via or lands on a terminal.
func FindSegmentStart(g *design.WireGraph, id design.NodeID) design.NodeID {
	for {
		if g.ITerm(id) != nil {
			return id
		}
		in := g.InEdge(id)
		if in == nil || in.Kind.IsVia() {
			return id
		}
		id = in.Source
	}
}

// IsSegmentRoot reports whether id starts a run at level: it lands on a
// terminal, has no incoming edge, or is entered by a via that does not extend
// a run on level.
func IsSegmentRoot(g *design.WireGraph, id design.NodeID, level int) bool {
	if g.ITerm(id) != nil {
		return true
	}
	in := g.InEdge(id)
	if in == nil {
		return true
	}
	if !in.Kind.IsVia() {
		return false
	}
	if g.Level(in.Source) > level {
		return true
	}
	root := FindSegmentRoot(g, in.Source, level)
	return g.Level(root) != level
}

// Wireroots returns the distinct segment roots of every node at the node's
// own routing level, in first-seen node order.
func Wireroots(g *design.WireGraph) []design.NodeID {
	seen := design.NewBitset(g.NodeCount())
	var roots []design.NodeID
	for i := range g.NodeCount() {
		id := design.NodeID(i)
		root := FindSegmentRoot(g, id, g.Level(id))
		if seen.Has(root) {
			continue
		}
		seen.Add(root)
		roots = append(roots, root)
	}
	return roots
}
