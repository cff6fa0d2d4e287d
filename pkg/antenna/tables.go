package antenna

import "github.com/matzehuels/antcheck/pkg/design"

// PARRecord holds the partial ratios of one wireroot.
type PARRecord struct {
	Root design.NodeID
	// Layer is the wireroot's routing layer for metal records and the
	// governing cut layer for via records.
	Layer *design.Layer
	// Via is the governing via for via records.
	Via *design.Via

	ITerms   []*design.ITerm
	WireArea float64
	SideArea float64
	GateArea float64
	DiffArea float64

	PAR     float64
	PSR     float64
	DiffPAR float64
	DiffPSR float64
}

// ARRecord pairs a wireroot with one gate it reaches and carries the
// cumulative ratios summed along the path between them.
type ARRecord struct {
	Root  design.NodeID
	Gate  design.NodeID
	Layer *design.Layer
	Via   *design.Via

	PAR     float64
	PSR     float64
	DiffPAR float64
	DiffPSR float64
	CAR     float64
	CSR     float64
	DiffCAR float64
	DiffCSR float64

	// DiffArea is the diffusion area fed by the wireroot.
	DiffArea float64
}

// parTable is a set of PAR records keyed by wireroot with a stable order.
type parTable struct {
	order  []design.NodeID
	byRoot map[design.NodeID]*PARRecord
}

func newParTable() *parTable {
	return &parTable{byRoot: make(map[design.NodeID]*PARRecord)}
}

func (t *parTable) add(r *PARRecord) {
	t.order = append(t.order, r.Root)
	t.byRoot[r.Root] = r
}

func (t *parTable) get(id design.NodeID) (*PARRecord, bool) {
	r, ok := t.byRoot[id]
	return r, ok
}

func (t *parTable) records() []*PARRecord {
	out := make([]*PARRecord, len(t.order))
	for i, id := range t.order {
		out[i] = t.byRoot[id]
	}
	return out
}

// netTables holds everything derived from one net's wire graph.
type netTables struct {
	walker *walker
	models *ModelTable
	roots  []design.NodeID
	gates  []design.NodeID
	par    *parTable
	viaPar *parTable
}

// buildTables segments the net and builds both partial-ratio tables.
func buildTables(g *design.WireGraph, tech *design.Tech, models *ModelTable) *netTables {
	t := &netTables{
		walker: newWalker(g, tech),
		models: models,
		roots:  Wireroots(g),
		gates:  gateNodes(g),
	}
	t.par = t.buildParTable()
	t.viaPar = t.buildViaParTable()
	return t
}

// gateNodes returns the nodes landing on antenna-sensitive input pins.
func gateNodes(g *design.WireGraph) []design.NodeID {
	var gates []design.NodeID
	for i := range g.NodeCount() {
		id := design.NodeID(i)
		if it := g.ITerm(id); it != nil && it.MTerm.IsAntennaGate() {
			gates = append(gates, id)
		}
	}
	return gates
}

// =============================================================================
// Partial ratios
// =============================================================================

// rootAreas computes the wire areas and terminals of one wireroot.
// levelNodes is shared across the wireroots of a net.
func (t *netTables) rootAreas(root design.NodeID, levelNodes design.Bitset) *PARRecord {
	g := t.walker.g
	level := g.Level(root)
	visited := design.NewBitset(g.NodeCount())
	area, side := t.walker.wireArea(root, level, visited, levelNodes)
	visited.Clear()
	terms := t.walker.termsBelow(root, level, visited)
	return &PARRecord{
		Root:     root,
		Layer:    g.Node(root).Layer,
		ITerms:   terms.iterms,
		WireArea: area,
		SideArea: side,
		GateArea: terms.gateArea,
		DiffArea: terms.diffArea,
	}
}

// buildParTable emits one record per wireroot that feeds gate area. A
// wireroot already absorbed into an earlier wireroot's run is skipped.
func (t *netTables) buildParTable() *parTable {
	table := newParTable()
	levelNodes := design.NewBitset(t.walker.g.NodeCount())
	for _, root := range t.roots {
		if levelNodes.Has(root) {
			continue
		}
		rec := t.rootAreas(root, levelNodes)
		if rec.GateArea == 0 {
			continue
		}
		t.computePAR(rec)
		table.add(rec)
	}
	return table
}

// computePAR derives the four partial ratios of a metal record from its
// areas. GateArea must be non-zero.
func (t *netTables) computePAR(r *PARRecord) {
	m := t.models.For(r.Layer)
	reduce := m.DiffMetalReduceFactor
	if r.Layer.HasAntennaRule() {
		reduce = PWLFactor(r.Layer.Rule.AreaDiffReduce, r.DiffArea, 1.0)
	}

	if r.DiffArea != 0 {
		denom := r.GateArea + m.PlusDiffFactor*r.DiffArea
		r.PAR = m.DiffMetalFactor * r.WireArea / r.GateArea
		r.PSR = m.DiffSideMetalFactor * r.SideArea / r.GateArea
		r.DiffPAR = (m.DiffMetalFactor*r.WireArea*reduce - m.MinusDiffFactor*r.DiffArea) / denom
		r.DiffPSR = (m.DiffSideMetalFactor*r.SideArea*reduce - m.MinusDiffFactor*r.DiffArea) / denom
		return
	}
	r.PAR = m.MetalFactor * r.WireArea / r.GateArea
	r.PSR = m.SideMetalFactor * r.SideArea / r.GateArea
	r.DiffPAR = m.MetalFactor * r.WireArea * reduce / r.GateArea
	r.DiffPSR = m.SideMetalFactor * r.SideArea * reduce / r.GateArea
}

// buildViaParTable emits one record per wireroot whose run leaves through
// vias to an upper layer and feeds gate area. The governing cut layer is
// the one of the first such via.
func (t *netTables) buildViaParTable() *parTable {
	g := t.walker.g
	table := newParTable()
	for _, root := range t.roots {
		level := g.Level(root)
		cut := t.walker.cutArea(root, level)
		visited := design.NewBitset(g.NodeCount())
		terms := t.walker.termsBelow(root, level, visited)
		if cut == 0 || terms.gateArea == 0 {
			continue
		}

		via := t.walker.findVia(root, level)
		if via == nil {
			continue
		}
		layer := via.Via.CutLayer()
		if layer == nil {
			continue
		}

		m := t.models.For(layer)
		reduce := m.DiffMetalReduceFactor
		if layer.HasAntennaRule() {
			reduce = PWLFactor(layer.Rule.AreaDiffReduce, terms.diffArea, 1.0)
		}
		factor := m.CutFactor
		if terms.diffArea != 0 {
			factor = m.DiffCutFactor
		}

		table.add(&PARRecord{
			Root:     root,
			Layer:    layer,
			Via:      via.Via,
			ITerms:   terms.iterms,
			GateArea: terms.gateArea,
			DiffArea: terms.diffArea,
			PAR:      factor * cut / terms.gateArea,
			DiffPAR: (factor*cut*reduce - m.MinusDiffFactor*terms.diffArea) /
				(terms.gateArea + m.PlusDiffFactor*terms.diffArea),
		})
	}
	return table
}

// =============================================================================
// Cumulative ratios
// =============================================================================

type carFrame struct {
	node  design.NodeID
	level int
	// next is the next outgoing edge to try, or -1 before the climb through
	// the incoming via has been tried.
	next int
}

// carPath searches depth-first from root toward goal and returns every node
// on any path that reached goal, in first-found order.
//
// A node entered by a via climbing from a lower layer first continues at
// the segment root of the via's source, on the source's level. Outgoing
// vias are followed (to the target's segment start) when the target is at
// or below the current level; outgoing segments are always followed.
func carPath(g *design.WireGraph, root design.NodeID, level int, goal design.NodeID) []design.NodeID {
	var (
		found   []design.NodeID
		inFound = design.NewBitset(g.NodeCount())
		path    []design.NodeID
		stack   []carFrame
	)
	push := func(id design.NodeID, lvl int) {
		path = append(path, id)
		if id == goal {
			for _, n := range path {
				if !inFound.Has(n) {
					inFound.Add(n)
					found = append(found, n)
				}
			}
			path = path[:len(path)-1]
			return
		}
		stack = append(stack, carFrame{node: id, level: lvl, next: -1})
	}

	push(root, level)
outer:
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next < 0 {
			f.next = 0
			if in := g.InEdge(f.node); in != nil && in.Kind.IsVia() {
				srcLevel := g.Level(in.Source)
				if srcLevel < g.Level(in.Target) {
					push(FindSegmentRoot(g, in.Source, srcLevel), srcLevel)
					continue
				}
			}
		}

		out := g.OutEdges(f.node)
		for f.next < len(out) {
			e := g.Edge(out[f.next])
			f.next++
			if e.Kind.IsVia() {
				if g.Level(e.Target) <= f.level {
					push(FindSegmentStart(g, e.Target), f.level)
					continue outer
				}
				continue
			}
			push(e.Target, f.level)
			continue outer
		}
		stack = stack[:len(stack)-1]
		path = path[:len(path)-1]
	}
	return found
}

// carRoots returns the nodes of the path from root to gate that start a
// run on their own level.
func (t *netTables) carRoots(root, gate design.NodeID) ([]design.NodeID, bool) {
	g := t.walker.g
	path := carPath(g, root, g.Level(root), gate)
	if len(path) == 0 {
		return nil, false
	}
	var roots []design.NodeID
	for _, n := range path {
		if IsSegmentRoot(g, n, g.Level(n)) {
			roots = append(roots, n)
		}
	}
	return roots, true
}

// wireCarTable pairs every gate with every metal record that reaches it.
// CAR sums the partial ratios of every run on the path; when the wireroot's
// rule folds in cut ratios, via records of lower runs are added too.
func (t *netTables) wireCarTable() []ARRecord {
	g := t.walker.g
	var out []ARRecord
	for _, gate := range t.gates {
		for _, par := range t.par.records() {
			roots, ok := t.carRoots(par.Root, gate)
			if !ok {
				continue
			}
			ar := ARRecord{
				Root:     par.Root,
				Gate:     gate,
				Layer:    par.Layer,
				PAR:      par.PAR,
				PSR:      par.PSR,
				DiffPAR:  par.DiffPAR,
				DiffPSR:  par.DiffPSR,
				DiffArea: par.DiffArea,
			}
			plusCut := par.Layer.HasAntennaRule() && par.Layer.Rule.CumRoutingPlusCut
			level := g.Level(par.Root)
			for _, n := range roots {
				if p, ok := t.par.get(n); ok {
					ar.CAR += p.PAR
					ar.CSR += p.PSR
					ar.DiffCAR += p.DiffPAR
					ar.DiffCSR += p.DiffPSR
				}
				if plusCut && g.Level(n) < level {
					if v, ok := t.viaPar.get(n); ok {
						ar.CAR += v.PAR
						ar.DiffCAR += v.DiffPAR
					}
				}
			}
			out = append(out, ar)
		}
	}
	return out
}

// viaCarTable pairs every gate with every via record that reaches it. CAR
// sums the via records on the path; when the via's cut layer folds in
// routing ratios, metal records on the path are added too.
func (t *netTables) viaCarTable() []ARRecord {
	var out []ARRecord
	for _, gate := range t.gates {
		for _, vp := range t.viaPar.records() {
			roots, ok := t.carRoots(vp.Root, gate)
			if !ok {
				continue
			}
			ar := ARRecord{
				Root:     vp.Root,
				Gate:     gate,
				Layer:    vp.Layer,
				Via:      vp.Via,
				PAR:      vp.PAR,
				DiffPAR:  vp.DiffPAR,
				DiffArea: vp.DiffArea,
			}
			plusCut := vp.Layer.HasAntennaRule() && vp.Layer.Rule.CumRoutingPlusCut
			for _, n := range roots {
				if v, ok := t.viaPar.get(n); ok {
					ar.CAR += v.PAR
					ar.DiffCAR += v.DiffPAR
				}
				if plusCut {
					if p, ok := t.par.get(n); ok {
						ar.CAR += p.PAR
						ar.DiffCAR += p.DiffPAR
					}
				}
			}
			out = append(out, ar)
		}
	}
	return out
}
