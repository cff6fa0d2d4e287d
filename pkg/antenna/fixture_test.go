package antenna

import (
	"math"
	"testing"

	"github.com/matzehuels/antcheck/pkg/design"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

// fixture is a two-metal technology with 1000 database units per micron:
// M1 is 0.1um wide, M2 is 0.2um wide, and VIA12 has a 0.1um x 0.1um cut.
type fixture struct {
	tech  *design.Tech
	m1    *design.Layer
	v1    *design.Layer
	m2    *design.Layer
	via12 *design.Via

	inv   *design.Master
	diode *design.Master
	d     *design.Design
}

func newFixture() *fixture {
	f := &fixture{}
	f.m1 = &design.Layer{Name: "M1", Type: design.LayerRouting, RoutingLevel: 1, Width: 100}
	f.v1 = &design.Layer{Name: "V1", Type: design.LayerCut}
	f.m2 = &design.Layer{Name: "M2", Type: design.LayerRouting, RoutingLevel: 2, Width: 200}
	f.via12 = &design.Via{Name: "VIA12", Boxes: []design.Box{
		{Layer: f.m1, DX: 200, DY: 200},
		{Layer: f.v1, DX: 100, DY: 100},
		{Layer: f.m2, DX: 200, DY: 200},
	}}
	f.tech = &design.Tech{
		DBUPerMicron: 1000,
		Layers:       []*design.Layer{f.m1, f.v1, f.m2},
		Vias:         []*design.Via{f.via12},
	}

	f.inv = &design.Master{Name: "INV_X1"}
	f.inv.MTerms = []*design.MTerm{
		{Name: "A", Master: f.inv, IO: design.IOInput, Antenna: &design.PinModel{
			GateArea: []design.LayerArea{{Area: 1.0, Layer: f.m1}},
		}},
		{Name: "Y", Master: f.inv, IO: design.IOOutput, DiffArea: []design.LayerArea{{Area: 0.5}}},
	}
	f.diode = &design.Master{Name: "DIODE_X1", Type: design.MasterCoreAntennaCell}
	f.diode.MTerms = []*design.MTerm{
		{Name: "DIODE", Master: f.diode, IO: design.IOInput, DiffArea: []design.LayerArea{{Area: 1.0}}},
	}

	f.d = &design.Design{
		Name:    "top",
		Tech:    f.tech,
		Masters: []*design.Master{f.inv, f.diode},
	}
	return f
}

// gate places an inverter and returns its input terminal, with the given
// gate area.
func (f *fixture) gate(name string, area float64) *design.ITerm {
	m := &design.Master{Name: f.inv.Name}
	pin := &design.MTerm{Name: "A", Master: m, IO: design.IOInput, Antenna: &design.PinModel{
		GateArea: []design.LayerArea{{Area: area, Layer: f.m1}},
	}}
	m.MTerms = []*design.MTerm{pin}
	inst := &design.Inst{Name: name, Master: m}
	f.d.Insts = append(f.d.Insts, inst)
	return &design.ITerm{Inst: inst, MTerm: pin}
}

// driver places an inverter and returns its output terminal.
func (f *fixture) driver(name string) *design.ITerm {
	inst := &design.Inst{Name: name, Master: f.inv}
	f.d.Insts = append(f.d.Insts, inst)
	return &design.ITerm{Inst: inst, MTerm: f.inv.MTerm("Y")}
}

func (f *fixture) addNet(name string, g *design.WireGraph) *design.Net {
	n := &design.Net{Name: name, Wire: g}
	f.d.Nets = append(f.d.Nets, n)
	return n
}

type wireBuilder struct {
	t *testing.T
	g *design.WireGraph
}

func newWire(t *testing.T) *wireBuilder {
	t.Helper()
	return &wireBuilder{t: t, g: design.NewWireGraph()}
}

func (b *wireBuilder) node(x, y int, l *design.Layer, it *design.ITerm) design.NodeID {
	b.t.Helper()
	id, err := b.g.AddNode(design.Node{X: x, Y: y, Layer: l, ITerm: it})
	if err != nil {
		b.t.Fatalf("AddNode: %v", err)
	}
	return id
}

func (b *wireBuilder) seg(from, to design.NodeID) {
	b.t.Helper()
	if _, err := b.g.AddEdge(design.Edge{Kind: design.EdgeSegment, Source: from, Target: to}); err != nil {
		b.t.Fatalf("AddEdge: %v", err)
	}
}

func (b *wireBuilder) via(from, to design.NodeID, v *design.Via) {
	b.t.Helper()
	if _, err := b.g.AddEdge(design.Edge{Kind: design.EdgeVia, Source: from, Target: to, Via: v}); err != nil {
		b.t.Fatalf("AddEdge: %v", err)
	}
}

// twoLevelNet builds
//
//	n0 (M1, gate) --10um--> n1 (M1) --VIA12--> n2 (M2) --5um--> n3 (M2)
//
// and returns the graph with its four nodes.
func (f *fixture) twoLevelNet(t *testing.T, gate *design.ITerm) (*design.WireGraph, [4]design.NodeID) {
	b := newWire(t)
	n0 := b.node(0, 0, f.m1, gate)
	n1 := b.node(10000, 0, f.m1, nil)
	n2 := b.node(10000, 0, f.m2, nil)
	n3 := b.node(10000, 5000, f.m2, nil)
	b.seg(n0, n1)
	b.via(n1, n2, f.via12)
	b.seg(n2, n3)
	return b.g, [4]design.NodeID{n0, n1, n2, n3}
}

// singleRunNet builds one 10um x 1um run on a 1um-wide layer, so its wire
// area is exactly 10 square microns.
func singleRunNet(t *testing.T, layer *design.Layer, gate *design.ITerm) *design.WireGraph {
	b := newWire(t)
	n0 := b.node(0, 0, layer, gate)
	n1 := b.node(10000, 0, layer, nil)
	b.seg(n0, n1)
	return b.g
}

// wide adds a 1um-wide level-1 routing layer carrying rule to the
// technology. Call it before building a checker.
func (f *fixture) wide(rule *design.AntennaRule) *design.Layer {
	l := &design.Layer{Name: "MW", Type: design.LayerRouting, RoutingLevel: 1, Width: 1000, Rule: rule}
	f.tech.Layers = append(f.tech.Layers, l)
	return l
}

// unitRule returns a rule with unit area factors and no limits.
func unitRule() *design.AntennaRule {
	return &design.AntennaRule{AreaFactor: 1, SideAreaFactor: 1}
}
