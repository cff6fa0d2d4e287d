package antenna_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/antcheck/pkg/antenna"
	"github.com/matzehuels/antcheck/pkg/design"
)

func ExamplePWLFactor() {
	curve := design.PWL{{Index: 0, Ratio: 1.0}, {Index: 100, Ratio: 2.0}}
	fmt.Println(antenna.PWLFactor(curve, 50, 0))
	fmt.Println(antenna.PWLFactor(curve, 150, 0))
	fmt.Println(antenna.PWLFactor(nil, 50, 7))
	// Output:
	// 1.5
	// 2.5
	// 7
}

func ExampleChecker_Check() {
	m1 := &design.Layer{
		Name: "M1", Type: design.LayerRouting, RoutingLevel: 1, Width: 1000,
		Rule: &design.AntennaRule{AreaFactor: 1, SideAreaFactor: 1, PAR: 1.5},
	}
	inv := &design.Master{Name: "INV_X1"}
	pin := &design.MTerm{Name: "A", Master: inv, IO: design.IOInput,
		Antenna: &design.PinModel{GateArea: []design.LayerArea{{Area: 5, Layer: m1}}}}
	inv.MTerms = []*design.MTerm{pin}
	u1 := &design.Inst{Name: "u1", Master: inv}

	// 10um of 1um-wide wire feeding a 5um^2 gate.
	g := design.NewWireGraph()
	a, _ := g.AddNode(design.Node{X: 0, Y: 0, Layer: m1, ITerm: &design.ITerm{Inst: u1, MTerm: pin}})
	b, _ := g.AddNode(design.Node{X: 10000, Y: 0, Layer: m1})
	_, _ = g.AddEdge(design.Edge{Kind: design.EdgeSegment, Source: a, Target: b})

	d := &design.Design{
		Name:    "top",
		Tech:    &design.Tech{DBUPerMicron: 1000, Layers: []*design.Layer{m1}},
		Masters: []*design.Master{inv},
		Insts:   []*design.Inst{u1},
		Nets:    []*design.Net{{Name: "n1", Wire: g}},
	}

	res, err := antenna.New(d).Check(context.Background(), antenna.NewTextReporter(os.Stdout, true))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(res.Summary.ViolatedNets)
	// Output:
	// Warning - class CORE ANTENNACELL is not found. This message can be ignored if not in the antenna-avoid flow
	//
	// Net - n1
	//   u1  (INV_X1)  A
	// [1]  M1:
	//   PAR:    2.00*  Ratio:    1.50       (Area)
	//
	// Number of pins violated: 1
	// Number of nets violated: 1
	// Total number of unspecial nets: 1
	// 1
}
