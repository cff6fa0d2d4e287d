package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
)

var (
	layerTypeToString = map[design.LayerType]string{
		design.LayerRouting:     "routing",
		design.LayerCut:         "cut",
		design.LayerMasterslice: "masterslice",
	}
	masterTypeToString = map[design.MasterType]string{
		design.MasterCore:            "core",
		design.MasterCoreAntennaCell: "core_antennacell",
		design.MasterBlock:           "block",
		design.MasterPad:             "pad",
	}
	ioToString = map[design.IOType]string{
		design.IOInput:    "input",
		design.IOOutput:   "output",
		design.IOInout:    "inout",
		design.IOFeedthru: "feedthru",
	}
)

type file struct {
	Name         string   `json:"name" yaml:"name"`
	DBUPerMicron int      `json:"dbu_per_micron" yaml:"dbu_per_micron"`
	Layers       []layer  `json:"layers" yaml:"layers"`
	Vias         []via    `json:"vias,omitempty" yaml:"vias,omitempty"`
	Masters      []master `json:"masters,omitempty" yaml:"masters,omitempty"`
	Insts        []inst   `json:"insts,omitempty" yaml:"insts,omitempty"`
	Nets         []net    `json:"nets,omitempty" yaml:"nets,omitempty"`
}

type layer struct {
	Name         string            `json:"name" yaml:"name"`
	Type         string            `json:"type" yaml:"type"`
	RoutingLevel int               `json:"routing_level,omitempty" yaml:"routing_level,omitempty"`
	Width        int               `json:"width,omitempty" yaml:"width,omitempty"`
	Thickness    int               `json:"thickness,omitempty" yaml:"thickness,omitempty"`
	Antenna      *rule             `json:"antenna,omitempty" yaml:"antenna,omitempty"`
	Properties   map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// rule mirrors design.AntennaRule. Area factors are pointers because an
// omitted factor means 1, not 0.
type rule struct {
	AreaFactor                *float64 `json:"area_factor,omitempty" yaml:"area_factor,omitempty"`
	AreaFactorDiffUseOnly     bool     `json:"area_factor_diff_use_only,omitempty" yaml:"area_factor_diff_use_only,omitempty"`
	SideAreaFactor            *float64 `json:"side_area_factor,omitempty" yaml:"side_area_factor,omitempty"`
	SideAreaFactorDiffUseOnly bool     `json:"side_area_factor_diff_use_only,omitempty" yaml:"side_area_factor_diff_use_only,omitempty"`
	AreaMinusDiffFactor       float64  `json:"area_minus_diff_factor,omitempty" yaml:"area_minus_diff_factor,omitempty"`

	PAR float64 `json:"par,omitempty" yaml:"par,omitempty"`
	PSR float64 `json:"psr,omitempty" yaml:"psr,omitempty"`
	CAR float64 `json:"car,omitempty" yaml:"car,omitempty"`
	CSR float64 `json:"csr,omitempty" yaml:"csr,omitempty"`

	DiffPAR        []breakpoint `json:"diff_par,omitempty" yaml:"diff_par,omitempty"`
	DiffPSR        []breakpoint `json:"diff_psr,omitempty" yaml:"diff_psr,omitempty"`
	DiffCAR        []breakpoint `json:"diff_car,omitempty" yaml:"diff_car,omitempty"`
	DiffCSR        []breakpoint `json:"diff_csr,omitempty" yaml:"diff_csr,omitempty"`
	AreaDiffReduce []breakpoint `json:"area_diff_reduce,omitempty" yaml:"area_diff_reduce,omitempty"`

	CumRoutingPlusCut bool `json:"cum_routing_plus_cut,omitempty" yaml:"cum_routing_plus_cut,omitempty"`
}

type breakpoint struct {
	Index float64 `json:"index" yaml:"index"`
	Ratio float64 `json:"ratio" yaml:"ratio"`
}

type via struct {
	Name  string `json:"name" yaml:"name"`
	Boxes []box  `json:"boxes" yaml:"boxes"`
}

type box struct {
	Layer string `json:"layer" yaml:"layer"`
	DX    int    `json:"dx" yaml:"dx"`
	DY    int    `json:"dy" yaml:"dy"`
}

type master struct {
	Name  string `json:"name" yaml:"name"`
	Class string `json:"class,omitempty" yaml:"class,omitempty"`
	Pins  []pin  `json:"pins,omitempty" yaml:"pins,omitempty"`
}

type pin struct {
	Name      string      `json:"name" yaml:"name"`
	Direction string      `json:"direction,omitempty" yaml:"direction,omitempty"`
	GateArea  []layerArea `json:"gate_area,omitempty" yaml:"gate_area,omitempty"`
	DiffArea  []layerArea `json:"diff_area,omitempty" yaml:"diff_area,omitempty"`
}

type layerArea struct {
	Area  float64 `json:"area" yaml:"area"`
	Layer string  `json:"layer,omitempty" yaml:"layer,omitempty"`
}

type inst struct {
	Name   string `json:"name" yaml:"name"`
	Master string `json:"master" yaml:"master"`
}

type net struct {
	Name    string `json:"name" yaml:"name"`
	Special bool   `json:"special,omitempty" yaml:"special,omitempty"`
	Nodes   []node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges   []edge `json:"edges,omitempty" yaml:"edges,omitempty"`
}

type node struct {
	ID    string `json:"id" yaml:"id"`
	X     int    `json:"x" yaml:"x"`
	Y     int    `json:"y" yaml:"y"`
	Layer string `json:"layer" yaml:"layer"`
	Pin   string `json:"pin,omitempty" yaml:"pin,omitempty"`
}

type edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
	Via  string `json:"via,omitempty" yaml:"via,omitempty"`
}

// WriteDesign encodes d in the given format and writes it to w.
// The output can be read back with [ReadDesign]. Wire node ids are
// generated as "n0", "n1", ... in node order.
func WriteDesign(d *design.Design, w io.Writer, format Format) error {
	out := toFile(d)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	}
	return nil
}

// ExportDesign writes d to a file at path, choosing the format from the
// file extension. This is a convenience wrapper around [WriteDesign].
func ExportDesign(d *design.Design, path string) error {
	if err := errs.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDesign(d, f, FormatFromPath(path))
}

func toFile(d *design.Design) file {
	out := file{Name: d.Name}
	if d.Tech != nil {
		out.DBUPerMicron = d.Tech.DBUPerMicron
		for _, l := range d.Tech.Layers {
			out.Layers = append(out.Layers, layer{
				Name:         l.Name,
				Type:         layerTypeToString[l.Type],
				RoutingLevel: l.RoutingLevel,
				Width:        l.Width,
				Thickness:    l.Thickness,
				Antenna:      toRule(l.Rule),
				Properties:   l.Properties,
			})
		}
		for _, v := range d.Tech.Vias {
			fv := via{Name: v.Name}
			for _, b := range v.Boxes {
				fv.Boxes = append(fv.Boxes, box{Layer: layerName(b.Layer), DX: b.DX, DY: b.DY})
			}
			out.Vias = append(out.Vias, fv)
		}
	}

	for _, m := range d.Masters {
		fm := master{Name: m.Name, Class: masterTypeToString[m.Type]}
		for _, t := range m.MTerms {
			fp := pin{Name: t.Name, Direction: ioToString[t.IO], DiffArea: toAreas(t.DiffArea)}
			if t.Antenna != nil {
				fp.GateArea = toAreas(t.Antenna.GateArea)
			}
			fm.Pins = append(fm.Pins, fp)
		}
		out.Masters = append(out.Masters, fm)
	}
	for _, i := range d.Insts {
		out.Insts = append(out.Insts, inst{Name: i.Name, Master: i.Master.Name})
	}
	for _, n := range d.Nets {
		out.Nets = append(out.Nets, toNet(n))
	}
	return out
}

func toNet(n *design.Net) net {
	fn := net{Name: n.Name, Special: n.Special}
	g := n.Wire
	if g == nil {
		return fn
	}
	for i := range g.NodeCount() {
		nd := g.Node(design.NodeID(i))
		fnd := node{ID: nodeID(i), X: nd.X, Y: nd.Y, Layer: layerName(nd.Layer)}
		if nd.ITerm != nil {
			fnd.Pin = nd.ITerm.Name()
		}
		fn.Nodes = append(fn.Nodes, fnd)
	}
	for i := range g.EdgeCount() {
		e := g.Edge(design.EdgeID(i))
		fe := edge{From: nodeID(int(e.Source)), To: nodeID(int(e.Target)), Kind: e.Kind.String()}
		if e.Via != nil {
			fe.Via = e.Via.Name
		}
		fn.Edges = append(fn.Edges, fe)
	}
	return fn
}

func nodeID(i int) string { return "n" + strconv.Itoa(i) }

func layerName(l *design.Layer) string {
	if l == nil {
		return ""
	}
	return l.Name
}

func toAreas(areas []design.LayerArea) []layerArea {
	var out []layerArea
	for _, a := range areas {
		out = append(out, layerArea{Area: a.Area, Layer: layerName(a.Layer)})
	}
	return out
}

func toRule(r *design.AntennaRule) *rule {
	if r == nil {
		return nil
	}
	area, side := r.AreaFactor, r.SideAreaFactor
	return &rule{
		AreaFactor:                &area,
		AreaFactorDiffUseOnly:     r.AreaFactorDiffUseOnly,
		SideAreaFactor:            &side,
		SideAreaFactorDiffUseOnly: r.SideAreaFactorDiffUseOnly,
		AreaMinusDiffFactor:       r.AreaMinusDiffFactor,
		PAR:                       r.PAR,
		PSR:                       r.PSR,
		CAR:                       r.CAR,
		CSR:                       r.CSR,
		DiffPAR:                   toCurve(r.DiffPAR),
		DiffPSR:                   toCurve(r.DiffPSR),
		DiffCAR:                   toCurve(r.DiffCAR),
		DiffCSR:                   toCurve(r.DiffCSR),
		AreaDiffReduce:            toCurve(r.AreaDiffReduce),
		CumRoutingPlusCut:         r.CumRoutingPlusCut,
	}
}

func toCurve(p design.PWL) []breakpoint {
	var out []breakpoint
	for _, bp := range p {
		out = append(out, breakpoint{Index: bp.Index, Ratio: bp.Ratio})
	}
	return out
}
