package antenna

import (
	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
)

// WireLength is a length margin of one wireroot together with the terminals
// the wireroot feeds.
type WireLength struct {
	Root   design.NodeID
	Length float64
	ITerms []*design.ITerm
}

// MaxWireLength returns, for every wireroot of the net on the given routing
// level, how much wire can still be added before the PAR limit is reached.
// A negative length means the wire is already too long. Wireroots without
// gate area, without a rule or with a zero margin are left out.
func (c *Checker) MaxWireLength(netName string, level int) ([]WireLength, error) {
	return c.levelLengths(netName, level, maxLength)
}

// ViolatedWireLength returns, for every wireroot of the net on the given
// routing level, the length by which its wire exceeds the PAR limit.
// Wireroots with a zero result are left out.
func (c *Checker) ViolatedWireLength(netName string, level int) ([]WireLength, error) {
	return c.levelLengths(netName, level, cutLength)
}

// CheckMaxLength logs one warning per wireroot margin of MaxWireLength.
func (c *Checker) CheckMaxLength(netName string, level int) error {
	lengths, err := c.MaxWireLength(netName, level)
	if err != nil {
		return err
	}
	for _, l := range lengths {
		c.logger.Warnf("Net %s: Routing Level: %d, Max Length for PAR: %3.2f", netName, level, l.Length)
	}
	return nil
}

// LongestWire returns the routed, non-special net with the largest total
// segment length and that length in microns.
func (c *Checker) LongestWire() (string, float64) {
	var (
		name    string
		longest float64
	)
	for _, net := range c.design.Nets {
		if net.Special || net.Wire == nil {
			continue
		}
		w := newWalker(net.Wire, c.design.Tech)
		var length float64
		for i := range net.Wire.EdgeCount() {
			e := net.Wire.Edge(design.EdgeID(i))
			if e.Kind.IsVia() {
				continue
			}
			length += w.manhattan(e.Source, e.Target)
		}
		if length > longest {
			longest = length
			name = net.Name
		}
	}
	return name, longest
}

// lengthInputs carries the per-wireroot values the length formulas need.
type lengthInputs struct {
	rec    *PARRecord
	model  Model
	rule   *design.AntennaRule
	reduce float64
	width  float64
}

// metalFactor is the area factor matching the record's diffusion state.
func (in lengthInputs) metalFactor() float64 {
	if in.rec.DiffArea != 0 {
		return in.model.DiffMetalFactor
	}
	return in.model.MetalFactor
}

// reducedNumerator is the diffusion-adjusted PAR numerator.
func (in lengthInputs) reducedNumerator() float64 {
	r := in.rec
	return in.metalFactor()*r.WireArea*in.reduce - in.model.MinusDiffFactor*r.DiffArea
}

func (in lengthInputs) denominator() float64 {
	return in.rec.GateArea + in.model.PlusDiffFactor*in.rec.DiffArea
}

func maxLength(in lengthInputs) float64 {
	r := in.rec
	if in.rule.PAR != 0 {
		return (in.rule.PAR*r.GateArea - in.metalFactor()*r.WireArea) / in.width
	}
	limit := PWLFactor(in.rule.DiffPAR, r.DiffArea, 0)
	return (limit*in.denominator() - in.reducedNumerator()) / in.width
}

func cutLength(in lengthInputs) float64 {
	r := in.rec
	if in.rule.PAR != 0 {
		if r.PAR <= in.rule.PAR {
			return 0
		}
		return ((r.PAR-in.rule.PAR)*r.GateArea - in.metalFactor()*r.WireArea) / in.width
	}
	limit := PWLFactor(in.rule.DiffPAR, r.DiffArea, 0)
	return ((r.DiffPAR-limit)*in.denominator() - in.reducedNumerator()) / in.width
}

// levelLengths applies formula to every wireroot of the net on level that
// feeds gate area under a layer rule. Wireroots absorbed by an earlier
// run are skipped.
func (c *Checker) levelLengths(netName string, level int, formula func(lengthInputs) float64) ([]WireLength, error) {
	if err := errs.ValidateRoutingLevel(level); err != nil {
		return nil, err
	}
	net, err := c.lookupNet(netName)
	if err != nil {
		return nil, err
	}
	if net.Special || net.Wire == nil {
		return nil, nil
	}

	g := net.Wire
	t := &netTables{walker: newWalker(g, c.design.Tech), models: c.models, roots: Wireroots(g)}
	levelNodes := design.NewBitset(g.NodeCount())

	var out []WireLength
	for _, root := range t.roots {
		layer := g.Node(root).Layer
		if layer.RoutingLevel != level || levelNodes.Has(root) {
			continue
		}
		rec := t.rootAreas(root, levelNodes)
		if rec.GateArea == 0 || !layer.HasAntennaRule() {
			continue
		}
		t.computePAR(rec)

		in := lengthInputs{
			rec:    rec,
			model:  c.models.For(layer),
			rule:   layer.Rule,
			reduce: PWLFactor(layer.Rule.AreaDiffReduce, rec.DiffArea, 1.0),
			width:  c.design.Tech.Microns(layer.Width),
		}
		length := formula(in)
		if length == 0 {
			continue
		}
		iterms := append([]*design.ITerm(nil), rec.ITerms...)
		design.SortITerms(iterms)
		out = append(out, WireLength{Root: root, Length: length, ITerms: iterms})
	}
	return out, nil
}
