package design

import "slices"

// MasterType classifies library cells. Only the antenna cell class matters
// to the checker.
type MasterType int

const (
	MasterCore MasterType = iota
	MasterCoreAntennaCell
	MasterBlock
	MasterPad
)

// IOType is a pin direction.
type IOType int

const (
	IOInput IOType = iota
	IOOutput
	IOInout
	IOFeedthru
)

// LayerArea is an area in square microns declared for one layer.
type LayerArea struct {
	Area  float64
	Layer *Layer
}

// PinModel is a pin's default antenna model.
type PinModel struct {
	GateArea []LayerArea
}

// MaxGateArea returns the largest declared gate area, or 0.
func (p *PinModel) MaxGateArea() float64 {
	if p == nil {
		return 0
	}
	return maxArea(p.GateArea)
}

// MTerm is a library pin.
type MTerm struct {
	Name   string
	Master *Master
	IO     IOType

	// Antenna is the default antenna model, nil when the pin has none.
	Antenna  *PinModel
	DiffArea []LayerArea
}

// MaxDiffArea returns the largest declared diffusion area, or 0.
func (m *MTerm) MaxDiffArea() float64 { return maxArea(m.DiffArea) }

// IsAntennaGate reports whether the pin is an input with an antenna model,
// which is what makes an instance terminal sensitive to antenna charge.
func (m *MTerm) IsAntennaGate() bool {
	return m.IO == IOInput && m.Antenna != nil
}

func maxArea(areas []LayerArea) float64 {
	var best float64
	for _, a := range areas {
		best = max(best, a.Area)
	}
	return best
}

// Master is a library cell.
type Master struct {
	Name   string
	Type   MasterType
	MTerms []*MTerm
}

// MTerm returns the pin with the given name, or nil.
func (m *Master) MTerm(name string) *MTerm {
	for _, t := range m.MTerms {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Inst is a placed cell instance.
type Inst struct {
	Name   string
	Master *Master
}

// ITerm is an instance terminal: one pin of one instance.
type ITerm struct {
	Inst  *Inst
	MTerm *MTerm
}

// Name returns "inst/pin".
func (it *ITerm) Name() string {
	return it.Inst.Name + "/" + it.MTerm.Name
}

// SortITerms orders terminals by name so reports are deterministic.
func SortITerms(iterms []*ITerm) {
	slices.SortFunc(iterms, func(a, b *ITerm) int {
		switch {
		case a.Name() < b.Name():
			return -1
		case a.Name() > b.Name():
			return 1
		}
		return 0
	})
}

// Net is a signal or special (power) net.
type Net struct {
	Name    string
	Special bool

	// Wire is the decoded routing, nil for unrouted nets.
	Wire *WireGraph
}

// Design is a routed block together with its technology and library.
type Design struct {
	Name    string
	Tech    *Tech
	Masters []*Master
	Insts   []*Inst
	Nets    []*Net
}

// Net returns the net with the given name, or nil.
func (d *Design) Net(name string) *Net {
	for _, n := range d.Nets {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Master returns the library cell with the given name, or nil.
func (d *Design) Master(name string) *Master {
	for _, m := range d.Masters {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Inst returns the instance with the given name, or nil.
func (d *Design) Inst(name string) *Inst {
	for _, i := range d.Insts {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// AntennaCell returns the first master of class CORE ANTENNACELL, or nil.
func (d *Design) AntennaCell() *Master {
	for _, m := range d.Masters {
		if m.Type == MasterCoreAntennaCell {
			return m
		}
	}
	return nil
}
