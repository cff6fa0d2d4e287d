package design

// LayerType distinguishes routing layers from cut (via) layers.
type LayerType int

const (
	// LayerRouting is a metal layer wires are drawn on.
	LayerRouting LayerType = iota
	// LayerCut is a via cut layer between two routing layers.
	LayerCut
	// LayerMasterslice covers poly/diffusion and other non-routing layers.
	LayerMasterslice
)

// String returns the LEF spelling of the layer type.
func (t LayerType) String() string {
	switch t {
	case LayerRouting:
		return "ROUTING"
	case LayerCut:
		return "CUT"
	default:
		return "MASTERSLICE"
	}
}

// GatePlusDiffProperty is the layer string property carrying the LEF 5.7
// ANTENNAGATEPLUSDIFF value.
const GatePlusDiffProperty = "LEF57_ANTENNAGATEPLUSDIFF"

// Layer is a technology layer.
//
// Width and Thickness are in database units. RoutingLevel is 1 for the
// lowest metal and 0 for cut and masterslice layers.
type Layer struct {
	Name         string
	Type         LayerType
	RoutingLevel int
	Width        int
	Thickness    int

	// Rule is the default antenna rule, nil when the layer has none.
	Rule *AntennaRule

	// Properties holds free-form string properties keyed by name.
	Properties map[string]string
}

// HasAntennaRule reports whether the layer carries a default antenna rule.
func (l *Layer) HasAntennaRule() bool { return l != nil && l.Rule != nil }

// Property returns the named string property and whether it is set.
func (l *Layer) Property(name string) (string, bool) {
	v, ok := l.Properties[name]
	return v, ok
}

// Breakpoint is one (index, ratio) pair of a piecewise-linear curve.
type Breakpoint struct {
	Index float64
	Ratio float64
}

// PWL is a piecewise-linear curve ordered by ascending Index.
// An empty curve means "not specified".
type PWL []Breakpoint

// AntennaRule is a layer's default antenna rule.
//
// Zero flat thresholds mean "not specified"; the matching PWL curve, if any,
// is used instead.
type AntennaRule struct {
	AreaFactor                float64
	AreaFactorDiffUseOnly     bool
	SideAreaFactor            float64
	SideAreaFactorDiffUseOnly bool
	AreaMinusDiffFactor       float64

	PAR float64
	PSR float64
	CAR float64
	CSR float64

	DiffPAR        PWL
	DiffPSR        PWL
	DiffCAR        PWL
	DiffCSR        PWL
	AreaDiffReduce PWL

	// CumRoutingPlusCut folds cut-layer ratios into cumulative metal ratios
	// and vice versa.
	CumRoutingPlusCut bool
}

// Box is one shape of a via definition.
type Box struct {
	Layer *Layer
	DX    int
	DY    int
}

// Via is a via definition (a DEF via or a LEF tech via).
type Via struct {
	Name  string
	Boxes []Box
}

// CutBox returns the last box on a cut layer, matching the scan order the
// area computation uses. ok is false when the via has no cut box.
func (v *Via) CutBox() (box Box, ok bool) {
	if v == nil {
		return Box{}, false
	}
	for _, b := range v.Boxes {
		if b.Layer != nil && b.Layer.Type == LayerCut {
			box, ok = b, true
		}
	}
	return box, ok
}

// CutLayer returns the first cut layer among the via's boxes, or nil.
func (v *Via) CutLayer() *Layer {
	if v == nil {
		return nil
	}
	for _, b := range v.Boxes {
		if b.Layer != nil && b.Layer.Type == LayerCut {
			return b.Layer
		}
	}
	return nil
}

// Tech is the technology: layers, vias and unit conversion.
type Tech struct {
	// DBUPerMicron converts database units to microns.
	DBUPerMicron int
	Layers       []*Layer
	Vias         []*Via
}

// Layer returns the layer with the given name, or nil.
func (t *Tech) Layer(name string) *Layer {
	for _, l := range t.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Via returns the via definition with the given name, or nil.
func (t *Tech) Via(name string) *Via {
	for _, v := range t.Vias {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// Microns converts a length in database units to microns.
func (t *Tech) Microns(dbu int) float64 {
	return float64(dbu) / float64(t.DBUPerMicron)
}
