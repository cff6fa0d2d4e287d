package io

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
	"github.com/matzehuels/antcheck/pkg/observability"
)

// Format is a design file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// FormatFromPath picks the format from a file extension. Anything other
// than ".json" is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

var (
	layerTypeFromString  = invert(layerTypeToString)
	masterTypeFromString = invert(masterTypeToString)
	ioFromString         = invert(ioToString)
	edgeKindFromString   = map[string]design.EdgeKind{
		"":         design.EdgeSegment,
		"segment":  design.EdgeSegment,
		"short":    design.EdgeShort,
		"via":      design.EdgeVia,
		"tech_via": design.EdgeTechVia,
	}
)

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ReadDesign decodes a design file from r.
//
// Layers, vias and masters are resolved by name; every reference must name
// an earlier definition. Pins on wire nodes are written "inst/pin". Each
// net's wire graph is validated (single incoming edge per node, vias
// carry a definition, no cycles).
//
// All failures carry the INVALID_DESIGN code and name the offending
// element. ReadDesign does not close r.
func ReadDesign(r io.Reader, format Format) (*design.Design, error) {
	var data file
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&data); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidDesign, err, "decode json")
		}
	default:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
			return nil, errs.Wrap(errs.ErrCodeInvalidDesign, err, "decode yaml")
		}
	}

	d, err := data.build()
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidDesign, err, "design %s", data.Name)
	}
	return d, nil
}

// ImportDesign reads the design file at path, choosing the format from the
// extension. Load hooks from [observability.Load] observe the read.
func ImportDesign(ctx context.Context, path string) (d *design.Design, err error) {
	hooks := observability.Load()
	start := time.Now()
	hooks.OnLoadStart(ctx, path)
	defer func() {
		nets := 0
		if d != nil {
			nets = len(d.Nets)
		}
		hooks.OnLoadComplete(ctx, path, nets, time.Since(start), err)
	}()

	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "design file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ReadDesign(bytes.NewReader(raw), FormatFromPath(path))
}

// =============================================================================
// Building
// =============================================================================

func (f *file) build() (*design.Design, error) {
	if f.DBUPerMicron <= 0 {
		return nil, fmt.Errorf("dbu_per_micron must be positive, got %d", f.DBUPerMicron)
	}
	tech := &design.Tech{DBUPerMicron: f.DBUPerMicron}
	d := &design.Design{Name: f.Name, Tech: tech}

	for _, l := range f.Layers {
		layer, err := l.build()
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name, err)
		}
		if tech.Layer(l.Name) != nil {
			return nil, fmt.Errorf("layer %s: duplicate name", l.Name)
		}
		tech.Layers = append(tech.Layers, layer)
	}
	for _, v := range f.Vias {
		dv := &design.Via{Name: v.Name}
		for _, b := range v.Boxes {
			l := tech.Layer(b.Layer)
			if l == nil {
				return nil, fmt.Errorf("via %s: unknown layer %q", v.Name, b.Layer)
			}
			dv.Boxes = append(dv.Boxes, design.Box{Layer: l, DX: b.DX, DY: b.DY})
		}
		tech.Vias = append(tech.Vias, dv)
	}

	for _, m := range f.Masters {
		dm, err := m.build(tech)
		if err != nil {
			return nil, fmt.Errorf("master %s: %w", m.Name, err)
		}
		d.Masters = append(d.Masters, dm)
	}
	for _, i := range f.Insts {
		m := d.Master(i.Master)
		if m == nil {
			return nil, fmt.Errorf("inst %s: unknown master %q", i.Name, i.Master)
		}
		d.Insts = append(d.Insts, &design.Inst{Name: i.Name, Master: m})
	}

	pins := newPinResolver(d.Insts)
	for _, n := range f.Nets {
		dn, err := n.build(tech, pins)
		if err != nil {
			return nil, fmt.Errorf("net %s: %w", n.Name, err)
		}
		d.Nets = append(d.Nets, dn)
	}
	return d, nil
}

func (l *layer) build() (*design.Layer, error) {
	t, ok := layerTypeFromString[strings.ToLower(l.Type)]
	if !ok {
		return nil, fmt.Errorf("unknown layer type %q", l.Type)
	}
	out := &design.Layer{
		Name:         l.Name,
		Type:         t,
		RoutingLevel: l.RoutingLevel,
		Width:        l.Width,
		Thickness:    l.Thickness,
		Properties:   l.Properties,
	}
	if t != design.LayerRouting {
		out.RoutingLevel = 0
	} else if l.RoutingLevel < 1 {
		return nil, fmt.Errorf("routing layer needs routing_level >= 1")
	}
	if l.Antenna != nil {
		r, err := l.Antenna.build()
		if err != nil {
			return nil, err
		}
		out.Rule = r
	}
	return out, nil
}

func (r *rule) build() (*design.AntennaRule, error) {
	out := &design.AntennaRule{
		AreaFactor:                1,
		AreaFactorDiffUseOnly:     r.AreaFactorDiffUseOnly,
		SideAreaFactor:            1,
		SideAreaFactorDiffUseOnly: r.SideAreaFactorDiffUseOnly,
		AreaMinusDiffFactor:       r.AreaMinusDiffFactor,
		PAR:                       r.PAR,
		PSR:                       r.PSR,
		CAR:                       r.CAR,
		CSR:                       r.CSR,
		CumRoutingPlusCut:         r.CumRoutingPlusCut,
	}
	curves := []struct {
		name string
		in   []breakpoint
		out  *design.PWL
	}{
		{"diff_par", r.DiffPAR, &out.DiffPAR},
		{"diff_psr", r.DiffPSR, &out.DiffPSR},
		{"diff_car", r.DiffCAR, &out.DiffCAR},
		{"diff_csr", r.DiffCSR, &out.DiffCSR},
		{"area_diff_reduce", r.AreaDiffReduce, &out.AreaDiffReduce},
	}
	for _, c := range curves {
		pwl, err := curve(c.in)
		if err != nil {
			return nil, fmt.Errorf("antenna %s: %w", c.name, err)
		}
		*c.out = pwl
	}
	if r.AreaFactor != nil {
		out.AreaFactor = *r.AreaFactor
	}
	if r.SideAreaFactor != nil {
		out.SideAreaFactor = *r.SideAreaFactor
	}
	return out, nil
}

// curve converts breakpoints to a PWL. Indices must strictly increase.
func curve(bps []breakpoint) (design.PWL, error) {
	if len(bps) == 0 {
		return nil, nil
	}
	out := make(design.PWL, len(bps))
	for i, bp := range bps {
		if i > 0 && bp.Index <= bps[i-1].Index {
			return nil, fmt.Errorf("breakpoint %d index %g does not follow %g", i, bp.Index, bps[i-1].Index)
		}
		out[i] = design.Breakpoint{Index: bp.Index, Ratio: bp.Ratio}
	}
	return out, nil
}

func (m *master) build(tech *design.Tech) (*design.Master, error) {
	class := m.Class
	if class == "" {
		class = "core"
	}
	t, ok := masterTypeFromString[strings.ToLower(class)]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", m.Class)
	}
	out := &design.Master{Name: m.Name, Type: t}
	for _, p := range m.Pins {
		dir := p.Direction
		if dir == "" {
			dir = "input"
		}
		pinIO, ok := ioFromString[strings.ToLower(dir)]
		if !ok {
			return nil, fmt.Errorf("pin %s: unknown direction %q", p.Name, p.Direction)
		}
		diff, err := areas(tech, p.DiffArea)
		if err != nil {
			return nil, fmt.Errorf("pin %s: %w", p.Name, err)
		}
		mt := &design.MTerm{Name: p.Name, Master: out, IO: pinIO, DiffArea: diff}
		if len(p.GateArea) > 0 {
			gate, err := areas(tech, p.GateArea)
			if err != nil {
				return nil, fmt.Errorf("pin %s: %w", p.Name, err)
			}
			mt.Antenna = &design.PinModel{GateArea: gate}
		}
		out.MTerms = append(out.MTerms, mt)
	}
	return out, nil
}

func areas(tech *design.Tech, in []layerArea) ([]design.LayerArea, error) {
	var out []design.LayerArea
	for _, a := range in {
		la := design.LayerArea{Area: a.Area}
		if a.Layer != "" {
			if la.Layer = tech.Layer(a.Layer); la.Layer == nil {
				return nil, fmt.Errorf("unknown layer %q", a.Layer)
			}
		}
		out = append(out, la)
	}
	return out, nil
}

func (n *net) build(tech *design.Tech, pins *pinResolver) (*design.Net, error) {
	out := &design.Net{Name: n.Name, Special: n.Special}
	if len(n.Nodes) == 0 {
		return out, nil
	}

	g := design.NewWireGraph()
	ids := make(map[string]design.NodeID, len(n.Nodes))
	for _, nd := range n.Nodes {
		if _, dup := ids[nd.ID]; dup {
			return nil, fmt.Errorf("node %s: duplicate id", nd.ID)
		}
		l := tech.Layer(nd.Layer)
		if l == nil {
			return nil, fmt.Errorf("node %s: unknown layer %q", nd.ID, nd.Layer)
		}
		it, err := pins.resolve(nd.Pin)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.ID, err)
		}
		id, err := g.AddNode(design.Node{X: nd.X, Y: nd.Y, Layer: l, ITerm: it})
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.ID, err)
		}
		ids[nd.ID] = id
	}

	for _, e := range n.Edges {
		kind, ok := edgeKindFromString[strings.ToLower(e.Kind)]
		if !ok {
			return nil, fmt.Errorf("edge %s->%s: unknown kind %q", e.From, e.To, e.Kind)
		}
		from, ok := ids[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, design.ErrUnknownSourceNode)
		}
		to, ok := ids[e.To]
		if !ok {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, design.ErrUnknownTargetNode)
		}
		de := design.Edge{Kind: kind, Source: from, Target: to}
		if e.Via != "" {
			if de.Via = tech.Via(e.Via); de.Via == nil {
				return nil, fmt.Errorf("edge %s->%s: unknown via %q", e.From, e.To, e.Via)
			}
		}
		if _, err := g.AddEdge(de); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	out.Wire = g
	return out, nil
}

// pinResolver turns "inst/pin" references into terminals. Every reference
// to the same pin yields the same *ITerm.
type pinResolver struct {
	insts  map[string]*design.Inst
	iterms map[string]*design.ITerm
}

func newPinResolver(insts []*design.Inst) *pinResolver {
	r := &pinResolver{
		insts:  make(map[string]*design.Inst, len(insts)),
		iterms: make(map[string]*design.ITerm),
	}
	for _, i := range insts {
		r.insts[i.Name] = i
	}
	return r
}

// resolve looks up ref. Instance names may themselves contain '/', so the
// pin is taken after the last separator.
func (r *pinResolver) resolve(ref string) (*design.ITerm, error) {
	if ref == "" {
		return nil, nil
	}
	if it, ok := r.iterms[ref]; ok {
		return it, nil
	}
	i := strings.LastIndexByte(ref, '/')
	if i <= 0 || i == len(ref)-1 {
		return nil, fmt.Errorf("pin %q: want inst/pin", ref)
	}
	inst, ok := r.insts[ref[:i]]
	if !ok {
		return nil, fmt.Errorf("pin %q: unknown instance", ref)
	}
	mt := inst.Master.MTerm(ref[i+1:])
	if mt == nil {
		return nil, fmt.Errorf("pin %q: %s has no pin %s", ref, inst.Master.Name, ref[i+1:])
	}
	it := &design.ITerm{Inst: inst, MTerm: mt}
	r.iterms[ref] = it
	return it, nil
}
