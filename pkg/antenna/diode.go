package antenna

import (
	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
)

// MaxDiodeIterations bounds the diode estimate per violation.
const MaxDiodeIterations = 10

// Violation is one wireroot breaking its PAR or PSR limit.
type Violation struct {
	Root         design.NodeID
	RoutingLevel int
	ITerms       []*design.ITerm

	// Diodes is the number of diode cells estimated to clear the violation,
	// 0 when no diode cell was given.
	Diodes int
	// Resolved reports whether Diodes insertions clear the violation. It is
	// false when the estimate gave up after MaxDiodeIterations.
	Resolved bool
}

// NetViolations returns the partial-ratio violations of one net.
//
// When cell is non-empty, each violation also gets a diode estimate: the
// diffusion area of the cell's pin, times the number of terminals the
// wireroot feeds, is added per inserted diode until the violation clears
// or MaxDiodeIterations is reached.
func (c *Checker) NetViolations(netName, cell, pin string) ([]Violation, error) {
	var diodeArea float64
	if cell != "" {
		a, err := c.diodeArea(cell, pin)
		if err != nil {
			return nil, err
		}
		diodeArea = a
	}

	net, err := c.lookupNet(netName)
	if err != nil {
		return nil, err
	}
	if net.Special || net.Wire == nil {
		return nil, nil
	}

	t := &netTables{walker: newWalker(net.Wire, c.design.Tech), models: c.models, roots: Wireroots(net.Wire)}
	par := t.buildParTable()

	var out []Violation
	for _, rec := range par.records() {
		if !parViolated(rec) {
			continue
		}
		iterms := append([]*design.ITerm(nil), rec.ITerms...)
		design.SortITerms(iterms)
		v := Violation{
			Root:         rec.Root,
			RoutingLevel: rec.Layer.RoutingLevel,
			ITerms:       iterms,
		}
		if cell != "" {
			v.Diodes, v.Resolved = t.estimateDiodes(rec, diodeArea)
			c.logger.Debug("diode estimate",
				"net", netName, "level", v.RoutingLevel, "diodes", v.Diodes, "resolved", v.Resolved)
		}
		out = append(out, v)
	}
	return out, nil
}

// estimateDiodes adds diode diffusion area to a copy of rec until its
// partial ratios are within limits.
func (t *netTables) estimateDiodes(rec *PARRecord, diodeArea float64) (int, bool) {
	r := *rec
	violated := true
	n := 0
	for violated && n < MaxDiodeIterations {
		r.DiffArea += diodeArea * float64(len(r.ITerms))
		n++
		t.computePAR(&r)
		violated = parViolated(&r)
	}
	return n, !violated
}

func (c *Checker) diodeArea(cell, pin string) (float64, error) {
	if err := errs.ValidateCellName(cell); err != nil {
		return 0, err
	}
	m := c.design.Master(cell)
	if m == nil {
		return 0, errs.New(errs.ErrCodeMasterNotFound, "cell %q not found", cell)
	}
	t := m.MTerm(pin)
	if t == nil {
		return 0, errs.New(errs.ErrCodePinNotFound, "pin %q not found on %s", pin, cell)
	}
	return t.MaxDiffArea(), nil
}
