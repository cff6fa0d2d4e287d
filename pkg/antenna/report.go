package antenna

import (
	"fmt"
	"io"

	"github.com/matzehuels/antcheck/pkg/design"
)

// Reporter receives check results as they are produced.
type Reporter interface {
	// AntennaCell is called first with the design's antenna cell (nil when
	// there is none) and its largest pin diffusion area.
	AntennaCell(cell *design.Master, diffArea float64) error

	// Net is called once per routed, non-special net, in design order.
	Net(res NetResult) error

	// Summary is called last with the final counts.
	Summary(s Summary) error
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) AntennaCell(*design.Master, float64) error { return nil }
func (NopReporter) Net(NetResult) error                       { return nil }
func (NopReporter) Summary(Summary) error                     { return nil }

// TextReporter writes the classic antenna report.
//
//	Net - n1
//	  u1  (INV_X1)  A
//	[1]  M1:
//	  PAR:    2.00*  Ratio:    1.50       (Area)
//	  PAR:    0.00  Ratio:    0.00       (S.Area)
//	  CAR:    2.00  Ratio:    0.00       (C.Area)
//	  CAR:    0.00  Ratio:    0.00       (C.S.Area)
//
// With ViolationsOnly set, only violated gates, records and ratio lines are
// written.
type TextReporter struct {
	w              io.Writer
	ViolationsOnly bool
	err            error
}

// NewTextReporter creates a text reporter writing to w.
func NewTextReporter(w io.Writer, violationsOnly bool) *TextReporter {
	return &TextReporter{w: w, ViolationsOnly: violationsOnly}
}

func (r *TextReporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// AntennaCell writes the antenna cell census line.
func (r *TextReporter) AntennaCell(cell *design.Master, diffArea float64) error {
	switch {
	case cell == nil:
		r.printf("Warning - class CORE ANTENNACELL is not found. This message can be ignored if not in the antenna-avoid flow\n")
	case diffArea != 0:
		r.printf("Success - antenna cell with diffusion area %f is found\n", diffArea)
	default:
		r.printf("Warning - antenna cell is found but the diffusion area is not specified\n")
	}
	return r.err
}

// Net writes one net section.
func (r *TextReporter) Net(res NetResult) error {
	if len(res.Gates) == 0 {
		if !r.ViolationsOnly {
			r.printf("\nNet - %s\n", res.Net.Name)
			r.printf("  No sinks on this net\n")
		}
		return r.err
	}

	header := false
	for _, gate := range res.Gates {
		if r.ViolationsOnly && !gate.Violated {
			continue
		}
		if !header {
			r.printf("\nNet - %s\n", res.Net.Name)
			header = true
		}
		it := gate.ITerm
		r.printf("  %s  (%s)  %s\n", it.Inst.Name, it.Inst.Master.Name, it.MTerm.Name)

		for _, rec := range gate.Wire {
			r.record(rec)
		}
		for _, rec := range gate.Via {
			r.record(rec)
		}
	}
	return r.err
}

func (r *TextReporter) record(rec RecordResult) {
	if r.ViolationsOnly && !rec.Violated() {
		return
	}
	r.printf("[1]  %s:\n", rec.Name)
	for _, c := range rec.Checks {
		if r.ViolationsOnly && !c.Violated() {
			continue
		}
		mark := ""
		if c.Violated() {
			mark = "*"
		}
		r.printf("  %s: %7.2f%s  Ratio: %7.2f       (%s)\n",
			c.Quantity.Label(), c.Value, mark, c.Limit, c.Quantity.Area())
	}
	r.printf("\n")
}

// Summary writes the closing counts.
func (r *TextReporter) Summary(s Summary) error {
	r.printf("Number of pins violated: %d\nNumber of nets violated: %d\nTotal number of unspecial nets: %d\n",
		s.ViolatedPins, s.ViolatedNets, s.TotalNets)
	return r.err
}
