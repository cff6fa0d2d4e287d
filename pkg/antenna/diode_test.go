package antenna

import (
	"testing"

	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
)

// pwlViolation builds a design whose only net has PAR 2.0 against a PWL
// limit of 1.5, where each unit of diffusion lowers the diffusion ratio by
// 0.2.
func pwlViolation(t *testing.T, diodeDiff float64) *Checker {
	t.Helper()
	f := newFixture()
	f.diode.MTerms[0].DiffArea = []design.LayerArea{{Area: diodeDiff}}
	rule := unitRule()
	rule.DiffPAR = design.PWL{{Index: 0, Ratio: 1.5}}
	rule.AreaMinusDiffFactor = 1
	l := f.wide(rule)
	f.addNet("n1", singleRunNet(t, l, f.gate("u1", 5)))
	return New(f.d)
}

func TestNetViolationsDiodeEstimate(t *testing.T) {
	tests := []struct {
		name     string
		diff     float64
		diodes   int
		resolved bool
	}{
		{"three diodes clear it", 1, 3, true},
		{"gives up without diffusion", 0, MaxDiodeIterations, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := pwlViolation(t, tt.diff)
			got, err := c.NetViolations("n1", "DIODE_X1", "DIODE")
			if err != nil {
				t.Fatalf("NetViolations() error: %v", err)
			}
			if len(got) != 1 {
				t.Fatalf("len(violations) = %d, want 1", len(got))
			}
			v := got[0]
			if v.Diodes != tt.diodes || v.Resolved != tt.resolved {
				t.Errorf("estimate = %d diodes (resolved %v), want %d (%v)", v.Diodes, v.Resolved, tt.diodes, tt.resolved)
			}
			if v.RoutingLevel != 1 || len(v.ITerms) != 1 || v.ITerms[0].Name() != "u1/A" {
				t.Errorf("violation = %+v, want level 1 on u1/A", v)
			}
		})
	}
}

func TestNetViolationsWithoutCell(t *testing.T) {
	c := pwlViolation(t, 1)
	got, err := c.NetViolations("n1", "", "")
	if err != nil {
		t.Fatalf("NetViolations() error: %v", err)
	}
	if len(got) != 1 || got[0].Diodes != 0 {
		t.Errorf("NetViolations() = %+v, want one violation without an estimate", got)
	}
}

func TestNetViolationsErrors(t *testing.T) {
	c := pwlViolation(t, 1)
	tests := []struct {
		name string
		net  string
		cell string
		pin  string
		code errs.Code
	}{
		{"unknown net", "nope", "", "", errs.ErrCodeNetNotFound},
		{"unknown cell", "n1", "BUF_X1", "A", errs.ErrCodeMasterNotFound},
		{"unknown pin", "n1", "DIODE_X1", "Z", errs.ErrCodePinNotFound},
		{"bad cell name", "n1", "1bad", "A", errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.NetViolations(tt.net, tt.cell, tt.pin)
			if !errs.Is(err, tt.code) {
				t.Errorf("NetViolations() error = %v, want code %s", err, tt.code)
			}
		})
	}
}
