package antenna

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
)

// mixedDesign has one violated net, one clean net, one special net, one
// unrouted net and one routed net without sinks.
func mixedDesign(t *testing.T) *design.Design {
	t.Helper()
	f := newFixture()
	rule := unitRule()
	rule.PAR = 1.5
	l := f.wide(rule)

	f.addNet("bad", singleRunNet(t, l, f.gate("u1", 5)))
	f.addNet("good", singleRunNet(t, l, f.gate("u2", 20)))
	f.d.Nets = append(f.d.Nets, &design.Net{Name: "VDD", Special: true, Wire: singleRunNet(t, l, f.gate("u3", 1))})
	f.d.Nets = append(f.d.Nets, &design.Net{Name: "floating"})
	f.addNet("nosink", singleRunNet(t, l, f.driver("d1")))
	return f.d
}

func TestCheckSummary(t *testing.T) {
	res, err := New(mixedDesign(t)).Check(context.Background(), nil)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	want := Summary{ViolatedPins: 1, ViolatedNets: 1, TotalNets: 4}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
	if len(res.Nets) != 3 {
		t.Errorf("len(Nets) = %d, want 3 routed nets", len(res.Nets))
	}
	v := res.Violations()
	if len(v) != 1 || v[0].Net.Name != "bad" {
		t.Errorf("Violations() = %v, want [bad]", v)
	}
}

func TestCheckSummaryCountsNetsOnce(t *testing.T) {
	f := newFixture()
	for _, l := range []*design.Layer{f.m1, f.m2} {
		rule := unitRule()
		rule.PAR = 0.1
		l.Rule = rule
	}

	// Both wireroots of "stacked" violate for the one gate.
	g, _ := f.twoLevelNet(t, f.gate("u1", 1))
	f.addNet("stacked", g)

	// One M1 run feeds two gates that both violate.
	b := newWire(t)
	n0 := b.node(0, 0, f.m1, f.gate("u2", 1))
	n1 := b.node(10000, 0, f.m1, f.gate("u3", 1))
	b.seg(n0, n1)
	f.addNet("fanout", b.g)

	res, err := New(f.d).Check(context.Background(), nil)
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	want := Summary{ViolatedPins: 3, ViolatedNets: 2, TotalNets: 2}
	if res.Summary != want {
		t.Errorf("Summary = %+v, want %+v", res.Summary, want)
	}
	for _, nr := range res.Nets {
		if !nr.Violated {
			t.Errorf("net %s Violated = false, want true", nr.Net.Name)
		}
	}
}

func TestCheckReport(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(mixedDesign(t)).Check(context.Background(), NewTextReporter(&buf, false)); err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	want := "Success - antenna cell with diffusion area 1.000000 is found\n" +
		"\nNet - bad\n" +
		"  u1  (INV_X1)  A\n" +
		"[1]  MW:\n" +
		"  PAR:    2.00*  Ratio:    1.50       (Area)\n" +
		"  PAR:    0.00  Ratio:    0.00       (S.Area)\n" +
		"  CAR:    2.00  Ratio:    0.00       (C.Area)\n" +
		"  CAR:    0.00  Ratio:    0.00       (C.S.Area)\n" +
		"\n" +
		"\nNet - good\n" +
		"  u2  (INV_X1)  A\n" +
		"[1]  MW:\n" +
		"  PAR:    0.50  Ratio:    1.50       (Area)\n" +
		"  PAR:    0.00  Ratio:    0.00       (S.Area)\n" +
		"  CAR:    0.50  Ratio:    0.00       (C.Area)\n" +
		"  CAR:    0.00  Ratio:    0.00       (C.S.Area)\n" +
		"\n" +
		"\nNet - nosink\n" +
		"  No sinks on this net\n" +
		"Number of pins violated: 1\n" +
		"Number of nets violated: 1\n" +
		"Total number of unspecial nets: 4\n"
	if got := buf.String(); got != want {
		t.Errorf("report mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCheckReportViolationsOnly(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(mixedDesign(t)).Check(context.Background(), NewTextReporter(&buf, true)); err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	want := "Success - antenna cell with diffusion area 1.000000 is found\n" +
		"\nNet - bad\n" +
		"  u1  (INV_X1)  A\n" +
		"[1]  MW:\n" +
		"  PAR:    2.00*  Ratio:    1.50       (Area)\n" +
		"\n" +
		"Number of pins violated: 1\n" +
		"Number of nets violated: 1\n" +
		"Total number of unspecial nets: 4\n"
	if got := buf.String(); got != want {
		t.Errorf("report mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestAntennaCellCensus(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fixture)
		want  string
	}{
		{"found", func(*fixture) {}, "Success - antenna cell with diffusion area 1.000000 is found\n"},
		{"no diffusion", func(f *fixture) { f.diode.MTerms[0].DiffArea = nil },
			"Warning - antenna cell is found but the diffusion area is not specified\n"},
		{"missing", func(f *fixture) { f.diode.Type = design.MasterCore },
			"Warning - class CORE ANTENNACELL is not found. This message can be ignored if not in the antenna-avoid flow\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)
			var buf bytes.Buffer
			if _, err := New(f.d).Check(context.Background(), NewTextReporter(&buf, false)); err != nil {
				t.Fatalf("Check() error: %v", err)
			}
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("report = %q, want prefix %q", buf.String(), tt.want)
			}
			if !strings.HasSuffix(buf.String(), "Total number of unspecial nets: 0\n") {
				t.Errorf("report = %q, want an empty summary", buf.String())
			}
		})
	}
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "antenna.rpt")
	res, err := New(mixedDesign(t)).CheckFile(context.Background(), path, ReportOptions{ViolationsOnly: true})
	if err != nil {
		t.Fatalf("CheckFile() error: %v", err)
	}
	if res.Summary.ViolatedNets != 1 {
		t.Errorf("ViolatedNets = %d, want 1", res.Summary.ViolatedNets)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "Net - bad") || strings.Contains(string(data), "Net - good") {
		t.Errorf("report = %q, want only the violated net", data)
	}
}

func TestCheckFileUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "antenna.rpt")
	res, err := New(mixedDesign(t)).CheckFile(context.Background(), path, ReportOptions{})
	if !errs.Is(err, errs.ErrCodeReportIO) {
		t.Fatalf("CheckFile() error = %v, want %s", err, errs.ErrCodeReportIO)
	}
	if res.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero counts", res.Summary)
	}
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(mixedDesign(t)).Check(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Check() error = %v, want context.Canceled", err)
	}
	if res.Summary.TotalNets != 0 {
		t.Errorf("TotalNets = %d, want 0", res.Summary.TotalNets)
	}
}

func TestCheckNet(t *testing.T) {
	c := New(mixedDesign(t))

	res, err := c.CheckNet("bad")
	if err != nil {
		t.Fatalf("CheckNet() error: %v", err)
	}
	if !res.Violated {
		t.Error("CheckNet(bad) should be violated")
	}

	res, err = c.CheckNet("VDD")
	if err != nil || len(res.Gates) != 0 {
		t.Errorf("CheckNet(VDD) = %+v, %v, want an empty result for a special net", res, err)
	}

	if _, err := c.CheckNet("nope"); !errs.Is(err, errs.ErrCodeNetNotFound) {
		t.Errorf("CheckNet(nope) error = %v, want %s", err, errs.ErrCodeNetNotFound)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCheckReportWriteError(t *testing.T) {
	_, err := New(mixedDesign(t)).Check(context.Background(), NewTextReporter(failingWriter{}, false))
	if !errs.Is(err, errs.ErrCodeReportIO) {
		t.Errorf("Check() error = %v, want %s", err, errs.ErrCodeReportIO)
	}
}
