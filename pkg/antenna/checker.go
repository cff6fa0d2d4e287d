package antenna

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/antcheck/pkg/design"
	errs "github.com/matzehuels/antcheck/pkg/errors"
	"github.com/matzehuels/antcheck/pkg/observability"
)

// Checker evaluates antenna rules on a design.
//
// The layer model table is derived once in [New] and shared by every query.
// A Checker never modifies its design. Nets are evaluated one at a time on
// the calling goroutine.
type Checker struct {
	design *design.Design
	models *ModelTable
	logger *log.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for warnings and progress.
// The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a checker for d.
func New(d *design.Design, opts ...Option) *Checker {
	c := &Checker{
		design: d,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.models = BuildModelTable(d.Tech, c.logger)
	return c
}

// Models returns the checker's layer model table.
func (c *Checker) Models() *ModelTable { return c.models }

// Summary holds the whole-design counts.
type Summary struct {
	ViolatedPins int
	ViolatedNets int
	TotalNets    int
}

// Result contains the outputs of a whole-design check.
type Result struct {
	Summary Summary

	// Nets holds the evaluation of every routed, non-special net in design
	// order.
	Nets []NetResult

	// Duration is the wall time of the check.
	Duration time.Duration
}

// Violations returns the violated nets.
func (r *Result) Violations() []NetResult {
	var out []NetResult
	for _, n := range r.Nets {
		if n.Violated {
			out = append(out, n)
		}
	}
	return out
}

// ReportOptions controls the text report written by [Checker.CheckFile].
type ReportOptions struct {
	// ViolationsOnly prints only violated gates and ratio lines.
	ViolationsOnly bool
}

// CheckFile runs [Checker.Check] and writes the text report to path.
//
// If the report cannot be created no net is evaluated and the returned
// result holds zero counts.
func (c *Checker) CheckFile(ctx context.Context, path string, opts ReportOptions) (*Result, error) {
	if err := errs.ValidatePath(path); err != nil {
		return &Result{}, err
	}
	f, err := os.Create(path)
	if err != nil {
		c.logger.Errorf("Cannot open report file (%s) for writing", path)
		return &Result{}, errs.Wrap(errs.ErrCodeReportIO, err, "cannot open report file %s", path)
	}

	res, err := c.Check(ctx, NewTextReporter(f, opts.ViolationsOnly))
	if cerr := f.Close(); cerr != nil && err == nil {
		err = errs.Wrap(errs.ErrCodeReportIO, cerr, "close report file %s", path)
	}
	return res, err
}

// Check evaluates every non-special net with wiring and feeds the results
// to r. A nil reporter writes nothing.
//
// Cancellation is checked between nets; a cancelled check returns the
// results gathered so far together with the context error.
func (c *Checker) Check(ctx context.Context, r Reporter) (*Result, error) {
	if r == nil {
		r = NopReporter{}
	}
	d := c.design
	hooks := observability.Check()
	start := time.Now()
	hooks.OnCheckStart(ctx, d.Name, len(d.Nets))

	res := &Result{}
	finish := func(err error) (*Result, error) {
		res.Duration = time.Since(start)
		s := res.Summary
		hooks.OnCheckComplete(ctx, d.Name, s.ViolatedPins, s.ViolatedNets, s.TotalNets, res.Duration, err)
		return res, err
	}

	cell, diff := c.antennaCell()
	if err := r.AntennaCell(cell, diff); err != nil {
		return finish(errs.Wrap(errs.ErrCodeReportIO, err, "write report"))
	}

	for _, net := range d.Nets {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}
		if net.Special {
			continue
		}
		res.Summary.TotalNets++
		if net.Wire == nil {
			continue
		}

		netStart := time.Now()
		nr := c.checkNet(net)
		hooks.OnNetChecked(ctx, net.Name, len(nr.Gates), nr.Violated, time.Since(netStart))
		if err := r.Net(nr); err != nil {
			return finish(errs.Wrap(errs.ErrCodeReportIO, err, "write report for net %s", net.Name))
		}
		if nr.Violated {
			res.Summary.ViolatedNets++
			res.Summary.ViolatedPins += nr.ViolatedPins
			c.logger.Debug("net violated", "net", net.Name, "pins", nr.ViolatedPins)
		}
		res.Nets = append(res.Nets, nr)
	}

	if err := r.Summary(res.Summary); err != nil {
		return finish(errs.Wrap(errs.ErrCodeReportIO, err, "write report summary"))
	}
	if res.Summary.TotalNets != 0 {
		c.logger.Infof("Found %d pin violations.", res.Summary.ViolatedPins)
		c.logger.Infof("Found %d net violations in %d nets.", res.Summary.ViolatedNets, res.Summary.TotalNets)
	}
	return finish(nil)
}

// CheckNet evaluates a single net by name.
func (c *Checker) CheckNet(name string) (NetResult, error) {
	net, err := c.lookupNet(name)
	if err != nil {
		return NetResult{}, err
	}
	if net.Special || net.Wire == nil {
		return NetResult{Net: net}, nil
	}
	return c.checkNet(net), nil
}

func (c *Checker) checkNet(net *design.Net) NetResult {
	t := buildTables(net.Wire, c.design.Tech, c.models)
	return t.evaluate(net)
}

// antennaCell returns the first antenna cell master and the largest
// diffusion area over its pins.
func (c *Checker) antennaCell() (*design.Master, float64) {
	m := c.design.AntennaCell()
	if m == nil {
		return nil, 0
	}
	var diff float64
	for _, t := range m.MTerms {
		diff = max(diff, t.MaxDiffArea())
	}
	return m, diff
}

func (c *Checker) lookupNet(name string) (*design.Net, error) {
	if err := errs.ValidateNetName(name); err != nil {
		return nil, err
	}
	net := c.design.Net(name)
	if net == nil {
		return nil, errs.New(errs.ErrCodeNetNotFound, "net %q not found", name)
	}
	return net, nil
}
