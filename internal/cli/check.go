package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/antcheck/pkg/antenna"
)

// checkOpts holds options for the check command.
type checkOpts struct {
	report         string
	violationsOnly bool
}

// checkCommand creates the check command for a whole-design antenna check.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check [design]",
		Short: "Check every net and write the antenna report",
		Long: `Check evaluates the partial and cumulative antenna ratios of every routed,
non-special net and writes the report file.

The report lists, per net, every gate terminal and for each wireroot and via
that reaches it the PAR, PSR, CAR and CSR values against their limits.
Values past their limit are marked with '*'.`,
		Example: `  antcheck check top.yaml
  antcheck check top.yaml --report top.rpt --violations-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("report") {
				opts.report = cfg.Check.Report
			}
			if !cmd.Flags().Changed("violations-only") {
				opts.violationsOnly = cfg.Check.ViolationsOnly
			}
			_, err = c.runCheck(cmd, args[0], opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.report, "report", "o", defaultReport, "report file")
	cmd.Flags().BoolVar(&opts.violationsOnly, "violations-only", false, "report only violated gates and ratios")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, path string, opts checkOpts) (*antenna.Result, error) {
	ctx := cmd.Context()
	d, err := c.loadDesign(ctx, path)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()[:8]
	logger := c.Logger.With("run", runID)
	checker := antenna.New(d, antenna.WithLogger(logger))

	spinner := c.startSpinner(ctx, "Checking "+strconv.Itoa(len(d.Nets))+" nets...")
	defer func() { c.spinner = nil }()
	res, err := checker.CheckFile(ctx, opts.report, antenna.ReportOptions{ViolationsOnly: opts.violationsOnly})
	if err != nil {
		spinner.StopWithError("Check failed")
		return res, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Checked %s in %s", d.Name, res.Duration.Round(time.Millisecond)))

	printNewline()
	printSummary(res)
	printFile(opts.report)
	if res.Summary.ViolatedNets > 0 {
		printNewline()
		printNextStep("Browse violations", appName+" browse "+path)
	}
	return res, nil
}

// printSummary prints the whole-design counts followed by a table of the
// violated nets.
func printSummary(res *antenna.Result) {
	s := res.Summary
	printKeyValue("Nets", StyleNumber.Render(strconv.Itoa(s.TotalNets)))
	printKeyValue("Violated", StyleNumber.Render(strconv.Itoa(s.ViolatedNets)))
	printKeyValue("Pins", StyleNumber.Render(strconv.Itoa(s.ViolatedPins)))
	if s.ViolatedNets == 0 {
		printSuccess("No antenna violations")
		return
	}
	fmt.Println(violationTable(res.Violations()))
}

// violationTable lists violated nets with their gate and pin counts.
func violationTable(nets []antenna.NetResult) string {
	rows := make([][]string, 0, len(nets))
	for _, n := range nets {
		rows = append(rows, []string{
			n.Net.Name,
			strconv.Itoa(len(n.Gates)),
			strconv.Itoa(n.ViolatedPins),
		})
	}
	return renderTable([]string{"Net", "Gates", "Violated pins"}, rows, -1)
}
