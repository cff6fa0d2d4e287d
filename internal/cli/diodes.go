package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcheck/pkg/antenna"
	errs "github.com/matzehuels/antcheck/pkg/errors"
)

// diodesOpts holds options for the diodes command.
type diodesOpts struct {
	cell string
	pin  string
}

// diodesCommand creates the diodes command.
func (c *CLI) diodesCommand() *cobra.Command {
	var opts diodesOpts

	cmd := &cobra.Command{
		Use:   "diodes [design] [net]",
		Short: "List partial-ratio violations of a net with diode estimates",
		Long: `Diodes lists every wireroot of the net that breaks its PAR or PSR limit,
with the routing level and the terminals it feeds.

With a diode cell (--cell and --pin, or [diode] in the config file) each
violation also gets the number of diodes needed to clear it. Estimates
that give up after 10 diodes are marked unresolved.`,
		Example: `  antcheck diodes top.yaml n1
  antcheck diodes top.yaml n1 --cell DIODE_X1 --pin DIODE`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cell") {
				opts.cell = cfg.Diode.Cell
			}
			if !cmd.Flags().Changed("pin") {
				opts.pin = cfg.Diode.Pin
			}
			if opts.cell != "" && opts.pin == "" {
				return errs.New(errs.ErrCodeInvalidInput, "--pin is required with --cell")
			}

			checker, _, err := c.newChecker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			violations, err := checker.NetViolations(args[1], opts.cell, opts.pin)
			if err != nil {
				return err
			}
			if len(violations) == 0 {
				printSuccess("Net %s has no partial-ratio violations", args[1])
				return nil
			}
			printWarning("Net %s has %d partial-ratio violations", args[1], len(violations))
			fmt.Println(diodeTable(violations, opts.cell != ""))
			if opts.cell == "" {
				printDetail("Pass --cell and --pin for diode estimates")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.cell, "cell", "", "diode cell master")
	cmd.Flags().StringVar(&opts.pin, "pin", "", "diode cell pin")

	return cmd
}

// diodeTable renders one row per violation, with the diode estimate when
// withDiodes is set.
func diodeTable(violations []antenna.Violation, withDiodes bool) string {
	headers := []string{"Wireroot", "Level", "Terminals"}
	if withDiodes {
		headers = append(headers, "Diodes")
	}
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		row := []string{
			"n" + strconv.Itoa(int(v.Root)),
			strconv.Itoa(v.RoutingLevel),
			itermNames(v.ITerms),
		}
		if withDiodes {
			diodes := strconv.Itoa(v.Diodes)
			if !v.Resolved {
				diodes += " (unresolved)"
			}
			row = append(row, diodes)
		}
		rows = append(rows, row)
	}
	return renderTable(headers, rows, -1)
}
