package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcheck/pkg/antenna"
	"github.com/matzehuels/antcheck/pkg/design"
)

// maxLengthCommand creates the max-length command.
func (c *CLI) maxLengthCommand() *cobra.Command {
	var warn bool

	cmd := &cobra.Command{
		Use:   "max-length [design] [net] [level]",
		Short: "Show how much wire each wireroot can still take",
		Long: `Max-length prints, for every wireroot of the net on the routing level, the
wire length in microns that can still be added before the PAR limit is
reached. Negative lengths are already too long.`,
		Example: `  antcheck max-length top.yaml n1 2
  antcheck max-length top.yaml n1 2 --warn`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(args[2])
			if err != nil {
				return err
			}
			checker, _, err := c.newChecker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if warn {
				return checker.CheckMaxLength(args[1], level)
			}
			lengths, err := checker.MaxWireLength(args[1], level)
			if err != nil {
				return err
			}
			printLengths(args[1], level, "Max length", lengths)
			return nil
		},
	}

	cmd.Flags().BoolVar(&warn, "warn", false, "log one warning per wireroot instead of printing a table")

	return cmd
}

// cutLengthCommand creates the cut-length command.
func (c *CLI) cutLengthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cut-length [design] [net] [level]",
		Short: "Show how much wire must be cut from each wireroot",
		Long: `Cut-length prints, for every wireroot of the net on the routing level, the
wire length in microns by which it exceeds its PAR limit.`,
		Example: `  antcheck cut-length top.yaml n1 2`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(args[2])
			if err != nil {
				return err
			}
			checker, _, err := c.newChecker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			lengths, err := checker.ViolatedWireLength(args[1], level)
			if err != nil {
				return err
			}
			printLengths(args[1], level, "Excess", lengths)
			return nil
		},
	}
}

func printLengths(net string, level int, label string, lengths []antenna.WireLength) {
	if len(lengths) == 0 {
		printInfo("Net %s has no wireroots with a length margin on level %d", net, level)
		return
	}
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Net %s, routing level %d", net, level)))
	fmt.Println(lengthTable(label, lengths))
}

// lengthTable renders one row per wireroot. Negative lengths are drawn red.
func lengthTable(label string, lengths []antenna.WireLength) string {
	rows := make([][]string, 0, len(lengths))
	for _, l := range lengths {
		rows = append(rows, []string{
			"n" + strconv.Itoa(int(l.Root)),
			fmt.Sprintf("%.2f", l.Length),
			itermNames(l.ITerms),
		})
	}
	return renderTable([]string{"Wireroot", label + " (um)", "Terminals"}, rows, 1)
}

func itermNames(iterms []*design.ITerm) string {
	names := make([]string, len(iterms))
	for i, it := range iterms {
		names[i] = it.Name()
	}
	return strings.Join(names, ", ")
}
