package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/antcheck/pkg/antenna"
)

// browseCommand creates the browse command, an interactive list of
// violated nets.
func (c *CLI) browseCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "browse [design]",
		Short: "Browse violated nets interactively",
		Long: `Browse checks the design without writing a report and opens an interactive
list of violated nets. Select a net to see its gates and the ratios of every
wireroot and via that reaches them.`,
		Example: `  antcheck browse top.yaml
  antcheck browse top.yaml --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			checker, _, err := c.newChecker(ctx, args[0])
			if err != nil {
				return err
			}

			spinner := c.startSpinner(ctx, "Checking nets...")
			res, err := checker.Check(ctx, antenna.NopReporter{})
			spinner.Stop()
			c.spinner = nil
			if err != nil {
				return err
			}

			nets := res.Violations()
			if all {
				nets = res.Nets
			}
			_, err = tea.NewProgram(NewNetListModel(nets), tea.WithContext(ctx), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every routed net, not only violated ones")

	return cmd
}
