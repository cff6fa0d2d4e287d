package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// longestWireCommand creates the longest-wire command.
func (c *CLI) longestWireCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "longest-wire [design]",
		Short:   "Find the net with the most routed wire",
		Example: `  antcheck longest-wire top.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, _, err := c.newChecker(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name, length := checker.LongestWire()
			if name == "" {
				printInfo("No routed nets")
				return nil
			}
			printKeyValue("Net", StyleHighlight.Render(name))
			printKeyValue("Length", StyleNumber.Render(fmt.Sprintf("%.2f um", length)))
			return nil
		},
	}
}
