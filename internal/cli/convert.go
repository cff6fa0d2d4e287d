package cli

import (
	"github.com/spf13/cobra"

	dio "github.com/matzehuels/antcheck/pkg/io"
)

// convertCommand creates the convert command for rewriting a design file.
func (c *CLI) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [design] [output]",
		Short: "Rewrite a design file as YAML or JSON",
		Long: `Convert reads a design file and writes it back in the format named by the
output extension (.json for JSON, anything else for YAML). Wire node ids are
renumbered n0, n1, ... in node order.`,
		Example: `  antcheck convert top.yaml top.json`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDesign(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := dio.ExportDesign(d, args[1]); err != nil {
				return err
			}
			printSuccess("Wrote %s design", dio.FormatFromPath(args[1]))
			printFile(args[1])
			return nil
		},
	}
}
