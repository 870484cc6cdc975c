package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/flow"
)

// generateCommand creates the generate command for turning flow graphs back
// into ASCII diagrams.
func (c *CLI) generateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "generate [flow.json]",
		Short: "Regenerate an ASCII diagram from a flow graph",
		Long: `Regenerate an ASCII diagram from a flow graph.

Takes a flow JSON file (produced by 'parse' or exported from the editor) and
draws it as a layered box diagram. The output is deterministic: the same
graph always yields the same text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := flow.ReadDataFile(args[0])
			if err != nil {
				return fmt.Errorf("load flow %s: %w", args[0], err)
			}
			if err := flow.Validate(d); err != nil {
				return fmt.Errorf("invalid flow: %w", err)
			}

			out, err := openOutput(output)
			if err != nil {
				return err
			}
			defer out.Close()

			if _, err := fmt.Fprintln(out, ascii.Generate(d)); err != nil {
				return err
			}
			if output != "" && output != "-" {
				printSuccess("Generated diagram")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}
