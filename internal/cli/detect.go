package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/errors"
	"github.com/promptdeck/flownote/pkg/pipeline"
)

// detectCommand creates the detect command for locating diagram blocks.
func (c *CLI) detectCommand() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "detect [file|-]",
		Short: "Locate an ASCII flow diagram in free text",
		Long: `Locate an ASCII flow diagram inside free-form text.

Reads from the given file, or from stdin when the argument is "-" or omitted.
Reports the detection confidence and the line span of the best diagram block.
Exits non-zero when no block reaches the acceptance threshold.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			text, err := readInput(path)
			if err != nil {
				return err
			}

			det := pipeline.Detect(cmd.Context(), text)
			if det == nil {
				printWarning("No flow diagram detected")
				return errors.New(errors.ErrCodeNoDiagram, "no flow diagram detected in input")
			}

			printSuccess("Flow diagram detected")
			printKeyValue("confidence", fmt.Sprintf("%.2f", det.Confidence))
			printKeyValue("lines", fmt.Sprintf("%d-%d", det.StartLine+1, det.EndLine+1))
			if show {
				printNewline()
				fmt.Println(det.RawBlock)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "print the detected block")

	return cmd
}
