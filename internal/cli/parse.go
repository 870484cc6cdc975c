package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/pipeline"
)

// parseCommand creates the parse command for converting diagrams to flow JSON.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		output       string
		noCache      bool
		refresh      bool
		rowTolerance int
		maxLabelLen  int
	)

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse an ASCII flow diagram into a flow graph",
		Long: `Parse an ASCII flow diagram into a typed flow graph.

Reads free-form text from the given file (or stdin), locates the diagram
block, and parses boxes and connections into nodes and edges. The result is
written as flow JSON, suitable for 'generate', 'layout', 'render', and 'view'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			// Config is loaded in the root PersistentPreRunE, so options are
			// resolved here rather than at command construction time.
			opts := c.baseOptions()
			opts.Refresh = refresh
			if cmd.Flags().Changed("row-tolerance") {
				opts.RowTolerance = rowTolerance
			}
			if cmd.Flags().Changed("max-label-len") {
				opts.MaxLabelLen = maxLabelLen
			}
			return c.runParse(cmd.Context(), path, opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().IntVar(&rowTolerance, "row-tolerance", 0, "row distance for layer clustering (0 = default)")
	cmd.Flags().IntVar(&maxLabelLen, "max-label-len", 0, "maximum harvested connection label length (0 = default)")

	return cmd
}

// runParse detects and parses the diagram, then writes the flow JSON.
func (c *CLI) runParse(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Text = text

	spinner := newSpinnerWithContext(ctx, "Parsing diagram...")
	spinner.Start()
	prog := newProgress(c.Logger)

	det := pipeline.Detect(ctx, text)
	if det == nil {
		spinner.StopWithError("No flow diagram detected")
		return fmt.Errorf("no flow diagram detected in input")
	}

	d, cacheHit, err := runner.ParseBlockWithCacheInfo(ctx, det.RawBlock, opts)
	if err != nil {
		spinner.StopWithError("Parse failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Parsed %d nodes with %d edges", len(d.Nodes), len(d.Edges)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeFlow(d, output); err != nil {
		return err
	}

	// Keep stdout clean for piping when no output file was given.
	if output != "" {
		printSuccess("Parsed diagram (confidence %.2f)", det.Confidence)
		printFile(output)
		printStats(len(d.Nodes), len(d.Edges), cacheHit)
		printNewline()
		printNextStep("Render", "flownote render "+output)
	}
	return nil
}

// writeFlow serializes the graph as JSON to the given path or stdout.
func writeFlow(d flow.Data, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return flow.WriteData(d, out)
}
