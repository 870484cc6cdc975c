package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/pipeline"
)

// layoutCommand creates the layout command for recomputing editor positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		noCache   bool
		refresh   bool
		columnGap float64
		rowGap    float64
		padding   float64
	)

	cmd := &cobra.Command{
		Use:   "layout [flow.json]",
		Short: "Recompute editor positions for a flow graph",
		Long: `Recompute editor positions for a flow graph.

The layout command takes a flow JSON file (produced by 'parse') and assigns
each node a canvas position: rows follow the longest path from the start
nodes, yes-branches continue straight down, and no-branches move to a fresh
column. The output is the same graph with updated positions.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Refresh = refresh
			if cmd.Flags().Changed("column-gap") {
				opts.ColumnGap = columnGap
			}
			if cmd.Flags().Changed("row-gap") {
				opts.RowGap = rowGap
			}
			if cmd.Flags().Changed("padding") {
				opts.Padding = padding
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().Float64Var(&columnGap, "column-gap", 0, "horizontal distance between columns (0 = default)")
	cmd.Flags().Float64Var(&rowGap, "row-gap", 0, "vertical distance between rows (0 = default)")
	cmd.Flags().Float64Var(&padding, "padding", 0, "canvas padding (0 = default)")

	return cmd
}

// runLayout loads the graph, computes positions, and writes the output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	d, err := flow.ReadDataFile(input)
	if err != nil {
		return fmt.Errorf("load flow %s: %w", input, err)
	}
	if err := flow.Validate(d); err != nil {
		return fmt.Errorf("invalid flow: %w", err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	positioned, cacheHit, err := runner.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := flow.WriteDataFile(positioned, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(positioned.Nodes), len(positioned.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "flownote render "+outputPath)

	return nil
}
