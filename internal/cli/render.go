package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		detailed   bool
		rankDir    string
	)

	cmd := &cobra.Command{
		Use:   "render [file|flow.json]",
		Short: "Render a flow diagram to ASCII, DOT, SVG, PNG, or Mermaid",
		Long: `Render a flow diagram to one or more output formats.

The input can be a flow JSON file (produced by 'parse') or free-form text
containing an ASCII diagram; the command detects which it is. The full
pipeline runs: detect, parse, layout, render.

Formats: ascii, json, dot, svg, png, mermaid (comma-separated).
Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Formats = c.parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Refresh = refresh
			if cmd.Flags().Changed("detailed") {
				opts.Detailed = detailed
			}
			if cmd.Flags().Changed("rank-dir") {
				opts.RankDir = rankDir
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), ascii, json, dot, png, mermaid (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include node ids and types in DOT labels")
	cmd.Flags().StringVar(&rankDir, "rank-dir", "", "graph direction for DOT output: TB (default), LR")

	return cmd
}

// runRender loads the input, executes the pipeline, and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	if err := c.loadRenderInput(input, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(result, opts.Formats, input, output)
}

// loadRenderInput decides whether input is a flow JSON file or free text and
// fills the matching options field.
func (c *CLI) loadRenderInput(input string, opts *pipeline.Options) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}
	if d, ok := tryDecodeFlow(text); ok {
		opts.Flow = &d
		return nil
	}
	opts.Text = text
	return nil
}

// tryDecodeFlow attempts to interpret text as serialized flow JSON.
func tryDecodeFlow(text string) (flow.Data, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return flow.Data{}, false
	}
	var d flow.Data
	if err := json.Unmarshal([]byte(trimmed), &d); err != nil {
		return flow.Data{}, false
	}
	if len(d.Nodes) == 0 {
		return flow.Data{}, false
	}
	return d, true
}

// writeArtifacts writes each rendered format to its own file. With a single
// format, output names the file directly (stdout when "-"); with several,
// output (or the input name) is the base path and the format is the extension.
func writeArtifacts(result *pipeline.Result, formats []string, input, output string) error {
	if len(formats) == 1 {
		path := output
		if path == "" {
			path = basePath("", input) + "." + formats[0]
		}
		if err := writeArtifact(result.Artifacts[formats[0]], path); err != nil {
			return err
		}
		if path != "-" {
			printSuccess("Render complete")
			printFile(path)
			printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
		}
		return nil
	}

	base := basePath(output, input)
	printSuccess("Render complete")
	for _, format := range formats {
		path := base + "." + format
		if err := writeArtifact(result.Artifacts[format], path); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)
	return nil
}

func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

// basePath derives the base output path from the output and input paths.
// If output is empty, the input's extension is stripped; if output carries a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return "flow"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
