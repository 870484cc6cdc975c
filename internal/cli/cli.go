// Package cli implements the flownote command-line interface.
//
// This package provides commands for detecting flow diagrams in free text,
// parsing them into flow graphs, regenerating ASCII from graphs, computing
// editor layouts, rendering to DOT/SVG/PNG/Mermaid, browsing graphs
// interactively, and serving the engine over HTTP. The CLI is built using
// cobra and logs through the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - detect: Locate a diagram block in free text and report confidence
//   - parse: Detect and parse a diagram into flow JSON
//   - generate: Regenerate ASCII from a flow JSON file
//   - layout: Recompute editor positions for a flow JSON file
//   - render: Run the full pipeline and write artifacts
//   - view: Browse a flow graph interactively
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the local result cache
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a TOML configuration file with layout and detector tunables.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/promptdeck/flownote/pkg/buildinfo"
	"github.com/promptdeck/flownote/pkg/cache"
	"github.com/promptdeck/flownote/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "flownote"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          appName,
		Short:        "Flownote turns ASCII flow diagrams into editable graphs",
		Long:         `Flownote detects ASCII flow diagrams inside chat messages and prompt text, parses them into typed flow graphs, and renders them back as ASCII, DOT, SVG, PNG, or Mermaid.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file (default: $XDG_CONFIG_HOME/flownote/flownote.toml)")

	// Register all subcommands
	root.AddCommand(c.detectCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, c.Config.Cache.RedisPassword, c.Config.Cache.RedisDB)
	}
	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// baseOptions seeds pipeline options from the loaded configuration.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		RowTolerance: c.Config.Parse.RowTolerance,
		MaxLabelLen:  c.Config.Parse.MaxLabelLen,
		ColumnGap:    c.Config.Layout.ColumnGap,
		RowGap:       c.Config.Layout.RowGap,
		Padding:      c.Config.Layout.Padding,
		RankDir:      c.Config.Render.RankDir,
		Detailed:     c.Config.Render.Detailed,
		Logger:       c.Logger,
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flownote/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
// Empty input falls back to the configured formats, then to SVG.
func (c *CLI) parseFormats(s string) []string {
	if s == "" {
		if len(c.Config.Render.Formats) > 0 {
			return c.Config.Render.Formats
		}
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// readInput reads text from the given path, or from stdin when the path is
// empty or "-".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// nopCloser wraps an io.Writer with a no-op Close method so os.Stdout can be
// used where an io.WriteCloser is expected.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path, or stdout when the
// path is empty or "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
