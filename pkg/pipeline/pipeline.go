// Package pipeline provides the core flow-notation pipeline for flownote.
//
// This package implements the complete detect → parse → layout → render
// pipeline shared by the CLI and the HTTP API. Centralizing it here keeps
// behavior and caching consistent across all entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Detect: Locate an ASCII-diagram block in free text
//  2. Parse: Convert the character grid to a typed flow graph
//  3. Layout: Compute editor-canvas positions for the graph
//  4. Render: Generate output in various formats (ASCII, JSON, DOT, SVG, PNG, Mermaid)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Text:    message,
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"

	"time"

	"github.com/charmbracelet/log"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/cache"
	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/layout"
)

// Format constants for output formats.
const (
	FormatASCII   = "ascii"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
	FormatPNG     = "png"
	FormatMermaid = "mermaid"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatASCII:   true,
	FormatJSON:    true,
	FormatDOT:     true,
	FormatSVG:     true,
	FormatPNG:     true,
	FormatMermaid: true,
}

// Options contains all configuration for the flow-notation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: either free text to detect and parse, or an existing graph.
	// When Flow is set, the detect and parse stages are skipped.
	Text string     `json:"text,omitempty"`
	Flow *flow.Data `json:"flow,omitempty"`

	// Parse options
	RowTolerance int `json:"row_tolerance,omitempty"`
	MaxLabelLen  int `json:"max_label_len,omitempty"`

	// Layout options
	ColumnGap float64 `json:"column_gap,omitempty"`
	RowGap    float64 `json:"row_gap,omitempty"`
	Padding   float64 `json:"padding,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Include node ids and types in DOT labels
	RankDir  string   `json:"rank_dir,omitempty"`

	// Refresh bypasses the cache for every stage.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	IDs    flow.IDGen  `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Detection describes the diagram block found in the input text.
	// Nil when the input was an existing graph.
	Detection *ascii.Detection

	// Flow is the parsed graph with layout positions applied.
	Flow flow.Data

	// FlowHash is the content hash of the parsed graph, before layout.
	FlowHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	DetectTime time.Duration
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // Whether the parsed graph came from cache
	LayoutHit bool // Whether layout positions came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: ascii, json, dot, svg, png, mermaid)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for detection and parsing.
func (o *Options) ValidateForParse() error {
	if o.Text == "" && o.Flow == nil {
		return fmt.Errorf("text or flow is required")
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults fills zero layout options from the standard parameters.
func (o *Options) SetLayoutDefaults() {
	def := layout.DefaultParams()
	if o.ColumnGap == 0 {
		o.ColumnGap = def.ColumnGap
	}
	if o.RowGap == 0 {
		o.RowGap = def.RowGap
	}
	if o.Padding == 0 {
		o.Padding = def.Padding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatASCII}
	}
	if o.RankDir == "" {
		o.RankDir = "TB"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// parseOptions converts pipeline options to parser options.
func (o *Options) parseOptions() ascii.ParseOptions {
	return ascii.ParseOptions{
		IDs:          o.IDs,
		RowTolerance: o.RowTolerance,
		MaxLabelLen:  o.MaxLabelLen,
	}
}

// layoutParams converts pipeline options to layout parameters.
func (o *Options) layoutParams() layout.Params {
	p := layout.DefaultParams()
	if o.ColumnGap > 0 {
		p.ColumnGap = o.ColumnGap
	}
	if o.RowGap > 0 {
		p.RowGap = o.RowGap
	}
	if o.Padding > 0 {
		p.Padding = o.Padding
	}
	return p
}

// FlowKeyOpts returns cache key options for the parse stage.
func (o *Options) FlowKeyOpts() cache.FlowKeyOpts {
	return cache.FlowKeyOpts{
		RowTolerance: o.RowTolerance,
		MaxLabelLen:  o.MaxLabelLen,
	}
}

// LayoutKeyOpts returns cache key options for the layout stage.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		ColumnGap: o.ColumnGap,
		RowGap:    o.RowGap,
		Padding:   o.Padding,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
