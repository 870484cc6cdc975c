package pipeline

import (
	"context"
	"time"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/errors"
	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/observability"
	"github.com/promptdeck/flownote/pkg/render/dot"
	"github.com/promptdeck/flownote/pkg/render/mermaid"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, d flow.Data, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "validate render options")
	}

	hooks := observability.Engine()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, d, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, nil
}

func renderFormat(ctx context.Context, d flow.Data, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatASCII:
		return []byte(ascii.Generate(d)), nil
	case FormatJSON:
		return flow.MarshalData(d)
	case FormatMermaid:
		return []byte(mermaid.Render(d)), nil
	case FormatDOT:
		return []byte(dot.ToDOT(d, dotOptions(opts))), nil
	case FormatSVG:
		return dot.RenderSVG(ctx, dot.ToDOT(d, dotOptions(opts)))
	case FormatPNG:
		return dot.RenderPNG(ctx, dot.ToDOT(d, dotOptions(opts)))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

func dotOptions(opts Options) dot.Options {
	return dot.Options{
		Detailed: opts.Detailed,
		RankDir:  opts.RankDir,
	}
}
