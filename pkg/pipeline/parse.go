package pipeline

import (
	"context"
	"time"

	"github.com/promptdeck/flownote/pkg/ascii"
	"github.com/promptdeck/flownote/pkg/errors"
	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/observability"
)

// Detect locates a flow-notation block in free text and emits detection
// events. A nil result means no block scored above the confidence threshold.
func Detect(ctx context.Context, text string) *ascii.Detection {
	hooks := observability.Engine()
	hooks.OnDetectStart(ctx, len(text))

	start := time.Now()
	det := ascii.Detect(text)

	conf := 0.0
	if det != nil {
		conf = det.Confidence
	}
	hooks.OnDetectComplete(ctx, det != nil, conf, time.Since(start))
	return det
}

// Parse runs detection and parsing over free text, returning the graph and
// the detection that located it. The core detector and parser report absence
// with nil; this boundary promotes that to a NO_DIAGRAM error so CLI and API
// callers get a consistent failure.
func Parse(ctx context.Context, text string, opts Options) (flow.Data, *ascii.Detection, error) {
	det := Detect(ctx, text)
	if det == nil {
		return flow.Data{}, nil, errors.New(errors.ErrCodeNoDiagram, "no flow diagram detected in input")
	}

	hooks := observability.Engine()
	hooks.OnParseStart(ctx, len(det.RawBlock))

	start := time.Now()
	d := ascii.ParseWith(det.RawBlock, opts.parseOptions())
	if d == nil {
		hooks.OnParseComplete(ctx, 0, 0, time.Since(start))
		return flow.Data{}, det, errors.New(errors.ErrCodeNoDiagram, "detected block contains no recognizable boxes")
	}

	hooks.OnParseComplete(ctx, len(d.Nodes), len(d.Edges), time.Since(start))
	return *d, det, nil
}
