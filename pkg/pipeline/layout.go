package pipeline

import (
	"context"
	"time"

	"github.com/promptdeck/flownote/pkg/flow"
	"github.com/promptdeck/flownote/pkg/layout"
	"github.com/promptdeck/flownote/pkg/observability"
)

// ApplyLayout computes canvas positions for the graph and returns a copy
// with positions applied. The input graph is not modified.
func ApplyLayout(ctx context.Context, d flow.Data, opts Options) flow.Data {
	hooks := observability.Engine()
	hooks.OnLayoutStart(ctx, len(d.Nodes))

	start := time.Now()
	positioned := layout.AutoWith(d.Nodes, d.Edges, opts.layoutParams())

	out := d.Clone()
	byID := make(map[string]flow.Position, len(positioned))
	for _, n := range positioned {
		byID[n.ID] = n.Position
	}
	for i := range out.Nodes {
		if pos, ok := byID[out.Nodes[i].ID]; ok {
			out.Nodes[i].Position = pos
		}
	}

	hooks.OnLayoutComplete(ctx, time.Since(start))
	return out
}
