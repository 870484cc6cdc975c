// Package dot renders flow graphs as Graphviz node-link diagrams.
//
// [ToDOT] produces a deterministic DOT document; [RenderSVG] and [RenderPNG]
// rasterize it with the embedded Graphviz engine. Node shapes follow the
// editor's visual language: ovals for start/end, boxes for actions, diamonds
// for decisions.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/promptdeck/flownote/pkg/flow"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes node ids and types in labels.
	// When false, only the display label is shown.
	Detailed bool
	// RankDir is the Graphviz layout direction. Defaults to "TB".
	RankDir string
}

// ToDOT converts a flow graph to Graphviz DOT format. The result can be
// rendered with [RenderSVG] or [RenderPNG], or fed to any dot-compatible
// tool. Output is deterministic: nodes and edges appear in input order.
func ToDOT(d flow.Data, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph flow {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := nodeAttrs(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		if e.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.Source, e.Target, e.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n flow.Node, detailed bool) []string {
	label := n.Label
	if label == "" {
		label = n.ID
	}
	if detailed {
		label = fmt.Sprintf("%s\n(%s: %s)", label, n.ID, n.Type)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Type {
	case flow.NodeStart:
		attrs = append(attrs, "shape=oval", "style=filled", "fillcolor=\"#d4f7d4\"")
	case flow.NodeEnd:
		attrs = append(attrs, "shape=oval", "style=filled", "fillcolor=\"#f7d4d4\"")
	case flow.NodeDecision:
		attrs = append(attrs, "shape=diamond", "style=filled", "fillcolor=\"#fdf3c9\"")
	default:
		attrs = append(attrs, "shape=box", "style=\"rounded,filled\"", "fillcolor=white")
	}
	return attrs
}

// RenderSVG renders a DOT document to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT document to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
