// Package render provides the non-ASCII output sinks for flow graphs.
//
// # Overview
//
// This package groups the renderers that turn a flow graph into formats for
// tools other than the text editor:
//
//   - Graphviz output (in [dot] subpackage): DOT text plus SVG/PNG rendering
//   - Mermaid output (in [mermaid] subpackage): flowchart text for Markdown
//
// The ASCII generator lives with the detector and parser in pkg/ascii, since
// the three share the grid dialect.
//
// # Graphviz
//
// The [dot] subpackage maps node types to Graphviz shapes (start/end to
// ovals, decisions to diamonds, actions to boxes) and carries yes/no branch
// labels onto the edges. Rasterization uses goccy/go-graphviz, so no external
// graphviz binary is needed.
//
//	text := dot.ToDOT(d, dot.Options{RankDir: "TB"})
//	svg, err := dot.RenderSVG(ctx, text)
//	png, err := dot.RenderPNG(ctx, text)
//
// # Mermaid
//
// The [mermaid] subpackage emits a "graph TD" flowchart with the same shape
// mapping, for embedding flows in Markdown documents and issue trackers.
//
//	text := mermaid.Render(d)
//
// [dot]: github.com/promptdeck/flownote/pkg/render/dot
// [mermaid]: github.com/promptdeck/flownote/pkg/render/mermaid
package render
