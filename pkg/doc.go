// Package pkg provides the core libraries for the flownote flow-notation engine.
//
// # Overview
//
// Flownote turns ASCII flow diagrams embedded in chat messages and prompt
// text into typed flow graphs, and back again. The pkg directory is organized
// into five main areas:
//
//  1. [flow] - The graph data model (nodes, edges, validation, ids, branches)
//  2. [ascii] - Detection, parsing, and generation of ASCII diagrams
//  3. [layout] - Editor-canvas position assignment
//  4. [render] - DOT/SVG/PNG and Mermaid sinks
//  5. [pipeline] - Orchestration with caching (detect → parse → layout → render)
//
// # Architecture
//
// The typical data flow through flownote:
//
//	Free-form text (chat message, prompt file)
//	         ↓
//	    [ascii] Detect (locate the diagram block)
//	         ↓
//	    [ascii] Parse (character grid → flow.Data)
//	         ↓
//	    [layout] Auto (assign canvas positions)
//	         ↓
//	    [ascii] Generate / [render/dot] / [render/mermaid]
//	         ↓
//	    ASCII, JSON, DOT, SVG, PNG, Mermaid output
//
// # Quick Start
//
// Detect and parse a diagram, then regenerate it:
//
//	import (
//	    "github.com/promptdeck/flownote/pkg/ascii"
//	    "github.com/promptdeck/flownote/pkg/layout"
//	)
//
//	// 1. Locate the diagram block
//	det := ascii.Detect(message)
//	if det == nil {
//	    return // no diagram in this text
//	}
//
//	// 2. Parse the grid into a graph
//	d := ascii.Parse(det.RawBlock)
//
//	// 3. Assign editor positions
//	d.Nodes = layout.Auto(d.Nodes, d.Edges)
//
//	// 4. Draw it back
//	out := ascii.Generate(*d)
//
// # Main Packages
//
// [flow] - The interchange data model: Node, Edge, Data, JSON helpers,
// Validate, id generation strategies (Sequence, UUID), and the yes/no branch
// classifier shared by layout and rendering.
//
// [ascii] - The three pure grid components. Detect scores runs of
// box-drawing lines; Parse extracts boxes, connections, and types; Generate
// draws a graph as layered boxes with labeled connectors. All three report
// absence with nil or empty values, never errors.
//
// [layout] - Position assignment for the browser editor: longest-path rows,
// column inheritance for yes-branches, fresh columns for no-branches.
//
// [render/dot] - Graphviz DOT text plus SVG/PNG rasterization via
// goccy/go-graphviz. [render/mermaid] - Mermaid flowchart text.
//
// [pipeline] - The Runner used by CLI and API: per-stage caching keyed on
// content hashes, timing stats, and observability hook emission.
//
// [cache] - Cache backends (file, Redis, null) and the content-hash keyer.
//
// [errors] - Coded structured errors for the I/O surfaces.
//
// [observability] - Process-wide engine and cache hooks with no-op defaults.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/ascii/...     # Specific package
//
// [flow]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/flow
// [ascii]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/ascii
// [layout]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/layout
// [render]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/render
// [render/dot]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/render/dot
// [render/mermaid]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/render/mermaid
// [pipeline]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/cache
// [errors]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/errors
// [observability]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/promptdeck/flownote/pkg/buildinfo
package pkg
