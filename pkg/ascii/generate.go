package ascii

import (
	"sort"
	"strings"

	"github.com/promptdeck/flownote/pkg/flow"
)

// Generator box metrics. A box is always three lines tall: top border, label
// line, bottom border.
const (
	minGenWidth = 15
	maxGenWidth = 40
	boxGap      = 4 // columns between boxes in the same layer
)

// Generate renders a flow graph as a plain-text diagram using Unicode
// box-drawing glyphs. It returns the empty string for a graph with no nodes.
//
// The output is a deterministic, best-effort textual rendering meant to be
// readable by humans and language models and to survive a round trip through
// [Parse]: node count and labels are preserved; connector routing is
// approximate (straight vertical drops only, no collision avoidance).
func Generate(d flow.Data) string {
	if d.Empty() {
		return ""
	}

	layers := generatorLayers(d)

	centers := make(map[string]int, len(d.Nodes))
	bySource := make(map[string][]flow.Edge, len(d.Edges))
	for _, e := range d.Edges {
		bySource[e.Source] = append(bySource[e.Source], e)
	}

	var lines []string
	for li, layer := range layers {
		lines = append(lines, renderLayer(layer, centers)...)
		if li == len(layers)-1 {
			break
		}
		lines = append(lines, renderConnectors(layer, bySource, centers)...)
	}

	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.Join(lines, "\n")
}

// generatorLayers groups nodes into horizontal layers by BFS distance from
// the entry points (start-typed nodes, or zero in-degree when none). A
// node's layer is the maximum distance over all paths reaching it, so a node
// never renders above a parent. Nodes unreachable from any entry point land
// in a final extra layer rather than being dropped. Within a layer nodes
// keep the author's left-to-right intent by sorting on canvas x-position.
func generatorLayers(d flow.Data) [][]flow.Node {
	adj := make(map[string][]string, len(d.Nodes))
	for _, e := range d.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	layer := make(map[string]int, len(d.Nodes))
	relaxed := make(map[string]int, len(d.Nodes))
	var queue []string
	for _, n := range d.Starts() {
		if _, seen := layer[n.ID]; !seen {
			layer[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}

	// Max-distance relaxation. The per-node relaxation cap bounds the walk
	// on cyclic graphs, where "longest path" is otherwise unbounded.
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			cand := layer[curr] + 1
			if prev, seen := layer[next]; (!seen || cand > prev) && relaxed[next] < len(d.Nodes) {
				layer[next] = cand
				relaxed[next]++
				queue = append(queue, next)
			}
		}
	}

	maxLayer := 0
	for _, l := range layer {
		if l > maxLayer {
			maxLayer = l
		}
	}
	overflow := maxLayer + 1
	hasOverflow := false
	for _, n := range d.Nodes {
		if _, seen := layer[n.ID]; !seen {
			layer[n.ID] = overflow
			hasOverflow = true
		}
	}
	count := maxLayer + 1
	if hasOverflow {
		count++
	}

	layers := make([][]flow.Node, count)
	for _, n := range d.Nodes {
		layers[layer[n.ID]] = append(layers[layer[n.ID]], n)
	}
	for _, l := range layers {
		sort.SliceStable(l, func(i, j int) bool {
			return l[i].Position.X < l[j].Position.X
		})
	}
	// Layers can be empty when every node of some BFS depth was pushed
	// deeper by a longer path; drop the gaps.
	compact := layers[:0]
	for _, l := range layers {
		if len(l) > 0 {
			compact = append(compact, l)
		}
	}
	return compact
}

// renderLayer renders one layer as a fixed three-line box row and records
// each node's box-center column for connector drawing.
func renderLayer(layer []flow.Node, centers map[string]int) []string {
	var top, mid, bot strings.Builder
	col := 0
	for i, n := range layer {
		if i > 0 {
			gap := strings.Repeat(" ", boxGap)
			top.WriteString(gap)
			mid.WriteString(gap)
			bot.WriteString(gap)
			col += boxGap
		}
		width := boxWidth(n.Label)
		centers[n.ID] = col + width/2

		top.WriteString("┌" + strings.Repeat("─", width-2) + "┐")
		mid.WriteString("│" + padCenter(fitLabel(n.Label, width), width-2) + "│")
		bot.WriteString("└" + strings.Repeat("─", width-2) + "┘")
		col += width
	}
	return []string{top.String(), mid.String(), bot.String()}
}

// renderConnectors renders the two connector lines below a layer: a vertical
// stroke and an arrow head per distinct edge source, at the source's center
// column, with the edge label (when present) right of the arrow. A layer
// transition with no edges still yields a blank two-line block to preserve
// vertical rhythm.
func renderConnectors(layer []flow.Node, bySource map[string][]flow.Edge, centers map[string]int) []string {
	var stroke, arrow []rune
	for _, n := range layer {
		edges := bySource[n.ID]
		if len(edges) == 0 {
			continue
		}
		center := centers[n.ID]
		stroke = putRune(stroke, center, '│')
		arrow = putRune(arrow, center, '▼')

		if label := connectorLabel(edges); label != "" {
			for i, r := range []rune(" " + label) {
				arrow = putRune(arrow, center+1+i, r)
			}
		}
	}
	return []string{string(stroke), string(arrow)}
}

// connectorLabel joins the distinct labels of a source's outgoing edges.
func connectorLabel(edges []flow.Edge) string {
	var parts []string
	seen := make(map[string]bool)
	for _, e := range edges {
		if e.Label == "" || seen[e.Label] {
			continue
		}
		seen[e.Label] = true
		parts = append(parts, e.Label)
	}
	return strings.Join(parts, "/")
}

// boxWidth is the rendered width of a node's box: label plus borders and
// padding, clamped to [minGenWidth, maxGenWidth].
func boxWidth(label string) int {
	w := len([]rune(label)) + 4
	if w < minGenWidth {
		w = minGenWidth
	}
	if w > maxGenWidth {
		w = maxGenWidth
	}
	return w
}

// fitLabel truncates a label that exceeds the box interior, marking the cut
// with a trailing ellipsis.
func fitLabel(label string, width int) string {
	interior := width - 4
	runes := []rune(label)
	if len(runes) <= interior {
		return label
	}
	return string(runes[:interior-1]) + "…"
}

// padCenter centers text in a field of the given width, placing any odd
// leftover space on the right.
func padCenter(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}

// putRune writes r at column col, growing the line with spaces as needed.
func putRune(line []rune, col int, r rune) []rune {
	for len(line) <= col {
		line = append(line, ' ')
	}
	line[col] = r
	return line
}
