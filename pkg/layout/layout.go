package layout

import (
	"github.com/promptdeck/flownote/pkg/flow"
)

// Size is a node's bounding box used for packing, in pixels.
type Size struct {
	W float64
	H float64
}

// Params tunes the layout engine. The gap and padding constants were tuned
// empirically for the canvas editor; treat them as configuration, not law.
type Params struct {
	// ColumnGap is the horizontal distance between column centers. Default 280.
	ColumnGap float64
	// RowGap is the vertical distance between row centers. Default 160.
	RowGap float64
	// Padding is the minimum top/left margin. Default 80.
	Padding float64
	// Sizes maps node types to bounding boxes. Defaults per type:
	// start/end 120×45, action 200×80, decision 120×120.
	Sizes map[flow.NodeType]Size
}

// DefaultParams returns the standard editor parameters.
func DefaultParams() Params {
	return Params{
		ColumnGap: 280,
		RowGap:    160,
		Padding:   80,
		Sizes: map[flow.NodeType]Size{
			flow.NodeStart:    {W: 120, H: 45},
			flow.NodeEnd:      {W: 120, H: 45},
			flow.NodeAction:   {W: 200, H: 80},
			flow.NodeDecision: {W: 120, H: 120},
		},
	}
}

func (p Params) size(t flow.NodeType) Size {
	if s, ok := p.Sizes[t]; ok {
		return s
	}
	return Size{W: 200, H: 80}
}

// layoutNode augments a flow node with the working state of one layout run.
// It is built fresh on every call and discarded once coordinates are copied
// back onto plain nodes.
type layoutNode struct {
	node     flow.Node
	w, h     float64
	row      int
	col      int
	colSet   bool
	pos      flow.Position
	parents  []string
	yesChild string
	noChild  string
	children []string // surplus decision branches, or all non-first children
}

// Auto recomputes canvas positions for every node using [DefaultParams].
// Existing positions are ignored. An empty input yields an empty slice; a
// single node is placed directly at the padding origin.
func Auto(nodes []flow.Node, edges []flow.Edge) []flow.Node {
	return AutoWith(nodes, edges, DefaultParams())
}

// AutoWith is [Auto] with explicit parameters.
func AutoWith(nodes []flow.Node, edges []flow.Edge, p Params) []flow.Node {
	if len(nodes) == 0 {
		return []flow.Node{}
	}

	out := make([]flow.Node, len(nodes))
	copy(out, nodes)

	if len(nodes) == 1 {
		out[0].Position = flow.Position{X: p.Padding, Y: p.Padding}
		return out
	}

	d := flow.Data{Nodes: nodes, Edges: edges}
	ln := buildLayoutGraph(d, p)
	assignRows(d, ln)
	assignColumns(d, ln)
	place(d, ln, p)

	for i := range out {
		out[i].Position = ln[out[i].ID].pos
	}
	return out
}

// buildLayoutGraph records parents and classified children for every node.
//
// For a decision source each outgoing edge fills the yes slot, the no slot,
// or the surplus list. The classification is centralized in
// [flow.ClassifyBranch]; an unclassified edge fills whichever slot is still
// empty, yes first, so an unlabeled two-way decision is an implicit yes/no
// pair. Non-decision sources simply accumulate children in edge order.
func buildLayoutGraph(d flow.Data, p Params) map[string]*layoutNode {
	ln := make(map[string]*layoutNode, len(d.Nodes))
	for _, n := range d.Nodes {
		s := p.size(n.Type)
		ln[n.ID] = &layoutNode{node: n, w: s.W, h: s.H}
	}

	for _, e := range d.Edges {
		src, okS := ln[e.Source]
		dst, okD := ln[e.Target]
		if !okS || !okD {
			continue // dangling edges are a validator concern, not ours
		}
		dst.parents = append(dst.parents, e.Source)

		if src.node.Type != flow.NodeDecision {
			src.children = append(src.children, e.Target)
			continue
		}

		switch flow.ClassifyBranch(e) {
		case flow.BranchYes:
			if src.yesChild == "" {
				src.yesChild = e.Target
			} else {
				src.children = append(src.children, e.Target)
			}
		case flow.BranchNo:
			if src.noChild == "" {
				src.noChild = e.Target
			} else {
				src.children = append(src.children, e.Target)
			}
		default:
			switch {
			case src.yesChild == "":
				src.yesChild = e.Target
			case src.noChild == "":
				src.noChild = e.Target
			default:
				src.children = append(src.children, e.Target)
			}
		}
	}
	return ln
}

// assignRows layers nodes by longest path from the entry points: a node's
// row is the maximum row over all parents reaching it plus one, so a node is
// never placed above an ancestor even when reached via paths of different
// lengths. Nodes not reached by the walk stay at row 0.
func assignRows(d flow.Data, ln map[string]*layoutNode) {
	adj := make(map[string][]string, len(d.Nodes))
	for _, e := range d.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	relaxed := make(map[string]int, len(d.Nodes))
	var queue []string
	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Starts() {
		if !seen[n.ID] {
			seen[n.ID] = true
			queue = append(queue, n.ID)
		}
	}

	// Relaxation cap keeps the walk bounded when the flow loops back.
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			cand := ln[curr].row + 1
			if cand > ln[next].row && relaxed[next] < len(d.Nodes) {
				ln[next].row = cand
				relaxed[next]++
				queue = append(queue, next)
			}
		}
	}
}

// assignColumns walks depth-first from each root with a shared,
// monotonically increasing next-free-column counter. The yes child of a
// decision inherits the parent's column (the common path continues straight
// down); the no child, surplus branches, and every non-first child of other
// nodes take the next free column to the right. A node keeps its
// first-assigned column, so converging paths do not reposition it.
//
// The walk uses an explicit stack: its depth bound is the node count, not
// the call stack.
func assignColumns(d flow.Data, ln map[string]*layoutNode) {
	nextCol := 0
	visited := make(map[string]bool, len(d.Nodes))

	takeCol := func(id string, col int) {
		n := ln[id]
		if !n.colSet {
			n.col = col
			n.colSet = true
		}
	}

	for _, root := range d.Starts() {
		if visited[root.ID] {
			continue
		}
		if !ln[root.ID].colSet {
			takeCol(root.ID, nextCol)
			nextCol++
		}

		stack := []string{root.ID}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[id] {
				continue
			}
			visited[id] = true

			n := ln[id]
			ordered := orderedChildren(n)
			for i, child := range ordered {
				if ln[child].colSet {
					continue
				}
				if i == 0 {
					takeCol(child, n.col)
				} else {
					takeCol(child, nextCol)
					nextCol++
				}
			}
			// Push in reverse so the straight-down child is visited first.
			for i := len(ordered) - 1; i >= 0; i-- {
				if !visited[ordered[i]] {
					stack = append(stack, ordered[i])
				}
			}
		}
	}

	// Nodes untouched by any root (e.g. inside a cycle with no entry)
	// still need a column.
	for _, n := range d.Nodes {
		if !ln[n.ID].colSet {
			takeCol(n.ID, nextCol)
			nextCol++
		}
	}
}

// orderedChildren returns a node's children with the straight-down
// continuation first: yes, then no, then surplus for decisions; edge order
// for everything else.
func orderedChildren(n *layoutNode) []string {
	if n.node.Type != flow.NodeDecision {
		return n.children
	}
	var ordered []string
	if n.yesChild != "" {
		ordered = append(ordered, n.yesChild)
	}
	if n.noChild != "" {
		ordered = append(ordered, n.noChild)
	}
	return append(ordered, n.children...)
}

// place converts (row, col) assignments to pixel coordinates. Column and row
// centers are spaced by the configured gaps, seeded from the widest box of
// the first column and the tallest box of the first row; each node's center
// is then converted to its top-left origin using its own box size, and the
// whole layout is shifted so nothing falls above or left of the padding.
func place(d flow.Data, ln map[string]*layoutNode, p Params) {
	maxCol, maxRow := 0, 0
	for _, n := range ln {
		if n.col > maxCol {
			maxCol = n.col
		}
		if n.row > maxRow {
			maxRow = n.row
		}
	}

	colWidth := make([]float64, maxCol+1)
	rowHeight := make([]float64, maxRow+1)
	for _, n := range ln {
		if n.w > colWidth[n.col] {
			colWidth[n.col] = n.w
		}
		if n.h > rowHeight[n.row] {
			rowHeight[n.row] = n.h
		}
	}

	colCenter := make([]float64, maxCol+1)
	for c := range colCenter {
		if c == 0 {
			colCenter[c] = p.Padding + colWidth[0]/2
		} else {
			colCenter[c] = colCenter[c-1] + p.ColumnGap
		}
	}
	rowCenter := make([]float64, maxRow+1)
	for r := range rowCenter {
		if r == 0 {
			rowCenter[r] = p.Padding + rowHeight[0]/2
		} else {
			rowCenter[r] = rowCenter[r-1] + p.RowGap
		}
	}

	minX, minY := colCenter[0], rowCenter[0]
	first := true
	for _, n := range ln {
		n.pos.X = colCenter[n.col] - n.w/2
		n.pos.Y = rowCenter[n.row] - n.h/2
		if first || n.pos.X < minX {
			minX = n.pos.X
		}
		if first || n.pos.Y < minY {
			minY = n.pos.Y
		}
		first = false
	}

	// Normalization: nothing may sit above or left of the padding.
	dx, dy := 0.0, 0.0
	if minX < p.Padding {
		dx = p.Padding - minX
	}
	if minY < p.Padding {
		dy = p.Padding - minY
	}
	if dx != 0 || dy != 0 {
		for _, n := range ln {
			n.pos.X += dx
			n.pos.Y += dy
		}
	}
}
