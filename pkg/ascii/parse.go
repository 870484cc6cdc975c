package ascii

import (
	"sort"
	"strings"

	"github.com/promptdeck/flownote/pkg/flow"
)

// ParseOptions tunes the parser. The zero value selects the defaults below;
// the tolerance constants were tuned empirically against hand-drawn and
// LLM-generated diagrams and are exposed rather than hard-coded.
type ParseOptions struct {
	// IDs supplies node and edge identifiers. Defaults to a fresh
	// deterministic [flow.Sequence] per call.
	IDs flow.IDGen

	// RowTolerance groups boxes whose top rows differ by at most this many
	// rows into the same horizontal layer. Default 3.
	RowTolerance int

	// MaxLabelLen is the longest residual token the connection-label harvest
	// accepts from the gap between two boxes. Default 15.
	MaxLabelLen int
}

func (o ParseOptions) withDefaults() ParseOptions {
	if o.IDs == nil {
		o.IDs = flow.NewSequence()
	}
	if o.RowTolerance == 0 {
		o.RowTolerance = 3
	}
	if o.MaxLabelLen == 0 {
		o.MaxLabelLen = 15
	}
	return o
}

// Pixel mapping for freshly parsed graphs. These positions are provisional;
// the layout engine recomputes them for canvas display.
const (
	parsedOriginX   = 400.0
	parsedOriginY   = 100.0
	parsedSpacingX  = 250.0
	parsedSpacingY  = 150.0
	horizontalJoin  = 2 // max gap auto-accepted for row-aligned boxes
	decisionYes     = "Si"
	decisionNo      = "No"
)

// connection links two detected boxes by index, optionally with a label
// harvested from the gap between them.
type connection struct {
	from  int
	to    int
	label string
}

// Parse turns an ASCII diagram block into a flow graph using default options.
// It returns nil when the block contains no recognizable boxes; the caller
// must treat the text as non-diagrammatic rather than as an error.
func Parse(block string) *flow.Data {
	return ParseWith(block, ParseOptions{})
}

// ParseWith is [Parse] with explicit options.
func ParseWith(block string, opts ParseOptions) *flow.Data {
	if strings.TrimSpace(block) == "" {
		return nil
	}
	opts = opts.withDefaults()

	g := newGrid(block)
	boxes := g.findBoxes()
	if len(boxes) == 0 {
		return nil
	}

	conns := g.findConnections(boxes, opts)
	if len(conns) == 0 && len(boxes) > 1 {
		conns = chainByReadingOrder(boxes)
	}

	types := inferTypes(boxes, conns)
	return buildGraph(boxes, conns, types, opts)
}

// findConnections tests every ordered pair of boxes for a drawn vertical or
// horizontal connection.
func (g grid) findConnections(boxes []box, opts ParseOptions) []connection {
	var conns []connection
	for i := range boxes {
		for j := range boxes {
			if i == j {
				continue
			}
			if label, ok := g.verticalConnection(boxes, i, j, opts); ok {
				conns = append(conns, connection{from: i, to: j, label: label})
				continue
			}
			if label, ok := g.horizontalConnection(boxes, i, j, opts); ok {
				conns = append(conns, connection{from: i, to: j, label: label})
			}
		}
	}
	return conns
}

// verticalConnection accepts a top-to-bottom connection when the source box
// sits above the target with roughly aligned centers and at least one
// connector glyph appears in the column strip between them. A third box
// occluding the strip breaks the connection: only visibly adjacent pairs
// connect.
func (g grid) verticalConnection(boxes []box, from, to int, opts ParseOptions) (string, bool) {
	a, b := boxes[from], boxes[to]
	if a.bottom() > b.row {
		return "", false
	}
	maxW := a.width
	if b.width > maxW {
		maxW = b.width
	}
	dx := a.centerX - b.centerX
	if dx < 0 {
		dx = -dx
	}
	if dx > maxW/2 {
		return "", false
	}

	lo, hi := a.centerX, b.centerX
	if lo > hi {
		lo, hi = hi, lo
	}
	for k := range boxes {
		if k == from || k == to {
			continue
		}
		c := boxes[k]
		if c.row > a.bottom() && c.bottom() < b.row && c.col <= hi && c.right() >= lo {
			return "", false
		}
	}

	found := false
	var gap strings.Builder
	for r := a.bottom() + 1; r < b.row; r++ {
		for c := lo - maxW/2; c <= hi+maxW/2; c++ {
			ch := g.at(r, c)
			if isConnector(ch) {
				found = true
				continue
			}
			if isHorizontal(ch) || ch == '+' || strings.ContainsRune(unicodeBoxGlyphs, ch) {
				continue
			}
			gap.WriteRune(ch)
		}
		gap.WriteRune(' ')
	}
	if !found {
		return "", false
	}
	return harvestLabel(gap.String(), opts.MaxLabelLen), true
}

// horizontalConnection accepts a left-to-right connection between
// row-aligned boxes. Adjacency with a gap of at most two columns is accepted
// even without glyphs; wider gaps require a drawn horizontal stroke or arrow.
func (g grid) horizontalConnection(boxes []box, from, to int, opts ParseOptions) (string, bool) {
	a, b := boxes[from], boxes[to]
	if a.right() >= b.col {
		return "", false
	}
	maxH := a.height
	if b.height > maxH {
		maxH = b.height
	}
	dy := a.centerY - b.centerY
	if dy < 0 {
		dy = -dy
	}
	if dy > maxH/2 {
		return "", false
	}

	gapCols := b.col - a.right() - 1
	if gapCols <= horizontalJoin {
		return "", true
	}

	found := false
	var gap strings.Builder
	for c := a.right() + 1; c < b.col; c++ {
		ch := g.at(a.centerY, c)
		if isHorizontal(ch) || isArrow(ch) {
			found = true
			continue
		}
		if isVertical(ch) || ch == '+' || strings.ContainsRune(unicodeBoxGlyphs, ch) {
			continue
		}
		gap.WriteRune(ch)
	}
	if !found {
		return "", false
	}
	return harvestLabel(gap.String(), opts.MaxLabelLen), true
}

// harvestLabel extracts a short connection label from the residual text of a
// gap region. Bracketed tokens lose their brackets; anything at or beyond
// maxLen is discarded as noise.
func harvestLabel(gap string, maxLen int) string {
	token := strings.TrimSpace(gap)
	token = strings.Trim(token, "[]()<>")
	token = strings.Join(strings.Fields(token), " ")
	if token == "" || len([]rune(token)) >= maxLen {
		return ""
	}
	return token
}

// chainByReadingOrder is the fallback when no drawn connections are
// recognized: boxes are sorted top-to-bottom, left-to-right and connected
// into a single chain. This guarantees a usable graph from pure spatial
// layouts, at the cost of fabricating edges for genuinely disconnected
// diagrams.
func chainByReadingOrder(boxes []box) []connection {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		a, b := boxes[order[x]], boxes[order[y]]
		if a.row != b.row {
			return a.row < b.row
		}
		return a.col < b.col
	})

	conns := make([]connection, 0, len(boxes)-1)
	for i := 0; i+1 < len(order); i++ {
		conns = append(conns, connection{from: order[i], to: order[i+1]})
	}
	return conns
}

// Label keywords that seed type inference. Both Spanish and English forms
// are recognized since the prompt editor's diagrams mix the two.
var (
	startKeywords = []string{"inicio", "start", "cta", "trigger", "keyword"}
	endKeywords   = []string{"fin", "end", "cierre", "escalado", "despedida"}
)

func labelHasAny(label string, keywords []string) bool {
	lower := strings.ToLower(label)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// inferTypes assigns a node type to every box. Keyword seeds and the
// question-mark decision rule run first; connectivity decides the rest; a
// post-pass forces at least one start and, for multi-box graphs, one end.
func inferTypes(boxes []box, conns []connection) []flow.NodeType {
	hasIn := make([]bool, len(boxes))
	hasOut := make([]bool, len(boxes))
	for _, c := range conns {
		hasOut[c.from] = true
		hasIn[c.to] = true
	}

	types := make([]flow.NodeType, len(boxes))
	for i, b := range boxes {
		switch {
		case strings.Contains(b.label, "?"):
			types[i] = flow.NodeDecision
		case labelHasAny(b.label, startKeywords) && !hasIn[i]:
			types[i] = flow.NodeStart
		case labelHasAny(b.label, endKeywords) && !hasOut[i]:
			types[i] = flow.NodeEnd
		case !hasIn[i]:
			types[i] = flow.NodeStart
		case !hasOut[i]:
			types[i] = flow.NodeEnd
		default:
			types[i] = flow.NodeAction
		}
	}

	// Invariant enforcement: some box must open the flow.
	hasStart := false
	for _, t := range types {
		if t == flow.NodeStart {
			hasStart = true
			break
		}
	}
	if !hasStart {
		topmost := 0
		for i := 1; i < len(boxes); i++ {
			if boxes[i].row < boxes[topmost].row {
				topmost = i
			}
		}
		types[topmost] = flow.NodeStart
	}

	// And, when there is more than one box, some box must close it.
	if len(boxes) > 1 {
		hasEnd := false
		for _, t := range types {
			if t == flow.NodeEnd {
				hasEnd = true
				break
			}
		}
		if !hasEnd {
			bottommost := -1
			for i := range boxes {
				if types[i] == flow.NodeStart {
					continue
				}
				if bottommost < 0 || boxes[i].row > boxes[bottommost].row {
					bottommost = i
				}
			}
			if bottommost >= 0 {
				types[bottommost] = flow.NodeEnd
			}
		}
	}

	return types
}

// buildGraph clusters boxes into layers, assigns provisional canvas
// positions, and materializes nodes and edges.
func buildGraph(boxes []box, conns []connection, types []flow.NodeType, opts ParseOptions) *flow.Data {
	layers := clusterLayers(boxes, opts.RowTolerance)

	nodes := make([]flow.Node, len(boxes))
	ids := make([]string, len(boxes))
	for layerIdx, layer := range layers {
		// Center the layer horizontally around offset zero rather than
		// left-justifying it.
		mid := float64(len(layer)-1) / 2
		for pos, boxIdx := range layer {
			offset := float64(pos) - mid
			id := opts.IDs.NodeID()
			ids[boxIdx] = id
			nodes[boxIdx] = flow.Node{
				ID:    id,
				Type:  types[boxIdx],
				Label: boxes[boxIdx].label,
				Position: flow.Position{
					X: parsedOriginX + offset*parsedSpacingX,
					Y: parsedOriginY + float64(layerIdx)*parsedSpacingY,
				},
			}
		}
	}

	outPerBox := make(map[int]int, len(boxes))
	for _, c := range conns {
		outPerBox[c.from]++
	}

	edges := make([]flow.Edge, 0, len(conns))
	branchSeen := make(map[int]int)
	for _, c := range conns {
		e := flow.Edge{
			ID:     opts.IDs.EdgeID(),
			Source: ids[c.from],
			Target: ids[c.to],
			Label:  c.label,
		}
		// An unlabeled pair of decision branches becomes an implicit
		// yes/no split in drawing order.
		if types[c.from] == flow.NodeDecision && outPerBox[c.from] >= 2 && c.label == "" {
			switch branchSeen[c.from] {
			case 0:
				e.Label = decisionYes
				e.SourceHandle = flow.HandleYes
			case 1:
				e.Label = decisionNo
				e.SourceHandle = flow.HandleNo
			}
			branchSeen[c.from]++
		}
		edges = append(edges, e)
	}

	return &flow.Data{Nodes: nodes, Edges: edges}
}

// clusterLayers groups boxes into horizontal layers by top row using
// tolerance-based bucketing: a box within tolerance rows of a layer's anchor
// joins that layer. The tolerance absorbs minor misalignment in hand-drawn
// art. Boxes within a layer are ordered left to right.
func clusterLayers(boxes []box, tolerance int) [][]int {
	order := make([]int, len(boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return boxes[order[x]].row < boxes[order[y]].row
	})

	var layers [][]int
	anchor := -1 << 30
	for _, idx := range order {
		if boxes[idx].row-anchor > tolerance {
			layers = append(layers, nil)
			anchor = boxes[idx].row
		}
		layers[len(layers)-1] = append(layers[len(layers)-1], idx)
	}

	for _, layer := range layers {
		sort.SliceStable(layer, func(x, y int) bool {
			return boxes[layer[x]].col < boxes[layer[y]].col
		})
	}
	return layers
}
