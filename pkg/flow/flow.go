package flow

// NodeType classifies a step in the conversation flow.
type NodeType string

// Node types.
const (
	NodeStart    NodeType = "start"
	NodeAction   NodeType = "action"
	NodeDecision NodeType = "decision"
	NodeEnd      NodeType = "end"
)

// Valid reports whether t is one of the four known node types.
func (t NodeType) Valid() bool {
	switch t {
	case NodeStart, NodeAction, NodeDecision, NodeEnd:
		return true
	}
	return false
}

// Source handle values for decision branches.
const (
	HandleYes = "yes"
	HandleNo  = "no"
)

// Position is a canvas coordinate in pixels, origin top-left.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData holds optional free-form step metadata. It is opaque to the
// flow-notation engine and carried through parse/layout/generate untouched.
type NodeData struct {
	Description string `json:"description,omitempty"`
	Condition   string `json:"condition,omitempty"`
	FlowRef     string `json:"flowRef,omitempty"` // cross-flow reference
}

// Node is a single step in the conversation flow.
type Node struct {
	ID       string    `json:"id"`
	Type     NodeType  `json:"type"`
	Label    string    `json:"label"`
	Position Position  `json:"position"`
	Data     *NodeData `json:"data,omitempty"`
}

// Edge is a directed transition between two nodes.
//
// SourceHandle is a branch discriminator ("yes" or "no") that is meaningful
// only when the source is a decision node. A decision node may have more
// than two outgoing edges, but only the first edge classified yes and the
// first classified no are treated specially by layout and generation;
// surplus edges are plain extra children.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// Data is a complete flow graph: the interchange format between the parser,
// generator, layout engine, editor state, and external storage.
type Data struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Empty reports whether the graph has no nodes.
func (d Data) Empty() bool { return len(d.Nodes) == 0 }

// NodeByID returns the node with the given ID, or nil if not present.
func (d Data) NodeByID(id string) *Node {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// Degrees returns the in-degree and out-degree of every node.
// Nodes without edges are present in both maps with a zero count.
func (d Data) Degrees() (in, out map[string]int) {
	in = make(map[string]int, len(d.Nodes))
	out = make(map[string]int, len(d.Nodes))
	for _, n := range d.Nodes {
		in[n.ID] = 0
		out[n.ID] = 0
	}
	for _, e := range d.Edges {
		out[e.Source]++
		in[e.Target]++
	}
	return in, out
}

// OutEdges returns the outgoing edges of the given node in declaration order.
func (d Data) OutEdges(id string) []Edge {
	var edges []Edge
	for _, e := range d.Edges {
		if e.Source == id {
			edges = append(edges, e)
		}
	}
	return edges
}

// Starts returns the nodes that act as entry points: every node typed start
// plus every node with no incoming edge, in declaration order.
func (d Data) Starts() []Node {
	in, _ := d.Degrees()
	var starts []Node
	for _, n := range d.Nodes {
		if n.Type == NodeStart || in[n.ID] == 0 {
			starts = append(starts, n)
		}
	}
	return starts
}

// Clone returns a deep copy of the graph.
func (d Data) Clone() Data {
	out := Data{
		Nodes: make([]Node, len(d.Nodes)),
		Edges: make([]Edge, len(d.Edges)),
	}
	copy(out.Nodes, d.Nodes)
	copy(out.Edges, d.Edges)
	for i := range out.Nodes {
		if out.Nodes[i].Data != nil {
			data := *out.Nodes[i].Data
			out.Nodes[i].Data = &data
		}
	}
	return out
}
