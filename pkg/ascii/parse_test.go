package ascii

import (
	"strings"
	"testing"

	"github.com/promptdeck/flownote/pkg/flow"
)

const linearDiagram = `┌──────────┐
│  Inicio  │
└──────────┘
      │
      ▼
┌──────────┐
│ Procesar │
└──────────┘
      │
      ▼
┌──────────┐
│   Fin    │
└──────────┘`

func TestParseEmpty(t *testing.T) {
	if d := Parse(""); d != nil {
		t.Error("empty block should parse to nil")
	}
	if d := Parse("   \n\t  "); d != nil {
		t.Error("whitespace block should parse to nil")
	}
}

func TestParseNoBoxes(t *testing.T) {
	if d := Parse("some text\nwith arrows -> but no boxes"); d != nil {
		t.Error("boxless block should parse to nil")
	}
}

func TestParseLinearFlow(t *testing.T) {
	d := Parse(linearDiagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}

	if len(d.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(d.Nodes))
	}
	if len(d.Edges) != 2 {
		t.Fatalf("got %d edges, want 2", len(d.Edges))
	}

	wantLabels := []string{"Inicio", "Procesar", "Fin"}
	wantTypes := []flow.NodeType{flow.NodeStart, flow.NodeAction, flow.NodeEnd}
	for i, n := range d.Nodes {
		if n.Label != wantLabels[i] {
			t.Errorf("node %d label = %q, want %q", i, n.Label, wantLabels[i])
		}
		if n.Type != wantTypes[i] {
			t.Errorf("node %d type = %s, want %s", i, n.Type, wantTypes[i])
		}
	}

	if d.Edges[0].Source != d.Nodes[0].ID || d.Edges[0].Target != d.Nodes[1].ID {
		t.Error("first edge should connect Inicio to Procesar")
	}
	if d.Edges[1].Source != d.Nodes[1].ID || d.Edges[1].Target != d.Nodes[2].ID {
		t.Error("second edge should connect Procesar to Fin")
	}

	// Sequential ids by default
	if d.Nodes[0].ID != "node-1" || d.Edges[0].ID != "edge-1" {
		t.Errorf("default ids should be sequential, got %s / %s", d.Nodes[0].ID, d.Edges[0].ID)
	}

	// One box per layer, stacked vertically
	for i := 1; i < len(d.Nodes); i++ {
		if d.Nodes[i].Position.Y <= d.Nodes[i-1].Position.Y {
			t.Error("stacked boxes should get increasing y positions")
		}
	}
}

func TestParseDecisionBranches(t *testing.T) {
	diagram := strings.Join([]string{
		"┌──────────────┐",
		"│    Inicio    │",
		"└──────────────┘",
		"        │",
		"        ▼",
		"┌──────────────┐",
		"│  ¿Responde?  │",
		"└──────────────┘",
		"    │          │",
		"    ▼          ▼",
		"┌──────┐   ┌──────┐",
		"│ Paso │   │ Fin  │",
		"└──────┘   └──────┘",
	}, "\n")

	d := Parse(diagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}
	if len(d.Nodes) != 4 {
		t.Fatalf("got %d nodes, want 4", len(d.Nodes))
	}

	decision := d.NodeByID(nodeByLabel(t, d, "¿Responde?"))
	if decision.Type != flow.NodeDecision {
		t.Errorf("question-mark box type = %s, want decision", decision.Type)
	}

	branches := d.OutEdges(decision.ID)
	if len(branches) != 2 {
		t.Fatalf("decision should have 2 branches, got %d", len(branches))
	}
	if branches[0].Label != "Si" || branches[0].SourceHandle != flow.HandleYes {
		t.Errorf("first branch = %q/%q, want Si/yes", branches[0].Label, branches[0].SourceHandle)
	}
	if branches[1].Label != "No" || branches[1].SourceHandle != flow.HandleNo {
		t.Errorf("second branch = %q/%q, want No/no", branches[1].Label, branches[1].SourceHandle)
	}

	// The yes branch goes to the left child
	if branches[0].Target != nodeByLabel(t, d, "Paso") {
		t.Error("yes branch should target the left child")
	}
}

func TestParseConnectionLabel(t *testing.T) {
	diagram := strings.Join([]string{
		"┌──────────┐",
		"│ Pago ok? │",
		"└──────────┘",
		"     │ Si",
		"     ▼",
		"┌──────────┐",
		"│   Fin    │",
		"└──────────┘",
	}, "\n")

	d := Parse(diagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}
	if len(d.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(d.Edges))
	}
	if d.Edges[0].Label != "Si" {
		t.Errorf("harvested label = %q, want Si", d.Edges[0].Label)
	}
}

func TestParseLongGapTokenDiscarded(t *testing.T) {
	diagram := strings.Join([]string{
		"┌──────────────────┐",
		"│      Inicio      │",
		"└──────────────────┘",
		"  │ una nota realmente muy larga",
		"  ▼",
		"┌──────────────────┐",
		"│       Fin        │",
		"└──────────────────┘",
	}, "\n")

	d := Parse(diagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}
	if len(d.Edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(d.Edges))
	}
	if d.Edges[0].Label != "" {
		t.Errorf("oversized gap token should be discarded, got %q", d.Edges[0].Label)
	}
}

func TestParseASCIIDialect(t *testing.T) {
	diagram := strings.Join([]string{
		"+--------+",
		"| Inicio |",
		"+--------+",
		"    |",
		"    v",
		"+--------+",
		"|  Fin   |",
		"+--------+",
	}, "\n")

	d := Parse(diagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}
	if len(d.Nodes) != 2 || len(d.Edges) != 1 {
		t.Fatalf("got %d nodes / %d edges, want 2 / 1", len(d.Nodes), len(d.Edges))
	}
	if d.Nodes[0].Label != "Inicio" || d.Nodes[1].Label != "Fin" {
		t.Errorf("labels = %q, %q", d.Nodes[0].Label, d.Nodes[1].Label)
	}
	if d.Nodes[0].Type != flow.NodeStart || d.Nodes[1].Type != flow.NodeEnd {
		t.Errorf("types = %s, %s", d.Nodes[0].Type, d.Nodes[1].Type)
	}
}

func TestParseChainFallback(t *testing.T) {
	// No drawn connectors at all: boxes are chained in reading order.
	diagram := strings.Join([]string{
		"┌──────┐",
		"│ Uno  │",
		"└──────┘",
		"",
		"",
		"",
		"┌──────┐",
		"│ Dos  │",
		"└──────┘",
	}, "\n")

	d := Parse(diagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}
	if len(d.Edges) != 1 {
		t.Fatalf("fallback should produce 1 edge, got %d", len(d.Edges))
	}
	if d.Edges[0].Source != nodeByLabel(t, d, "Uno") || d.Edges[0].Target != nodeByLabel(t, d, "Dos") {
		t.Error("fallback edge should follow reading order")
	}
}

func TestInferTypesForcedStartEnd(t *testing.T) {
	// A cycle gives every box both degrees, so nothing is typed start or end
	// by connectivity; the post-pass must still produce one of each.
	boxes := []box{
		{label: "primero", row: 0},
		{label: "segundo", row: 5},
	}
	conns := []connection{{from: 0, to: 1}, {from: 1, to: 0}}

	types := inferTypes(boxes, conns)
	if types[0] != flow.NodeStart {
		t.Errorf("topmost type = %s, want forced start", types[0])
	}
	if types[1] != flow.NodeEnd {
		t.Errorf("bottommost type = %s, want forced end", types[1])
	}
}

func TestParseTallBoxIgnored(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("┌──────┐\n")
	for i := 0; i < 12; i++ {
		sb.WriteString("│ alto │\n")
	}
	sb.WriteString("└──────┘")

	if d := Parse(sb.String()); d != nil {
		t.Error("box taller than the depth cap should not be recognized")
	}
}

func TestParseRowTolerance(t *testing.T) {
	// Two boxes offset by two rows: the default tolerance clusters them into
	// one layer, a tolerance of one splits them.
	diagram := strings.Join([]string{
		"┌──────┐",
		"│ Uno  │",
		"└──────┘      ┌──────┐",
		"              │ Dos  │",
		"              └──────┘",
	}, "\n")

	d := Parse(diagram)
	if d == nil {
		t.Fatal("Parse returned nil")
	}
	if d.Nodes[0].Position.Y != d.Nodes[1].Position.Y {
		t.Error("default tolerance should cluster offset boxes into one layer")
	}

	d = ParseWith(diagram, ParseOptions{RowTolerance: 1})
	if d == nil {
		t.Fatal("ParseWith returned nil")
	}
	if d.Nodes[0].Position.Y == d.Nodes[1].Position.Y {
		t.Error("tolerance 1 should split offset boxes into separate layers")
	}
}

func TestParseWithCustomIDs(t *testing.T) {
	d := ParseWith(linearDiagram, ParseOptions{IDs: flow.NewUUIDGen()})
	if d == nil {
		t.Fatal("ParseWith returned nil")
	}
	for _, n := range d.Nodes {
		if !strings.HasPrefix(n.ID, "node-") || len(n.ID) < 10 {
			t.Errorf("expected uuid-based id, got %q", n.ID)
		}
	}
}

// nodeByLabel returns the id of the node with the given label, failing the
// test when absent.
func nodeByLabel(t *testing.T, d *flow.Data, label string) string {
	t.Helper()
	for _, n := range d.Nodes {
		if n.Label == label {
			return n.ID
		}
	}
	t.Fatalf("no node labeled %q", label)
	return ""
}
