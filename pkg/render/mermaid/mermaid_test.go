package mermaid

import (
	"strings"
	"testing"

	"github.com/promptdeck/flownote/pkg/flow"
)

func TestRender(t *testing.T) {
	d := flow.Data{
		Nodes: []flow.Node{
			{ID: "s", Type: flow.NodeStart, Label: "Inicio"},
			{ID: "d", Type: flow.NodeDecision, Label: "Acepta?"},
			{ID: "a", Type: flow.NodeAction, Label: "Continuar"},
			{ID: "e", Type: flow.NodeEnd, Label: "Fin"},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "s", Target: "d"},
			{ID: "e2", Source: "d", Target: "a", Label: "Si"},
			{ID: "e3", Source: "d", Target: "e", Label: "No"},
		},
	}

	out := Render(d)
	if !strings.HasPrefix(out, "graph TD\n") {
		t.Errorf("missing graph header:\n%s", out)
	}

	// Node shapes by type
	if !strings.Contains(out, `s(["Inicio"])`) {
		t.Error("start node should use stadium shape")
	}
	if !strings.Contains(out, `d{"Acepta?"}`) {
		t.Error("decision node should use diamond shape")
	}
	if !strings.Contains(out, `a["Continuar"]`) {
		t.Error("action node should use box shape")
	}
	if !strings.Contains(out, `e(["Fin"])`) {
		t.Error("end node should use stadium shape")
	}

	// Edges
	if !strings.Contains(out, "s --> d") {
		t.Error("unlabeled edge missing")
	}
	if !strings.Contains(out, "d -->|Si| a") {
		t.Error("labeled edge missing")
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := Render(flow.Data{}); out != "" {
		t.Errorf("empty graph should render empty string, got %q", out)
	}
}

func TestRenderSanitizesIDs(t *testing.T) {
	d := flow.Data{
		Nodes: []flow.Node{
			{ID: "node-1", Type: flow.NodeAction, Label: "A"},
			{ID: "weird id!", Type: flow.NodeAction, Label: "B"},
		},
		Edges: []flow.Edge{{ID: "e1", Source: "node-1", Target: "weird id!"}},
	}

	out := Render(d)
	if !strings.Contains(out, "node_1") {
		t.Error("dashes in ids should become underscores")
	}
	if strings.Contains(out, "weird id!") {
		t.Error("unsafe id characters should be stripped")
	}
}

func TestRenderEscapesQuotes(t *testing.T) {
	d := flow.Data{Nodes: []flow.Node{{ID: "a", Type: flow.NodeAction, Label: `say "hola"`}}}
	out := Render(d)
	if strings.Contains(out, `"hola"`) {
		t.Errorf("labels should not contain raw double quotes:\n%s", out)
	}
}
