package dot

import (
	"strings"
	"testing"

	"github.com/promptdeck/flownote/pkg/flow"
)

func sampleFlow() flow.Data {
	return flow.Data{
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
}

func TestToDOT(t *testing.T) {
	out := ToDOT(sampleFlow(), Options{})

	if !strings.HasPrefix(out, "digraph flow {") {
		t.Errorf("missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, "rankdir=TB") {
		t.Error("default rankdir should be TB")
	}

	// Shapes per node type
	if !strings.Contains(out, `"s" [label="Inicio", shape=oval`) {
		t.Error("start node should render as oval")
	}
	if !strings.Contains(out, `"d" [label="Acepta?", shape=diamond`) {
		t.Error("decision node should render as diamond")
	}
	if !strings.Contains(out, `"a" [label="Continuar", shape=box`) {
		t.Error("action node should render as box")
	}

	// Edge labels
	if !strings.Contains(out, `"d" -> "a" [label="Si"];`) {
		t.Error("labeled edge should carry its label")
	}
	if !strings.Contains(out, `"s" -> "d";`) {
		t.Error("unlabeled edge should render bare")
	}
}

func TestToDOTRankDir(t *testing.T) {
	out := ToDOT(sampleFlow(), Options{RankDir: "LR"})
	if !strings.Contains(out, "rankdir=LR") {
		t.Error("RankDir option should be honored")
	}
}

func TestToDOTDetailed(t *testing.T) {
	out := ToDOT(sampleFlow(), Options{Detailed: true})
	if !strings.Contains(out, "(s: start)") {
		t.Errorf("detailed labels should include id and type:\n%s", out)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	d := sampleFlow()
	if ToDOT(d, Options{}) != ToDOT(d, Options{}) {
		t.Error("ToDOT should be deterministic")
	}
}

func TestToDOTEmptyLabelFallsBackToID(t *testing.T) {
	d := flow.Data{Nodes: []flow.Node{{ID: "n1", Type: flow.NodeAction}}}
	out := ToDOT(d, Options{})
	if !strings.Contains(out, `label="n1"`) {
		t.Errorf("empty label should fall back to id:\n%s", out)
	}
}
