package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/promptdeck/flownote/pkg/cache"
	"github.com/promptdeck/flownote/pkg/errors"
	"github.com/promptdeck/flownote/pkg/flow"
)

const sampleDiagram = `┌──────────┐
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

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"ascii", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"mermaid", false},
		{"invalid", true},
		{"ASCII", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options should fail validation")
	}

	o = Options{Text: sampleDiagram}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if len(o.Formats) == 0 {
		t.Error("Formats should default")
	}
	if o.ColumnGap == 0 || o.RowGap == 0 || o.Padding == 0 {
		t.Error("layout gaps should default")
	}
	if o.RankDir != "TB" {
		t.Errorf("RankDir should default to TB, got %q", o.RankDir)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(cache.NewNullCache(), nil, discardLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Text:    sampleDiagram,
		Formats: []string{FormatASCII, FormatJSON, FormatDOT, FormatMermaid},
		IDs:     flow.NewSequence(),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Detection == nil {
		t.Fatal("Detection should be set for text input")
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Stats.NodeCount)
	}
	if result.Stats.EdgeCount != 2 {
		t.Errorf("EdgeCount = %d, want 2", result.Stats.EdgeCount)
	}
	if result.FlowHash == "" {
		t.Error("FlowHash should be set")
	}

	for _, format := range []string{FormatASCII, FormatJSON, FormatDOT, FormatMermaid} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing artifact for %s", format)
		}
	}

	if !strings.Contains(string(result.Artifacts[FormatMermaid]), "graph TD") {
		t.Error("mermaid artifact should contain graph TD header")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph flow") {
		t.Error("dot artifact should contain digraph header")
	}

	// Layout positions applied
	for _, n := range result.Flow.Nodes {
		if n.Position.X == 0 && n.Position.Y == 0 {
			t.Errorf("node %s has no layout position", n.ID)
		}
	}
}

func TestRunnerExecuteNoDiagram(t *testing.T) {
	r := NewRunner(nil, nil, discardLogger())
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Text: "just a plain sentence"})
	if err == nil {
		t.Fatal("expected error for text without a diagram")
	}
	if !errors.Is(err, errors.ErrCodeNoDiagram) {
		t.Errorf("expected NO_DIAGRAM code, got %v", err)
	}
}

func TestRunnerExecuteFlowInput(t *testing.T) {
	d := flow.Data{
		Nodes: []flow.Node{
			{ID: "a", Type: flow.NodeStart, Label: "Start"},
			{ID: "b", Type: flow.NodeEnd, Label: "End"},
		},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "b"}},
	}

	r := NewRunner(nil, nil, discardLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Flow:    &d,
		Formats: []string{FormatASCII},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Detection != nil {
		t.Error("Detection should be nil for graph input")
	}
	if len(result.Artifacts[FormatASCII]) == 0 {
		t.Error("missing ascii artifact")
	}
}

func TestRunnerExecuteInvalidFlow(t *testing.T) {
	d := flow.Data{
		Nodes: []flow.Node{{ID: "a", Type: flow.NodeStart}},
		Edges: []flow.Edge{{ID: "e1", Source: "a", Target: "ghost"}},
	}

	r := NewRunner(nil, nil, discardLogger())
	defer r.Close()

	_, err := r.Execute(context.Background(), Options{Flow: &d, Formats: []string{FormatJSON}})
	if err == nil {
		t.Fatal("expected error for invalid graph")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFlow) {
		t.Errorf("expected INVALID_FLOW code, got %v", err)
	}
}

func TestRunnerCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(fc, nil, discardLogger())
	defer r.Close()

	opts := Options{
		Text:    sampleDiagram,
		Formats: []string{FormatASCII, FormatJSON},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.ParseHit {
		t.Error("second run should hit parse cache")
	}
	if !second.CacheInfo.LayoutHit {
		t.Error("second run should hit layout cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit render cache")
	}

	if first.FlowHash != second.FlowHash {
		t.Error("FlowHash should be stable across runs")
	}
	if string(first.Artifacts[FormatASCII]) != string(second.Artifacts[FormatASCII]) {
		t.Error("cached ascii artifact should match")
	}
}

func TestRunnerCachingRefresh(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	r := NewRunner(fc, nil, discardLogger())
	defer r.Close()

	opts := Options{Text: sampleDiagram, Formats: []string{FormatASCII}}
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("first Execute error: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if result.CacheInfo.ParseHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("refresh run should bypass cache")
	}
}
