package ascii

import (
	"math"
	"strings"
	"testing"
)

func TestDetectMinimalUnicodeBox(t *testing.T) {
	text := "┌─────┐\n│ Foo │\n└─────┘"

	det := Detect(text)
	if det == nil {
		t.Fatal("three-line unicode box should be detected")
	}
	// Unicode glyphs (0.4) plus three box lines (0.1) reach the threshold
	// exactly.
	if math.Abs(det.Confidence-0.5) > 1e-9 {
		t.Errorf("Confidence = %v, want 0.5", det.Confidence)
	}
	if det.StartLine != 0 || det.EndLine != 2 {
		t.Errorf("span = [%d, %d], want [0, 2]", det.StartLine, det.EndLine)
	}
	if det.RawBlock != text {
		t.Errorf("RawBlock = %q", det.RawBlock)
	}
}

func TestDetectFullScore(t *testing.T) {
	text := strings.Join([]string{
		"┌─────┐",
		"│ Uno │",
		"└─────┘",
		"   │",
		"   ▼",
		"+-----+",
		"| Dos |",
		"+-----+",
	}, "\n")

	det := Detect(text)
	if det == nil {
		t.Fatal("mixed-dialect diagram should be detected")
	}
	if det.Confidence != 1.0 {
		t.Errorf("Confidence = %v, want 1.0 (capped)", det.Confidence)
	}
}

func TestDetectRejectsProse(t *testing.T) {
	text := "This is an ordinary paragraph.\nIt has several lines of prose.\nNo diagram anywhere."
	if det := Detect(text); det != nil {
		t.Errorf("prose should not be detected, got confidence %v", det.Confidence)
	}
}

func TestDetectRejectsShortText(t *testing.T) {
	if det := Detect("┌┐"); det != nil {
		t.Error("text below the minimum length should not be detected")
	}
}

func TestDetectRejectsWeakRun(t *testing.T) {
	// Lines with | and + register as drawing but carry no box edges, arrows,
	// or unicode glyphs, so the run scores zero.
	text := "| a + b |\n| c + d |\n| e + f |"
	if det := Detect(text); det != nil {
		t.Errorf("weak run should score below threshold, got %v", det.Confidence)
	}
}

func TestDetectInsideProse(t *testing.T) {
	text := strings.Join([]string{
		"Here is the flow you asked for:",
		"",
		"┌────────┐",
		"│ Inicio │",
		"└────────┘",
		"    │",
		"    ▼",
		"┌────────┐",
		"│  Fin   │",
		"└────────┘",
		"",
		"Let me know if it needs changes.",
	}, "\n")

	det := Detect(text)
	if det == nil {
		t.Fatal("embedded diagram should be detected")
	}
	if det.StartLine != 2 || det.EndLine != 9 {
		t.Errorf("span = [%d, %d], want [2, 9]", det.StartLine, det.EndLine)
	}
	if strings.Contains(det.RawBlock, "flow you asked") {
		t.Error("RawBlock should not include surrounding prose")
	}
}

func TestDetectBlankLinesInsideRun(t *testing.T) {
	text := strings.Join([]string{
		"┌────────┐",
		"│ Inicio │",
		"└────────┘",
		"",
		"┌────────┐",
		"│  Fin   │",
		"└────────┘",
	}, "\n")

	det := Detect(text)
	if det == nil {
		t.Fatal("blank line should not break the run")
	}
	if det.StartLine != 0 || det.EndLine != 6 {
		t.Errorf("span = [%d, %d], want [0, 6]", det.StartLine, det.EndLine)
	}
}

func TestDetectionBounds(t *testing.T) {
	block := "┌─────┐\n│ Box │\n└─────┘"
	prefix := "intro line\n"
	text := prefix + block + "\noutro line"

	det := Detect(text)
	if det == nil {
		t.Fatal("diagram should be detected")
	}

	start, end := det.Bounds(text)
	if text[start:end] != block {
		t.Errorf("Bounds splice = %q, want the block", text[start:end])
	}
	if start != len(prefix) {
		t.Errorf("start = %d, want %d", start, len(prefix))
	}
}
