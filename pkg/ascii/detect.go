package ascii

import "strings"

// Detection describes a probable ASCII-diagram block inside a larger text.
// StartLine and EndLine are inclusive zero-based line indices into the
// original text; RawBlock is the block content with original line breaks.
type Detection struct {
	Confidence float64
	StartLine  int
	EndLine    int
	RawBlock   string
}

// Detector thresholds and score weights. The additive score is capped at 1.0
// and a block is accepted only when it reaches minConfidence.
const (
	minDetectLen  = 10  // texts shorter than this never contain a diagram
	minRunLines   = 3   // drawing lines required before a run is a candidate
	minConfidence = 0.5 // acceptance threshold

	scoreUnicodeBox = 0.4
	scoreASCIIEdge  = 0.3
	scoreArrows     = 0.2
	scoreLineCount  = 0.1
)

// Detect scans text for the highest-scoring run of box-drawing lines and
// returns it, or nil when no run reaches the acceptance threshold.
//
// A run is a sequence of consecutive drawing lines; blank lines inside a run
// are tolerated and do not break it. Runs of at least three drawing lines
// are scored, the best across the whole text wins, and leading/trailing
// blank lines are trimmed from the accepted span.
//
// A nil result is a negative signal, not an error: the caller should fall
// back to other extraction strategies (e.g. LLM-based narrative detection).
func Detect(text string) *Detection {
	if len(text) < minDetectLen {
		return nil
	}

	lines := strings.Split(text, "\n")

	var best *Detection
	runStart := -1
	drawingCount := 0

	flush := func(endExclusive int) {
		if runStart < 0 {
			return
		}
		start, end := runStart, endExclusive-1
		runStart = -1
		count := drawingCount
		drawingCount = 0
		if count < minRunLines {
			return
		}
		// Trim blank edges of the span.
		for start <= end && strings.TrimSpace(lines[start]) == "" {
			start++
		}
		for end >= start && strings.TrimSpace(lines[end]) == "" {
			end--
		}
		if start > end {
			return
		}
		block := strings.Join(lines[start:end+1], "\n")
		conf := scoreBlock(lines[start : end+1])
		if conf < minConfidence {
			return
		}
		if best == nil || conf > best.Confidence {
			best = &Detection{
				Confidence: conf,
				StartLine:  start,
				EndLine:    end,
				RawBlock:   block,
			}
		}
	}

	for i, line := range lines {
		switch {
		case hasDrawing(line):
			if runStart < 0 {
				runStart = i
			}
			drawingCount++
		case strings.TrimSpace(line) == "":
			// Blank lines inside a run are tolerated.
		default:
			flush(i)
		}
	}
	flush(len(lines))

	return best
}

// scoreBlock computes the additive confidence score for a block of lines.
func scoreBlock(block []string) float64 {
	var (
		unicode  bool
		asciiTop bool
		arrows   bool
		boxLines int
	)
	for _, line := range block {
		isBoxLine := false
		if hasUnicodeBox(line) {
			unicode = true
			isBoxLine = true
		}
		if asciiTopRe.MatchString(line) {
			asciiTop = true
			isBoxLine = true
		}
		if hasArrow(line) {
			arrows = true
		}
		if isBoxLine {
			boxLines++
		}
	}

	score := 0.0
	if unicode {
		score += scoreUnicodeBox
	}
	if asciiTop {
		score += scoreASCIIEdge
	}
	if arrows {
		score += scoreArrows
	}
	if boxLines >= minRunLines {
		score += scoreLineCount
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Bounds returns the absolute byte offsets [start, end) of the detected
// block within the original text, for in-place splicing. The text must be
// the same string the detection was produced from.
func (det *Detection) Bounds(text string) (start, end int) {
	lines := strings.Split(text, "\n")
	for i := 0; i < det.StartLine && i < len(lines); i++ {
		start += len(lines[i]) + 1
	}
	end = start
	for i := det.StartLine; i <= det.EndLine && i < len(lines); i++ {
		end += len(lines[i]) + 1
	}
	if end > start {
		end-- // no trailing newline inside the block
	}
	return start, end
}
