package ascii

import (
	"regexp"
	"strings"
)

// Box-drawing glyph sets. Single-line and double-line Unicode forms are
// accepted everywhere; the ASCII dialect uses + - | instead.
const (
	topLeftGlyphs     = "┌╔"
	topRightGlyphs    = "┐╗"
	bottomLeftGlyphs  = "└╚"
	bottomRightGlyphs = "┘╝"
	horizontalGlyphs  = "─═"
	verticalGlyphs    = "│║"
	arrowGlyphs       = "▼▲◄►↓↑←→"
	unicodeBoxGlyphs  = "┌┐└┘│─╔╗╚╝║═├┤┬┴┼"
)

// asciiTopRe matches the ASCII dialect's box top/bottom edge: +----+.
var asciiTopRe = regexp.MustCompile(`\+-{2,}\+`)

func isTopLeft(r rune) bool     { return strings.ContainsRune(topLeftGlyphs, r) }
func isTopRight(r rune) bool    { return strings.ContainsRune(topRightGlyphs, r) }
func isBottomLeft(r rune) bool  { return strings.ContainsRune(bottomLeftGlyphs, r) || r == '+' }
func isBottomRight(r rune) bool { return strings.ContainsRune(bottomRightGlyphs, r) || r == '+' }
func isHorizontal(r rune) bool  { return strings.ContainsRune(horizontalGlyphs, r) || r == '-' }
func isVertical(r rune) bool    { return strings.ContainsRune(verticalGlyphs, r) || r == '|' }
func isArrow(r rune) bool       { return strings.ContainsRune(arrowGlyphs, r) || r == 'v' || r == '^' }

// isConnector reports whether r can form part of a drawn connection between
// two boxes: vertical strokes and arrow heads.
func isConnector(r rune) bool { return isVertical(r) || isArrow(r) }

func hasUnicodeBox(line string) bool {
	return strings.ContainsAny(line, unicodeBoxGlyphs)
}

func hasArrow(line string) bool {
	if strings.ContainsAny(line, arrowGlyphs) {
		return true
	}
	// Bare "v" arrows only count when the line carries other drawing marks,
	// otherwise ordinary prose would match.
	return strings.Contains(line, "->") || strings.Contains(line, "<-")
}

// hasDrawing reports whether a line carries any box-drawing signal: Unicode
// box glyphs, an ASCII +---+ edge, arrow glyphs, or a |-bearing line that
// also contains + or ─.
func hasDrawing(line string) bool {
	if hasUnicodeBox(line) || asciiTopRe.MatchString(line) || hasArrow(line) {
		return true
	}
	if strings.Contains(line, "|") && strings.ContainsAny(line, "+─") {
		return true
	}
	return false
}
