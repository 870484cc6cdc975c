package ascii

import "strings"

// maxBoxDepth caps the downward search for a box's bottom edge. It is a hard
// safety bound against malformed or unterminated art: a box taller than this
// is treated as not a box and scanning continues at the next cell.
const maxBoxDepth = 10

// minBoxWidth rejects degenerate rectangles narrower than three columns.
const minBoxWidth = 3

// box is a detected rectangle on the character grid. Boxes are transient:
// they exist only between box detection and graph construction.
type box struct {
	label   string
	row     int // top border row
	col     int // left border column
	width   int // columns including borders
	height  int // rows including borders
	centerX int
	centerY int
}

func (b box) bottom() int { return b.row + b.height - 1 }
func (b box) right() int  { return b.col + b.width - 1 }

// grid is the character matrix of a diagram block.
type grid [][]rune

func newGrid(block string) grid {
	lines := strings.Split(block, "\n")
	g := make(grid, len(lines))
	for i, line := range lines {
		g[i] = []rune(line)
	}
	return g
}

func (g grid) at(row, col int) rune {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ' '
	}
	return g[row][col]
}

// findBoxes scans the grid row-major for box top-left corners and extracts
// every well-formed rectangle. Malformed or unterminated boxes are silently
// skipped. Boxes whose interior strips down to an empty label are discarded.
func (g grid) findBoxes() []box {
	visited := make(map[[2]int]bool)
	var boxes []box

	for row := range g {
		for col := range g[row] {
			if visited[[2]int{row, col}] {
				continue
			}
			r := g[row][col]
			unicodeCorner := isTopLeft(r)
			asciiCorner := r == '+' && g.at(row, col+1) == '-'
			if !unicodeCorner && !asciiCorner {
				continue
			}
			b, ok := g.extractBox(row, col)
			if !ok {
				continue
			}
			visited[[2]int{row, col}] = true
			// In the ASCII dialect + serves as every corner, so a box's
			// bottom edge would re-match as a top edge for a phantom box
			// spanning the gap below. Consume it.
			visited[[2]int{b.bottom(), col}] = true
			if b.label == "" {
				continue
			}
			boxes = append(boxes, b)
		}
	}
	return boxes
}

// extractBox attempts to read a complete box whose top-left corner sits at
// (row, col). It walks right along the top edge to a matching top-right
// corner, then down the left column (capped at maxBoxDepth rows) to a bottom
// edge that terminates in a bottom-right corner.
func (g grid) extractBox(row, col int) (box, bool) {
	// Top edge.
	endCol := col + 1
	for isHorizontal(g.at(row, endCol)) {
		endCol++
	}
	if !isTopRight(g.at(row, endCol)) && g.at(row, endCol) != '+' {
		return box{}, false
	}
	width := endCol - col + 1
	if width < minBoxWidth {
		return box{}, false
	}

	// Bottom edge, scanning down the left column.
	bottomRow := -1
	for r := row + 1; r <= row+maxBoxDepth && r < len(g); r++ {
		if !isBottomLeft(g.at(r, col)) {
			continue
		}
		if g.completeBottomEdge(r, col, endCol) {
			bottomRow = r
			break
		}
	}
	if bottomRow < 0 {
		return box{}, false
	}

	height := bottomRow - row + 1
	b := box{
		label:   g.boxLabel(row, bottomRow, col, endCol),
		row:     row,
		col:     col,
		width:   width,
		height:  height,
		centerX: col + width/2,
		centerY: row + height/2,
	}
	return b, true
}

// completeBottomEdge reports whether row r forms a full bottom border from
// col to endCol ending in a matching bottom-right corner.
func (g grid) completeBottomEdge(r, col, endCol int) bool {
	for c := col + 1; c < endCol; c++ {
		if !isHorizontal(g.at(r, c)) {
			return false
		}
	}
	return isBottomRight(g.at(r, endCol))
}

// boxLabel concatenates the interior lines of a box into a single label,
// stripping border and quote characters and collapsing whitespace.
func (g grid) boxLabel(top, bottom, left, right int) string {
	var parts []string
	for r := top + 1; r < bottom; r++ {
		var sb strings.Builder
		for c := left + 1; c < right; c++ {
			ch := g.at(r, c)
			if isVertical(ch) || ch == '"' || ch == '\'' {
				continue
			}
			sb.WriteRune(ch)
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
