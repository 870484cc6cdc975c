// Package layout computes 2-D canvas positions for a flow graph, for
// interactive editing. It is the decision-branch-aware counterpart to the
// monospace layering done by the ASCII generator: nodes are layered by
// longest path from the entry points, and a decision's affirmative branch
// continues straight down in its parent's column so the common path stays
// visually centered, while negative and surplus branches fan out to fresh
// columns on the right.
//
// The engine ignores any positions already present on the input nodes and
// recomputes them from scratch. It never mutates its input.
package layout
