package flow

import "strings"

// Branch is the classification of a decision node's outgoing edge.
type Branch int

const (
	// BranchUnclassified means neither the handle nor the label identifies
	// the edge as a yes or no branch.
	BranchUnclassified Branch = iota
	// BranchYes is the affirmative branch of a decision.
	BranchYes
	// BranchNo is the negative branch of a decision.
	BranchNo
)

// String returns the branch name for logging and test output.
func (b Branch) String() string {
	switch b {
	case BranchYes:
		return "yes"
	case BranchNo:
		return "no"
	default:
		return "unclassified"
	}
}

// yesLabels is the accepted label vocabulary for the affirmative branch.
// Diagrams produced by the prompt editor are typically Spanish, so the
// Spanish forms appear alongside the English ones.
var yesLabels = map[string]bool{
	"si":         true,
	"sí":         true,
	"si/depende": true,
	"yes":        true,
	"y":          true,
	"true":       true,
}

// noLabels is the accepted label vocabulary for the negative branch.
var noLabels = map[string]bool{
	"no":    true,
	"n":     true,
	"false": true,
}

// ClassifyBranch classifies an outgoing edge of a decision node.
//
// The source handle wins when present; otherwise the label is matched
// case-insensitively against the enumerated yes/no vocabulary. Anything else
// is BranchUnclassified, which layout and generation treat as "fill whichever
// slot is still empty, yes first".
func ClassifyBranch(e Edge) Branch {
	switch e.SourceHandle {
	case HandleYes:
		return BranchYes
	case HandleNo:
		return BranchNo
	}
	label := strings.ToLower(strings.TrimSpace(e.Label))
	switch {
	case yesLabels[label]:
		return BranchYes
	case noLabels[label]:
		return BranchNo
	}
	return BranchUnclassified
}
