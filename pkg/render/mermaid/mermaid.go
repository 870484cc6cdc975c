// Package mermaid renders flow graphs as Mermaid flowchart text, for
// embedding in Markdown documentation and chat clients that render Mermaid.
package mermaid

import (
	"fmt"
	"strings"

	"github.com/promptdeck/flownote/pkg/flow"
)

// Render converts a flow graph to a Mermaid "graph TD" flowchart.
// Returns the empty string for a graph with no nodes.
func Render(d flow.Data) string {
	if d.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, n := range d.Nodes {
		b.WriteString("    " + nodeDef(n) + "\n")
	}

	for _, e := range d.Edges {
		label := ""
		if e.Label != "" {
			label = fmt.Sprintf("|%s|", escapeLabel(e.Label))
		}
		fmt.Fprintf(&b, "    %s -->%s %s\n", safeID(e.Source), label, safeID(e.Target))
	}

	return b.String()
}

// nodeDef returns a Mermaid node definition with the shape matching the
// node's type: stadium for start/end, diamond for decisions, box otherwise.
func nodeDef(n flow.Node) string {
	id := safeID(n.ID)
	label := escapeLabel(n.Label)
	if label == "" {
		label = id
	}

	switch n.Type {
	case flow.NodeStart, flow.NodeEnd:
		return fmt.Sprintf("%s([%q])", id, label)
	case flow.NodeDecision:
		return fmt.Sprintf("%s{%q}", id, label)
	default:
		return fmt.Sprintf("%s[%q]", id, label)
	}
}

// safeID strips characters Mermaid cannot digest in identifiers.
func safeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		case r == '-':
			return '_'
		default:
			return -1
		}
	}, id)
}

// escapeLabel neutralizes quote characters inside labels.
func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "'")
}
