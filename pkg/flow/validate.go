package flow

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyNodeID is returned by [Validate] when a node has an empty id.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Validate] when two nodes share an id.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrInvalidNodeType is returned by [Validate] when a node's type is not
	// one of start, action, decision, or end.
	ErrInvalidNodeType = errors.New("invalid node type")

	// ErrUnknownEdgeEndpoint is returned by [Validate] when an edge references
	// a node id not present in the graph.
	ErrUnknownEdgeEndpoint = errors.New("edge references unknown node")
)

// Validate checks the structural invariants of a flow graph:
//
//  1. Node ids are non-empty and unique
//  2. Node types are valid
//  3. Every edge endpoint resolves to an existing node
//
// It returns nil for an empty graph. Reachability is not an invariant
// (disconnected diagrams are legal); use [Unreachable] to report on it.
func Validate(d Data) error {
	seen := make(map[string]bool, len(d.Nodes))
	for _, n := range d.Nodes {
		if n.ID == "" {
			return ErrEmptyNodeID
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		if !n.Type.Valid() {
			return fmt.Errorf("%w: %q on node %s", ErrInvalidNodeType, n.Type, n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range d.Edges {
		if !seen[e.Source] {
			return fmt.Errorf("%w: source %s", ErrUnknownEdgeEndpoint, e.Source)
		}
		if !seen[e.Target] {
			return fmt.Errorf("%w: target %s", ErrUnknownEdgeEndpoint, e.Target)
		}
	}
	return nil
}

// Unreachable returns the ids of nodes that cannot be reached from any entry
// point (see [Data.Starts]), in node declaration order. An empty result means
// the whole graph is connected to a start.
func Unreachable(d Data) []string {
	if d.Empty() {
		return nil
	}

	adj := make(map[string][]string, len(d.Nodes))
	for _, e := range d.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}

	visited := make(map[string]bool, len(d.Nodes))
	queue := make([]string, 0, len(d.Nodes))
	for _, n := range d.Starts() {
		if !visited[n.ID] {
			visited[n.ID] = true
			queue = append(queue, n.ID)
		}
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	var unreachable []string
	for _, n := range d.Nodes {
		if !visited[n.ID] {
			unreachable = append(unreachable, n.ID)
		}
	}
	return unreachable
}
