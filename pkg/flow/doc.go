// Package flow defines the canonical conversation-flow graph model shared by
// the detector, parser, generator, and layout engine.
//
// A flow is a directed graph of typed steps: a conversation enters at a start
// node, moves through action and decision nodes, and terminates at one or
// more end nodes. Decision nodes carry (conceptually) a yes/no branch,
// rendered as two outgoing edges discriminated by SourceHandle or label.
//
// The [Data] struct is the interchange format used both for in-memory editor
// state and for persistence by external storage. It serializes to a stable
// JSON shape; see [MarshalData] and [UnmarshalData].
//
// All types in this package are plain values with no hidden state. Functions
// that derive new graphs allocate fresh structures and never mutate their
// inputs, so values can safely be shared across goroutines for reading.
package flow
