package flow

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGen produces node and edge identifiers for a single graph construction.
//
// The parser and the ASCII round-trip never share a generator between calls:
// each parse receives its own IDGen so that concurrent or repeated parses in
// the same process cannot collide, and tests can inject deterministic ids.
type IDGen interface {
	// NodeID returns the next node identifier.
	NodeID() string
	// EdgeID returns the next edge identifier.
	EdgeID() string
}

// Sequence is a deterministic counter-based IDGen producing ids of the form
// "node-1", "edge-1", and so on. It is the default strategy for parsing and
// the one used in tests. Sequence is not safe for concurrent use; create one
// per call.
type Sequence struct {
	nodes int
	edges int
}

// NewSequence creates a fresh deterministic id sequence starting at 1.
func NewSequence() *Sequence { return &Sequence{} }

// NodeID returns the next sequential node id.
func (s *Sequence) NodeID() string {
	s.nodes++
	return fmt.Sprintf("node-%d", s.nodes)
}

// EdgeID returns the next sequential edge id.
func (s *Sequence) EdgeID() string {
	s.edges++
	return fmt.Sprintf("edge-%d", s.edges)
}

// UUIDGen generates random UUIDv4 identifiers. Useful when graphs from
// independent parses are merged into one editor document and sequential ids
// would collide.
type UUIDGen struct{}

// NewUUIDGen creates a UUID-based id generator.
func NewUUIDGen() UUIDGen { return UUIDGen{} }

// NodeID returns a fresh UUID prefixed for readability in exported JSON.
func (UUIDGen) NodeID() string { return "node-" + uuid.NewString() }

// EdgeID returns a fresh UUID prefixed for readability in exported JSON.
func (UUIDGen) EdgeID() string { return "edge-" + uuid.NewString() }
