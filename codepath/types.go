// Package codepath builds, for each executable scope (program body,
// function body, class static block, class field initializer), a directed
// graph of straight-line segments joined by reachability edges — including
// loop back-edges, exception edges from throw statements, and short-circuit
// edges from &&, ||, ?? and ?:. Optional chaining (?.) does not fork the
// path.
//
// Segments live in a per-path arena and are referred to by SegmentID, never
// by pointer, so the inherent cycles of loop back-edges don't require
// special-casing in Go (the arena + opaque-id design note).
package codepath

import "github.com/helixbass/tree-sitter-lint-plugin-eslint-builtin-sub004/internal/snode"

type SegmentID int

// Origin is the kind of executable scope a CodePath was built for.
type Origin int

const (
	OriginProgram Origin = iota
	OriginFunction
	OriginClassFieldInitializer
	OriginClassStaticBlock
)

// Segment is a straight-line run of statements/expressions.
type Segment struct {
	ID SegmentID

	// PrevSegments holds only reachable predecessors; AllPrevSegments
	// includes unreachable ones too.
	PrevSegments    []SegmentID
	AllPrevSegments []SegmentID
	NextSegments    []SegmentID
	AllNextSegments []SegmentID

	// LoopedPrevSegments records predecessors reached via a loop
	// back-edge, so traversal can recognize (and not require visiting
	// before) a cycle.
	LoopedPrevSegments []SegmentID

	Reachable bool
	used      bool

	Nodes []NodeEvent
}

type EventKind int

const (
	Enter EventKind = iota
	Exit
)

type NodeEvent struct {
	Kind EventKind
	Node snode.Node
}

// CodePath is the per-executable-scope code-path graph.
type CodePath struct {
	ID       string
	Origin   Origin
	Root     snode.Node // the function/program/field-initializer/static-block node

	InitialSegment  SegmentID
	FinalSegments   []SegmentID
	ReturnedSegments []SegmentID
	ThrownSegments  []SegmentID

	ChildCodePaths []*CodePath
	Parent         *CodePath

	segments []*Segment
	state    *state
}

func (cp *CodePath) Segment(id SegmentID) *Segment { return cp.segments[id] }

func (cp *CodePath) AllSegments() []*Segment { return cp.segments }

func (cp *CodePath) newSegmentID() SegmentID {
	id := SegmentID(len(cp.segments))
	cp.segments = append(cp.segments, &Segment{ID: id})
	return id
}
