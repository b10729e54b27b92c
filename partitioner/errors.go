package partitioner

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// The three fatal error kinds of spec.md §7. Each aborts the build:
// Build returns a non-nil error and the Builder's Root/counters reflect
// whatever partial state existed at the moment of failure.
var (
	// ErrMalformedInput indicates a vertex referenced by a segment has no
	// edge tips at sector-query time.
	ErrMalformedInput = errors.New("partitioner: vertex has no edge tips at sector-query time")

	// ErrEmptyPartitionSide indicates a partitioning round produced a
	// right or left SuperBlock holding zero segments.
	ErrEmptyPartitionSide = errors.New("partitioner: partition produced an empty side")

	// ErrNoLineSideHalfEdge indicates a constructed leaf's ring has no
	// half-edge bound to a map line side.
	ErrNoLineSideHalfEdge = errors.New("partitioner: leaf ring has no map-line-side half-edge")
)

// BuildError wraps one of the fatal sentinel errors above with the
// context of where it was raised, on the model of the teacher's
// flow.EdgeError: a struct of named fields rather than a formatted
// string, so a caller can recover the offending index programmatically.
// At most one of Vertex/Segment/Leaf is meaningful for any given error;
// the other two hold their Invalid*Idx sentinel.
type BuildError struct {
	Stage   string
	Err     error
	Vertex  ids.VertexIdx
	Segment ids.SegIdx
	Leaf    ids.LeafIdx
}

func (e *BuildError) Error() string {
	switch {
	case e.Vertex != ids.InvalidVertexIdx:
		return fmt.Sprintf("partitioner: %s: vertex %d: %v", e.Stage, e.Vertex, e.Err)
	case e.Segment != ids.InvalidSegIdx:
		return fmt.Sprintf("partitioner: %s: segment %d: %v", e.Stage, e.Segment, e.Err)
	case e.Leaf != ids.InvalidLeafIdx:
		return fmt.Sprintf("partitioner: %s: leaf %d: %v", e.Stage, e.Leaf, e.Err)
	default:
		return fmt.Sprintf("partitioner: %s: %v", e.Stage, e.Err)
	}
}

func (e *BuildError) Unwrap() error { return e.Err }

// fatalf builds a BuildError with no associated index, for failures
// (such as context cancellation) that are not about one offending
// vertex/segment/leaf.
func fatalf(stage string, err error) error {
	return &BuildError{Stage: stage, Err: err, Vertex: ids.InvalidVertexIdx, Segment: ids.InvalidSegIdx, Leaf: ids.InvalidLeafIdx}
}

// fatalVertex builds a BuildError carrying the vertex index in scope at
// the failure site (spec.md §7 malformed-input condition).
func fatalVertex(stage string, err error, v ids.VertexIdx) error {
	return &BuildError{Stage: stage, Err: err, Vertex: v, Segment: ids.InvalidSegIdx, Leaf: ids.InvalidLeafIdx}
}

// fatalSeg builds a BuildError carrying the segment index in scope at
// the failure site.
func fatalSeg(stage string, err error, s ids.SegIdx) error {
	return &BuildError{Stage: stage, Err: err, Vertex: ids.InvalidVertexIdx, Segment: s, Leaf: ids.InvalidLeafIdx}
}

// fatalLeaf builds a BuildError carrying the leaf index in scope at the
// failure site.
func fatalLeaf(stage string, err error, l ids.LeafIdx) error {
	return &BuildError{Stage: stage, Err: err, Vertex: ids.InvalidVertexIdx, Segment: ids.InvalidSegIdx, Leaf: l}
}

// DiagnosticsObserver receives the non-fatal notifications of spec.md §6
// and §7. A Builder calls these synchronously from within Build; no
// implementation is required to be concurrency-safe since a single
// build is itself single-threaded (spec.md §5). Every method is
// optional to care about — embed DiagnosticsObserverBase to no-op the
// rest.
type DiagnosticsObserver interface {
	// OneWayWindowFound reports a one-sided line the window-effect
	// preprocessor annotated with a back-facing sector.
	OneWayWindowFound(line bspmap.LineRef, backFacingSector bspmap.Sector)
	// UnclosedSectorFound reports a partition gap whose sector could not
	// be closed on one (or, for a mismatch, either) side.
	UnclosedSectorFound(sector bspmap.Sector, nearPoint geom.Point)
	// MigrantHEdgeBuilt reports a leaf half-edge whose own sector
	// attribute differs from the leaf's chosen sector.
	MigrantHEdgeBuilt(hedge ids.SegIdx, facingSector bspmap.Sector)
	// PartialBspLeafBuilt reports a leaf whose ring has gapCount breaks
	// (segment.To not meeting the next half-edge's From).
	PartialBspLeafBuilt(leaf ids.LeafIdx, gapCount int)
}

// DiagnosticsObserverBase is an embeddable no-op DiagnosticsObserver;
// callers that only care about one or two notifications can embed this
// and override the rest.
type DiagnosticsObserverBase struct{}

func (DiagnosticsObserverBase) OneWayWindowFound(bspmap.LineRef, bspmap.Sector)  {}
func (DiagnosticsObserverBase) UnclosedSectorFound(bspmap.Sector, geom.Point)    {}
func (DiagnosticsObserverBase) MigrantHEdgeBuilt(ids.SegIdx, bspmap.Sector)      {}
func (DiagnosticsObserverBase) PartialBspLeafBuilt(ids.LeafIdx, int)            {}
