package vertexstore

import (
	"errors"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// Sentinel errors for vertexstore operations.
var (
	// ErrVertexNotFound indicates a reference to a vertex the store does
	// not hold (already released, or never allocated).
	ErrVertexNotFound = errors.New("vertexstore: vertex not found")

	// ErrEmptyTipRing indicates openSectorAtAngle (or its callers) was
	// invoked against a vertex with no edge tips. Per spec.md §4.6 this
	// is always a malformed-build condition, never a recoverable one.
	ErrEmptyTipRing = errors.New("vertexstore: vertex has an empty edge-tip ring")
)

// EdgeTip is one (angle, front segment, back segment) record in a
// vertex's edge-tip ring (spec.md §3). Front leaves the vertex along
// +angle; Back leaves it along the inverse direction. Either may be
// ids.InvalidSegIdx when that slot is empty.
type EdgeTip struct {
	Angle float64
	Front ids.SegIdx
	Back  ids.SegIdx
}

// Vertex is a 2D coordinate with a stable index and its edge-tip ring.
// Origin is immutable once the vertex is created, whether it came from
// the input map or was synthesized by a split.
type Vertex struct {
	Idx       ids.VertexIdx
	Origin    geom.Point
	Synthetic bool // true if created by the partitioner at a split point
	Tips      []EdgeTip
	released  bool
}

// IsSynthetic reports whether v was created by the partitioner (as opposed
// to coming directly from the input map).
func (v *Vertex) IsSynthetic() bool { return v.Synthetic }
