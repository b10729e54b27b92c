package segstore

import (
	"errors"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// Sentinel errors for segstore operations.
var (
	// ErrSegmentNotFound indicates a reference to a segment the store
	// does not hold.
	ErrSegmentNotFound = errors.New("segstore: segment not found")

	// ErrDegenerateSegment indicates an attempt to create a segment
	// whose endpoints coincide (From == To), violating spec.md §3's
	// "from and to are never equal" invariant.
	ErrDegenerateSegment = errors.New("segstore: segment endpoints coincide")

	// ErrAlongEdge indicates OpenSectorAtAngle was asked for the sector
	// along a direction that runs exactly along an existing edge tip,
	// which spec.md §4.6 treats as a closed (non-open) direction rather
	// than a sector query.
	ErrAlongEdge = errors.New("segstore: angle runs along an existing edge, not an open sector")
)

// MapSide groups every segment descended from one side (front or back)
// of one original map line, so that §4.5's splice-on-split and §4.10's
// leftmost/rightmost boundary bookkeeping have somewhere to live. Two
// segments share a MapSide if and only if they share a SourceLine and
// an IsBack value.
type MapSide struct {
	Line   bspmap.LineRef
	IsBack bool

	// Leftmost, Rightmost are populated once, the first time leaf
	// winding (spec.md §4.10 step 4) walks this side's prevOnSide/
	// nextOnSide chain to its ends.
	Leftmost, Rightmost ids.SegIdx
	boundariesSet       bool
}

// LineSegment is a directed 2D segment bounding one side of a sub-region
// (spec.md §3).
type LineSegment struct {
	Idx ids.SegIdx

	From, To             ids.VertexIdx
	FromOrigin, ToOrigin geom.Point

	// Sector is the sector this segment's front faces. May be nil for
	// synthetic caps crossing open space.
	Sector bspmap.Sector

	// SourceLine is the originating map line, or nil for a synthetic
	// cap. Two segments with the same non-nil SourceLine are collinear
	// regardless of arithmetic (spec.md §4.1).
	SourceLine bspmap.LineRef

	// Side is this segment's MapSide record, or nil for a cap.
	Side *MapSide

	Twin ids.SegIdx // ids.InvalidSegIdx if one-sided

	PrevOnSide, NextOnSide ids.SegIdx // ids.InvalidSegIdx at chain ends

	Block ids.BlockIdx // ids.InvalidBlockIdx while being partitioned

	// Precomputed geometry, refreshed by recompute() on creation and on
	// every split.
	Direction geom.Vector
	Normal    geom.Vector // unit direction rotated 90° (spec.md §4.1 coefficients)
	Unit      geom.Vector // unit direction, for parallel-distance queries
	Length    float64
	Angle     float64
	Slope     geom.SlopeType

	// ringNext/ringPrev/leaf are set once this half-edge is bound into a
	// wound leaf ring (spec.md §4.5 step 6, §4.10). InvalidSegIdx/
	// InvalidLeafIdx until then.
	ringNext, ringPrev ids.SegIdx
	leaf               ids.LeafIdx
}

// HasTwin reports whether seg has an opposite-direction twin.
func (seg *LineSegment) HasTwin() bool { return seg.Twin != ids.InvalidSegIdx }

// IsCap reports whether seg is a synthetic partition cap (no SourceLine).
func (seg *LineSegment) IsCap() bool { return seg.SourceLine == nil }

// InLeaf reports whether seg has been bound into a wound leaf ring.
func (seg *LineSegment) InLeaf() bool { return seg.leaf != ids.InvalidLeafIdx }

// Leaf returns the leaf seg is bound to, or ids.InvalidLeafIdx.
func (seg *LineSegment) Leaf() ids.LeafIdx { return seg.leaf }

func recompute(seg *LineSegment) {
	seg.Direction = seg.ToOrigin.Sub(seg.FromOrigin)
	seg.Length = seg.Direction.Length()
	seg.Angle = seg.Direction.Angle()
	seg.Slope = geom.ClassifySlope(seg.Direction)
	seg.Unit = seg.Direction.Normalize()
	seg.Normal = seg.Unit.Perp()
}

// PerpDistTo returns the signed perpendicular distance of p from the
// line through seg (treating seg as an infinite partition), using seg's
// precomputed unit normal.
func (seg *LineSegment) PerpDistTo(p geom.Point) float64 {
	return seg.Normal.Dot(p.Sub(seg.FromOrigin))
}

// ParallelDistTo returns the signed distance of p along seg's direction
// from seg.FromOrigin, using seg's precomputed unit direction. Used to
// order intercepts along a configured half-plane (spec.md §3).
func (seg *LineSegment) ParallelDistTo(p geom.Point) float64 {
	return seg.Unit.Dot(p.Sub(seg.FromOrigin))
}
