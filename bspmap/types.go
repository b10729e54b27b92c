package bspmap

import "github.com/katalvlaran/bsp/geom"

// Sector is an opaque reference to a host-defined sector. The
// partitioner never inspects a Sector's contents; it only compares
// references for equality and passes them through to leaves and
// half-edges. A nil Sector means "no sector" (e.g. a synthetic cap
// crossing open space).
type Sector any

// VertexRef is the read-only view of an input map vertex the
// partitioner needs.
type VertexRef interface {
	// IndexInMap returns the vertex's stable index within the host map.
	IndexInMap() int
	// Origin returns the vertex's 2D coordinate.
	Origin() geom.Point
	// CountLineOwners returns, of the lines incident to this vertex, how
	// many are one-sided (one) and how many total (total). Used by the
	// one-way-window preprocessor (spec.md §6).
	CountLineOwners() (one, total int)
}

// LineRef is the read-only view of an input map line the partitioner
// needs.
type LineRef interface {
	// Index returns the line's stable index within the host map.
	Index() int
	From() VertexRef
	To() VertexRef
	HasFrontSection() bool
	HasBackSection() bool
	FrontSector() Sector
	BackSector() Sector
	// IsSelfReferencing reports whether the line's front and back
	// sectors are the same sector.
	IsSelfReferencing() bool
	// IsFromPolyobj reports whether this line belongs to a polyobject
	// and must be skipped during initial segment construction (spec.md
	// §4.2).
	IsFromPolyobj() bool
	Direction() geom.Vector
	AABox() geom.Box
	Center() geom.Point
	// WindowSector returns the sector a one-way-window preprocessing
	// pass has annotated onto this line, if any. When ok is true, the
	// core treats the line as two-sided during construction (spec.md
	// §4.2, §6).
	WindowSector() (sector Sector, ok bool)
}

// Map is the read-only view of an entire parsed map the partitioner
// needs to begin a build (spec.md §6).
type Map interface {
	VertexCount() int
	Vertexes() []VertexRef
	LineCount() int
	Lines() []LineRef
	// Bounds returns the map's axis-aligned bounding box.
	Bounds() geom.Box
	// LinesBoxIterator calls cb once per line whose bounding box
	// intersects box, stopping early if cb returns false. Used only by
	// the one-way-window preprocessor, per spec.md §6.
	LinesBoxIterator(box geom.Box, cb func(LineRef) bool)
}
