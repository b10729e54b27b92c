package hplane

import (
	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/ids"
)

// Intercept is a point at which the configured partition crosses a
// vertex, pre-existing or newly created by a split (spec.md §3).
// Before/After record the sector open on the partition's left/right
// immediately before/after the intercept point along the partition's
// direction (spec.md §4.6); either may be nil.
type Intercept struct {
	Distance float64 // parallel distance along the partition's unit direction
	Vertex   ids.VertexIdx
	Before   bspmap.Sector
	After    bspmap.Sector
	SelfRef  bool
	// VertexReused is true when Vertex already existed before this
	// partitioning round (an original line endpoint touched by the
	// partition), false when it was freshly allocated by a split this
	// round (SPEC_FULL.md supplemented feature, additive to SelfRef: one
	// signal is "pre-existing vertex", the other is "shares the
	// partition's source line" — original_source's hedgeintercept.h
	// keeps these as two separate bits rather than conflating them).
	VertexReused bool
}

// GapDiagnostic names one of the two non-fatal diagnostics gap-capping
// may emit (spec.md §4.7). The empty string means no diagnostic.
type GapDiagnostic string

const (
	DiagnosticNone           GapDiagnostic = ""
	DiagnosticUnclosedSector GapDiagnostic = "unclosed sector"
	DiagnosticSectorMismatch GapDiagnostic = "sector mismatch"
)

// Gap describes the space between two adjacent (sorted, merged)
// intercepts after a partitioning round, and what — if anything — the
// caller must do about it.
type Gap struct {
	From, To   Intercept
	Diagnostic GapDiagnostic
	// Emit is true if a partition-cap segment pair must be created
	// spanning From.Vertex to To.Vertex.
	Emit   bool
	Sector bspmap.Sector
}
