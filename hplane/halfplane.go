package hplane

import (
	"sort"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
)

// HalfPlane is the partitioner's current configured partition: an
// anchor point and direction, plus the running list of intercepts
// recorded against it (spec.md §3).
type HalfPlane struct {
	Anchor geom.Point
	// Direction is the raw (non-normalized) partition direction, kept
	// alongside Unit/Normal so Project can use the cheaper
	// invLengthSq-scaled dot product original_source's hplane.cpp caches,
	// avoiding a sqrt on every classification (SPEC_FULL.md §4
	// supplement).
	Direction   geom.Vector
	Unit        geom.Vector
	Normal      geom.Vector
	invLengthSq float64

	// SourceLine is the map line the current partition was chosen from,
	// or nil for a partition with no originating line. Passed through to
	// segstore.Classify's collinearity override (spec.md §4.1).
	SourceLine bspmap.LineRef

	Intercepts []Intercept
}

// New returns an unconfigured HalfPlane.
func New() *HalfPlane {
	return &HalfPlane{}
}

// Configure (re)points h at a new partition line, clearing any prior
// intercepts (spec.md §4.8: "configure half-plane from pick").
func (h *HalfPlane) Configure(anchor geom.Point, direction geom.Vector, sourceLine bspmap.LineRef) {
	h.Anchor = anchor
	h.Direction = direction
	h.Unit = direction.Normalize()
	h.Normal = h.Unit.Perp()
	if lenSq := direction.Dot(direction); lenSq != 0 {
		h.invLengthSq = 1 / lenSq
	} else {
		h.invLengthSq = 0
	}
	h.SourceLine = sourceLine
	h.Intercepts = h.Intercepts[:0]
}

// Project returns p's parametric position along Direction from Anchor,
// using the cached invLengthSq rather than normalizing on every call.
func (h *HalfPlane) Project(p geom.Point) float64 {
	return h.Direction.Dot(p.Sub(h.Anchor)) * h.invLengthSq
}

// ParallelDist returns the signed distance of p along h's unit direction
// from Anchor, used to order intercepts (spec.md §3).
func (h *HalfPlane) ParallelDist(p geom.Point) float64 {
	return h.Unit.Dot(p.Sub(h.Anchor))
}

// PerpDist returns the signed perpendicular distance of p from h,
// positive on the right per geom.Classify's convention.
func (h *HalfPlane) PerpDist(p geom.Point) float64 {
	return h.Normal.Dot(p.Sub(h.Anchor))
}

// AddIntercept appends ic to h's pending intercept list. Call
// SortAndMerge once every segment has been classified against h before
// reading Intercepts or Gaps.
func (h *HalfPlane) AddIntercept(ic Intercept) {
	h.Intercepts = append(h.Intercepts, ic)
}

// SortAndMerge orders h.Intercepts by ascending distance and merges any
// pair within geom.DistEpsilon: the surviving intercept inherits either
// partner's non-nil Before/After, and SelfRef clears unless both
// partners were self-referencing (spec.md §3 intercept invariants).
func (h *HalfPlane) SortAndMerge() {
	sort.SliceStable(h.Intercepts, func(i, j int) bool {
		return h.Intercepts[i].Distance < h.Intercepts[j].Distance
	})

	merged := h.Intercepts[:0]
	for _, ic := range h.Intercepts {
		if n := len(merged); n > 0 && ic.Distance-merged[n-1].Distance <= geom.DistEpsilon {
			prev := &merged[n-1]
			if prev.Before == nil {
				prev.Before = ic.Before
			}
			if prev.After == nil {
				prev.After = ic.After
			}
			prev.SelfRef = prev.SelfRef && ic.SelfRef
			prev.VertexReused = prev.VertexReused || ic.VertexReused
			continue
		}
		merged = append(merged, ic)
	}
	h.Intercepts = merged
}

// sectorsEqual reports whether a and b are the same non-nil sector.
func sectorsEqual(a, b bspmap.Sector) bool {
	return a != nil && b != nil && a == b
}

// Gaps walks the sorted, merged intercept list and classifies the space
// between every adjacent pair per spec.md §4.7.
func (h *HalfPlane) Gaps() []Gap {
	if len(h.Intercepts) < 2 {
		return nil
	}
	out := make([]Gap, 0, len(h.Intercepts)-1)
	for i := 0; i+1 < len(h.Intercepts); i++ {
		cur, next := h.Intercepts[i], h.Intercepts[i+1]
		g := Gap{From: cur, To: next}

		switch {
		case cur.After == nil && next.Before == nil:
			// Void on both sides: nothing to do.

		case cur.After != nil && next.Before == nil:
			if !cur.SelfRef {
				g.Diagnostic = DiagnosticUnclosedSector
			}

		case cur.After == nil && next.Before != nil:
			if !next.SelfRef {
				g.Diagnostic = DiagnosticUnclosedSector
			}

		default:
			g.Emit = true
			if sectorsEqual(cur.After, next.Before) {
				g.Sector = cur.After
				break
			}
			if !cur.SelfRef && !next.SelfRef {
				g.Diagnostic = DiagnosticSectorMismatch
			}
			switch {
			case cur.SelfRef && !next.SelfRef:
				g.Sector = next.Before
			case !cur.SelfRef && next.SelfRef:
				g.Sector = cur.After
			default:
				g.Sector = cur.After
			}
		}
		out = append(out, g)
	}
	return out
}
