package vertexstore

import (
	"sort"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// Store is the arena that owns every Vertex allocated during a single
// build. It has single-writer semantics: concurrent builds must use
// disjoint Stores (spec.md §5).
type Store struct {
	verts []*Vertex
}

// New allocates an empty vertex store.
func New() *Store {
	return &Store{verts: make([]*Vertex, 0, 64)}
}

// Add allocates a new vertex at origin and returns its stable index.
// synthetic marks vertices created by the partitioner at split points,
// as opposed to vertices that came directly from the input map.
func (s *Store) Add(origin geom.Point, synthetic bool) ids.VertexIdx {
	idx := ids.VertexIdx(len(s.verts))
	s.verts = append(s.verts, &Vertex{
		Idx:       idx,
		Origin:    origin,
		Synthetic: synthetic,
		Tips:      make([]EdgeTip, 0, 2),
	})
	return idx
}

// Get returns the vertex at idx, or false if idx is out of range.
func (s *Store) Get(idx ids.VertexIdx) (*Vertex, bool) {
	if idx < 0 || int(idx) >= len(s.verts) {
		return nil, false
	}
	return s.verts[idx], true
}

// Count returns the number of vertices allocated by this store,
// including released ones (spec.md §6 numVertexes counts every
// partitioner-allocated vertex, not just unreleased ones).
func (s *Store) Count() int {
	return len(s.verts)
}

// AddTip inserts tip into idx's edge-tip ring, keeping the ring sorted
// by descending angle; a tip whose angle equals an existing tip's is
// placed before it. Returns ErrVertexNotFound if idx is invalid.
func (s *Store) AddTip(idx ids.VertexIdx, tip EdgeTip) error {
	v, ok := s.Get(idx)
	if !ok {
		return ErrVertexNotFound
	}
	// Descending order: find the first existing tip whose angle is <=
	// tip.Angle and insert before it (in a descending ring that predicate
	// is false then true, as sort.Search needs).
	n := len(v.Tips)
	pos := sort.Search(n, func(i int) bool {
		return v.Tips[i].Angle <= tip.Angle
	})
	v.Tips = append(v.Tips, EdgeTip{})
	copy(v.Tips[pos+1:], v.Tips[pos:n])
	v.Tips[pos] = tip
	return nil
}

// Release marks idx as claimed by the caller, transferring logical
// ownership out of the store (spec.md §5/§6). The vertex remains
// readable through Get; Release only affects ownership bookkeeping
// exposed via Released.
func (s *Store) Release(idx ids.VertexIdx) error {
	v, ok := s.Get(idx)
	if !ok {
		return ErrVertexNotFound
	}
	v.released = true
	return nil
}

// Released reports whether idx has been claimed via Release.
func (s *Store) Released(idx ids.VertexIdx) bool {
	v, ok := s.Get(idx)
	return ok && v.released
}

// tipSearchResult describes where angle theta falls relative to a
// vertex's edge-tip ring.
type tipSearchResult struct {
	// OnTip is true if theta matches an existing tip's angle within
	// AngEpsilon (spec.md §4.6 step 1: we are along an edge, closed).
	OnTip bool
	// Tip is the matched tip (if OnTip), or the first tip whose angle is
	// strictly greater than theta (if !OnTip && !Wrapped), or the
	// greatest-angle tip (if Wrapped).
	Tip EdgeTip
	// Wrapped is true if theta is larger than every tip's angle, i.e.
	// we are on the back side of the greatest-angle tip (step 3).
	Wrapped bool
}

// FindSurroundingTip implements spec.md §4.6 steps 1-3 against idx's
// edge-tip ring. Returns ErrVertexNotFound if idx is invalid, or
// ErrEmptyTipRing if the vertex has no tips (a malformed-build signal
// per spec.md §4.6's invariant; callers must treat this as fatal).
func (s *Store) FindSurroundingTip(idx ids.VertexIdx, theta float64) (tipSearchResult, error) {
	v, ok := s.Get(idx)
	if !ok {
		return tipSearchResult{}, ErrVertexNotFound
	}
	if len(v.Tips) == 0 {
		return tipSearchResult{}, ErrEmptyTipRing
	}
	for _, tip := range v.Tips {
		if geom.AngleNear(tip.Angle, theta) {
			return tipSearchResult{OnTip: true, Tip: tip}, nil
		}
	}
	// Ring is sorted descending (largest angle first). The nearest tip
	// whose angle is strictly greater than theta is found by scanning
	// from the smallest angle upward (i.e. the slice backwards) and
	// stopping at the first one that clears theta.
	for i := len(v.Tips) - 1; i >= 0; i-- {
		if v.Tips[i].Angle > theta+geom.AngEpsilon {
			return tipSearchResult{Tip: v.Tips[i]}, nil
		}
	}
	// theta is larger than every tip's angle: wrap to the back of the
	// greatest-angle tip, which is v.Tips[0] since the ring is sorted
	// descending.
	return tipSearchResult{Tip: v.Tips[0], Wrapped: true}, nil
}
