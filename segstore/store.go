package segstore

import (
	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/vertexstore"
)

// sideKey identifies one MapSide: a source line plus which of its two
// sides (front/back) a segment descends from.
type sideKey struct {
	line   bspmap.LineRef
	isBack bool
}

// Store is the arena that owns every LineSegment allocated during a
// single build, grounded the same way vertexstore.Store is: a
// single-writer slice indexed by stable ids.SegIdx rather than a graph
// of pointers (spec.md §5, §9).
type Store struct {
	segs  []*LineSegment
	sides map[sideKey]*MapSide
}

// New allocates an empty segment store.
func New() *Store {
	return &Store{
		segs:  make([]*LineSegment, 0, 128),
		sides: make(map[sideKey]*MapSide),
	}
}

// Get returns the segment at idx, or false if idx is out of range.
func (s *Store) Get(idx ids.SegIdx) (*LineSegment, bool) {
	if idx < 0 || int(idx) >= len(s.segs) {
		return nil, false
	}
	return s.segs[idx], true
}

// Count returns the number of segments allocated by this store. It is
// not the tree's NumHEdges, which sums leaf ring sizes.
func (s *Store) Count() int {
	return len(s.segs)
}

// sideFor returns the MapSide shared by every segment descended from
// line's isBack side, allocating it on first use. sourceLine == nil
// (synthetic caps) never share a MapSide.
func (s *Store) sideFor(line bspmap.LineRef, isBack bool) *MapSide {
	if line == nil {
		return nil
	}
	key := sideKey{line: line, isBack: isBack}
	side, ok := s.sides[key]
	if !ok {
		side = &MapSide{Line: line, IsBack: isBack, Leftmost: ids.InvalidSegIdx, Rightmost: ids.InvalidSegIdx}
		s.sides[key] = side
	}
	return side
}

// Add allocates a new segment from an input map line's one side
// (spec.md §4.2's initial construction), or a synthetic cap when
// sourceLine is nil. Returns ErrDegenerateSegment if the endpoints
// coincide.
func (s *Store) Add(from, to ids.VertexIdx, fromOrigin, toOrigin geom.Point, sourceLine bspmap.LineRef, isBack bool, sector bspmap.Sector) (ids.SegIdx, error) {
	if fromOrigin.Equal(toOrigin) {
		return ids.InvalidSegIdx, ErrDegenerateSegment
	}
	idx := ids.SegIdx(len(s.segs))
	seg := &LineSegment{
		Idx:        idx,
		From:       from,
		To:         to,
		FromOrigin: fromOrigin,
		ToOrigin:   toOrigin,
		Sector:     sector,
		SourceLine: sourceLine,
		Side:       s.sideFor(sourceLine, isBack),
		Twin:       ids.InvalidSegIdx,
		PrevOnSide: ids.InvalidSegIdx,
		NextOnSide: ids.InvalidSegIdx,
		Block:      ids.InvalidBlockIdx,
		ringNext:   ids.InvalidSegIdx,
		ringPrev:   ids.InvalidSegIdx,
		leaf:       ids.InvalidLeafIdx,
	}
	recompute(seg)
	s.segs = append(s.segs, seg)
	return idx, nil
}

// LinkTwins records that a and b are the two opposite-direction
// segments bordering one input map line (spec.md §3: twin.twin == self,
// twin.from == self.to, twin.to == self.from).
func (s *Store) LinkTwins(a, b ids.SegIdx) error {
	segA, ok := s.Get(a)
	if !ok {
		return ErrSegmentNotFound
	}
	segB, ok := s.Get(b)
	if !ok {
		return ErrSegmentNotFound
	}
	segA.Twin = b
	segB.Twin = a
	return nil
}

// Classify implements spec.md §4.1: the signed perpendicular distances
// of candidate's two endpoints from the half-plane anchored at anchor
// with unit normal normalUnit, and the resulting six-way relationship.
// When partitionSourceLine is non-nil and equals candidate's own
// SourceLine, the two segments are collinear regardless of what the
// arithmetic says (they came from the same map line), per §4.1's
// source-line override.
func Classify(anchor geom.Point, normalUnit geom.Vector, partitionSourceLine bspmap.LineRef, candidate *LineSegment) (a, b float64, rel geom.LineRelationship) {
	if partitionSourceLine != nil && candidate.SourceLine == partitionSourceLine {
		return 0, 0, geom.Collinear
	}
	a = normalUnit.Dot(candidate.FromOrigin.Sub(anchor))
	b = normalUnit.Dot(candidate.ToOrigin.Sub(anchor))
	return a, b, geom.Classify(a, b)
}

// Split divides the segment at idx into two at point at, creating a new
// synthetic vertex in vs, and returns the stable index of the new
// trailing half (idx itself becomes the leading half, ending at the new
// vertex). If idx has a twin, the twin is split symmetrically so that
// the twin invariants of spec.md §3 hold for all four resulting halves.
//
// Grounded on original_source's HEdge::split: the leading half keeps the
// original segment's identity (so callers already holding idx keep a
// valid reference to the "from" half), while new allocations cover the
// "to" side and the twin's matching halves.
func (s *Store) Split(vs *vertexstore.Store, idx ids.SegIdx, at geom.Point) (ids.SegIdx, error) {
	seg, ok := s.Get(idx)
	if !ok {
		return ids.InvalidSegIdx, ErrSegmentNotFound
	}

	newVertex := vs.Add(at, true)

	newSeg := &LineSegment{
		Idx:        ids.SegIdx(len(s.segs)),
		From:       newVertex,
		To:         seg.To,
		FromOrigin: at,
		ToOrigin:   seg.ToOrigin,
		Sector:     seg.Sector,
		SourceLine: seg.SourceLine,
		Side:       seg.Side,
		Twin:       ids.InvalidSegIdx,
		PrevOnSide: seg.Idx,
		NextOnSide: seg.NextOnSide,
		Block:      ids.InvalidBlockIdx,
		ringNext:   ids.InvalidSegIdx,
		ringPrev:   ids.InvalidSegIdx,
		leaf:       ids.InvalidLeafIdx,
	}
	recompute(newSeg)
	s.segs = append(s.segs, newSeg)

	if seg.NextOnSide != ids.InvalidSegIdx {
		if nextSeg, ok := s.Get(seg.NextOnSide); ok {
			nextSeg.PrevOnSide = newSeg.Idx
		}
	}
	seg.NextOnSide = newSeg.Idx

	seg.To = newVertex
	seg.ToOrigin = at
	recompute(seg)

	newSegTwin := ids.InvalidSegIdx
	if seg.Twin != ids.InvalidSegIdx {
		twin, ok := s.Get(seg.Twin)
		if !ok {
			return ids.InvalidSegIdx, ErrSegmentNotFound
		}

		twinNew := &LineSegment{
			Idx:        ids.SegIdx(len(s.segs)),
			From:       newVertex,
			To:         twin.To,
			FromOrigin: at,
			ToOrigin:   twin.ToOrigin,
			Sector:     twin.Sector,
			SourceLine: twin.SourceLine,
			Side:       twin.Side,
			Twin:       seg.Idx,
			PrevOnSide: twin.Idx,
			NextOnSide: twin.NextOnSide,
			Block:      ids.InvalidBlockIdx,
			ringNext:   ids.InvalidSegIdx,
			ringPrev:   ids.InvalidSegIdx,
			leaf:       ids.InvalidLeafIdx,
		}
		recompute(twinNew)
		s.segs = append(s.segs, twinNew)

		if twin.NextOnSide != ids.InvalidSegIdx {
			if nextTwin, ok := s.Get(twin.NextOnSide); ok {
				nextTwin.PrevOnSide = twinNew.Idx
			}
		}
		twin.NextOnSide = twinNew.Idx

		twin.To = newVertex
		twin.ToOrigin = at
		recompute(twin)

		// twinNew (newVertex -> original twin.To) mirrors seg (seg.From ->
		// newVertex): twinNew.From == seg.To and twinNew.To == seg.From.
		seg.Twin = twinNew.Idx
		twinNew.Twin = seg.Idx
		// twin (now original-twin.From -> newVertex) mirrors newSeg
		// (newVertex -> original seg.To): twin.From == newSeg.To and
		// twin.To == newSeg.From.
		newSeg.Twin = twin.Idx
		twin.Twin = newSeg.Idx

		newSegTwin = twin.Idx
	}

	tipFront := newSeg.Idx
	tipBack := newSegTwin
	if err := vs.AddTip(newVertex, vertexstore.EdgeTip{Angle: newSeg.Angle, Front: tipFront, Back: tipBack}); err != nil {
		return ids.InvalidSegIdx, err
	}

	return newSeg.Idx, nil
}

// AddCap allocates a synthetic partition-cap segment: sourceLine is
// always nil, but side is passed through explicitly rather than derived
// from sideFor, since spec.md §4.7 has a cap share its mapSide with the
// partition segment that produced it rather than allocating its own.
func (s *Store) AddCap(from, to ids.VertexIdx, fromOrigin, toOrigin geom.Point, sector bspmap.Sector, side *MapSide) (ids.SegIdx, error) {
	if fromOrigin.Equal(toOrigin) {
		return ids.InvalidSegIdx, ErrDegenerateSegment
	}
	idx := ids.SegIdx(len(s.segs))
	seg := &LineSegment{
		Idx:        idx,
		From:       from,
		To:         to,
		FromOrigin: fromOrigin,
		ToOrigin:   toOrigin,
		Sector:     sector,
		SourceLine: nil,
		Side:       side,
		Twin:       ids.InvalidSegIdx,
		PrevOnSide: ids.InvalidSegIdx,
		NextOnSide: ids.InvalidSegIdx,
		Block:      ids.InvalidBlockIdx,
		ringNext:   ids.InvalidSegIdx,
		ringPrev:   ids.InvalidSegIdx,
		leaf:       ids.InvalidLeafIdx,
	}
	recompute(seg)
	s.segs = append(s.segs, seg)
	return idx, nil
}

// RingNext returns idx's next-in-ring segment, set once idx is bound
// into a leaf by SetRingNext.
func (s *Store) RingNext(idx ids.SegIdx) (ids.SegIdx, bool) {
	seg, ok := s.Get(idx)
	if !ok {
		return ids.InvalidSegIdx, false
	}
	return seg.ringNext, true
}

// SetRingNext/SetRingPrev thread idx into a leaf's half-edge ring
// (spec.md §4.9 step 3, §4.10 step 3).
func (s *Store) SetRingNext(idx, next ids.SegIdx) error {
	seg, ok := s.Get(idx)
	if !ok {
		return ErrSegmentNotFound
	}
	seg.ringNext = next
	return nil
}

func (s *Store) SetRingPrev(idx, prev ids.SegIdx) error {
	seg, ok := s.Get(idx)
	if !ok {
		return ErrSegmentNotFound
	}
	seg.ringPrev = prev
	return nil
}

// SetLeaf records which leaf idx's half-edge has been bound into.
func (s *Store) SetLeaf(idx ids.SegIdx, leaf ids.LeafIdx) error {
	seg, ok := s.Get(idx)
	if !ok {
		return ErrSegmentNotFound
	}
	seg.leaf = leaf
	return nil
}

// DetachOrphan unlinks idx from its per-side chain and clears its
// twin's back-pointer, per the collapse-orphan-leaf policy of spec.md
// §4.9 step 2. idx itself is left allocated (arenas never shrink) but
// is no longer reachable from any side chain, twin, or ring.
func (s *Store) DetachOrphan(idx ids.SegIdx) error {
	seg, ok := s.Get(idx)
	if !ok {
		return ErrSegmentNotFound
	}
	if seg.PrevOnSide != ids.InvalidSegIdx {
		if prev, ok := s.Get(seg.PrevOnSide); ok {
			prev.NextOnSide = seg.NextOnSide
		}
	}
	if seg.NextOnSide != ids.InvalidSegIdx {
		if next, ok := s.Get(seg.NextOnSide); ok {
			next.PrevOnSide = seg.PrevOnSide
		}
	}
	seg.PrevOnSide = ids.InvalidSegIdx
	seg.NextOnSide = ids.InvalidSegIdx
	if seg.Twin != ids.InvalidSegIdx {
		if twin, ok := s.Get(seg.Twin); ok {
			twin.Twin = ids.InvalidSegIdx
		}
		seg.Twin = ids.InvalidSegIdx
	}
	return nil
}

// EnsureSideBoundaries walks seg's Side chain to its leftmost and
// rightmost elements and records them on the Side record, but only the
// first time it is called for that Side (spec.md §4.10 step 4).
func (s *Store) EnsureSideBoundaries(seg *LineSegment) {
	if seg.Side == nil || seg.Side.boundariesSet {
		return
	}
	left := seg
	for left.PrevOnSide != ids.InvalidSegIdx {
		prev, ok := s.Get(left.PrevOnSide)
		if !ok {
			break
		}
		left = prev
	}
	right := seg
	for right.NextOnSide != ids.InvalidSegIdx {
		next, ok := s.Get(right.NextOnSide)
		if !ok {
			break
		}
		right = next
	}
	seg.Side.Leftmost = left.Idx
	seg.Side.Rightmost = right.Idx
	seg.Side.boundariesSet = true
}

// OpenSectorAtAngle composes vertexstore's structural ring query with
// this store's segment-to-sector mapping to answer spec.md §4.6's "which
// sector is open in direction theta from vIdx" question. Returns
// ErrAlongEdge if theta runs exactly along an existing tip, or a nil
// Sector (with no error) if the open region in that direction borders no
// known sector (e.g. unclosed map geometry prior to diagnostics).
func (s *Store) OpenSectorAtAngle(vs *vertexstore.Store, vIdx ids.VertexIdx, theta float64) (bspmap.Sector, error) {
	res, err := vs.FindSurroundingTip(vIdx, theta)
	if err != nil {
		return nil, err
	}
	if res.OnTip {
		return nil, ErrAlongEdge
	}

	// Not wrapped: the matched tip is the first one whose angle exceeds
	// theta, so theta lies on that tip's front side. Wrapped: theta is
	// beyond every tip's angle, so it lies on the back side of the
	// greatest-angle tip.
	segIdx := res.Tip.Front
	if res.Wrapped {
		segIdx = res.Tip.Back
	}
	if segIdx == ids.InvalidSegIdx {
		return nil, nil
	}
	seg, ok := s.Get(segIdx)
	if !ok {
		return nil, ErrSegmentNotFound
	}
	return seg.Sector, nil
}
