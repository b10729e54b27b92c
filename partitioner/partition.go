package partitioner

import (
	"math"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/hplane"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/segstore"
	"github.com/katalvlaran/bsp/superblock"
)

// partitionBlock implements spec.md §4.4: classify every segment popped
// from input (pre-order, clearing blockRef) against hp and distribute it
// into rightBlocks/leftBlocks, recording intercepts along the way.
func (w *buildState) partitionBlock(hp *hplane.HalfPlane, candidate *segstore.LineSegment, input *superblock.Store, inputRoot ids.BlockIdx, rightBlocks *superblock.Store, rightRoot ids.BlockIdx, leftBlocks *superblock.Store, leftRoot ids.BlockIdx) error {
	popped := input.CollectPreOrder(inputRoot)
	handled := make(map[ids.SegIdx]bool, len(popped))

	for _, segIdx := range popped {
		if handled[segIdx] {
			continue
		}
		seg, ok := w.ss.Get(segIdx)
		if !ok {
			continue
		}
		seg.Block = ids.InvalidBlockIdx

		a, b, rel := segstore.Classify(hp.Anchor, hp.Normal, hp.SourceLine, seg)
		switch rel {
		case geom.Collinear:
			self := selfRef(seg)
			if err := w.addIntercept(hp, seg.From, seg.FromOrigin, self, true); err != nil {
				return err
			}
			if err := w.addIntercept(hp, seg.To, seg.ToOrigin, self, true); err != nil {
				return err
			}
			if seg.Direction.Dot(hp.Direction) < 0 {
				if err := w.pushSeg(leftBlocks, leftRoot, seg); err != nil {
					return err
				}
			} else if err := w.pushSeg(rightBlocks, rightRoot, seg); err != nil {
				return err
			}

		case geom.RightIntercept:
			if err := w.addTouchIntercept(hp, seg, a, b); err != nil {
				return err
			}
			if err := w.pushSeg(rightBlocks, rightRoot, seg); err != nil {
				return err
			}

		case geom.Right:
			if err := w.pushSeg(rightBlocks, rightRoot, seg); err != nil {
				return err
			}

		case geom.LeftIntercept:
			if err := w.addTouchIntercept(hp, seg, a, b); err != nil {
				return err
			}
			if err := w.pushSeg(leftBlocks, leftRoot, seg); err != nil {
				return err
			}

		case geom.Left:
			if err := w.pushSeg(leftBlocks, leftRoot, seg); err != nil {
				return err
			}

		case geom.Intersects:
			if err := w.splitAcross(hp, seg, a, b, handled, rightBlocks, rightRoot, leftBlocks, leftRoot); err != nil {
				return err
			}
		}
	}
	return nil
}

// addTouchIntercept adds an intercept at whichever endpoint of seg is
// closer to the partition (spec.md §4.4's Right/LeftIntercept rule).
func (w *buildState) addTouchIntercept(hp *hplane.HalfPlane, seg *segstore.LineSegment, a, b float64) error {
	self := selfRef(seg)
	if math.Abs(a) < geom.DistEpsilon {
		return w.addIntercept(hp, seg.From, seg.FromOrigin, self, true)
	}
	return w.addIntercept(hp, seg.To, seg.ToOrigin, self, true)
}

// splitAcross implements spec.md §4.4's Intersects case: compute the
// intersection point, split seg (and its twin, symmetrically, inside
// segstore.Split), add an intercept, and push the negative-side piece
// left and the positive-side piece right — together with whichever
// twin half is co-located with each piece.
func (w *buildState) splitAcross(hp *hplane.HalfPlane, seg *segstore.LineSegment, a, b float64, handled map[ids.SegIdx]bool, rightBlocks *superblock.Store, rightRoot ids.BlockIdx, leftBlocks *superblock.Store, leftRoot ids.BlockIdx) error {
	point := intersectionPoint(hp, seg, a, b)
	originalTwin := seg.Twin

	newHalfIdx, err := w.ss.Split(w.vs, seg.Idx, point)
	if err != nil {
		return fatalSeg("split", err, seg.Idx)
	}
	newHalf, ok := w.ss.Get(newHalfIdx)
	if !ok {
		return fatalSeg("split", ErrMalformedInput, newHalfIdx)
	}

	if err := w.addIntercept(hp, newHalf.From, point, selfRef(seg), false); err != nil {
		return err
	}

	frontPair := []ids.SegIdx{seg.Idx}
	if seg.Twin != ids.InvalidSegIdx {
		frontPair = append(frontPair, seg.Twin)
	}
	backPair := []ids.SegIdx{newHalf.Idx}
	if newHalf.Twin != ids.InvalidSegIdx {
		backPair = append(backPair, newHalf.Twin)
	}

	handled[seg.Idx] = true
	if originalTwin != ids.InvalidSegIdx {
		handled[originalTwin] = true
	}

	negBlocks, negRoot, posBlocks, posRoot := leftBlocks, leftRoot, rightBlocks, rightRoot
	if a >= 0 {
		negBlocks, negRoot, posBlocks, posRoot = rightBlocks, rightRoot, leftBlocks, leftRoot
	}
	if err := w.pushAll(negBlocks, negRoot, frontPair); err != nil {
		return err
	}
	if err := w.pushAll(posBlocks, posRoot, backPair); err != nil {
		return err
	}
	return nil
}

// intersectionPoint implements spec.md §4.4's "intersection point" rule.
func intersectionPoint(hp *hplane.HalfPlane, seg *segstore.LineSegment, a, b float64) geom.Point {
	partSlope := geom.ClassifySlope(hp.Direction)
	if partSlope == geom.SlopeHorizontal && seg.Slope == geom.SlopeVertical {
		return geom.Point{X: seg.FromOrigin.X, Y: hp.Anchor.Y}
	}
	if partSlope == geom.SlopeVertical && seg.Slope == geom.SlopeHorizontal {
		return geom.Point{X: hp.Anchor.X, Y: seg.FromOrigin.Y}
	}
	t := geom.IntersectParam(a, b)
	p := seg.FromOrigin.Add(seg.Direction.Scale(t))
	if seg.Slope == geom.SlopeHorizontal {
		p.Y = seg.FromOrigin.Y
	}
	if seg.Slope == geom.SlopeVertical {
		p.X = seg.FromOrigin.X
	}
	return p
}

// capGaps implements spec.md §4.7: after intercepts are sorted and
// merged, emit a partition-cap twin pair across every gap that is open
// on both sides.
func (w *buildState) capGaps(hp *hplane.HalfPlane, candidate *segstore.LineSegment, rightBlocks *superblock.Store, rightRoot ids.BlockIdx, leftBlocks *superblock.Store, leftRoot ids.BlockIdx) error {
	for _, gap := range hp.Gaps() {
		near := hp.Anchor.Add(hp.Unit.Scale((gap.From.Distance + gap.To.Distance) / 2))

		if !gap.Emit {
			if gap.Diagnostic == hplane.DiagnosticUnclosedSector {
				sector := gap.From.After
				if sector == nil {
					sector = gap.To.Before
				}
				w.diag.unclosedSector(sector, near)
			}
			continue
		}
		if gap.Diagnostic == hplane.DiagnosticSectorMismatch {
			w.diag.sectorMismatch(gap.Sector, near)
		}

		fromVertex, ok := w.vs.Get(gap.From.Vertex)
		if !ok {
			return fatalVertex("gap-cap", ErrMalformedInput, gap.From.Vertex)
		}
		toVertex, ok := w.vs.Get(gap.To.Vertex)
		if !ok {
			return fatalVertex("gap-cap", ErrMalformedInput, gap.To.Vertex)
		}

		rightCap, err := w.ss.AddCap(gap.From.Vertex, gap.To.Vertex, fromVertex.Origin, toVertex.Origin, gap.Sector, candidate.Side)
		if err != nil {
			return fatalVertex("gap-cap", err, gap.From.Vertex)
		}
		leftCap, err := w.ss.AddCap(gap.To.Vertex, gap.From.Vertex, toVertex.Origin, fromVertex.Origin, gap.Sector, candidate.Side)
		if err != nil {
			return fatalVertex("gap-cap", err, gap.To.Vertex)
		}
		if err := w.ss.LinkTwins(rightCap, leftCap); err != nil {
			return fatalSeg("gap-cap", err, rightCap)
		}

		if rc, ok := w.ss.Get(rightCap); ok {
			if err := w.pushSeg(rightBlocks, rightRoot, rc); err != nil {
				return err
			}
		}
		if lc, ok := w.ss.Get(leftCap); ok {
			if err := w.pushSeg(leftBlocks, leftRoot, lc); err != nil {
				return err
			}
		}
	}
	return nil
}

// pushSeg inserts seg into blocks/root and records its landing block.
func (w *buildState) pushSeg(blocks *superblock.Store, root ids.BlockIdx, seg *segstore.LineSegment) error {
	segBox := geom.EmptyBox().Extend(seg.FromOrigin).Extend(seg.ToOrigin)
	landed, err := blocks.Push(root, seg.Idx, segBox, seg.IsCap())
	if err != nil {
		return fatalSeg("push", err, seg.Idx)
	}
	seg.Block = landed
	return nil
}

// pushAll pushes every segment idx in idxs into blocks/root.
func (w *buildState) pushAll(blocks *superblock.Store, root ids.BlockIdx, idxs []ids.SegIdx) error {
	for _, idx := range idxs {
		seg, ok := w.ss.Get(idx)
		if !ok {
			continue
		}
		if err := w.pushSeg(blocks, root, seg); err != nil {
			return err
		}
	}
	return nil
}

// addIntercept records an intercept at vIdx (located at origin along
// hp), deriving openBefore/openAfter via the vertex's edge-tip ring
// (spec.md §4.6): before uses the partition's inverse angle, after uses
// the partition's own angle. reused reports whether vIdx already
// existed before this partitioning round, as opposed to having just
// been allocated by a split of the current candidate.
func (w *buildState) addIntercept(hp *hplane.HalfPlane, vIdx ids.VertexIdx, origin geom.Point, self, reused bool) error {
	angle := hp.Direction.Angle()
	before, err := w.openSector(vIdx, invertAngle(angle))
	if err != nil {
		return err
	}
	after, err := w.openSector(vIdx, angle)
	if err != nil {
		return err
	}
	hp.AddIntercept(hplane.Intercept{
		Distance:     hp.ParallelDist(origin),
		Vertex:       vIdx,
		Before:       before,
		After:        after,
		SelfRef:      self,
		VertexReused: reused,
	})
	return nil
}

// openSector wraps segstore.OpenSectorAtAngle, folding "along an
// existing edge" into a plain nil sector (spec.md §4.6 step 1) while
// surfacing a genuinely empty tip ring as the fatal malformed-input
// condition of spec.md §7.
func (w *buildState) openSector(vIdx ids.VertexIdx, theta float64) (interface{}, error) {
	sector, err := w.ss.OpenSectorAtAngle(w.vs, vIdx, theta)
	if err == nil {
		return sector, nil
	}
	if err == segstore.ErrAlongEdge {
		return nil, nil
	}
	return nil, fatalVertex("open-sector-query", ErrMalformedInput, vIdx)
}

func invertAngle(a float64) float64 {
	a += 180
	if a >= 360 {
		a -= 360
	}
	return a
}

func selfRef(seg *segstore.LineSegment) bool {
	return seg.SourceLine != nil && seg.SourceLine.IsSelfReferencing()
}
