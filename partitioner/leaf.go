package partitioner

import (
	"math"
	"sort"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/bsptree"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/segstore"
)

// makeLeaf implements spec.md §4.9 (leaf construction) and §4.10 (leaf
// winding) as one pass: a block with no admissible partition becomes a
// convex leaf, its half-edges threaded into a clockwise ring around
// their common centroid, with a single sector chosen to represent the
// whole leaf. ok is false if segs collapsed to nothing under the
// orphan-leaf policy (spec.md §4.9 step 2) — bsptree.Leaf exposes no
// setter for Sector once built, so every leaf this returns ok==true for
// is already fully finished.
func (w *buildState) makeLeaf(segs []ids.SegIdx) (bsptree.NodeRef, bool, error) {
	if len(segs) == 0 {
		return bsptree.NodeRef{}, false, nil
	}

	hasSector := false
	for _, idx := range segs {
		seg, ok := w.ss.Get(idx)
		if !ok {
			continue
		}
		if seg.Side != nil && seg.Sector != nil {
			hasSector = true
			break
		}
	}
	if (len(segs) < 3 || !hasSector) && w.cfg.collapseOrphanLeaves {
		for _, idx := range segs {
			_ = w.ss.DetachOrphan(idx)
		}
		return bsptree.NodeRef{}, false, nil
	}

	centroid := centroidOf(w.ss, segs)
	sort.SliceStable(segs, func(i, j int) bool {
		return angleAround(w.ss, segs[i], centroid) > angleAround(w.ss, segs[j], centroid)
	})

	for i, idx := range segs {
		next := segs[(i+1)%len(segs)]
		if err := w.ss.SetRingNext(idx, next); err != nil {
			return bsptree.NodeRef{}, false, fatalSeg("leaf", err, idx)
		}
		if err := w.ss.SetRingPrev(next, idx); err != nil {
			return bsptree.NodeRef{}, false, fatalSeg("leaf", err, next)
		}
	}

	var chosen bspmap.Sector
	var hasHEdge bool
	for _, idx := range segs {
		seg, ok := w.ss.Get(idx)
		if !ok {
			continue
		}
		if seg.Side != nil {
			hasHEdge = true
		}
		if seg.Sector != nil && chosen == nil && !selfRef(seg) {
			chosen = seg.Sector
		}
	}
	if chosen == nil {
		for _, idx := range segs {
			seg, ok := w.ss.Get(idx)
			if ok && seg.Sector != nil {
				chosen = seg.Sector
				break
			}
		}
	}
	if !hasHEdge {
		return bsptree.NodeRef{}, false, fatalSeg("leaf", ErrNoLineSideHalfEdge, segs[0])
	}

	gapCount := 0
	for i, idx := range segs {
		seg, ok := w.ss.Get(idx)
		if !ok {
			continue
		}
		next, ok := w.ss.Get(segs[(i+1)%len(segs)])
		if ok && !seg.ToOrigin.Equal(next.FromOrigin) {
			gapCount++
		}
		if seg.Sector != nil && chosen != nil && seg.Sector != chosen {
			w.diag.migrantHEdge(idx, seg.Sector)
		}
		w.ss.EnsureSideBoundaries(seg)
	}

	leafIdx := w.tree.NewLeaf(segs[0], len(segs), chosen)
	for _, idx := range segs {
		if err := w.ss.SetLeaf(idx, leafIdx); err != nil {
			return bsptree.NodeRef{}, false, fatalLeaf("leaf", err, leafIdx)
		}
	}
	if chosen == nil {
		w.diag.orphanLeaf(leafIdx)
	}
	if gapCount > 0 {
		w.diag.partialLeaf(leafIdx, gapCount)
	}

	return bsptree.LeafRef(leafIdx), true, nil
}

// centroidOf returns the average of every segment endpoint in segs, the
// reference point spec.md §4.10 sorts the ring's half-edges around.
func centroidOf(ss *segstore.Store, segs []ids.SegIdx) geom.Point {
	var sumX, sumY float64
	count := 0
	for _, idx := range segs {
		seg, ok := ss.Get(idx)
		if !ok {
			continue
		}
		sumX += seg.FromOrigin.X + seg.ToOrigin.X
		sumY += seg.FromOrigin.Y + seg.ToOrigin.Y
		count += 2
	}
	if count == 0 {
		return geom.Point{}
	}
	return geom.Point{X: sumX / float64(count), Y: sumY / float64(count)}
}

// angleAround returns the polar angle, in degrees, of idx's FromOrigin
// around centroid.
func angleAround(ss *segstore.Store, idx ids.SegIdx, centroid geom.Point) float64 {
	seg, ok := ss.Get(idx)
	if !ok {
		return 0
	}
	v := seg.FromOrigin.Sub(centroid)
	a := math.Atan2(v.Y, v.X) * 180.0 / math.Pi
	if a < 0 {
		a += 360.0
	}
	return a
}
