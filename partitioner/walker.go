package partitioner

import (
	"context"

	"github.com/katalvlaran/bsp/bsptree"
	"github.com/katalvlaran/bsp/cost"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/hplane"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/superblock"
)

// buildState is the per-Build walker, grounded on algorithms/bfs.go's
// split between a small public entry point (Builder.Build) and an
// unexported stateful walker carrying the recursion's working set
// (spec.md §4.8). One buildState is created per Build call and
// discarded once it returns.
type buildState struct {
	*Builder
	ctx context.Context
	hp  hplane.HalfPlane
}

// build implements spec.md §4.8: choose the block's best partition (or
// make it a leaf if none is admissible), split every segment in the
// block across that partition, cap any resulting gaps, and recurse into
// the right and left halves. ok is false for an empty/degenerate block
// (no node or leaf was produced).
func (w *buildState) build(blocks *superblock.Store, idx ids.BlockIdx) (bsptree.NodeRef, bool, error) {
	select {
	case <-w.ctx.Done():
		return bsptree.NodeRef{}, false, fatalf("build", w.ctx.Err())
	default:
	}

	eval := cost.New(w.ss, blocks, w.cfg.splitCostFactor)
	winner, _, found := eval.ChooseNextPartition(idx)
	if !found {
		segs := blocks.CollectPreOrder(idx)
		return w.makeLeaf(segs)
	}

	candidate, ok := w.ss.Get(winner)
	if !ok {
		return bsptree.NodeRef{}, false, fatalSeg("build", ErrMalformedInput, winner)
	}
	anchor := candidate.FromOrigin
	direction := candidate.Direction
	sourceLine := candidate.SourceLine

	block, ok := blocks.Get(idx)
	if !ok {
		return bsptree.NodeRef{}, false, fatalSeg("build", ErrMalformedInput, winner)
	}
	bounds := block.Bounds

	w.hp.Configure(anchor, direction, sourceLine)

	rightBlocks, rightRoot := superblock.New(bounds)
	leftBlocks, leftRoot := superblock.New(bounds)

	if err := w.partitionBlock(&w.hp, candidate, blocks, idx, rightBlocks, rightRoot, leftBlocks, leftRoot); err != nil {
		return bsptree.NodeRef{}, false, err
	}
	w.hp.SortAndMerge()
	if err := w.capGaps(&w.hp, candidate, rightBlocks, rightRoot, leftBlocks, leftRoot); err != nil {
		return bsptree.NodeRef{}, false, err
	}
	w.hp.Intercepts = w.hp.Intercepts[:0]

	rightSegs := rightBlocks.CollectPreOrder(rightRoot)
	leftSegs := leftBlocks.CollectPreOrder(leftRoot)
	if len(rightSegs) == 0 || len(leftSegs) == 0 {
		return bsptree.NodeRef{}, false, fatalSeg("build", ErrEmptyPartitionSide, winner)
	}
	rightBounds := w.tightBounds(rightSegs)
	leftBounds := w.tightBounds(leftSegs)

	select {
	case <-w.ctx.Done():
		return bsptree.NodeRef{}, false, fatalf("build", w.ctx.Err())
	default:
	}
	rightRef, rightOk, err := w.build(rightBlocks, rightRoot)
	if err != nil {
		return bsptree.NodeRef{}, false, err
	}

	select {
	case <-w.ctx.Done():
		return bsptree.NodeRef{}, false, fatalf("build", w.ctx.Err())
	default:
	}
	leftRef, leftOk, err := w.build(leftBlocks, leftRoot)
	if err != nil {
		return bsptree.NodeRef{}, false, err
	}

	switch {
	case !rightOk && !leftOk:
		return bsptree.NodeRef{}, false, nil
	case !rightOk:
		return leftRef, true, nil
	case !leftOk:
		return rightRef, true, nil
	default:
		nodeIdx := w.tree.NewInternal(anchor, direction, sourceLine, rightBounds, leftBounds, rightRef, leftRef)
		return bsptree.InternalRef(nodeIdx), true, nil
	}
}

// tightBounds computes the bounding box of every endpoint of every
// segment in segs (spec.md §4.8's per-child tight bounds).
func (w *buildState) tightBounds(segs []ids.SegIdx) geom.Box {
	box := geom.EmptyBox()
	for _, idx := range segs {
		seg, ok := w.ss.Get(idx)
		if !ok {
			continue
		}
		box = box.Extend(seg.FromOrigin).Extend(seg.ToOrigin)
	}
	return box
}
