package cost

import (
	"math"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/segstore"
	"github.com/katalvlaran/bsp/superblock"
)

// Evaluator scores candidate partitions against one build's segment and
// SuperBlock stores. A build allocates one Evaluator per SuperBlock
// round (its SplitCostFactor is fixed for the whole build).
type Evaluator struct {
	Segs            *segstore.Store
	Blocks          *superblock.Store
	SplitCostFactor float64
}

// New returns an Evaluator reading segs/blocks, scoring candidates with
// the given split-cost factor (spec.md §4.3's F).
func New(segs *segstore.Store, blocks *superblock.Store, splitCostFactor float64) *Evaluator {
	return &Evaluator{Segs: segs, Blocks: blocks, SplitCostFactor: splitCostFactor}
}

// ChooseNextPartition implements spec.md §4.3: walk root in pre-order,
// testing exactly one candidate per distinct sourceLine (further
// candidates sharing a sourceLine are collinear and skipped), and return
// the admissible candidate with the lowest PartitionCost.Total, first
// encountered wins ties. found is false if no candidate was admissible
// (the block is convex or degenerate and should become a leaf).
func (e *Evaluator) ChooseNextPartition(root ids.BlockIdx) (winner ids.SegIdx, bestCost PartitionCost, found bool) {
	winner = ids.InvalidSegIdx
	bestTotal := math.Inf(1)
	validCount := make(map[bspmap.LineRef]int)

	for _, segIdx := range e.Blocks.CollectPreOrder(root) {
		seg, ok := e.Segs.Get(segIdx)
		if !ok || seg.IsCap() {
			continue
		}
		if seg.SourceLine != nil {
			validCount[seg.SourceLine]++
			if validCount[seg.SourceLine] > 1 {
				continue
			}
		}

		c, ok := e.evalPartition(root, seg, bestTotal)
		if !ok {
			continue
		}
		if c.Total < bestTotal {
			bestTotal = c.Total
			bestCost = c
			winner = segIdx
			found = true
		}
	}
	return winner, bestCost, found
}

// evalPartition scores candidate as a partition, walking the same
// SuperBlock subtree rooted at root. ok is false if the candidate is
// rejected outright (an empty side, or the running total met or
// exceeded incumbent and evaluation was aborted early).
func (e *Evaluator) evalPartition(root ids.BlockIdx, candidate *segstore.LineSegment, incumbent float64) (PartitionCost, bool) {
	var c PartitionCost
	if e.walkBlock(root, candidate, incumbent, &c) {
		return PartitionCost{}, false
	}
	if c.MapLeft == 0 || c.MapRight == 0 {
		return PartitionCost{}, false
	}

	c.Total += 100 * math.Abs(float64(c.MapLeft-c.MapRight))
	c.Total += 50 * math.Abs(float64(c.PartLeft-c.PartRight))
	if candidate.Slope != geom.SlopeHorizontal && candidate.Slope != geom.SlopeVertical {
		c.Total += 25
	}
	return c, true
}

// walkBlock recursively scores idx's subtree, returning true if
// evaluation was aborted because c.Total reached incumbent.
func (e *Evaluator) walkBlock(idx ids.BlockIdx, candidate *segstore.LineSegment, incumbent float64, c *PartitionCost) bool {
	block, ok := e.Blocks.Get(idx)
	if !ok {
		return false
	}

	switch block.SideOf(candidate.FromOrigin, candidate.Normal) {
	case superblock.OnRight:
		c.MapRight += block.MapCount
		c.PartRight += block.CapCount
		return c.Total >= incumbent
	case superblock.OnLeft:
		c.MapLeft += block.MapCount
		c.PartLeft += block.CapCount
		return c.Total >= incumbent
	}

	for _, segIdx := range block.Segs {
		seg, ok := e.Segs.Get(segIdx)
		if !ok {
			continue
		}
		a, b, rel := segstore.Classify(candidate.FromOrigin, candidate.Normal, candidate.SourceLine, seg)
		accumulate(c, e.SplitCostFactor, seg, rel, a, b, candidate.Direction)
		if c.Total >= incumbent {
			return true
		}
	}

	if block.Right != ids.InvalidBlockIdx {
		if e.walkBlock(block.Right, candidate, incumbent, c) {
			return true
		}
	}
	if block.Left != ids.InvalidBlockIdx {
		if e.walkBlock(block.Left, candidate, incumbent, c) {
			return true
		}
	}
	return false
}

// accumulate applies one segment's per-relationship cost contribution
// (spec.md §4.3's table) to c.
func accumulate(c *PartitionCost, factor float64, seg *segstore.LineSegment, rel geom.LineRelationship, a, b float64, partitionDir geom.Vector) {
	switch rel {
	case geom.Collinear:
		if seg.Direction.Dot(partitionDir) >= 0 {
			addRight(c, seg)
		} else {
			addLeft(c, seg)
		}

	case geom.Right, geom.RightIntercept:
		addRight(c, seg)
		if q, isNearMiss := geom.NearMiss(a, b); isNearMiss {
			c.NearMiss++
			c.Total += 100 * factor * (q*q - 1)
		}

	case geom.Left, geom.LeftIntercept:
		addLeft(c, seg)
		if q, isNearMiss := geom.NearMiss(a, b); isNearMiss {
			c.NearMiss++
			c.Total += 70 * factor * (q*q - 1)
		}

	case geom.Intersects:
		c.Splits++
		c.Total += 100 * factor
		if math.Abs(a) < geom.ShortHEdgeEpsilon || math.Abs(b) < geom.ShortHEdgeEpsilon {
			c.Iffy++
			q, _ := geom.NearMiss(a, b)
			c.Total += 140 * factor * (q*q - 1)
		}
	}
}

func addRight(c *PartitionCost, seg *segstore.LineSegment) {
	if seg.IsCap() {
		c.PartRight++
	} else {
		c.MapRight++
	}
}

func addLeft(c *PartitionCost, seg *segstore.LineSegment) {
	if seg.IsCap() {
		c.PartLeft++
	} else {
		c.MapLeft++
	}
}
