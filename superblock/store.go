package superblock

import (
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// Store is the arena that owns every Block allocated for one SuperBlock
// tree. A build allocates a fresh Store for the root block and again for
// each right/left pair produced by a partitioning round (spec.md §4.4
// step 2); trees are never merged back together.
type Store struct {
	blocks []*Block
}

// New allocates a Store holding a single root block covering bounds.
func New(bounds geom.Box) (*Store, ids.BlockIdx) {
	s := &Store{blocks: make([]*Block, 0, 16)}
	root := s.alloc(bounds)
	return s, root
}

func (s *Store) alloc(bounds geom.Box) ids.BlockIdx {
	idx := ids.BlockIdx(len(s.blocks))
	s.blocks = append(s.blocks, &Block{
		Idx:    idx,
		Bounds: bounds,
		Right:  ids.InvalidBlockIdx,
		Left:   ids.InvalidBlockIdx,
	})
	return idx
}

// Get returns the block at idx, or false if idx is out of range.
func (s *Store) Get(idx ids.BlockIdx) (*Block, bool) {
	if idx < 0 || int(idx) >= len(s.blocks) {
		return nil, false
	}
	return s.blocks[idx], true
}

// ensureChildren splits idx's block into Right/Left children the first
// time it is asked to hold something, if its bounds exceed SplitThreshold.
// A block whose bounds are already small enough stays childless forever.
func (s *Store) ensureChildren(idx ids.BlockIdx) {
	block := s.blocks[idx]
	if block.Right != ids.InvalidBlockIdx || block.Left != ids.InvalidBlockIdx {
		return
	}
	a, b, ok := splitBounds(block.Bounds)
	if !ok {
		return
	}
	// a is the lower half (smaller X or Y); per spec.md §5/§9 the
	// traversal that matters is "right visited before left" — which
	// half is named Right is an implementation choice, held fixed here
	// so repeated builds over the same geometry are deterministic.
	block.Right = s.alloc(b)
	block.Left = s.alloc(a)
}

// Push inserts segIdx (whose bounding box is segBox) into the subtree
// rooted at idx, descending into whichever child wholly contains segBox,
// and returns the block it actually landed in (its new blockRef). isCap
// marks synthetic partition-cap segments, which recursive MapCount/
// CapCount bookkeeping keeps separate per spec.md §3.
func (s *Store) Push(idx ids.BlockIdx, segIdx ids.SegIdx, segBox geom.Box, isCap bool) (ids.BlockIdx, error) {
	block, ok := s.Get(idx)
	if !ok {
		return ids.InvalidBlockIdx, ErrBlockNotFound
	}
	if isCap {
		block.CapCount++
	} else {
		block.MapCount++
	}
	s.ensureChildren(idx)

	if block.Right != ids.InvalidBlockIdx {
		if r, _ := s.Get(block.Right); containsBox(r.Bounds, segBox) {
			return s.Push(block.Right, segIdx, segBox, isCap)
		}
	}
	if block.Left != ids.InvalidBlockIdx {
		if l, _ := s.Get(block.Left); containsBox(l.Bounds, segBox) {
			return s.Push(block.Left, segIdx, segBox, isCap)
		}
	}
	block.Segs = append(block.Segs, segIdx)
	return idx, nil
}

// CollectPreOrder returns every segment in the subtree rooted at idx, in
// pre-order with the right child visited entirely before the left
// (spec.md §4.3/§5): a block's own segments first, then its right
// subtree, then its left. Grounded on gridgraph.ConnectedComponents'
// slice-as-stack traversal — push work items onto a slice, pop from the
// end — used here instead of recursion so an arbitrarily deep tree
// cannot blow the call stack.
//
// Callers that intend to empty the tree (spec.md §4.4's "popped from the
// input SuperBlock") simply abandon the Store afterward; CollectPreOrder
// itself does not mutate blocks.
func (s *Store) CollectPreOrder(idx ids.BlockIdx) []ids.SegIdx {
	var out []ids.SegIdx
	stack := []ids.BlockIdx{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		block, ok := s.Get(cur)
		if !ok {
			continue
		}
		out = append(out, block.Segs...)
		// Pushed left-then-right so right pops first, giving "right
		// entirely before left" as each popped subtree is fully drained
		// (via its own nested pushes) before the stack returns to left.
		if block.Left != ids.InvalidBlockIdx {
			stack = append(stack, block.Left)
		}
		if block.Right != ids.InvalidBlockIdx {
			stack = append(stack, block.Right)
		}
	}
	return out
}

// WalkBlocks visits every block in the subtree rooted at idx, in the
// same right-before-left pre-order as CollectPreOrder, calling visit
// once per block. Used by the cost evaluator to apply the bounds
// short-circuit of spec.md §4.3 without first flattening to a segment
// list.
func (s *Store) WalkBlocks(idx ids.BlockIdx, visit func(*Block)) {
	stack := []ids.BlockIdx{idx}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		block, ok := s.Get(cur)
		if !ok {
			continue
		}
		visit(block)
		if block.Left != ids.InvalidBlockIdx {
			stack = append(stack, block.Left)
		}
		if block.Right != ids.InvalidBlockIdx {
			stack = append(stack, block.Right)
		}
	}
}
