package bsptree

import (
	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// Tree is the arena pair (internal nodes, leaves) owned by a single
// build, plus its root reference. Single-writer, like every other store
// in this module (spec.md §5).
type Tree struct {
	nodes []*InternalNode
	leafs []*Leaf
	root  NodeRef
	built bool
}

// New allocates an empty Tree.
func New() *Tree {
	return &Tree{}
}

// NewLeaf allocates a leaf with the given ring and sector.
func (t *Tree) NewLeaf(ringHead ids.SegIdx, ringSize int, sector bspmap.Sector) ids.LeafIdx {
	idx := ids.LeafIdx(len(t.leafs))
	t.leafs = append(t.leafs, &Leaf{Idx: idx, RingHead: ringHead, RingSize: ringSize, Sector: sector})
	return idx
}

// NewInternal allocates an internal node over the given partition and
// children.
func (t *Tree) NewInternal(anchor geom.Point, direction geom.Vector, sourceLine bspmap.LineRef, rightBounds, leftBounds geom.Box, right, left NodeRef) ids.NodeIdx {
	idx := ids.NodeIdx(len(t.nodes))
	t.nodes = append(t.nodes, &InternalNode{
		Idx:         idx,
		Anchor:      anchor,
		Direction:   direction,
		SourceLine:  sourceLine,
		RightBounds: rightBounds,
		LeftBounds:  leftBounds,
		Right:       right,
		Left:        left,
	})
	return idx
}

// GetLeaf returns the leaf at idx, or false if idx is out of range.
func (t *Tree) GetLeaf(idx ids.LeafIdx) (*Leaf, bool) {
	if idx < 0 || int(idx) >= len(t.leafs) {
		return nil, false
	}
	return t.leafs[idx], true
}

// GetInternal returns the internal node at idx, or false if idx is out
// of range.
func (t *Tree) GetInternal(idx ids.NodeIdx) (*InternalNode, bool) {
	if idx < 0 || int(idx) >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[idx], true
}

// SetRoot records ref as the tree's root and marks the tree complete.
func (t *Tree) SetRoot(ref NodeRef) {
	t.root = ref
	t.built = true
}

// Root returns the tree's root reference and whether Build completed
// (false for an empty/degenerate input, per spec.md §4.8's "return nil"
// terminal case).
func (t *Tree) Root() (NodeRef, bool) {
	return t.root, t.built
}

// NumNodes is spec.md §8's numNodes counter: the number of internal
// nodes allocated.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// NumLeafs is spec.md §8's numLeafs counter.
func (t *Tree) NumLeafs() int { return len(t.leafs) }

// NumHEdges is spec.md §8's numHEdges counter: the sum of every leaf's
// ring size.
func (t *Tree) NumHEdges() int {
	total := 0
	for _, l := range t.leafs {
		total += l.RingSize
	}
	return total
}

// Release transfers ownership of ref out of the tree's internal
// bookkeeping (spec.md §5's claim/release model). Releasing an already-
// released ref is a no-op that returns nil; an out-of-range ref returns
// ErrLeafNotFound or ErrNodeNotFound.
func (t *Tree) Release(ref NodeRef) error {
	if ref.IsLeaf {
		leaf, ok := t.GetLeaf(ref.Leaf)
		if !ok {
			return ErrLeafNotFound
		}
		leaf.released = true
		return nil
	}
	node, ok := t.GetInternal(ref.Node)
	if !ok {
		return ErrNodeNotFound
	}
	node.released = true
	return nil
}

// Released reports whether ref has been claimed via Release.
func (t *Tree) Released(ref NodeRef) bool {
	if ref.IsLeaf {
		leaf, ok := t.GetLeaf(ref.Leaf)
		return ok && leaf.released
	}
	node, ok := t.GetInternal(ref.Node)
	return ok && node.released
}
