package bsptree

import (
	"errors"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// ErrNodeNotFound indicates a reference to an internal node the tree
// does not hold.
var ErrNodeNotFound = errors.New("bsptree: internal node not found")

// ErrLeafNotFound indicates a reference to a leaf the tree does not
// hold.
var ErrLeafNotFound = errors.New("bsptree: leaf not found")

// NodeRef is a reference to either an internal node or a leaf — the two
// variants of spec.md §3's "tree node". Exactly one of Node/Leaf is
// meaningful, selected by IsLeaf. The zero NodeRef (IsLeaf false, Node
// 0) is indistinguishable from a reference to internal node 0.
type NodeRef struct {
	IsLeaf bool
	Node   ids.NodeIdx
	Leaf   ids.LeafIdx
}

// LeafRef returns a NodeRef pointing at leaf idx.
func LeafRef(idx ids.LeafIdx) NodeRef { return NodeRef{IsLeaf: true, Leaf: idx} }

// InternalRef returns a NodeRef pointing at internal node idx.
func InternalRef(idx ids.NodeIdx) NodeRef { return NodeRef{IsLeaf: false, Node: idx} }

// InternalNode is a partition line plus the two (already-built)
// subtrees it separates, with each child's tight bounding box snapshot
// from the partitioning round that produced it (spec.md §4.8).
type InternalNode struct {
	Idx ids.NodeIdx

	Anchor     geom.Point
	Direction  geom.Vector
	SourceLine bspmap.LineRef

	RightBounds, LeftBounds geom.Box
	Right, Left             NodeRef

	released bool
}

// Leaf is a convex region's clockwise half-edge ring (spec.md §4.10).
type Leaf struct {
	Idx ids.LeafIdx

	RingHead ids.SegIdx
	RingSize int
	Sector   bspmap.Sector

	released bool
}
