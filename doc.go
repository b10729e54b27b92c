// Package bsp builds a Binary Space Partitioning tree over a 2D map of
// line segments, the way a Doom-style level compiler turns a flat wad of
// walls and sectors into a renderable/collidable convex-leaf tree.
//
// What it does:
//
//	vertexstore/ — vertex arena + per-vertex edge-tip ring (§4.6 sector queries)
//	segstore/    — segment arena, twin/side-chain linkage, splitting (§4.5)
//	superblock/  — recursive spatial bucket index feeding the cost evaluator
//	hplane/      — the current candidate partition: anchor, direction, intercepts
//	cost/        — scores every candidate partition and picks the cheapest
//	bspmap/      — the read-only collaborator interfaces a host map must implement
//	bsptree/     — the arena of built internal nodes and leaves
//	partitioner/ — the driver: construction, recursion, gap capping, leaf winding
//
// A typical build:
//
//	b := partitioner.New(myMap, partitioner.WithSplitCostFactor(7))
//	if err := b.Build(ctx); err != nil {
//	    // err unwraps to one of partitioner.ErrMalformedInput,
//	    // partitioner.ErrEmptyPartitionSide, partitioner.ErrNoLineSideHalfEdge
//	}
//	root, ok := b.Root()
//
// Every store in this module (vertexstore.Store, segstore.Store,
// bsptree.Tree) is single-writer: one Builder owns its own set for the
// lifetime of one Build call, and concurrent builds must use separate
// Builders over separate stores (spec.md §5).
package bsp
