// Package ids defines the stable arena-index newtypes shared across the
// partitioner's stores (vertexstore, segstore, bsptree). Keeping them in
// their own leaf package lets vertexstore and segstore each reference
// the other's index type without importing one another, mirroring how
// core.Vertex/core.Edge cross-reference each other by plain string ID
// rather than by pointer.
package ids

// VertexIdx is a stable reference into the vertex arena.
type VertexIdx int

// InvalidVertexIdx is the zero-value sentinel for "no vertex".
const InvalidVertexIdx VertexIdx = -1

// SegIdx is a stable reference into the segment arena.
type SegIdx int

// InvalidSegIdx is the zero-value sentinel for "no segment".
const InvalidSegIdx SegIdx = -1

// NodeIdx is a stable reference into the tree-node arena (internal
// nodes only; leaves use LeafIdx).
type NodeIdx int

// InvalidNodeIdx is the zero-value sentinel for "no node".
const InvalidNodeIdx NodeIdx = -1

// LeafIdx is a stable reference into the leaf arena.
type LeafIdx int

// InvalidLeafIdx is the zero-value sentinel for "no leaf".
const InvalidLeafIdx LeafIdx = -1

// BlockIdx is a stable reference into the SuperBlock arena. Segments
// carry a BlockIdx back-pointer to the block that currently holds them
// (spec.md §3's blockRef); the block arena itself lives in package
// superblock.
type BlockIdx int

// InvalidBlockIdx is the sentinel meaning "not currently held by any
// block" (spec.md §3: cleared while a segment is being partitioned).
const InvalidBlockIdx BlockIdx = -1
