// Package bsptree owns the two arenas a finished (or in-progress) build
// produces — internal nodes and leaves — plus the root reference tying
// them together (spec.md §3's "tree node": either an internal node with
// a partition line and two children, or a leaf with a clockwise
// half-edge ring).
//
// Nodes and leaves are addressed by the stable ids.NodeIdx/ids.LeafIdx
// pair rather than by pointer, the same arena discipline vertexstore and
// segstore use; NodeRef is the discriminated union standing in for "tree
// node" since Go has no direct analogue of the teacher corpus's
// pointer-based internal/leaf split.
package bsptree
