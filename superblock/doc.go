// Package superblock implements the recursive axis-aligned spatial
// bucket index spec.md §3/§4.3 calls the SuperBlock: a box that splits
// at its midpoint along its longer axis once it grows past a threshold,
// holding whichever segments fit wholly inside its own extent but not
// wholly inside either child.
//
// The tree is built bottom-up by repeated Push calls and walked
// top-down, right child before left, the same explicit-stack traversal
// idiom gridgraph.ConnectedComponents uses for its BFS frontier — a
// slice used as a stack/queue instead of recursion, so a build's whole
// traversal order is just slice order and therefore trivially
// deterministic (spec.md §5).
package superblock
