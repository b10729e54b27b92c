// Package partitioner drives a single BSP build: initial segment
// construction from a bspmap.Map (spec.md §4.2), partition choice via
// the cost package (§4.3), partitioning and gap capping (§4.4, §4.7),
// recursive node emission (§4.8), and leaf construction and winding
// (§4.9, §4.10).
//
// A Builder owns one vertexstore.Store, one segstore.Store, and one
// bsptree.Tree for the lifetime of a single Build call, matching
// spec.md §5's single-writer, single-build-instance resource model. The
// driver itself is grounded on algorithms/bfs.go's BFS/walker split: New
// plus a small Build entry point hands off to an unexported buildState
// that carries the recursion's mutable working set, the same way
// walker carries a BFS's queue and visited set.
package partitioner
