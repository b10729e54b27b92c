// Package cost implements spec.md §4.3's partition choice: scoring a
// candidate segment as a partition against a SuperBlock subtree
// (evalPartition) and picking the best-scoring admissible candidate
// from a block's pre-order walk (ChooseNextPartition).
//
// Grounded on the small walker-struct pattern dfs/bfs use (traversal
// state held on a struct, with a recursive or explicit-stack walk
// method) generalized to a cost-accumulation walk over superblock.Store;
// the scoring formulas themselves are spec.md §4.3's, traceable to
// original_source's Partitioner::evalPartitionCostForSuperBlock.
package cost
