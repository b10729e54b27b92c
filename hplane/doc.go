// Package hplane models the partitioner's configured half-plane: the
// chosen partition's anchor point and direction, plus the sorted list
// of intercepts recorded against it as segments are classified (spec.md
// §3, §4.4, §4.7).
//
// Grounded on flow's small-struct-plus-epsilon-field idiom
// (FlowOptions.Epsilon) generalized to a geometric epsilon
// (geom.DistEpsilon); the intercept merge and gap-capping algorithms
// follow original_source's hplane.cpp.
package hplane
