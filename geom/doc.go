// Package geom provides the 2D geometry primitives shared by every layer
// of the partitioner: points, direction vectors, axis-aligned bounding
// boxes, and the epsilon-tolerant line-relationship classification that
// the cost evaluator and the partitioning pass both depend on.
//
// Numeric tolerances:
//
//	DistEpsilon       – perpendicular-distance equality threshold (1/128)
//	AngEpsilon        – polar-angle equality threshold, in degrees (1/1024)
//	ShortHEdgeEpsilon – "near miss"/short-segment threshold (4.0)
//
// These three constants are fixed by the specification this package
// implements; callers must not override them per segment or per build.
package geom
