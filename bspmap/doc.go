// Package bspmap declares the accessor interfaces the partitioner uses
// to read an already-parsed 2D line-segment map (spec.md §6). Map file
// parsing and the final export of tree nodes/leaves into engine data
// structures are explicitly out of scope (spec.md §1) — this package
// only defines the read-only collaborator surface between a host
// application's map representation and the partitioner.
//
// It also carries the one-way-window preprocessing pass (spec.md §6):
// a helper the host runs once, before calling partitioner.New, to
// decide which one-sided lines should be treated as two-sided because
// they sit in a "window" cut into an otherwise solid wall. This package
// only computes the decision (DetectOneWayWindows); it never mutates a
// caller's Line, since bspmap has no concrete Line implementation of
// its own to mutate — annotating the result back onto the host's lines
// is the host's responsibility.
package bspmap
