package superblock

import (
	"errors"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// ErrBlockNotFound indicates a reference to a block the store does not
// hold.
var ErrBlockNotFound = errors.New("superblock: block not found")

// SplitThreshold is the box size (along either axis) past which a block
// splits into two children at the midpoint of its longer axis. Matches
// original_source's SUPERBLOCK_THRESHOLD.
const SplitThreshold = 256.0

// Side is the result of testing a block's (epsilon-expanded) bounds
// against a directed line, for the cost evaluator's short-circuit
// (spec.md §4.3).
type Side int

const (
	// Straddles means the block's bounds cross the line; its contents
	// and children must be examined individually.
	Straddles Side = iota
	// OnRight means every corner of the block's expanded bounds lies on
	// the line's right (non-negative side).
	OnRight
	// OnLeft means every corner lies on the line's left (non-positive
	// side).
	OnLeft
)

// Block is one node of a SuperBlock tree: an axis-aligned region holding
// whichever segments fit wholly inside its own bounds but not wholly
// inside either child (spec.md §3).
type Block struct {
	Idx    ids.BlockIdx
	Bounds geom.Box

	Right, Left ids.BlockIdx // ids.InvalidBlockIdx if this block is a leaf

	Segs []ids.SegIdx

	// MapCount, CapCount are recursively summed across this block and
	// every descendant: the counts the cost evaluator adds to a side in
	// one step when the short-circuit in SideOf applies.
	MapCount, CapCount int
}

// SideOf implements spec.md §4.3's SuperBlock short-circuit test: the
// block's bounds, expanded by ShortHEdgeEpsilon*1.5, are tested against
// every corner's signed distance from the line anchored at anchor with
// unit normal normalUnit.
func (b *Block) SideOf(anchor geom.Point, normalUnit geom.Vector) Side {
	box := b.Bounds.Expand(geom.ShortHEdgeEpsilon * 1.5)
	corners := [4]geom.Point{
		{X: box.Min.X, Y: box.Min.Y},
		{X: box.Max.X, Y: box.Min.Y},
		{X: box.Min.X, Y: box.Max.Y},
		{X: box.Max.X, Y: box.Max.Y},
	}
	allRight, allLeft := true, true
	for _, c := range corners {
		d := normalUnit.Dot(c.Sub(anchor))
		if d < 0 {
			allRight = false
		}
		if d > 0 {
			allLeft = false
		}
	}
	switch {
	case allRight:
		return OnRight
	case allLeft:
		return OnLeft
	default:
		return Straddles
	}
}

// containsBox reports whether outer wholly contains inner.
func containsBox(outer, inner geom.Box) bool {
	return inner.Min.X >= outer.Min.X && inner.Max.X <= outer.Max.X &&
		inner.Min.Y >= outer.Min.Y && inner.Max.Y <= outer.Max.Y
}

// splitBounds divides bounds into two halves at the midpoint of its
// longer axis, or returns ok=false if bounds is already at or below
// SplitThreshold along both axes.
func splitBounds(bounds geom.Box) (a, b geom.Box, ok bool) {
	w, h := bounds.Width(), bounds.Height()
	if w <= SplitThreshold && h <= SplitThreshold {
		return geom.Box{}, geom.Box{}, false
	}
	if w >= h {
		mid := bounds.Min.X + w/2
		a = geom.Box{Min: bounds.Min, Max: geom.Point{X: mid, Y: bounds.Max.Y}}
		b = geom.Box{Min: geom.Point{X: mid, Y: bounds.Min.Y}, Max: bounds.Max}
	} else {
		mid := bounds.Min.Y + h/2
		a = geom.Box{Min: bounds.Min, Max: geom.Point{X: bounds.Max.X, Y: mid}}
		b = geom.Box{Min: geom.Point{X: bounds.Min.X, Y: mid}, Max: bounds.Max}
	}
	return a, b, true
}
