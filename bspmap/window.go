package bspmap

import (
	"math"

	"github.com/katalvlaran/bsp/geom"
)

// DetectOneWayWindows runs the one-way-window preprocessing pass of
// spec.md §6 once over m and returns, keyed by LineRef.Index(), the
// sector each eligible one-sided line should be treated as facing on
// its back side ("windowEffect"). The host is responsible for
// annotating this back onto its own Line objects (e.g. so a later
// WindowSector() call returns it) before calling partitioner.New;
// DetectOneWayWindows has no Line implementation of its own to mutate.
//
// Eligibility (spec.md §6): the line has exactly one sector side, and
// at least one endpoint has an odd count of one-sided line owners and
// more than one owner in total. Eligible lines are ray-cast from their
// midpoint, perpendicular to the line's dominant axis, toward the
// line's front side only. The
// nearest line hit on the front side is examined: if that hit's own
// sides are already resolved and its exposed sector equals the test
// line's front sector, the test line's back is annotated with that
// sector.
func DetectOneWayWindows(m Map) map[int]Sector {
	results := make(map[int]Sector)
	lines := m.Lines()

	for _, l := range lines {
		if !eligibleForWindowTest(l) {
			continue
		}
		if sector, ok := windowSectorFor(m, l); ok {
			results[l.Index()] = sector
		}
	}
	return results
}

func eligibleForWindowTest(l LineRef) bool {
	hasOneSide := l.HasFrontSection() != l.HasBackSection()
	if !hasOneSide {
		return false
	}
	return endpointQualifies(l.From()) || endpointQualifies(l.To())
}

func endpointQualifies(v VertexRef) bool {
	one, total := v.CountLineOwners()
	return one%2 == 1 && total > 1
}

// windowSectorFor performs the ray cast described above for a single
// eligible line l against the full candidate set lines.
func windowSectorFor(m Map, l LineRef) (Sector, bool) {
	mid := l.Center()
	dir := l.Direction()

	// The ray runs along the axis perpendicular to the line's dominant
	// axis, on the side its front (sector side) faces.
	perp := dir.Perp()
	if math.Abs(dir.X) >= math.Abs(dir.Y) {
		perp = geom.Vector{X: 0, Y: math.Copysign(1, perp.Y)}
	} else {
		perp = geom.Vector{X: math.Copysign(1, perp.X), Y: 0}
	}
	candidates := []geom.Vector{perp}

	for _, rayDir := range candidates {
		hit, ok := nearestHit(m, mid, rayDir, l)
		if !ok {
			continue
		}
		if !bothSidesResolved(hit) {
			continue
		}
		hitSector := exposedSector(hit, mid, rayDir)
		if hitSector != nil && sectorsEqual(hitSector, l.FrontSector()) {
			return hitSector, true
		}
	}
	return nil, false
}

func bothSidesResolved(l LineRef) bool {
	if l.HasFrontSection() && l.FrontSector() == nil {
		return false
	}
	if l.HasBackSection() && l.BackSector() == nil {
		return false
	}
	return true
}

// exposedSector returns whichever of l's sectors faces back toward the
// ray's origin.
func exposedSector(l LineRef, rayOrigin geom.Point, rayDir geom.Vector) Sector {
	toOrigin := rayOrigin.Sub(l.From().Origin())
	n := l.Direction().Perp()
	if n.Dot(toOrigin) >= 0 {
		if l.HasFrontSection() {
			return l.FrontSector()
		}
		return l.BackSector()
	}
	if l.HasBackSection() {
		return l.BackSector()
	}
	return l.FrontSector()
}

func sectorsEqual(a, b Sector) bool {
	return a != nil && b != nil && a == b
}

// nearestHit finds the closest line in lines (other than self) that the
// ray (origin, dir) intersects at a positive parametric distance.
func nearestHit(m Map, origin geom.Point, dir geom.Vector, self LineRef) (LineRef, bool) {
	var best LineRef
	bestT := math.Inf(1)
	found := false

	m.LinesBoxIterator(m.Bounds(), func(cand LineRef) bool {
		if cand.Index() == self.Index() {
			return true
		}
		t, ok := rayIntersect(origin, dir, cand.From().Origin(), cand.To().Origin())
		if !ok || t <= geom.DistEpsilon {
			return true
		}
		if t < bestT {
			bestT = t
			best = cand
			found = true
		}
		return true
	})
	return best, found
}

// rayIntersect returns the parametric distance t (>=0 meaning along
// dir from origin) at which the ray hits segment [a,b], or ok=false if
// they don't intersect.
func rayIntersect(origin geom.Point, dir geom.Vector, a, b geom.Point) (float64, bool) {
	seg := b.Sub(a)
	denom := dir.X*seg.Y - dir.Y*seg.X
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	diff := a.Sub(origin)
	t := (diff.X*seg.Y - diff.Y*seg.X) / denom
	u := (diff.X*dir.Y - diff.Y*dir.X) / denom
	if u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}
