// Package segstore owns every directed line segment a build touches:
// the segments created from input map lines (spec.md §4.2) and the
// segments produced by splitting (§4.5) or gap-capping (§4.7).
//
// A segment's twin, per-side chain, and owning-block links are stable
// ids.SegIdx/ids.BlockIdx references rather than pointers, per spec.md
// §9's arena design note — the same way core.Graph links vertices and
// edges by string ID instead of pointer so that clone/remove operations
// stay simple and the invariants in spec.md §3 (twin.twin == self,
// twin.from == self.to, …) are just equality checks on indices.
//
// segstore caches each segment's own endpoint coordinates (FromOrigin/
// ToOrigin) alongside the vertexstore index, so that classification and
// distance queries (Classify, §4.1) never need to round-trip through
// vertexstore. Both copies are kept in sync by Store.Split, the only
// place a segment's endpoints change after creation.
package segstore
