// Package vertexstore owns every vertex a build touches — both the
// vertices that came from the input map and the ones the partitioner
// synthesizes at split points — plus each vertex's edge-tip ring.
//
// The edge-tip ring answers "which sector, if any, is open in direction
// θ from this vertex?" (spec.md §4.6). It is kept sorted by descending
// polar angle at insertion time (FindSurroundingTip relies on this),
// the same way original_source's VertexInfo keeps its per-vertex tip
// list ordered eagerly rather than sorting lazily at query time.
//
// vertexstore deliberately does not know about sectors: a tip only
// records which segment (by ids.SegIdx) leaves the vertex in the front/
// back direction. Resolving "the sector that segment's front/back
// faces" is segstore's job (segstore.OpenSectorAtAngle), since only
// segstore's arena holds that field. This mirrors the teacher's
// layering: core.Graph owns vertices/edges by ID, and algorithms built
// on top (matrix, algorithms) interpret them — core never reaches
// upward into algorithm-specific meaning.
package vertexstore
