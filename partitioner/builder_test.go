package partitioner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/partitioner"
)

// stubVertex is a minimal bspmap.VertexRef. CountLineOwners is never
// consulted by the Builder itself (only by the one-way-window
// preprocessor, run ahead of time by a caller), so it returns zeros.
type stubVertex struct {
	idx    int
	origin geom.Point
}

func (v *stubVertex) IndexInMap() int                { return v.idx }
func (v *stubVertex) Origin() geom.Point             { return v.origin }
func (v *stubVertex) CountLineOwners() (int, int)    { return 0, 0 }

// stubLine is a minimal bspmap.LineRef wired directly with whatever
// front/back/window sector the test scenario calls for, bypassing
// bspmap.DetectOneWayWindows entirely.
type stubLine struct {
	idx                  int
	from, to             *stubVertex
	frontSector          bspmap.Sector
	hasBack              bool
	backSector           bspmap.Sector
	windowSector         bspmap.Sector
	hasWindow            bool
	selfReferencing      bool
	fromPolyobj          bool
}

func (l *stubLine) Index() int                { return l.idx }
func (l *stubLine) From() bspmap.VertexRef    { return l.from }
func (l *stubLine) To() bspmap.VertexRef      { return l.to }
func (l *stubLine) HasFrontSection() bool     { return true }
func (l *stubLine) HasBackSection() bool      { return l.hasBack }
func (l *stubLine) FrontSector() bspmap.Sector { return l.frontSector }
func (l *stubLine) BackSector() bspmap.Sector  { return l.backSector }
func (l *stubLine) IsSelfReferencing() bool    { return l.selfReferencing }
func (l *stubLine) IsFromPolyobj() bool        { return l.fromPolyobj }
func (l *stubLine) Direction() geom.Vector {
	return l.to.Origin().Sub(l.from.Origin())
}
func (l *stubLine) AABox() geom.Box {
	return geom.EmptyBox().Extend(l.from.Origin()).Extend(l.to.Origin())
}
func (l *stubLine) Center() geom.Point {
	f, t := l.from.Origin(), l.to.Origin()
	return geom.Point{X: (f.X + t.X) / 2, Y: (f.Y + t.Y) / 2}
}
func (l *stubLine) WindowSector() (bspmap.Sector, bool) { return l.windowSector, l.hasWindow }

// stubMap is a minimal bspmap.Map over an explicit vertex/line list.
type stubMap struct {
	verts  []bspmap.VertexRef
	lines  []bspmap.LineRef
	bounds geom.Box
}

func (m *stubMap) VertexCount() int          { return len(m.verts) }
func (m *stubMap) Vertexes() []bspmap.VertexRef { return m.verts }
func (m *stubMap) LineCount() int            { return len(m.lines) }
func (m *stubMap) Lines() []bspmap.LineRef   { return m.lines }
func (m *stubMap) Bounds() geom.Box          { return m.bounds }
func (m *stubMap) LinesBoxIterator(box geom.Box, cb func(bspmap.LineRef) bool) {
	for _, l := range m.lines {
		if !cb(l) {
			return
		}
	}
}

// squareMap builds a single closed, convex room: four one-sided walls
// all facing sector "A", with no internal partition admissible.
func squareMap() *stubMap {
	corners := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	vs := make([]*stubVertex, len(corners))
	for i, c := range corners {
		vs[i] = &stubVertex{idx: i, origin: c}
	}

	lines := make([]bspmap.LineRef, len(corners))
	vrefs := make([]bspmap.VertexRef, len(corners))
	for i, v := range vs {
		vrefs[i] = v
	}
	for i := range corners {
		lines[i] = &stubLine{idx: i, from: vs[i], to: vs[(i+1)%len(vs)], frontSector: "A"}
	}

	return &stubMap{
		verts:  vrefs,
		lines:  lines,
		bounds: geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}},
	}
}

// bisectedSquareMap builds a 20x10 room split down the middle (x=10) by
// a two-sided wall: sector "A" on the left half, "B" on the right.
func bisectedSquareMap() *stubMap {
	pts := map[string]geom.Point{
		"bl": {X: 0, Y: 0}, "bm": {X: 10, Y: 0}, "br": {X: 20, Y: 0},
		"tr": {X: 20, Y: 10}, "tm": {X: 10, Y: 10}, "tl": {X: 0, Y: 10},
	}
	v := make(map[string]*stubVertex, len(pts))
	i := 0
	for k, p := range pts {
		v[k] = &stubVertex{idx: i, origin: p}
		i++
	}
	vrefs := make([]bspmap.VertexRef, 0, len(v))
	for _, vv := range v {
		vrefs = append(vrefs, vv)
	}

	lines := []bspmap.LineRef{
		&stubLine{idx: 0, from: v["bl"], to: v["bm"], frontSector: "A"},
		&stubLine{idx: 1, from: v["bm"], to: v["br"], frontSector: "B"},
		&stubLine{idx: 2, from: v["br"], to: v["tr"], frontSector: "B"},
		&stubLine{idx: 3, from: v["tr"], to: v["tm"], frontSector: "B"},
		&stubLine{idx: 4, from: v["tm"], to: v["tl"], frontSector: "A"},
		&stubLine{idx: 5, from: v["tl"], to: v["bl"], frontSector: "A"},
		&stubLine{idx: 6, from: v["bm"], to: v["tm"], frontSector: "B", hasBack: true, backSector: "A"},
	}

	return &stubMap{
		verts:  vrefs,
		lines:  lines,
		bounds: geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 20, Y: 10}},
	}
}

// lShapedMap builds a non-convex L-shaped room: a 20x20 square with its
// top-right 10x10 quadrant removed, all six walls one-sided. Every
// admissible partition line must cross at least one wall it does not
// share an endpoint with, exercising the Intersects/split path.
func lShapedMap() *stubMap {
	corners := []geom.Point{
		{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10},
		{X: 10, Y: 10}, {X: 10, Y: 20}, {X: 0, Y: 20},
	}
	vs := make([]*stubVertex, len(corners))
	vrefs := make([]bspmap.VertexRef, len(corners))
	for i, c := range corners {
		vs[i] = &stubVertex{idx: i, origin: c}
		vrefs[i] = vs[i]
	}

	lines := make([]bspmap.LineRef, len(corners))
	for i := range corners {
		lines[i] = &stubLine{idx: i, from: vs[i], to: vs[(i+1)%len(vs)], frontSector: "A"}
	}

	return &stubMap{
		verts:  vrefs,
		lines:  lines,
		bounds: geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 20, Y: 20}},
	}
}

func TestBuildLShapedRoomSplitsAcrossAWall(t *testing.T) {
	b := partitioner.New(lShapedMap())
	require.NoError(t, b.Build(context.Background()))
	assert.True(t, b.BuiltOk())
	assert.GreaterOrEqual(t, b.NumNodes(), 1)
	assert.GreaterOrEqual(t, b.NumLeafs(), 2)
	// Splitting a one-sided wall allocates one new vertex and one new
	// segment per split, so both counters must grow past the input's six.
	assert.Greater(t, b.NumHEdges(), 6)
	assert.Greater(t, b.NumVertexes(), 6)
}

func TestBuildClosedSquareProducesSingleLeaf(t *testing.T) {
	b := partitioner.New(squareMap())
	require.NoError(t, b.Build(context.Background()))
	assert.True(t, b.BuiltOk())
	assert.Equal(t, 0, b.NumNodes())
	assert.Equal(t, 1, b.NumLeafs())
	assert.Equal(t, 4, b.NumHEdges())

	_, ok := b.Root()
	require.True(t, ok)
}

func TestBuildBisectedSquareProducesInternalNodeAndTwoLeaves(t *testing.T) {
	b := partitioner.New(bisectedSquareMap())
	require.NoError(t, b.Build(context.Background()))
	assert.True(t, b.BuiltOk())
	assert.Equal(t, 1, b.NumNodes())
	assert.Equal(t, 2, b.NumLeafs())

	root, ok := b.Root()
	require.True(t, ok)
	assert.False(t, root.IsLeaf)
}

func TestBuildIsDeterministic(t *testing.T) {
	m := bisectedSquareMap()

	first := partitioner.New(m)
	require.NoError(t, first.Build(context.Background()))

	second := partitioner.New(m)
	require.NoError(t, second.Build(context.Background()))

	assert.Equal(t, first.NumNodes(), second.NumNodes())
	assert.Equal(t, first.NumLeafs(), second.NumLeafs())
	assert.Equal(t, first.NumHEdges(), second.NumHEdges())
	assert.Equal(t, first.NumVertexes(), second.NumVertexes())
}

func TestBuildReportsOneWayWindowThroughObserver(t *testing.T) {
	m := squareMap()
	m.lines[0].(*stubLine).hasWindow = true
	m.lines[0].(*stubLine).windowSector = "beyond"

	var reported bspmap.LineRef
	obs := &recordingObserver{onWindow: func(line bspmap.LineRef, sector bspmap.Sector) {
		reported = line
		assert.Equal(t, bspmap.Sector("beyond"), sector)
	}}

	b := partitioner.New(m, partitioner.WithObserver(obs))
	require.NoError(t, b.Build(context.Background()))
	assert.NotNil(t, reported)
}

// TestBuildReportsUnclosedSectorAndPartialLeafThroughObserver covers
// spec.md §8 scenario S4: a one-sided dummy partition line planted
// inside an otherwise closed room is the only admissible candidate (every
// wall, taken alone, has the other three walls plus the dummy line on a
// single side — spec.md §4.3's MapLeft==0 || MapRight==0 rejection).
// Picking it splits the two walls it crosses but leaves the stretch
// between the split point and the dummy line's own end open on one side,
// which both reports UnclosedSectorFound and leaves the resulting leaf's
// ring with a literal gap (PartialBspLeafBuilt).
func TestBuildReportsUnclosedSectorAndPartialLeafThroughObserver(t *testing.T) {
	m := dummyWallMap(false)

	var unclosed int
	var partial int
	obs := &recordingObserver{
		onUnclosed: func(sector bspmap.Sector, _ geom.Point) {
			unclosed++
			assert.Equal(t, bspmap.Sector("A"), sector)
		},
		onPartial: func(_ ids.LeafIdx, gapCount int) {
			partial++
			assert.Greater(t, gapCount, 0)
		},
	}

	b := partitioner.New(m, partitioner.WithObserver(obs))
	require.NoError(t, b.Build(context.Background()))
	assert.Positive(t, unclosed)
	assert.Positive(t, partial)
}

// TestBuildReportsMigrantHEdgeForSelfReferencingLine covers spec.md §8
// scenario S5: the same dummy interior line, made two-sided and
// self-referencing (front and back both sector "SR"). SelfRef
// suppresses the UnclosedSectorFound diagnostic on the near side (the
// whole reason hplane.Intercept carries SelfRef separately from
// VertexReused), but the leaf it lands in still has no sector of its
// own segments matching "SR", so makeLeaf reports it as a migrant
// half-edge, and the ring still carries the same structural gap as the
// one-sided case.
func TestBuildReportsMigrantHEdgeForSelfReferencingLine(t *testing.T) {
	m := dummyWallMap(true)

	var unclosed, migrant, partial int
	obs := &recordingObserver{
		onUnclosed: func(bspmap.Sector, geom.Point) { unclosed++ },
		onMigrant: func(_ ids.SegIdx, sector bspmap.Sector) {
			migrant++
			assert.Equal(t, bspmap.Sector("SR"), sector)
		},
		onPartial: func(ids.LeafIdx, int) { partial++ },
	}

	b := partitioner.New(m, partitioner.WithObserver(obs))
	require.NoError(t, b.Build(context.Background()))
	assert.Positive(t, migrant)
	assert.Positive(t, partial)
	assert.Zero(t, unclosed)
}

func TestBuildRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := partitioner.New(bisectedSquareMap())
	err := b.Build(ctx)
	assert.Error(t, err)

	var buildErr *partitioner.BuildError
	assert.ErrorAs(t, err, &buildErr)
}

// recordingObserver embeds DiagnosticsObserverBase so only the hooks a
// test cares about need overriding.
type recordingObserver struct {
	partitioner.DiagnosticsObserverBase
	onWindow   func(bspmap.LineRef, bspmap.Sector)
	onUnclosed func(bspmap.Sector, geom.Point)
	onMigrant  func(ids.SegIdx, bspmap.Sector)
	onPartial  func(ids.LeafIdx, int)
}

func (o *recordingObserver) OneWayWindowFound(line bspmap.LineRef, sector bspmap.Sector) {
	if o.onWindow != nil {
		o.onWindow(line, sector)
	}
}

func (o *recordingObserver) UnclosedSectorFound(sector bspmap.Sector, near geom.Point) {
	if o.onUnclosed != nil {
		o.onUnclosed(sector, near)
	}
}

func (o *recordingObserver) MigrantHEdgeBuilt(hedge ids.SegIdx, facingSector bspmap.Sector) {
	if o.onMigrant != nil {
		o.onMigrant(hedge, facingSector)
	}
}

func (o *recordingObserver) PartialBspLeafBuilt(leaf ids.LeafIdx, gapCount int) {
	if o.onPartial != nil {
		o.onPartial(leaf, gapCount)
	}
}

// dummyWallMap builds a closed, convex 10x10 room (sector "A") with one
// extra interior line from (3,5) to (7,5) that touches none of the four
// walls. Since every wall, taken alone, has every other segment falling
// on the same side of its extended line (spec.md §4.3's MapLeft==0 ||
// MapRight==0 rejection — already demonstrated by squareMap producing
// zero splits), the interior line is the only admissible partition:
// picking it splits the two walls it crosses (the left and right walls,
// at y=5) and leaves a genuine gap between the split point at x=0 and
// the interior line's own start at x=3 (spec.md §4.7's "open on one
// side, not self-referencing" case). twoSided controls whether the
// interior line is a one-sided dummy (front-only, sector "A", the
// classic dummy-partition-line mapping trick) or a two-sided
// self-referencing line (front==back=="SR", spec.md §8 scenario S5).
func dummyWallMap(twoSided bool) *stubMap {
	corners := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	vs := make([]*stubVertex, len(corners))
	vrefs := make([]bspmap.VertexRef, len(corners)+2)
	for i, c := range corners {
		vs[i] = &stubVertex{idx: i, origin: c}
		vrefs[i] = vs[i]
	}
	dFrom := &stubVertex{idx: len(corners), origin: geom.Point{X: 3, Y: 5}}
	dTo := &stubVertex{idx: len(corners) + 1, origin: geom.Point{X: 7, Y: 5}}
	vrefs[len(corners)] = dFrom
	vrefs[len(corners)+1] = dTo

	lines := make([]bspmap.LineRef, 0, 5)
	for i := range corners {
		lines = append(lines, &stubLine{idx: i, from: vs[i], to: vs[(i+1)%len(vs)], frontSector: "A"})
	}
	dummy := &stubLine{idx: len(corners), from: dFrom, to: dTo, frontSector: "A"}
	if twoSided {
		dummy.frontSector, dummy.backSector = "SR", "SR"
		dummy.hasBack = true
		dummy.selfReferencing = true
	}
	lines = append(lines, dummy)

	return &stubMap{
		verts:  vrefs,
		lines:  lines,
		bounds: geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}},
	}
}
