package hplane_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/hplane"
	"github.com/katalvlaran/bsp/ids"
)

func TestConfigureResetsIntercepts(t *testing.T) {
	h := hplane.New()
	h.Configure(geom.Point{X: 0, Y: 0}, geom.Vector{X: 1, Y: 0}, nil)
	h.AddIntercept(hplane.Intercept{Distance: 1, Vertex: ids.VertexIdx(0)})
	assert.Len(t, h.Intercepts, 1)

	h.Configure(geom.Point{X: 5, Y: 5}, geom.Vector{X: 0, Y: 1}, nil)
	assert.Empty(t, h.Intercepts)
	assert.Equal(t, geom.Vector{X: 0, Y: 1}, h.Unit)
}

func TestSortAndMergeWithinEpsilon(t *testing.T) {
	h := hplane.New()
	h.Configure(geom.Point{}, geom.Vector{X: 1, Y: 0}, nil)

	h.AddIntercept(hplane.Intercept{Distance: 10, Before: "A", SelfRef: true})
	h.AddIntercept(hplane.Intercept{Distance: 10 + geom.DistEpsilon/2, After: "B", SelfRef: false})
	h.AddIntercept(hplane.Intercept{Distance: 0, Before: "X", After: "Y", SelfRef: true})

	h.SortAndMerge()
	assert.Len(t, h.Intercepts, 2)
	assert.Equal(t, 0.0, h.Intercepts[0].Distance)
	merged := h.Intercepts[1]
	assert.Equal(t, "A", merged.Before)
	assert.Equal(t, "B", merged.After)
	assert.False(t, merged.SelfRef) // cleared: one partner was non-self-ref
}

func TestGapsClassification(t *testing.T) {
	h := hplane.New()
	h.Configure(geom.Point{}, geom.Vector{X: 1, Y: 0}, nil)

	h.AddIntercept(hplane.Intercept{Distance: 0, After: "A", SelfRef: false})
	h.AddIntercept(hplane.Intercept{Distance: 10, Before: nil, After: "A"})
	h.AddIntercept(hplane.Intercept{Distance: 20, Before: "A", After: "A"})
	h.AddIntercept(hplane.Intercept{Distance: 30, Before: "B", SelfRef: false})

	h.SortAndMerge()
	gaps := h.Gaps()
	assert.Len(t, gaps, 3)

	assert.Equal(t, hplane.DiagnosticUnclosedSector, gaps[0].Diagnostic)
	assert.False(t, gaps[0].Emit)

	assert.False(t, gaps[1].Diagnostic != hplane.DiagnosticNone)
	assert.True(t, gaps[1].Emit)
	assert.Equal(t, "A", gaps[1].Sector)

	assert.Equal(t, hplane.DiagnosticSectorMismatch, gaps[2].Diagnostic)
	assert.True(t, gaps[2].Emit)
}

func TestProjectAndParallelDist(t *testing.T) {
	h := hplane.New()
	h.Configure(geom.Point{X: 0, Y: 0}, geom.Vector{X: 10, Y: 0}, nil)

	p := geom.Point{X: 5, Y: 3}
	assert.InDelta(t, 0.5, h.Project(p), 1e-9)
	assert.InDelta(t, 5.0, h.ParallelDist(p), 1e-9)
	assert.InDelta(t, -3.0, h.PerpDist(p), 1e-9)
}
