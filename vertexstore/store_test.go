package vertexstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/vertexstore"
)

func TestAddAndGet(t *testing.T) {
	s := vertexstore.New()
	idx := s.Add(geom.Point{X: 1, Y: 2}, false)
	v, ok := s.Get(idx)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 1, Y: 2}, v.Origin)
	assert.False(t, v.IsSynthetic())
	assert.Equal(t, 1, s.Count())

	_, ok = s.Get(idx + 1)
	assert.False(t, ok)
}

func TestAddTipKeepsDescendingOrder(t *testing.T) {
	s := vertexstore.New()
	idx := s.Add(geom.Point{}, false)

	require.NoError(t, s.AddTip(idx, vertexstore.EdgeTip{Angle: 10, Front: ids.SegIdx(1)}))
	require.NoError(t, s.AddTip(idx, vertexstore.EdgeTip{Angle: 350, Front: ids.SegIdx(2)}))
	require.NoError(t, s.AddTip(idx, vertexstore.EdgeTip{Angle: 90, Front: ids.SegIdx(3)}))

	v, _ := s.Get(idx)
	require.Len(t, v.Tips, 3)
	assert.Equal(t, 350.0, v.Tips[0].Angle)
	assert.Equal(t, 90.0, v.Tips[1].Angle)
	assert.Equal(t, 10.0, v.Tips[2].Angle)
}

func TestFindSurroundingTip(t *testing.T) {
	s := vertexstore.New()
	idx := s.Add(geom.Point{}, false)
	require.NoError(t, s.AddTip(idx, vertexstore.EdgeTip{Angle: 0, Front: ids.SegIdx(1), Back: ids.SegIdx(2)}))
	require.NoError(t, s.AddTip(idx, vertexstore.EdgeTip{Angle: 90, Front: ids.SegIdx(3), Back: ids.SegIdx(4)}))
	require.NoError(t, s.AddTip(idx, vertexstore.EdgeTip{Angle: 180, Front: ids.SegIdx(5), Back: ids.SegIdx(6)}))

	// Exactly on a tip.
	res, err := s.FindSurroundingTip(idx, 90)
	require.NoError(t, err)
	assert.True(t, res.OnTip)

	// Between 0 and 90: nearest greater tip is 90.
	res, err = s.FindSurroundingTip(idx, 45)
	require.NoError(t, err)
	assert.False(t, res.OnTip)
	assert.False(t, res.Wrapped)
	assert.Equal(t, 90.0, res.Tip.Angle)

	// Above every tip: wraps to the greatest-angle tip (180).
	res, err = s.FindSurroundingTip(idx, 270)
	require.NoError(t, err)
	assert.True(t, res.Wrapped)
	assert.Equal(t, 180.0, res.Tip.Angle)
}

func TestFindSurroundingTipEmptyRing(t *testing.T) {
	s := vertexstore.New()
	idx := s.Add(geom.Point{}, false)
	_, err := s.FindSurroundingTip(idx, 0)
	assert.ErrorIs(t, err, vertexstore.ErrEmptyTipRing)
}

func TestReleaseTracksOwnership(t *testing.T) {
	s := vertexstore.New()
	idx := s.Add(geom.Point{}, true)
	assert.False(t, s.Released(idx))
	require.NoError(t, s.Release(idx))
	assert.True(t, s.Released(idx))
}
