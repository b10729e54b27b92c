package superblock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/superblock"
)

func TestPushStaysAtRootWhenSmall(t *testing.T) {
	s, root := superblock.New(geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 64, Y: 64}})
	landed, err := s.Push(root, ids.SegIdx(1), geom.Box{Min: geom.Point{X: 1, Y: 1}, Max: geom.Point{X: 2, Y: 2}}, false)
	require.NoError(t, err)
	assert.Equal(t, root, landed)

	block, ok := s.Get(root)
	require.True(t, ok)
	assert.Equal(t, ids.InvalidBlockIdx, block.Right)
	assert.Equal(t, 1, block.MapCount)
	assert.Equal(t, 0, block.CapCount)
}

func TestPushSplitsLargeBlockAndDescends(t *testing.T) {
	s, root := superblock.New(geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 1000, Y: 10}})
	// A tiny segment near the low-X end should land in a child, not root.
	landed, err := s.Push(root, ids.SegIdx(1), geom.Box{Min: geom.Point{X: 1, Y: 1}, Max: geom.Point{X: 2, Y: 2}}, false)
	require.NoError(t, err)
	assert.NotEqual(t, root, landed)

	rootBlock, _ := s.Get(root)
	assert.NotEqual(t, ids.InvalidBlockIdx, rootBlock.Right)
	assert.NotEqual(t, ids.InvalidBlockIdx, rootBlock.Left)
	assert.Equal(t, 1, rootBlock.MapCount) // recursively summed
}

func TestCollectPreOrderRightBeforeLeft(t *testing.T) {
	s, root := superblock.New(geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 1000, Y: 10}})
	_, err := s.Push(root, ids.SegIdx(1), geom.Box{Min: geom.Point{X: 1, Y: 1}, Max: geom.Point{X: 2, Y: 2}}, false)
	require.NoError(t, err)
	_, err = s.Push(root, ids.SegIdx(2), geom.Box{Min: geom.Point{X: 998, Y: 1}, Max: geom.Point{X: 999, Y: 2}}, true)
	require.NoError(t, err)

	got := s.CollectPreOrder(root)
	assert.ElementsMatch(t, []ids.SegIdx{1, 2}, got)

	rootBlock, _ := s.Get(root)
	assert.Equal(t, 1, rootBlock.MapCount)
	assert.Equal(t, 1, rootBlock.CapCount)
}

func TestSideOfBlock(t *testing.T) {
	block := &superblock.Block{Bounds: geom.Box{Min: geom.Point{X: 0, Y: 0}, Max: geom.Point{X: 10, Y: 10}}}
	// Vertical line at x=20, normal pointing +X: whole block is to the left.
	side := block.SideOf(geom.Point{X: 20, Y: 0}, geom.Vector{X: 1, Y: 0})
	assert.Equal(t, superblock.OnLeft, side)

	// Vertical line at x=-20: whole block is to the right.
	side = block.SideOf(geom.Point{X: -20, Y: 0}, geom.Vector{X: 1, Y: 0})
	assert.Equal(t, superblock.OnRight, side)

	// Vertical line through the middle: straddles.
	side = block.SideOf(geom.Point{X: 5, Y: 0}, geom.Vector{X: 1, Y: 0})
	assert.Equal(t, superblock.Straddles, side)
}
