package bsptree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bsp/bsptree"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

func TestLeafAndInternalCounters(t *testing.T) {
	tr := bsptree.New()
	l1 := tr.NewLeaf(ids.SegIdx(0), 4, "A")
	l2 := tr.NewLeaf(ids.SegIdx(4), 4, "B")

	node := tr.NewInternal(
		geom.Point{X: 0, Y: 32}, geom.Vector{X: 1, Y: 0}, nil,
		geom.Box{Max: geom.Point{X: 64, Y: 64}}, geom.Box{Max: geom.Point{X: 64, Y: 32}},
		bsptree.LeafRef(l1), bsptree.LeafRef(l2),
	)
	tr.SetRoot(bsptree.InternalRef(node))

	assert.Equal(t, 1, tr.NumNodes())
	assert.Equal(t, 2, tr.NumLeafs())
	assert.Equal(t, 8, tr.NumHEdges())

	root, built := tr.Root()
	require.True(t, built)
	assert.Equal(t, node, root.Node)
}

func TestReleaseTracksOwnership(t *testing.T) {
	tr := bsptree.New()
	l1 := tr.NewLeaf(ids.SegIdx(0), 3, "A")
	ref := bsptree.LeafRef(l1)

	assert.False(t, tr.Released(ref))
	require.NoError(t, tr.Release(ref))
	assert.True(t, tr.Released(ref))
}

func TestRootUnsetBeforeBuildCompletes(t *testing.T) {
	tr := bsptree.New()
	_, built := tr.Root()
	assert.False(t, built)
}
