package partitioner

import (
	"context"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/bsptree"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/segstore"
	"github.com/katalvlaran/bsp/superblock"
	"github.com/katalvlaran/bsp/vertexstore"
)

// Builder owns one build's entire working set: vertex store, segment
// store, and tree, matching spec.md §5's single-writer-per-instance
// resource model. Construct one with New, call Build exactly once, then
// read results off Root/NumNodes/NumLeafs/NumHEdges/NumVertexes/Vertex.
type Builder struct {
	m    bspmap.Map
	cfg  *config
	diag *diagnostics

	vs   *vertexstore.Store
	ss   *segstore.Store
	tree *bsptree.Tree

	mapVertex map[int]ids.VertexIdx

	builtOk bool
}

// New returns a Builder over m, configured by opts. m is read but never
// mutated; m must outlive the call to Build.
func New(m bspmap.Map, opts ...Option) *Builder {
	cfg := newConfig(opts...)
	return &Builder{
		m:         m,
		cfg:       cfg,
		diag:      newDiagnostics(cfg),
		vs:        vertexstore.New(),
		ss:        segstore.New(),
		tree:      bsptree.New(),
		mapVertex: make(map[int]ids.VertexIdx),
	}
}

// SetSplitCostFactor overrides the split-cost factor F (spec.md §6's
// external control interface). Must be called before Build; changing it
// afterward has no effect on an already-completed tree.
func (b *Builder) SetSplitCostFactor(f float64) {
	b.cfg.splitCostFactor = f
}

// Build runs the full partitioning pipeline: initial construction
// (§4.2), recursive partition choice/splitting/capping (§4.3-§4.8),
// leaf construction (§4.9), and leaf winding (§4.10). ctx is checked for
// cancellation only between recursive build steps, never mid-step
// (spec.md §5). A non-nil error means the build failed fatally (spec.md
// §7); BuiltOk reports false and any partial state exists only so the
// caller can release it.
func (b *Builder) Build(ctx context.Context) error {
	rootBlocks, rootIdx := superblock.New(b.m.Bounds())
	if err := b.construct(rootBlocks, rootIdx); err != nil {
		return err
	}

	w := &buildState{Builder: b, ctx: ctx}
	root, ok, err := w.build(rootBlocks, rootIdx)
	if err != nil {
		return err
	}
	if ok {
		b.tree.SetRoot(root)
	}

	b.builtOk = true
	return nil
}

// BuiltOk reports whether the most recent Build completed successfully.
func (b *Builder) BuiltOk() bool { return b.builtOk }

// Root returns the tree's root reference, and false if the build
// produced an empty tree (e.g. every input segment collapsed away).
func (b *Builder) Root() (bsptree.NodeRef, bool) { return b.tree.Root() }

// NumNodes, NumLeafs, NumHEdges, NumVertexes are spec.md §6's Results
// counters.
func (b *Builder) NumNodes() int   { return b.tree.NumNodes() }
func (b *Builder) NumLeafs() int   { return b.tree.NumLeafs() }
func (b *Builder) NumHEdges() int  { return b.tree.NumHEdges() }
func (b *Builder) NumVertexes() int { return b.vs.Count() }

// Vertex returns the partitioner-allocated vertex at idx, matching
// spec.md §6's vertex(index) accessor.
func (b *Builder) Vertex(idx ids.VertexIdx) (*vertexstore.Vertex, bool) {
	return b.vs.Get(idx)
}

// Release transfers ownership of a tree node or leaf out of the
// Builder's bookkeeping (spec.md §6's release(element)).
func (b *Builder) Release(ref bsptree.NodeRef) error {
	return b.tree.Release(ref)
}

// ReleaseVertex transfers ownership of a vertex out of the Builder's
// bookkeeping.
func (b *Builder) ReleaseVertex(idx ids.VertexIdx) error {
	return b.vs.Release(idx)
}
