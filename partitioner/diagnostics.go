package partitioner

import (
	"fmt"

	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
)

// diagnostics de-duplicates and dispatches the non-fatal notifications
// of spec.md §7, one event per subject per build. Sector mismatch and
// orphan leaf have no dedicated DiagnosticsObserver method (spec.md §6
// lists only four), so they fall back to the teacher's Verbose+fmt.Printf
// idiom (flow.Dinic's Verbose bool) rather than inventing observer hooks
// the external interface never specifies.
type diagnostics struct {
	cfg *config

	seenUnclosed map[interface{}]bool
	seenMismatch map[interface{}]bool
	seenMigrant  map[ids.SegIdx]bool
	seenPartial  map[ids.LeafIdx]bool
	seenOrphan   map[ids.LeafIdx]bool
	seenWindow   map[int]bool
}

func newDiagnostics(cfg *config) *diagnostics {
	return &diagnostics{
		cfg:          cfg,
		seenUnclosed: make(map[interface{}]bool),
		seenMismatch: make(map[interface{}]bool),
		seenMigrant:  make(map[ids.SegIdx]bool),
		seenPartial:  make(map[ids.LeafIdx]bool),
		seenOrphan:   make(map[ids.LeafIdx]bool),
		seenWindow:   make(map[int]bool),
	}
}

func (d *diagnostics) oneWayWindow(line bspmap.LineRef, sector bspmap.Sector) {
	if d.seenWindow[line.Index()] {
		return
	}
	d.seenWindow[line.Index()] = true
	d.cfg.observer.OneWayWindowFound(line, sector)
	d.logf("one-way window: line %d faces %v", line.Index(), sector)
}

func (d *diagnostics) unclosedSector(sector bspmap.Sector, near geom.Point) {
	key := interface{}(sector)
	if d.seenUnclosed[key] {
		return
	}
	d.seenUnclosed[key] = true
	d.cfg.observer.UnclosedSectorFound(sector, near)
	d.logf("unclosed sector %v near (%.3f, %.3f)", sector, near.X, near.Y)
}

func (d *diagnostics) sectorMismatch(sector bspmap.Sector, near geom.Point) {
	key := interface{}(sector)
	if d.seenMismatch[key] {
		return
	}
	d.seenMismatch[key] = true
	d.logf("sector mismatch near (%.3f, %.3f), chose %v", near.X, near.Y, sector)
}

func (d *diagnostics) migrantHEdge(seg ids.SegIdx, facing bspmap.Sector) {
	if d.seenMigrant[seg] {
		return
	}
	d.seenMigrant[seg] = true
	d.cfg.observer.MigrantHEdgeBuilt(seg, facing)
	d.logf("migrant half-edge %d faces %v", seg, facing)
}

func (d *diagnostics) partialLeaf(leaf ids.LeafIdx, gapCount int) {
	if d.seenPartial[leaf] {
		return
	}
	d.seenPartial[leaf] = true
	d.cfg.observer.PartialBspLeafBuilt(leaf, gapCount)
	d.logf("partial leaf %d: %d gaps", leaf, gapCount)
}

func (d *diagnostics) orphanLeaf(leaf ids.LeafIdx) {
	if d.seenOrphan[leaf] {
		return
	}
	d.seenOrphan[leaf] = true
	d.logf("orphan leaf %d", leaf)
}

func (d *diagnostics) logf(format string, args ...interface{}) {
	if d.cfg.verbose {
		fmt.Printf("partitioner: "+format+"\n", args...)
	}
}
