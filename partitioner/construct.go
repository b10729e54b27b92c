package partitioner

import (
	"github.com/katalvlaran/bsp/bspmap"
	"github.com/katalvlaran/bsp/geom"
	"github.com/katalvlaran/bsp/ids"
	"github.com/katalvlaran/bsp/superblock"
	"github.com/katalvlaran/bsp/vertexstore"
)

// construct implements spec.md §4.2: build the initial right/left
// segment pair for every non-polyobj input line and insert both into
// the root SuperBlock, rootBlocks/rootIdx.
func (b *Builder) construct(rootBlocks *superblock.Store, rootIdx ids.BlockIdx) error {
	for _, line := range b.m.Lines() {
		if line.IsFromPolyobj() {
			continue
		}
		if err := b.constructLine(line, rootBlocks, rootIdx); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) constructLine(line bspmap.LineRef, rootBlocks *superblock.Store, rootIdx ids.BlockIdx) error {
	fromIdx := b.ensureVertex(line.From())
	toIdx := b.ensureVertex(line.To())
	fromOrigin := line.From().Origin()
	toOrigin := line.To().Origin()

	if toOrigin.Sub(fromOrigin).Length() < geom.DistEpsilon {
		// Degenerate: no segment, but both endpoints still get a tip so
		// later ring queries never find an empty ring where this line
		// would otherwise have contributed one.
		if err := b.vs.AddTip(fromIdx, vertexstore.EdgeTip{Front: ids.InvalidSegIdx, Back: ids.InvalidSegIdx}); err != nil {
			return fatalVertex("construct", err, fromIdx)
		}
		if err := b.vs.AddTip(toIdx, vertexstore.EdgeTip{Front: ids.InvalidSegIdx, Back: ids.InvalidSegIdx}); err != nil {
			return fatalVertex("construct", err, toIdx)
		}
		return nil
	}

	rightIdx, err := b.ss.Add(fromIdx, toIdx, fromOrigin, toOrigin, line, false, line.FrontSector())
	if err != nil {
		return fatalVertex("construct", err, fromIdx)
	}

	leftIdx := ids.InvalidSegIdx
	hasLeft := false
	var leftSector bspmap.Sector
	if line.HasBackSection() {
		leftSector = line.BackSector()
		hasLeft = true
	} else if winSector, ok := line.WindowSector(); ok {
		leftSector = winSector
		hasLeft = true
		b.diag.oneWayWindow(line, winSector)
	}
	if hasLeft {
		leftIdx, err = b.ss.Add(toIdx, fromIdx, toOrigin, fromOrigin, line, true, leftSector)
		if err != nil {
			return fatalVertex("construct", err, toIdx)
		}
		if err := b.ss.LinkTwins(rightIdx, leftIdx); err != nil {
			return fatalSeg("construct", err, rightIdx)
		}
	}

	b.pushInitial(rootBlocks, rootIdx, rightIdx, fromOrigin, toOrigin)
	if hasLeft {
		b.pushInitial(rootBlocks, rootIdx, leftIdx, toOrigin, fromOrigin)
	}

	rightSeg, _ := b.ss.Get(rightIdx)
	if err := b.vs.AddTip(fromIdx, vertexstore.EdgeTip{Angle: rightSeg.Angle, Front: rightIdx, Back: leftIdx}); err != nil {
		return fatalVertex("construct", err, fromIdx)
	}
	backAngle := fromOrigin.Sub(toOrigin).Angle()
	tipAtTo := vertexstore.EdgeTip{Angle: backAngle, Front: ids.InvalidSegIdx, Back: rightIdx}
	if hasLeft {
		tipAtTo.Front = leftIdx
	}
	if err := b.vs.AddTip(toIdx, tipAtTo); err != nil {
		return fatalVertex("construct", err, toIdx)
	}
	return nil
}

// pushInitial inserts segIdx into the root SuperBlock and records its
// landing block on the segment itself.
func (b *Builder) pushInitial(blocks *superblock.Store, root ids.BlockIdx, segIdx ids.SegIdx, from, to geom.Point) {
	segBox := geom.EmptyBox().Extend(from).Extend(to)
	landed, err := blocks.Push(root, segIdx, segBox, false)
	if err != nil {
		return
	}
	if seg, ok := b.ss.Get(segIdx); ok {
		seg.Block = landed
	}
}

// ensureVertex returns the arena index for vref, allocating one on
// first reference (input map vertices are shared across every line
// incident to them).
func (b *Builder) ensureVertex(vref bspmap.VertexRef) ids.VertexIdx {
	key := vref.IndexInMap()
	if idx, ok := b.mapVertex[key]; ok {
		return idx
	}
	idx := b.vs.Add(vref.Origin(), false)
	b.mapVertex[key] = idx
	return idx
}
