package world

import (
	"encoding/binary"
	"slices"
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/zeebo/xxh3"
)

// maxCells is the number of cells a collider or query may span before it is treated as oversized. Oversized
// colliders are tested by every query instead of being spread over the grid.
const maxCells = 4096

// grid is a uniform spatial hash over collider bounds. Cell coordinates are hashed with xxh3, so two cells may
// share a bucket; queries always test the exact bounds of what they find.
type grid struct {
	cellSize float32
	cells    map[uint64][]kcc.SurfaceID
	oversize map[kcc.SurfaceID]struct{}
}

func newGrid(cellSize float32) *grid {
	return &grid{
		cellSize: cellSize,
		cells:    make(map[uint64][]kcc.SurfaceID),
		oversize: make(map[kcc.SurfaceID]struct{}),
	}
}

func cellKey(x, y, z int) uint64 {
	var b [12]byte
	binary.LittleEndian.PutUint32(b[0:], uint32(int32(x)))
	binary.LittleEndian.PutUint32(b[4:], uint32(int32(y)))
	binary.LittleEndian.PutUint32(b[8:], uint32(int32(z)))
	return xxh3.Hash(b[:])
}

// cellRange returns the cells covered by the box passed and whether there are few enough of them to visit.
func (g *grid) cellRange(bb cube.BBox) (lo, hi cube.Pos, ok bool) {
	inv := 1 / g.cellSize
	lo, hi = cube.PosFromVec3(bb.Min().Mul(inv)), cube.PosFromVec3(bb.Max().Mul(inv))
	n := (hi[0] - lo[0] + 1) * (hi[1] - lo[1] + 1) * (hi[2] - lo[2] + 1)
	return lo, hi, n > 0 && n <= maxCells
}

func (g *grid) visit(lo, hi cube.Pos, f func(key uint64)) {
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				f(cellKey(x, y, z))
			}
		}
	}
}

func (g *grid) insert(id kcc.SurfaceID, bb cube.BBox) {
	lo, hi, ok := g.cellRange(bb)
	if !ok {
		g.oversize[id] = struct{}{}
		return
	}
	g.visit(lo, hi, func(key uint64) {
		g.cells[key] = append(g.cells[key], id)
	})
}

func (g *grid) remove(id kcc.SurfaceID, bb cube.BBox) {
	lo, hi, ok := g.cellRange(bb)
	if !ok {
		delete(g.oversize, id)
		return
	}
	g.visit(lo, hi, func(key uint64) {
		ids := slices.DeleteFunc(g.cells[key], func(other kcc.SurfaceID) bool {
			return other == id
		})
		if len(ids) == 0 {
			delete(g.cells, key)
			return
		}
		g.cells[key] = ids
	})
}

// seenPool holds the sets used by query to report every collider once.
var seenPool = sync.Pool{
	New: func() any {
		return make(map[kcc.SurfaceID]struct{}, 32)
	},
}

// query calls f once for every collider that may overlap the box passed. It returns false without calling f if
// the box is too large for the grid, in which case the caller has to test every collider.
func (g *grid) query(bb cube.BBox, f func(id kcc.SurfaceID)) bool {
	lo, hi, ok := g.cellRange(bb)
	if !ok {
		return false
	}
	seen := seenPool.Get().(map[kcc.SurfaceID]struct{})
	defer func() {
		clear(seen)
		seenPool.Put(seen)
	}()
	for id := range g.oversize {
		seen[id] = struct{}{}
		f(id)
	}
	g.visit(lo, hi, func(key uint64) {
		for _, id := range g.cells[key] {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			f(id)
		}
	})
	return true
}
