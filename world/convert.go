package world

import (
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// DFBoxToCubeBox converts a dragonfly bounding box to a float32-cube bounding box.
func DFBoxToCubeBox(b df_cube.BBox) cube.BBox {
	return cube.Box(
		float32(b.Min().X()), float32(b.Min().Y()), float32(b.Min().Z()),
		float32(b.Max().X()), float32(b.Max().Y()), float32(b.Max().Z()),
	)
}

// BoxFromExtents returns a box centred on the origin with the half extents passed.
func BoxFromExtents(half mgl32.Vec3) cube.BBox {
	return cube.Box(-half[0], -half[1], -half[2], half[0], half[1], half[2])
}

// expand grows the box passed by the half extents of another box, which turns a cast of that box into a cast of its
// centre point.
func expand(bb cube.BBox, half mgl32.Vec3) cube.BBox {
	lo, hi := bb.Min().Sub(half), bb.Max().Add(half)
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
}

// sweptBounds returns the box covering a box with the half extents passed moved from start to end.
func sweptBounds(start, end, half mgl32.Vec3) cube.BBox {
	return cube.Box(
		min(start[0], end[0])-half[0], min(start[1], end[1])-half[1], min(start[2], end[2])-half[2],
		max(start[0], end[0])+half[0], max(start[1], end[1])+half[1], max(start[2], end[2])+half[2],
	)
}

// rotatedExtents returns the half extents of the axis aligned box enclosing a box with the half extents passed
// after it has been rotated.
func rotatedExtents(half mgl32.Vec3, rot mgl32.Quat) mgl32.Vec3 {
	if rot == (mgl32.Quat{}) || rot.ApproxEqual(mgl32.QuatIdent()) {
		return half
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		var axis mgl32.Vec3
		axis[i] = half[i]
		r := rot.Rotate(axis)
		for j := 0; j < 3; j++ {
			if r[j] < 0 {
				out[j] -= r[j]
			} else {
				out[j] += r[j]
			}
		}
	}
	return out
}

func faceNormal(f cube.Face) mgl32.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}
