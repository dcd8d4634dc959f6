package kcc

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
)

// ProjectMotionOnGround projects motion onto the ground plane with the normal passed. Downward motion along up is
// dropped, upward motion is kept and horizontal motion keeps its heading and length but is tilted to follow the
// slope. This keeps agents from sliding down slopes they land on.
func ProjectMotionOnGround(motion, normal, up mgl32.Vec3) mgl32.Vec3 {
	up = omath.UpOrDefault(up)
	vertical := motion.Dot(up)
	horizontal := motion.Sub(up.Mul(vertical))

	var out mgl32.Vec3
	if vertical > 0 {
		out = up.Mul(vertical)
	}
	length := horizontal.Len()
	if length <= 0 {
		return out
	}
	normal = omath.NormalizeOrZero(normal)
	ny := normal.Dot(up)
	if ny <= 0 {
		return out.Add(horizontal)
	}
	// Lift the horizontal motion along up until it lies in the plane, then restore its length.
	aimed := horizontal.Sub(up.Mul(horizontal.Dot(normal) / ny))
	return out.Add(omath.NormalizeOrZero(aimed).Mul(length))
}

// ProjectMotionOnWall removes the part of the horizontal motion that moves into a wall with the normal passed. The
// motion along up is left untouched so grounded agents do not slide up steep surfaces. Normals that have no
// horizontal component fall back to a plain rejection.
func ProjectMotionOnWall(motion, normal, up mgl32.Vec3) mgl32.Vec3 {
	up = omath.UpOrDefault(up)
	horizontalNormal := omath.NormalizeOrZero(omath.RejectFromNormalized(normal, up))
	if horizontalNormal == (mgl32.Vec3{}) {
		return omath.RejectFrom(motion, normal)
	}
	if into := motion.Dot(horizontalNormal); into < 0 {
		return motion.Sub(horizontalNormal.Mul(into))
	}
	return motion
}

// MotionOnPoint returns how far the point passed was carried by a surface that moved from the previous transform
// to the current one.
func MotionOnPoint(point mgl32.Vec3, current, previous Transform) mgl32.Vec3 {
	return current.TransformPoint(previous.InverseTransformPoint(point)).Sub(point)
}
