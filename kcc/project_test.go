package kcc

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestProjectMotionOnGround(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}

	vecInDelta(t, mgl32.Vec3{1, 0, 0}, ProjectMotionOnGround(mgl32.Vec3{1, -3, 0}, up, up), 1e-6)
	vecInDelta(t, mgl32.Vec3{1, 2, 0}, ProjectMotionOnGround(mgl32.Vec3{1, 2, 0}, up, up), 1e-6)

	// Walking up a 45 degree slope keeps the horizontal heading and speed.
	slope := mgl32.Vec3{-1, 1, 0}.Normalize()
	got := ProjectMotionOnGround(mgl32.Vec3{1, -0.5, 0}, slope, up)
	vecInDelta(t, mgl32.Vec3{1, 1, 0}.Normalize(), got, 1e-5)
	require.InDelta(t, 0, got.Dot(slope), 1e-5)

	// Sideways motion on the slope stays horizontal.
	vecInDelta(t, mgl32.Vec3{0, 0, 2}, ProjectMotionOnGround(mgl32.Vec3{0, 0, 2}, slope, up), 1e-5)
}

func TestProjectMotionOnWall(t *testing.T) {
	up := mgl32.Vec3{0, 1, 0}
	wall := mgl32.Vec3{-1, 0, 0}

	vecInDelta(t, mgl32.Vec3{0, 1, 2}, ProjectMotionOnWall(mgl32.Vec3{1, 1, 2}, wall, up), 1e-6)
	vecInDelta(t, mgl32.Vec3{-1, 0, 0}, ProjectMotionOnWall(mgl32.Vec3{-1, 0, 0}, wall, up), 1e-6)

	// A steep slope does not turn horizontal motion into climbing motion.
	steep := mgl32.Vec3{-1, 0.3, 0}.Normalize()
	vecInDelta(t, mgl32.Vec3{0, 0, 0}, ProjectMotionOnWall(mgl32.Vec3{1, 0, 0}, steep, up), 1e-6)

	// Ceilings fall back to a plain rejection.
	vecInDelta(t, mgl32.Vec3{1, 0, 0}, ProjectMotionOnWall(mgl32.Vec3{1, 1, 0}, mgl32.Vec3{0, -1, 0}, up), 1e-6)
}

func TestMotionOnPoint(t *testing.T) {
	prev := IdentityTransform()
	cur := Transform{Position: mgl32.Vec3{1, 0, 0}, Rotation: mgl32.QuatIdent()}
	vecInDelta(t, mgl32.Vec3{1, 0, 0}, MotionOnPoint(mgl32.Vec3{3, 1, 2}, cur, prev), 1e-6)

	cur = Transform{Rotation: mgl32.QuatRotate(math32.Pi/2, mgl32.Vec3{0, 1, 0})}
	vecInDelta(t, mgl32.Vec3{-1, 0, -1}, MotionOnPoint(mgl32.Vec3{1, 0, 0}, cur, prev), 1e-5)

	vecInDelta(t, mgl32.Vec3{}, MotionOnPoint(mgl32.Vec3{5, 5, 5}, prev, prev), 0)
}
