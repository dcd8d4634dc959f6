package character

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
)

// WishDirection turns a movement axis (x to the right, y forward) into a world direction, rotated around the world
// up axis by yaw. The returned vector has the length of the axis.
func WishDirection(axis mgl32.Vec2, yaw float32) mgl32.Vec3 {
	return mgl32.QuatRotate(yaw, omath.Up).Rotate(mgl32.Vec3{axis.X(), 0, -axis.Y()})
}

// Acceleration returns the velocity change needed to accelerate towards targetSpeed along direction, limited to
// maxAcceleration*dt. No acceleration is returned if the velocity is already at or above the target speed along
// direction. This is the acceleration model used by Quake.
func Acceleration(velocity, direction mgl32.Vec3, maxAcceleration, targetSpeed, dt float32) mgl32.Vec3 {
	direction = omath.NormalizeOrZero(direction)
	if direction == (mgl32.Vec3{}) {
		return mgl32.Vec3{}
	}
	current := velocity.Dot(direction)
	if current >= targetSpeed {
		return mgl32.Vec3{}
	}
	return direction.Mul(min(targetSpeed-current, maxAcceleration*dt))
}

// Friction returns the velocity change that decelerates velocity against its direction of travel. Speeds below
// 0.01 are left alone.
func Friction(velocity mgl32.Vec3, friction, dt float32) mgl32.Vec3 {
	speedSqr := velocity.LenSqr()
	if speedSqr < 1e-4 {
		return mgl32.Vec3{}
	}
	factor := math32.Exp(-friction / math32.Sqrt(speedSqr) * dt)
	return velocity.Mul(-(1 - factor))
}
