package omath

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Up is the default world up axis, used whenever a degenerate up vector has to be replaced.
var Up = mgl32.Vec3{0, 1, 0}

// NormalizeOrZero returns the unit vector of v, or the zero vector if v is zero, non-finite or too small to be
// normalized reliably.
func NormalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 0 || math32.IsInf(l, 0) || math32.IsNaN(l) {
		return mgl32.Vec3{}
	}
	n := v.Mul(1 / l)
	if !Finite(n) {
		return mgl32.Vec3{}
	}
	return n
}

// DirectionAndLength splits v into a unit direction and its length. ok is false if v cannot be normalized.
func DirectionAndLength(v mgl32.Vec3) (dir mgl32.Vec3, length float32, ok bool) {
	length = v.Len()
	dir = NormalizeOrZero(v)
	if dir == (mgl32.Vec3{}) {
		return mgl32.Vec3{}, 0, false
	}
	return dir, length, true
}

// Finite reports whether every component of v is finite.
func Finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ProjectOnto projects v onto the (not necessarily unit) vector onto. A zero onto yields the zero vector.
func ProjectOnto(v, onto mgl32.Vec3) mgl32.Vec3 {
	lenSqr := onto.LenSqr()
	if lenSqr <= 0 {
		return mgl32.Vec3{}
	}
	return onto.Mul(v.Dot(onto) / lenSqr)
}

// ProjectOntoNormalized projects v onto the unit vector n.
func ProjectOntoNormalized(v, n mgl32.Vec3) mgl32.Vec3 {
	return n.Mul(v.Dot(n))
}

// RejectFrom returns the component of v perpendicular to the (not necessarily unit) vector from.
func RejectFrom(v, from mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(ProjectOnto(v, from))
}

// RejectFromNormalized returns the component of v perpendicular to the unit vector n.
func RejectFromNormalized(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(ProjectOntoNormalized(v, n))
}

// AngleBetween64 returns the angle between a and b computed in double precision with atan2, which keeps angles
// close to 0 and close to 45 degrees stable where acos would lose precision.
func AngleBetween64(a, b mgl32.Vec3) float64 {
	ax, ay, az := float64(a[0]), float64(a[1]), float64(a[2])
	bx, by, bz := float64(b[0]), float64(b[1]), float64(b[2])

	cx := ay*bz - az*by
	cy := az*bx - ax*bz
	cz := ax*by - ay*bx
	return math.Atan2(math.Sqrt(cx*cx+cy*cy+cz*cz), ax*bx+ay*by+az*bz)
}

// SimilarityThreshold is the dot product above which two unit vectors are treated as the same plane.
const SimilarityThreshold = 0.999

// SimilarPlane returns true if the two unit normals describe numerically the same plane orientation.
func SimilarPlane(a, b mgl32.Vec3) bool {
	return a.Dot(b) > SimilarityThreshold
}

// UpOrDefault returns up normalized, or the world up axis if up is degenerate.
func UpOrDefault(up mgl32.Vec3) mgl32.Vec3 {
	if n := NormalizeOrZero(up); n != (mgl32.Vec3{}) {
		return n
	}
	return Up
}

// Vec3FromFloats converts the first three float64 components of v to a 32-bit vector. Missing components are zero.
func Vec3FromFloats(v []float64) mgl32.Vec3 {
	var out mgl32.Vec3
	for i := 0; i < len(v) && i < 3; i++ {
		out[i] = float32(v[i])
	}
	return out
}

// Vec3HzDistSqr returns the squared horizontal distance of a vector on the XZ plane.
func Vec3HzDistSqr(vec3 mgl32.Vec3) float32 {
	return vec3.X()*vec3.X() + vec3.Z()*vec3.Z()
}
