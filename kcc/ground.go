package kcc

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/omath"
)

// Ground is a snapshot of the walkable surface an agent stands on. A Ground can only be obtained through
// NewGroundIfWalkable, so every Ground value is known to have passed the walkability test.
type Ground struct {
	surface SurfaceID
	normal  mgl32.Vec3
}

// Surface returns the surface the ground belongs to.
func (g Ground) Surface() SurfaceID {
	return g.surface
}

// Normal returns the unit normal of the ground at the contact.
func (g Ground) Normal() mgl32.Vec3 {
	return g.normal
}

// IsWalkable returns true if a surface with the normal passed can be stood on, which is the case if the angle
// between the normal and up is smaller than angle. The angle is computed in double precision so that normals close
// to the limit classify consistently.
func IsWalkable(normal, up mgl32.Vec3, angle float32) bool {
	if normal.LenSqr() <= 0 || up.LenSqr() <= 0 {
		return false
	}
	return omath.AngleBetween64(normal, up) < float64(angle)
}

// NewGroundIfWalkable returns a Ground for the surface and normal passed if the normal is walkable under the up
// axis and angle passed.
func NewGroundIfWalkable(surface SurfaceID, normal, up mgl32.Vec3, angle float32) (Ground, bool) {
	if !IsWalkable(normal, up, angle) {
		return Ground{}, false
	}
	return Ground{surface: surface, normal: omath.NormalizeOrZero(normal)}, true
}

// GroundCheck sweeps shape down from position by cfg.GroundCheckDistance. If it lands on a walkable surface, the
// distance the shape may safely be moved down and the new Ground are returned.
func GroundCheck(q Query, shape Shape, position mgl32.Vec3, rotation mgl32.Quat, up mgl32.Vec3, cfg Config, filter *Filter) (float32, Ground, bool) {
	up = omath.UpOrDefault(up)
	safe, hit, ok := Sweep(q, shape, position, rotation, up.Mul(-1), cfg.GroundCheckDistance, cfg.Epsilon, filter)
	if !ok {
		return 0, Ground{}, false
	}
	ground, ok := NewGroundIfWalkable(hit.Surface, hit.Normal, up, cfg.WalkableAngle)
	if !ok {
		return 0, Ground{}, false
	}
	return safe, ground, true
}

// ProbeGroundRay casts a ray down from origin and returns the height of origin above the first walkable surface
// within maxDistance. Surfaces that are too steep to stand on end the probe without a result.
func ProbeGroundRay(q Query, origin, up mgl32.Vec3, maxDistance, walkableAngle float32, filter *Filter) (float32, Ground, bool) {
	up = omath.UpOrDefault(up)
	hit, ok := q.CastRay(origin, up.Mul(-1), maxDistance, filter)
	if !ok {
		return 0, Ground{}, false
	}
	ground, ok := NewGroundIfWalkable(hit.Surface, hit.Normal, up, walkableAngle)
	if !ok {
		return 0, Ground{}, false
	}
	return hit.Distance, ground, true
}
