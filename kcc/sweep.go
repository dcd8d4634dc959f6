package kcc

import (
	"github.com/go-gl/mathgl/mgl32"
)

// SafeDistance returns how far a shape may travel towards a surface struck at hitDistance while keeping at
// least epsilon of clearance. It is never negative.
func SafeDistance(hitDistance, epsilon float32) float32 {
	return max(hitDistance-epsilon, 0)
}

// Sweep casts shape from origin along the unit direction up to maxDistance, ignoring surfaces the shape moves
// away from at the origin. If a surface is struck, the safe distance to travel towards it is returned along
// with the hit.
func Sweep(q Query, shape Shape, origin mgl32.Vec3, rotation mgl32.Quat, direction mgl32.Vec3, maxDistance, epsilon float32, filter *Filter) (float32, Hit, bool) {
	hit, ok := q.CastShape(shape, origin, rotation, direction, maxDistance, SweepOptions, filter)
	if !ok {
		return 0, Hit{}, false
	}
	return SafeDistance(hit.Distance, epsilon), hit, true
}
