package kcc

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a collider shape handed opaquely to the Query. The solver itself only reads the few properties it
// needs for step climbing; everything else is up to the geometric collaborator.
type Shape interface {
	// Extents returns the half extents of the shape in its local space.
	Extents() mgl32.Vec3
	// HorizontalRadius returns the radius of the shape's footprint perpendicular to its local up axis.
	HorizontalRadius() float32
	// RoundedBase returns true if the bottom of the shape is curved, which makes the measured contact normal
	// drift depending on how far out on a ledge the shape stands.
	RoundedBase() bool
}

// Capsule is a capsule aligned with the local Y axis. Length is the length of the cylindrical segment
// between the two hemispheres.
type Capsule struct {
	Radius float32
	Length float32
}

// Extents ...
func (c Capsule) Extents() mgl32.Vec3 {
	return mgl32.Vec3{c.Radius, c.Length/2 + c.Radius, c.Radius}
}

// HorizontalRadius ...
func (c Capsule) HorizontalRadius() float32 {
	return c.Radius
}

// RoundedBase ...
func (Capsule) RoundedBase() bool {
	return true
}

// Cylinder is a flat-bottomed cylinder aligned with the local Y axis.
type Cylinder struct {
	Radius float32
	Height float32
}

// Extents ...
func (c Cylinder) Extents() mgl32.Vec3 {
	return mgl32.Vec3{c.Radius, c.Height / 2, c.Radius}
}

// HorizontalRadius ...
func (c Cylinder) HorizontalRadius() float32 {
	return c.Radius
}

// RoundedBase ...
func (Cylinder) RoundedBase() bool {
	return false
}

// Box is an oriented box described by its half extents.
type Box struct {
	HalfExtents mgl32.Vec3
}

// Extents ...
func (b Box) Extents() mgl32.Vec3 {
	return b.HalfExtents
}

// HorizontalRadius returns the larger horizontal half extent of the box.
func (b Box) HorizontalRadius() float32 {
	return max(b.HalfExtents[0], b.HalfExtents[2])
}

// RoundedBase ...
func (Box) RoundedBase() bool {
	return false
}
