package kcc

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// SurfaceID is a weak reference to a surface owned by the geometric world. It is made up of a slot index and the
// generation of that slot, so a handle to a removed surface never resolves to a surface that later reuses the slot.
// The zero value refers to no surface.
type SurfaceID struct {
	Index      uint32
	Generation uint32
}

// NoSurface is the zero SurfaceID, which never refers to a live surface.
var NoSurface SurfaceID

// Valid returns true if the id could refer to a surface. It does not check that the surface is still alive.
func (id SurfaceID) Valid() bool {
	return id.Generation != 0
}

// String ...
func (id SurfaceID) String() string {
	return fmt.Sprintf("%dv%d", id.Index, id.Generation)
}

// Hit is the result of a single shape or ray cast. It is only meaningful within the solver iteration that produced it.
type Hit struct {
	// Distance is the distance travelled along the cast direction until the first contact.
	Distance float32
	// Normal is the outward normal of the struck surface at the contact.
	Normal mgl32.Vec3
	// Point is the approximate world-space contact point.
	Point mgl32.Vec3
	// Surface is the surface that was struck.
	Surface SurfaceID
}

// AllLayers is a layer mask that matches every collision layer.
const AllLayers = ^uint32(0)

// Filter excludes surfaces from queries. It is built once per agent per tick and reused by every sweep of that
// tick. A nil *Filter allows everything.
type Filter struct {
	// Mask is a bitmask over collision layers. A surface is only considered if its layers share a bit with Mask.
	Mask uint32

	excluded map[SurfaceID]struct{}
}

// NewFilter returns a filter with the mask passed that excludes the surfaces passed.
func NewFilter(mask uint32, excluded ...SurfaceID) *Filter {
	f := &Filter{Mask: mask, excluded: make(map[SurfaceID]struct{}, len(excluded))}
	f.Exclude(excluded...)
	return f
}

// Exclude adds surfaces to the set of excluded surfaces.
func (f *Filter) Exclude(ids ...SurfaceID) {
	if f.excluded == nil {
		f.excluded = make(map[SurfaceID]struct{}, len(ids))
	}
	for _, id := range ids {
		f.excluded[id] = struct{}{}
	}
}

// Reset clears the excluded set and sets a new mask, keeping the allocated set for reuse.
func (f *Filter) Reset(mask uint32) {
	clear(f.excluded)
	f.Mask = mask
}

// Excludes returns true if the surface passed is explicitly excluded.
func (f *Filter) Excludes(id SurfaceID) bool {
	if f == nil {
		return false
	}
	_, ok := f.excluded[id]
	return ok
}

// Allows returns true if a surface with the id and collision layers passed should be considered by a query.
func (f *Filter) Allows(id SurfaceID, layers uint32) bool {
	if f == nil {
		return true
	}
	if f.Mask&layers == 0 {
		return false
	}
	return !f.Excludes(id)
}

// CastOptions controls how a shape cast treats shapes that already overlap at the cast origin.
type CastOptions struct {
	// IgnoreOriginPenetration ignores surfaces the shape already penetrates at the origin if the cast moves
	// away from them.
	IgnoreOriginPenetration bool
	// ComputeContactOnPenetration reports a zero-distance contact with a penetration normal for surfaces the
	// shape already penetrates at the origin and moves further into.
	ComputeContactOnPenetration bool
}

// SweepOptions are the cast options used by every sweep of the solver.
var SweepOptions = CastOptions{IgnoreOriginPenetration: true, ComputeContactOnPenetration: true}

// Query is the geometric query capability the solver consumes. It is implemented by the physics or geometry
// collaborator that owns the world. Implementations must be safe for concurrent read-only use if agents are
// processed in parallel.
type Query interface {
	// CastShape casts shape from origin with the rotation passed along the unit direction, up to maxDistance.
	CastShape(shape Shape, origin mgl32.Vec3, rotation mgl32.Quat, direction mgl32.Vec3, maxDistance float32, opts CastOptions, filter *Filter) (Hit, bool)
	// CastRay casts a ray from origin along the unit direction, up to maxDistance.
	CastRay(origin, direction mgl32.Vec3, maxDistance float32, filter *Filter) (Hit, bool)
}

// Transform is a rigid world pose.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityTransform returns a transform at the origin with no rotation.
func IdentityTransform() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// TransformPoint moves a point from the local space of t into world space.
func (t Transform) TransformPoint(local mgl32.Vec3) mgl32.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(local))
}

// InverseTransformPoint moves a world-space point into the local space of t.
func (t Transform) InverseTransformPoint(world mgl32.Vec3) mgl32.Vec3 {
	return t.Rotation.Inverse().Rotate(world.Sub(t.Position))
}
