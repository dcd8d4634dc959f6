package kcc

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	var nilFilter *Filter
	require.True(t, nilFilter.Allows(wallID, 0))

	self := SurfaceID{Index: 7, Generation: 3}
	f := NewFilter(0b01, self)
	require.False(t, f.Allows(self, 0b01))
	require.True(t, f.Allows(wallID, 0b11))
	require.False(t, f.Allows(wallID, 0b10))

	f.Reset(AllLayers)
	require.True(t, f.Allows(self, 0b10))
	f.Exclude(wallID)
	require.True(t, f.Excludes(wallID))
}

func TestSurfaceID(t *testing.T) {
	require.False(t, NoSurface.Valid())
	require.True(t, wallID.Valid())
	require.Equal(t, "1v1", wallID.String())
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0})}
	p := mgl32.Vec3{-4, 0.5, 2}
	vecInDelta(t, p, tr.InverseTransformPoint(tr.TransformPoint(p)), 1e-5)
	vecInDelta(t, mgl32.Vec3{}, IdentityTransform().TransformPoint(mgl32.Vec3{}), 0)
}

func TestShapes(t *testing.T) {
	vecInDelta(t, mgl32.Vec3{0.35, 0.85, 0.35}, testShape.Extents(), 1e-6)
	require.True(t, testShape.RoundedBase())

	c := Cylinder{Radius: 0.5, Height: 2}
	require.Equal(t, mgl32.Vec3{0.5, 1, 0.5}, c.Extents())
	require.False(t, c.RoundedBase())
	require.Equal(t, float32(0.5), c.HorizontalRadius())

	b := Box{HalfExtents: mgl32.Vec3{0.2, 1, 0.4}}
	require.Equal(t, float32(0.4), b.HorizontalRadius())
}
