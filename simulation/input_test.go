package simulation

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/character"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/settings"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	s := NewScript([]settings.Step{
		{Ticks: 2, Axis: []float64{0, 1}, Jump: true},
		{Ticks: 3, Axis: []float64{1, 0}, Yaw: 1},
	})
	require.Equal(t, character.Input{Axis: mgl32.Vec2{0, 1}, Jump: true}, s.Input(0))
	require.Equal(t, character.Input{Axis: mgl32.Vec2{0, 1}}, s.Input(1))
	require.Equal(t, character.Input{Axis: mgl32.Vec2{1, 0}, Yaw: 1}, s.Input(2))
	require.Equal(t, character.Input{Axis: mgl32.Vec2{1, 0}, Yaw: 1}, s.Input(100))

	require.Equal(t, character.Input{}, NewScript(nil).Input(3))
}

func TestPlatformTransform(t *testing.T) {
	p := newPlatform(kcc.SurfaceID{Index: 1, Generation: 1}, mgl32.Vec3{1, 0, 0}, settings.Platform{
		Travel: []float64{0, 2, 0},
		Period: 4,
		Spin:   math.Pi / 2,
	})

	start := p.transformAt(0)
	require.Equal(t, mgl32.Vec3{1, 0, 0}, start.Position)
	require.Equal(t, mgl32.QuatIdent(), start.Rotation)

	top := p.transformAt(2)
	require.InDeltaSlice(t, []float32{1, 2, 0}, top.Position[:], 1e-5)

	quarter := p.transformAt(1)
	require.InDeltaSlice(t, []float32{1, 1, 0}, quarter.Position[:], 1e-5)
	turned := quarter.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
	require.InDeltaSlice(t, []float32{0, 0, -1}, turned[:], 1e-5)

	back := p.transformAt(4)
	require.InDeltaSlice(t, []float32{1, 0, 0}, back.Position[:], 1e-5)

	still := newPlatform(kcc.SurfaceID{}, mgl32.Vec3{3, 3, 3}, settings.Platform{})
	require.Equal(t, mgl32.Vec3{3, 3, 3}, still.transformAt(10).Position)
}
