package simulation

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/character"
	"github.com/oomph-ac/kcc/settings"
)

// InputSource provides the input of an agent for every tick.
type InputSource interface {
	Input(tick uint64) character.Input
}

// InputFunc is an InputSource implemented by a function.
type InputFunc func(tick uint64) character.Input

// Input ...
func (f InputFunc) Input(tick uint64) character.Input {
	return f(tick)
}

// Script is an InputSource that replays a list of inputs, each held for a number of ticks. Once the script runs
// out, its last input is repeated. Jumps are only requested on the first tick of a step.
type Script struct {
	steps []scriptStep
	total uint64
}

type scriptStep struct {
	end   uint64
	input character.Input
}

// NewScript returns a Script replaying the steps passed.
func NewScript(steps []settings.Step) *Script {
	s := &Script{}
	for _, st := range steps {
		in := character.Input{Yaw: st.Yaw, Jump: st.Jump}
		if len(st.Axis) == 2 {
			in.Axis = mgl32.Vec2{float32(st.Axis[0]), float32(st.Axis[1])}
		}
		s.total += uint64(st.Ticks)
		s.steps = append(s.steps, scriptStep{end: s.total, input: in})
	}
	return s
}

// Input ...
func (s *Script) Input(tick uint64) character.Input {
	if len(s.steps) == 0 {
		return character.Input{}
	}
	var start uint64
	for _, st := range s.steps {
		if tick < st.end {
			in := st.input
			in.Jump = in.Jump && tick == start
			return in
		}
		start = st.end
	}
	in := s.steps[len(s.steps)-1].input
	in.Jump = false
	return in
}
