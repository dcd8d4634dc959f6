package simulation

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
	"github.com/sirupsen/logrus"
)

// probeDistance is how far below an agent the report looks for ground.
const probeDistance = 64

// AgentReport describes the state of a single agent.
type AgentReport struct {
	ID       uuid.UUID
	Name     string
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Grounded bool
	// Clearance is the distance between the bottom of the agent and the walkable ground below it. It is only
	// set if HasGroundBelow is true.
	Clearance      float32
	HasGroundBelow bool
	// Travelled is the horizontal distance between the agent and its spawn position.
	Travelled float32
}

// Report is a snapshot of a Simulation.
type Report struct {
	Tick   uint64
	Agents []AgentReport

	Grounded  int
	MeanSpeed float64
	StdSpeed  float64
	MaxSpeed  float64
	// MeanTickTime is the average wall time spent per tick.
	MeanTickTime time.Duration
}

// Report returns a snapshot of every agent in the simulation.
func (s *Simulation) Report() Report {
	r := Report{Tick: s.tick}
	if s.tick > 0 {
		r.MeanTickTime = s.tickTime / time.Duration(s.tick)
	}
	halfHeight := s.shape.Extents().Y()

	var speeds []float64
	for _, a := range s.Agents() {
		c := a.Character
		ar := AgentReport{
			ID:        a.ID,
			Name:      a.Name,
			Position:  c.Position(),
			Velocity:  c.Velocity(),
			Grounded:  c.Grounded(),
			Travelled: math32.Sqrt(omath.Vec3HzDistSqr(c.Position().Sub(a.spawn))),
		}
		if height, _, ok := kcc.ProbeGroundRay(s.space, c.Position(), c.Up(), probeDistance, c.Config().WalkableAngle, c.Filter()); ok {
			ar.Clearance, ar.HasGroundBelow = max(height-halfHeight, 0), true
		}
		if ar.Grounded {
			r.Grounded++
		}
		speeds = append(speeds, float64(ar.Velocity.Len()))
		r.Agents = append(r.Agents, ar)
	}
	r.MeanSpeed = omath.Mean(speeds)
	r.StdSpeed = omath.StandardDeviation(speeds)
	r.MaxSpeed = omath.Max(speeds)
	return r
}

// Log writes the report to the logger passed: one summary line and one line per agent.
func (r Report) Log(log *logrus.Logger) {
	log.WithFields(logrus.Fields{
		"tick":      r.Tick,
		"agents":    len(r.Agents),
		"grounded":  r.Grounded,
		"meanSpeed": r.MeanSpeed,
		"stdSpeed":  r.StdSpeed,
		"maxSpeed":  r.MaxSpeed,
		"tickTime":  r.MeanTickTime,
	}).Info("simulation report")
	for _, a := range r.Agents {
		fields := logrus.Fields{
			"agent":     a.ID,
			"name":      a.Name,
			"position":  a.Position,
			"grounded":  a.Grounded,
			"travelled": a.Travelled,
		}
		if a.HasGroundBelow {
			fields["clearance"] = a.Clearance
		}
		log.WithFields(fields).Info("agent")
	}
}
