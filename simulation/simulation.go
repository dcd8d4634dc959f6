package simulation

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/oomph-ac/kcc/character"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/omath"
	"github.com/oomph-ac/kcc/settings"
	"github.com/oomph-ac/kcc/worker"
	"github.com/oomph-ac/kcc/world"
	"github.com/sirupsen/logrus"
)

// Agent is a character spawned in a Simulation along with the source of its input.
type Agent struct {
	ID        uuid.UUID
	Name      string
	Character *character.Character
	Input     InputSource

	spawn mgl32.Vec3
	mask  uint32
}

// Simulation runs agents through a level at a fixed tick rate. Every tick, each agent refreshes its query filter,
// is advanced and then follows the platform it stands on. Agents are advanced in parallel: they only read from the
// space while platforms are moved in between.
type Simulation struct {
	log  *logrus.Logger
	conf settings.Settings

	shape kcc.Shape
	dt    float32

	space     *world.Space
	platforms []platform
	agents    *orderedmap.OrderedMap[uuid.UUID, *Agent]

	tick     uint64
	tickTime time.Duration
}

// New creates a Simulation from the settings passed, loading its level and spawning every agent it lists.
func New(conf settings.Settings, log *logrus.Logger) (*Simulation, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	shape, err := conf.Character.ShapeValue()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}

	s := &Simulation{
		log:    log,
		conf:   conf,
		shape:  shape,
		dt:     1 / float32(conf.Simulation.TickRate),
		space:  world.NewSpace(conf.Simulation.CellSize),
		agents: orderedmap.NewOrderedMap[uuid.UUID, *Agent](),
	}
	loaded, err := s.space.LoadLevel(conf.Level)
	if err != nil {
		return nil, fmt.Errorf("error loading level: %w", err)
	}
	for i, id := range loaded.Platforms {
		origin, _, _ := s.space.Transform(id)
		s.platforms = append(s.platforms, newPlatform(id, origin.Position, conf.Level.Platforms[i]))
	}
	for _, a := range conf.Agents {
		s.Spawn(a.Name, omath.Vec3FromFloats(a.Spawn), a.Mask, a.Ghost, NewScript(a.Script))
	}
	log.WithFields(logrus.Fields{
		"colliders": s.space.Len(),
		"platforms": len(s.platforms),
		"agents":    s.agents.Len(),
	}).Info("simulation created")
	return s, nil
}

// Space returns the space the agents move through.
func (s *Simulation) Space() *world.Space {
	return s.space
}

// TickDuration returns the simulated duration of a single tick, in seconds.
func (s *Simulation) TickDuration() float32 {
	return s.dt
}

// CurrentTick returns the number of ticks run so far.
func (s *Simulation) CurrentTick() uint64 {
	return s.tick
}

// Spawn adds an agent with the character settings of the simulation at the position passed. A zero mask collides
// with every layer. A nil input source leaves the agent idle.
func (s *Simulation) Spawn(name string, position mgl32.Vec3, mask uint32, ghost bool, input InputSource) *Agent {
	if input == nil {
		input = NewScript(nil)
	}
	if mask == 0 {
		mask = kcc.AllLayers
	}
	a := &Agent{
		ID:    uuid.New(),
		Name:  name,
		Input: input,
		spawn: position,
		mask:  mask,
	}
	a.Character = character.New(kcc.NoSurface, position, character.Config{
		Shape:  s.shape,
		Solver: s.conf.Solver,
		Tuning: s.conf.Character.Tuning,
		Mask:   mask,
		Ghost:  ghost,
		Log:    s.log,
	})
	s.agents.Set(a.ID, a)
	s.log.WithFields(logrus.Fields{"agent": a.ID, "name": name, "position": position}).Debug("agent spawned")
	return a
}

// Despawn removes the agent with the ID passed. It returns false if no such agent exists.
func (s *Simulation) Despawn(id uuid.UUID) bool {
	return s.agents.Delete(id)
}

// Agent returns the agent with the ID passed.
func (s *Simulation) Agent(id uuid.UUID) (*Agent, bool) {
	return s.agents.Get(id)
}

// Agents returns every agent in the order they were spawned.
func (s *Simulation) Agents() []*Agent {
	agents := make([]*Agent, 0, s.agents.Len())
	for el := s.agents.Front(); el != nil; el = el.Next() {
		agents = append(agents, el.Value)
	}
	return agents
}

// Tick runs a single tick of the simulation.
func (s *Simulation) Tick(ctx context.Context) error {
	start := time.Now()
	agents := s.Agents()

	s.space.BeginTick()
	sensors := s.space.Sensors()
	for _, a := range agents {
		a.Character.RefreshFilter(sensors, a.mask)
	}

	gravity, workers := s.conf.Simulation.Gravity, s.conf.Simulation.Workers
	err := worker.Run(ctx, workers, len(agents), func(_ context.Context, i int) error {
		a := agents[i]
		a.Character.Advance(s.space, a.Input.Input(s.tick), gravity, s.dt)
		return nil
	})
	if err != nil {
		s.log.WithField("tick", s.tick).Errorf("error advancing agents: %v", err)
		return err
	}

	t := float64(s.tick+1) * float64(s.dt)
	for _, p := range s.platforms {
		s.space.Move(p.id, p.transformAt(t))
	}

	err = worker.Run(ctx, workers, len(agents), func(_ context.Context, i int) error {
		agents[i].Character.FollowPlatform(s.space, s.space, s.dt)
		return nil
	})
	if err != nil {
		s.log.WithField("tick", s.tick).Errorf("error moving agents with platforms: %v", err)
		return err
	}

	s.tick++
	s.tickTime += time.Since(start)
	if interval := s.conf.Simulation.ReportInterval; interval > 0 && s.tick%uint64(interval) == 0 {
		s.Report().Log(s.log)
	}
	return nil
}

// Run runs the number of ticks passed, or until the context is cancelled.
func (s *Simulation) Run(ctx context.Context, ticks int) error {
	for range ticks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
