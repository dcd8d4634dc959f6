package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kcc/character"
	"github.com/oomph-ac/kcc/kcc"
	"github.com/oomph-ac/kcc/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains everything needed to run a simulation: the solver and character configuration shared by
// every agent, the level and the agents themselves.
type Settings struct {
	Solver     kcc.Config `toml:"solver" yaml:"solver"`
	Character  Character  `toml:"character" yaml:"character"`
	Simulation Simulation `toml:"simulation" yaml:"simulation"`
	Level      Level      `toml:"level" yaml:"level"`
	Agents     []Agent    `toml:"agents" yaml:"agents"`
}

// Character describes the collider and gameplay tuning of agents.
type Character struct {
	// Shape is one of "capsule", "cylinder" or "box".
	Shape string `toml:"shape" yaml:"shape"`
	// Radius is the radius of capsules and cylinders, and the horizontal half extent of boxes.
	Radius float32 `toml:"radius" yaml:"radius"`
	// Length is the length of the cylindrical part of a capsule, or the full height of cylinders and boxes.
	Length float32          `toml:"length" yaml:"length"`
	Tuning character.Tuning `toml:"tuning" yaml:"tuning"`
}

// Simulation holds the settings of the fixed tick loop.
type Simulation struct {
	// TickRate is the number of ticks per simulated second.
	TickRate int `toml:"tick_rate" yaml:"tick_rate"`
	// Gravity is the downward acceleration applied to airborne agents.
	Gravity float32 `toml:"gravity" yaml:"gravity"`
	// Workers is the number of agents advanced in parallel. Zero means one per CPU.
	Workers int `toml:"workers" yaml:"workers"`
	// CellSize is the size of the cells of the collider grid.
	CellSize float32 `toml:"cell_size" yaml:"cell_size"`
	// ReportInterval is the number of ticks between two logged reports. Zero disables reports.
	ReportInterval int `toml:"report_interval" yaml:"report_interval"`
}

// Level describes the static geometry and the moving platforms of a simulation.
type Level struct {
	Boxes     []Box      `toml:"boxes" yaml:"boxes"`
	Platforms []Platform `toml:"platforms" yaml:"platforms"`
}

// Box is an axis aligned box given by two opposite corners, in any order.
type Box struct {
	Name   string    `toml:"name" yaml:"name"`
	Min    []float64 `toml:"min" yaml:"min"`
	Max    []float64 `toml:"max" yaml:"max"`
	Layers uint32    `toml:"layers" yaml:"layers"`
	Sensor bool      `toml:"sensor" yaml:"sensor"`
}

// Platform is a box that moves back and forth along Travel, completing a round trip every Period seconds, while
// spinning around the up axis at Spin radians per second.
type Platform struct {
	Box    Box       `toml:"box" yaml:"box"`
	Travel []float64 `toml:"travel" yaml:"travel"`
	Period float64   `toml:"period" yaml:"period"`
	Spin   float64   `toml:"spin" yaml:"spin"`
}

// Agent is a character spawned at the start of a simulation.
type Agent struct {
	Name  string    `toml:"name" yaml:"name"`
	Spawn []float64 `toml:"spawn" yaml:"spawn"`
	// Mask is the collision layer mask of the agent. Zero means all layers.
	Mask  uint32 `toml:"mask" yaml:"mask"`
	Ghost bool   `toml:"ghost" yaml:"ghost"`
	// Script is the input the agent replays. The last step repeats once the script runs out.
	Script []Step `toml:"script" yaml:"script"`
}

// Step is a scripted input held for a number of ticks.
type Step struct {
	Ticks int       `toml:"ticks" yaml:"ticks"`
	Axis  []float64 `toml:"axis" yaml:"axis"`
	// Yaw is stored at the precision of character.Input so that it survives a round trip through the file.
	Yaw  float32 `toml:"yaw" yaml:"yaw"`
	Jump bool    `toml:"jump" yaml:"jump"`
}

// DefaultSettings returns the default settings: a capsule agent standing on a floor with a single step.
func DefaultSettings() Settings {
	return Settings{
		Solver: kcc.DefaultConfig(),
		Character: Character{
			Shape:  "capsule",
			Radius: 0.35,
			Length: 1,
			Tuning: character.DefaultTuning(),
		},
		Simulation: Simulation{
			TickRate:       60,
			Gravity:        20,
			CellSize:       4,
			ReportInterval: 60,
		},
		Level: Level{
			Boxes: []Box{
				{Name: "floor", Min: []float64{-20, -1, -20}, Max: []float64{20, 0, 20}},
				{Name: "step", Min: []float64{2, 0, -2}, Max: []float64{4, 0.2, 2}},
			},
		},
		Agents: []Agent{
			{Name: "walker", Spawn: []float64{0, 0.86, 0}, Script: []Step{{Ticks: 120, Axis: []float64{0, 1}, Yaw: -math32.Pi / 2}}},
		},
	}
}

// ShapeValue returns the collider shape described by the character settings.
func (c Character) ShapeValue() (kcc.Shape, error) {
	switch strings.ToLower(c.Shape) {
	case "", "capsule":
		return kcc.Capsule{Radius: c.Radius, Length: c.Length}, nil
	case "cylinder":
		return kcc.Cylinder{Radius: c.Radius, Height: c.Length}, nil
	case "box":
		return kcc.Box{HalfExtents: mgl32.Vec3{c.Radius, c.Length / 2, c.Radius}}, nil
	}
	return nil, oerror.New("unknown character shape %q", c.Shape)
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := marshal(path, DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from a TOML or YAML file, chosen by its extension. Fields missing from the file
// keep their default value. The loaded settings are validated before they are returned.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	// Decoding into the defaults keeps fields missing from the file while explicit zeros are preserved.
	s := DefaultSettings()
	s.Level, s.Agents = Level{}, nil
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		return Settings{}, oerror.New("unsupported config extension %q", ext)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func marshal(path string, s Settings) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	case ".toml":
		return toml.Marshal(s)
	default:
		return nil, oerror.New("unsupported config extension %q", ext)
	}
}

// Validate returns an error describing the first invalid setting found.
func (s Settings) Validate() error {
	switch {
	case s.Solver.MaxIterations < 1:
		return oerror.New("solver.max_iterations must be at least 1, got %d", s.Solver.MaxIterations)
	case s.Solver.SkinWidth <= 0:
		return oerror.New("solver.skin_width must be positive, got %v", s.Solver.SkinWidth)
	case s.Solver.Epsilon <= 0:
		return oerror.New("solver.epsilon must be positive, got %v", s.Solver.Epsilon)
	case s.Solver.WalkableAngle <= 0 || s.Solver.WalkableAngle > math32.Pi/2:
		return oerror.New("solver.walkable_angle must be in (0, pi/2], got %v", s.Solver.WalkableAngle)
	case s.Solver.StepHeight < 0 || s.Solver.GroundCheckDistance < 0:
		return oerror.New("solver.step_height and solver.ground_check_distance must not be negative")
	case s.Character.Radius <= 0 || s.Character.Length < 0:
		return oerror.New("character radius must be positive and length must not be negative")
	case s.Simulation.TickRate <= 0:
		return oerror.New("simulation.tick_rate must be positive, got %d", s.Simulation.TickRate)
	case s.Simulation.CellSize <= 0:
		return oerror.New("simulation.cell_size must be positive, got %v", s.Simulation.CellSize)
	case s.Simulation.Workers < 0:
		return oerror.New("simulation.workers must not be negative, got %d", s.Simulation.Workers)
	}
	if _, err := s.Character.ShapeValue(); err != nil {
		return err
	}
	for i, b := range s.Level.Boxes {
		if err := b.validate(fmt.Sprintf("level.boxes[%d]", i)); err != nil {
			return err
		}
	}
	for i, p := range s.Level.Platforms {
		where := fmt.Sprintf("level.platforms[%d]", i)
		if err := p.Box.validate(where + ".box"); err != nil {
			return err
		}
		if err := vector(where+".travel", p.Travel, 3, true); err != nil {
			return err
		}
		if p.Period < 0 {
			return oerror.New("%s.period must not be negative, got %v", where, p.Period)
		}
	}
	for i, a := range s.Agents {
		where := fmt.Sprintf("agents[%d]", i)
		if err := vector(where+".spawn", a.Spawn, 3, false); err != nil {
			return err
		}
		for j, st := range a.Script {
			if st.Ticks < 0 {
				return oerror.New("%s.script[%d].ticks must not be negative", where, j)
			}
			if err := vector(fmt.Sprintf("%s.script[%d].axis", where, j), st.Axis, 2, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b Box) validate(where string) error {
	if err := vector(where+".min", b.Min, 3, false); err != nil {
		return err
	}
	if err := vector(where+".max", b.Max, 3, false); err != nil {
		return err
	}
	for i := range b.Min {
		if b.Min[i] == b.Max[i] {
			return oerror.New("%s has no volume", where)
		}
	}
	return nil
}

// vector validates that v has n components. Empty vectors are accepted if optional is true.
func vector(where string, v []float64, n int, optional bool) error {
	if optional && len(v) == 0 {
		return nil
	}
	if len(v) != n {
		return oerror.New("%s must have %d components, got %d", where, n, len(v))
	}
	return nil
}
