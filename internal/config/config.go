package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/zeusync/arcadephys/internal/core/simulation"
	"github.com/zeusync/arcadephys/internal/core/systems/physics"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root of a scene file.
type Config struct {
	Log        LogConfig         `yaml:"log"`
	Simulation simulation.Config `yaml:"simulation"`
	Physics    PhysicsConfig     `yaml:"physics"`
	Server     ServerConfig      `yaml:"server"`
	Bodies     []BodyConfig      `yaml:"bodies"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PhysicsConfig carries the stepper tunables and the static forces applied
// to every body.
type PhysicsConfig struct {
	physics.Settings `yaml:",inline"`
	StaticForces     []physics.Force `yaml:"static_forces"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// SnapshotEvery broadcasts one snapshot per this many frames.
	SnapshotEvery int64 `yaml:"snapshot_every"`
	// MaxClients caps concurrent viewers. Zero means unlimited.
	MaxClients int `yaml:"max_clients"`
}

// BodyConfig describes one body of the initial scene. Unset flags default to
// a rigid body that both sends and receives collisions.
type BodyConfig struct {
	ID           string       `yaml:"id"`
	Name         string       `yaml:"name"`
	Position     physics.Vec2 `yaml:"position"`
	Size         physics.Vec2 `yaml:"size"`
	Velocity     physics.Vec2 `yaml:"velocity"`
	Rotation     float64      `yaml:"rotation"`
	Mass         float64      `yaml:"mass"`
	MaxSpeed     float64      `yaml:"max_speed"`
	Gravity      bool         `yaml:"gravity"`
	Rigid        *bool        `yaml:"rigid"`
	ReceivesHits *bool        `yaml:"receives_collision"`
	SendsHits    *bool        `yaml:"sends_collision"`
}

// Default returns a runnable configuration with an empty scene.
func Default() Config {
	return Config{
		Log:        LogConfig{Level: "info"},
		Simulation: simulation.Config{TickRate: 60},
		Physics:    PhysicsConfig{Settings: physics.DefaultSettings()},
		Server:     ServerConfig{Addr: ":8080", SnapshotEvery: 1},
	}
}

// Load decodes YAML over Default and validates the result.
func Load(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks ranges and body uniqueness.
func (c *Config) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("%w: simulation.tick_rate must be positive", ErrInvalidConfig)
	}
	if c.Server.SnapshotEvery <= 0 {
		return fmt.Errorf("%w: server.snapshot_every must be positive", ErrInvalidConfig)
	}
	if c.Server.MaxClients < 0 {
		return fmt.Errorf("%w: server.max_clients must not be negative", ErrInvalidConfig)
	}

	p := c.Physics
	if p.MaxSpeed <= 0 {
		return fmt.Errorf("%w: physics.max_speed must be positive", ErrInvalidConfig)
	}
	if p.MovementThreshold < 0 || p.RotationThreshold < 0 {
		return fmt.Errorf("%w: physics thresholds must not be negative", ErrInvalidConfig)
	}
	if p.Damping < 0 || p.PushOut < 0 {
		return fmt.Errorf("%w: physics.damping and physics.push_out must not be negative", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Bodies))
	for i, b := range c.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d validation failed: %w", i, err)
		}
		if b.ID == "" {
			continue
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: duplicate body id %q", ErrInvalidConfig, b.ID)
		}
		seen[b.ID] = struct{}{}
	}
	return nil
}

// Validate checks a single body description.
func (b BodyConfig) Validate() error {
	if b.Name == "" {
		return fmt.Errorf("%w: body name is required", ErrInvalidConfig)
	}
	if b.Size.X <= 0 || b.Size.Y <= 0 {
		return fmt.Errorf("%w: body %s size must be positive", ErrInvalidConfig, b.Name)
	}
	if b.Mass < 0 || b.MaxSpeed < 0 {
		return fmt.Errorf("%w: body %s mass and max_speed must not be negative", ErrInvalidConfig, b.Name)
	}
	return nil
}

// Body builds the physics body described by b. Zero mass and max speed fall
// back to the body defaults.
func (b BodyConfig) Body() *physics.Body {
	opts := []physics.BodyOption{
		physics.WithVelocity(b.Velocity),
		physics.WithRotation(b.Rotation),
		physics.WithGravity(b.Gravity),
		physics.WithRigid(boolOr(b.Rigid, true)),
		physics.WithCollision(boolOr(b.ReceivesHits, true), boolOr(b.SendsHits, true)),
	}
	if b.ID != "" {
		opts = append(opts, physics.WithID(b.ID))
	}
	if b.Mass > 0 {
		opts = append(opts, physics.WithMass(b.Mass))
	}
	if b.MaxSpeed > 0 {
		opts = append(opts, physics.WithMaxSpeed(b.MaxSpeed))
	}
	return physics.NewBody(b.Name, b.Position, b.Size, opts...)
}

// NewPhysics builds a stepper from the physics section.
func (c *Config) NewPhysics() *physics.Physics {
	return physics.New(
		physics.WithSettings(c.Physics.Settings),
		physics.WithStaticForces(c.Physics.StaticForces...),
	)
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
