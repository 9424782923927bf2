package simulation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zeusync/arcadephys/internal/core/events/bus"
	"github.com/zeusync/arcadephys/internal/core/observability/log"
	"github.com/zeusync/arcadephys/internal/core/systems"
	"github.com/zeusync/arcadephys/internal/core/systems/physics"
)

// Event types published on the bus after every frame.
const (
	EventContact       = "physics.contact"
	EventFrameComplete = "simulation.frame"
)

var (
	ErrDuplicateBody   = errors.New("simulation: duplicate body id")
	ErrDuplicateSystem = errors.New("simulation: duplicate system")
	ErrInvalidDelta    = errors.New("simulation: delta time must be finite and non-negative")
	ErrInvalidTickRate = errors.New("simulation: tick rate must be positive")
)

var _ systems.World = (*Simulation)(nil)

// Config controls the frame driver.
type Config struct {
	// TickRate is the number of fixed steps per second used by Run.
	TickRate float64 `yaml:"tick_rate"`
}

// Contact is the payload of an EventContact event.
type Contact struct {
	BodyID   string
	Touching []string
}

// Simulation owns the body list and drives systems once per frame. Step and
// Run must be called from a single goroutine; Snapshot may be read from any.
type Simulation struct {
	config  Config
	logger  log.Log
	bus     bus.EventBus
	physics *systems.PhysicsSystem

	systems []systems.System
	metrics map[string]*systems.Metrics

	bodies    []*physics.Body
	inertials []physics.Inertial
	byID      map[string]*physics.Body

	frame   int64
	elapsed float64

	mu        sync.RWMutex
	snapshot  Snapshot
	observers []func(Snapshot)
}

// New builds a simulation around the given stepper. The physics system is
// registered automatically.
func New(config Config, stepper *physics.Physics, eventBus bus.EventBus, logger log.Log) (*Simulation, error) {
	if config.TickRate <= 0 {
		return nil, ErrInvalidTickRate
	}
	s := &Simulation{
		config:  config,
		logger:  logger.With(log.String("component", "simulation")),
		bus:     eventBus,
		physics: systems.NewPhysicsSystem(stepper),
		metrics: make(map[string]*systems.Metrics),
		byID:    make(map[string]*physics.Body),
	}
	if err := s.AddSystem(s.physics); err != nil {
		return nil, err
	}
	return s, nil
}

// Physics returns the rigid-body stepper.
func (s *Simulation) Physics() *physics.Physics { return s.physics.Stepper() }

// Bus returns the event bus contacts are published on.
func (s *Simulation) Bus() bus.EventBus { return s.bus }

func (s *Simulation) Bodies() []physics.Inertial { return s.inertials }
func (s *Simulation) FrameCount() int64          { return s.frame }
func (s *Simulation) TotalTime() float64         { return s.elapsed }

// Body looks a body up by id.
func (s *Simulation) Body(id string) (*physics.Body, bool) {
	b, ok := s.byID[id]
	return b, ok
}

// AddBody appends a body. Bodies are stepped in insertion order.
func (s *Simulation) AddBody(b *physics.Body) error {
	if _, exists := s.byID[b.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBody, b.ID())
	}
	s.bodies = append(s.bodies, b)
	s.inertials = append(s.inertials, b)
	s.byID[b.ID()] = b
	return nil
}

// RemoveBody drops a body, keeping the order of the rest.
func (s *Simulation) RemoveBody(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	i := slices.IndexFunc(s.bodies, func(b *physics.Body) bool { return b.ID() == id })
	s.bodies = slices.Delete(s.bodies, i, i+1)
	s.inertials = slices.Delete(s.inertials, i, i+1)
	return true
}

// AddSystem registers a system. Systems with equal priority keep
// registration order.
func (s *Simulation) AddSystem(sys systems.System) error {
	if _, exists := s.metrics[sys.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSystem, sys.Name())
	}
	s.systems = append(s.systems, sys)
	slices.SortStableFunc(s.systems, func(a, b systems.System) int {
		return int(a.Priority()) - int(b.Priority())
	})
	s.metrics[sys.Name()] = &systems.Metrics{}
	return nil
}

// SystemMetrics returns a copy of the metrics recorded for a system.
func (s *Simulation) SystemMetrics(name string) (systems.Metrics, bool) {
	m, ok := s.metrics[name]
	if !ok {
		return systems.Metrics{}, false
	}
	return *m, true
}

// OnSnapshot registers a callback invoked with every new snapshot, on the
// frame driver's goroutine.
func (s *Simulation) OnSnapshot(fn func(Snapshot)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Snapshot returns the state committed by the most recent frame.
func (s *Simulation) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Step runs one frame of dt seconds through every system, then publishes
// contacts and a fresh snapshot.
func (s *Simulation) Step(dt float64) error {
	if !(dt >= 0) || dt > maxDelta {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	for _, sys := range s.systems {
		start := time.Now()
		err := sys.Update(dt, s)
		s.metrics[sys.Name()].Record(time.Since(start), err)
		if err != nil {
			return fmt.Errorf("system %s: %w", sys.Name(), err)
		}
	}
	s.frame++
	s.elapsed += dt

	if err := s.publishContacts(); err != nil {
		s.logger.Warn("contact handler failed", log.Int64("frame", s.frame), log.Error(err))
	}

	snap := s.capture()
	s.mu.Lock()
	s.snapshot = snap
	observers := slices.Clone(s.observers)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(snap)
	}

	stats := s.Physics().LastStep()
	s.logger.Debug("frame",
		log.Int64("frame", s.frame),
		log.Float64("dt", dt),
		log.Int("bodies", stats.Bodies),
		log.Int("contacts", stats.Contacts),
		log.Int("rigid_contacts", stats.RigidContacts),
		log.Int("resting", stats.Resting),
	)
	return nil
}

// Run steps the simulation at the configured tick rate with a fixed delta
// until ctx is cancelled.
func (s *Simulation) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / s.config.TickRate)
	dt := 1 / s.config.TickRate

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("simulation started",
		log.Float64("tick_rate", s.config.TickRate),
		log.Int("bodies", len(s.bodies)),
	)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("simulation stopped", log.Int64("frames", s.frame))
			return nil
		case <-ticker.C:
			if err := s.Step(dt); err != nil {
				return err
			}
		}
	}
}

func (s *Simulation) publishContacts() error {
	if s.bus == nil {
		return nil
	}
	var all error
	for _, b := range s.bodies {
		collided := b.CollidedObjects()
		if len(collided) == 0 {
			continue
		}
		contact := Contact{BodyID: b.ID(), Touching: touchingIDs(collided)}
		if err := s.bus.Publish(bus.NewEvent(EventContact, b.ID(), contact)); err != nil {
			all = errors.Join(all, err)
		}
	}
	if err := s.bus.Publish(bus.NewEvent(EventFrameComplete, "simulation", s.frame)); err != nil {
		all = errors.Join(all, err)
	}
	return all
}

// maxDelta bounds a single step; larger deltas are almost always a stalled
// frame driver.
const maxDelta = 60.0

type identified interface {
	ID() string
}

func touchingIDs(collided []physics.Inertial) []string {
	ids := make([]string, 0, len(collided))
	for _, o := range collided {
		if named, ok := o.(identified); ok {
			ids = append(ids, named.ID())
		}
	}
	return ids
}
