package systems

import "github.com/zeusync/arcadephys/internal/core/systems/physics"

var _ System = (*PhysicsSystem)(nil)

// PhysicsSystem runs the rigid-body stepper over every body in the world.
type PhysicsSystem struct {
	stepper *physics.Physics
}

func NewPhysicsSystem(stepper *physics.Physics) *PhysicsSystem {
	return &PhysicsSystem{stepper: stepper}
}

func (s *PhysicsSystem) Name() string       { return "physics" }
func (s *PhysicsSystem) Priority() Priority { return PriorityPhysics }

func (s *PhysicsSystem) Update(deltaTime float64, world World) error {
	s.stepper.Update(deltaTime, world.Bodies())
	return nil
}

// Stepper exposes the wrapped stepper, e.g. to register static forces.
func (s *PhysicsSystem) Stepper() *physics.Physics { return s.stepper }
