package systems

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/arcadephys/internal/core/systems/physics"
)

type staticWorld struct {
	bodies []physics.Inertial
}

func (w staticWorld) Bodies() []physics.Inertial { return w.bodies }
func (w staticWorld) FrameCount() int64          { return 0 }
func (w staticWorld) TotalTime() float64         { return 0 }

func TestPhysicsSystemUpdate(t *testing.T) {
	stepper := physics.New()
	sys := NewPhysicsSystem(stepper)
	body := physics.NewBody("ball", physics.V2(0, 0), physics.V2(1, 1), physics.WithVelocity(physics.V2(2, 0)))

	require.NoError(t, sys.Update(0.5, staticWorld{bodies: []physics.Inertial{body}}))

	assert.Equal(t, "physics", sys.Name())
	assert.Equal(t, PriorityPhysics, sys.Priority())
	assert.Same(t, stepper, sys.Stepper())
	assert.InDelta(t, 1.0, body.Position().X, 1e-9)
	assert.Equal(t, 1, stepper.LastStep().Bodies)
}

func TestMetricsRecord(t *testing.T) {
	var m Metrics
	boom := errors.New("boom")

	m.Record(2*time.Millisecond, nil)
	m.Record(4*time.Millisecond, boom)

	assert.Equal(t, uint64(2), m.ExecutionCount)
	assert.Equal(t, 6*time.Millisecond, m.TotalExecutionTime)
	assert.Equal(t, 3*time.Millisecond, m.AverageExecutionTime)
	assert.Equal(t, 4*time.Millisecond, m.MaxExecutionTime)
	assert.Equal(t, uint64(1), m.ErrorCount)
	assert.Same(t, boom, m.LastError)
}
