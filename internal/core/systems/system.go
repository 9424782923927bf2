package systems

import (
	"time"

	"github.com/zeusync/arcadephys/internal/core/systems/physics"
)

// System is a per-frame processor. Systems run in ascending Priority order,
// once per frame, on the frame driver's goroutine.
type System interface {
	Name() string
	Priority() Priority
	Update(deltaTime float64, world World) error
}

// World is what a system sees of the simulation during a frame. The body
// slice is only valid for the duration of the Update call. FrameCount and
// TotalTime cover completed frames only.
type World interface {
	Bodies() []physics.Inertial
	FrameCount() int64
	TotalTime() float64
}

// Priority defines execution order; lower runs first.
type Priority uint16

const (
	PriorityInput   Priority = 100
	PriorityPreStep Priority = 300
	PriorityPhysics Priority = 500
	PriorityPost    Priority = 700
)

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount       uint64
	TotalExecutionTime   time.Duration
	AverageExecutionTime time.Duration
	MaxExecutionTime     time.Duration
	ErrorCount           uint64
	LastError            error
}

// Record folds one execution into the metrics.
func (m *Metrics) Record(elapsed time.Duration, err error) {
	m.ExecutionCount++
	m.TotalExecutionTime += elapsed
	m.AverageExecutionTime = m.TotalExecutionTime / time.Duration(m.ExecutionCount)
	if elapsed > m.MaxExecutionTime {
		m.MaxExecutionTime = elapsed
	}
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}
