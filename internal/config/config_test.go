package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/arcadephys/internal/core/systems/physics"
)

func TestLoadFile(t *testing.T) {
	c, err := LoadFile("testdata/scene.yaml")
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, 120.0, c.Simulation.TickRate)
	assert.Equal(t, "127.0.0.1:9090", c.Server.Addr)
	assert.Equal(t, int64(2), c.Server.SnapshotEvery)
	assert.Equal(t, 4, c.Server.MaxClients)

	// Overridden values plus defaults for the rest.
	assert.Equal(t, 3.7, c.Physics.Gravity)
	assert.Equal(t, 25.0, c.Physics.MaxSpeed)
	assert.Equal(t, physics.DefaultMovementThreshold, c.Physics.MovementThreshold)
	assert.Equal(t, physics.DefaultDamping, c.Physics.Damping)
	assert.False(t, c.Physics.HonorBodyMaxSpeed)
	assert.Equal(t, []physics.Force{physics.F(0.5, 0), physics.F(0, -0.2)}, c.Physics.StaticForces)

	require.Len(t, c.Bodies, 3)

	ship := c.Bodies[0].Body()
	assert.Equal(t, "ship", ship.ID())
	assert.Equal(t, physics.V2(0, 10), ship.Position())
	assert.Equal(t, 2.0, ship.Mass())
	assert.True(t, ship.IsGravityAffected())
	assert.True(t, ship.IsRigid())
	assert.Equal(t, physics.DefaultMaxSpeed, ship.MaxSpeed())

	pickup := c.Bodies[2].Body()
	assert.NotEmpty(t, pickup.ID())
	assert.False(t, pickup.IsRigid())
	assert.True(t, pickup.ReceivesCollision())
	assert.False(t, pickup.SendsCollision())
	assert.Equal(t, 1.0, pickup.Mass())
}

func TestNewPhysics(t *testing.T) {
	c, err := LoadFile("testdata/scene.yaml")
	require.NoError(t, err)

	p := c.NewPhysics()
	assert.Equal(t, 3.7, p.Settings().Gravity)
	sum := p.StaticForcesSum()
	assert.InDelta(t, 0.5, sum.X, 1e-9)
	assert.InDelta(t, -0.2, sum.Y, 1e-9)
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), *c)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "tick rate", doc: "simulation: {tick_rate: 0}"},
		{name: "snapshot interval", doc: "server: {snapshot_every: 0}"},
		{name: "max clients", doc: "server: {max_clients: -1}"},
		{name: "max speed", doc: "physics: {max_speed: -1}"},
		{name: "threshold", doc: "physics: {movement_threshold: -0.1}"},
		{name: "damping", doc: "physics: {damping: -0.5}"},
		{name: "missing body name", doc: "bodies: [{size: {x: 1, y: 1}}]"},
		{name: "zero body size", doc: "bodies: [{name: a, size: {x: 0, y: 1}}]"},
		{name: "negative mass", doc: "bodies: [{name: a, size: {x: 1, y: 1}, mass: -2}]"},
		{
			name: "duplicate ids",
			doc:  "bodies: [{id: a, name: a, size: {x: 1, y: 1}}, {id: a, name: b, size: {x: 1, y: 1}}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadUnknownField(t *testing.T) {
	_, err := Load(strings.NewReader("physics: {gravty: 1}"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}
