package injector

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/arcadephys/internal/config"
	"github.com/zeusync/arcadephys/internal/core/events/bus"
	"github.com/zeusync/arcadephys/internal/core/observability/log"
	"github.com/zeusync/arcadephys/internal/core/simulation"
	"github.com/zeusync/arcadephys/internal/core/systems/physics"
	"github.com/zeusync/arcadephys/internal/server"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeApp(t *testing.T) {
	cfg, err := config.LoadFile("../config/testdata/scene.yaml")
	require.NoError(t, err)
	cfg.Server.Addr = "127.0.0.1:0"

	app, err := InitializeApp(cfg)
	require.NoError(t, err)

	require.Len(t, app.Simulation.Bodies(), 3)
	ship, ok := app.Simulation.Body("ship")
	require.True(t, ok)
	assert.True(t, ship.IsGravityAffected())
	assert.Equal(t, 3.7, app.Simulation.Physics().Settings().Gravity)

	require.NoError(t, app.Simulation.Step(1.0/120))
	assert.Equal(t, int64(1), app.Simulation.Snapshot().Frame)
}

func TestInitializeApp_DuplicateScene(t *testing.T) {
	cfg := config.Default()
	one := config.BodyConfig{ID: "a", Name: "a", Size: physics.V2(1, 1)}
	cfg.Bodies = []config.BodyConfig{one, one}

	_, err := InitializeApp(&cfg)
	assert.ErrorIs(t, err, simulation.ErrDuplicateBody)
}

func TestNewAppLogsContacts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := log.NewWithCore(core)

	cfg := config.Default()
	sim, err := simulation.New(cfg.Simulation, cfg.NewPhysics(), bus.New(), logger)
	require.NoError(t, err)
	require.NoError(t, sim.AddBody(physics.NewBody("a", physics.V2(0, 0), physics.V2(2, 2), physics.WithID("a"))))
	require.NoError(t, sim.AddBody(physics.NewBody("b", physics.V2(1, 0), physics.V2(2, 2), physics.WithID("b"))))

	_, err = NewApp(&cfg, logger, sim, server.NewSnapshotServer(server.Config{}, logger))
	require.NoError(t, err)
	require.NoError(t, sim.Step(1.0/60))

	contacts := logs.FilterMessage("contact").All()
	require.Len(t, contacts, 2)
	assert.Equal(t, "a", contacts[0].ContextMap()["body"])
	assert.Equal(t, "b", contacts[1].ContextMap()["body"])
}

func TestAppRunStopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Simulation.TickRate = 500

	app, err := InitializeApp(&cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))
	assert.Positive(t, app.Simulation.FrameCount())
}
