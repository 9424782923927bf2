package injector

import (
	"fmt"

	"github.com/google/wire"
	"github.com/zeusync/arcadephys/internal/config"
	"github.com/zeusync/arcadephys/internal/core/events/bus"
	"github.com/zeusync/arcadephys/internal/core/observability/log"
	"github.com/zeusync/arcadephys/internal/core/simulation"
	"github.com/zeusync/arcadephys/internal/core/systems/physics"
	"github.com/zeusync/arcadephys/internal/server"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvidePhysics,
	ProvideBus,
	ProvideSimulation,
	ProvideServer,
	NewApp,
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(log.ParseLevel(cfg.Log.Level))
}

func ProvidePhysics(cfg *config.Config) *physics.Physics {
	return cfg.NewPhysics()
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

// ProvideSimulation builds the simulation and loads the configured scene.
func ProvideSimulation(cfg *config.Config, stepper *physics.Physics, eventBus bus.EventBus, logger *log.Logger) (*simulation.Simulation, error) {
	sim, err := simulation.New(cfg.Simulation, stepper, eventBus, logger)
	if err != nil {
		return nil, err
	}
	for _, bc := range cfg.Bodies {
		if err := sim.AddBody(bc.Body()); err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
	}
	return sim, nil
}

func ProvideServer(cfg *config.Config, logger *log.Logger) *server.SnapshotServer {
	return server.NewSnapshotServer(server.Config{
		Addr:       cfg.Server.Addr,
		MaxClients: cfg.Server.MaxClients,
	}, logger)
}
