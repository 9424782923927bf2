package injector

import (
	"context"
	"fmt"

	"github.com/zeusync/arcadephys/internal/config"
	"github.com/zeusync/arcadephys/internal/core/events/bus"
	"github.com/zeusync/arcadephys/internal/core/observability/log"
	"github.com/zeusync/arcadephys/internal/core/simulation"
	"github.com/zeusync/arcadephys/internal/server"
	"golang.org/x/sync/errgroup"
)

// App is the assembled process: one simulation feeding one snapshot server.
type App struct {
	Config     *config.Config
	Logger     *log.Logger
	Simulation *simulation.Simulation
	Server     *server.SnapshotServer
}

// NewApp connects the simulation's snapshots to the server and logs contacts
// at debug level.
func NewApp(cfg *config.Config, logger *log.Logger, sim *simulation.Simulation, srv *server.SnapshotServer) (*App, error) {
	_, err := sim.Bus().Subscribe(simulation.EventContact, func(e bus.Event) error {
		contact, ok := e.Data().(simulation.Contact)
		if !ok {
			return fmt.Errorf("unexpected contact payload %T", e.Data())
		}
		logger.Debug("contact",
			log.String("body", contact.BodyID),
			log.Any("touching", contact.Touching),
		)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("subscribe contacts: %w", err)
	}

	every := cfg.Server.SnapshotEvery
	sim.OnSnapshot(func(snap simulation.Snapshot) {
		if snap.Frame%every != 0 {
			return
		}
		if err := srv.Broadcast(snap); err != nil {
			logger.Error("broadcast snapshot", log.Int64("frame", snap.Frame), log.Error(err))
		}
	})
	return &App{Config: cfg, Logger: logger, Simulation: sim, Server: srv}, nil
}

// Run drives the simulation and serves snapshots until ctx is cancelled or
// either side fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Simulation.Run(ctx) })
	g.Go(func() error { return a.Server.ListenAndServe(ctx) })
	return g.Wait()
}
