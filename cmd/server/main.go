package main

import (
	"context"
	"fmt"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/backend/combined"
	"github.com/mobilegw/go-sync-gateway/internal/config"
	handler "github.com/mobilegw/go-sync-gateway/internal/handler/http"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/server"
	"github.com/mobilegw/go-sync-gateway/internal/store"
	"github.com/mobilegw/go-sync-gateway/internal/workers"

	// Registered backend adapters; selected by driver name in the config.
	_ "github.com/mobilegw/go-sync-gateway/internal/backend/memory"
	_ "github.com/mobilegw/go-sync-gateway/internal/backend/remote"
	_ "github.com/mobilegw/go-sync-gateway/internal/backend/sqlite"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sync-gateway")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	states, err := newStateStore(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating state store")
	}

	factory := newBackendFactory(cfg, log)

	handlers := handler.NewHandler(factory, states, cfg, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	poller := workers.NewChangePoller(workers.BackendFactory(factory), states, cfg.Workers, log)
	workers.NewWorkers(poller).Run()

	srv.RunServer()
}

// newStateStore opens the configured sync-state store and runs its
// migrations.
func newStateStore(cfg config.Storage, log *logger.Logger) (store.StateStore, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := store.NewConnectPostgres(context.Background(), cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return store.NewSQLStateStore(db, log), nil
	case "sqlite":
		db, err := store.NewConnectSQLite(context.Background(), cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return store.NewSQLStateStore(db, log), nil
	case "memory":
		return store.NewMemoryStateStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// newBackendFactory builds the per-request composite backend from the
// configured roster.
func newBackendFactory(cfg *config.StructuredConfig, log *logger.Logger) handler.BackendFactory {
	return func(context.Context) (backend.Backend, error) {
		entries := make([]combined.Entry, 0, len(cfg.Backends))
		for _, e := range cfg.Backends {
			physical, err := backend.New(backend.Config{Driver: e.Driver, DSN: e.DSN, Timeout: e.Timeout})
			if err != nil {
				return nil, fmt.Errorf("backend %q: %w", e.Tag, err)
			}

			entry := combined.Entry{
				Tag:           e.Tag,
				Backend:       physical,
				Users:         e.Users,
				SubfolderName: e.SubfolderName,
			}
			if e.Username != "" || e.Password != "" {
				entry.Credentials = &backend.Credentials{
					Username: e.Username,
					Domain:   e.Domain,
					Password: e.Password,
				}
			}
			entries = append(entries, entry)
		}

		return combined.New(combined.Config{
			Delimiter:     cfg.Sync.Delimiter,
			Backends:      entries,
			TypeAuthority: cfg.Sync.TypeAuthority,
		}, log)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
