// SPDX-License-Identifier: Apache-2.0

// Package http is the device-facing JSON surface of the gateway. It is a
// thin driver around the sync engine: requests carry device-originated
// changes and a state counter, responses stream back the server-side
// change-set. The mobile wire protocol's own encoding lives outside this
// repository; this surface exists so the engine can be driven end to end.
package http

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/config"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/store"
)

// BackendFactory builds the composite backend for one request. The
// handler owns the returned instance for the duration of the request and
// releases it with Logoff during teardown.
type BackendFactory func(ctx context.Context) (backend.Backend, error)

// Handler bundles the dependencies of the device-facing endpoints.
type Handler struct {
	newBackend BackendFactory
	states     store.StateStore
	syncCfg    config.Sync
	version    string
	logger     *logger.Logger
}

// NewHandler constructs the handler.
func NewHandler(factory BackendFactory, states store.StateStore, cfg *config.StructuredConfig, log *logger.Logger) *Handler {
	return &Handler{
		newBackend: factory,
		states:     states,
		syncCfg:    cfg.Sync,
		version:    cfg.App.Version,
		logger:     log,
	}
}

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getVersion)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.withSession)
		r.Post("/api/folders/sync", h.syncHierarchy)
		r.Post("/api/sync/{folderID}", h.syncFolder)
		r.Delete("/api/sync/{folderID}/state", h.resetFolderState)
		r.Post("/api/ping", h.ping)
	})

	return router
}
