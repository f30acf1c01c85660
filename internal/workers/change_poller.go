// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/config"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/store"
	"github.com/mobilegw/go-sync-gateway/models"
)

// BackendFactory builds a backend instance for one poll round.
type BackendFactory func(ctx context.Context) (backend.Backend, error)

// ChangePoller periodically probes the watched folders of one device for
// pending server-side changes. It only uses the cheap probe path, so
// adapters without AlterPing support are skipped. The poller never
// advances any persisted state; it exists to surface pending work in the
// logs before the device's next sync round.
type ChangePoller struct {
	newBackend BackendFactory
	states     store.StateStore
	cfg        config.Workers
	logger     *logger.Logger
}

func NewChangePoller(factory BackendFactory, states store.StateStore, cfg config.Workers, log *logger.Logger) *ChangePoller {
	return &ChangePoller{
		newBackend: factory,
		states:     states,
		cfg:        cfg,
		logger:     log,
	}
}

// Run implements Worker. It spawns the polling loop and returns
// immediately; a zero interval or an empty watch list disables the
// worker.
func (p *ChangePoller) Run() {
	if p.cfg.PingInterval <= 0 || len(p.cfg.PingFolders) == 0 {
		p.logger.Info().Msg("change poller disabled")
		return
	}

	go func() {
		ticker := time.NewTicker(p.cfg.PingInterval)
		defer ticker.Stop()

		for range ticker.C {
			p.poll()
		}
	}()
}

func (p *ChangePoller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.PingInterval)
	defer cancel()

	b, err := p.newBackend(ctx)
	if err != nil {
		p.logger.Err(err).Msg("change poller: error building backend")
		return
	}

	// Empty credentials: composite entries carry their own service
	// credentials in the config when the remap is wanted.
	if err := b.Logon(ctx, backend.Credentials{}); err != nil {
		p.logger.Err(err).Msg("change poller: logon failed")
		return
	}
	defer func() {
		if err := b.Logoff(ctx); err != nil {
			p.logger.Warn().Err(err).Msg("change poller: logoff failed")
		}
	}()

	if err := b.Setup(ctx, backend.Session{DeviceID: p.cfg.PingDeviceID}); err != nil {
		p.logger.Err(err).Msg("change poller: setup failed")
		return
	}

	if !b.AlterPing() {
		p.logger.Debug().Msg("change poller: backend has no cheap probe")
		return
	}

	for _, folderID := range p.cfg.PingFolders {
		p.pollFolder(ctx, b, folderID)
	}
}

func (p *ChangePoller) pollFolder(ctx context.Context, b backend.Backend, folderID string) {
	log := p.logger.With().Str("device", p.cfg.PingDeviceID).Str("folder", folderID).Logger()

	blob, counter, err := p.states.GetLatestState(ctx, p.cfg.PingDeviceID, models.ScopeContent, folderID)
	if errors.Is(err, store.ErrStateNotFound) {
		// Device has not synced this folder yet; nothing to diff against.
		return
	}
	if err != nil {
		log.Err(err).Msg("change poller: error loading state")
		return
	}

	state, err := models.DecodeSyncState(blob)
	if err != nil {
		log.Err(err).Msg("change poller: undecodable state blob")
		return
	}

	changes, err := b.AlterPingChanges(ctx, folderID, state)
	if err != nil {
		log.Err(err).Msg("change poller: probe failed")
		return
	}

	if len(changes) > 0 {
		log.Info().Int("pending", len(changes)).Int("counter", counter).Msg("folder has pending changes")
	}
}
