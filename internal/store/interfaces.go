package store

import (
	"context"

	"github.com/mobilegw/go-sync-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// StateStore persists serialized sync states between device sessions. The
// blob is opaque to the store; rows are addressed by device, scope type,
// scope key (folder id, or "0" for the hierarchy) and a monotonically
// increasing counter the protocol layer assigns per sync round.
type StateStore interface {
	// GetState loads one state blob; ErrStateNotFound when the row does
	// not exist.
	GetState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string, counter int) ([]byte, error)

	// GetLatestState loads the highest-counter blob of one scope along
	// with its counter; ErrStateNotFound when the scope has no rows.
	GetLatestState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string) ([]byte, int, error)

	// SetState upserts one state blob and prunes counters older than the
	// previous one, keeping a single retransmission fallback.
	SetState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string, counter int, blob []byte) error

	// DeleteState drops all counters of one scope; used when a device
	// resets synchronization.
	DeleteState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string) error
}
