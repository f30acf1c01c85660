// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/models"
)

// syncStateRepository is the SQL implementation of StateStore. It works
// against both supported dialects: the queries are built with squirrel
// using the placeholder format carried by DB, and the upsert relies on the
// ON CONFLICT clause both PostgreSQL and SQLite understand.
type syncStateRepository struct {
	db  *DB
	log *logger.Logger
}

// NewSQLStateStore constructs a StateStore over an open DB.
func NewSQLStateStore(db *DB, log *logger.Logger) StateStore {
	return &syncStateRepository{db: db, log: log}
}

// GetState implements StateStore.
func (r *syncStateRepository) GetState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string, counter int) ([]byte, error) {
	query, args, err := r.db.builder.
		Select("blob").
		From("sync_states").
		Where("device_id = ? AND scope_type = ? AND scope_key = ? AND counter = ?",
			deviceID, string(scopeType), key, counter).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building get state query: %w", err)
	}

	var blob []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading sync state: %w", err)
	}

	return blob, nil
}

// GetLatestState implements StateStore.
func (r *syncStateRepository) GetLatestState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string) ([]byte, int, error) {
	query, args, err := r.db.builder.
		Select("blob", "counter").
		From("sync_states").
		Where("device_id = ? AND scope_type = ? AND scope_key = ?",
			deviceID, string(scopeType), key).
		OrderBy("counter DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building get latest state query: %w", err)
	}

	var (
		blob    []byte
		counter int
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&blob, &counter)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrStateNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("error loading latest sync state: %w", err)
	}

	return blob, counter, nil
}

// SetState implements StateStore. The row is upserted, then counters older
// than the previous one are pruned so a device retransmitting the last
// round still finds its state.
func (r *syncStateRepository) SetState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string, counter int, blob []byte) error {
	query, args, err := r.db.builder.
		Insert("sync_states").
		Columns("device_id", "scope_type", "scope_key", "counter", "blob", "updated_at").
		Values(deviceID, string(scopeType), key, counter, blob, time.Now().UTC()).
		Suffix("ON CONFLICT (device_id, scope_type, scope_key, counter) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("error building set state query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			// Two sessions of one device raced; last write wins is fine
			// for an opaque state blob.
			r.log.Warn().Str("device", deviceID).Str("key", key).Msg("concurrent state write")
		}
		return fmt.Errorf("error storing sync state: %w", err)
	}

	return r.prune(ctx, deviceID, scopeType, key, counter)
}

func (r *syncStateRepository) prune(ctx context.Context, deviceID string, scopeType models.ScopeType, key string, counter int) error {
	query, args, err := r.db.builder.
		Delete("sync_states").
		Where("device_id = ? AND scope_type = ? AND scope_key = ? AND counter < ?",
			deviceID, string(scopeType), key, counter-1).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building prune query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error pruning old sync states: %w", err)
	}

	return nil
}

// DeleteState implements StateStore.
func (r *syncStateRepository) DeleteState(ctx context.Context, deviceID string, scopeType models.ScopeType, key string) error {
	query, args, err := r.db.builder.
		Delete("sync_states").
		Where("device_id = ? AND scope_type = ? AND scope_key = ?",
			deviceID, string(scopeType), key).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building delete state query: %w", err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("error deleting sync state: %w", err)
	}

	return nil
}
