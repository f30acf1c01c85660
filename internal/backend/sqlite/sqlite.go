// SPDX-License-Identifier: Apache-2.0

// Package sqlite provides a backend adapter over a local SQLite groupware
// store: folders and messages in two tables, with a per-row mod token
// bumped on every write. It serves deployments where the gateway itself
// owns a content store (e.g. notes or archived mail) next to the remote
// backends.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/models"
)

func init() {
	backend.Register("sqlite", func(cfg backend.Config) (backend.Backend, error) {
		return Open(cfg.DSN)
	})
}

const schema = `
CREATE TABLE IF NOT EXISTS gw_folders (
    id     TEXT PRIMARY KEY,
    parent TEXT NOT NULL DEFAULT '0',
    name   TEXT NOT NULL,
    type   INTEGER NOT NULL,
    mod    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS gw_messages (
    folder_id TEXT NOT NULL,
    id        TEXT NOT NULL,
    subject   TEXT NOT NULL DEFAULT '',
    sender    TEXT NOT NULL DEFAULT '',
    recipient TEXT NOT NULL DEFAULT '',
    body      TEXT NOT NULL DEFAULT '',
    read      INTEGER NOT NULL DEFAULT 0,
    sent      TIMESTAMP,
    mod       INTEGER NOT NULL,
    PRIMARY KEY (folder_id, id)
);`

// Backend is a SQLite-backed adapter instance.
type Backend struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

// Open opens (and if needed initializes) the store at path; ":memory:"
// yields an ephemeral store.
func Open(path string) (*Backend, error) {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite backend: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("sqlite backend: schema: %w", err)
	}

	return &Backend{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

func now() int64 { return time.Now().UnixNano() }

func modToken(mod int64) string { return strconv.FormatInt(mod, 10) }

// Logon implements backend.Backend; the local store trusts the gateway.
func (b *Backend) Logon(context.Context, backend.Credentials) error { return nil }

// Setup implements backend.Backend.
func (b *Backend) Setup(context.Context, backend.Session) error { return nil }

// Logoff implements backend.Backend.
func (b *Backend) Logoff(context.Context) error { return b.db.Close() }

// GetFolderList implements backend.Backend.
func (b *Backend) GetFolderList(ctx context.Context) ([]models.StatEntry, error) {
	query, args, err := b.builder.Select("id", "parent", "mod").From("gw_folders").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite backend: folder list: %w", err)
	}
	defer rows.Close()

	var list []models.StatEntry
	for rows.Next() {
		var entry models.StatEntry
		var mod int64
		if err := rows.Scan(&entry.ID, &entry.ParentID, &mod); err != nil {
			return nil, err
		}
		entry.Mod = modToken(mod)
		list = append(list, entry)
	}

	return list, rows.Err()
}

// GetFolder implements backend.Backend.
func (b *Backend) GetFolder(ctx context.Context, id string) (models.SyncFolder, error) {
	query, args, err := b.builder.
		Select("id", "parent", "name", "type").
		From("gw_folders").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return models.SyncFolder{}, err
	}

	var folder models.SyncFolder
	err = b.db.QueryRowContext(ctx, query, args...).
		Scan(&folder.ServerID, &folder.ParentID, &folder.DisplayName, &folder.Type)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncFolder{}, backend.ErrNotFound
	}
	if err != nil {
		return models.SyncFolder{}, fmt.Errorf("sqlite backend: get folder: %w", err)
	}

	return folder, nil
}

// StatFolder implements backend.Backend.
func (b *Backend) StatFolder(ctx context.Context, id string) (models.StatEntry, error) {
	query, args, err := b.builder.
		Select("id", "parent", "mod").
		From("gw_folders").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return models.StatEntry{}, err
	}

	var entry models.StatEntry
	var mod int64
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.ParentID, &mod)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StatEntry{}, backend.ErrNotFound
	}
	if err != nil {
		return models.StatEntry{}, fmt.Errorf("sqlite backend: stat folder: %w", err)
	}

	entry.Mod = modToken(mod)
	return entry, nil
}

// ChangeFolder implements backend.Backend.
func (b *Backend) ChangeFolder(ctx context.Context, parentID, oldID, displayName string, folderType models.FolderType) (models.StatEntry, error) {
	id := oldID
	if id == "" {
		id = uuid.NewString()
	}
	if parentID == "" {
		parentID = "0"
	}
	mod := now()

	query, args, err := b.builder.
		Insert("gw_folders").
		Columns("id", "parent", "name", "type", "mod").
		Values(id, parentID, displayName, int(folderType), mod).
		Suffix("ON CONFLICT (id) DO UPDATE SET parent = excluded.parent, name = excluded.name, type = excluded.type, mod = excluded.mod").
		ToSql()
	if err != nil {
		return models.StatEntry{}, err
	}

	if _, err = b.db.ExecContext(ctx, query, args...); err != nil {
		return models.StatEntry{}, fmt.Errorf("sqlite backend: change folder: %w", err)
	}

	return models.StatEntry{ID: id, ParentID: parentID, Mod: modToken(mod)}, nil
}

// DeleteFolder implements backend.Backend; messages in the folder are
// removed with it.
func (b *Backend) DeleteFolder(ctx context.Context, _, id string) error {
	query, args, err := b.builder.Delete("gw_folders").Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite backend: delete folder: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return backend.ErrNotFound
	}

	msgQuery, msgArgs, err := b.builder.Delete("gw_messages").Where("folder_id = ?", id).ToSql()
	if err != nil {
		return err
	}
	_, err = b.db.ExecContext(ctx, msgQuery, msgArgs...)
	return err
}

// GetMessageList implements backend.Backend.
func (b *Backend) GetMessageList(ctx context.Context, folderID string, cutoff time.Time) ([]models.StatEntry, error) {
	builder := b.builder.
		Select("id", "read", "mod").
		From("gw_messages").
		Where("folder_id = ?", folderID)
	if !cutoff.IsZero() {
		builder = builder.Where("(sent IS NULL OR sent >= ?)", cutoff)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite backend: message list: %w", err)
	}
	defer rows.Close()

	var list []models.StatEntry
	for rows.Next() {
		var id string
		var read int
		var mod int64
		if err := rows.Scan(&id, &read, &mod); err != nil {
			return nil, err
		}
		list = append(list, models.StatEntry{ID: id, Mod: modToken(mod), Flags: models.Flagged(read & 1)})
	}

	return list, rows.Err()
}

// GetMessage implements backend.Backend.
func (b *Backend) GetMessage(ctx context.Context, folderID, id string, params backend.ContentParams) (models.SyncMessage, error) {
	query, args, err := b.builder.
		Select("id", "subject", "sender", "recipient", "body", "read", "sent").
		From("gw_messages").
		Where("folder_id = ? AND id = ?", folderID, id).
		ToSql()
	if err != nil {
		return models.SyncMessage{}, err
	}

	var message models.SyncMessage
	var sent sql.NullTime
	err = b.db.QueryRowContext(ctx, query, args...).
		Scan(&message.ID, &message.Subject, &message.From, &message.To, &message.Body, &message.Read, &sent)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncMessage{}, backend.ErrNotFound
	}
	if err != nil {
		return models.SyncMessage{}, fmt.Errorf("sqlite backend: get message: %w", err)
	}

	message.FolderID = folderID
	if sent.Valid {
		t := sent.Time
		message.Sent = &t
	}
	if params.TruncationSize > 0 && len(message.Body) > params.TruncationSize {
		message.Body = message.Body[:params.TruncationSize]
		message.BodyTruncated = true
	}

	return message, nil
}

// StatMessage implements backend.Backend.
func (b *Backend) StatMessage(ctx context.Context, folderID, id string) (models.StatEntry, bool, error) {
	query, args, err := b.builder.
		Select("id", "read", "mod").
		From("gw_messages").
		Where("folder_id = ? AND id = ?", folderID, id).
		ToSql()
	if err != nil {
		return models.StatEntry{}, false, err
	}

	var read int
	var mod int64
	var entryID string
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&entryID, &read, &mod)
	if errors.Is(err, sql.ErrNoRows) {
		return models.StatEntry{}, false, nil
	}
	if err != nil {
		return models.StatEntry{}, false, fmt.Errorf("sqlite backend: stat message: %w", err)
	}

	return models.StatEntry{ID: entryID, Mod: modToken(mod), Flags: models.Flagged(read & 1)}, true, nil
}

// ChangeMessage implements backend.Backend.
func (b *Backend) ChangeMessage(ctx context.Context, folderID, id string, message models.SyncMessage) (models.StatEntry, error) {
	if id == "" {
		id = uuid.NewString()
	}
	mod := now()

	query, args, err := b.builder.
		Insert("gw_messages").
		Columns("folder_id", "id", "subject", "sender", "recipient", "body", "read", "sent", "mod").
		Values(folderID, id, message.Subject, message.From, message.To, message.Body, message.Read&1, message.Sent, mod).
		Suffix("ON CONFLICT (folder_id, id) DO UPDATE SET subject = excluded.subject, sender = excluded.sender, recipient = excluded.recipient, body = excluded.body, read = excluded.read, sent = excluded.sent, mod = excluded.mod").
		ToSql()
	if err != nil {
		return models.StatEntry{}, err
	}

	if _, err = b.db.ExecContext(ctx, query, args...); err != nil {
		return models.StatEntry{}, fmt.Errorf("sqlite backend: change message: %w", err)
	}

	return models.StatEntry{ID: id, Mod: modToken(mod), Flags: models.Flagged(message.Read & 1)}, nil
}

// SetReadFlag implements backend.Backend.
func (b *Backend) SetReadFlag(ctx context.Context, folderID, id string, flags int) error {
	query, args, err := b.builder.
		Update("gw_messages").
		Set("read", flags&1).
		Set("mod", now()).
		Where("folder_id = ? AND id = ?", folderID, id).
		ToSql()
	if err != nil {
		return err
	}

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite backend: set read flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// DeleteMessage implements backend.Backend.
func (b *Backend) DeleteMessage(ctx context.Context, folderID, id string) error {
	query, args, err := b.builder.
		Delete("gw_messages").
		Where("folder_id = ? AND id = ?", folderID, id).
		ToSql()
	if err != nil {
		return err
	}

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlite backend: delete message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return backend.ErrNotFound
	}
	return nil
}

// MoveMessage implements backend.Backend. Ids are store-global, so the
// item keeps its id across the move.
func (b *Backend) MoveMessage(ctx context.Context, folderID, id, newFolderID string) (string, error) {
	query, args, err := b.builder.
		Update("gw_messages").
		Set("folder_id", newFolderID).
		Set("mod", now()).
		Where("folder_id = ? AND id = ?", folderID, id).
		ToSql()
	if err != nil {
		return "", err
	}

	res, err := b.db.ExecContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("sqlite backend: move message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", backend.ErrNotFound
	}
	return id, nil
}

// AlterPing implements backend.Backend; the SQLite store has no cheap
// probe beyond a full list, so it reports false and lets the exporter
// diff snapshots.
func (b *Backend) AlterPing() bool { return false }

// AlterPingChanges implements backend.Backend.
func (b *Backend) AlterPingChanges(context.Context, string, *models.SyncState) ([]models.Change, error) {
	return nil, backend.ErrNotSupported
}
