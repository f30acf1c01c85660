// SPDX-License-Identifier: Apache-2.0

// Package memory provides an in-memory backend adapter. It is the
// reference implementation of the adapter contract: the engine tests run
// against it, and it doubles as a scratch store for local development.
package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/engine"
	"github.com/mobilegw/go-sync-gateway/models"
)

// ErrLogonFailed is returned when configured credentials do not match.
var ErrLogonFailed = errors.New("memory: logon failed")

func init() {
	backend.Register("memory", func(cfg backend.Config) (backend.Backend, error) {
		return Shared(cfg.DSN), nil
	})
}

var (
	poolMu sync.Mutex
	pool   = map[string]*Backend{}
)

// Shared returns the process-wide instance for the given name, creating
// it on first use. Requests open and close their composite backends
// independently, so the factory hands out shared instances to keep the
// data alive between sessions.
func Shared(name string) *Backend {
	poolMu.Lock()
	defer poolMu.Unlock()

	b, ok := pool[name]
	if !ok {
		b = New()
		pool[name] = b
	}
	return b
}

type folderRecord struct {
	folder models.SyncFolder
	mod    int64
}

type messageRecord struct {
	message models.SyncMessage
	mod     int64
}

// Backend is an in-memory adapter instance. Safe for concurrent use,
// though the gateway drives one instance per request.
type Backend struct {
	mu      sync.RWMutex
	creds   *backend.Credentials
	session backend.Session

	folders  map[string]*folderRecord
	messages map[string]map[string]*messageRecord
	modSeq   int64
}

// New constructs an empty in-memory backend that accepts any logon.
func New() *Backend {
	return &Backend{
		folders:  map[string]*folderRecord{},
		messages: map[string]map[string]*messageRecord{},
	}
}

// WithCredentials restricts Logon to one accepted credential set.
func (b *Backend) WithCredentials(creds backend.Credentials) *Backend {
	b.creds = &creds
	return b
}

// Logon implements backend.Backend.
func (b *Backend) Logon(_ context.Context, creds backend.Credentials) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.creds != nil && *b.creds != creds {
		return ErrLogonFailed
	}
	return nil
}

// Setup implements backend.Backend.
func (b *Backend) Setup(_ context.Context, session backend.Session) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = session
	return nil
}

// Logoff implements backend.Backend.
func (b *Backend) Logoff(context.Context) error { return nil }

// AddFolder inserts a folder directly into the store, bypassing sync
// bookkeeping. Intended for tests and fixtures; returns the folder id.
func (b *Backend) AddFolder(folder models.SyncFolder) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if folder.ServerID == "" {
		folder.ServerID = uuid.NewString()
	}
	if folder.ParentID == "" {
		folder.ParentID = "0"
	}
	b.folders[folder.ServerID] = &folderRecord{folder: folder, mod: b.bumpSeq()}
	return folder.ServerID
}

// AddMessage inserts a message directly into the store, bypassing sync
// bookkeeping. Intended for tests and fixtures.
func (b *Backend) AddMessage(folderID string, message models.SyncMessage) models.StatEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	message.FolderID = folderID
	rec := &messageRecord{message: message, mod: b.bumpSeq()}
	if b.messages[folderID] == nil {
		b.messages[folderID] = map[string]*messageRecord{}
	}
	b.messages[folderID][message.ID] = rec
	return messageStat(rec)
}

func (b *Backend) bumpSeq() int64 {
	b.modSeq++
	return b.modSeq
}

// GetFolderList implements backend.Backend.
func (b *Backend) GetFolderList(context.Context) ([]models.StatEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	list := make([]models.StatEntry, 0, len(b.folders))
	for _, rec := range b.folders {
		list = append(list, folderStat(rec))
	}
	return list, nil
}

// GetFolder implements backend.Backend.
func (b *Backend) GetFolder(_ context.Context, id string) (models.SyncFolder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.folders[id]
	if !ok {
		return models.SyncFolder{}, backend.ErrNotFound
	}
	return rec.folder, nil
}

// StatFolder implements backend.Backend.
func (b *Backend) StatFolder(_ context.Context, id string) (models.StatEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.folders[id]
	if !ok {
		return models.StatEntry{}, backend.ErrNotFound
	}
	return folderStat(rec), nil
}

// ChangeFolder implements backend.Backend.
func (b *Backend) ChangeFolder(_ context.Context, parentID, oldID, displayName string, folderType models.FolderType) (models.StatEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := oldID
	if id == "" {
		id = uuid.NewString()
	}
	if parentID == "" {
		parentID = "0"
	}

	rec := &folderRecord{
		folder: models.SyncFolder{
			ServerID:    id,
			ParentID:    parentID,
			DisplayName: displayName,
			Type:        folderType,
		},
		mod: b.bumpSeq(),
	}
	b.folders[id] = rec

	return folderStat(rec), nil
}

// DeleteFolder implements backend.Backend.
func (b *Backend) DeleteFolder(_ context.Context, _, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.folders[id]; !ok {
		return backend.ErrNotFound
	}
	delete(b.folders, id)
	delete(b.messages, id)
	return nil
}

// GetMessageList implements backend.Backend.
func (b *Backend) GetMessageList(_ context.Context, folderID string, cutoff time.Time) ([]models.StatEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var list []models.StatEntry
	for _, rec := range b.messages[folderID] {
		if !cutoff.IsZero() && rec.message.Sent != nil && rec.message.Sent.Before(cutoff) {
			continue
		}
		list = append(list, messageStat(rec))
	}
	return list, nil
}

// GetMessage implements backend.Backend.
func (b *Backend) GetMessage(_ context.Context, folderID, id string, params backend.ContentParams) (models.SyncMessage, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.messages[folderID][id]
	if !ok {
		return models.SyncMessage{}, backend.ErrNotFound
	}

	message := rec.message
	if params.TruncationSize > 0 && len(message.Body) > params.TruncationSize {
		message.Body = message.Body[:params.TruncationSize]
		message.BodyTruncated = true
	}
	return message, nil
}

// StatMessage implements backend.Backend.
func (b *Backend) StatMessage(_ context.Context, folderID, id string) (models.StatEntry, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.messages[folderID][id]
	if !ok {
		return models.StatEntry{}, false, nil
	}
	return messageStat(rec), true, nil
}

// ChangeMessage implements backend.Backend.
func (b *Backend) ChangeMessage(_ context.Context, folderID, id string, message models.SyncMessage) (models.StatEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	message.ID = id
	message.FolderID = folderID

	if b.messages[folderID] == nil {
		b.messages[folderID] = map[string]*messageRecord{}
	}
	rec := &messageRecord{message: message, mod: b.bumpSeq()}
	b.messages[folderID][id] = rec

	return messageStat(rec), nil
}

// SetReadFlag implements backend.Backend.
func (b *Backend) SetReadFlag(_ context.Context, folderID, id string, flags int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.messages[folderID][id]
	if !ok {
		return backend.ErrNotFound
	}
	rec.message.Read = flags & 1
	rec.mod = b.bumpSeq()
	return nil
}

// DeleteMessage implements backend.Backend.
func (b *Backend) DeleteMessage(_ context.Context, folderID, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.messages[folderID][id]; !ok {
		return backend.ErrNotFound
	}
	delete(b.messages[folderID], id)
	return nil
}

// MoveMessage implements backend.Backend. The item receives a fresh id in
// the destination folder, modelling stores whose ids are folder-scoped.
func (b *Backend) MoveMessage(_ context.Context, folderID, id, newFolderID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.messages[folderID][id]
	if !ok {
		return "", backend.ErrNotFound
	}
	if _, ok := b.folders[newFolderID]; !ok {
		return "", backend.ErrNotFound
	}

	newID := uuid.NewString()
	moved := rec.message
	moved.ID = newID
	moved.FolderID = newFolderID

	if b.messages[newFolderID] == nil {
		b.messages[newFolderID] = map[string]*messageRecord{}
	}
	b.messages[newFolderID][newID] = &messageRecord{message: moved, mod: b.bumpSeq()}
	delete(b.messages[folderID], id)

	return newID, nil
}

// AlterPing implements backend.Backend; the in-memory store can always
// diff cheaply.
func (b *Backend) AlterPing() bool { return true }

// AlterPingChanges implements backend.Backend.
func (b *Backend) AlterPingChanges(ctx context.Context, folderID string, state *models.SyncState) ([]models.Change, error) {
	snapshot, err := b.GetMessageList(ctx, folderID, time.Time{})
	if err != nil {
		return nil, err
	}
	return engine.ComputeDiff(state.Entries, snapshot), nil
}

func folderStat(rec *folderRecord) models.StatEntry {
	return models.StatEntry{
		ID:       rec.folder.ServerID,
		Mod:      strconv.FormatInt(rec.mod, 10),
		ParentID: rec.folder.ParentID,
	}
}

func messageStat(rec *messageRecord) models.StatEntry {
	return models.StatEntry{
		ID:    rec.message.ID,
		Mod:   strconv.FormatInt(rec.mod, 10),
		Flags: models.Flagged(rec.message.Read & 1),
	}
}
