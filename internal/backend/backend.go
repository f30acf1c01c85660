// SPDX-License-Identifier: Apache-2.0

// Package backend defines the capability contract every storage adapter
// must satisfy. The differential sync engine is generic over this
// interface: the same diff/state machinery serves mail folders, address
// books, calendars, task lists and the folder hierarchy itself, as long as
// the adapter can produce stable ids and change tokens.
package backend

import (
	"context"
	"errors"
	"time"

	"github.com/mobilegw/go-sync-gateway/models"
)

//go:generate mockgen -source=backend.go -destination=../mock/backend_mock.go -package=mock

var (
	// ErrNotFound signals that the addressed folder or message does not
	// exist in the backend store.
	ErrNotFound = errors.New("backend: item not found")

	// ErrNotSupported signals a capability the adapter does not implement
	// (e.g. AlterPingChanges on an adapter without AlterPing support).
	ErrNotSupported = errors.New("backend: operation not supported")
)

// Credentials carry one backend logon. Domain may be empty for stores
// without a domain concept (IMAP, CardDAV).
type Credentials struct {
	Username string
	Domain   string
	Password string
}

// Session identifies the device request being served. It replaces the
// implicit per-request globals of older gateways: every component that
// needs the requesting user or device receives the session explicitly.
type Session struct {
	User            string
	DeviceID        string
	ProtocolVersion string
}

// ContentParams controls how much of an item's content a GetMessage call
// returns.
type ContentParams struct {
	// TruncationSize caps the body size in bytes; 0 means no truncation.
	TruncationSize int

	// MIMESupport selects plain (0), partial (1) or full (2) MIME bodies
	// for mail items. Non-mail content classes ignore it.
	MIMESupport int
}

// Backend is the uniform adapter contract over one physical store.
//
// Stat-shaped results reuse models.StatEntry; Mod values are opaque and
// compared only for inequality. All blocking operations take a context so
// the protocol layer can bound per-step latency; adapters may block on
// network round-trips inside a call.
//
// An adapter instance is owned for the duration of one device request:
// Logon, Setup, the operation calls, then Logoff during teardown.
type Backend interface {
	// Logon authenticates against the store. A nil error is the boolean
	// "true" of the logon contract.
	Logon(ctx context.Context, creds Credentials) error

	// Setup binds the adapter to the requesting session.
	Setup(ctx context.Context, session Session) error

	// Logoff releases the adapter and any underlying connection. Called
	// exactly once at the end of request processing.
	Logoff(ctx context.Context) error

	// GetFolderList snapshots the folder hierarchy as flat stat entries
	// (id, parent, mod).
	GetFolderList(ctx context.Context) ([]models.StatEntry, error)

	// GetFolder fetches the full folder record.
	GetFolder(ctx context.Context, id string) (models.SyncFolder, error)

	// StatFolder stats a single folder.
	StatFolder(ctx context.Context, id string) (models.StatEntry, error)

	// ChangeFolder creates (oldID == "") or renames/moves a folder and
	// returns the authoritative post-write stat.
	ChangeFolder(ctx context.Context, parentID, oldID, displayName string, folderType models.FolderType) (models.StatEntry, error)

	// DeleteFolder removes a folder.
	DeleteFolder(ctx context.Context, parentID, id string) error

	// GetMessageList snapshots a content folder. Items received before
	// cutoff are omitted; a zero cutoff disables the filter.
	GetMessageList(ctx context.Context, folderID string, cutoff time.Time) ([]models.StatEntry, error)

	// GetMessage fetches full item content, honoring truncation.
	GetMessage(ctx context.Context, folderID, id string, params ContentParams) (models.SyncMessage, error)

	// StatMessage stats a single item; ok is false when the item is gone
	// from the backend, which is not an error.
	StatMessage(ctx context.Context, folderID, id string) (stat models.StatEntry, ok bool, err error)

	// ChangeMessage creates (id == "") or overwrites an item and returns
	// the authoritative post-write stat.
	ChangeMessage(ctx context.Context, folderID, id string, message models.SyncMessage) (models.StatEntry, error)

	// SetReadFlag updates only the read flag of an item.
	SetReadFlag(ctx context.Context, folderID, id string, flags int) error

	// DeleteMessage removes an item.
	DeleteMessage(ctx context.Context, folderID, id string) error

	// MoveMessage relocates an item and returns its id in the destination
	// folder (ids need not survive a move).
	MoveMessage(ctx context.Context, folderID, id, newFolderID string) (string, error)

	// AlterPing reports whether the adapter offers a cheap change probe.
	AlterPing() bool

	// AlterPingChanges is the cheap probe: it compares the folder against
	// the given state without fetching content, returning the pending
	// changes. Only valid when AlterPing is true.
	AlterPingChanges(ctx context.Context, folderID string, state *models.SyncState) ([]models.Change, error)
}
