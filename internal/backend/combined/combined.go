// SPDX-License-Identifier: Apache-2.0

// Package combined presents several physical backend adapters as one
// logical backend by namespacing folder identifiers with a backend tag:
//
//	combinedID = <tag><delimiter><nativeID>
//
// Message ids are not namespaced — they are always qualified by a folder
// id, which already carries the tag. Cross-backend message moves are
// rejected; moving content between physically distinct stores is out of
// scope.
package combined

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/engine"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/models"
)

var (
	// ErrMalformedID signals a combined id without the delimiter, i.e. a
	// foreign or corrupted identifier. Treated as "operation not
	// applicable", never fatal.
	ErrMalformedID = errors.New("combined: malformed id")

	// ErrCrossBackendMove signals a move whose source and destination
	// folders live in different physical backends.
	ErrCrossBackendMove = errors.New("combined: cross-backend move rejected")

	// ErrFolderTypeNotAllowed signals an attempt to claim a default folder
	// type on a backend that is not the configured authority for it.
	ErrFolderTypeNotAllowed = errors.New("combined: folder type not allowed for this backend")
)

// virtualRoot is the native id of the synthesized per-backend subfolder
// root ("<tag><delim>0").
const virtualRoot = "0"

// Entry configures one physical backend inside the composite.
type Entry struct {
	// Tag namespaces this backend's folder ids. Must be unique and must
	// not contain the delimiter.
	Tag string

	// Backend is the physical adapter.
	Backend backend.Backend

	// Users is a per-backend allowlist. When non-empty, a requesting user
	// not listed here gets this backend silently dropped from the session
	// (not an error).
	Users []string

	// Credentials optionally replaces the device credentials for this
	// backend's logon (different username/password/domain per store).
	Credentials *backend.Credentials

	// SubfolderName, when set, nests the backend's whole tree under a
	// synthesized root folder with this display name.
	SubfolderName string
}

// Config wires the composite backend.
type Config struct {
	// Delimiter separates tag and native id; must be non-empty and absent
	// from every tag.
	Delimiter string

	// Backends are the physical stores, in hierarchy order.
	Backends []Entry

	// TypeAuthority names, per default folder type, the tag of the one
	// backend allowed to expose it. Default-typed folders from any other
	// backend are coerced to "other".
	TypeAuthority map[models.FolderType]string
}

// Backend is the composite adapter. It satisfies backend.Backend, so the
// engine cannot tell it from a physical store.
type Backend struct {
	cfg Config
	log *logger.Logger

	// active holds the backends that survived the allowlist filter for the
	// current session; populated by Logon.
	active []Entry
}

// New validates cfg and constructs the composite.
func New(cfg Config, log *logger.Logger) (*Backend, error) {
	if cfg.Delimiter == "" {
		return nil, errors.New("combined: delimiter must not be empty")
	}

	seen := map[string]bool{}
	for _, entry := range cfg.Backends {
		if entry.Tag == "" || strings.Contains(entry.Tag, cfg.Delimiter) {
			return nil, fmt.Errorf("combined: invalid backend tag %q", entry.Tag)
		}
		if seen[entry.Tag] {
			return nil, fmt.Errorf("combined: duplicate backend tag %q", entry.Tag)
		}
		seen[entry.Tag] = true
	}

	return &Backend{cfg: cfg, log: log}, nil
}

// GetBackendID extracts the backend tag from a combined id. ok is false
// when the delimiter is absent; every caller must check it.
func (c *Backend) GetBackendID(combinedID string) (string, bool) {
	tag, _, found := strings.Cut(combinedID, c.cfg.Delimiter)
	if !found {
		return "", false
	}
	return tag, true
}

// GetBackendFolder extracts the native folder id from a combined id. ok is
// false when the delimiter is absent.
func (c *Backend) GetBackendFolder(combinedID string) (string, bool) {
	_, native, found := strings.Cut(combinedID, c.cfg.Delimiter)
	if !found {
		return "", false
	}
	return native, true
}

// CombineID namespaces a native id with a backend tag.
func (c *Backend) CombineID(tag, nativeID string) string {
	return tag + c.cfg.Delimiter + nativeID
}

func (c *Backend) entryByTag(tag string) (Entry, bool) {
	for _, entry := range c.active {
		if entry.Tag == tag {
			return entry, true
		}
	}
	return Entry{}, false
}

// route resolves a combined folder id to its backend entry and native id.
func (c *Backend) route(combinedID string) (Entry, string, error) {
	tag, ok := c.GetBackendID(combinedID)
	if !ok {
		return Entry{}, "", ErrMalformedID
	}
	native, _ := c.GetBackendFolder(combinedID)

	entry, ok := c.entryByTag(tag)
	if !ok {
		return Entry{}, "", fmt.Errorf("combined: no active backend with tag %q: %w", tag, ErrMalformedID)
	}
	return entry, native, nil
}

// Logon authenticates against every configured backend. Backends whose
// allowlist excludes the user are dropped from the session silently; any
// logon failure aborts the composite logon (all-or-nothing), logging off
// the backends already logged on.
func (c *Backend) Logon(ctx context.Context, creds backend.Credentials) error {
	c.active = nil

	for _, entry := range c.cfg.Backends {
		if len(entry.Users) > 0 && !slices.Contains(entry.Users, creds.Username) {
			c.log.Debug().
				Str("tag", entry.Tag).
				Str("user", creds.Username).
				Msg("backend not allowed for user, dropped from session")
			continue
		}

		backendCreds := creds
		if entry.Credentials != nil {
			backendCreds = *entry.Credentials
		}

		if err := entry.Backend.Logon(ctx, backendCreds); err != nil {
			for _, active := range c.active {
				if logoffErr := active.Backend.Logoff(ctx); logoffErr != nil {
					c.log.Warn().Err(logoffErr).Str("tag", active.Tag).Msg("logoff after failed composite logon")
				}
			}
			c.active = nil
			return fmt.Errorf("combined: logon to backend %q: %w", entry.Tag, err)
		}

		c.active = append(c.active, entry)
	}

	return nil
}

// Setup forwards the session to every active backend.
func (c *Backend) Setup(ctx context.Context, session backend.Session) error {
	for _, entry := range c.active {
		if err := entry.Backend.Setup(ctx, session); err != nil {
			return fmt.Errorf("combined: setup of backend %q: %w", entry.Tag, err)
		}
	}
	return nil
}

// Logoff releases every active backend, continuing through individual
// failures so no connection is leaked.
func (c *Backend) Logoff(ctx context.Context) error {
	var errs []error
	for _, entry := range c.active {
		if err := entry.Backend.Logoff(ctx); err != nil {
			errs = append(errs, fmt.Errorf("backend %q: %w", entry.Tag, err))
		}
	}
	c.active = nil
	return errors.Join(errs...)
}

// GetFolderList unions the active backends' hierarchies. Folder ids and
// parent ids are namespaced; a backend with a configured subfolder name
// additionally contributes a synthesized root entry under which its tree
// is nested.
func (c *Backend) GetFolderList(ctx context.Context) ([]models.StatEntry, error) {
	var list []models.StatEntry

	for _, entry := range c.active {
		if entry.SubfolderName != "" {
			list = append(list, models.StatEntry{
				ID: c.CombineID(entry.Tag, virtualRoot),
				// The display name serves as the mod token: renaming the
				// subfolder in config is the only way it changes.
				Mod:      entry.SubfolderName,
				ParentID: "0",
			})
		}

		folders, err := entry.Backend.GetFolderList(ctx)
		if err != nil {
			return nil, fmt.Errorf("combined: folder list of backend %q: %w", entry.Tag, err)
		}
		for _, folder := range folders {
			folder.ID = c.CombineID(entry.Tag, folder.ID)
			folder.ParentID = c.translateParent(entry, folder.ParentID)
			list = append(list, folder)
		}
	}

	return list, nil
}

func (c *Backend) translateParent(entry Entry, nativeParent string) string {
	if nativeParent == "" || nativeParent == "0" {
		if entry.SubfolderName != "" {
			return c.CombineID(entry.Tag, virtualRoot)
		}
		return "0"
	}
	return c.CombineID(entry.Tag, nativeParent)
}

// GetFolder fetches a folder record, translating ids and coercing
// default-typed folders from non-authoritative backends to "other".
func (c *Backend) GetFolder(ctx context.Context, id string) (models.SyncFolder, error) {
	entry, native, err := c.route(id)
	if err != nil {
		return models.SyncFolder{}, err
	}

	if native == virtualRoot && entry.SubfolderName != "" {
		return models.SyncFolder{
			ServerID:    id,
			ParentID:    "0",
			DisplayName: entry.SubfolderName,
			Type:        models.FolderTypeOther,
		}, nil
	}

	folder, err := entry.Backend.GetFolder(ctx, native)
	if err != nil {
		return models.SyncFolder{}, err
	}

	folder.ServerID = c.CombineID(entry.Tag, folder.ServerID)
	folder.ParentID = c.translateParent(entry, folder.ParentID)
	folder.Type = c.coerceType(entry.Tag, folder.Type)

	return folder, nil
}

// coerceType demotes a default folder type to "other" when the backend is
// not its configured authority.
func (c *Backend) coerceType(tag string, folderType models.FolderType) models.FolderType {
	if !folderType.IsDefault() {
		return folderType
	}
	if authority, ok := c.cfg.TypeAuthority[folderType]; !ok || authority != tag {
		return models.FolderTypeOther
	}
	return folderType
}

// StatFolder stats a folder, translating ids.
func (c *Backend) StatFolder(ctx context.Context, id string) (models.StatEntry, error) {
	entry, native, err := c.route(id)
	if err != nil {
		return models.StatEntry{}, err
	}

	if native == virtualRoot && entry.SubfolderName != "" {
		return models.StatEntry{ID: id, Mod: entry.SubfolderName, ParentID: "0"}, nil
	}

	stat, err := entry.Backend.StatFolder(ctx, native)
	if err != nil {
		return models.StatEntry{}, err
	}
	stat.ID = c.CombineID(entry.Tag, stat.ID)
	stat.ParentID = c.translateParent(entry, stat.ParentID)
	return stat, nil
}

// ChangeFolder creates or renames a folder inside one backend. The target
// backend is taken from oldID when present, the parent id otherwise; a
// default folder type is rejected unless the backend is its authority.
func (c *Backend) ChangeFolder(ctx context.Context, parentID, oldID, displayName string, folderType models.FolderType) (models.StatEntry, error) {
	ref := oldID
	if ref == "" {
		ref = parentID
	}
	entry, _, err := c.route(ref)
	if err != nil {
		return models.StatEntry{}, err
	}

	if folderType.IsDefault() {
		if authority, ok := c.cfg.TypeAuthority[folderType]; !ok || authority != entry.Tag {
			return models.StatEntry{}, ErrFolderTypeNotAllowed
		}
	}

	nativeParent := ""
	if parentID != "" && parentID != "0" {
		parentEntry, parent, err := c.route(parentID)
		if err != nil {
			return models.StatEntry{}, err
		}
		if parentEntry.Tag != entry.Tag {
			return models.StatEntry{}, ErrCrossBackendMove
		}
		if parent != virtualRoot {
			nativeParent = parent
		}
	}

	nativeOld := ""
	if oldID != "" {
		nativeOld, _ = c.GetBackendFolder(oldID)
	}

	stat, err := entry.Backend.ChangeFolder(ctx, nativeParent, nativeOld, displayName, folderType)
	if err != nil {
		return models.StatEntry{}, err
	}

	stat.ID = c.CombineID(entry.Tag, stat.ID)
	stat.ParentID = c.translateParent(entry, stat.ParentID)
	return stat, nil
}

// DeleteFolder removes a folder; the synthesized subfolder root cannot be
// deleted.
func (c *Backend) DeleteFolder(ctx context.Context, parentID, id string) error {
	entry, native, err := c.route(id)
	if err != nil {
		return err
	}
	if native == virtualRoot && entry.SubfolderName != "" {
		return backend.ErrNotSupported
	}

	nativeParent := ""
	if parentID != "" && parentID != "0" {
		if nativeParent, _ = c.GetBackendFolder(parentID); nativeParent == virtualRoot {
			nativeParent = ""
		}
	}

	return entry.Backend.DeleteFolder(ctx, nativeParent, native)
}

// GetMessageList routes a content snapshot to the owning backend.
func (c *Backend) GetMessageList(ctx context.Context, folderID string, cutoff time.Time) ([]models.StatEntry, error) {
	entry, native, err := c.route(folderID)
	if err != nil {
		return nil, err
	}
	return entry.Backend.GetMessageList(ctx, native, cutoff)
}

// GetMessage routes a content fetch, passing truncation through.
func (c *Backend) GetMessage(ctx context.Context, folderID, id string, params backend.ContentParams) (models.SyncMessage, error) {
	entry, native, err := c.route(folderID)
	if err != nil {
		return models.SyncMessage{}, err
	}
	message, err := entry.Backend.GetMessage(ctx, native, id, params)
	if err != nil {
		return models.SyncMessage{}, err
	}
	message.FolderID = folderID
	return message, nil
}

// StatMessage routes a message stat.
func (c *Backend) StatMessage(ctx context.Context, folderID, id string) (models.StatEntry, bool, error) {
	entry, native, err := c.route(folderID)
	if err != nil {
		return models.StatEntry{}, false, err
	}
	return entry.Backend.StatMessage(ctx, native, id)
}

// ChangeMessage routes a message write.
func (c *Backend) ChangeMessage(ctx context.Context, folderID, id string, message models.SyncMessage) (models.StatEntry, error) {
	entry, native, err := c.route(folderID)
	if err != nil {
		return models.StatEntry{}, err
	}
	return entry.Backend.ChangeMessage(ctx, native, id, message)
}

// SetReadFlag routes a read-flag update.
func (c *Backend) SetReadFlag(ctx context.Context, folderID, id string, flags int) error {
	entry, native, err := c.route(folderID)
	if err != nil {
		return err
	}
	return entry.Backend.SetReadFlag(ctx, native, id, flags)
}

// DeleteMessage routes a message removal.
func (c *Backend) DeleteMessage(ctx context.Context, folderID, id string) error {
	entry, native, err := c.route(folderID)
	if err != nil {
		return err
	}
	return entry.Backend.DeleteMessage(ctx, native, id)
}

// MoveMessage routes a move after verifying that source and destination
// resolve to the same backend tag. A cross-backend move is rejected before
// any backend call is made.
func (c *Backend) MoveMessage(ctx context.Context, folderID, id, newFolderID string) (string, error) {
	srcTag, ok := c.GetBackendID(folderID)
	if !ok {
		return "", ErrMalformedID
	}
	dstTag, ok := c.GetBackendID(newFolderID)
	if !ok {
		return "", ErrMalformedID
	}
	if srcTag != dstTag {
		return "", ErrCrossBackendMove
	}

	entry, native, err := c.route(folderID)
	if err != nil {
		return "", err
	}
	nativeDst, _ := c.GetBackendFolder(newFolderID)

	return entry.Backend.MoveMessage(ctx, native, id, nativeDst)
}

// AlterPing reports true when any active backend offers the cheap probe;
// folders on other backends transparently fall back to a full diff inside
// AlterPingChanges.
func (c *Backend) AlterPing() bool {
	for _, entry := range c.active {
		if entry.Backend.AlterPing() {
			return true
		}
	}
	return false
}

// AlterPingChanges routes the cheap probe, falling back to a snapshot diff
// for backends without AlterPing support.
func (c *Backend) AlterPingChanges(ctx context.Context, folderID string, state *models.SyncState) ([]models.Change, error) {
	entry, native, err := c.route(folderID)
	if err != nil {
		return nil, err
	}

	if entry.Backend.AlterPing() {
		return entry.Backend.AlterPingChanges(ctx, native, state)
	}

	snapshot, err := entry.Backend.GetMessageList(ctx, native, time.Time{})
	if err != nil {
		return nil, err
	}
	return engine.ComputeDiff(state.Entries, snapshot), nil
}
