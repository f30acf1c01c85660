// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/models"
)

// Importer applies device-originated content operations to the backend.
//
// Every operation follows the same shape: short-circuit on the dummy
// placeholder folder, run conflict detection where the decision table says
// so, update the state tracker optimistically before the backend call (the
// tracker records the device's intent even if the write fails, which
// favors convergence over strict atomicity), perform the backend mutation,
// and re-update the tracker with the authoritative post-write stat when
// the backend returns one.
type Importer struct {
	backend backend.Backend
	log     *logger.Logger

	folderID string
	state    *models.SyncState
	policy   models.ConflictPolicy
	resolver *conflictResolver

	configured bool
}

// NewImporter creates an importer bound to one backend adapter for the
// duration of one request.
func NewImporter(b backend.Backend, log *logger.Logger) *Importer {
	return &Importer{backend: b, log: log}
}

// Config binds the importer to a content folder, its serialized prior
// state, and the conflict policy for the session.
func (i *Importer) Config(priorState []byte, folderID string, policy models.ConflictPolicy) error {
	state, err := models.DecodeSyncState(priorState)
	if err != nil {
		return err
	}

	i.folderID = folderID
	i.state = state
	i.policy = policy
	i.resolver = &conflictResolver{backend: i.backend, state: state}
	i.configured = true

	return nil
}

// ImportMessageChange creates (id == "") or overwrites an item with the
// device's copy and returns the item's server id.
//
// When the change conflicts with a backend-side edit and the policy is
// server-wins, the call still succeeds but the backend write is skipped:
// the prior state keeps the old mod, so the next export cycle re-diffs and
// re-sends the server's copy, which is the mechanism that overwrites the
// device's data. This resend-on-skip behavior is relied upon by the
// conflict design and must survive any diff or dedup rework.
func (i *Importer) ImportMessageChange(ctx context.Context, id string, message models.SyncMessage) (string, error) {
	if !i.configured {
		return "", ErrNotConfigured
	}
	if backend.IsDummyFolder(i.folderID) {
		return id, nil
	}

	if id != "" {
		conflict, err := i.resolver.IsConflict(ctx, models.ChangeTypeChange, i.folderID, id)
		if err != nil {
			return "", err
		}
		if conflict && i.policy == models.PolicyServerWins {
			i.log.Info().Str("id", id).Msg("conflict: server wins, device change dropped")
			return id, nil
		}
	}

	stat, err := i.backend.ChangeMessage(ctx, i.folderID, id, message)
	if err != nil {
		return "", err
	}

	i.state.Update(models.ChangeTypeChange, models.Change{
		Type:  models.ChangeTypeChange,
		ID:    stat.ID,
		Mod:   stat.Mod,
		Flags: stat.Flags,
	})

	return stat.ID, nil
}

// ImportMessageDeletion removes an item on the device's behalf. The state
// entry is dropped regardless of the conflict outcome; on a server-wins
// conflict the backend delete is skipped so the next export restores the
// item to the device.
func (i *Importer) ImportMessageDeletion(ctx context.Context, id string) error {
	if !i.configured {
		return ErrNotConfigured
	}
	if backend.IsDummyFolder(i.folderID) {
		return nil
	}

	conflict, err := i.resolver.IsConflict(ctx, models.ChangeTypeDelete, i.folderID, id)
	if err != nil {
		return err
	}

	i.state.Update(models.ChangeTypeDelete, models.Change{Type: models.ChangeTypeDelete, ID: id})

	if conflict && i.policy == models.PolicyServerWins {
		i.log.Info().Str("id", id).Msg("conflict: server wins, device deletion dropped")
		return nil
	}

	return i.backend.DeleteMessage(ctx, i.folderID, id)
}

// ImportMessageReadFlag updates an item's read flag. Flag changes never
// conflict with remote content edits.
func (i *Importer) ImportMessageReadFlag(ctx context.Context, id string, flags int) error {
	if !i.configured {
		return ErrNotConfigured
	}
	if backend.IsDummyFolder(i.folderID) {
		return nil
	}

	i.state.Update(models.ChangeTypeFlags, models.Change{
		Type:  models.ChangeTypeFlags,
		ID:    id,
		Flags: models.Flagged(flags),
	})

	return i.backend.SetReadFlag(ctx, i.folderID, id, flags)
}

// ImportMessageMove relocates an item into another folder and returns its
// id there. Moves never conflict; the source folder's state keeps the
// entry until the next diff observes the disappearance, the destination
// folder picks the item up the same way.
func (i *Importer) ImportMessageMove(ctx context.Context, id, newFolderID string) (string, error) {
	if !i.configured {
		return "", ErrNotConfigured
	}
	if backend.IsDummyFolder(i.folderID) {
		return id, nil
	}

	return i.backend.MoveMessage(ctx, i.folderID, id, newFolderID)
}

// GetState serializes the accumulated state for persistence.
func (i *Importer) GetState() ([]byte, error) {
	if !i.configured {
		return nil, ErrNotConfigured
	}
	return i.state.Serialize()
}

// FolderImporter applies device-originated hierarchy operations. Folder
// operations never run conflict detection.
type FolderImporter struct {
	backend backend.Backend
	log     *logger.Logger

	state      *models.SyncState
	configured bool
}

// NewFolderImporter creates a hierarchy importer bound to one backend
// adapter.
func NewFolderImporter(b backend.Backend, log *logger.Logger) *FolderImporter {
	return &FolderImporter{backend: b, log: log}
}

// Config binds the importer to the serialized prior hierarchy state.
func (i *FolderImporter) Config(priorState []byte) error {
	state, err := models.DecodeSyncState(priorState)
	if err != nil {
		return err
	}

	i.state = state
	i.configured = true

	return nil
}

// ImportFolderChange creates or renames a folder and returns the backend's
// post-write stat.
func (i *FolderImporter) ImportFolderChange(ctx context.Context, folder models.SyncFolder) (models.StatEntry, error) {
	if !i.configured {
		return models.StatEntry{}, ErrNotConfigured
	}
	if backend.IsDummyFolder(folder.ServerID) {
		return models.StatEntry{ID: folder.ServerID}, nil
	}

	if folder.ServerID != "" {
		i.state.Update(models.ChangeTypeChange, models.Change{
			Type:     models.ChangeTypeChange,
			ID:       folder.ServerID,
			ParentID: folder.ParentID,
		})
	}

	stat, err := i.backend.ChangeFolder(ctx, folder.ParentID, folder.ServerID, folder.DisplayName, folder.Type)
	if err != nil {
		return models.StatEntry{}, err
	}

	i.state.Update(models.ChangeTypeChange, models.Change{
		Type:     models.ChangeTypeChange,
		ID:       stat.ID,
		Mod:      stat.Mod,
		ParentID: stat.ParentID,
	})

	return stat, nil
}

// ImportFolderDeletion removes a folder.
func (i *FolderImporter) ImportFolderDeletion(ctx context.Context, parentID, id string) error {
	if !i.configured {
		return ErrNotConfigured
	}
	if backend.IsDummyFolder(id) {
		return nil
	}

	i.state.Update(models.ChangeTypeDelete, models.Change{Type: models.ChangeTypeDelete, ID: id})

	return i.backend.DeleteFolder(ctx, parentID, id)
}

// GetState serializes the accumulated hierarchy state for persistence.
func (i *FolderImporter) GetState() ([]byte, error) {
	if !i.configured {
		return nil, ErrNotConfigured
	}
	return i.state.Serialize()
}
