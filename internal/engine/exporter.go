// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"errors"
	"time"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/models"
)

// ErrNotConfigured is returned when Synchronize, GetChangeCount or
// GetState is called before a successful Config call.
var ErrNotConfigured = errors.New("engine: exporter not configured")

// ExportOptions tune one export cycle.
type ExportOptions struct {
	// CutoffDays restricts content export to items received within the
	// last N days; 0 disables the restriction.
	CutoffDays int

	// DiscardData advances the sync state without pushing content to the
	// device. Used for cheap "did anything change" polling; on backends
	// with AlterPing support it also replaces the full snapshot diff with
	// the adapter's cheap probe.
	DiscardData bool

	// Content controls truncation and MIME shape of exported items.
	Content backend.ContentParams
}

// Exporter walks the server→device direction of a sync session. Config
// computes the change-set between the persisted prior state and the
// backend's current snapshot; each Synchronize call then drains exactly
// one change into the injected device importer, so the protocol layer can
// interleave steps with wire I/O and enforce request deadlines. GetState
// serializes the advanced state once the desired steps are drained.
type Exporter struct {
	backend backend.Backend
	log     *logger.Logger

	state     *models.SyncState
	changes   []models.Change
	step      int
	folderID  string
	hierarchy bool
	discard   bool
	content   backend.ContentParams

	contentImp DeviceContentImporter
	hierImp    DeviceHierarchyImporter

	configured bool
}

// NewExporter creates an exporter bound to one backend adapter for the
// duration of one request.
func NewExporter(b backend.Backend, log *logger.Logger) *Exporter {
	return &Exporter{backend: b, log: log}
}

// ConfigContent prepares an export of one content folder against the
// serialized prior state. A dummy folder id short-circuits to an empty
// change-set.
func (e *Exporter) ConfigContent(ctx context.Context, imp DeviceContentImporter, folderID string, priorState []byte, opts ExportOptions) error {
	state, err := models.DecodeSyncState(priorState)
	if err != nil {
		return err
	}

	e.state = state
	e.contentImp = imp
	e.folderID = folderID
	e.hierarchy = false
	e.discard = opts.DiscardData
	e.content = opts.Content
	e.step = 0
	e.changes = nil
	e.configured = true

	if backend.IsDummyFolder(folderID) {
		return nil
	}

	if opts.DiscardData && e.backend.AlterPing() {
		changes, err := e.backend.AlterPingChanges(ctx, folderID, state)
		if err != nil {
			return err
		}
		e.changes = changes
		return nil
	}

	var cutoff time.Time
	if opts.CutoffDays > 0 {
		cutoff = time.Now().UTC().AddDate(0, 0, -opts.CutoffDays)
	}

	snapshot, err := e.backend.GetMessageList(ctx, folderID, cutoff)
	if err != nil {
		return err
	}

	e.changes = ComputeDiff(state.Entries, snapshot)
	e.log.Debug().
		Str("folder", folderID).
		Int("changes", len(e.changes)).
		Msg("content export configured")

	return nil
}

// ConfigHierarchy prepares an export of the folder hierarchy.
func (e *Exporter) ConfigHierarchy(ctx context.Context, imp DeviceHierarchyImporter, priorState []byte) error {
	state, err := models.DecodeSyncState(priorState)
	if err != nil {
		return err
	}

	snapshot, err := e.backend.GetFolderList(ctx)
	if err != nil {
		return err
	}

	e.state = state
	e.hierImp = imp
	e.folderID = ""
	e.hierarchy = true
	e.discard = false
	e.step = 0
	e.changes = ComputeDiff(state.Entries, snapshot)
	e.configured = true

	e.log.Debug().Int("changes", len(e.changes)).Msg("hierarchy export configured")

	return nil
}

// GetChangeCount returns the size of the computed change-set. Valid any
// time after Config; the count does not shrink as steps drain.
func (e *Exporter) GetChangeCount() (int, error) {
	if !e.configured {
		return 0, ErrNotConfigured
	}
	return len(e.changes), nil
}

// Synchronize advances the export by exactly one change. It returns the
// progress so far and more == false once the change-set is drained (the
// terminal call performs no work). A step that fails leaves the state
// untouched, so the caller may retry it or abandon the session; the next
// session re-derives the remainder from the last persisted state.
func (e *Exporter) Synchronize(ctx context.Context) (models.SyncProgress, bool, error) {
	if !e.configured {
		return models.SyncProgress{}, false, ErrNotConfigured
	}

	progress := models.SyncProgress{Total: len(e.changes), Done: e.step}
	if e.step >= len(e.changes) {
		return progress, false, nil
	}

	change := e.changes[e.step]

	var err error
	if e.hierarchy {
		err = e.syncFolderStep(ctx, change)
	} else {
		err = e.syncContentStep(ctx, change)
	}
	if err != nil {
		return progress, true, err
	}

	e.step++
	progress.Done = e.step

	return progress, e.step < len(e.changes), nil
}

func (e *Exporter) syncContentStep(ctx context.Context, change models.Change) error {
	switch change.Type {
	case models.ChangeTypeChange:
		if !e.discard {
			// Stat and fetch are two separate adapter calls; the item may
			// mutate in between, producing a spurious duplicate change on
			// the next cycle. Accepted tradeoff: closing it would require
			// an atomic stat+fetch in every adapter.
			stat, ok, err := e.backend.StatMessage(ctx, e.folderID, change.ID)
			if err != nil {
				return err
			}
			if !ok {
				// Vanished since the snapshot; the next diff emits the
				// delete, nothing to push now.
				e.log.Debug().Str("id", change.ID).Msg("item gone between diff and export step")
				return nil
			}

			message, err := e.backend.GetMessage(ctx, e.folderID, change.ID, e.content)
			if err != nil {
				return err
			}
			if change.Flags != nil {
				message.Read = *change.Flags & 1
			}

			if err := e.contentImp.ImportMessageChange(ctx, change.ID, message); err != nil {
				return err
			}
			change.Mod = stat.Mod
		}
		e.state.Update(models.ChangeTypeChange, change)

	case models.ChangeTypeDelete:
		if !e.discard {
			if err := e.contentImp.ImportMessageDeletion(ctx, change.ID); err != nil {
				return err
			}
		}
		e.state.Update(models.ChangeTypeDelete, change)

	case models.ChangeTypeFlags:
		if !e.discard {
			flags := 0
			if change.Flags != nil {
				flags = *change.Flags
			}
			if err := e.contentImp.ImportMessageReadFlag(ctx, change.ID, flags); err != nil {
				return err
			}
		}
		e.state.Update(models.ChangeTypeFlags, change)

	case models.ChangeTypeMove:
		if !e.discard {
			if err := e.contentImp.ImportMessageMove(ctx, change.ID, change.ParentID); err != nil {
				return err
			}
		}
		e.state.Update(models.ChangeTypeMove, change)
	}

	return nil
}

// syncFolderStep dispatches one hierarchy change; only change and delete
// occur for folders.
func (e *Exporter) syncFolderStep(ctx context.Context, change models.Change) error {
	switch change.Type {
	case models.ChangeTypeChange:
		folder, err := e.backend.GetFolder(ctx, change.ID)
		if err != nil {
			return err
		}
		if err := e.hierImp.ImportFolderChange(ctx, folder); err != nil {
			return err
		}
		e.state.Update(models.ChangeTypeChange, change)

	case models.ChangeTypeDelete:
		if err := e.hierImp.ImportFolderDeletion(ctx, change.ID); err != nil {
			return err
		}
		e.state.Update(models.ChangeTypeDelete, change)
	}

	return nil
}

// GetState serializes the advanced sync state for persistence.
func (e *Exporter) GetState() ([]byte, error) {
	if !e.configured {
		return nil, ErrNotConfigured
	}
	return e.state.Serialize()
}
