package engine

import (
	"context"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/models"
)

// conflictResolver evaluates device-originated operations against the live
// backend and the prior sync state of the scope.
type conflictResolver struct {
	backend backend.Backend
	state   *models.SyncState
}

// IsConflict reports whether applying changeType to the item would collide
// with a change the backend made since the prior state was captured.
//
// Decision rules:
//   - item gone from the backend: a device content change conflicts
//     (deleted remotely, changed locally); a device delete does not, both
//     sides already agree.
//   - item present with the mod the prior state recorded: no conflict.
//   - item present with a different mod: device delete and content changes
//     conflict; flag and move operations never do — a read-flag flip or a
//     relocation does not collide with a remote content edit.
//   - id missing from the prior state entirely: no conflict, there is
//     nothing for either side to have diverged from.
func (r *conflictResolver) IsConflict(ctx context.Context, changeType models.ChangeType, folderID, id string) (bool, error) {
	stat, ok, err := r.backend.StatMessage(ctx, folderID, id)
	if err != nil {
		return false, err
	}

	if !ok {
		return changeType == models.ChangeTypeChange, nil
	}

	prior, known := r.state.Lookup(id)
	if !known {
		return false, nil
	}

	if prior.Mod == stat.Mod {
		return false, nil
	}

	switch changeType {
	case models.ChangeTypeChange, models.ChangeTypeDelete:
		return true, nil
	default:
		return false, nil
	}
}
