// SPDX-License-Identifier: Apache-2.0

// Package engine implements the differential synchronization core: the
// diff computation between two snapshots of a scope, the conflict decision
// rules, and the step-wise exporter/importer state machines that move
// changes between a backend store and the device-facing protocol layer.
package engine

import (
	"sort"

	"github.com/mobilegw/go-sync-gateway/models"
)

// ComputeDiff returns the change-set that turns the old snapshot into the
// new one. Both inputs are unordered lists of stat entries with unique ids;
// the same routine serves message lists and folder hierarchies.
//
// Both lists are sorted by id descending (larger id first) and walked with
// two cursors. The descending order is load-bearing: it fixes the order in
// which deletes and adds interleave in the output and therefore the order
// the device receives them in, so it must not be changed to ascending even
// though that would be equally "correct".
//
// For an id present on both sides, a flags change and a content change may
// both be emitted in the same run (flags differ and mod differs).
func ComputeDiff(old, current []models.StatEntry) []models.Change {
	oldSorted := make([]models.StatEntry, len(old))
	copy(oldSorted, old)
	newSorted := make([]models.StatEntry, len(current))
	copy(newSorted, current)

	sort.Slice(oldSorted, func(i, j int) bool { return oldSorted[i].ID > oldSorted[j].ID })
	sort.Slice(newSorted, func(i, j int) bool { return newSorted[i].ID > newSorted[j].ID })

	var changes []models.Change

	iOld, iNew := 0, 0
	for iOld < len(oldSorted) && iNew < len(newSorted) {
		oldEntry, newEntry := oldSorted[iOld], newSorted[iNew]

		switch {
		case oldEntry.ID == newEntry.ID:
			oldFlags, oldHas := oldEntry.FlagsValue()
			newFlags, newHas := newEntry.FlagsValue()
			if oldHas && newHas && oldFlags != newFlags {
				changes = append(changes, models.Change{
					Type:  models.ChangeTypeFlags,
					ID:    newEntry.ID,
					Mod:   newEntry.Mod,
					Flags: models.Flagged(newFlags),
				})
			}
			if oldEntry.Mod != newEntry.Mod {
				changes = append(changes, models.Change{
					Type:     models.ChangeTypeChange,
					ID:       newEntry.ID,
					Mod:      newEntry.Mod,
					Flags:    newEntry.Flags,
					ParentID: newEntry.ParentID,
				})
			}
			iOld++
			iNew++

		case oldEntry.ID > newEntry.ID:
			// Present in old only: gone from the backend.
			changes = append(changes, models.Change{
				Type: models.ChangeTypeDelete,
				ID:   oldEntry.ID,
			})
			iOld++

		default:
			// Present in new only: added on the backend.
			changes = append(changes, newItemChange(newEntry))
			iNew++
		}
	}

	for ; iOld < len(oldSorted); iOld++ {
		changes = append(changes, models.Change{
			Type: models.ChangeTypeDelete,
			ID:   oldSorted[iOld].ID,
		})
	}
	for ; iNew < len(newSorted); iNew++ {
		changes = append(changes, newItemChange(newSorted[iNew]))
	}

	return changes
}

func newItemChange(entry models.StatEntry) models.Change {
	return models.Change{
		Type:     models.ChangeTypeChange,
		ID:       entry.ID,
		Mod:      entry.Mod,
		Flags:    entry.Flags,
		ParentID: entry.ParentID,
		New:      true,
	}
}
