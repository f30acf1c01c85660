// SPDX-License-Identifier: Apache-2.0

package models

import (
	"encoding/json"
	"fmt"
)

// SyncState is the persisted list of last-known item records for one
// synchronized scope (a content folder or the folder hierarchy). Order is
// irrelevant; entries are logically keyed by ID and no two entries share
// one. The state travels as an opaque blob between sync sessions and is
// mutated only through Update as changes are confirmed.
type SyncState struct {
	Entries []StatEntry `json:"entries"`
}

// DecodeSyncState rebuilds a SyncState from a serialized blob. A nil or
// empty blob decodes to an empty state, which makes the first sync of a
// scope indistinguishable from a reset one.
func DecodeSyncState(blob []byte) (*SyncState, error) {
	state := new(SyncState)
	if len(blob) == 0 {
		return state, nil
	}

	if err := json.Unmarshal(blob, state); err != nil {
		return nil, fmt.Errorf("error decoding sync state: %w", err)
	}

	return state, nil
}

// Serialize renders the state as an opaque blob for the state store.
func (s *SyncState) Serialize() ([]byte, error) {
	blob, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("error serializing sync state: %w", err)
	}

	return blob, nil
}

// Lookup returns the entry with the given id and whether it exists.
func (s *SyncState) Lookup(id string) (StatEntry, bool) {
	for _, entry := range s.Entries {
		if entry.ID == id {
			return entry, true
		}
	}

	return StatEntry{}, false
}

// Update applies one confirmed change to the state.
//
// Semantics per change type:
//   - change: upsert — overwrite the entry with the same id or append;
//   - flags:  patch only the Flags field of an existing entry, no-op when
//     the id is unknown (an entry is never synthesized from a flag change);
//   - delete: remove the entry, no-op when the id is unknown;
//   - move:   no-op here — the backend is authoritative for the post-move
//     location, so the caller follows up with a change update.
//
// None of these fail: an absent target means the state already agrees with
// the change, which keeps sync convergent across retransmissions and
// partially failed earlier sessions.
func (s *SyncState) Update(changeType ChangeType, change Change) {
	switch changeType {
	case ChangeTypeChange:
		for i := range s.Entries {
			if s.Entries[i].ID == change.ID {
				s.Entries[i] = change.Entry()
				return
			}
		}
		s.Entries = append(s.Entries, change.Entry())

	case ChangeTypeFlags:
		for i := range s.Entries {
			if s.Entries[i].ID == change.ID {
				s.Entries[i].Flags = change.Flags
				return
			}
		}

	case ChangeTypeDelete:
		for i := range s.Entries {
			if s.Entries[i].ID == change.ID {
				s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
				return
			}
		}

	case ChangeTypeMove:
		// Handled by the caller via a subsequent change update.
	}
}
