// SPDX-License-Identifier: Apache-2.0

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSyncState_EmptyBlob(t *testing.T) {
	for _, blob := range [][]byte{nil, {}} {
		state, err := DecodeSyncState(blob)
		require.NoError(t, err)
		assert.Empty(t, state.Entries)
	}
}

func TestDecodeSyncState_InvalidJSON(t *testing.T) {
	_, err := DecodeSyncState([]byte("{not json"))
	assert.Error(t, err)
}

func TestSyncState_SerializeRoundTrip(t *testing.T) {
	state := &SyncState{Entries: []StatEntry{
		{ID: "a", Mod: "1", Flags: Flagged(1), ParentID: "p"},
		{ID: "b", Mod: "2"},
	}}

	blob, err := state.Serialize()
	require.NoError(t, err)

	decoded, err := DecodeSyncState(blob)
	require.NoError(t, err)
	assert.Equal(t, state.Entries, decoded.Entries)
}

func TestSyncState_Lookup(t *testing.T) {
	state := &SyncState{Entries: []StatEntry{{ID: "a", Mod: "1"}}}

	entry, ok := state.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "1", entry.Mod)

	_, ok = state.Lookup("missing")
	assert.False(t, ok)
}

// TestSyncState_Update_DecisionMatrix covers the per-type update rules:
// upsert for change, patch-only for flags, remove for delete, no-op for
// move, and the convergence rule that an absent target never fails.
func TestSyncState_Update_DecisionMatrix(t *testing.T) {
	tests := []struct {
		name    string
		initial []StatEntry
		typ     ChangeType
		change  Change
		want    []StatEntry
	}{
		{
			name:    "Change/KnownID → Overwritten",
			initial: []StatEntry{{ID: "a", Mod: "1"}},
			typ:     ChangeTypeChange,
			change:  Change{ID: "a", Mod: "2", Flags: Flagged(1)},
			want:    []StatEntry{{ID: "a", Mod: "2", Flags: Flagged(1)}},
		},
		{
			name:    "Change/UnknownID → Appended",
			initial: []StatEntry{{ID: "a", Mod: "1"}},
			typ:     ChangeTypeChange,
			change:  Change{ID: "b", Mod: "5"},
			want:    []StatEntry{{ID: "a", Mod: "1"}, {ID: "b", Mod: "5"}},
		},
		{
			name:    "Flags/KnownID → OnlyFlagsPatched",
			initial: []StatEntry{{ID: "a", Mod: "1", Flags: Flagged(0)}},
			typ:     ChangeTypeFlags,
			change:  Change{ID: "a", Mod: "9", Flags: Flagged(1)},
			want:    []StatEntry{{ID: "a", Mod: "1", Flags: Flagged(1)}},
		},
		{
			name:    "Flags/UnknownID → NotSynthesized",
			initial: []StatEntry{{ID: "a", Mod: "1"}},
			typ:     ChangeTypeFlags,
			change:  Change{ID: "b", Flags: Flagged(1)},
			want:    []StatEntry{{ID: "a", Mod: "1"}},
		},
		{
			name:    "Delete/KnownID → Removed",
			initial: []StatEntry{{ID: "a", Mod: "1"}, {ID: "b", Mod: "2"}},
			typ:     ChangeTypeDelete,
			change:  Change{ID: "a"},
			want:    []StatEntry{{ID: "b", Mod: "2"}},
		},
		{
			name:    "Delete/UnknownID → NoOp",
			initial: []StatEntry{{ID: "a", Mod: "1"}},
			typ:     ChangeTypeDelete,
			change:  Change{ID: "b"},
			want:    []StatEntry{{ID: "a", Mod: "1"}},
		},
		{
			name:    "Move → NoOp",
			initial: []StatEntry{{ID: "a", Mod: "1"}},
			typ:     ChangeTypeMove,
			change:  Change{ID: "a"},
			want:    []StatEntry{{ID: "a", Mod: "1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &SyncState{Entries: tt.initial}
			state.Update(tt.typ, tt.change)
			assert.Equal(t, tt.want, state.Entries)
		})
	}
}

// Applying the same delete twice leaves the state unchanged after the
// first application; retransmitted sessions rely on this.
func TestSyncState_Update_Idempotent(t *testing.T) {
	state := &SyncState{Entries: []StatEntry{{ID: "a", Mod: "1"}}}

	state.Update(ChangeTypeDelete, Change{ID: "a"})
	state.Update(ChangeTypeDelete, Change{ID: "a"})

	assert.Empty(t, state.Entries)
}
