package models

// ChangeType discriminates Change records produced by the diff engine and
// by device-originated operations.
type ChangeType string

const (
	// ChangeTypeChange is an added or modified item. The new content is
	// fetched separately; the change itself carries only identity data.
	ChangeTypeChange ChangeType = "change"

	// ChangeTypeDelete is an item removal.
	ChangeTypeDelete ChangeType = "delete"

	// ChangeTypeFlags is a flag-only update (read/unread on messages).
	ChangeTypeFlags ChangeType = "flags"

	// ChangeTypeMove relocates an item to a different parent folder.
	ChangeTypeMove ChangeType = "move"
)

// Change is one entry of a computed change-set. Only the fields relevant
// to Type carry payload: Flags for flag changes, ParentID for moves.
// Change entries additionally carry Mod (and cached Flags) so the state
// tracker can upsert the full entry without a second backend round-trip.
type Change struct {
	Type ChangeType `json:"type"`
	ID   string     `json:"id"`

	// Mod is the item's current change token, when known.
	Mod string `json:"mod,omitempty"`

	// Flags is the payload of a flags change, or the cached flags of a
	// content change.
	Flags *int `json:"flags,omitempty"`

	// ParentID is the destination folder of a move, or the parent of a
	// folder entry.
	ParentID string `json:"parent,omitempty"`

	// New marks a content change for an item the prior state never saw
	// (an add rather than a modification).
	New bool `json:"new,omitempty"`
}

// Entry converts the change into the StatEntry the state tracker keeps.
func (c Change) Entry() StatEntry {
	return StatEntry{
		ID:       c.ID,
		Mod:      c.Mod,
		Flags:    c.Flags,
		ParentID: c.ParentID,
	}
}

// SyncProgress reports how far a step-wise export has advanced.
type SyncProgress struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

// ConflictPolicy selects which side wins when the device and the backend
// changed the same item.
type ConflictPolicy int

const (
	// PolicyServerWins accepts the device operation but skips the backend
	// mutation; the next export cycle re-sends the server's copy, which is
	// how the device-side edit gets overwritten.
	PolicyServerWins ConflictPolicy = iota

	// PolicyClientWins writes the device operation through; the
	// server-side change is discarded implicitly on the next export cycle.
	PolicyClientWins
)
