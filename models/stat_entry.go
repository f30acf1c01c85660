package models

// StatEntry is the server's knowledge of a single synchronized item at a
// point in time. It is produced by backend snapshot calls (GetMessageList,
// GetFolderList, StatMessage, StatFolder), consumed by the diff engine, and
// a subset of entries is retained inside a SyncState after each apply.
type StatEntry struct {
	// ID is an opaque identifier, unique within its scope (one folder or
	// the folder hierarchy) and stable across content changes.
	ID string `json:"id"`

	// Mod is an opaque change token (timestamp, etag, counter). It changes
	// if and only if the item's content changed and is compared only for
	// (in)equality.
	Mod string `json:"mod"`

	// Flags is a small bitfield; for messages bit 0 is the read flag.
	// Folder entries carry no flags, so the field is a pointer: nil means
	// "not applicable", which the diff engine treats as "never differs".
	Flags *int `json:"flags,omitempty"`

	// ParentID is set on folder entries and holds the id of the containing
	// folder; "0" denotes the hierarchy root.
	ParentID string `json:"parent,omitempty"`
}

// FlagsValue returns the flags bitfield and whether it is present.
func (e StatEntry) FlagsValue() (int, bool) {
	if e.Flags == nil {
		return 0, false
	}
	return *e.Flags, true
}

// Flagged returns a pointer copy of n usable as a StatEntry or Change
// flags field.
func Flagged(n int) *int {
	return &n
}
