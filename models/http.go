package models

// ClientChange is one device-originated operation inside a sync request.
type ClientChange struct {
	Type ChangeType `json:"type"`

	// ID is the item's server id; empty on a device-created item.
	ID string `json:"id,omitempty"`

	// Message carries the payload of a content change.
	Message *SyncMessage `json:"message,omitempty"`

	// Flags carries the payload of a flags change.
	Flags *int `json:"flags,omitempty"`

	// NewFolderID is the destination of a move.
	NewFolderID string `json:"newfolder,omitempty"`
}

// ServerChange is one server-originated change streamed back to the
// device.
type ServerChange struct {
	Type ChangeType `json:"type"`
	ID   string     `json:"id"`

	Message *SyncMessage `json:"message,omitempty"`
	Folder  *SyncFolder  `json:"folder,omitempty"`
	Flags   *int         `json:"flags,omitempty"`

	// NewFolderID is the destination of a server-side move.
	NewFolderID string `json:"newfolder,omitempty"`
}

// ChangeResult maps one applied client change to its outcome.
type ChangeResult struct {
	// ClientID echoes the id the device sent (may be empty for adds).
	ClientID string `json:"clientid,omitempty"`

	// ServerID is the authoritative id after the apply.
	ServerID string `json:"serverid,omitempty"`
}

// SyncRequest drives one content-folder sync round.
type SyncRequest struct {
	// Counter is the state counter the device last acknowledged.
	Counter int `json:"counter"`

	// DiscardData advances state without content payloads.
	DiscardData bool `json:"discarddata,omitempty"`

	// CutoffDays/TruncationSize override the configured defaults when
	// non-nil.
	CutoffDays     *int `json:"cutoffdays,omitempty"`
	TruncationSize *int `json:"truncationsize,omitempty"`

	// ClientChanges are the device-originated operations to apply before
	// the server-side changes are computed.
	ClientChanges []ClientChange `json:"clientchanges,omitempty"`
}

// SyncResponse answers one content-folder sync round.
type SyncResponse struct {
	Counter       int            `json:"counter"`
	Progress      SyncProgress   `json:"progress"`
	Results       []ChangeResult `json:"results,omitempty"`
	ServerChanges []ServerChange `json:"serverchanges,omitempty"`
}

// FolderSyncRequest drives one hierarchy sync round.
type FolderSyncRequest struct {
	Counter int `json:"counter"`
}

// FolderSyncResponse answers one hierarchy sync round.
type FolderSyncResponse struct {
	Counter       int            `json:"counter"`
	Progress      SyncProgress   `json:"progress"`
	ServerChanges []ServerChange `json:"serverchanges,omitempty"`
}

// PingRequest asks whether any of the listed folders changed since their
// last persisted state.
type PingRequest struct {
	Counter int      `json:"counter"`
	Folders []string `json:"folders"`
}

// PingResponse lists the folders with pending changes.
type PingResponse struct {
	Changed []string `json:"changed"`
}

// VersionResponse reports the running gateway version.
type VersionResponse struct {
	Version string `json:"version"`
}
