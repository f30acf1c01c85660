package models

import "time"

// SyncMessage is the content payload of one synchronized item. The field
// set is the union of what the supported content classes need; per-class
// property mapping happens in the (out of scope) protocol encoder, so the
// gateway only moves these records between device and backend.
type SyncMessage struct {
	ID       string `json:"id"`
	FolderID string `json:"folderid,omitempty"`

	Subject string     `json:"subject,omitempty"`
	From    string     `json:"from,omitempty"`
	To      string     `json:"to,omitempty"`
	Body    string     `json:"body,omitempty"`
	Read    int        `json:"read"`
	Sent    *time.Time `json:"sent,omitempty"`

	// BodyTruncated is set when Body was cut to the requested truncation
	// size; the device can re-request the item with a larger limit.
	BodyTruncated bool `json:"bodytruncated,omitempty"`
}
