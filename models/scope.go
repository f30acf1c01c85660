package models

// ScopeType distinguishes the two synchronized scope kinds that share the
// diff/state machinery.
type ScopeType string

const (
	// ScopeHierarchy is the folder hierarchy of a device.
	ScopeHierarchy ScopeType = "hierarchy"

	// ScopeContent is one content folder (mail, contacts, calendar,
	// tasks).
	ScopeContent ScopeType = "content"
)
