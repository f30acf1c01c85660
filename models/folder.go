package models

// FolderType classifies a synchronized folder. Values follow the mobile
// sync protocol's folder type table; the User* variants denote
// user-created folders of the same content class.
type FolderType int

const (
	FolderTypeOther           FolderType = 1
	FolderTypeInbox           FolderType = 2
	FolderTypeDrafts          FolderType = 3
	FolderTypeWastebasket     FolderType = 4
	FolderTypeSentMail        FolderType = 5
	FolderTypeOutbox          FolderType = 6
	FolderTypeTasks           FolderType = 7
	FolderTypeAppointments    FolderType = 8
	FolderTypeContacts        FolderType = 9
	FolderTypeNotes           FolderType = 10
	FolderTypeJournal         FolderType = 11
	FolderTypeUserMail        FolderType = 12
	FolderTypeUserAppointment FolderType = 13
	FolderTypeUserContact     FolderType = 14
	FolderTypeUserTask        FolderType = 15
	FolderTypeUserJournal     FolderType = 16
	FolderTypeUserNote        FolderType = 17
	FolderTypeUnknown         FolderType = 18
)

// IsDefault reports whether t is one of the well-known default folder
// types that only one backend may claim in a combined setup.
func (t FolderType) IsDefault() bool {
	return t >= FolderTypeInbox && t <= FolderTypeJournal
}

// SyncFolder is the full folder record exchanged with the device during
// hierarchy synchronization.
type SyncFolder struct {
	ServerID    string     `json:"serverid"`
	ParentID    string     `json:"parentid"`
	DisplayName string     `json:"displayname"`
	Type        FolderType `json:"type"`
}
