package http

import (
	"context"

	"github.com/mobilegw/go-sync-gateway/models"
)

// jsonContentSink collects exported content changes into the response
// body. It is the JSON stand-in for the wire-protocol encoder the engine
// normally feeds.
type jsonContentSink struct {
	changes []models.ServerChange
}

func (s *jsonContentSink) ImportMessageChange(_ context.Context, id string, message models.SyncMessage) error {
	s.changes = append(s.changes, models.ServerChange{
		Type:    models.ChangeTypeChange,
		ID:      id,
		Message: &message,
	})
	return nil
}

func (s *jsonContentSink) ImportMessageDeletion(_ context.Context, id string) error {
	s.changes = append(s.changes, models.ServerChange{Type: models.ChangeTypeDelete, ID: id})
	return nil
}

func (s *jsonContentSink) ImportMessageReadFlag(_ context.Context, id string, flags int) error {
	s.changes = append(s.changes, models.ServerChange{
		Type:  models.ChangeTypeFlags,
		ID:    id,
		Flags: models.Flagged(flags),
	})
	return nil
}

func (s *jsonContentSink) ImportMessageMove(_ context.Context, id, newFolderID string) error {
	s.changes = append(s.changes, models.ServerChange{
		Type:        models.ChangeTypeMove,
		ID:          id,
		NewFolderID: newFolderID,
	})
	return nil
}

// jsonHierarchySink collects exported folder changes.
type jsonHierarchySink struct {
	changes []models.ServerChange
}

func (s *jsonHierarchySink) ImportFolderChange(_ context.Context, folder models.SyncFolder) error {
	s.changes = append(s.changes, models.ServerChange{
		Type:   models.ChangeTypeChange,
		ID:     folder.ServerID,
		Folder: &folder,
	})
	return nil
}

func (s *jsonHierarchySink) ImportFolderDeletion(_ context.Context, id string) error {
	s.changes = append(s.changes, models.ServerChange{Type: models.ChangeTypeDelete, ID: id})
	return nil
}
