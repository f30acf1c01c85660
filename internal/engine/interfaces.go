package engine

import (
	"context"

	"github.com/mobilegw/go-sync-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// DeviceContentImporter is the device-facing sink for one content folder.
// The protocol layer implements it on top of the wire encoder; the
// exporter feeds it one change per Synchronize step.
type DeviceContentImporter interface {
	ImportMessageChange(ctx context.Context, id string, message models.SyncMessage) error
	ImportMessageDeletion(ctx context.Context, id string) error
	ImportMessageReadFlag(ctx context.Context, id string, flags int) error
	ImportMessageMove(ctx context.Context, id, newFolderID string) error
}

// DeviceHierarchyImporter is the device-facing sink for folder hierarchy
// changes.
type DeviceHierarchyImporter interface {
	ImportFolderChange(ctx context.Context, folder models.SyncFolder) error
	ImportFolderDeletion(ctx context.Context, id string) error
}
