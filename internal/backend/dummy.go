package backend

// DummyFolderID is the placeholder scope id for folder types the gateway
// intentionally hides from the device (e.g. the outbox on stores that send
// through SMTP). Every importer/exporter operation against it short
// circuits to a successful no-op, and an export of it yields zero changes.
const DummyFolderID = "dummy"

// IsDummyFolder reports whether id addresses the placeholder scope.
func IsDummyFolder(id string) bool {
	return id == DummyFolderID
}
