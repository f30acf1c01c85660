// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/backend/memory"
	"github.com/mobilegw/go-sync-gateway/internal/config"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/store"
	"github.com/mobilegw/go-sync-gateway/models"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
}

func TestWorkers_Run_MultipleRuns(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Run()
	ws.Run()
	ws.Run()

	if w.runCount != 3 {
		t.Errorf("expected runCount=3 after 3 calls, got %d", w.runCount)
	}
}

func TestChangePoller_Run_DisabledWithoutInterval(t *testing.T) {
	p := NewChangePoller(nil, store.NewMemoryStateStore(), config.Workers{
		PingFolders: []string{"inbox"},
	}, logger.Nop())

	// Must return without spawning the loop; a nil factory would panic if
	// a poll ever ran.
	p.Run()
}

func TestChangePoller_Run_DisabledWithoutFolders(t *testing.T) {
	p := NewChangePoller(nil, store.NewMemoryStateStore(), config.Workers{
		PingInterval: time.Second,
	}, logger.Nop())

	p.Run()
}

func TestChangePoller_Poll(t *testing.T) {
	mem := memory.New()
	folderID := mem.AddFolder(models.SyncFolder{DisplayName: "Inbox", Type: models.FolderTypeInbox})
	mem.AddMessage(folderID, models.SyncMessage{Subject: "pending"})

	states := store.NewMemoryStateStore()
	blob, err := (&models.SyncState{}).Serialize()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := states.SetState(context.Background(), "dev-1", models.ScopeContent, folderID, 1, blob); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	factory := func(context.Context) (backend.Backend, error) { return mem, nil }
	p := NewChangePoller(factory, states, config.Workers{
		PingInterval: time.Second,
		PingDeviceID: "dev-1",
		PingFolders:  []string{folderID, "never-synced"},
	}, logger.Nop())

	// One probe round against an empty persisted state: exercises logon,
	// setup, the AlterPing fast path and the not-yet-synced skip. The
	// poller must not touch the state store.
	p.poll()

	if _, _, err := states.GetLatestState(context.Background(), "dev-1", models.ScopeContent, folderID); err != nil {
		t.Errorf("expected state to survive the poll, got %s", err)
	}
	if _, _, err := states.GetLatestState(context.Background(), "dev-1", models.ScopeContent, "never-synced"); err != store.ErrStateNotFound {
		t.Errorf("expected ErrStateNotFound for unsynced folder, got %v", err)
	}
}
