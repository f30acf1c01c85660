package store

import (
	"context"
	"sync"

	"github.com/mobilegw/go-sync-gateway/models"
)

type stateKey struct {
	deviceID  string
	scopeType models.ScopeType
	key       string
	counter   int
}

// memoryStateStore is a map-backed StateStore for tests and single-process
// deployments without a database.
type memoryStateStore struct {
	mu     sync.RWMutex
	states map[stateKey][]byte
}

// NewMemoryStateStore constructs an empty in-memory StateStore.
func NewMemoryStateStore() StateStore {
	return &memoryStateStore{states: map[stateKey][]byte{}}
}

func (s *memoryStateStore) GetState(_ context.Context, deviceID string, scopeType models.ScopeType, key string, counter int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.states[stateKey{deviceID, scopeType, key, counter}]
	if !ok {
		return nil, ErrStateNotFound
	}

	copied := make([]byte, len(blob))
	copy(copied, blob)
	return copied, nil
}

func (s *memoryStateStore) GetLatestState(_ context.Context, deviceID string, scopeType models.ScopeType, key string) ([]byte, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := -1
	var found []byte
	for k, blob := range s.states {
		if k.deviceID == deviceID && k.scopeType == scopeType && k.key == key && k.counter > best {
			best = k.counter
			found = blob
		}
	}
	if best < 0 {
		return nil, 0, ErrStateNotFound
	}

	copied := make([]byte, len(found))
	copy(copied, found)
	return copied, best, nil
}

func (s *memoryStateStore) SetState(_ context.Context, deviceID string, scopeType models.ScopeType, key string, counter int, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(blob))
	copy(copied, blob)
	s.states[stateKey{deviceID, scopeType, key, counter}] = copied

	for k := range s.states {
		if k.deviceID == deviceID && k.scopeType == scopeType && k.key == key && k.counter < counter-1 {
			delete(s.states, k)
		}
	}

	return nil
}

func (s *memoryStateStore) DeleteState(_ context.Context, deviceID string, scopeType models.ScopeType, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.states {
		if k.deviceID == deviceID && k.scopeType == scopeType && k.key == key {
			delete(s.states, k)
		}
	}

	return nil
}
