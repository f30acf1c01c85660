package backend

import (
	"fmt"
	"sync"
	"time"
)

// Config is the driver-independent construction config for one adapter.
// Concrete adapters read the fields that apply to them.
type Config struct {
	// Driver selects the registered adapter factory ("memory", "sqlite",
	// "remote").
	Driver string

	// DSN is the store location: a file path for sqlite, a base URL for
	// remote adapters; ignored by the in-memory adapter.
	DSN string

	// Timeout bounds one network round-trip for remote adapters.
	Timeout time.Duration
}

// Factory constructs an adapter from its config.
type Factory func(cfg Config) (Backend, error)

var registry = struct {
	mu        sync.RWMutex
	factories map[string]Factory
}{factories: map[string]Factory{}}

// Register installs a factory under a driver name. Adapter packages call
// it from init; the binary selects adapters by blank-importing them.
func Register(driver string, factory Factory) {
	if driver == "" || factory == nil {
		return
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.factories[driver] = factory
}

// New constructs an adapter for cfg.Driver.
func New(cfg Config) (Backend, error) {
	registry.mu.RLock()
	factory, ok := registry.factories[cfg.Driver]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("backend: unknown driver %q", cfg.Driver)
	}

	return factory(cfg)
}
