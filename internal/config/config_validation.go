package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	errUnknownStorageDriver = errors.New("unknown storage driver")
	errUnknownPolicy        = errors.New("unknown conflict policy")
	errNoBackends           = errors.New("no backends configured")
)

// applyDefaults fills the gaps no configuration layer covered.
func (c *StructuredConfig) applyDefaults() {
	if c.Server.HTTPAddress == "" {
		c.Server.HTTPAddress = ":8080"
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = 60 * time.Second
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Sync.Delimiter == "" {
		c.Sync.Delimiter = "/"
	}
	if c.Sync.ConflictPolicy == "" {
		c.Sync.ConflictPolicy = "server"
	}
}

func (c *StructuredConfig) validate() error {
	var errs []error

	switch c.Storage.Driver {
	case "memory", "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownStorageDriver, c.Storage.Driver))
	}

	switch c.Sync.ConflictPolicy {
	case "server", "client":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownPolicy, c.Sync.ConflictPolicy))
	}

	if len(c.Backends) == 0 {
		errs = append(errs, errNoBackends)
	}
	for _, entry := range c.Backends {
		if entry.Tag == "" || strings.Contains(entry.Tag, c.Sync.Delimiter) {
			errs = append(errs, fmt.Errorf("invalid backend tag %q", entry.Tag))
		}
	}

	return errors.Join(errs...)
}
