// SPDX-License-Identifier: Apache-2.0

// Package config loads the gateway configuration by layering environment
// variables, command-line flags and an optional JSON file, merged in that
// order with mergo. The backend roster (tags, drivers, per-backend
// credentials, allowlists) only fits structured configuration and is
// therefore JSON-file only; all scalar settings are reachable from env
// and flags as well.
package config

import (
	"time"

	"github.com/mobilegw/go-sync-gateway/models"
)

// StructuredConfig is the top-level configuration container.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//   - json      — field name inside the optional JSON config file.
type StructuredConfig struct {
	// App holds application-level settings.
	App App `envPrefix:"APP_" json:"app"`

	// Server holds the inbound HTTP transport settings.
	Server Server `envPrefix:"SERVER_" json:"server"`

	// Storage holds the sync-state store settings.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// Sync holds the synchronization engine defaults.
	Sync Sync `envPrefix:"SYNC_" json:"sync"`

	// Workers holds the background change-poller settings.
	Workers Workers `envPrefix:"WORKERS_" json:"workers"`

	// Backends is the combined-backend roster. JSON-file only.
	Backends []BackendEntry `json:"backends"`

	// JSONFilePath is the optional path to a JSON configuration file,
	// merged on top of env and flag values when non-empty.
	// Env: CONFIG; flag: -c / -config.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version of the running gateway, exposed via
	// the version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION" json:"version"`
}

// Server holds network and timeout settings for the inbound transport.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" json:"address"`

	// RequestTimeout bounds one inbound request end to end.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// Storage holds the sync-state store settings.
type Storage struct {
	// Driver selects the state store: "postgres", "sqlite" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER" json:"driver"`

	// DSN is the PostgreSQL connection string, or the SQLite file path.
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI" json:"dsn"`
}

// Sync holds synchronization engine defaults.
type Sync struct {
	// Delimiter separates backend tag and native id in combined folder
	// ids. Env: SYNC_DELIMITER
	Delimiter string `env:"DELIMITER" json:"delimiter"`

	// ConflictPolicy is "server" (server wins) or "client" (client wins).
	// Env: SYNC_CONFLICT_POLICY
	ConflictPolicy string `env:"CONFLICT_POLICY" json:"conflict_policy"`

	// CutoffDays is the default content restriction window; 0 syncs
	// everything. Env: SYNC_CUTOFF_DAYS
	CutoffDays int `env:"CUTOFF_DAYS" json:"cutoff_days"`

	// TruncationSize is the default body truncation in bytes; 0 disables
	// truncation. Env: SYNC_TRUNCATION_SIZE
	TruncationSize int `env:"TRUNCATION_SIZE" json:"truncation_size"`

	// TypeAuthority assigns each default folder type to the single
	// backend tag allowed to expose it. JSON-file only.
	TypeAuthority map[models.FolderType]string `json:"type_authority"`
}

// Workers holds the background change-poller settings.
type Workers struct {
	// PingInterval is the poll period of the change worker; 0 disables
	// the worker. Env: WORKERS_PING_INTERVAL
	PingInterval time.Duration `env:"PING_INTERVAL" json:"ping_interval"`

	// PingDeviceID is the device whose persisted states the poller diffs
	// against. Env: WORKERS_PING_DEVICE_ID
	PingDeviceID string `env:"PING_DEVICE_ID" json:"ping_device_id"`

	// PingFolders lists the combined folder ids to watch.
	// Env: WORKERS_PING_FOLDERS (comma separated)
	PingFolders []string `env:"PING_FOLDERS" json:"ping_folders"`
}

// BackendEntry configures one physical backend of the combined store.
type BackendEntry struct {
	// Tag namespaces the backend's folder ids; unique, delimiter-free.
	Tag string `json:"tag"`

	// Driver selects the adapter: "memory", "sqlite" or "remote".
	Driver string `json:"driver"`

	// DSN is the store location (file path or base URL).
	DSN string `json:"dsn"`

	// Timeout bounds one round-trip for remote adapters.
	Timeout time.Duration `json:"timeout"`

	// Username/Domain/Password, when set, replace the device credentials
	// for this backend's logon.
	Username string `json:"username"`
	Domain   string `json:"domain"`
	Password string `json:"password"`

	// Users is the per-backend allowlist; empty admits everyone.
	Users []string `json:"users"`

	// SubfolderName nests the backend's tree under a virtual root folder
	// with this display name; empty merges at the hierarchy root.
	SubfolderName string `json:"subfolder"`
}

// Policy converts the configured conflict policy name to its model value;
// anything but "client" means the server wins.
func (s Sync) Policy() models.ConflictPolicy {
	if s.ConflictPolicy == "client" {
		return models.PolicyClientWins
	}
	return models.PolicyServerWins
}

// GetStructuredConfig builds the effective configuration: env values,
// then flags, then the optional JSON file, later layers filling gaps left
// by earlier ones, followed by validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
