// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilegw/go-sync-gateway/models"
)

func validBackends() []BackendEntry {
	return []BackendEntry{{Tag: "mem", Driver: "memory"}}
}

// Earlier layers win: a field set by an earlier config survives merging a
// later one; later layers only fill gaps.
func TestConfigBuilder_LayerPrecedence(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Server: Server{HTTPAddress: ":7000"}},
		&StructuredConfig{
			Server:   Server{HTTPAddress: ":9999", RequestTimeout: 30 * time.Second},
			Backends: validBackends(),
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestConfigBuilder_Defaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Backends: validBackends()})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "/", cfg.Sync.Delimiter)
	assert.Equal(t, "server", cfg.Sync.ConflictPolicy)
}

func TestConfigBuilder_ValidationMatrix(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *StructuredConfig
		wantErr bool
	}{
		{
			name:    "Valid",
			cfg:     &StructuredConfig{Backends: validBackends()},
			wantErr: false,
		},
		{
			name: "UnknownStorageDriver",
			cfg: &StructuredConfig{
				Storage:  Storage{Driver: "oracle"},
				Backends: validBackends(),
			},
			wantErr: true,
		},
		{
			name: "UnknownConflictPolicy",
			cfg: &StructuredConfig{
				Sync:     Sync{ConflictPolicy: "merge"},
				Backends: validBackends(),
			},
			wantErr: true,
		},
		{
			name:    "NoBackends",
			cfg:     &StructuredConfig{},
			wantErr: true,
		},
		{
			name: "BackendTagContainsDelimiter",
			cfg: &StructuredConfig{
				Backends: []BackendEntry{{Tag: "a/b", Driver: "memory"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.cfg)

			_, err := b.build()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSync_Policy(t *testing.T) {
	assert.Equal(t, models.PolicyClientWins, Sync{ConflictPolicy: "client"}.Policy())
	assert.Equal(t, models.PolicyServerWins, Sync{ConflictPolicy: "server"}.Policy())
	assert.Equal(t, models.PolicyServerWins, Sync{}.Policy())
}
