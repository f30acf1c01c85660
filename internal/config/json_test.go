// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilegw/go-sync-gateway/models"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempConfig(t, `{
		"app": {"version": "2.0.0"},
		"server": {"address": ":9000", "request_timeout": 45000000000},
		"storage": {"driver": "sqlite", "dsn": "/tmp/states.db"},
		"sync": {
			"delimiter": "/",
			"conflict_policy": "server",
			"cutoff_days": 30,
			"type_authority": {"2": "imap"}
		},
		"backends": [
			{"tag": "imap", "driver": "remote", "dsn": "https://mail.example.com", "subfolder": "Mail"},
			{"tag": "notes", "driver": "sqlite", "dsn": "/tmp/notes.db", "users": ["alice"], "username": "svc", "password": "pw"}
		]
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, ":9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, 30, cfg.Sync.CutoffDays)
	assert.Equal(t, "imap", cfg.Sync.TypeAuthority[models.FolderTypeInbox])

	require.Len(t, cfg.Backends, 2)
	assert.Equal(t, "imap", cfg.Backends[0].Tag)
	assert.Equal(t, "Mail", cfg.Backends[0].SubfolderName)
	assert.Equal(t, []string{"alice"}, cfg.Backends[1].Users)
	assert.Equal(t, "svc", cfg.Backends[1].Username)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempConfig(t, "{not json")
	_, err := parseJSON(path)
	assert.Error(t, err)
}
