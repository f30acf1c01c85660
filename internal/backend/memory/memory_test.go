// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/models"
)

func TestLogon_CredentialCheck(t *testing.T) {
	ctx := context.Background()

	open := New()
	assert.NoError(t, open.Logon(ctx, backend.Credentials{Username: "anyone"}))

	locked := New().WithCredentials(backend.Credentials{Username: "svc", Password: "pw"})
	assert.ErrorIs(t, locked.Logon(ctx, backend.Credentials{Username: "bob"}), ErrLogonFailed)
	assert.NoError(t, locked.Logon(ctx, backend.Credentials{Username: "svc", Password: "pw"}))
}

func TestChangeMessage_ModAdvances(t *testing.T) {
	ctx := context.Background()
	b := New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox", DisplayName: "Inbox"})

	first, err := b.ChangeMessage(ctx, folderID, "", models.SyncMessage{Subject: "v1"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	second, err := b.ChangeMessage(ctx, folderID, first.ID, models.SyncMessage{Subject: "v2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.Mod, second.Mod)
}

func TestGetMessage_Truncation(t *testing.T) {
	ctx := context.Background()
	b := New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox"})
	stat := b.AddMessage(folderID, models.SyncMessage{Body: "0123456789"})

	full, err := b.GetMessage(ctx, folderID, stat.ID, backend.ContentParams{})
	require.NoError(t, err)
	assert.Equal(t, "0123456789", full.Body)
	assert.False(t, full.BodyTruncated)

	cut, err := b.GetMessage(ctx, folderID, stat.ID, backend.ContentParams{TruncationSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "0123", cut.Body)
	assert.True(t, cut.BodyTruncated)
}

func TestGetMessageList_CutoffFilter(t *testing.T) {
	ctx := context.Background()
	b := New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox"})

	old := time.Now().UTC().AddDate(0, 0, -30)
	recent := time.Now().UTC().AddDate(0, 0, -1)
	b.AddMessage(folderID, models.SyncMessage{ID: "old", Sent: &old})
	b.AddMessage(folderID, models.SyncMessage{ID: "recent", Sent: &recent})
	b.AddMessage(folderID, models.SyncMessage{ID: "undated"})

	all, err := b.GetMessageList(ctx, folderID, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	windowed, err := b.GetMessageList(ctx, folderID, cutoff)
	require.NoError(t, err)
	require.Len(t, windowed, 2)
	for _, stat := range windowed {
		assert.NotEqual(t, "old", stat.ID)
	}
}

func TestSetReadFlag(t *testing.T) {
	ctx := context.Background()
	b := New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox"})
	stat := b.AddMessage(folderID, models.SyncMessage{Subject: "unread"})

	require.NoError(t, b.SetReadFlag(ctx, folderID, stat.ID, 1))

	after, ok, err := b.StatMessage(ctx, folderID, stat.ID)
	require.NoError(t, err)
	require.True(t, ok)
	flags, has := after.FlagsValue()
	require.True(t, has)
	assert.Equal(t, 1, flags)
	assert.NotEqual(t, stat.Mod, after.Mod)
}

// Moves assign a fresh id in the destination, modelling stores whose ids
// are folder-scoped.
func TestMoveMessage_FreshID(t *testing.T) {
	ctx := context.Background()
	b := New()
	src := b.AddFolder(models.SyncFolder{ServerID: "inbox"})
	dst := b.AddFolder(models.SyncFolder{ServerID: "archive"})
	stat := b.AddMessage(src, models.SyncMessage{Subject: "keep"})

	newID, err := b.MoveMessage(ctx, src, stat.ID, dst)
	require.NoError(t, err)
	assert.NotEqual(t, stat.ID, newID)

	_, ok, err := b.StatMessage(ctx, src, stat.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	moved, err := b.GetMessage(ctx, dst, newID, backend.ContentParams{})
	require.NoError(t, err)
	assert.Equal(t, "keep", moved.Subject)
}

func TestStatMessage_GoneIsNotAnError(t *testing.T) {
	ctx := context.Background()
	b := New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox"})

	_, ok, err := b.StatMessage(ctx, folderID, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAlterPingChanges(t *testing.T) {
	ctx := context.Background()
	b := New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox"})

	require.True(t, b.AlterPing())

	state := &models.SyncState{}
	changes, err := b.AlterPingChanges(ctx, folderID, state)
	require.NoError(t, err)
	assert.Empty(t, changes)

	b.AddMessage(folderID, models.SyncMessage{Subject: "new"})
	changes, err = b.AlterPingChanges(ctx, folderID, state)
	require.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Equal(t, models.ChangeTypeChange, changes[0].Type)
	assert.True(t, changes[0].New)
}

// The registry factory hands out shared instances so data survives
// per-request open/close cycles.
func TestShared_PoolsByName(t *testing.T) {
	a := Shared("pool-test")
	b := Shared("pool-test")
	other := Shared("pool-test-other")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}
