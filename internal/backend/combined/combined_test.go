// SPDX-License-Identifier: Apache-2.0

package combined

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/backend/memory"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/mock"
	"github.com/mobilegw/go-sync-gateway/models"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "EmptyDelimiter", cfg: Config{Delimiter: "", Backends: []Entry{{Tag: "a"}}}},
		{name: "EmptyTag", cfg: Config{Delimiter: "/", Backends: []Entry{{Tag: ""}}}},
		{name: "TagContainsDelimiter", cfg: Config{Delimiter: "/", Backends: []Entry{{Tag: "a/b"}}}},
		{name: "DuplicateTag", cfg: Config{Delimiter: "/", Backends: []Entry{{Tag: "a"}, {Tag: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, logger.Nop())
			assert.Error(t, err)
		})
	}
}

func TestCombineID_RoundTrip(t *testing.T) {
	c, err := New(Config{Delimiter: "/", Backends: []Entry{{Tag: "imap", Backend: memory.New()}}}, logger.Nop())
	require.NoError(t, err)

	combined := c.CombineID("imap", "INBOX")
	assert.Equal(t, "imap/INBOX", combined)

	tag, ok := c.GetBackendID(combined)
	require.True(t, ok)
	assert.Equal(t, "imap", tag)

	native, ok := c.GetBackendFolder(combined)
	require.True(t, ok)
	assert.Equal(t, "INBOX", native)
}

func TestGetBackendID_NoDelimiter(t *testing.T) {
	c, err := New(Config{Delimiter: "/", Backends: []Entry{{Tag: "imap", Backend: memory.New()}}}, logger.Nop())
	require.NoError(t, err)

	_, ok := c.GetBackendID("INBOX")
	assert.False(t, ok)

	_, ok = c.GetBackendFolder("INBOX")
	assert.False(t, ok)
}

// A backend whose allowlist excludes the user is dropped from the session
// silently; its folders never appear.
func TestLogon_AllowlistDrop(t *testing.T) {
	ctx := context.Background()

	open := memory.New()
	open.AddFolder(models.SyncFolder{ServerID: "inbox", DisplayName: "Inbox", Type: models.FolderTypeInbox})
	restricted := memory.New()
	restricted.AddFolder(models.SyncFolder{ServerID: "tasks", DisplayName: "Tasks", Type: models.FolderTypeTasks})

	c, err := New(Config{
		Delimiter: "/",
		Backends: []Entry{
			{Tag: "mail", Backend: open},
			{Tag: "gtd", Backend: restricted, Users: []string{"alice"}},
		},
	}, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, c.Logon(ctx, backend.Credentials{Username: "bob"}))

	list, err := c.GetFolderList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mail/inbox", list[0].ID)
}

// Per-entry credentials replace the device credentials for that backend's
// logon.
func TestLogon_CredentialRemap(t *testing.T) {
	ctx := context.Background()

	service := backend.Credentials{Username: "svc", Password: "secret"}
	b := memory.New().WithCredentials(service)

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "crm", Backend: b, Credentials: &service}},
	}, logger.Nop())
	require.NoError(t, err)

	// Device credentials would fail against the store; the remap succeeds.
	assert.NoError(t, c.Logon(ctx, backend.Credentials{Username: "bob", Password: "pw"}))
}

// One failing backend aborts the composite logon and logs off the
// backends already logged on.
func TestLogon_FailFastWithRollback(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	first := mock.NewMockBackend(ctrl)
	second := mock.NewMockBackend(ctrl)

	gomock.InOrder(
		first.EXPECT().Logon(ctx, gomock.Any()).Return(nil),
		second.EXPECT().Logon(ctx, gomock.Any()).Return(assert.AnError),
		first.EXPECT().Logoff(ctx).Return(nil),
	)

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "a", Backend: first}, {Tag: "b", Backend: second}},
	}, logger.Nop())
	require.NoError(t, err)

	err = c.Logon(ctx, backend.Credentials{Username: "bob"})
	assert.ErrorIs(t, err, assert.AnError)
}

// A configured subfolder name nests the backend's tree under a
// synthesized root whose mod token is the display name.
func TestGetFolderList_SubfolderNesting(t *testing.T) {
	ctx := context.Background()

	b := memory.New()
	b.AddFolder(models.SyncFolder{ServerID: "inbox", DisplayName: "Inbox", Type: models.FolderTypeInbox})

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "imap", Backend: b, SubfolderName: "Mail"}},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	list, err := c.GetFolderList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	root := list[0]
	assert.Equal(t, "imap/0", root.ID)
	assert.Equal(t, "Mail", root.Mod)
	assert.Equal(t, "0", root.ParentID)

	nested := list[1]
	assert.Equal(t, "imap/inbox", nested.ID)
	assert.Equal(t, "imap/0", nested.ParentID)
}

func TestGetFolder_VirtualRoot(t *testing.T) {
	ctx := context.Background()

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "imap", Backend: memory.New(), SubfolderName: "Mail"}},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	folder, err := c.GetFolder(ctx, "imap/0")
	require.NoError(t, err)
	assert.Equal(t, "imap/0", folder.ServerID)
	assert.Equal(t, "Mail", folder.DisplayName)
	assert.Equal(t, models.FolderTypeOther, folder.Type)
}

// Default folder types survive only from their configured authority; the
// same type from any other backend is coerced to "other".
func TestGetFolder_TypeAuthorityCoercion(t *testing.T) {
	ctx := context.Background()

	mail := memory.New()
	mail.AddFolder(models.SyncFolder{ServerID: "in", DisplayName: "Inbox", Type: models.FolderTypeInbox})
	archive := memory.New()
	archive.AddFolder(models.SyncFolder{ServerID: "in", DisplayName: "Old Inbox", Type: models.FolderTypeInbox})

	c, err := New(Config{
		Delimiter: "/",
		Backends: []Entry{
			{Tag: "mail", Backend: mail},
			{Tag: "arch", Backend: archive},
		},
		TypeAuthority: map[models.FolderType]string{models.FolderTypeInbox: "mail"},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	kept, err := c.GetFolder(ctx, "mail/in")
	require.NoError(t, err)
	assert.Equal(t, models.FolderTypeInbox, kept.Type)

	coerced, err := c.GetFolder(ctx, "arch/in")
	require.NoError(t, err)
	assert.Equal(t, models.FolderTypeOther, coerced.Type)
}

func TestChangeFolder_TypeNotAllowed(t *testing.T) {
	ctx := context.Background()

	c, err := New(Config{
		Delimiter:     "/",
		Backends:      []Entry{{Tag: "arch", Backend: memory.New()}},
		TypeAuthority: map[models.FolderType]string{models.FolderTypeInbox: "mail"},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	_, err = c.ChangeFolder(ctx, "arch/0", "", "Fake Inbox", models.FolderTypeInbox)
	assert.ErrorIs(t, err, ErrFolderTypeNotAllowed)
}

func TestChangeFolder_CrossBackendParent(t *testing.T) {
	ctx := context.Background()

	a := memory.New()
	a.AddFolder(models.SyncFolder{ServerID: "root-a", DisplayName: "A"})
	b := memory.New()
	b.AddFolder(models.SyncFolder{ServerID: "root-b", DisplayName: "B"})

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "a", Backend: a}, {Tag: "b", Backend: b}},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	_, err = c.ChangeFolder(ctx, "b/root-b", "a/root-a", "Moved", models.FolderTypeOther)
	assert.ErrorIs(t, err, ErrCrossBackendMove)
}

func TestDeleteFolder_VirtualRootRejected(t *testing.T) {
	ctx := context.Background()

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "imap", Backend: memory.New(), SubfolderName: "Mail"}},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	err = c.DeleteFolder(ctx, "0", "imap/0")
	assert.ErrorIs(t, err, backend.ErrNotSupported)
}

// Message ids stay native; only folder ids carry the tag prefix.
func TestMessageOps_Routing(t *testing.T) {
	ctx := context.Background()

	b := memory.New()
	folderID := b.AddFolder(models.SyncFolder{ServerID: "inbox", DisplayName: "Inbox", Type: models.FolderTypeInbox})
	stat := b.AddMessage(folderID, models.SyncMessage{Subject: "hello"})

	c, err := New(Config{Delimiter: "/", Backends: []Entry{{Tag: "imap", Backend: b}}}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	list, err := c.GetMessageList(ctx, "imap/inbox", time.Time{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, stat.ID, list[0].ID)

	message, err := c.GetMessage(ctx, "imap/inbox", stat.ID, backend.ContentParams{})
	require.NoError(t, err)
	assert.Equal(t, "hello", message.Subject)
	assert.Equal(t, "imap/inbox", message.FolderID)

	got, ok, err := c.StatMessage(ctx, "imap/inbox", stat.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, stat.ID, got.ID)
}

// A cross-backend move is rejected before any backend call is made.
func TestMoveMessage_CrossBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	// Mocks with no expectations: any call fails the test.
	a := mock.NewMockBackend(ctrl)
	b := mock.NewMockBackend(ctrl)
	a.EXPECT().Logon(ctx, gomock.Any()).Return(nil)
	b.EXPECT().Logon(ctx, gomock.Any()).Return(nil)

	c, err := New(Config{
		Delimiter: "/",
		Backends:  []Entry{{Tag: "a", Backend: a}, {Tag: "b", Backend: b}},
	}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	_, err = c.MoveMessage(ctx, "a/inbox", "m1", "b/archive")
	assert.ErrorIs(t, err, ErrCrossBackendMove)
}

func TestMoveMessage_SameBackend(t *testing.T) {
	ctx := context.Background()

	b := memory.New()
	src := b.AddFolder(models.SyncFolder{ServerID: "inbox", DisplayName: "Inbox"})
	dst := b.AddFolder(models.SyncFolder{ServerID: "archive", DisplayName: "Archive"})
	stat := b.AddMessage(src, models.SyncMessage{Subject: "keep"})

	c, err := New(Config{Delimiter: "/", Backends: []Entry{{Tag: "imap", Backend: b}}}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	newID, err := c.MoveMessage(ctx, "imap/inbox", stat.ID, "imap/archive")
	require.NoError(t, err)
	require.NotEmpty(t, newID)

	_, ok, err := c.StatMessage(ctx, "imap/"+dst, newID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRoute_MalformedID(t *testing.T) {
	ctx := context.Background()

	c, err := New(Config{Delimiter: "/", Backends: []Entry{{Tag: "imap", Backend: memory.New()}}}, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Logon(ctx, backend.Credentials{}))

	_, err = c.GetMessageList(ctx, "no-delimiter-here", time.Time{})
	assert.ErrorIs(t, err, ErrMalformedID)

	_, err = c.GetFolder(ctx, "ghost/inbox")
	assert.ErrorIs(t, err, ErrMalformedID)
}
