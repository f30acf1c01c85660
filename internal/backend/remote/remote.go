// SPDX-License-Identifier: Apache-2.0

// Package remote provides a backend adapter over a remote groupware
// server's JSON API (the gateway-side companion of CardDAV/IMAP bridge
// services that expose folder and message resources over HTTP). Transport
// errors and non-2xx statuses surface as adapter errors; a 404 on a
// message stat maps to "absent", which is a regular sync outcome, not a
// failure.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/models"
)

// ErrUnauthorized is returned when the remote server rejects the logon.
var ErrUnauthorized = errors.New("remote backend: unauthorized")

func init() {
	backend.Register("remote", func(cfg backend.Config) (backend.Backend, error) {
		return New(Config{BaseURL: cfg.DSN, Timeout: cfg.Timeout}), nil
	})
}

// Config holds the remote endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Backend is a remote-API adapter instance.
type Backend struct {
	client *resty.Client
}

// New constructs an adapter against cfg.BaseURL.
func New(cfg Config) *Backend {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &Backend{client: cli}
}

type loginRequest struct {
	Username string `json:"username"`
	Domain   string `json:"domain,omitempty"`
	Password string `json:"password"`
}

// Logon implements backend.Backend. On success the credentials stay
// attached to the client as basic auth for the rest of the session.
func (b *Backend) Logon(ctx context.Context, creds backend.Credentials) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(loginRequest{Username: creds.Username, Domain: creds.Domain, Password: creds.Password}).
		Post("/api/login")
	if err != nil {
		return fmt.Errorf("remote backend: login: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.IsError() {
		return fmt.Errorf("remote backend: login: status %d", resp.StatusCode())
	}

	b.client.SetBasicAuth(creds.Username, creds.Password)
	return nil
}

// Setup implements backend.Backend; the device id travels as a header so
// the remote side can scope per-device throttling.
func (b *Backend) Setup(_ context.Context, session backend.Session) error {
	b.client.SetHeader("X-Device-ID", session.DeviceID)
	return nil
}

// Logoff implements backend.Backend.
func (b *Backend) Logoff(ctx context.Context) error {
	resp, err := b.client.R().SetContext(ctx).Post("/api/logout")
	if err != nil {
		return fmt.Errorf("remote backend: logout: %w", err)
	}
	if resp.IsError() && resp.StatusCode() != http.StatusNotFound {
		return fmt.Errorf("remote backend: logout: status %d", resp.StatusCode())
	}
	return nil
}

// GetFolderList implements backend.Backend.
func (b *Backend) GetFolderList(ctx context.Context) ([]models.StatEntry, error) {
	var list []models.StatEntry
	resp, err := b.client.R().SetContext(ctx).SetResult(&list).Get("/api/folders")
	if err := checkResponse(resp, err, "folder list"); err != nil {
		return nil, err
	}
	return list, nil
}

// GetFolder implements backend.Backend.
func (b *Backend) GetFolder(ctx context.Context, id string) (models.SyncFolder, error) {
	var folder models.SyncFolder
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&folder).
		Get("/api/folders/{id}")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return models.SyncFolder{}, backend.ErrNotFound
	}
	if err := checkResponse(resp, err, "get folder"); err != nil {
		return models.SyncFolder{}, err
	}
	return folder, nil
}

// StatFolder implements backend.Backend.
func (b *Backend) StatFolder(ctx context.Context, id string) (models.StatEntry, error) {
	var stat models.StatEntry
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&stat).
		Get("/api/folders/{id}/stat")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return models.StatEntry{}, backend.ErrNotFound
	}
	if err := checkResponse(resp, err, "stat folder"); err != nil {
		return models.StatEntry{}, err
	}
	return stat, nil
}

type changeFolderRequest struct {
	Parent string `json:"parent"`
	OldID  string `json:"oldid,omitempty"`
	Name   string `json:"name"`
	Type   int    `json:"type"`
}

// ChangeFolder implements backend.Backend.
func (b *Backend) ChangeFolder(ctx context.Context, parentID, oldID, displayName string, folderType models.FolderType) (models.StatEntry, error) {
	var stat models.StatEntry
	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(changeFolderRequest{Parent: parentID, OldID: oldID, Name: displayName, Type: int(folderType)}).
		SetResult(&stat).
		Put("/api/folders")
	if err := checkResponse(resp, err, "change folder"); err != nil {
		return models.StatEntry{}, err
	}
	return stat, nil
}

// DeleteFolder implements backend.Backend.
func (b *Backend) DeleteFolder(ctx context.Context, parentID, id string) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetQueryParam("parent", parentID).
		Delete("/api/folders/{id}")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return backend.ErrNotFound
	}
	return checkResponse(resp, err, "delete folder")
}

// GetMessageList implements backend.Backend.
func (b *Backend) GetMessageList(ctx context.Context, folderID string, cutoff time.Time) ([]models.StatEntry, error) {
	req := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID)
	if !cutoff.IsZero() {
		req.SetQueryParam("cutoff", cutoff.UTC().Format(time.RFC3339))
	}

	var list []models.StatEntry
	resp, err := req.SetResult(&list).Get("/api/folders/{folder}/messages")
	if err := checkResponse(resp, err, "message list"); err != nil {
		return nil, err
	}
	return list, nil
}

// GetMessage implements backend.Backend.
func (b *Backend) GetMessage(ctx context.Context, folderID, id string, params backend.ContentParams) (models.SyncMessage, error) {
	var message models.SyncMessage
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID).
		SetPathParam("id", id).
		SetQueryParam("truncate", strconv.Itoa(params.TruncationSize)).
		SetQueryParam("mime", strconv.Itoa(params.MIMESupport)).
		SetResult(&message).
		Get("/api/folders/{folder}/messages/{id}")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return models.SyncMessage{}, backend.ErrNotFound
	}
	if err := checkResponse(resp, err, "get message"); err != nil {
		return models.SyncMessage{}, err
	}
	return message, nil
}

// StatMessage implements backend.Backend; a 404 means the item is gone,
// which is a regular outcome.
func (b *Backend) StatMessage(ctx context.Context, folderID, id string) (models.StatEntry, bool, error) {
	var stat models.StatEntry
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID).
		SetPathParam("id", id).
		SetResult(&stat).
		Get("/api/folders/{folder}/messages/{id}/stat")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return models.StatEntry{}, false, nil
	}
	if err := checkResponse(resp, err, "stat message"); err != nil {
		return models.StatEntry{}, false, err
	}
	return stat, true, nil
}

// ChangeMessage implements backend.Backend.
func (b *Backend) ChangeMessage(ctx context.Context, folderID, id string, message models.SyncMessage) (models.StatEntry, error) {
	var stat models.StatEntry
	req := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID).
		SetBody(message).
		SetResult(&stat)

	var resp *resty.Response
	var err error
	if id == "" {
		resp, err = req.Post("/api/folders/{folder}/messages")
	} else {
		resp, err = req.SetPathParam("id", id).Put("/api/folders/{folder}/messages/{id}")
	}
	if err := checkResponse(resp, err, "change message"); err != nil {
		return models.StatEntry{}, err
	}
	return stat, nil
}

// SetReadFlag implements backend.Backend.
func (b *Backend) SetReadFlag(ctx context.Context, folderID, id string, flags int) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID).
		SetPathParam("id", id).
		SetBody(map[string]int{"flags": flags}).
		Post("/api/folders/{folder}/messages/{id}/flags")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return backend.ErrNotFound
	}
	return checkResponse(resp, err, "set read flag")
}

// DeleteMessage implements backend.Backend.
func (b *Backend) DeleteMessage(ctx context.Context, folderID, id string) error {
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID).
		SetPathParam("id", id).
		Delete("/api/folders/{folder}/messages/{id}")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return backend.ErrNotFound
	}
	return checkResponse(resp, err, "delete message")
}

type moveResponse struct {
	ID string `json:"id"`
}

// MoveMessage implements backend.Backend.
func (b *Backend) MoveMessage(ctx context.Context, folderID, id, newFolderID string) (string, error) {
	var moved moveResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("folder", folderID).
		SetPathParam("id", id).
		SetBody(map[string]string{"newfolder": newFolderID}).
		SetResult(&moved).
		Post("/api/folders/{folder}/messages/{id}/move")
	if resp != nil && resp.StatusCode() == http.StatusNotFound {
		return "", backend.ErrNotFound
	}
	if err := checkResponse(resp, err, "move message"); err != nil {
		return "", err
	}
	return moved.ID, nil
}

// AlterPing implements backend.Backend; the remote API offers no cheap
// probe, so polls fall back to a snapshot diff.
func (b *Backend) AlterPing() bool { return false }

// AlterPingChanges implements backend.Backend.
func (b *Backend) AlterPingChanges(context.Context, string, *models.SyncState) ([]models.Change, error) {
	return nil, backend.ErrNotSupported
}

func checkResponse(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("remote backend: %s: %w", op, err)
	}
	if resp.IsError() {
		return fmt.Errorf("remote backend: %s: status %d", op, resp.StatusCode())
	}
	return nil
}
