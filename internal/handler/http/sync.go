// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/engine"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/store"
	"github.com/mobilegw/go-sync-gateway/internal/utils"
	"github.com/mobilegw/go-sync-gateway/models"
)

// openBackend builds the request-owned composite backend, performs the
// logon chain and returns a teardown that must run after the response has
// been fully serialized (adapters may still log during teardown).
func (h *Handler) openBackend(r *http.Request) (backend.Backend, func(), error) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	creds, ok := utils.GetCredentialsFromContext(ctx)
	if !ok {
		return nil, nil, errMissingSession
	}
	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		return nil, nil, errMissingSession
	}

	b, err := h.newBackend(ctx)
	if err != nil {
		return nil, nil, err
	}

	if err := b.Logon(ctx, creds); err != nil {
		return nil, nil, err
	}
	if err := b.Setup(ctx, session); err != nil {
		_ = b.Logoff(ctx)
		return nil, nil, err
	}

	teardown := func() {
		if err := b.Logoff(ctx); err != nil {
			log.Warn().Err(err).Msg("backend logoff failed")
		}
	}

	return b, teardown, nil
}

// loadState fetches the prior state blob. A missing row at counter 0 is a
// first sync and yields an empty blob.
func (h *Handler) loadState(r *http.Request, scopeType models.ScopeType, key string, counter int) ([]byte, error) {
	session, _ := utils.GetSessionFromContext(r.Context())

	blob, err := h.states.GetState(r.Context(), session.DeviceID, scopeType, key, counter)
	if errors.Is(err, store.ErrStateNotFound) && counter == 0 {
		return nil, nil
	}
	return blob, err
}

// folderParam extracts the folder id path parameter. Composite folder ids
// contain the backend delimiter, so clients send them percent-encoded.
func folderParam(r *http.Request) string {
	raw := chi.URLParam(r, "folderID")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func (h *Handler) syncFolder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	folderID := folderParam(r)

	var request models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid sync request body")
		http.Error(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	b, teardown, err := h.openBackend(r)
	if err != nil {
		log.Err(err).Msg("error opening backend")
		http.Error(w, "error opening backend", statusFromError(err))
		return
	}
	defer teardown()

	priorState, err := h.loadState(r, models.ScopeContent, folderID, request.Counter)
	if err != nil {
		log.Err(err).Str("folder", folderID).Msg("error loading sync state")
		http.Error(w, "error loading sync state", statusFromError(err))
		return
	}

	// Device → server direction first: apply the client's operations.
	importer := engine.NewImporter(b, log)
	if err := importer.Config(priorState, folderID, h.syncCfg.Policy()); err != nil {
		log.Err(err).Msg("error configuring importer")
		http.Error(w, "error configuring importer", statusFromError(err))
		return
	}

	results, err := applyClientChanges(ctx, importer, request.ClientChanges)
	if err != nil {
		log.Err(err).Str("folder", folderID).Msg("error applying client changes")
		http.Error(w, "error applying client changes", statusFromError(err))
		return
	}

	importedState, err := importer.GetState()
	if err != nil {
		http.Error(w, "error reading importer state", statusFromError(err))
		return
	}

	// Server → device direction: diff against the advanced state so the
	// client's own operations are not echoed back.
	opts := engine.ExportOptions{
		CutoffDays:  h.syncCfg.CutoffDays,
		DiscardData: request.DiscardData,
		Content:     backend.ContentParams{TruncationSize: h.syncCfg.TruncationSize},
	}
	if request.CutoffDays != nil {
		opts.CutoffDays = *request.CutoffDays
	}
	if request.TruncationSize != nil {
		opts.Content.TruncationSize = *request.TruncationSize
	}

	sink := new(jsonContentSink)
	exporter := engine.NewExporter(b, log)
	if err := exporter.ConfigContent(ctx, sink, folderID, importedState, opts); err != nil {
		log.Err(err).Msg("error configuring exporter")
		http.Error(w, "error configuring exporter", statusFromError(err))
		return
	}

	progress, err := drain(ctx, exporter)
	if err != nil {
		log.Err(err).Str("folder", folderID).Msg("error exporting changes")
		http.Error(w, "error exporting changes", statusFromError(err))
		return
	}

	newState, err := exporter.GetState()
	if err != nil {
		http.Error(w, "error serializing sync state", statusFromError(err))
		return
	}

	session, _ := utils.GetSessionFromContext(ctx)
	nextCounter := request.Counter + 1
	if err := h.states.SetState(ctx, session.DeviceID, models.ScopeContent, folderID, nextCounter, newState); err != nil {
		log.Err(err).Msg("error persisting sync state")
		http.Error(w, "error persisting sync state", statusFromError(err))
		return
	}

	response := models.SyncResponse{
		Counter:       nextCounter,
		Progress:      progress,
		Results:       results,
		ServerChanges: sink.changes,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// applyClientChanges feeds each device operation into the importer,
// recording the authoritative ids for adds and moves.
func applyClientChanges(ctx context.Context, importer *engine.Importer, changes []models.ClientChange) ([]models.ChangeResult, error) {
	var results []models.ChangeResult

	for _, change := range changes {
		switch change.Type {
		case models.ChangeTypeChange:
			var message models.SyncMessage
			if change.Message != nil {
				message = *change.Message
			}
			serverID, err := importer.ImportMessageChange(ctx, change.ID, message)
			if err != nil {
				return nil, err
			}
			results = append(results, models.ChangeResult{ClientID: change.ID, ServerID: serverID})

		case models.ChangeTypeDelete:
			if err := importer.ImportMessageDeletion(ctx, change.ID); err != nil {
				return nil, err
			}

		case models.ChangeTypeFlags:
			flags := 0
			if change.Flags != nil {
				flags = *change.Flags
			}
			if err := importer.ImportMessageReadFlag(ctx, change.ID, flags); err != nil {
				return nil, err
			}

		case models.ChangeTypeMove:
			newID, err := importer.ImportMessageMove(ctx, change.ID, change.NewFolderID)
			if err != nil {
				return nil, err
			}
			results = append(results, models.ChangeResult{ClientID: change.ID, ServerID: newID})
		}
	}

	return results, nil
}

// drain runs Synchronize steps until the change-set is exhausted.
func drain(ctx context.Context, exporter *engine.Exporter) (models.SyncProgress, error) {
	for {
		progress, more, err := exporter.Synchronize(ctx)
		if err != nil {
			return progress, err
		}
		if !more {
			return progress, nil
		}
	}
}

func (h *Handler) resetFolderState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	folderID := folderParam(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	if err := h.states.DeleteState(ctx, session.DeviceID, models.ScopeContent, folderID); err != nil {
		log.Err(err).Str("folder", folderID).Msg("error resetting sync state")
		http.Error(w, "error resetting sync state", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
