// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"

	"github.com/mobilegw/go-sync-gateway/internal/engine"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/utils"
	"github.com/mobilegw/go-sync-gateway/models"
)

// hierarchyKey is the scope key of the single folder-hierarchy state per
// device.
const hierarchyKey = "0"

func (h *Handler) syncHierarchy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.FolderSyncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid folder sync request body")
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

	priorState, err := h.loadState(r, models.ScopeHierarchy, hierarchyKey, request.Counter)
	if err != nil {
		log.Err(err).Msg("error loading hierarchy state")
		http.Error(w, "error loading hierarchy state", statusFromError(err))
		return
	}

	sink := new(jsonHierarchySink)
	exporter := engine.NewExporter(b, log)
	if err := exporter.ConfigHierarchy(ctx, sink, priorState); err != nil {
		log.Err(err).Msg("error configuring hierarchy exporter")
		http.Error(w, "error configuring hierarchy exporter", statusFromError(err))
		return
	}

	progress, err := drain(ctx, exporter)
	if err != nil {
		log.Err(err).Msg("error exporting folder changes")
		http.Error(w, "error exporting folder changes", statusFromError(err))
		return
	}

	newState, err := exporter.GetState()
	if err != nil {
		http.Error(w, "error serializing hierarchy state", statusFromError(err))
		return
	}

	session, _ := utils.GetSessionFromContext(ctx)
	nextCounter := request.Counter + 1
	if err := h.states.SetState(ctx, session.DeviceID, models.ScopeHierarchy, hierarchyKey, nextCounter, newState); err != nil {
		log.Err(err).Msg("error persisting hierarchy state")
		http.Error(w, "error persisting hierarchy state", statusFromError(err))
		return
	}

	response := models.FolderSyncResponse{
		Counter:       nextCounter,
		Progress:      progress,
		ServerChanges: sink.changes,
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
