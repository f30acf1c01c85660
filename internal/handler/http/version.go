package http

import (
	"net/http"

	"github.com/mobilegw/go-sync-gateway/internal/utils"
	"github.com/mobilegw/go-sync-gateway/models"
)

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) getVersion(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.VersionResponse{Version: h.version}, http.StatusOK)
}
