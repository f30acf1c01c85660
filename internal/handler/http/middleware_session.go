package http

import (
	"net/http"
	"strings"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/logger"
	"github.com/mobilegw/go-sync-gateway/internal/utils"
)

const (
	deviceIDHeader        = "X-Device-ID"
	protocolVersionHeader = "X-Protocol-Version"
)

// withSession authenticates the request. Credentials arrive as HTTP basic
// auth (username optionally "user@domain"), the device id as a header.
// The middleware only assembles the session; the actual backend logon
// happens per request in the endpoint, because the composite backend is
// owned request-scoped.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		username, password, ok := r.BasicAuth()
		if !ok {
			log.Warn().Msg("request without credentials")
			w.Header().Set("WWW-Authenticate", `Basic realm="sync-gateway"`)
			http.Error(w, "credentials required", http.StatusUnauthorized)
			return
		}

		deviceID := r.Header.Get(deviceIDHeader)
		if deviceID == "" {
			log.Warn().Msg("request without device id")
			http.Error(w, "device id required", http.StatusBadRequest)
			return
		}

		user, domain := splitDomain(username)

		session := backend.Session{
			User:            user,
			DeviceID:        deviceID,
			ProtocolVersion: r.Header.Get(protocolVersionHeader),
		}

		ctx := utils.SessionToContext(r.Context(), session)
		ctx = utils.CredentialsToContext(ctx, backend.Credentials{
			Username: user,
			Domain:   domain,
			Password: password,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// splitDomain separates the "user@domain" logon convention; a username
// without "@" carries no domain.
func splitDomain(username string) (string, string) {
	if i := strings.LastIndex(username, "@"); i >= 0 {
		return username[:i], username[i+1:]
	}
	return username, ""
}
