// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
	"github.com/mobilegw/go-sync-gateway/internal/utils"
)

func TestWithSession_CredentialParsing(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		wantUser   string
		wantDomain string
	}{
		{
			name:       "bare username → no domain",
			username:   "bob",
			wantUser:   "bob",
			wantDomain: "",
		},
		{
			name:       "user@domain → domain split off",
			username:   "bob@example.org",
			wantUser:   "bob",
			wantDomain: "example.org",
		},
		{
			name:       "multiple separators → domain after the last",
			username:   "bob@corp@example.org",
			wantUser:   "bob@corp",
			wantDomain: "example.org",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{}

			var gotSession backend.Session
			var gotCreds backend.Credentials
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				var ok bool
				gotSession, ok = utils.GetSessionFromContext(r.Context())
				require.True(t, ok)
				gotCreds, ok = utils.GetCredentialsFromContext(r.Context())
				require.True(t, ok)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/ping", nil)
			req.SetBasicAuth(tt.username, "secret")
			req.Header.Set(deviceIDHeader, "device-1")

			rec := httptest.NewRecorder()
			h.withSession(next).ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			assert.Equal(t, tt.wantUser, gotSession.User)
			assert.Equal(t, "device-1", gotSession.DeviceID)
			assert.Equal(t, tt.wantUser, gotCreds.Username)
			assert.Equal(t, tt.wantDomain, gotCreds.Domain)
			assert.Equal(t, "secret", gotCreds.Password)
		})
	}
}
