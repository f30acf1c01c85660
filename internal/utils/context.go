// Package utils provides small helpers shared across the gateway:
// type-safe context keys for the device session and JSON response writing.
package utils

import (
	"context"

	"github.com/mobilegw/go-sync-gateway/internal/backend"
)

// contextKey is a private type for context keys; a dedicated type prevents
// collisions with string-based keys from other packages.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// SessionCtxKey is the key under which the authenticated device session is
// stored in the request context.
var SessionCtxKey = contextKey("session")

// SessionToContext attaches the device session to ctx.
func SessionToContext(ctx context.Context, session backend.Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

// GetSessionFromContext retrieves the device session from the context.
// ok is false when no session was attached (unauthenticated request)
// or the stored value has an unexpected type.
func GetSessionFromContext(ctx context.Context) (backend.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(backend.Session)
	return session, ok
}

// CredentialsCtxKey is the key under which the device credentials are
// stored in the request context. Kept separate from the session so the
// password never travels further than the backend logon.
var CredentialsCtxKey = contextKey("credentials")

// CredentialsToContext attaches the device credentials to ctx.
func CredentialsToContext(ctx context.Context, creds backend.Credentials) context.Context {
	return context.WithValue(ctx, CredentialsCtxKey, creds)
}

// GetCredentialsFromContext retrieves the device credentials from the
// context.
func GetCredentialsFromContext(ctx context.Context) (backend.Credentials, bool) {
	creds, ok := ctx.Value(CredentialsCtxKey).(backend.Credentials)
	return creds, ok
}
