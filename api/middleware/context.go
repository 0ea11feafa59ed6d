package middleware

import (
	"context"

	"github.com/trendora-io/storefront-backend/pkg/identity"
)

type contextKey string

const (
	ctxUser      contextKey = "user"
	ctxSessionID contextKey = "session_id"
)

// UserFromContext returns the authenticated user, falling back to guest when
// the auth middleware never ran.
func UserFromContext(ctx context.Context) identity.User {
	if ctx == nil {
		return identity.Guest()
	}
	if v, ok := ctx.Value(ctxUser).(identity.User); ok {
		return v
	}
	return identity.Guest()
}

// SessionIDFromContext returns the storefront session id assigned by Session.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// WithUser injects the resolved user into the context.
func WithUser(ctx context.Context, user identity.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUser, user)
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}
