package shared

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskforge/taskforge-api/internal/domain"
)

// ContextKey is the private type for request-context values set by this
// package and the API middleware.
type ContextKey string

const (
	// CurrentUserContextKey holds the *domain.User resolved from the
	// bearer token by the authentication middleware.
	CurrentUserContextKey ContextKey = "currentUser"

	// TraceIDKey holds the per-request trace ID.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID attaches a fresh trace ID to the context so logs and error
// responses for one request can be correlated.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID returns the trace ID from the context, or "" when none was
// set.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetCurrentUser attaches the authenticated user to the context.
func SetCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, CurrentUserContextKey, user)
}

// GetCurrentUser returns the authenticated user from the context. The
// boolean is false on routes the authentication middleware did not cover.
func GetCurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(CurrentUserContextKey).(*domain.User)
	return user, ok
}
