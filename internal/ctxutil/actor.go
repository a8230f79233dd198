// Package ctxutil carries caller identity and request correlation through service calls.
package ctxutil

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Anonymous is reported when no caller identified itself.
const Anonymous = "anonymous"

type actorKey struct{}

type requestIDKey struct{}

// WithActorID records who is issuing the request (a driver, requester or dispatcher ID).
func WithActorID(ctx context.Context, actorID string) context.Context {
	if actorID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the caller's ID, or Anonymous.
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return Anonymous
}

// WithRequestID attaches a correlation ID, usually the HTTP request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogFields returns the actor and request ID as log fields.
func LogFields(ctx context.Context) log.Fields {
	fields := log.Fields{"actor": ActorFromContext(ctx)}
	if id := RequestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}
	return fields
}
