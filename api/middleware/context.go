package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
)

type contextKey string

const ctxActor contextKey = "actor"

// ActorFromContext returns the authenticated caller, or false when the
// request never passed the auth middleware.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	if ctx == nil {
		return authz.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(authz.Actor)
	return actor, ok
}

// WithActor injects the caller identity; tests use it to simulate auth.
func WithActor(ctx context.Context, actor authz.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}

// RoleFromContext returns the caller's role, or the empty string.
func RoleFromContext(ctx context.Context) enums.Role {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return ""
	}
	return actor.Role
}

// UserIDFromContext returns the caller's user id, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return uuid.Nil
	}
	return actor.UserID
}
