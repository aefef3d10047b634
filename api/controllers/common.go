package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/middleware"
	"github.com/salesdeskhq/salesdesk-backend/pkg/authz"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
)

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "id must be a valid uuid").
			WithDetails(map[string]any{"field": "id"})
	}
	return id, nil
}

// requireActor pulls the authenticated caller out of the request context. The
// auth middleware guarantees its presence on protected routes; a miss here
// means a wiring bug, surfaced as 401 rather than a panic.
func requireActor(r *http.Request) (authz.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return authz.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return actor, nil
}
