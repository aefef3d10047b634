package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/api/middleware"
	"github.com/salesdeskhq/salesdesk-backend/api/responses"
	"github.com/salesdeskhq/salesdesk-backend/api/validators"
	"github.com/salesdeskhq/salesdesk-backend/internal/identity"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
)

type identityService interface {
	Register(ctx context.Context, input identity.RegisterInput) (*identity.Session, error)
	Login(ctx context.Context, input identity.LoginInput) (*identity.Session, error)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// UsersController exposes registration, login and the current-user endpoint.
type UsersController struct {
	service identityService
	logg    *logger.Logger
}

func NewUsersController(service identityService, logg *logger.Logger) *UsersController {
	return &UsersController{service: service, logg: logg}
}

func (c *UsersController) Register(w http.ResponseWriter, r *http.Request) {
	var input identity.RegisterInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	session, err := c.service.Register(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, http.StatusCreated, session)
}

func (c *UsersController) Login(w http.ResponseWriter, r *http.Request) {
	var input identity.LoginInput
	if err := validators.DecodeJSONBody(r, &input); err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}

	session, err := c.service.Login(r.Context(), input)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, session)
}

func (c *UsersController) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		responses.WriteError(r.Context(), c.logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		return
	}

	user, err := c.service.Me(r.Context(), userID)
	if err != nil {
		responses.WriteError(r.Context(), c.logg, w, err)
		return
	}
	responses.WriteSuccess(w, user)
}
