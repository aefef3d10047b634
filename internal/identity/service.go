// Package identity handles account registration, login and session tokens.
// Login failures are reported identically whether the email is unknown or the
// password is wrong, so the endpoint cannot be used to enumerate accounts.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/auth"
	"github.com/salesdeskhq/salesdesk-backend/pkg/config"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
	"github.com/salesdeskhq/salesdesk-backend/pkg/security"
)

// RegisterInput is the request body for a new account.
type RegisterInput struct {
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8,max=128"`
	Role       enums.Role `json:"role" validate:"required,oneof=admin employee customer"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
}

// LoginInput is the request body for authentication.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the login/register response.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type Service struct {
	repo        *Repository
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	now         func() time.Time
}

func NewService(repo *Repository, jwtCfg config.JWTConfig, passwordCfg config.PasswordConfig) *Service {
	return &Service{
		repo:        repo,
		jwtCfg:      jwtCfg,
		passwordCfg: passwordCfg,
		now:         time.Now,
	}
}

// Register creates the account and immediately issues a session token.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if input.Role == enums.RoleEmployee && input.EmployeeID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee accounts require an employee_id").
			WithDetails(map[string]any{"field": "employee_id"})
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		EmployeeID:   input.EmployeeID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.sessionFor(user)
}

// Login verifies credentials and mints a session token. Unknown email and bad
// password both produce the same generic error; the hash is still verified
// against a dummy on unknown accounts to keep timing comparable.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, err
	}

	if user == nil {
		_, _ = security.VerifyPassword(input.Password, dummyHash)
		return nil, invalidCredentials()
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, invalidCredentials()
	}

	return s.sessionFor(user)
}

// Me returns the account behind a verified token.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *Service) sessionFor(user *models.User) (*Session, error) {
	token, err := auth.MintToken(s.jwtCfg, s.now(), auth.TokenPayload{
		UserID:     user.ID,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting token")
	}
	return &Session{Token: token, User: user}, nil
}

func invalidCredentials() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}

// dummyHash burns the same argon2id work on unknown-email logins.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
