package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salesdeskhq/salesdesk-backend/pkg/db"
	"github.com/salesdeskhq/salesdesk-backend/pkg/db/models"
	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
)

// Repository owns user-account persistence.
type Repository struct {
	db *db.Client
}

func NewRepository(client *db.Client) *Repository {
	return &Repository{db: client}
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.DB().WithContext(ctx).Create(user).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "an account with this email already exists")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}
	return nil
}

// FindByEmail returns the user for a (case-insensitive) email, or nil when no
// account exists. The caller decides what absence means; login must not leak
// it.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.DB().WithContext(ctx).
		First(&user, "LOWER(email) = ?", strings.ToLower(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching user by email")
	}
	return &user, nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.DB().WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "fetching user")
	}
	return &user, nil
}
