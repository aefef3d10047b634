package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
)

// TokenPayload captures the data available when minting a JWT.
type TokenPayload struct {
	UserID     uuid.UUID
	Role       enums.Role
	EmployeeID *uuid.UUID
}

// Claims represents the typed JWT issued to clients.
type Claims struct {
	UserID     uuid.UUID  `json:"user_id"`
	Role       enums.Role `json:"role"`
	EmployeeID *uuid.UUID `json:"employee_id,omitempty"`
	jwt.RegisteredClaims
}
