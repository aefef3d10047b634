package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeskhq/salesdesk-backend/pkg/config"
	"github.com/salesdeskhq/salesdesk-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret: "test-secret",
		Issuer: "salesdesk",
		TTL:    time.Hour,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	cfg := testJWTConfig()
	employeeID := uuid.New()
	payload := TokenPayload{
		UserID:     uuid.New(),
		Role:       enums.RoleEmployee,
		EmployeeID: &employeeID,
	}

	token, err := MintToken(cfg, time.Now(), payload)
	require.NoError(t, err)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, payload.UserID, claims.UserID)
	assert.Equal(t, enums.RoleEmployee, claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, employeeID, *claims.EmployeeID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintToken(cfg, time.Now(), TokenPayload{UserID: uuid.New(), Role: enums.RoleAdmin})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different"
	_, err = ParseToken(other, token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintToken(cfg, time.Now().Add(-2*time.Hour), TokenPayload{UserID: uuid.New(), Role: enums.RoleAdmin})
	require.NoError(t, err)

	_, err = ParseToken(cfg, token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	minted := testJWTConfig()
	minted.Issuer = "someone-else"
	token, err := MintToken(minted, time.Now(), TokenPayload{UserID: uuid.New(), Role: enums.RoleAdmin})
	require.NoError(t, err)

	_, err = ParseToken(testJWTConfig(), token)
	assert.Error(t, err)
}

func TestMintRejectsInvalidRole(t *testing.T) {
	_, err := MintToken(testJWTConfig(), time.Now(), TokenPayload{UserID: uuid.New(), Role: "superuser"})
	assert.Error(t, err)
}
