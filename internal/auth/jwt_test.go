package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmolv/kittysplit/internal/models"
)

func TestJWTRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTRejectsTamperedToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	token, err := manager.Generate(&models.User{ID: "user-1", Email: "a@x.io"})
	require.NoError(t, err)

	_, err = manager.Validate(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTManager("different-secret", time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)
	token, err := manager.Generate(&models.User{ID: "user-1", Email: "a@x.io"})
	require.NoError(t, err)

	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateCredential(t *testing.T) {
	a := NewPasswordAuthenticator(nil)
	assert.ErrorIs(t, a.ValidateCredential("short"), ErrWeakPassword)
	assert.NoError(t, a.ValidateCredential("long enough password"))
}
