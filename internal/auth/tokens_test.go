package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/internal/custom_errors"
	"blog-service/internal/model"
)

func TestTokenManager_GenerateAndVerify(t *testing.T) {
	manager := NewTokenManager("unit-test-secret", time.Hour)

	user := &model.User{ID: 42, Email: "alice@x.com"}
	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestTokenManager_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, err := issuer.Generate(&model.User{ID: 1, Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
}

func TestTokenManager_VerifyRejectsExpired(t *testing.T) {
	manager := NewTokenManager("unit-test-secret", -time.Minute)

	token, err := manager.Generate(&model.User{ID: 1, Email: "alice@x.com"})
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
}

func TestTokenManager_VerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("unit-test-secret", time.Hour)

	_, err := manager.Verify("not-a-token")
	assert.ErrorIs(t, err, custom_errors.ErrInvalidToken)
}
