// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/return0ok/e-market/internal/config"
	"github.com/return0ok/e-market/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:       "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AccountTypeBuyer, user.AccountType)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)

	resp, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	req := &RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cretpass",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLoginRejectsBadCredentialsUniformly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)

	_, wrongPass := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "wrong"})
	_, unknownUser := svc.Login(&LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.Error(t, wrongPass)
	require.Error(t, unknownUser)
	// Identical message either way, so the response never reveals
	// whether the account exists.
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	user, err := svc.Register(&RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("is_active", false).Error)

	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	assert.Error(t, err)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	_, err := svc.Register(&RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "s3cretpass",
	})
	require.NoError(t, err)

	login, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)

	_, err = svc.Refresh("not-a-token")
	assert.Error(t, err)
}
