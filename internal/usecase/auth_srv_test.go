package usecase

import (
	"context"
	"testing"
	"time"

	"cinemax/internal/data/entity"
	"cinemax/internal/dto/request"
	"cinemax/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	clock := newTestClock(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	store := newMemStore()
	repo := store.repository()
	config := testConfig()

	svc := NewAuthService(repo, config, zap.NewNop(), clock.Now)

	signup := &request.SignupRequest{
		Username: "moviegoer",
		Email:    "fan@example.com",
		Password: "secret123",
	}

	auth, err := svc.Signup(ctx, signup)
	require.NoError(t, err)
	assert.NotEmpty(t, auth.Token)
	assert.Equal(t, entity.RoleUser, auth.Role)

	claims, err := utils.ParseAccessToken(config.JWT.Secret, auth.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.UserID, claims.UserID.String())
	assert.Equal(t, "user", claims.Role)

	t.Run("password is stored hashed", func(t *testing.T) {
		user, err := repo.User.FindByEmail(ctx, signup.Email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEqual(t, signup.Password, user.PasswordHash)
	})

	t.Run("timestamps come from the injected clock", func(t *testing.T) {
		user, err := repo.User.FindByEmail(ctx, signup.Email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, clock.Now(), user.CreatedAt)
		assert.Equal(t, clock.Now(), user.UpdatedAt)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Signup(ctx, &request.SignupRequest{
			Username: "other",
			Email:    signup.Email,
			Password: "secret123",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("login succeeds with correct credentials", func(t *testing.T) {
		got, err := svc.Login(ctx, &request.LoginRequest{
			Email:    signup.Email,
			Password: signup.Password,
		})
		require.NoError(t, err)
		assert.Equal(t, auth.UserID, got.UserID)
	})

	t.Run("login fails with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.LoginRequest{
			Email:    signup.Email,
			Password: "wrong-pass",
		})
		require.EqualError(t, err, "invalid email or password")
	})

	t.Run("login fails for unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &request.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		require.EqualError(t, err, "invalid email or password")
	})
}
