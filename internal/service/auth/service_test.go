package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/auth"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/jwt"
	"github.com/teamtracker/teamtracker-backend-go/internal/repository/memory"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

func newAuthService(t *testing.T) (auth.Service, *memory.UserRepository) {
	t.Helper()

	userRepo := memory.NewUserRepository()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(userRepo, jwtService), userRepo
}

func createTestUser(t *testing.T, repo *memory.UserRepository, email, password string) user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := repo.Create(context.Background(), user.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         user.RoleEmployee,
	})
	require.NoError(t, err)
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthService(t)
	u := createTestUser(t, userRepo, "login@example.com", "password123")

	resp, err := service.Login(ctx, auth.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresAt, int64(0))
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthService(t)
	createTestUser(t, userRepo, "login@example.com", "password123")

	_, err := service.Login(ctx, auth.LoginRequest{
		Email:    "login@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	_, err := service.Login(ctx, auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthService(t)
	createTestUser(t, userRepo, "refresh@example.com", "password123")

	login, err := service.Login(ctx, auth.LoginRequest{
		Email:    "refresh@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := service.Refresh(ctx, login.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	service, userRepo := newAuthService(t)
	createTestUser(t, userRepo, "refresh@example.com", "password123")

	login, err := service.Login(ctx, auth.LoginRequest{
		Email:    "refresh@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	// An access token must not be usable as a refresh token.
	_, err = service.Refresh(ctx, login.AccessToken)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	ctx := context.Background()
	service, _ := newAuthService(t)

	_, err := service.Refresh(ctx, "not-a-jwt")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_SSEToken_RoundTrip(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	service := NewAuthService(userRepo, jwtService)

	resp, err := service.SSEToken(ctx, "user-1", user.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 60, resp.ExpiresIn)

	userID, role, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, user.RoleAdmin, role)
}
