package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/repository/memory"
)

func TestUserService_CreateUser_Success(t *testing.T) {
	ctx := context.Background()
	userRepo := memory.NewUserRepository()
	service := NewUserService(userRepo)

	resp, err := service.CreateUser(ctx, user.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, user.RoleEmployee, resp.Role, "role defaults to employee")

	// The stored hash must verify against the original password.
	stored, err := userRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(memory.NewUserRepository())

	req := user.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}

	_, err := service.CreateUser(ctx, req)
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, req)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestUserService_CreateUser_ShortPassword(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(memory.NewUserRepository())

	_, err := service.CreateUser(ctx, user.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "short",
	})

	assert.Error(t, err)
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()
	service := NewUserService(memory.NewUserRepository())

	for _, name := range []string{"alice", "bob"} {
		_, err := service.CreateUser(ctx, user.CreateUserRequest{
			Username: name,
			Email:    name + "@example.com",
			Password: "password123",
			Role:     user.RoleAdmin,
		})
		require.NoError(t, err)
	}

	users, err := service.ListUsers(ctx)

	require.NoError(t, err)
	assert.Len(t, users, 2)
}
