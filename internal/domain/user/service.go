package user

import (
	"context"
)

// Service defines business logic for user management (admin)
type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
}
