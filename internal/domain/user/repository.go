package user

import (
	"context"
)

// Repository defines data access for users. Users are owned by the
// persistence store; the attendance core only references them by id.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
}
