package user

import (
	"time"
)

// Roles
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
