package shift

import (
	"context"
)

// Repository defines data access for shift assignments. The attendance core
// re-fetches shifts on every check-in rather than caching them, since admins
// can change assignments between requests.
type Repository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	// ListByUser returns all shifts assigned to an employee, order
	// unspecified.
	ListByUser(ctx context.Context, userID string) ([]Shift, error)

	List(ctx context.Context, filter ShiftFilter) ([]Shift, error)

	// Delete removes a shift; returns ErrShiftNotFound when absent.
	Delete(ctx context.Context, id string) error
}
