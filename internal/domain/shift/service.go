package shift

import (
	"context"
)

// Service defines business logic for shift management (admin)
type Service interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	ListShifts(ctx context.Context, filter ShiftFilter) ([]ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
}
