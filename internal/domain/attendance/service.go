package attendance

import (
	"context"
)

// Service defines business logic for attendance operations
type Service interface {
	// CheckIn opens a session when the coordinate falls inside one of the
	// employee's shift zones; rejects with ErrOutsideZone or
	// ErrAlreadyCheckedIn otherwise.
	CheckIn(ctx context.Context, req CheckInRequest) (SessionResponse, error)

	// CheckOut closes every open session for the employee. Idempotent: an
	// empty result is success, not an error.
	CheckOut(ctx context.Context, req CheckOutRequest) ([]SessionResponse, error)

	// RecordPing appends a location sample. It does not verify that a
	// session is open; streaming only while checked in is the caller's job.
	RecordPing(ctx context.Context, req PingRequest) (PingResponse, error)

	// LiveStatus derives the current presence view for every known employee.
	LiveStatus(ctx context.Context) ([]PresenceView, error)

	// ListPings returns the recorded ping history (admin).
	ListPings(ctx context.Context, filter PingFilter) ([]PingResponse, error)
}
