package attendance

import (
	"context"
	"time"
)

// SessionRepository defines data access for attendance sessions.
type SessionRepository interface {
	// Open atomically creates a session together with its check-in ping,
	// but only when the employee has no open session. Returns
	// ErrAlreadyCheckedIn otherwise. This conditional write is what upholds
	// the at-most-one-open-session invariant under concurrent check-ins.
	Open(ctx context.Context, session Session, ping Ping) (Session, error)

	// GetOpenSession returns the most recently opened session with a null
	// check-out time, or (nil, nil) when none exists.
	GetOpenSession(ctx context.Context, userID string) (*Session, error)

	// CloseOpenSessions closes every open session for the employee with the
	// given end time and terminal status, returning the closed sessions.
	// Returns an empty slice when nothing was open.
	CloseOpenSessions(ctx context.Context, userID string, endTime time.Time, status string) ([]Session, error)

	// CloseStaleSessions closes every session, across all employees, that
	// was opened before the cutoff and is still open.
	CloseStaleSessions(ctx context.Context, cutoff time.Time, endTime time.Time, status string) ([]Session, error)
}

// PingRepository defines data access for the append-only ping log.
type PingRepository interface {
	Create(ctx context.Context, ping Ping) (Ping, error)

	// GetLatest returns the employee's most recent ping by timestamp, or
	// (nil, nil) when the employee has never pinged.
	GetLatest(ctx context.Context, userID string) (*Ping, error)

	List(ctx context.Context, filter PingFilter) ([]Ping, error)
}
