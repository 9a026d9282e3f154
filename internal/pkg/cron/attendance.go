package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
)

// AttendanceJobs holds the background maintenance jobs for attendance data.
type AttendanceJobs struct {
	sessionRepo attendance.SessionRepository

	// staleAge is how long a session may stay open before the sweep
	// force-closes it. Covers employees who never checked out.
	staleAge time.Duration
}

func NewAttendanceJobs(sessionRepo attendance.SessionRepository, staleAge time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		sessionRepo: sessionRepo,
		staleAge:    staleAge,
	}
}

// RegisterJobs adds all attendance jobs to the scheduler.
func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close-stale-sessions", 1*time.Hour, j.CloseStaleSessions)
}

// CloseStaleSessions closes every session that has been open longer than the
// configured age, marking it completed at the current time.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.Add(-j.staleAge)

	closed, err := j.sessionRepo.CloseStaleSessions(ctx, cutoff, now, attendance.StatusCompleted)
	if err != nil {
		return err
	}

	if len(closed) > 0 {
		slog.Info("Closed stale attendance sessions", "count", len(closed))
	}
	return nil
}
