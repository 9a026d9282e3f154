package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/repository/memory"
)

func openSessionAt(t *testing.T, repo *memory.SessionRepository, userID string, checkIn time.Time) {
	t.Helper()

	_, err := repo.Open(context.Background(), attendance.Session{
		UserID:      userID,
		CheckInTime: checkIn,
		Status:      attendance.StatusActive,
	}, attendance.Ping{
		UserID:     userID,
		Tag:        attendance.TagInZone,
		RecordedAt: checkIn,
	})
	require.NoError(t, err)
}

func TestAttendanceJobs_CloseStaleSessions(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionRepository(memory.NewPingRepository())

	openSessionAt(t, sessions, "stale-user", time.Now().UTC().Add(-20*time.Hour))
	openSessionAt(t, sessions, "fresh-user", time.Now().UTC().Add(-1*time.Hour))

	jobs := NewAttendanceJobs(sessions, 16*time.Hour)

	scheduler := NewScheduler()
	jobs.RegisterJobs(scheduler)
	scheduler.RunOnce(ctx)

	stale, err := sessions.GetOpenSession(ctx, "stale-user")
	require.NoError(t, err)
	assert.Nil(t, stale, "session older than the cutoff must be closed")

	fresh, err := sessions.GetOpenSession(ctx, "fresh-user")
	require.NoError(t, err)
	assert.NotNil(t, fresh, "recent session must stay open")
}
