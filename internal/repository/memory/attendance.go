package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
)

type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*attendance.Session
	pings    *PingRepository
}

// NewSessionRepository builds a session store. The ping repository is shared
// so Open can write the check-in ping atomically with the session, matching
// the conditional-write contract of the postgres implementation.
func NewSessionRepository(pings *PingRepository) *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*attendance.Session),
		pings:    pings,
	}
}

func (r *SessionRepository) Open(ctx context.Context, session attendance.Session, ping attendance.Ping) (attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.UserID == session.UserID && existing.Open() {
			return attendance.Session{}, attendance.ErrAlreadyCheckedIn
		}
	}

	session.ID = uuid.NewString()
	session.CreatedAt = time.Now().UTC()
	stored := session
	r.sessions[session.ID] = &stored

	if _, err := r.pings.Create(ctx, ping); err != nil {
		delete(r.sessions, session.ID)
		return attendance.Session{}, err
	}

	return session, nil
}

// Seed inserts sessions directly, bypassing the open-session guard. Tests
// use it to model legacy data where an employee holds several open sessions
// at once.
func (r *SessionRepository) Seed(sessions ...attendance.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range sessions {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		stored := s
		r.sessions[s.ID] = &stored
	}
}

func (r *SessionRepository) GetOpenSession(_ context.Context, userID string) (*attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var latest *attendance.Session
	for _, s := range r.sessions {
		if s.UserID != userID || !s.Open() {
			continue
		}
		if latest == nil || s.CheckInTime.After(latest.CheckInTime) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *SessionRepository) CloseOpenSessions(_ context.Context, userID string, endTime time.Time, status string) ([]attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := make([]attendance.Session, 0)
	for _, s := range r.sessions {
		if s.UserID != userID || !s.Open() {
			continue
		}
		end := endTime
		s.CheckOutTime = &end
		s.Status = status
		closed = append(closed, *s)
	}
	return closed, nil
}

func (r *SessionRepository) CloseStaleSessions(_ context.Context, cutoff time.Time, endTime time.Time, status string) ([]attendance.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	closed := make([]attendance.Session, 0)
	for _, s := range r.sessions {
		if !s.Open() || !s.CheckInTime.Before(cutoff) {
			continue
		}
		end := endTime
		s.CheckOutTime = &end
		s.Status = status
		closed = append(closed, *s)
	}
	return closed, nil
}

type PingRepository struct {
	mu    sync.RWMutex
	pings []attendance.Ping
}

func NewPingRepository() *PingRepository {
	return &PingRepository{}
}

func (r *PingRepository) Create(_ context.Context, newPing attendance.Ping) (attendance.Ping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newPing.ID = uuid.NewString()
	r.pings = append(r.pings, newPing)
	return newPing, nil
}

func (r *PingRepository) GetLatest(_ context.Context, userID string) (*attendance.Ping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *attendance.Ping
	for i := range r.pings {
		p := &r.pings[i]
		if p.UserID != userID {
			continue
		}
		if latest == nil || !p.RecordedAt.Before(latest.RecordedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (r *PingRepository) List(_ context.Context, filter attendance.PingFilter) ([]attendance.Ping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pings := make([]attendance.Ping, 0)
	for _, p := range r.pings {
		if filter.UserID != nil && p.UserID != *filter.UserID {
			continue
		}
		if filter.Date != nil && *filter.Date != "" {
			if p.RecordedAt.UTC().Format("2006-01-02") != *filter.Date {
				continue
			}
		}
		pings = append(pings, p)
	}
	return pings, nil
}
