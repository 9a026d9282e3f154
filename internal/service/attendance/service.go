package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/metrics"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/sse"
)

// presenceFanout bounds how many per-employee presence lookups run at once.
const presenceFanout = 8

type AttendanceServiceImpl struct {
	sessionRepo attendance.SessionRepository
	pingRepo    attendance.PingRepository
	shiftRepo   shift.Repository
	userRepo    user.Repository
	hub         *sse.Hub
	metrics     *metrics.Metrics
}

// NewAttendanceService builds the attendance service. The hub and metrics may
// be nil, in which case events and counters are simply not emitted.
func NewAttendanceService(
	sessionRepo attendance.SessionRepository,
	pingRepo attendance.PingRepository,
	shiftRepo shift.Repository,
	userRepo user.Repository,
	hub *sse.Hub,
	m *metrics.Metrics,
) attendance.Service {
	return &AttendanceServiceImpl{
		sessionRepo: sessionRepo,
		pingRepo:    pingRepo,
		shiftRepo:   shiftRepo,
		userRepo:    userRepo,
		hub:         hub,
		metrics:     m,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format("2006-01-02 15:04:05")
	return &format
}

// CheckIn implements attendance.Service.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.SessionResponse{}, err
	}
	nowUTC := time.Now().UTC()

	shifts, err := a.shiftRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		return attendance.SessionResponse{}, fmt.Errorf("failed to list shifts for check-in: %w", err)
	}

	if matchShift(req.Coordinate, shifts) == nil {
		if a.metrics != nil {
			a.metrics.ObserveCheckInRejection("outside_zone")
		}
		return attendance.SessionResponse{}, attendance.ErrOutsideZone
	}

	session := attendance.Session{
		UserID:      req.UserID,
		CheckInTime: nowUTC,
		Status:      attendance.StatusActive,
	}
	ping := attendance.Ping{
		UserID:     req.UserID,
		Latitude:   req.Coordinate.Lat,
		Longitude:  req.Coordinate.Lng,
		Tag:        attendance.TagInZone,
		RecordedAt: nowUTC,
	}

	created, err := a.sessionRepo.Open(ctx, session, ping)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			if a.metrics != nil {
				a.metrics.ObserveCheckInRejection("already_checked_in")
			}
			return attendance.SessionResponse{}, err
		}
		return attendance.SessionResponse{}, fmt.Errorf("failed to open attendance session: %w", err)
	}

	if a.metrics != nil {
		a.metrics.ObserveCheckIn()
	}
	a.broadcast("presence_changed", map[string]interface{}{
		"user_id":   created.UserID,
		"is_online": true,
		"status":    created.Status,
	})

	return mapSessionToResponse(created), nil
}

// CheckOut implements attendance.Service.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) ([]attendance.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	nowUTC := time.Now().UTC()

	closed, err := a.sessionRepo.CloseOpenSessions(ctx, req.UserID, nowUTC, req.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to close open sessions: %w", err)
	}

	if len(closed) > 0 {
		if a.metrics != nil {
			a.metrics.ObserveCheckOut(req.Status, len(closed))
		}
		a.broadcast("presence_changed", map[string]interface{}{
			"user_id":   req.UserID,
			"is_online": false,
			"status":    attendance.StatusOffline,
		})
	}

	responses := make([]attendance.SessionResponse, 0, len(closed))
	for _, s := range closed {
		responses = append(responses, mapSessionToResponse(s))
	}
	return responses, nil
}

// RecordPing implements attendance.Service.
func (a *AttendanceServiceImpl) RecordPing(ctx context.Context, req attendance.PingRequest) (attendance.PingResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PingResponse{}, err
	}

	ping := attendance.Ping{
		UserID:     req.UserID,
		Latitude:   req.Coordinate.Lat,
		Longitude:  req.Coordinate.Lng,
		Tag:        attendance.TagInZone,
		RecordedAt: time.Now().UTC(),
	}

	created, err := a.pingRepo.Create(ctx, ping)
	if err != nil {
		return attendance.PingResponse{}, fmt.Errorf("failed to record ping: %w", err)
	}

	if a.metrics != nil {
		a.metrics.ObserveLocationPing()
	}
	a.broadcast("location_updated", map[string]interface{}{
		"user_id": created.UserID,
		"lat":     created.Latitude,
		"lng":     created.Longitude,
	})

	return mapPingToResponse(created), nil
}

// LiveStatus implements attendance.Service.
//
// The presence view is derived fresh on every call: one open-session lookup
// and one latest-ping lookup per employee, fanned out with a bounded
// errgroup. Nothing here is cached or stored.
func (a *AttendanceServiceImpl) LiveStatus(ctx context.Context) ([]attendance.PresenceView, error) {
	users, err := a.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for live status: %w", err)
	}

	views := make([]attendance.PresenceView, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(presenceFanout)
	for i, u := range users {
		g.Go(func() error {
			view, err := a.presenceFor(gctx, u)
			if err != nil {
				return err
			}
			views[i] = view
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

func (a *AttendanceServiceImpl) presenceFor(ctx context.Context, u user.User) (attendance.PresenceView, error) {
	open, err := a.sessionRepo.GetOpenSession(ctx, u.ID)
	if err != nil {
		return attendance.PresenceView{}, fmt.Errorf("failed to get open session for %s: %w", u.ID, err)
	}

	latest, err := a.pingRepo.GetLatest(ctx, u.ID)
	if err != nil {
		return attendance.PresenceView{}, fmt.Errorf("failed to get latest ping for %s: %w", u.ID, err)
	}

	view := attendance.PresenceView{
		UserID:     u.ID,
		Username:   u.Username,
		Role:       u.Role,
		IsOnline:   open != nil,
		LastStatus: attendance.StatusOffline,
	}
	if open != nil {
		view.LastStatus = open.Status
	}
	if latest != nil {
		view.LastLocation = &attendance.Coordinate{
			Lat: latest.Latitude,
			Lng: latest.Longitude,
		}
	}
	return view, nil
}

// ListPings implements attendance.Service.
func (a *AttendanceServiceImpl) ListPings(ctx context.Context, filter attendance.PingFilter) ([]attendance.PingResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	pings, err := a.pingRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pings: %w", err)
	}

	responses := make([]attendance.PingResponse, 0, len(pings))
	for _, p := range pings {
		responses = append(responses, mapPingToResponse(p))
	}
	return responses, nil
}

func (a *AttendanceServiceImpl) broadcast(event string, data interface{}) {
	if a.hub == nil {
		return
	}
	a.hub.Broadcast(sse.Event{Event: event, Data: data})
}

func mapSessionToResponse(s attendance.Session) attendance.SessionResponse {
	return attendance.SessionResponse{
		ID:           s.ID,
		UserID:       s.UserID,
		Username:     s.Username,
		CheckInTime:  s.CheckInTime.UTC().Format("2006-01-02 15:04:05"),
		CheckOutTime: timePtrToString(s.CheckOutTime),
		Status:       s.Status,
	}
}

func mapPingToResponse(p attendance.Ping) attendance.PingResponse {
	return attendance.PingResponse{
		ID:       p.ID,
		UserID:   p.UserID,
		Username: p.Username,
		Coordinate: attendance.Coordinate{
			Lat: p.Latitude,
			Lng: p.Longitude,
		},
		Tag:        p.Tag,
		RecordedAt: p.RecordedAt.UTC().Format("2006-01-02 15:04:05"),
	}
}
