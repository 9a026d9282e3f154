package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/attendance"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/auth"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/handler/http/response"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/jwt"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/sse"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	RecordPing(w http.ResponseWriter, r *http.Request)
	Live(w http.ResponseWriter, r *http.Request)
	ListPings(w http.ResponseWriter, r *http.Request)
	LiveStream(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
	jwtService        jwt.Service
	hub               *sse.Hub
}

func NewAttendanceHandler(attendanceService attendance.Service, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		jwtService:        jwtService,
		hub:               hub,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, _, err := claimsFromRequest(r)
	if err != nil || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	// An empty body means a plain completed checkout, but a body that is
	// present and broken must not silently degrade to one.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, _, err := claimsFromRequest(r)
	if err != nil || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

// RecordPing implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordPing(w http.ResponseWriter, r *http.Request) {
	var req attendance.PingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	userID, _, err := claimsFromRequest(r)
	if err != nil || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	req.UserID = userID

	result, err := h.attendanceService.RecordPing(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Live implements AttendanceHandler.
func (h *attendanceHandlerImpl) Live(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.LiveStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPings implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPings(w http.ResponseWriter, r *http.Request) {
	var filter attendance.PingFilter
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if date := r.URL.Query().Get("date"); date != "" {
		filter.Date = &date
	}

	result, err := h.attendanceService.ListPings(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LiveStream implements AttendanceHandler. EventSource clients cannot set an
// Authorization header, so the route is unauthenticated and the short-lived
// sse token arrives as a query parameter instead.
func (h *attendanceHandlerImpl) LiveStream(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		response.Unauthorized(w, "Token query parameter is required")
		return
	}

	userID, role, err := h.jwtService.ValidateSSEToken(tokenString)
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if role != user.RoleAdmin {
		response.Forbidden(w, "Admin privilege required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe()
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%q}\n\n", userID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		}
	}
}
