package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamtracker/teamtracker-backend-go/internal/config"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/shift"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/jwt"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/sse"
	"github.com/teamtracker/teamtracker-backend-go/internal/repository/memory"
	attendanceService "github.com/teamtracker/teamtracker-backend-go/internal/service/attendance"
	authService "github.com/teamtracker/teamtracker-backend-go/internal/service/auth"
	shiftService "github.com/teamtracker/teamtracker-backend-go/internal/service/shift"
	userService "github.com/teamtracker/teamtracker-backend-go/internal/service/user"
)

const (
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
)

type handlerFixture struct {
	router     http.Handler
	jwtService jwt.Service
	userRepo   *memory.UserRepository
	shiftRepo  *memory.ShiftRepository
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.App.FrontendURL = "http://localhost:5173"

	userRepo := memory.NewUserRepository()
	shiftRepo := memory.NewShiftRepository()
	pingRepo := memory.NewPingRepository()
	sessionRepo := memory.NewSessionRepository(pingRepo)

	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	hub := sse.NewHub()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(sessionRepo, pingRepo, shiftRepo, userRepo, hub, nil)

	router := NewRouter(
		cfg,
		jwtService,
		NewAuthHandler(authSvc, jwtService),
		NewUserHandler(userSvc),
		NewShiftHandler(shiftSvc),
		NewAttendanceHandler(attendanceSvc, jwtService, hub),
	)

	return &handlerFixture{
		router:     router,
		jwtService: jwtService,
		userRepo:   userRepo,
		shiftRepo:  shiftRepo,
	}
}

func (f *handlerFixture) createUser(t *testing.T, email, role string) user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := f.userRepo.Create(context.Background(), user.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func (f *handlerFixture) accessToken(t *testing.T, u user.User) string {
	t.Helper()

	token, _, err := f.jwtService.GenerateAccessToken(u.ID, u.Email, u.Role)
	require.NoError(t, err)
	return token
}

func (f *handlerFixture) assignZone(t *testing.T, userID string, lat, lng, radius float64) {
	t.Helper()

	_, err := f.shiftRepo.Create(context.Background(), shift.Shift{
		UserID:       userID,
		DayOfWeek:    "monday",
		CenterLat:    lat,
		CenterLng:    lng,
		RadiusMeters: radius,
	})
	require.NoError(t, err)
}

func (f *handlerFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func checkInBody(lat, lng float64) map[string]interface{} {
	return map[string]interface{}{
		"coordinate": map[string]float64{"lat": lat, "lng": lng},
	}
}

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	f := newHandlerFixture(t)
	u := f.createUser(t, "alice@example.com", user.RoleEmployee)
	f.assignZone(t, u.ID, 0, 0, 1000)
	token := f.accessToken(t, u)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, checkInBody(0.0001, 0.0001))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"active"`)
}

func TestAttendanceHandler_CheckIn_OutsideZone(t *testing.T) {
	f := newHandlerFixture(t)
	u := f.createUser(t, "bob@example.com", user.RoleEmployee)
	f.assignZone(t, u.ID, 0, 0, 1000)
	token := f.accessToken(t, u)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, checkInBody(10, 10))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceHandler_CheckIn_Conflict(t *testing.T) {
	f := newHandlerFixture(t)
	u := f.createUser(t, "carol@example.com", user.RoleEmployee)
	f.assignZone(t, u.ID, 0, 0, 1000)
	token := f.accessToken(t, u)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, checkInBody(0, 0))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/attendance/check-in", token, checkInBody(0, 0))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAttendanceHandler_CheckIn_Unauthenticated(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-in", "", checkInBody(0, 0))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAttendanceHandler_CheckOut_EmptyIsSuccess(t *testing.T) {
	f := newHandlerFixture(t)
	u := f.createUser(t, "dave@example.com", user.RoleEmployee)
	token := f.accessToken(t, u)

	rec := f.do(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttendanceHandler_CheckOut_MalformedBody(t *testing.T) {
	f := newHandlerFixture(t)
	u := f.createUser(t, "mallory@example.com", user.RoleEmployee)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/check-out", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.accessToken(t, u))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	// A broken body must not degrade to a default completed checkout.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_Live_AdminOnly(t *testing.T) {
	f := newHandlerFixture(t)
	employee := f.createUser(t, "erin@example.com", user.RoleEmployee)
	admin := f.createUser(t, "frank@example.com", user.RoleAdmin)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/live", f.accessToken(t, employee), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/attendance/live", f.accessToken(t, admin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Login_SetsRefreshCookie(t *testing.T) {
	f := newHandlerFixture(t)
	f.createUser(t, "grace@example.com", user.RoleEmployee)

	rec := f.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "grace@example.com",
		"password": "password123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var hasRefreshCookie bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" && c.Value != "" {
			hasRefreshCookie = true
		}
	}
	assert.True(t, hasRefreshCookie)
}

func TestShiftHandler_List_EmployeeSeesOwnShiftsOnly(t *testing.T) {
	f := newHandlerFixture(t)
	employee := f.createUser(t, "judy@example.com", user.RoleEmployee)
	other := f.createUser(t, "kent@example.com", user.RoleEmployee)
	f.assignZone(t, employee.ID, 0, 0, 500)
	f.assignZone(t, other.ID, 1, 1, 500)

	rec := f.do(t, http.MethodGet, "/api/v1/shifts/", f.accessToken(t, employee), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), employee.ID)
	assert.NotContains(t, rec.Body.String(), other.ID)

	// A user_id filter cannot widen an employee's view past their own.
	rec = f.do(t, http.MethodGet, "/api/v1/shifts/?user_id="+other.ID, f.accessToken(t, employee), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), other.ID)
}

func TestShiftHandler_List_AdminSeesAll(t *testing.T) {
	f := newHandlerFixture(t)
	employee := f.createUser(t, "lara@example.com", user.RoleEmployee)
	admin := f.createUser(t, "mark@example.com", user.RoleAdmin)
	f.assignZone(t, employee.ID, 0, 0, 500)

	rec := f.do(t, http.MethodGet, "/api/v1/shifts/", f.accessToken(t, admin), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), employee.ID)
}

func TestShiftHandler_Create_AdminOnly(t *testing.T) {
	f := newHandlerFixture(t)
	employee := f.createUser(t, "heidi@example.com", user.RoleEmployee)
	admin := f.createUser(t, "ivan@example.com", user.RoleAdmin)

	body := map[string]interface{}{
		"user_id":     employee.ID,
		"day_of_week": "monday",
		"center":      map[string]float64{"lat": 0, "lng": 0},
		"radius":      500,
	}

	rec := f.do(t, http.MethodPost, "/api/v1/shifts/", f.accessToken(t, employee), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/shifts/", f.accessToken(t, admin), body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
