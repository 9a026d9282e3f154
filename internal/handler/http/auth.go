package http

import (
	"encoding/json"
	"net/http"

	"github.com/teamtracker/teamtracker-backend-go/internal/domain/auth"
	"github.com/teamtracker/teamtracker-backend-go/internal/handler/http/response"
	"github.com/teamtracker/teamtracker-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	SSEToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService auth.Service
	jwtService  jwt.Service
}

func NewAuthHandler(authService auth.Service, jwtService jwt.Service) AuthHandler {
	return &authHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Login implements AuthHandler.
func (h *authHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, h.jwtService.RefreshTokenCookie(result.RefreshToken, result.RefreshTokenExpiresAt))
	response.Success(w, result)
}

// RefreshToken implements AuthHandler. The refresh token is read from the
// cookie set at login, falling back to the request body for non-browser
// clients.
func (h *authHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var refreshToken string

	if cookie, err := r.Cookie("refresh_token"); err == nil {
		refreshToken = cookie.Value
	} else {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}

	if refreshToken == "" {
		response.Unauthorized(w, "Refresh token is required")
		return
	}

	result, err := h.authService.Refresh(r.Context(), refreshToken)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SSEToken implements AuthHandler. It trades a valid access token for a
// short-lived token an EventSource client can pass as a query parameter.
func (h *authHandlerImpl) SSEToken(w http.ResponseWriter, r *http.Request) {
	userID, role, err := claimsFromRequest(r)
	if err != nil || userID == "" {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	result, err := h.authService.SSEToken(r.Context(), userID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
