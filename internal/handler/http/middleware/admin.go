package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/auth"
	"github.com/teamtracker/teamtracker-backend-go/internal/domain/user"
	"github.com/teamtracker/teamtracker-backend-go/internal/handler/http/response"
)

// AdminOnly rejects requests whose access token does not carry the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != user.RoleAdmin {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
