package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// claimsFromRequest pulls user_id and role out of the verified access token.
// Handlers fill these into typed requests so services never touch the token.
func claimsFromRequest(r *http.Request) (userID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", err
	}

	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	return userID, role, nil
}
