package auth

import (
	"context"
)

// Service verifies credentials and issues tokens. The attendance core never
// calls this; it only trusts the user id the transport extracts from a token.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
	SSEToken(ctx context.Context, userID string, role string) (SSETokenResponse, error)
}
