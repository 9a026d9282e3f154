package jwt

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(userID string, email string, role string) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// GenerateSSEToken issues a short-lived token carried as a query parameter
	// by EventSource clients, which cannot set an Authorization header.
	GenerateSSEToken(userID string, role string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, role string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	secretKey         string
	accessExpiration  string
	refreshExpiration string
	tokenAuth         *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessExpiration string, refreshExpiration string) Service {
	return &JWTService{
		secretKey:         secretKey,
		accessExpiration:  accessExpiration,
		refreshExpiration: refreshExpiration,
		tokenAuth:         jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.refreshExpiration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    "refresh",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateSSEToken(userID string, role string) (string, int, error) {
	const expiresIn = 60 // seconds

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"role":    role,
		"type":    "sse",
		"exp":     time.Now().Add(expiresIn * time.Second).Unix(),
	})
	return tokenString, expiresIn, err
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", fmt.Errorf("decode sse token: %w", err)
	}
	if err := jwt.Validate(token); err != nil {
		return "", "", fmt.Errorf("validate sse token: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", "", fmt.Errorf("read sse token claims: %w", err)
	}
	if tokenType, _ := claims["type"].(string); tokenType != "sse" {
		return "", "", fmt.Errorf("token is not an sse token")
	}

	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return "", "", fmt.Errorf("sse token has no user_id claim")
	}
	return userID, role, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
}
