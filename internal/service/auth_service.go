package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService issues and validates the access tokens that identify a
// learner on protected routes. Login is username-only; no password or
// external identity provider is involved.
type AuthService interface {
	Login(ctx context.Context, username string) (string, error)
	ValidateToken(ctx context.Context, tokenString string) (string, error)
}

type authService struct {
	secretKey []byte
	accessTTL time.Duration
}

func NewAuthService(cfg *config.Config) (AuthService, error) {
	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	ttl := cfg.JWT.AccessTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{
		secretKey: []byte(cfg.JWT.SecretKey),
		accessTTL: ttl,
	}, nil
}

// Login issues a signed access token for the given username.
func (s *authService) Login(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", domain.NewInvalidInputError("username is required")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", domain.NewInternalError("Failed to sign access token", err)
	}
	return signed, nil
}

// ValidateToken verifies the token signature and expiry and returns
// the user identifier it carries.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidJWTToken
	}
	return claims.Subject, nil
}
