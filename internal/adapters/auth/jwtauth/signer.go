package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"health-records-portal/internal/ports/auth"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Signer implementa auth.TokenIssuer.
type Signer struct {
	cfg Config
	now func() time.Time
}

func NewSigner(cfg Config) *Signer {
	return &Signer{cfg: cfg.normalized(), now: time.Now}
}

func (s *Signer) Issue(_ context.Context, claims auth.Claims) (auth.IssuedToken, error) {
	if s == nil || !s.cfg.configured() {
		return auth.IssuedToken{}, ErrNotConfigured
	}
	sub := strings.TrimSpace(claims.UserID)
	if sub == "" {
		return auth.IssuedToken{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	now := s.now().UTC()
	exp := now.Add(s.cfg.TTL)
	tc := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Email: strings.TrimSpace(claims.Email),
		Role:  strings.TrimSpace(claims.Role),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(s.cfg.Secret)
	if err != nil {
		return auth.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return auth.IssuedToken{Token: signed, ExpiresAt: exp}, nil
}
