package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"health-records-portal/internal/ports/auth"
)

// Verifier implementa auth.AuthVerifier validando tokens HS256 propios.
type Verifier struct {
	cfg Config
	now func() time.Time
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{cfg: cfg.normalized(), now: time.Now}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if v == nil || !v.cfg.configured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}

	tc := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, tc, func(*jwt.Token) (any, error) {
		return v.cfg.Secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub := strings.TrimSpace(tc.Subject)
	if sub == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return auth.Claims{UserID: sub, Email: tc.Email, Role: tc.Role}, nil
}
