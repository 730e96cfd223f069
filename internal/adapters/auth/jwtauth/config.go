package jwtauth

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("jwt secret not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid token")
)

const DefaultTTL = 24 * time.Hour

// Config comparte secreto/issuer entre Signer y Verifier (HS256).
type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (c Config) normalized() Config {
	c.Issuer = strings.TrimSpace(c.Issuer)
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	return c
}

func (c Config) configured() bool {
	return len(c.Secret) > 0
}
