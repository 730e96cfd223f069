package users

import (
	"strings"
	"time"
)

// Role define el tipo de cuenta. Es fijo desde el registro.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	return r == RolePatient || r == RoleDoctor
}

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	FullName     string
	CreatedAt    time.Time
}

// DisplayName es lo que muestran chatbot y listados.
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.FullName); n != "" {
		return n
	}
	return u.Username
}
