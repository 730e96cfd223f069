package auth

import "time"

// Claims representa la identidad extraída del token.
// Role viaja en el token pero los handlers usan el rol persistido del usuario.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// IssuedToken es lo que devuelve el login.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}
