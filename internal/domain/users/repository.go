package users

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username or email already registered")
)

// Repository persiste cuentas. Create asigna ID y devuelve el usuario guardado;
// username/email repetidos => ErrDuplicate.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
