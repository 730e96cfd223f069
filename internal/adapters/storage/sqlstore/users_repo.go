package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"health-records-portal/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, username, email, password_hash, role, full_name, created_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, role, full_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		u.Username,
		u.Email,
		u.PasswordHash,
		string(u.Role),
		u.FullName,
		u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return users.User{}, users.ErrDuplicate
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UsersRepo) getOne(ctx context.Context, query string, arg any) (users.User, error) {
	var (
		u    users.User
		role string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&role,
		&u.FullName,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.Role = users.Role(role)
	return u, nil
}
