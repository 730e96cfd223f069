package memory

import (
	"context"
	"strings"
	"sync"

	"health-records-portal/internal/domain/users"
)

type userRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]users.User
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID: make(map[int64]users.User),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Username == u.Username || strings.EqualFold(existing.Email, u.Email) {
			return users.User{}, users.ErrDuplicate
		}
	}

	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}
