package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/hengadev/errsx"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const (
	minUsernameLen = 4
	maxUsernameLen = 64
	minPasswordLen = 8
	maxPasswordLen = 72 // límite de bcrypt
)

type Service struct {
	repo Repository
	now  func() time.Time
	cost int
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		cost: bcrypt.DefaultCost,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
	FullName string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	role, err := validateRegister(in)
	if err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		FullName:     in.FullName,
		CreatedAt:    s.now().UTC(),
	})
}

// Authenticate no distingue "email desconocido" de "password incorrecto".
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByEmail(ctx, email)
}

func validateRegister(in RegisterInput) (Role, error) {
	errs := errsx.Map{}

	if n := len(in.Username); n < minUsernameLen || n > maxUsernameLen {
		errs.Set("username", fmt.Sprintf("must be between %d and %d characters", minUsernameLen, maxUsernameLen))
	}
	if a, err := mail.ParseAddress(in.Email); err != nil || a.Address != in.Email {
		errs.Set("email", "must be a valid email address")
	}
	if n := len(in.Password); n < minPasswordLen || n > maxPasswordLen {
		errs.Set("password", fmt.Sprintf("must be between %d and %d characters", minPasswordLen, maxPasswordLen))
	}
	if in.FullName == "" {
		errs.Set("full_name", "is required")
	}
	role, ok := ParseRole(in.Role)
	if !ok {
		errs.Set("role", "must be patient or doctor")
	}

	if err := errs.AsError(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return role, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
