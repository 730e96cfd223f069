package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"health-records-portal/internal/middleware"
	"health-records-portal/internal/ports/auth"
)

func RegisterRoutes(r chi.Router, svc *Service, tokens auth.TokenIssuer) {
	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc, tokens))
	r.Get("/me", meHandler(svc))
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// registerHandler godoc
// @Summary Registrar cuenta
// @Description Crea una cuenta de paciente o médico. El rol no puede cambiarse después.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de la cuenta"
// @Success 201 {object} userResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 409 {string} string "username or email already registered"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
			FullName: req.FullName,
		})
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, ErrDuplicate):
			http.Error(w, ErrDuplicate.Error(), http.StatusConflict)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// loginHandler godoc
// @Summary Login
// @Description Valida email + password y devuelve un bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "invalid credentials"
// @Router /auth/login [post]
func loginHandler(svc *Service, tokens auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if tokens == nil {
			http.Error(w, "login not configured", http.StatusNotImplemented)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, ErrInvalidCredentials.Error(), http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		tok, err := tokens.Issue(r.Context(), auth.Claims{
			UserID: strconv.FormatInt(u.ID, 10),
			Email:  u.Email,
			Role:   string(u.Role),
		})
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			Token:     tok.Token,
			ExpiresAt: tok.ExpiresAt,
			User:      toUserResponse(u),
		})
	}
}

func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		u, err := svc.GetByID(r.Context(), uid)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
	}
}

// writeJSON está duplicado por paquete de dominio a propósito (sin paquete "utils").
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
