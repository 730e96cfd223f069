package chatbot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"health-records-portal/internal/middleware"
	"health-records-portal/internal/platform/logger"
)

const maxQueryBody = 16 << 10

func RegisterRoutes(r chi.Router, svc *Service, accounts UserSource, log logger.Logger) {
	h := askHandler(svc, accounts, log)
	r.Post("/chatbot", h)
	// El frontend del paciente usa su propia ruta; misma lógica, el rol sale de la sesión.
	r.Post("/patient_chatbot", h)
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// askHandler godoc
// @Summary Consultar al chatbot
// @Description Responde consultas en lenguaje natural sobre los datos visibles para el usuario autenticado (paciente: sus reportes; médico: pacientes que le dieron acceso). Las consultas abiertas se delegan al LLM.
// @Tags chatbot
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body askRequest true "Consulta"
// @Success 200 {object} askResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /chatbot [post]
func askHandler(svc *Service, accounts UserSource, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		me, err := accounts.GetByID(r.Context(), uid)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		actor, err := NewActor(me)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrInvalidRole.Error())
			return
		}

		var req askRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBody)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		answer, err := svc.Ask(r.Context(), actor, req.Query)
		switch {
		case err == nil:
		case errors.Is(err, ErrEmptyQuery):
			writeError(w, http.StatusBadRequest, ErrEmptyQuery.Error())
			return
		default:
			logFailure(r.Context(), log, me.ID, err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, askResponse{Response: answer})
	}
}

func logFailure(ctx context.Context, log logger.Logger, userID int64, err error) {
	if log == nil {
		return
	}
	log.Error("chatbot query failed", map[string]any{
		"user_id":    userID,
		"request_id": chimw.GetReqID(ctx),
		"error":      err.Error(),
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
