package accessgrants

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"health-records-portal/internal/domain/users"
	"health-records-portal/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Paciente: administra quién ve sus reportes
	r.Post("/access", grantHandler(svc))
	r.Get("/access", listDoctorsHandler(svc))
	r.Delete("/access/{doctorID}", revokeHandler(svc))

	// Médico: pacientes que le dieron acceso
	r.Get("/patients", listPatientsHandler(svc))
}

type grantRequest struct {
	DoctorEmail string `json:"doctor_email"`
}

type grantResponse struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	GrantedAt time.Time `json:"granted_at"`
}

type doctorAccessResponse struct {
	DoctorID  int64     `json:"doctor_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	GrantedAt time.Time `json:"granted_at"`
}

type patientAccessResponse struct {
	PatientID int64     `json:"patient_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	GrantedAt time.Time `json:"granted_at"`
}

// grantHandler godoc
// @Summary Dar acceso a un médico
// @Description El paciente autenticado comparte sus reportes con el médico del email indicado. Idempotente: si el acceso ya existe responde 200 con el grant existente.
// @Tags access
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param payload body grantRequest true "Email del médico"
// @Success 201 {object} grantResponse
// @Success 200 {object} grantResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "doctor not found"
// @Router /access [post]
func grantHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, svc.directory, users.RolePatient)
		if !ok {
			return
		}

		var req grantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		g, created, err := svc.GrantByEmail(r.Context(), me.ID, req.DoctorEmail)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, "doctor_email is required", http.StatusBadRequest)
			return
		case errors.Is(err, ErrDoctorNotFound):
			http.Error(w, "doctor not found", http.StatusNotFound)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, toGrantResponse(g))
	}
}

// revokeHandler godoc
// @Summary Revocar acceso
// @Tags access
// @Param Authorization header string false "Bearer token"
// @Param doctorID path int true "ID del médico"
// @Success 204
// @Failure 404 {string} string "access grant not found"
// @Router /access/{doctorID} [delete]
func revokeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, svc.directory, users.RolePatient)
		if !ok {
			return
		}

		doctorID, err := strconv.ParseInt(chi.URLParam(r, "doctorID"), 10, 64)
		if err != nil || doctorID <= 0 {
			http.Error(w, "invalid doctor id", http.StatusBadRequest)
			return
		}

		if err := svc.Revoke(r.Context(), me.ID, doctorID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listDoctorsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, svc.directory, users.RolePatient)
		if !ok {
			return
		}

		grants, err := svc.ListByPatient(r.Context(), me.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]doctorAccessResponse, 0, len(grants))
		for _, g := range grants {
			doc, err := svc.directory.GetByID(r.Context(), g.DoctorID)
			if err != nil {
				continue
			}
			out = append(out, doctorAccessResponse{
				DoctorID:  doc.ID,
				FullName:  doc.DisplayName(),
				Email:     doc.Email,
				GrantedAt: g.GrantedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listPatientsHandler godoc
// @Summary Pacientes visibles para el médico
// @Tags access
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Success 200 {array} patientAccessResponse
// @Failure 403 {string} string "forbidden"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, svc.directory, users.RoleDoctor)
		if !ok {
			return
		}

		grants, err := svc.ListByDoctor(r.Context(), me.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientAccessResponse, 0, len(grants))
		for _, g := range grants {
			p, err := svc.directory.GetByID(r.Context(), g.PatientID)
			if err != nil {
				continue
			}
			out = append(out, patientAccessResponse{
				PatientID: p.ID,
				FullName:  p.DisplayName(),
				Email:     p.Email,
				GrantedAt: g.GrantedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// currentUser exige sesión y rol; escribe 401/403 y devuelve false si no aplica.
func currentUser(w http.ResponseWriter, r *http.Request, dir Directory, role users.Role) (users.User, bool) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return users.User{}, false
	}
	u, err := dir.GetByID(r.Context(), uid)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return users.User{}, false
	}
	if u.Role != role {
		http.Error(w, "forbidden", http.StatusForbidden)
		return users.User{}, false
	}
	return u, true
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:        g.ID,
		PatientID: g.PatientID,
		DoctorID:  g.DoctorID,
		GrantedAt: g.GrantedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
