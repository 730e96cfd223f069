package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"health-records-portal/internal/domain/users"
	"health-records-portal/internal/middleware"
)

const DefaultMaxUploadBytes int64 = 10 << 20

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (users.User, error)
}

// AccessChecker lo implementa accessgrants.Service.
type AccessChecker interface {
	HasAccess(ctx context.Context, patientID, doctorID int64) (bool, error)
}

func RegisterRoutes(r chi.Router, svc *Service, accounts UserLookup, access AccessChecker, maxUploadBytes int64) {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}

	r.Post("/reports", uploadHandler(svc, accounts, maxUploadBytes))
	r.Get("/reports", listMyReportsHandler(svc, accounts))
	r.Get("/reports/{reportID}/file", downloadHandler(svc, accounts, access))
	r.Get("/patients/{patientID}/reports", listPatientReportsHandler(svc, accounts, access))
}

type reportResponse struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	DiseaseName string    `json:"disease_name"`
	Description string    `json:"description"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// uploadHandler godoc
// @Summary Subir reporte médico
// @Description Multipart con `disease_name`, `description` (opcional) y `file` (pdf/jpg/jpeg/png). Solo pacientes.
// @Tags reports
// @Accept mpfd
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param disease_name formData string true "Enfermedad / título del reporte"
// @Param description formData string false "Descripción"
// @Param file formData file true "Archivo"
// @Success 201 {object} reportResponse
// @Failure 400 {string} string "validación"
// @Failure 413 {string} string "file too large"
// @Failure 415 {string} string "unsupported file type"
// @Router /reports [post]
func uploadHandler(svc *Service, accounts UserLookup, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, accounts)
		if !ok {
			return
		}
		if me.Role != users.RolePatient {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		rep, err := svc.Upload(r.Context(), me.ID, UploadInput{
			DiseaseName: r.FormValue("disease_name"),
			Description: r.FormValue("description"),
			FileName:    header.Filename,
			Body:        file,
		})
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, ErrUnsupportedFile):
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toReportResponse(rep))
	}
}

func listMyReportsHandler(svc *Service, accounts UserLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, accounts)
		if !ok {
			return
		}
		if me.Role != users.RolePatient {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeReports(w, r, svc, me.ID)
	}
}

// listPatientReportsHandler godoc
// @Summary Reportes de un paciente
// @Description El propio paciente o un médico con acceso vigente. Orden: más reciente primero.
// @Tags reports
// @Produce json
// @Param Authorization header string false "Bearer token"
// @Param patientID path int true "ID del paciente"
// @Success 200 {array} reportResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/reports [get]
func listPatientReportsHandler(svc *Service, accounts UserLookup, access AccessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, accounts)
		if !ok {
			return
		}

		patientID, err := strconv.ParseInt(chi.URLParam(r, "patientID"), 10, 64)
		if err != nil || patientID <= 0 {
			http.Error(w, "invalid patient id", http.StatusBadRequest)
			return
		}

		allowed, err := canRead(r.Context(), access, me, patientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		patient, err := accounts.GetByID(r.Context(), patientID)
		if err != nil || patient.Role != users.RolePatient {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		writeReports(w, r, svc, patientID)
	}
}

// downloadHandler godoc
// @Summary Descargar archivo de un reporte
// @Tags reports
// @Produce octet-stream
// @Param Authorization header string false "Bearer token"
// @Param reportID path int true "ID del reporte"
// @Success 200 {file} file
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "report not found"
// @Router /reports/{reportID}/file [get]
func downloadHandler(svc *Service, accounts UserLookup, access AccessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me, ok := currentUser(w, r, accounts)
		if !ok {
			return
		}

		reportID, err := strconv.ParseInt(chi.URLParam(r, "reportID"), 10, 64)
		if err != nil {
			http.Error(w, "report not found", http.StatusNotFound)
			return
		}
		rep, err := svc.GetByID(r.Context(), reportID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "report not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		allowed, err := canRead(r.Context(), access, me, rep.PatientID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		body, err := svc.OpenFile(r.Context(), rep)
		if err != nil {
			if errors.Is(err, ErrFileNotFound) {
				http.Error(w, ErrFileNotFound.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", rep.FileType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": rep.FileName}))
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, body)
	}
}

func writeReports(w http.ResponseWriter, r *http.Request, svc *Service, patientID int64) {
	items, err := svc.ListByPatient(r.Context(), patientID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	items = NewestFirst(items)

	out := make([]reportResponse, 0, len(items))
	for _, rep := range items {
		out = append(out, toReportResponse(rep))
	}
	writeJSON(w, http.StatusOK, out)
}

// canRead: el dueño siempre; un médico solo con grant vigente.
func canRead(ctx context.Context, access AccessChecker, me users.User, patientID int64) (bool, error) {
	if me.ID == patientID {
		return true, nil
	}
	if me.Role != users.RoleDoctor {
		return false, nil
	}
	ok, err := access.HasAccess(ctx, patientID, me.ID)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	return ok, nil
}

func currentUser(w http.ResponseWriter, r *http.Request, accounts UserLookup) (users.User, bool) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return users.User{}, false
	}
	u, err := accounts.GetByID(r.Context(), uid)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return users.User{}, false
	}
	return u, true
}

func toReportResponse(r Report) reportResponse {
	return reportResponse{
		ID:          r.ID,
		PatientID:   r.PatientID,
		DiseaseName: r.DiseaseName,
		Description: r.Description,
		FileName:    r.FileName,
		FileType:    r.FileType,
		UploadedAt:  r.UploadedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
