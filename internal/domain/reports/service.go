package reports

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/hengadev/errsx"

	"health-records-portal/internal/ports/audit"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedFile = errors.New("unsupported file type: only pdf, jpg, jpeg and png are allowed")
)

const maxDiseaseNameLen = 100

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type Service struct {
	repo  Repository
	files FileStorage
	audit audit.Publisher
	now   func() time.Time
}

func NewService(repo Repository, files FileStorage, pub audit.Publisher) *Service {
	if pub == nil {
		pub = audit.Nop{}
	}
	return &Service{
		repo:  repo,
		files: files,
		audit: pub,
		now:   time.Now,
	}
}

type UploadInput struct {
	DiseaseName string
	Description string
	FileName    string
	Body        io.Reader
}

func (s *Service) Upload(ctx context.Context, patientID int64, in UploadInput) (Report, error) {
	in.DiseaseName = strings.TrimSpace(in.DiseaseName)
	in.Description = strings.TrimSpace(in.Description)
	in.FileName = filepath.Base(strings.TrimSpace(in.FileName))

	errs := errsx.Map{}
	if patientID <= 0 {
		errs.Set("patient_id", "is required")
	}
	if in.DiseaseName == "" || len(in.DiseaseName) > maxDiseaseNameLen {
		errs.Set("disease_name", fmt.Sprintf("is required and must be at most %d characters", maxDiseaseNameLen))
	}
	if in.Body == nil || in.FileName == "" || in.FileName == "." {
		errs.Set("file", "is required")
	}
	if err := errs.AsError(); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	contentType, ok := allowedExtensions[strings.ToLower(filepath.Ext(in.FileName))]
	if !ok {
		return Report{}, ErrUnsupportedFile
	}

	ref, err := s.files.Save(ctx, in.FileName, contentType, in.Body)
	if err != nil {
		return Report{}, fmt.Errorf("store file: %w", err)
	}

	rep, err := s.repo.Create(ctx, Report{
		PatientID:   patientID,
		DiseaseName: in.DiseaseName,
		Description: in.Description,
		FileRef:     ref,
		FileName:    in.FileName,
		FileType:    contentType,
		UploadedAt:  s.now().UTC(),
	})
	if err != nil {
		// Sin fila no hay forma de llegar al archivo: se borra best-effort.
		_ = s.files.Delete(context.WithoutCancel(ctx), ref)
		return Report{}, err
	}

	_ = s.audit.Publish(ctx, audit.Event{
		Type:      audit.EventReportUploaded,
		ActorID:   patientID,
		PatientID: patientID,
		ReportID:  rep.ID,
		At:        rep.UploadedAt,
	})
	return rep, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Report, error) {
	if id <= 0 {
		return Report{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ListByPatient devuelve los reportes en orden de subida (más viejo primero).
func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]Report, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// OpenFile abre el binario de un reporte. El caller cierra el reader.
func (s *Service) OpenFile(ctx context.Context, rep Report) (io.ReadCloser, error) {
	return s.files.Open(ctx, rep.FileRef)
}
