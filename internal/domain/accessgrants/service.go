package accessgrants

import (
	"context"
	"errors"
	"strings"
	"time"

	"health-records-portal/internal/domain/users"
	"health-records-portal/internal/ports/audit"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDoctorNotFound = errors.New("doctor not found")
)

// Directory resuelve cuentas; lo implementa users.Service.
type Directory interface {
	GetByID(ctx context.Context, id int64) (users.User, error)
	GetByEmail(ctx context.Context, email string) (users.User, error)
}

type Service struct {
	repo      Repository
	directory Directory
	audit     audit.Publisher
	now       func() time.Time
}

func NewService(repo Repository, directory Directory, pub audit.Publisher) *Service {
	if pub == nil {
		pub = audit.Nop{}
	}
	return &Service{
		repo:      repo,
		directory: directory,
		audit:     pub,
		now:       time.Now,
	}
}

// GrantByEmail da acceso al médico con ese email. Es idempotente: si el grant
// ya existe se devuelve el existente con created=false.
func (s *Service) GrantByEmail(ctx context.Context, patientID int64, doctorEmail string) (g Grant, created bool, err error) {
	doctorEmail = strings.TrimSpace(doctorEmail)
	if patientID <= 0 || doctorEmail == "" {
		return Grant{}, false, ErrInvalidInput
	}

	doctor, err := s.directory.GetByEmail(ctx, doctorEmail)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Grant{}, false, ErrDoctorNotFound
		}
		return Grant{}, false, err
	}
	if doctor.Role != users.RoleDoctor {
		return Grant{}, false, ErrDoctorNotFound
	}

	return s.grant(ctx, patientID, doctor.ID)
}

func (s *Service) grant(ctx context.Context, patientID, doctorID int64) (Grant, bool, error) {
	existing, err := s.repo.Get(ctx, patientID, doctorID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Grant{}, false, err
	}

	g, err := s.repo.Create(ctx, Grant{
		PatientID: patientID,
		DoctorID:  doctorID,
		GrantedAt: s.now().UTC(),
	})
	if errors.Is(err, ErrDuplicate) {
		// Carrera con otro request: el constraint ganó, devolvemos el que quedó.
		existing, err := s.repo.Get(ctx, patientID, doctorID)
		return existing, false, err
	}
	if err != nil {
		return Grant{}, false, err
	}

	_ = s.audit.Publish(ctx, audit.Event{
		Type:      audit.EventAccessGranted,
		ActorID:   patientID,
		PatientID: patientID,
		DoctorID:  doctorID,
		At:        g.GrantedAt,
	})
	return g, true, nil
}

func (s *Service) Revoke(ctx context.Context, patientID, doctorID int64) error {
	if patientID <= 0 || doctorID <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, patientID, doctorID); err != nil {
		return err
	}

	_ = s.audit.Publish(ctx, audit.Event{
		Type:      audit.EventAccessRevoked,
		ActorID:   patientID,
		PatientID: patientID,
		DoctorID:  doctorID,
		At:        s.now().UTC(),
	})
	return nil
}

func (s *Service) HasAccess(ctx context.Context, patientID, doctorID int64) (bool, error) {
	_, err := s.repo.Get(ctx, patientID, doctorID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]Grant, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]Grant, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
