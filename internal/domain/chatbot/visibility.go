package chatbot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"health-records-portal/internal/domain/accessgrants"
	"health-records-portal/internal/domain/reports"
	"health-records-portal/internal/domain/users"
)

type ReportSource interface {
	ListByPatient(ctx context.Context, patientID int64) ([]reports.Report, error)
}

type GrantSource interface {
	ListByPatient(ctx context.Context, patientID int64) ([]accessgrants.Grant, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]accessgrants.Grant, error)
}

type UserSource interface {
	GetByID(ctx context.Context, id int64) (users.User, error)
}

type GrantedDoctor struct {
	Doctor    users.User
	GrantedAt time.Time
}

// Entry es un paciente visible para el actor con todos sus reportes.
//   - GrantedAt: solo en la vista de médico.
//   - Doctors: solo en la vista de paciente (quién tiene acceso hoy).
type Entry struct {
	Subject   users.User
	Reports   []reports.Report
	GrantedAt *time.Time
	Doctors   []GrantedDoctor
}

// Dataset se arma por request y no se cachea: grants/revokes se ven al instante.
type Dataset []Entry

type Resolver struct {
	reports ReportSource
	grants  GrantSource
	users   UserSource
}

func NewResolver(rs ReportSource, gs GrantSource, us UserSource) *Resolver {
	return &Resolver{reports: rs, grants: gs, users: us}
}

func (r *Resolver) Resolve(ctx context.Context, actor Actor) (Dataset, error) {
	switch a := actor.(type) {
	case PatientActor:
		return r.forPatient(ctx, a.Patient)
	case DoctorActor:
		return r.forDoctor(ctx, a.Doctor)
	default:
		return nil, ErrInvalidRole
	}
}

func (r *Resolver) forPatient(ctx context.Context, patient users.User) (Dataset, error) {
	reps, err := r.reports.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	grants, err := r.grants.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}

	doctors := make([]GrantedDoctor, 0, len(grants))
	for _, g := range grants {
		doc, err := r.lookup(ctx, g.DoctorID)
		if err != nil {
			return nil, err
		}
		if doc == nil {
			continue
		}
		doctors = append(doctors, GrantedDoctor{Doctor: *doc, GrantedAt: g.GrantedAt})
	}

	return Dataset{{Subject: patient, Reports: reps, Doctors: doctors}}, nil
}

func (r *Resolver) forDoctor(ctx context.Context, doctor users.User) (Dataset, error) {
	grants, err := r.grants.ListByDoctor(ctx, doctor.ID)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}

	out := make(Dataset, 0, len(grants))
	for _, g := range grants {
		patient, err := r.lookup(ctx, g.PatientID)
		if err != nil {
			return nil, err
		}
		if patient == nil {
			continue
		}

		reps, err := r.reports.ListByPatient(ctx, g.PatientID)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}

		grantedAt := g.GrantedAt
		out = append(out, Entry{Subject: *patient, Reports: reps, GrantedAt: &grantedAt})
	}
	return out, nil
}

// lookup devuelve nil (sin error) si la cuenta ya no existe.
func (r *Resolver) lookup(ctx context.Context, id int64) (*users.User, error) {
	u, err := r.users.GetByID(ctx, id)
	if errors.Is(err, users.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}
