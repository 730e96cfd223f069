package chatbot

import (
	"errors"

	"health-records-portal/internal/domain/users"
)

var ErrInvalidRole = errors.New("invalid role")

// Actor es quien hace la consulta. Variante cerrada: solo PatientActor y DoctorActor.
type Actor interface {
	User() users.User
	Role() users.Role
	isActor()
}

type PatientActor struct {
	Patient users.User
}

func (a PatientActor) User() users.User { return a.Patient }
func (PatientActor) Role() users.Role   { return users.RolePatient }
func (PatientActor) isActor()           {}

type DoctorActor struct {
	Doctor users.User
}

func (a DoctorActor) User() users.User { return a.Doctor }
func (DoctorActor) Role() users.Role   { return users.RoleDoctor }
func (DoctorActor) isActor()           {}

// NewActor arma el variant según el rol persistido.
func NewActor(u users.User) (Actor, error) {
	switch u.Role {
	case users.RolePatient:
		return PatientActor{Patient: u}, nil
	case users.RoleDoctor:
		return DoctorActor{Doctor: u}, nil
	default:
		return nil, ErrInvalidRole
	}
}
