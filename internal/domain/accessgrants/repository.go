package accessgrants

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("access grant not found")
	ErrDuplicate = errors.New("access grant already exists")
)

// Repository persiste grants.
//   - Create asigna ID; un par (patient, doctor) repetido => ErrDuplicate.
//   - Los List* ordenan por (GrantedAt, ID) asc.
type Repository interface {
	Create(ctx context.Context, g Grant) (Grant, error)
	Get(ctx context.Context, patientID, doctorID int64) (Grant, error)
	Delete(ctx context.Context, patientID, doctorID int64) error
	ListByPatient(ctx context.Context, patientID int64) ([]Grant, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]Grant, error)
}
