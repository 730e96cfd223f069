package reports

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("report not found")

// Repository persiste reportes. ListByPatient ordena por (UploadedAt, ID) asc.
type Repository interface {
	Create(ctx context.Context, r Report) (Report, error)
	GetByID(ctx context.Context, id int64) (Report, error)
	ListByPatient(ctx context.Context, patientID int64) ([]Report, error)
}
