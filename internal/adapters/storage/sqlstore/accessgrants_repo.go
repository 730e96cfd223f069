package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"health-records-portal/internal/domain/accessgrants"
)

type AccessGrantsRepo struct {
	db *sql.DB
}

func NewAccessGrantsRepo(db *sql.DB) *AccessGrantsRepo {
	return &AccessGrantsRepo{db: db}
}

// Create deja que el constraint unique_patient_doctor_access resuelva carreras.
func (r *AccessGrantsRepo) Create(ctx context.Context, g accessgrants.Grant) (accessgrants.Grant, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO doctor_access (patient_id, doctor_id, granted_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, g.PatientID, g.DoctorID, g.GrantedAt).Scan(&g.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return accessgrants.Grant{}, accessgrants.ErrDuplicate
		}
		return accessgrants.Grant{}, err
	}
	return g, nil
}

func (r *AccessGrantsRepo) Get(ctx context.Context, patientID, doctorID int64) (accessgrants.Grant, error) {
	var g accessgrants.Grant
	err := r.db.QueryRowContext(ctx, `
		SELECT id, patient_id, doctor_id, granted_at
		FROM doctor_access
		WHERE patient_id = $1 AND doctor_id = $2
	`, patientID, doctorID).Scan(&g.ID, &g.PatientID, &g.DoctorID, &g.GrantedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accessgrants.Grant{}, accessgrants.ErrNotFound
		}
		return accessgrants.Grant{}, err
	}
	return g, nil
}

func (r *AccessGrantsRepo) Delete(ctx context.Context, patientID, doctorID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM doctor_access WHERE patient_id = $1 AND doctor_id = $2
	`, patientID, doctorID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return accessgrants.ErrNotFound
	}
	return nil
}

func (r *AccessGrantsRepo) ListByPatient(ctx context.Context, patientID int64) ([]accessgrants.Grant, error) {
	return r.list(ctx, `
		SELECT id, patient_id, doctor_id, granted_at
		FROM doctor_access
		WHERE patient_id = $1
		ORDER BY granted_at ASC, id ASC
	`, patientID)
}

func (r *AccessGrantsRepo) ListByDoctor(ctx context.Context, doctorID int64) ([]accessgrants.Grant, error) {
	return r.list(ctx, `
		SELECT id, patient_id, doctor_id, granted_at
		FROM doctor_access
		WHERE doctor_id = $1
		ORDER BY granted_at ASC, id ASC
	`, doctorID)
}

func (r *AccessGrantsRepo) list(ctx context.Context, query string, arg int64) ([]accessgrants.Grant, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accessgrants.Grant, 0)
	for rows.Next() {
		var g accessgrants.Grant
		if err := rows.Scan(&g.ID, &g.PatientID, &g.DoctorID, &g.GrantedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
