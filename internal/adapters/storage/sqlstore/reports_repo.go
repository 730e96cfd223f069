package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"health-records-portal/internal/domain/reports"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

const reportColumns = `id, patient_id, disease_name, description, file_ref, file_name, file_type, uploaded_at`

func (r *ReportsRepo) Create(ctx context.Context, rep reports.Report) (reports.Report, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO medical_reports (patient_id, disease_name, description, file_ref, file_name, file_type, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		rep.PatientID,
		rep.DiseaseName,
		rep.Description,
		rep.FileRef,
		rep.FileName,
		rep.FileType,
		rep.UploadedAt,
	).Scan(&rep.ID)
	if err != nil {
		return reports.Report{}, err
	}
	return rep, nil
}

func (r *ReportsRepo) GetByID(ctx context.Context, id int64) (reports.Report, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+reportColumns+` FROM medical_reports WHERE id = $1`, id)
	rep, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return reports.Report{}, reports.ErrNotFound
		}
		return reports.Report{}, err
	}
	return rep, nil
}

func (r *ReportsRepo) ListByPatient(ctx context.Context, patientID int64) ([]reports.Report, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reportColumns+`
		FROM medical_reports
		WHERE patient_id = $1
		ORDER BY uploaded_at ASC, id ASC
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (reports.Report, error) {
	var rep reports.Report
	err := s.Scan(
		&rep.ID,
		&rep.PatientID,
		&rep.DiseaseName,
		&rep.Description,
		&rep.FileRef,
		&rep.FileName,
		&rep.FileType,
		&rep.UploadedAt,
	)
	return rep, err
}
