package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(64)  NOT NULL UNIQUE,
		email         VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(20)  NOT NULL CHECK (role IN ('patient', 'doctor')),
		full_name     VARCHAR(100) NOT NULL,
		created_at    TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS medical_reports (
		id           BIGSERIAL PRIMARY KEY,
		patient_id   BIGINT       NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		disease_name VARCHAR(100) NOT NULL,
		description  TEXT         NOT NULL DEFAULT '',
		file_ref     VARCHAR(255) NOT NULL,
		file_name    VARCHAR(255) NOT NULL,
		file_type    VARCHAR(100) NOT NULL,
		uploaded_at  TIMESTAMPTZ  NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_reports_patient ON medical_reports (patient_id, uploaded_at)`,
	`CREATE TABLE IF NOT EXISTS doctor_access (
		id         BIGSERIAL PRIMARY KEY,
		patient_id BIGINT      NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		doctor_id  BIGINT      NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		granted_at TIMESTAMPTZ NOT NULL,
		CONSTRAINT unique_patient_doctor_access UNIQUE (patient_id, doctor_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doctor_access_doctor ON doctor_access (doctor_id, granted_at)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		username      VARCHAR(64)  NOT NULL UNIQUE,
		email         VARCHAR(120) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(20)  NOT NULL CHECK (role IN ('patient', 'doctor')),
		full_name     VARCHAR(100) NOT NULL,
		created_at    TIMESTAMP    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS medical_reports (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id   INTEGER      NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		disease_name VARCHAR(100) NOT NULL,
		description  TEXT         NOT NULL DEFAULT '',
		file_ref     VARCHAR(255) NOT NULL,
		file_name    VARCHAR(255) NOT NULL,
		file_type    VARCHAR(100) NOT NULL,
		uploaded_at  TIMESTAMP    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_medical_reports_patient ON medical_reports (patient_id, uploaded_at)`,
	`CREATE TABLE IF NOT EXISTS doctor_access (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id INTEGER   NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		doctor_id  INTEGER   NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		granted_at TIMESTAMP NOT NULL,
		CONSTRAINT unique_patient_doctor_access UNIQUE (patient_id, doctor_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_doctor_access_doctor ON doctor_access (doctor_id, granted_at)`,
}

// Migrate crea el schema si no existe. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := postgresSchema
	if dialect == DialectSQLite {
		stmts = sqliteSchema
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
