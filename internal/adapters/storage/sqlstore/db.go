package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectPostgres, DialectSQLite:
		return d, nil
	default:
		return "", fmt.Errorf("unknown sql dialect %q", s)
	}
}

func (d Dialect) driverName() string {
	if d == DialectSQLite {
		return "sqlite3"
	}
	return "pgx"
}

// Open abre el pool (database/sql) y verifica conectividad.
//   - postgres: driver pgx.
//   - sqlite: go-sqlite3, foreign keys activadas y una sola conexión
//     (":memory:" es una base distinta por conexión).
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("sqlstore: empty dsn")
	}
	if dialect == DialectSQLite {
		dsn = withSQLiteForeignKeys(dsn)
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func withSQLiteForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// isUniqueViolation reconoce el error de constraint UNIQUE de ambos drivers.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
