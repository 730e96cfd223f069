package main

import (
	"context"
	"database/sql"
	"fmt"

	"health-records-portal/internal/adapters/storage/sqlstore"
	"health-records-portal/internal/config"
)

// openStore devuelve nil si DB_DRIVER está vacío (repos en memoria).
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (*sql.DB, error) {
	if cfg.DBDriver == "" {
		return nil, nil
	}
	dialect, err := sqlstore.ParseDialect(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	db, err := sqlstore.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if migrate {
		if err := sqlstore.Migrate(ctx, db, dialect); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
