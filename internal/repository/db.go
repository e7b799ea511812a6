package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
)

//go:embed schema.sql
var schemaDDL string

type Config struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to the configured database and applies the schema.
// postgres:// DSNs go through pgx; anything else is treated as a SQLite file
// path (":memory:" included).
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*sqlx.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		driver = "pgx"
	}
	logger.Info("connecting to database", "driver", driver)

	db, err := sqlx.ConnectContext(ctx, driver, cfg.DSN)
	if err != nil {
		logger.Error("failed to connect to database", "driver", driver, "error", err)
		return nil, common.NewAppError("DB_CONNECT",
			fmt.Sprintf("connect %s: %v", driver, err), common.ErrDatabase)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, common.NewAppError("DB_SCHEMA",
			fmt.Sprintf("apply schema: %v", err), common.ErrDatabase)
	}

	logger.Info("successfully connected to database")
	return db, nil
}

// HealthCheck pings the database to catch DSN issues early.
func HealthCheck(ctx context.Context, db *sqlx.DB) error {
	return db.PingContext(ctx)
}
