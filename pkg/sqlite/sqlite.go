package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"stock-ledger/pkg/config"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at cfg.Path. A single connection is kept
// so that ":memory:" databases survive between queries.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode = WAL;", "PRAGMA foreign_keys = ON;"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			logger.Warn("Failed to apply pragma", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	logger.Info("Database connection established",
		zap.String("driver", config.DriverSQLite),
		zap.String("path", cfg.Path),
	)

	return db, nil
}
