package repository

import (
	"context"
	"fmt"

	"stock-ledger/pkg/config"
	"stock-ledger/pkg/postgres"
	"stock-ledger/pkg/sqlite"

	"go.uber.org/zap"
)

// Stores bundles the repositories of one database connection.
type Stores struct {
	Transactions TransactionStore
	Users        UserStore
	close        func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the database selected by cfg.Driver.
func Open(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Transactions: NewTransactionRepository(pool, logger),
			Users:        NewUserRepository(pool, logger),
			close:        pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Transactions: NewSQLiteTransactionRepository(db, logger),
			Users:        NewSQLiteUserRepository(db, logger),
			close:        func() { db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
