package repository

import (
	"context"
	"fmt"

	"stock-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TransactionRepository is the PostgreSQL TransactionStore.
type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	sql, args, err := insertTransactionQuery(tx, squirrel.Dollar).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	sql, args, err := listTransactionsQuery(userID, squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := make([]*models.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, rows.Err()
}

func (r *TransactionRepository) NetQuantity(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	sql, args, err := netQuantityQuery(userID, symbol, squirrel.Dollar).ToSql()
	if err != nil {
		return 0, err
	}

	var net int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&net); err != nil {
		return 0, err
	}
	return net, nil
}

func (r *TransactionRepository) Holdings(ctx context.Context, userID uuid.UUID) ([]*models.Holding, error) {
	sql, args, err := holdingsQuery(userID, squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := make([]*models.Holding, 0)
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	return holdings, rows.Err()
}

func (r *TransactionRepository) Totals(ctx context.Context, userID uuid.UUID) (*models.Totals, error) {
	sql, args, err := totalsQuery(userID, squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	return scanTotals(r.db.QueryRow(ctx, sql, args...))
}
