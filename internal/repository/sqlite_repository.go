package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stock-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SQLiteTransactionRepository is the SQLite TransactionStore, used for
// local runs and tests.
type SQLiteTransactionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteTransactionRepository(db *sql.DB, logger *zap.Logger) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SQLiteTransactionRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query, args, err := insertTransactionQuery(tx, squirrel.Question).ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *SQLiteTransactionRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error) {
	query, args, err := listTransactionsQuery(userID, squirrel.Question).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *SQLiteTransactionRepository) NetQuantity(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	query, args, err := netQuantityQuery(userID, symbol, squirrel.Question).ToSql()
	if err != nil {
		return 0, err
	}

	var net int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&net); err != nil {
		return 0, err
	}
	return net, nil
}

func (r *SQLiteTransactionRepository) Holdings(ctx context.Context, userID uuid.UUID) ([]*models.Holding, error) {
	query, args, err := holdingsQuery(userID, squirrel.Question).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *SQLiteTransactionRepository) Totals(ctx context.Context, userID uuid.UUID) (*models.Totals, error) {
	query, args, err := totalsQuery(userID, squirrel.Question).ToSql()
	if err != nil {
		return nil, err
	}

	return scanTotals(r.db.QueryRowContext(ctx, query, args...))
}

// SQLiteUserRepository is the SQLite UserStore.
type SQLiteUserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteUserRepository(db *sql.DB, logger *zap.Logger) *SQLiteUserRepository {
	return &SQLiteUserRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SQLiteUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query, args, err := squirrel.Select("id", "username", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Username, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *SQLiteUserRepository) EnsureExists(ctx context.Context, user *models.User) error {
	query, args, err := squirrel.Insert("users").
		Columns("id", "username", "created_at").
		Values(user.ID, user.Username, user.CreatedAt).
		Options("OR IGNORE").
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.logger.Info("Created ledger user", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))
	}
	return nil
}
