package repository

import (
	"context"
	"errors"

	"stock-ledger/internal/models"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("record not found")

type TransactionStore interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Transaction, error)
	NetQuantity(ctx context.Context, userID uuid.UUID, symbol string) (int64, error)
	Holdings(ctx context.Context, userID uuid.UUID) ([]*models.Holding, error)
	Totals(ctx context.Context, userID uuid.UUID) (*models.Totals, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EnsureExists(ctx context.Context, user *models.User) error
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		stock_symbol TEXT NOT NULL,
		transaction_type TEXT NOT NULL CHECK (transaction_type IN ('BUY', 'SELL')),
		quantity BIGINT NOT NULL CHECK (quantity > 0),
		price NUMERIC(18, 4) NOT NULL CHECK (price > 0),
		transaction_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_symbol ON transactions (user_id, stock_symbol)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		stock_symbol TEXT NOT NULL,
		transaction_type TEXT NOT NULL CHECK (transaction_type IN ('BUY', 'SELL')),
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		price NUMERIC NOT NULL CHECK (price > 0),
		transaction_date DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_symbol ON transactions (user_id, stock_symbol)`,
}
