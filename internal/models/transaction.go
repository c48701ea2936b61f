package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeBuy  TransactionType = "BUY"
	TransactionTypeSell TransactionType = "SELL"
)

type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	UserID          uuid.UUID       `db:"user_id"`
	StockSymbol     string          `db:"stock_symbol"`
	TransactionType TransactionType `db:"transaction_type"`
	Quantity        int64           `db:"quantity"`
	Price           decimal.Decimal `db:"price"`
	TransactionDate time.Time       `db:"transaction_date"`
}

// Value is the cash amount moved by the transaction.
func (t *Transaction) Value() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Quantity))
}
