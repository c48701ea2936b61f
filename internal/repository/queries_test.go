package repository

import (
	"strings"
	"testing"
	"time"

	"stock-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestInsertTransactionQueryCastsPrice(t *testing.T) {
	tx := &models.Transaction{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		StockSymbol:     "AAPL",
		TransactionType: models.TransactionTypeBuy,
		Quantity:        10,
		Price:           decimal.RequireFromString("187.25"),
		TransactionDate: time.Now().UTC(),
	}

	sql, args, err := insertTransactionQuery(tx, squirrel.Dollar).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if !strings.Contains(sql, "CAST($6 AS NUMERIC)") {
		t.Fatalf("price should be cast from text, got %s", sql)
	}
	if len(args) != 7 {
		t.Fatalf("expected 7 args, got %d", len(args))
	}
	if args[5] != "187.25" {
		t.Fatalf("price arg = %v, want 187.25", args[5])
	}
	if args[3] != "BUY" {
		t.Fatalf("type arg = %v, want BUY", args[3])
	}
}

func TestHoldingsQueryFiltersPositivePositions(t *testing.T) {
	sql, args, err := holdingsQuery(uuid.New(), squirrel.Question).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if !strings.Contains(sql, "GROUP BY stock_symbol HAVING SUM(") || !strings.Contains(sql, ") > 0") {
		t.Fatalf("expected grouping with positive filter, got %s", sql)
	}
	if !strings.HasSuffix(sql, "ORDER BY stock_symbol") {
		t.Fatalf("expected symbol ordering, got %s", sql)
	}
	if len(args) != 1 {
		t.Fatalf("expected only the user id arg, got %v", args)
	}
}

func TestListTransactionsQueryNewestFirst(t *testing.T) {
	sql, _, err := listTransactionsQuery(uuid.New(), squirrel.Dollar).ToSql()
	if err != nil {
		t.Fatalf("ToSql: %v", err)
	}
	if !strings.Contains(sql, "ORDER BY transaction_date DESC") {
		t.Fatalf("expected newest first ordering, got %s", sql)
	}
	if !strings.Contains(sql, "WHERE user_id = $1") {
		t.Fatalf("expected user filter, got %s", sql)
	}
}
