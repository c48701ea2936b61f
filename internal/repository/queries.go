package repository

import (
	"fmt"

	"stock-ledger/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var transactionColumns = []string{
	"id", "user_id", "stock_symbol", "transaction_type", "quantity",
	"CAST(price AS TEXT)", "transaction_date",
}

// signedQuantity counts buys as positive and sells as negative quantity.
const signedQuantity = "CASE WHEN transaction_type = 'BUY' THEN quantity WHEN transaction_type = 'SELL' THEN -quantity ELSE 0 END"

type rowScanner interface {
	Scan(dest ...any) error
}

func insertTransactionQuery(tx *models.Transaction, ph squirrel.PlaceholderFormat) squirrel.InsertBuilder {
	return squirrel.Insert("transactions").
		Columns("id", "user_id", "stock_symbol", "transaction_type", "quantity", "price", "transaction_date").
		Values(tx.ID, tx.UserID, tx.StockSymbol, string(tx.TransactionType), tx.Quantity,
			squirrel.Expr("CAST(? AS NUMERIC)", tx.Price.String()), tx.TransactionDate).
		PlaceholderFormat(ph)
}

func listTransactionsQuery(userID uuid.UUID, ph squirrel.PlaceholderFormat) squirrel.SelectBuilder {
	return squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("transaction_date DESC", "id").
		PlaceholderFormat(ph)
}

func netQuantityQuery(userID uuid.UUID, symbol string, ph squirrel.PlaceholderFormat) squirrel.SelectBuilder {
	return squirrel.Select("CAST(COALESCE(SUM(" + signedQuantity + "), 0) AS BIGINT)").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID, "stock_symbol": symbol}).
		PlaceholderFormat(ph)
}

func holdingsQuery(userID uuid.UUID, ph squirrel.PlaceholderFormat) squirrel.SelectBuilder {
	return squirrel.Select("stock_symbol", "CAST(SUM("+signedQuantity+") AS BIGINT) AS net_quantity").
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		GroupBy("stock_symbol").
		Having("SUM(" + signedQuantity + ") > 0").
		OrderBy("stock_symbol").
		PlaceholderFormat(ph)
}

func totalsQuery(userID uuid.UUID, ph squirrel.PlaceholderFormat) squirrel.SelectBuilder {
	return squirrel.Select(
		"CAST(COALESCE(SUM(CASE WHEN transaction_type = 'BUY' THEN quantity * price ELSE 0 END), 0) AS TEXT) AS total_buy",
		"CAST(COALESCE(SUM(CASE WHEN transaction_type = 'SELL' THEN quantity * price ELSE 0 END), 0) AS TEXT) AS total_sell",
	).
		From("transactions").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(ph)
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var (
		tx    models.Transaction
		ttype string
		price string
	)
	if err := row.Scan(&tx.ID, &tx.UserID, &tx.StockSymbol, &ttype, &tx.Quantity, &price, &tx.TransactionDate); err != nil {
		return nil, err
	}

	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("invalid stored price %q: %w", price, err)
	}
	tx.Price = p
	tx.TransactionType = models.TransactionType(ttype)

	return &tx, nil
}

func scanHolding(row rowScanner) (*models.Holding, error) {
	var h models.Holding
	if err := row.Scan(&h.StockSymbol, &h.NetQuantity); err != nil {
		return nil, err
	}
	return &h, nil
}

func scanTotals(row rowScanner) (*models.Totals, error) {
	var buy, sell string
	if err := row.Scan(&buy, &sell); err != nil {
		return nil, err
	}

	totalBuy, err := decimal.NewFromString(buy)
	if err != nil {
		return nil, fmt.Errorf("invalid total_buy %q: %w", buy, err)
	}
	totalSell, err := decimal.NewFromString(sell)
	if err != nil {
		return nil, fmt.Errorf("invalid total_sell %q: %w", sell, err)
	}

	return &models.Totals{TotalBuy: totalBuy, TotalSell: totalSell}, nil
}
