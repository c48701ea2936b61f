package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionValue(t *testing.T) {
	tx := Transaction{Quantity: 3, Price: decimal.RequireFromString("187.25")}
	if got := tx.Value(); !got.Equal(decimal.RequireFromString("561.75")) {
		t.Fatalf("Value() = %s, want 561.75", got)
	}
}
