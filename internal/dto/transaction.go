package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumericString holds a number sent either as a JSON string ("12.5") or
// as a JSON number (12.5). The text is kept as sent.
type NumericString string

func (n *NumericString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("expected number or numeric string: %w", err)
	}
	*n = NumericString(num.String())
	return nil
}

type CreateTransactionRequest struct {
	StockSymbol     string        `json:"stock_symbol"`
	TransactionType string        `json:"transaction_type"`
	Quantity        NumericString `json:"quantity"`
	Price           NumericString `json:"price"`
}

type TransactionResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	StockSymbol     string  `json:"stock_symbol"`
	TransactionType string  `json:"transaction_type"`
	Quantity        int64   `json:"quantity"`
	Price           float64 `json:"price"`
	TransactionDate string  `json:"transaction_date"`
}

type SummaryResponse struct {
	TotalBuy  float64 `json:"total_buy"`
	TotalSell float64 `json:"total_sell"`
}

type HoldingResponse struct {
	StockSymbol string `json:"stock_symbol"`
	NetQuantity int64  `json:"net_quantity"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
