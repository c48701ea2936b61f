package models

import "github.com/shopspring/decimal"

// Holding is the net position in one symbol: bought minus sold.
type Holding struct {
	StockSymbol string `db:"stock_symbol"`
	NetQuantity int64  `db:"net_quantity"`
}

// Totals is the cash spent on buys and received from sells.
type Totals struct {
	TotalBuy  decimal.Decimal `db:"total_buy"`
	TotalSell decimal.Decimal `db:"total_sell"`
}
