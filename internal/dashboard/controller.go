// Package dashboard drives the ledger page: a transaction form and three
// read views (transaction list, buy/sell totals, net holdings).
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"stock-ledger/internal/client"

	"go.uber.org/zap"
)

// Ledger is the API surface the page needs. *client.Client satisfies it.
type Ledger interface {
	AddTransaction(ctx context.Context, in client.TransactionInput) error
	ListTransactions(ctx context.Context) ([]client.Transaction, error)
	Summary(ctx context.Context) (*client.Summary, error)
	Holdings(ctx context.Context) ([]client.Holding, error)
}

// Form is the transaction entry form.
type Form interface {
	Values() client.TransactionInput
	Reset()
}

// View is where the page writes text. Every setter replaces what was shown.
type View interface {
	SetError(msg string)
	SetTransactions(items []string)
	SetTotals(buy, sell string)
	SetHoldings(items []string)
}

type Controller struct {
	ledger Ledger
	view   View
	logger *zap.Logger
}

func NewController(ledger Ledger, view View, logger *zap.Logger) *Controller {
	return &Controller{
		ledger: ledger,
		view:   view,
		logger: logger,
	}
}

// Submit sends the form as one transaction. On failure the error text is
// shown and the form is left as typed; on success the form is cleared and
// all three views are reloaded.
func (c *Controller) Submit(ctx context.Context, form Form) error {
	c.view.SetError("")

	if err := c.ledger.AddTransaction(ctx, form.Values()); err != nil {
		c.view.SetError(client.DisplayMessage(err))

		var serverErr *client.ServerError
		if errors.As(err, &serverErr) {
			c.logger.Error("Failed to add transaction", zap.Error(err))
		}
		return err
	}

	form.Reset()
	return c.Refresh(ctx)
}

// Refresh reloads all three views. A failing view does not stop the others.
func (c *Controller) Refresh(ctx context.Context) error {
	return errors.Join(
		c.LoadTransactions(ctx),
		c.LoadSummary(ctx),
		c.LoadHoldings(ctx),
	)
}

func (c *Controller) LoadTransactions(ctx context.Context) error {
	txs, err := c.ledger.ListTransactions(ctx)
	if err != nil {
		c.logger.Warn("Failed to load transactions", zap.Error(err))
		return fmt.Errorf("load transactions: %w", err)
	}

	items := make([]string, 0, len(txs))
	for _, tx := range txs {
		items = append(items, FormatTransaction(tx))
	}
	c.view.SetTransactions(items)
	return nil
}

func (c *Controller) LoadSummary(ctx context.Context) error {
	summary, err := c.ledger.Summary(ctx)
	if err != nil {
		c.logger.Warn("Failed to load summary", zap.Error(err))
		return fmt.Errorf("load summary: %w", err)
	}

	c.view.SetTotals(summary.TotalBuy.Text(), summary.TotalSell.Text())
	return nil
}

func (c *Controller) LoadHoldings(ctx context.Context) error {
	holdings, err := c.ledger.Holdings(ctx)
	if err != nil {
		c.logger.Warn("Failed to load holdings", zap.Error(err))
		return fmt.Errorf("load holdings: %w", err)
	}

	items := make([]string, 0, len(holdings))
	for _, h := range holdings {
		items = append(items, FormatHolding(h))
	}
	c.view.SetHoldings(items)
	return nil
}

// FormatTransaction renders "SYMBOL | TYPE | QUANTITY @ PRICE".
func FormatTransaction(tx client.Transaction) string {
	return fmt.Sprintf("%s | %s | %s @ %s", tx.StockSymbol, tx.TransactionType, tx.Quantity, tx.Price)
}

// FormatHolding renders "SYMBOL : NET_QUANTITY".
func FormatHolding(h client.Holding) string {
	return fmt.Sprintf("%s : %s", h.StockSymbol, h.NetQuantity)
}
