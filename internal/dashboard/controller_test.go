package dashboard

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"stock-ledger/internal/client"

	"go.uber.org/zap"
)

type fakeLedger struct {
	addErr  error
	readErr error

	added     []client.TransactionInput
	listCalls int
	sumCalls  int
	holdCalls int
	txs       []client.Transaction
	summary   client.Summary
	holdings  []client.Holding
}

func (f *fakeLedger) AddTransaction(_ context.Context, in client.TransactionInput) error {
	f.added = append(f.added, in)
	return f.addErr
}

func (f *fakeLedger) ListTransactions(context.Context) ([]client.Transaction, error) {
	f.listCalls++
	return f.txs, f.readErr
}

func (f *fakeLedger) Summary(context.Context) (*client.Summary, error) {
	f.sumCalls++
	if f.readErr != nil {
		return nil, f.readErr
	}
	return &f.summary, nil
}

func (f *fakeLedger) Holdings(context.Context) ([]client.Holding, error) {
	f.holdCalls++
	return f.holdings, f.readErr
}

func sampleLedger() *fakeLedger {
	return &fakeLedger{
		txs: []client.Transaction{
			{StockSymbol: client.V("AAPL"), TransactionType: client.V("BUY"), Quantity: client.V(10), Price: client.V("187.25")},
			{StockSymbol: client.V("MSFT"), TransactionType: client.V("SELL"), Quantity: client.V("2"), Price: client.V(400.5)},
		},
		summary:  client.Summary{TotalBuy: client.V(1872.5), TotalSell: client.V(801)},
		holdings: []client.Holding{{StockSymbol: client.V("AAPL"), NetQuantity: client.V(10)}},
	}
}

func TestSubmitSuccessResetsFormAndReloads(t *testing.T) {
	ledger := sampleLedger()
	view := &State{Error: "old error"}
	form := &StaticForm{Input: client.TransactionInput{StockSymbol: "AAPL", TransactionType: "buy", Quantity: "10", Price: "187.25"}}

	c := NewController(ledger, view, zap.NewNop())
	if err := c.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(ledger.added) != 1 {
		t.Fatalf("expected one POST, got %d", len(ledger.added))
	}
	want := client.TransactionInput{StockSymbol: "AAPL", TransactionType: "buy", Quantity: "10", Price: "187.25"}
	if ledger.added[0] != want {
		t.Fatalf("posted %+v, want %+v", ledger.added[0], want)
	}
	if form.Values() != (client.TransactionInput{}) {
		t.Fatalf("form not reset: %+v", form.Values())
	}
	if ledger.listCalls != 1 || ledger.sumCalls != 1 || ledger.holdCalls != 1 {
		t.Fatalf("expected each read once, got %d/%d/%d", ledger.listCalls, ledger.sumCalls, ledger.holdCalls)
	}
	if view.Error != "" {
		t.Fatalf("error not cleared: %q", view.Error)
	}
	if !reflect.DeepEqual(view.Transactions, []string{"AAPL | BUY | 10 @ 187.25", "MSFT | SELL | 2 @ 400.5"}) {
		t.Fatalf("unexpected transactions %q", view.Transactions)
	}
	if view.TotalBuy != "1872.5" || view.TotalSell != "801" {
		t.Fatalf("unexpected totals %s/%s", view.TotalBuy, view.TotalSell)
	}
	if !reflect.DeepEqual(view.Holdings, []string{"AAPL : 10"}) {
		t.Fatalf("unexpected holdings %q", view.Holdings)
	}
}

func TestSubmitShowsServerMessage(t *testing.T) {
	ledger := sampleLedger()
	ledger.addErr = &client.APIError{StatusCode: 400, Message: "Not enough stock to sell"}
	view := &State{}
	form := &StaticForm{Input: client.TransactionInput{StockSymbol: "AAPL", TransactionType: "sell", Quantity: "99", Price: "1"}}

	c := NewController(ledger, view, zap.NewNop())
	if err := c.Submit(context.Background(), form); err == nil {
		t.Fatalf("expected error")
	}

	if view.Error != "Not enough stock to sell" {
		t.Fatalf("unexpected error text %q", view.Error)
	}
	if form.Values().Quantity != "99" {
		t.Fatalf("form must keep its values on failure")
	}
	if ledger.listCalls+ledger.sumCalls+ledger.holdCalls != 0 {
		t.Fatalf("views must not reload on failure")
	}
}

func TestSubmitServerError(t *testing.T) {
	ledger := sampleLedger()
	ledger.addErr = &client.ServerError{Err: errors.New("connection refused")}
	view := &State{}

	c := NewController(ledger, view, zap.NewNop())
	_ = c.Submit(context.Background(), &StaticForm{})

	if view.Error != client.ServerErrorMessage {
		t.Fatalf("expected %q, got %q", client.ServerErrorMessage, view.Error)
	}
}

func TestRefreshLoadsEveryViewDespiteFailures(t *testing.T) {
	ledger := sampleLedger()
	ledger.readErr = errors.New("boom")
	view := &State{Transactions: []string{"kept"}}

	c := NewController(ledger, view, zap.NewNop())
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("expected joined error")
	}
	if ledger.listCalls != 1 || ledger.sumCalls != 1 || ledger.holdCalls != 1 {
		t.Fatalf("every view should be attempted")
	}
	if !reflect.DeepEqual(view.Transactions, []string{"kept"}) {
		t.Fatalf("failed load must leave the view untouched, got %q", view.Transactions)
	}
}

func TestLoadReplacesViewContent(t *testing.T) {
	ledger := sampleLedger()
	view := &State{Holdings: []string{"OLD : 1", "GONE : 2"}}

	c := NewController(ledger, view, zap.NewNop())
	if err := c.LoadHoldings(context.Background()); err != nil {
		t.Fatalf("LoadHoldings: %v", err)
	}
	if !reflect.DeepEqual(view.Holdings, []string{"AAPL : 10"}) {
		t.Fatalf("expected replaced holdings, got %q", view.Holdings)
	}

	ledger.holdings = nil
	if err := c.LoadHoldings(context.Background()); err != nil {
		t.Fatalf("LoadHoldings: %v", err)
	}
	if len(view.Holdings) != 0 {
		t.Fatalf("expected empty holdings, got %q", view.Holdings)
	}
}

func TestFormatNullFields(t *testing.T) {
	got := FormatTransaction(client.Transaction{StockSymbol: client.V("AAPL"), TransactionType: client.V(nil)})
	if got != "AAPL | null | undefined @ undefined" {
		t.Fatalf("unexpected rendering %q", got)
	}
}
