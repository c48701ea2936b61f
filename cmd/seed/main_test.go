package main

import (
	"context"
	"testing"

	"stock-ledger/internal/repository"
	"stock-ledger/internal/service"
	"stock-ledger/pkg/config"

	"go.uber.org/zap"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	stores, err := repository.Open(ctx, &config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer stores.Close()

	ledger, err := service.NewLedgerService(stores.Transactions, stores.Users,
		&config.LedgerConfig{UserID: "00000000-0000-0000-0000-000000000001", Username: "demo"}, zap.NewNop())
	if err != nil {
		t.Fatalf("NewLedgerService: %v", err)
	}
	if err := ledger.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}

	n, err := seed(ctx, ledger, zap.NewNop())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != len(demoTransactions) {
		t.Fatalf("expected %d seeded, got %d", len(demoTransactions), n)
	}

	n, err = seed(ctx, ledger, zap.NewNop())
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 {
		t.Fatalf("second seed should be a no-op, got %d", n)
	}

	holdings, err := ledger.Holdings(ctx)
	if err != nil {
		t.Fatalf("Holdings: %v", err)
	}
	if len(holdings) != 3 {
		t.Fatalf("expected AAPL, MSFT and NVDA held, got %+v", holdings)
	}
}
