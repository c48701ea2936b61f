package main

import (
	"context"
	"errors"
	"log"

	"stock-ledger/internal/dto"
	"stock-ledger/internal/repository"
	"stock-ledger/internal/service"
	"stock-ledger/pkg/config"
	"stock-ledger/pkg/logger"

	"go.uber.org/zap"
)

// demoTransactions is booked in order, so every sell is covered by the
// buys before it.
var demoTransactions = []dto.CreateTransactionRequest{
	{StockSymbol: "AAPL", TransactionType: "BUY", Quantity: "20", Price: "172.40"},
	{StockSymbol: "MSFT", TransactionType: "BUY", Quantity: "8", Price: "411.15"},
	{StockSymbol: "NVDA", TransactionType: "BUY", Quantity: "15", Price: "118.90"},
	{StockSymbol: "AAPL", TransactionType: "SELL", Quantity: "5", Price: "189.75"},
	{StockSymbol: "TSLA", TransactionType: "BUY", Quantity: "4", Price: "245.00"},
	{StockSymbol: "TSLA", TransactionType: "SELL", Quantity: "4", Price: "262.30"},
	{StockSymbol: "NVDA", TransactionType: "SELL", Quantity: "3", Price: "131.05"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	stores, err := repository.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer stores.Close()

	ledgerService, err := service.NewLedgerService(stores.Transactions, stores.Users, &cfg.Ledger, appLogger.Named("ledger"))
	if err != nil {
		logger.Fatal("Failed to create ledger service", zap.Error(err))
	}
	if err := ledgerService.Init(ctx); err != nil {
		logger.Fatal("Failed to initialize ledger", zap.Error(err))
	}

	logger.Info("Starting database seeding...")

	seeded, err := seed(ctx, ledgerService, appLogger)
	if err != nil {
		logger.Fatal("Failed to seed transactions", zap.Error(err))
	}

	logger.Info("Database seeding completed successfully!", zap.Int("transactions", seeded))
}

// seed books the demo transactions unless the ledger already has any.
func seed(ctx context.Context, ledger *service.LedgerService, logger *zap.Logger) (int, error) {
	existing, err := ledger.ListTransactions(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		logger.Info("Ledger already has transactions, skipping", zap.Int("count", len(existing)))
		return 0, nil
	}

	seeded := 0
	for i := range demoTransactions {
		req := demoTransactions[i]
		if _, err := ledger.AddTransaction(ctx, &req); err != nil {
			if errors.Is(err, service.ErrInsufficientHoldings) {
				logger.Warn("Skipping uncovered sell", zap.String("symbol", req.StockSymbol))
				continue
			}
			return seeded, err
		}
		seeded++
	}

	return seeded, nil
}
