package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-ledger/internal/api"
	"stock-ledger/internal/api/handlers"
	"stock-ledger/internal/repository"
	"stock-ledger/internal/service"
	"stock-ledger/pkg/config"
	"stock-ledger/pkg/logger"

	"go.uber.org/zap"
)

// @title Stock Ledger API
// @version 1.0
// @description Stock transaction ledger: book buys and sells, read totals and net holdings.

// @host localhost:5000
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting stock ledger service", zap.String("driver", cfg.Database.Driver))

	ctx := context.Background()
	stores, err := repository.Open(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer stores.Close()

	ledgerService, err := service.NewLedgerService(stores.Transactions, stores.Users, &cfg.Ledger, appLogger.Named("ledger"))
	if err != nil {
		appLogger.Fatal("Failed to create ledger service", zap.Error(err))
	}
	if err := ledgerService.Init(ctx); err != nil {
		appLogger.Fatal("Failed to initialize ledger", zap.Error(err))
	}
	logger.Info("Ledger ready", zap.String("user_id", ledgerService.UserID().String()))

	txHandler := handlers.NewTransactionHandler(ledgerService, appLogger.Named("http"))

	app := api.SetupRouter(txHandler, api.RouterOptions{
		StaticDir:    cfg.Server.StaticDir,
		AccessLog:    cfg.Logger.Level == "debug",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
}
