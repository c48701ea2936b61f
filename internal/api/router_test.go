package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stock-ledger/internal/api/handlers"
	"stock-ledger/internal/repository"
	"stock-ledger/internal/service"
	"stock-ledger/pkg/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func newTestRouter(t *testing.T) *fiber.App {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	svc, err := service.NewLedgerService(
		repository.NewSQLiteTransactionRepository(db, zap.NewNop()),
		repository.NewSQLiteUserRepository(db, zap.NewNop()),
		&config.LedgerConfig{UserID: "00000000-0000-0000-0000-000000000001", Username: "demo"},
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewLedgerService: %v", err)
	}
	if err := svc.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<h1>Stock Ledger</h1>"), 0644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	return SetupRouter(handlers.NewTransactionHandler(svc, zap.NewNop()), RouterOptions{StaticDir: staticDir}, zap.NewNop())
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(raw)
}

func TestLedgerFlow(t *testing.T) {
	app := newTestRouter(t)

	status, body := call(t, app, "POST", "/api/transactions",
		`{"stock_symbol":"aapl","transaction_type":"buy","quantity":"10","price":"150"}`)
	if status != fiber.StatusCreated || !strings.Contains(body, "Transaction added") {
		t.Fatalf("buy: %d %s", status, body)
	}

	status, body = call(t, app, "POST", "/api/transactions",
		`{"stock_symbol":"AAPL","transaction_type":"sell","quantity":"11","price":"160"}`)
	if status != fiber.StatusBadRequest || !strings.Contains(body, "Not enough stock to sell") {
		t.Fatalf("oversell: %d %s", status, body)
	}

	status, body = call(t, app, "POST", "/api/transactions",
		`{"stock_symbol":"AAPL","transaction_type":"sell","quantity":4,"price":160}`)
	if status != fiber.StatusCreated {
		t.Fatalf("sell: %d %s", status, body)
	}

	status, body = call(t, app, "GET", "/api/transactions", "")
	if status != fiber.StatusOK {
		t.Fatalf("list: %d %s", status, body)
	}
	var txs []map[string]any
	if err := json.Unmarshal([]byte(body), &txs); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(txs) != 2 || txs[0]["transaction_type"] != "SELL" {
		t.Fatalf("unexpected list %v", txs)
	}

	status, body = call(t, app, "GET", "/api/summary", "")
	if status != fiber.StatusOK || body != `{"total_buy":1500,"total_sell":640}` {
		t.Fatalf("summary: %d %s", status, body)
	}

	status, body = call(t, app, "GET", "/api/holdings", "")
	if status != fiber.StatusOK || body != `[{"stock_symbol":"AAPL","net_quantity":6}]` {
		t.Fatalf("holdings: %d %s", status, body)
	}
}

func TestEmptyLedgerViews(t *testing.T) {
	app := newTestRouter(t)

	if _, body := call(t, app, "GET", "/api/transactions", ""); body != "[]" {
		t.Fatalf("expected empty list, got %s", body)
	}
	if _, body := call(t, app, "GET", "/api/holdings", ""); body != "[]" {
		t.Fatalf("expected empty holdings, got %s", body)
	}
	if _, body := call(t, app, "GET", "/api/summary", ""); body != `{"total_buy":0,"total_sell":0}` {
		t.Fatalf("expected zero summary, got %s", body)
	}
}

func TestHealthAndIndex(t *testing.T) {
	app := newTestRouter(t)

	if status, body := call(t, app, "GET", "/health", ""); status != fiber.StatusOK || body != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", status, body)
	}
	if status, body := call(t, app, "GET", "/", ""); status != fiber.StatusOK || !strings.Contains(body, "Stock Ledger") {
		t.Fatalf("index: %d %s", status, body)
	}
}

func TestCORSPreflight(t *testing.T) {
	app := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/transactions", nil)
	req.Header.Set("Origin", "http://localhost:8000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}
