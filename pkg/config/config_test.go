package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("LEDGER_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Database.Driver != DriverPostgres {
		t.Fatalf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Client.APIURL != "http://127.0.0.1:5000" {
		t.Fatalf("unexpected api url %s", cfg.Client.APIURL)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

func TestLoadClientFileOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ledger.yaml")
	content := "client:\n  api_url: http://ledger.local:8080\n  timeout: 3s\nlogger:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := cfg.LoadClientFile(path); err != nil {
		t.Fatalf("LoadClientFile: %v", err)
	}
	if cfg.Client.APIURL != "http://ledger.local:8080" {
		t.Fatalf("api url not overridden: %s", cfg.Client.APIURL)
	}
	if cfg.Client.Timeout != 3*time.Second {
		t.Fatalf("timeout not overridden: %s", cfg.Client.Timeout)
	}
	if cfg.Logger.Level != "debug" {
		t.Fatalf("log level not overridden: %s", cfg.Logger.Level)
	}
}

func TestLoadClientFileMissing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.LoadClientFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
