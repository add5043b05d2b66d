package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 || cfg.StorageDriver != "memory" || cfg.PageSize != "A4" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !cfg.TaxRate.Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("tax rate = %s", cfg.TaxRate)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
app:
  port: 9000
storage:
  driver: sqlite
  dsn: /tmp/vet.db
files:
  remote_timeout_seconds: 3
pdf:
  page_size: Letter
  tax_rate: "0.055"
  margins_mm: 12
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("env should override file port, got %d", cfg.Port)
	}
	if cfg.StorageDriver != "sqlite" || cfg.DBDSN != "/tmp/vet.db" || cfg.RemoteTimeout != 3*time.Second {
		t.Fatalf("file values not applied: %+v", cfg)
	}

	rc := cfg.Render()
	if rc.PageSize != "Letter" || !rc.TaxRate.Equal(decimal.RequireFromString("0.055")) {
		t.Fatalf("render config = %+v", rc)
	}
	if rc.Margins == nil || rc.Margins.Left != 12 {
		t.Fatalf("margins override missing: %+v", rc.Margins)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	if _, err := Load(""); err == nil {
		t.Fatalf("redis without url should fail")
	}

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("TAX_RATE", "abc")
	if _, err := Load(""); err == nil {
		t.Fatalf("invalid tax rate should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("app: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TAX_RATE", "")
	if _, err := Load(path); err == nil {
		t.Fatalf("invalid yaml should fail")
	}
}
