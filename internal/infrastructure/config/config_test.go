package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/questcycle/backend/internal/domain/dependency"
	"github.com/questcycle/backend/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDRESS", "HISTORY_BACKEND", "HISTORY_LIMIT", "SESSION_SIZE", "KEEPALIVE_INTERVAL", "QUESTION_FILE"} {
		t.Setenv(k, "")
	}

	cfg := config.Load()

	if cfg.ServerAddress != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ServerAddress)
	}
	if cfg.HistoryBackend != config.HistoryBackendSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.HistoryBackend)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("expected history limit 20, got %d", cfg.HistoryLimit)
	}
	if cfg.SessionSize != 10 {
		t.Errorf("expected session size 10, got %d", cfg.SessionSize)
	}
	if cfg.KeepAliveInterval != 10*time.Minute {
		t.Errorf("expected 10m keep-alive, got %s", cfg.KeepAliveInterval)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HISTORY_BACKEND", "redis")
	t.Setenv("HISTORY_LIMIT", "5")
	t.Setenv("KEEPALIVE_INTERVAL", "0")
	t.Setenv("STORE_TIMEOUT", "250ms")

	cfg := config.Load()

	if cfg.HistoryBackend != config.HistoryBackendRedis {
		t.Errorf("expected redis backend, got %q", cfg.HistoryBackend)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("expected history limit 5, got %d", cfg.HistoryLimit)
	}
	if cfg.KeepAliveInterval != 0 {
		t.Errorf("expected keep-alive disabled, got %s", cfg.KeepAliveInterval)
	}
	if cfg.StoreTimeout != 250*time.Millisecond {
		t.Errorf("expected 250ms store timeout, got %s", cfg.StoreTimeout)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalog_EmptyPathUsesDefaults(t *testing.T) {
	cat, err := config.LoadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cat.Dependencies.IsPrincipal("221") {
		t.Error("expected built-in group 221 to be present")
	}
	if len(cat.Media) != 0 {
		t.Errorf("expected no media, got %d", len(cat.Media))
	}
}

func TestLoadCatalog_YAML(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
dependencies:
  "10": ["11", "12"]
media:
  "10":
    image: figura.png
    caption: Figura 1
    image_first: true
`)

	cat, err := config.LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deps := cat.Dependencies.DependentsOf("10")
	if len(deps) != 2 || deps[0] != "11" || deps[1] != "12" {
		t.Errorf("expected [11 12], got %v", deps)
	}
	if cat.Dependencies.IsPrincipal("221") {
		t.Error("file groups should replace the built-in ones")
	}

	m, ok := cat.Media["10"]
	if !ok {
		t.Fatal("expected media for question 10")
	}
	if m.Image != "figura.png" || m.Caption != "Figura 1" || !m.ImageFirst {
		t.Errorf("unexpected media %+v", m)
	}
}

func TestLoadCatalog_MediaOnlyKeepsDefaultGroups(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
media:
  "226":
    image: figura.png
`)

	cat, err := config.LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cat.Dependencies.IsPrincipal("1") {
		t.Error("expected built-in groups when no dependencies section")
	}
}

func TestLoadCatalog_Malformed(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
dependencies:
  "1": ["2"]
  "3": ["2"]
`)

	_, err := config.LoadCatalog(path)
	if !errors.Is(err, dependency.ErrMalformedCatalog) {
		t.Errorf("expected ErrMalformedCatalog, got %v", err)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := config.LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing catalog file")
	}
}
