package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdirTemp runs the test from an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{"HABITUAL_PORT", "HABITUAL_DB_PATH", "HABITUAL_LOG_LEVEL", "HABITUAL_LOG_FILE", "HABITUAL_SESSION_TTL", "HABITUAL_LOGIN_RATE"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "habitual.db" {
		t.Errorf("db path = %q, want habitual.db", cfg.DBPath)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Errorf("session ttl = %v, want 720h", cfg.SessionTTL)
	}
	if cfg.LoginPerMin != 10 {
		t.Errorf("login rate = %d, want 10", cfg.LoginPerMin)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HABITUAL_PORT", "9090")
	t.Setenv("HABITUAL_SESSION_TTL", "1h")
	t.Setenv("HABITUAL_LOGIN_RATE", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.Port)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("session ttl = %v, want 1h", cfg.SessionTTL)
	}
	if cfg.LoginPerMin != 3 {
		t.Errorf("login rate = %d, want 3", cfg.LoginPerMin)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("HABITUAL_DB_PATH", "")
	os.Unsetenv("HABITUAL_DB_PATH")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HABITUAL_DB_PATH=from-file.db\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "from-file.db" {
		t.Errorf("db path = %q, want from-file.db", cfg.DBPath)
	}
}

func TestLoadInvalid(t *testing.T) {
	chdirTemp(t)

	t.Setenv("HABITUAL_SESSION_TTL", "forever")
	if _, err := Load(); err == nil {
		t.Error("expected error for bad session ttl")
	}

	t.Setenv("HABITUAL_SESSION_TTL", "1h")
	t.Setenv("HABITUAL_LOGIN_RATE", "0")
	if _, err := Load(); err == nil {
		t.Error("expected error for zero login rate")
	}
}
