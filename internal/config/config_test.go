package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("TRUST_PROXY", "")
	t.Setenv("EMAIL_FROM", "")

	cfg := Load()
	if cfg.DBHost != "localhost" || cfg.Port != "8080" || cfg.AllowedOrigins != "*" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TrustProxy || cfg.EmailFrom == "" {
		t.Errorf("unexpected proxy/mail defaults: %+v", cfg)
	}
}

func TestLoadMailAndProxy(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("EMAIL_FROM", "Lan <lan@example.com>")

	cfg := Load()
	if !cfg.TrustProxy || cfg.ResendAPIKey != "re_test" || cfg.EmailFrom != "Lan <lan@example.com>" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_NAME=from_file\nPORT=9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("PORT", "7000")
	t.Setenv("DB_NAME", "")
	os.Unsetenv("DB_NAME")

	cfg := Load()
	if cfg.DBName != "from_file" {
		t.Errorf("DBName = %q, want from_file", cfg.DBName)
	}
	if cfg.Port != "7000" {
		t.Errorf("Port = %q, environment should win over .env", cfg.Port)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}
