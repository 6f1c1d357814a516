package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAX_PRICE", "")
	t.Setenv("DEBUG", "")
	t.Setenv("CACHE_BACKEND", "")

	cfg := Load()
	if cfg.MaxPrice != 500000 {
		t.Errorf("MaxPrice: got %d, want 500000", cfg.MaxPrice)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("CacheBackend: got %q, want file", cfg.CacheBackend)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MAX_PRICE", "120000")
	t.Setenv("DEBUG", "true")
	t.Setenv("SEK_EUR_RATE", "0.1")
	t.Setenv("RATE_LIMIT_MS", "not-a-number")

	cfg := Load()
	if cfg.MaxPrice != 120000 {
		t.Errorf("MaxPrice: got %d, want 120000", cfg.MaxPrice)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
	if cfg.SEKToEUR != 0.1 {
		t.Errorf("SEKToEUR: got %v, want 0.1", cfg.SEKToEUR)
	}
	if cfg.RateLimitMs != 0 {
		t.Errorf("RateLimitMs: got %d, want fallback 0", cfg.RateLimitMs)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5432", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "boats", PostgresSSLMode: "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=boats sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
}
