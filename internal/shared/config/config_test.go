package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_URL", "LLM_PROVIDER", "ENV", "PUBLIC_APPLY_BURST"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.DatabaseDriver != "sqlite" {
		t.Fatalf("driver = %q, want sqlite", cfg.DatabaseDriver)
	}
	if cfg.LLMProvider != "anthropic" {
		t.Fatalf("provider = %q", cfg.LLMProvider)
	}
	if cfg.Env != "dev" || !cfg.IsDevLike() {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.PublicApplyBurst != 5 || cfg.BatchConcurrency <= 0 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
}

func TestLoadInfersPostgresFromURL(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/ats")
	if got := Load().DatabaseDriver; got != "postgres" {
		t.Fatalf("driver = %q", got)
	}
}

func TestNormalizers(t *testing.T) {
	tests := []struct {
		fn   func(string) string
		in   string
		want string
	}{
		{normalizeEnv, "PROD", "production"},
		{normalizeEnv, "whatever", "dev"},
		{normalizeDriver, "sqlite3", "sqlite"},
		{normalizeDriver, "pgx", "postgres"},
		{normalizeDriver, "mysql", ""},
		{normalizeProvider, "Google", "gemini"},
		{normalizeProvider, "openai", "openai"},
		{normalizeStoreType, "S3", "s3"},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Fatalf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetEnvIntRejectsGarbage(t *testing.T) {
	t.Setenv("BATCH_CONCURRENCY", "abc")
	if got := getEnvInt("BATCH_CONCURRENCY", 3); got != 3 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("BATCH_CONCURRENCY", "8")
	if got := getEnvInt("BATCH_CONCURRENCY", 3); got != 8 {
		t.Fatalf("got %d", got)
	}
}
