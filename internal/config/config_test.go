package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DBPath != "online_store.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "online_store.db")
	}
	if cfg.EnforceForeignKeys {
		t.Error("EnforceForeignKeys should default to false")
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "http://localhost:3000")
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.RateLimitOrder != 30 {
		t.Errorf("RateLimitOrder = %d, want %d", cfg.RateLimitOrder, 30)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DB_PATH", "/tmp/test-store.db")
	t.Setenv("STORE_FOREIGN_KEYS", "true")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://shop.example.com")
	t.Setenv("RATE_LIMIT_GENERAL", "60")
	t.Setenv("RATE_LIMIT_ORDER", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DBPath != "/tmp/test-store.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/tmp/test-store.db")
	}
	if !cfg.EnforceForeignKeys {
		t.Error("EnforceForeignKeys should be true")
	}
	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "9090")
	}
	if cfg.CORSAllowedOrigin != "https://shop.example.com" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "https://shop.example.com")
	}
	if cfg.RateLimitGeneral != 60 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 60)
	}
	if cfg.RateLimitOrder != 5 {
		t.Errorf("RateLimitOrder = %d, want %d", cfg.RateLimitOrder, 5)
	}
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("RATE_LIMIT_GENERAL", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want default %d", cfg.RateLimitGeneral, 120)
	}
}

func TestLoad_InvalidBoolFallsBackToDefault(t *testing.T) {
	t.Setenv("STORE_FOREIGN_KEYS", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.EnforceForeignKeys {
		t.Error("EnforceForeignKeys should fall back to false")
	}
}

func TestLoad_NonPositiveRateLimit_ReturnsError(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"general zero", "RATE_LIMIT_GENERAL"},
		{"order zero", "RATE_LIMIT_ORDER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, "0")

			if _, err := Load(); err == nil {
				t.Errorf("expected error when %s=0", tt.key)
			}
		})
	}
}
