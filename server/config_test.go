package server

import (
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("PFD_ADDR", ":9999")
	t.Setenv("PFD_LEDGER", "/tmp/x.jsonl")
	t.Setenv("PFD_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("PFD_REFRESH", "1m")

	cfg := LoadConfig()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.LedgerPath != "/tmp/x.jsonl" {
		t.Errorf("LedgerPath = %q", cfg.LedgerPath)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.RefreshInterval != time.Minute {
		t.Errorf("RefreshInterval = %v", cfg.RefreshInterval)
	}
}

func TestLoadConfig_BadRefreshFallsBack(t *testing.T) {
	t.Setenv("PFD_REFRESH", "often")
	if cfg := LoadConfig(); cfg.RefreshInterval != 15*time.Minute {
		t.Errorf("RefreshInterval = %v, want 15m", cfg.RefreshInterval)
	}
}
