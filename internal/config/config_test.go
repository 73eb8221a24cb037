package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port <= 0 {
		t.Fatalf("default port missing: %+v", cfg.Server)
	}
	if cfg.Data.DataDir == "" {
		t.Fatalf("default data dir missing")
	}
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("default timeout = %v", cfg.Timeout())
	}
}

func TestTimeout_FloorsInvalidValues(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Source.TimeoutSeconds = -1
	if cfg.Timeout() != 30*time.Second {
		t.Fatalf("negative timeout should fall back: %v", cfg.Timeout())
	}
	cfg.Source.TimeoutSeconds = 5
	if cfg.Timeout() != 5*time.Second {
		t.Fatalf("timeout = %v, want 5s", cfg.Timeout())
	}
}
