package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("default port = %q", cfg.App.Port)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", cfg.App.Addr())
	}
	if cfg.Premium.TrialDays != 60 || cfg.Premium.PromoMonthDays != 30 {
		t.Errorf("premium defaults = %+v", cfg.Premium)
	}
	if cfg.Presence.OnlineWindowSeconds != 300 {
		t.Errorf("presence window = %d", cfg.Presence.OnlineWindowSeconds)
	}
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Errorf("request timeout = %s", cfg.App.RequestTimeout())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("PREMIUM_TRIAL_DAYS", "14")
	t.Setenv("AUTHZ_SUPERUSER_EMAIL", "root@example.com")
	t.Setenv("POSTGRES_RUN_MIGRATIONS", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("port = %q", cfg.App.Port)
	}
	if cfg.Premium.TrialDays != 14 {
		t.Errorf("trial days = %d", cfg.Premium.TrialDays)
	}
	if cfg.Premium.TrialDuration() != 14*24*time.Hour {
		t.Errorf("trial duration = %s", cfg.Premium.TrialDuration())
	}
	if cfg.Auth.SuperuserEmail != "root@example.com" {
		t.Errorf("superuser email = %q", cfg.Auth.SuperuserEmail)
	}
	if cfg.Postgres.RunMigrations {
		t.Error("migrations should be disabled")
	}
}

func TestBadIntFallsBack(t *testing.T) {
	t.Setenv("PREMIUM_TRIAL_DAYS", "sixty")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Premium.TrialDays != 60 {
		t.Errorf("unparseable int should keep the default, got %d", cfg.Premium.TrialDays)
	}
}
