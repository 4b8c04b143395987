package config

import (
	"strings"
	"testing"
	"time"
)

func TestEnsureDSNFromParts(t *testing.T) {
	cfg := DBConfig{
		Host:    "db.internal",
		Port:    5433,
		User:    "offerte",
		Name:    "offerte",
		SSLMode: "disable",
	}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if !strings.Contains(cfg.DSN, "host=db.internal") || !strings.Contains(cfg.DSN, "port=5433") {
		t.Fatalf("unexpected dsn %q", cfg.DSN)
	}
}

func TestEnsureDSNKeepsExplicitDSN(t *testing.T) {
	cfg := DBConfig{DSN: "postgres://explicit"}
	if err := cfg.ensureDSN(); err != nil {
		t.Fatalf("ensure dsn: %v", err)
	}
	if cfg.DSN != "postgres://explicit" {
		t.Fatalf("expected dsn preserved, got %q", cfg.DSN)
	}
}

func TestEnsureDSNRequiresUserAndName(t *testing.T) {
	cfg := DBConfig{Host: "localhost"}
	if err := cfg.ensureDSN(); err == nil {
		t.Fatal("expected error without user/name")
	}
}

func TestSessionTTL(t *testing.T) {
	cfg := JWTConfig{SessionTTLMinutes: 120}
	if got := cfg.SessionTTL(); got != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", got)
	}
	cfg.SessionTTLMinutes = 0
	if got := cfg.SessionTTL(); got != 0 {
		t.Fatalf("expected zero ttl, got %s", got)
	}
}

func TestAppEnvHelpers(t *testing.T) {
	app := AppConfig{Env: "DEV"}
	if !app.IsDev() || app.IsProd() {
		t.Fatal("expected dev env")
	}
	app.Env = "prod"
	if !app.IsProd() || app.IsDev() {
		t.Fatal("expected prod env")
	}
}
