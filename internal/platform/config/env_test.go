package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Addr string        `env:"TEST_ADDR" envDefault:"localhost:8080"`
	TTL  time.Duration `env:"TEST_TTL" envDefault:"30s"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnvFrom(&cfg, map[string]string{}); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:8080" || cfg.TTL != 30*time.Second {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestParseEnvUsesPrefix(t *testing.T) {
	t.Setenv("CRM_PORTAL_TEST_ADDR", ":9090")
	t.Setenv("TEST_ADDR", ":1111")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig

	err := ParseEnvFrom(&cfg, map[string]string{"CRM_PORTAL_TEST_TTL": "soon"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
