package otel

import (
	"context"
	"testing"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("CRM_PORTAL_OTEL_ENDPOINT", "")
	t.Setenv("CRM_PORTAL_OTEL_ENABLED", "")

	shutdown, err := Setup(context.Background(), "portal-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupRejectsMalformedEnv(t *testing.T) {
	t.Setenv("CRM_PORTAL_OTEL_ENABLED", "maybe")

	shutdown, err := Setup(context.Background(), "portal-test")
	if err == nil {
		t.Fatal("expected env parse error")
	}
	if shutdown == nil {
		t.Fatal("expected a callable shutdown even on error")
	}
}

func TestConfigActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg  Config
		want bool
	}{
		{cfg: Config{}, want: false},
		{cfg: Config{Enabled: true}, want: false},
		{cfg: Config{Enabled: false, Endpoint: "http://localhost:4318"}, want: false},
		{cfg: Config{Enabled: true, Endpoint: "http://localhost:4318"}, want: true},
	}
	for _, tc := range tests {
		if got := tc.cfg.Active(); got != tc.want {
			t.Fatalf("Active(%+v) = %t, want %t", tc.cfg, got, tc.want)
		}
	}
}

func TestSetupWithConfigCreatesProvider(t *testing.T) {
	// Non-routable endpoint: nothing is exported before shutdown.
	shutdown, err := SetupWithConfig(context.Background(), "portal-test", Config{
		Enabled:     true,
		Endpoint:    "http://192.0.2.1:4318",
		SampleRatio: 0.5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSampler(t *testing.T) {
	t.Parallel()

	if got := sampler(1).Description(); got != "AlwaysOnSampler" {
		t.Fatalf("sampler(1) = %q", got)
	}
	if got := sampler(0).Description(); got != "AlwaysOffSampler" {
		t.Fatalf("sampler(0) = %q", got)
	}
}
