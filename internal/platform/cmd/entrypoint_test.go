package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("CRM_PORTAL_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("CRM_PORTAL_CMD_TEST_MODE", "env-mode")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("load config defaults: %v", err)
	}
	fs.StringVar(&cfg.Address, "address", cfg.Address, "address")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "mode")

	if err := ParseArgs(fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("expected flag value for address, got %q", cfg.Address)
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("expected env default mode, got %q", cfg.Mode)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServicePortal, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithSetupFlushesAfterRun(t *testing.T) {
	var order []string
	setup := func(context.Context, string) (func(context.Context) error, error) {
		order = append(order, "setup")
		return func(context.Context) error {
			order = append(order, "shutdown")
			return nil
		}, nil
	}
	runErr := errors.New("stopped")
	err := runWithSetup(context.Background(), ServicePortal, setup, func(context.Context) error {
		order = append(order, "run")
		return runErr
	})
	if !errors.Is(err, runErr) {
		t.Fatalf("err = %v, want %v", err, runErr)
	}
	if len(order) != 3 || order[0] != "setup" || order[1] != "run" || order[2] != "shutdown" {
		t.Fatalf("order = %v", order)
	}
}

func TestRunWithSetupWrapsSetupError(t *testing.T) {
	setup := func(context.Context, string) (func(context.Context) error, error) {
		return nil, errors.New("exporter down")
	}
	err := runWithSetup(context.Background(), ServicePortal, setup, func(context.Context) error {
		t.Fatal("run should not be called")
		return nil
	})
	if err == nil {
		t.Fatal("expected setup error")
	}
}
