// Package cmd holds the startup plumbing shared by portal commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/crmportal/internal/platform/config"
	"github.com/louisbranch/crmportal/internal/platform/otel"
	"github.com/louisbranch/crmportal/internal/platform/timeouts"
)

// ServicePortal names the admin portal in telemetry and logs.
const ServicePortal = "portal"

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags, which override environment values.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// SetupTelemetry installs tracing for a service.
type SetupTelemetry func(ctx context.Context, service string) (func(context.Context) error, error)

// RunWithTelemetry configures tracing and executes run. Pending spans are
// flushed when run returns.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	return runWithSetup(ctx, service, otel.Setup, run)
}

func runWithSetup(ctx context.Context, service string, setup SetupTelemetry, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	shutdown, err := setup(ctx, service)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.TelemetryShutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
