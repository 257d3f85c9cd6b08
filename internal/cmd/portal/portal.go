// Package portal parses portal command flags and starts the admin portal.
package portal

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/crmportal/internal/platform/cmd"
	server "github.com/louisbranch/crmportal/internal/services/portal"
)

// Config holds portal command configuration. Environment keys carry the
// CRM_PORTAL_ prefix.
type Config struct {
	HTTPAddr            string        `env:"HTTP_ADDR"             envDefault:"localhost:8090"`
	APIBaseURL          string        `env:"API_BASE_URL"          envDefault:"http://localhost:3000/v1"`
	CachePath           string        `env:"CACHE_PATH"`
	CacheTTL            time.Duration `env:"CACHE_TTL"             envDefault:"30s"`
	TrustForwardedProto bool          `env:"TRUST_FORWARDED_PROTO" envDefault:"false"`
	JWTSecret           string        `env:"JWT_SECRET"`
	GrantsFile          string        `env:"GRANTS_FILE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "portal HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "CRM API base URL")
	fs.StringVar(&cfg.CachePath, "cache-path", cfg.CachePath, "SQLite list cache path; empty disables the cache")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", cfg.CacheTTL, "how long cached list pages stay fresh")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "trust X-Forwarded-Proto for cookie and origin checks")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "HS256 secret used to verify access tokens; empty reads claims unverified")
	fs.StringVar(&cfg.GrantsFile, "grants-file", cfg.GrantsFile, "YAML file replacing the default role grants")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run builds the portal server and serves until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePortal, func(ctx context.Context) error {
		srv, err := server.NewServer(ctx, server.Config{
			HTTPAddr:            cfg.HTTPAddr,
			APIBaseURL:          cfg.APIBaseURL,
			CachePath:           cfg.CachePath,
			CacheTTL:            cfg.CacheTTL,
			TrustForwardedProto: cfg.TrustForwardedProto,
			JWTSecret:           cfg.JWTSecret,
			GrantsFile:          cfg.GrantsFile,
		})
		if err != nil {
			return fmt.Errorf("init portal server: %w", err)
		}
		defer srv.Close()

		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve portal: %w", err)
		}
		return nil
	})
}
