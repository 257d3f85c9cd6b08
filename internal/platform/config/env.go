// Package config loads portal settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every portal environment variable.
const EnvPrefix = "CRM_PORTAL_"

// ParseEnv loads target from the process environment. Field tags name the
// variable without EnvPrefix, so `env:"HTTP_ADDR"` reads CRM_PORTAL_HTTP_ADDR.
func ParseEnv(target any) error {
	return ParseEnvFrom(target, nil)
}

// ParseEnvFrom loads target from environ, or from the process environment
// when environ is nil.
func ParseEnvFrom(target any, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
