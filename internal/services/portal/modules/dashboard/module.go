// Package dashboard serves the portal home.
package dashboard

import (
	"log"
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/module"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
	"github.com/louisbranch/crmportal/internal/services/portal/routepath"
)

// Module provides the authenticated portal home.
type Module struct {
	table  *permission.Table
	logger *log.Logger
}

// New returns a dashboard module. A nil table falls back to the default
// role grants.
func New(table *permission.Table, logger *log.Logger) Module {
	if table == nil {
		table = permission.DefaultTable()
	}
	if logger == nil {
		logger = log.Default()
	}
	return Module{table: table, logger: logger}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "dashboard" }

// Mount wires dashboard route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{table: m.table, logger: m.logger})
	return module.Mount{Prefix: routepath.PortalPrefix, Handler: mux}, nil
}
