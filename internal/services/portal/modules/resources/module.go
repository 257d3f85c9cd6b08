// Package resources serves the list and form routes of one CRM
// area. Actions are offered and accepted only when the viewer's role holds
// the matching capability.
package resources

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/louisbranch/crmportal/internal/services/portal/area"
	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/module"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/requestmeta"
)

// Invalidator drops cached reads for a token after it changes data.
type Invalidator interface {
	Forget(ctx context.Context, token string)
}

// Config carries resource module dependencies shared by every area.
type Config struct {
	Lister       crmapi.Lister
	Writer       crmapi.Writer
	Invalidator  Invalidator
	Table        *permission.Table
	SchemePolicy requestmeta.SchemePolicy
	Logger       *log.Logger
	// ExportPageLimit bounds how many API pages one CSV export reads.
	ExportPageLimit int
}

const defaultExportPageLimit = 20

// Module serves one area.
type Module struct {
	area area.Area
	cfg  Config
}

// New returns the module for a.
func New(a area.Area, cfg Config) Module {
	if cfg.Table == nil {
		cfg.Table = permission.DefaultTable()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ExportPageLimit <= 0 {
		cfg.ExportPageLimit = defaultExportPageLimit
	}
	return Module{area: a, cfg: cfg}
}

// NewAll returns one module per portal area.
func NewAll(cfg Config) []module.Module {
	areas := area.All()
	modules := make([]module.Module, 0, len(areas))
	for _, a := range areas {
		modules = append(modules, New(a, cfg))
	}
	return modules
}

// ID returns a stable module identifier.
func (m Module) ID() string { return "resources." + string(m.area.Resource) }

// Mount wires the area routes.
func (m Module) Mount() (module.Mount, error) {
	if m.area.Path == "" || m.area.Resource == "" {
		return module.Mount{}, errors.New("area is required")
	}
	if m.cfg.Lister == nil {
		return module.Mount{}, fmt.Errorf("%s: lister is required", m.area.Resource)
	}
	if m.cfg.Writer == nil {
		return module.Mount{}, fmt.Errorf("%s: writer is required", m.area.Resource)
	}
	mux := http.NewServeMux()
	registerRoutes(mux, m.area, newHandlers(m.area, m.cfg))
	return module.Mount{Prefix: m.area.Path + "/", Handler: mux}, nil
}
