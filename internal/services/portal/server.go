// Package portal hosts the CRM admin portal HTTP service.
package portal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/crmportal/internal/platform/timeouts"
	"github.com/louisbranch/crmportal/internal/services/portal/app"
	"github.com/louisbranch/crmportal/internal/services/portal/gate"
	"github.com/louisbranch/crmportal/internal/services/portal/integration/crmapi"
	"github.com/louisbranch/crmportal/internal/services/portal/module"
	"github.com/louisbranch/crmportal/internal/services/portal/modules/dashboard"
	"github.com/louisbranch/crmportal/internal/services/portal/modules/public"
	"github.com/louisbranch/crmportal/internal/services/portal/modules/resources"
	"github.com/louisbranch/crmportal/internal/services/portal/permission"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/httpx"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/observability"
	"github.com/louisbranch/crmportal/internal/services/portal/platform/requestmeta"
	"github.com/louisbranch/crmportal/internal/services/portal/principal"
	portalstatic "github.com/louisbranch/crmportal/internal/services/portal/static"
	"github.com/louisbranch/crmportal/internal/services/portal/storage"
	"github.com/louisbranch/crmportal/internal/services/portal/storage/sqlite"
)

// Config defines startup inputs for the portal service.
type Config struct {
	HTTPAddr   string
	APIBaseURL string
	// CachePath enables the list cache when set.
	CachePath           string
	CacheTTL            time.Duration
	TrustForwardedProto bool
	// JWTSecret makes the portal verify access token signatures before
	// reading role claims.
	JWTSecret string
	// GrantsFile replaces the default role grants with a YAML document.
	GrantsFile string
	HTTPClient *http.Client
	Logger     *log.Logger
}

// Dependencies are the collaborators the root handler is built from.
type Dependencies struct {
	Auth         public.AuthGateway
	Lister       crmapi.Lister
	Writer       crmapi.Writer
	Invalidator  resources.Invalidator
	Principals   *principal.Resolver
	Table        *permission.Table
	Gate         *gate.Gate
	SchemePolicy requestmeta.SchemePolicy
	Logger       *log.Logger
}

// Server hosts the portal HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      storage.Store
	cacheTTL   time.Duration
	logger     *log.Logger
}

// NewHandler builds the root handler. The access gate runs last, after the
// request is tagged, logged and traced.
func NewHandler(deps Dependencies) (http.Handler, error) {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	if deps.Table == nil {
		deps.Table = permission.DefaultTable()
	}
	if deps.Gate == nil {
		deps.Gate = gate.New(gate.DefaultConfig())
	}
	if deps.Principals == nil {
		deps.Principals = principal.NewResolver()
	}

	publicModules := []module.Module{
		public.New(public.Config{
			Auth:         deps.Auth,
			Sessions:     deps.Invalidator,
			SchemePolicy: deps.SchemePolicy,
			Logger:       deps.Logger,
		}),
	}
	protectedModules := append(
		[]module.Module{dashboard.New(deps.Table, deps.Logger)},
		resources.NewAll(resources.Config{
			Lister:       deps.Lister,
			Writer:       deps.Writer,
			Invalidator:  deps.Invalidator,
			Table:        deps.Table,
			SchemePolicy: deps.SchemePolicy,
			Logger:       deps.Logger,
		})...,
	)
	h, err := app.Compose(app.ComposeInput{
		Principals:          deps.Principals,
		PublicModules:       publicModules,
		ProtectedModules:    protectedModules,
		RequestSchemePolicy: deps.SchemePolicy,
	})
	if err != nil {
		return nil, err
	}

	rootMux := http.NewServeMux()
	rootMux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(portalstatic.FS))))
	rootMux.Handle("/", h)
	return httpx.Chain(rootMux,
		httpx.RequestID(),
		httpx.RecoverPanic(deps.Logger),
		observability.RequestLogger(deps.Logger),
		httpx.Compress(),
		observability.Trace(),
		deps.Gate.Middleware,
	), nil
}

// NewServer validates config and wires the API client, cache and grants into a
// portal server.
func NewServer(ctx context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	client, err := crmapi.NewClient(cfg.APIBaseURL, cfg.HTTPClient)
	if err != nil {
		return nil, fmt.Errorf("init crm api client: %w", err)
	}

	table := permission.DefaultTable()
	if path := strings.TrimSpace(cfg.GrantsFile); path != "" {
		grants, err := permission.LoadGrantsFile(path)
		if err != nil {
			return nil, err
		}
		table = permission.NewTable(grants)
		logger.Printf("role grants loaded path=%s", path)
	}

	var store storage.Store
	if path := strings.TrimSpace(cfg.CachePath); path != "" && cfg.CacheTTL > 0 {
		opened, err := sqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open cache store: %w", err)
		}
		store = opened
	}
	lister := crmapi.NewCachedLister(client, store, cfg.CacheTTL, logger)

	var opts []principal.Option
	if strings.TrimSpace(cfg.JWTSecret) != "" {
		opts = append(opts, principal.WithHMACSecret(cfg.JWTSecret))
	}
	handler, err := NewHandler(Dependencies{
		Auth:         client,
		Lister:       lister,
		Writer:       client,
		Invalidator:  lister,
		Principals:   principal.NewResolver(opts...),
		Table:        table,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		Logger:       logger,
	})
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, fmt.Errorf("compose portal handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:    store,
		cacheTTL: cfg.CacheTTL,
		logger:   logger,
	}, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	if s == nil || s.httpServer == nil {
		return nil
	}
	return s.httpServer.Handler
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("portal server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go s.purgeExpired(purgeCtx)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Printf("portal listening addr=%s", s.httpAddr)
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown portal http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve portal http: %w", err)
	}
}

// purgeExpired drops stale cache rows once per TTL until ctx ends.
func (s *Server) purgeExpired(ctx context.Context) {
	if s.store == nil || s.cacheTTL <= 0 {
		return
	}
	ticker := time.NewTicker(s.cacheTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := s.store.PurgeExpired(ctx, now)
			if err != nil {
				s.logger.Printf("cache purge failed err=%v", err)
				continue
			}
			if removed > 0 {
				s.logger.Printf("cache purge removed=%d", removed)
			}
		}
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Printf("close cache store: %v", err)
		}
	}
}
