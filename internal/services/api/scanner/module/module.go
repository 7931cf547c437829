// Package module wires scanner sessions into the API using modkit
package module

import (
	"net/http"

	"scanwedge/internal/adapters/catalog"
	modkit "scanwedge/internal/modkit"
	"scanwedge/internal/modkit/httpkit"
	"scanwedge/internal/platform/logger"
	scannerhttp "scanwedge/internal/services/api/scanner/http"
	"scanwedge/internal/services/api/scanner/domain"
	svc "scanwedge/internal/services/api/scanner/service"
)

// Module implements the scanner module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   *svc.Svc
}

// New constructs the scanner module. Settings come from deps.Cfg unless a
// WithPorts(Options) override is given; an invalid threshold panics.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("scanner", "/scanner", opts...)

	o, ok := b.Ports.(Options)
	if !ok {
		o = FromConfig(deps.Cfg)
	}
	log := logger.Named("scanner-module")

	var finder domain.ProductFinder
	var pinger any
	if o.CatalogURL != "" {
		c, err := catalog.NewClient(catalog.Options{
			BaseURL:        o.CatalogURL,
			Timeout:        o.CatalogTimeout,
			MissingAsError: o.CatalogMissingAsError,
		})
		if err != nil {
			panic(err)
		}
		finder = catalogFinder{c: c}
		pinger = c
	} else {
		log.Warn().Msg("SERVICE_CATALOG_URL not set; scans will resolve to errors")
	}

	s, err := svc.New(o.Service(), finder, svc.WithClock(deps.ClockOrSystem()))
	if err != nil {
		panic(err)
	}

	// auth runs first so the company header can fall back to the token claim
	mws := []func(http.Handler) http.Handler{httpkit.Company(nil)}
	if o.RequireAuth {
		mws = append([]func(http.Handler) http.Handler{httpkit.Auth(httpkit.NewPortFunc(httpkit.ClaimsTokenFunc))}, mws...)
	}
	b.Mw = append(mws, b.Mw...)

	return &Module{b: b, svc: s, ports: Ports{Sessions: s, Runner: s, Catalog: pinger}}
}

// MountRoutes mounts the session endpoints under /scanner
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { scannerhttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }
