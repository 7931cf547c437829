// Package module mounts the meta endpoints
package module

import (
	"time"

	"scanwedge/internal/modkit"
	"scanwedge/internal/modkit/httpkit"
	ptime "scanwedge/internal/platform/time"

	metahttp "scanwedge/internal/services/api/meta/http"
)

// Checks carries what the meta endpoints report on, passed via modkit.WithPorts
type Checks struct {
	ServiceName string
	Catalog     any
	Scanner     metahttp.Sessions
}

// Module serves health, readiness, version and scanner status
type Module struct {
	b      modkit.Built
	checks Checks
	clock  ptime.Clock
	start  time.Time
}

// New builds the meta module. Without Checks the catalog and scanner probes report as skipped.
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build("meta", "/meta", opts...)
	checks, _ := b.Ports.(Checks)
	if checks.ServiceName == "" {
		checks.ServiceName = "scanwedge-api"
	}
	clock := deps.ClockOrSystem()
	return &Module{b: b, checks: checks, clock: clock, start: clock.Now()}
}

// MountRoutes mounts /meta
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: m.checks.ServiceName,
			StartedAt:   m.start,
			Clock:       m.clock,
			Catalog:     m.checks.Catalog,
			Scanner:     m.checks.Scanner,
		})
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports is empty, nothing depends on meta
func (m *Module) Ports() any { return nil }
