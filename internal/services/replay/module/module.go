// Package module wires the replay service and exposes its ports
package module

import (
	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/scanner"
	"scanwedge/internal/modkit"
	"scanwedge/internal/modkit/httpkit"
	"scanwedge/internal/services/replay/service"
)

// Module defines the replay module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New loads options from config, applies non-zero overrides, and builds the service.
// AllowDocument and FoldLayout come from config only; callers flip them through env.
func New(deps modkit.Deps, overrides Options) (*Module, error) {
	opts := FromConfig(deps.Cfg)

	if overrides.Debounce != 0 {
		opts.Debounce = overrides.Debounce
	}
	if overrides.IntervalThreshold != 0 {
		opts.IntervalThreshold = overrides.IntervalThreshold
	}
	if overrides.MinLength != 0 {
		opts.MinLength = overrides.MinLength
	}
	if len(overrides.Terminators) != 0 {
		opts.Terminators = overrides.Terminators
	}
	if len(overrides.CaptureIDs) != 0 {
		opts.CaptureIDs = overrides.CaptureIDs
	}

	svc, err := service.New(deps, service.Config{
		Scanner: scanner.Options{
			DebounceWindow:    opts.Debounce,
			IntervalThreshold: opts.IntervalThreshold,
			MinLength:         opts.MinLength,
			Terminators:       opts.Terminators,
		},
		Policy:     capture.Policy{AllowDocument: opts.AllowDocument, CaptureIDs: opts.CaptureIDs},
		FoldLayout: opts.FoldLayout,
	})
	if err != nil {
		return nil, err
	}
	return &Module{deps: deps, ports: Ports{Replayer: svc}}, nil
}

// Ports returns the module ports (Replayer)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "replay" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
