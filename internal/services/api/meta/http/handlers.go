// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"scanwedge/internal/core/version"
	"scanwedge/internal/modkit/httpkit"
	ptime "scanwedge/internal/platform/time"
	"scanwedge/internal/services/api/scanner/domain"
)

// probeTimeout bounds every readiness ping
const probeTimeout = 2 * time.Second

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Sessions is the slice of the scanner service meta reports on
type Sessions interface {
	Defaults() domain.Thresholds
	Count() int
}

// Deps are the handler dependencies. A nil Clock means wall time.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock
	Catalog     any
	Scanner     Sessions
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System()
	}
	h := &handlers{Deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/scanner", h.scanner)
}

type handlers struct{ Deps }

func (h *handlers) stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"scanwedge-api"`
	Started string `json:"started" example:"2026-05-01T09:00:00Z"`
	Now     string `json:"now"     example:"2026-05-01T09:05:00Z"`
}

// Check statuses
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
	CheckUnknown = "unknown"
)

// ReadyCheck is the outcome of one dependency probe
type ReadyCheck struct {
	Name   string `json:"name"   example:"catalog"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"catalog unreachable"`
}

// ReadyResponse summarizes readiness as ok, degraded or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"degraded"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-05-01T09:05:00Z"`
}

// ServiceResponse describes service info. Uptime is in seconds.
type ServiceResponse struct {
	Name    string `json:"name"    example:"scanwedge-api"`
	Started string `json:"started" example:"2026-05-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ScannerResponse reports classifier defaults and live sessions
type ScannerResponse struct {
	Defaults domain.Thresholds `json:"defaults"`
	Sessions int               `json:"sessions" example:"3"`
	Build    version.BuildInfo `json:"build"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Now:     h.stamp(h.Clock.Now()),
	}, nil
}

// probe pings dep if it can. Dependencies that cannot be pinged report unknown.
func probe(ctx stdctx.Context, name string, dep any) ReadyCheck {
	out := ReadyCheck{Name: name, Status: CheckUnknown}
	switch p := dep.(type) {
	case nil:
		out.Status = CheckSkipped
	case Pinger:
		out.Status = CheckOK
		if err := p.Ping(ctx); err != nil {
			out.Status, out.Error = CheckFail, err.Error()
		}
	}
	return out
}

// rollup folds checks into one status. Anything short of ok on an optional dependency degrades.
func rollup(checks []ReadyCheck) string {
	status := CheckOK
	for _, c := range checks {
		switch {
		case c.Status == CheckFail:
			return CheckFail
		case c.Status != CheckOK:
			status = "degraded"
		}
	}
	return status
}

// @Summary Readiness probe with dependency checks
// @Description Missing catalog means every scan resolves to an error outcome, reported as degraded.
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	scanner := ReadyCheck{Name: "scanner", Status: CheckOK}
	if h.Scanner == nil {
		scanner.Status, scanner.Error = CheckFail, "scanner service not wired"
	}
	checks := []ReadyCheck{scanner, probe(ctx, "catalog", h.Catalog)}

	return ReadyResponse{Status: rollup(checks), Checks: checks, Now: h.stamp(h.Clock.Now())}, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.ServiceName), nil
}

// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.ServiceName,
		Started: h.stamp(h.StartedAt),
		Uptime:  int64(h.Clock.Now().Sub(h.StartedAt) / time.Second),
	}, nil
}

// @Summary Classifier defaults and live session count
// @Tags Meta
// @Produce json
// @Success 200 {object} ScannerResponse "ok"
// @Router /meta/scanner [get]
func (h *handlers) scanner(_ *http.Request) (any, error) {
	out := ScannerResponse{Build: version.Info(h.ServiceName)}
	if h.Scanner != nil {
		out.Defaults, out.Sessions = h.Scanner.Defaults(), h.Scanner.Count()
	}
	return out, nil
}
