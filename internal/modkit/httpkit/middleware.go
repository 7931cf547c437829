package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"scanwedge/internal/platform/logger"
	pnet "scanwedge/internal/platform/net"
	phttp "scanwedge/internal/platform/net/http"
	"scanwedge/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins are the browser origins allowed to call the api, empty allows none
	CORSOrigins []string
	// Timeout bounds plain requests, websocket streams are exempt
	Timeout time.Duration
}

// CommonStack is the middleware every /api/v1 route runs behind. Order matters:
// the request id must exist before LogContext and RecoverJSON read it.
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	o := StackOptions{Timeout: 30 * time.Second}
	if len(opts) > 0 {
		o.CORSOrigins = opts[0].CORSOrigins
		if opts[0].Timeout > 0 {
			o.Timeout = opts[0].Timeout
		}
	}
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		LogContext,
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog,
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StreamTimeout(o.Timeout),
	}
}

// LogContext copies request and tenant ids onto the context so logger.C picks them up
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), pnet.TenantID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth rejects requests p cannot authenticate with a JSON envelope
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// Company resolves X-Company-Id (or the token's company) into the tenant scope
func Company(p TenancyPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Tenancy(p, phttp.JSON)(LogContext(next))
	}
}
