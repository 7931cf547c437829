package httpkit

import (
	"net/http"
	"strings"

	pnet "scanwedge/internal/platform/net"
)

// HeaderCompany carries the selected company on multi-company accounts
const HeaderCompany = "X-Company-Id"

// TenancyPort validates tenant context
type TenancyPort interface {
	Validate(r *http.Request, tenantID string) error
}

// TenancyFunc adapts a function to TenancyPort
type TenancyFunc func(r *http.Request, tenantID string) error

// Validate implements TenancyPort
func (f TenancyFunc) Validate(r *http.Request, tenantID string) error { return f(r, tenantID) }

// Tenancy resolves the tenant for the request. An explicit X-Company-Id header
// wins over the tenant claimed by the bearer token. When p is set the resolved
// id is validated before the handler runs.
func Tenancy(p TenancyPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tid := strings.TrimSpace(r.Header.Get(HeaderCompany))
			if tid == "" {
				tid = pnet.TenantID(r.Context())
			}
			if p != nil {
				if err := p.Validate(r, tid); err != nil {
					status, body := pnet.Error(err, pnet.RequestID(r.Context()))
					write(w, status, body)
					return
				}
			}
			if tid != "" && tid != pnet.TenantID(r.Context()) {
				r = r.WithContext(pnet.WithRequest(r.Context(), "", tid))
			}
			next.ServeHTTP(w, r)
		})
	}
}
