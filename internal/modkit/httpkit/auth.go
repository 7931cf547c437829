package httpkit

import (
	"net/http"
	"strings"

	perrs "scanwedge/internal/platform/errors"
	pnet "scanwedge/internal/platform/net"
)

// User returns the user id the auth middleware placed on the request
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perrs.Unauthorizedf("missing bearer token")
}

// Tenant returns the resolved company id
func Tenant(r *http.Request) (string, error) {
	if tid := pnet.TenantID(r.Context()); tid != "" {
		return tid, nil
	}
	return "", perrs.Unauthorizedf("missing company scope")
}

// JWT returns the raw bearer token. The scheme match is case insensitive.
func JWT(r *http.Request) (string, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	if raw = strings.TrimSpace(raw); raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// TokenFunc turns a bearer token into user and company ids. The company may be empty.
type TokenFunc func(token string) (userID string, tenantID string, err error)

// Port satisfies middleware.AuthPort on top of a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from fn
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Parse reads the bearer token and hands it to the TokenFunc. Every failure is unauthorized.
func (p *Port) Parse(r *http.Request) (string, string, error) {
	raw, err := JWT(r)
	if err != nil {
		return "", "", err
	}
	if p == nil || p.parse == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, tid, err := p.parse(raw)
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, tid, nil
}
