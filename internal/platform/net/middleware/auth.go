package middleware

import (
	"net/http"

	pnet "scanwedge/internal/platform/net"
)

// AuthPort turns a request into user and tenant ids
type AuthPort interface {
	Parse(r *http.Request) (userID string, tenantID string, err error)
}

// Auth rejects requests p cannot parse and stores the ids on the context.
// A nil port lets every request through.
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			uid, tid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(ctx))
				write(w, status, body)
				return
			}
			ctx = pnet.WithRequest(pnet.WithUser(ctx, uid), "", tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
