// Package net holds the request scope and the JSON envelope shared by the http layers
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// scope is the caller identity resolved for a request
type scope struct {
	user   string
	tenant string
}

type scopeKey struct{}

func scopeOf(ctx context.Context) scope {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

// WithRequest sets the request id and tenant. Empty values keep what ctx already holds.
func WithRequest(ctx context.Context, reqID, tenantID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if tenantID != "" {
		s := scopeOf(ctx)
		s.tenant = tenantID
		ctx = context.WithValue(ctx, scopeKey{}, s)
	}
	return ctx
}

// WithUser sets the authenticated user. An empty id keeps what ctx already holds.
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	s := scopeOf(ctx)
	s.user = userID
	return context.WithValue(ctx, scopeKey{}, s)
}

// RequestID returns the id minted or propagated by the request id middleware
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// TenantID returns the resolved company id
func TenantID(ctx context.Context) string { return scopeOf(ctx).tenant }

// UserID returns the authenticated user id
func UserID(ctx context.Context) string { return scopeOf(ctx).user }
