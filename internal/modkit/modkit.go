// Package modkit wires feature modules (scanner, meta, replay) onto the api router
package modkit

import (
	"net/http"

	"scanwedge/internal/modkit/httpkit"
	"scanwedge/internal/modkit/module"
	str "scanwedge/internal/platform/strings"
)

// Module is the surface api.Mount works against
type Module = module.Module

// Option tweaks a module's Built settings
type Option func(*Built)

// Built is the resolved name, prefix, middleware and ports of a module
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build starts from name and prefix and applies opts in order
func Build(name, prefix string, opts ...Option) Built {
	b := Built{Name: name, Prefix: prefix}
	for _, o := range opts {
		o(&b)
	}
	return b
}

// WithName renames the module
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix moves the module to another path prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends per-module middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands the module a value it type-asserts for itself, such as
// option overrides or the ports of another module
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Mount scopes register under the module prefix behind the module middleware
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(sub httpkit.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		register(sub)
	})
}
