// Package httpkit re-exports the platform http seam for modules so they never
// import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "scanwedge/internal/platform/net/http"
)

type (
	// Envelope is the body every JSON endpoint answers with
	Envelope = phttp.Envelope

	// Response carries status, body and extra headers
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err onto a status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// Call adapts a handler that reads no body
func Call(fn func(*http.Request) (any, error)) Handler { return phttp.CallHandler(fn) }

// Param returns a path parameter captured by the router
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// WriteError writes err as an error envelope, for raw handlers such as websocket upgrades
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(err) })(w, r)
}
