// Package http hosts the router seam, the JSON envelope writer and the server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "scanwedge/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope = pnet.Wire

const contentJSON = "application/json; charset=utf-8"

// JSON writes v with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers hand back. When Body is an error the
// envelope carries it and Status is taken from its code.
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that renders err
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) { h(r).Render(w, r) }
}

// Render writes resp as an envelope tagged with the request id
func (resp Response) Render(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	id := pnet.RequestID(r.Context())

	if err, _ := resp.Body.(error); err != nil {
		status, env := pnet.Error(err, id)
		JSON(w, status, env)
		return
	}
	switch resp.Status {
	case stdhttp.StatusNoContent:
		w.WriteHeader(resp.Status)
	case 0:
		JSON(w, stdhttp.StatusOK, pnet.Reply(stdhttp.StatusOK, resp.Body, id))
	default:
		JSON(w, resp.Status, pnet.Reply(resp.Status, resp.Body, id))
	}
}
