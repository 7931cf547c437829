package http

import (
	"net/http"

	"scanwedge/internal/platform/net/http/bind"
)

// JSONHandler decodes and validates a T body before calling fn. A returned
// Response is written as is, anything else is wrapped in a 200.
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return Result(fn(r, in))
	})
}

// CallHandler calls fn without reading a body
func CallHandler(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return Result(fn(r))
	})
}

// Result folds a handler's return pair into a Response
func Result(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
