package middleware

import (
	"bufio"
	"net"
	"net/http"
	"time"

	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"
)

// SlowRequest is the elapsed time at which AccessLog logs at warn
const SlowRequest = 500 * time.Millisecond

// recorder remembers the status and size of a response
type recorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *recorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Hijack hands the connection to a websocket upgrader
func (rw *recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, perr.Internalf("response writer does not support hijacking")
	}
	rw.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// Flush forwards when the wrapped writer can flush
func (rw *recorder) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// AccessLog logs one line per request on the request scoped logger
func AccessLog(next http.Handler) http.Handler { return AccessLogSlow(SlowRequest)(next) }

// AccessLogSlow is AccessLog with a custom warn threshold, 0 never warns
func AccessLogSlow(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &recorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rw, r)
			took := time.Since(start)

			log := logger.C(r.Context())
			ev := log.Info()
			if slow > 0 && took >= slow {
				ev = log.Warn()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Int("bytes", rw.size).
				Dur("elapsed", took).
				Msg("request done")
		})
	}
}
