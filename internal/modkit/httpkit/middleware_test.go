package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	pnet "scanwedge/internal/platform/net"
)

func wrap(h http.Handler, stack []func(http.Handler) http.Handler) http.Handler {
	for i := len(stack) - 1; i >= 0; i-- {
		h = stack[i](h)
	}
	return h
}

func TestCommonStack_Baseline(t *testing.T) {
	var reqID, logged string
	root := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID = pnet.RequestID(r.Context())
		logged = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}), CommonStack())

	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scanner/defaults", nil))
	if rr.Code != http.StatusNoContent || reqID == "" || logged != "/scanner/defaults" {
		t.Fatalf("code=%d req=%q path=%q", rr.Code, reqID, logged)
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("expected no-cache headers")
	}

	rr = httptest.NewRecorder()
	wrap(http.NotFoundHandler(), CommonStack()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("heartbeat = %d", rr.Code)
	}
}

func TestCommonStack_RecoversPanics(t *testing.T) {
	rr := httptest.NewRecorder()
	wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("scanner exploded") }), CommonStack()).
		ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("panic = %d", rr.Code)
	}
}

func TestCommonStack_CORSOriginsAndTimeout(t *testing.T) {
	stack := CommonStack(StackOptions{CORSOrigins: []string{"https://pos.example"}, Timeout: time.Second})
	var deadline bool
	root := wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
		w.WriteHeader(http.StatusNoContent)
	}), stack)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://pos.example")
	rr := httptest.NewRecorder()
	root.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "https://pos.example" {
		t.Fatalf("allow origin = %q", rr.Header().Get("Access-Control-Allow-Origin"))
	}
	if !deadline {
		t.Fatalf("expected request deadline from timeout middleware")
	}
}

func TestCompany_SetsTenantForLogging(t *testing.T) {
	var tid string
	h := Company(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tid = pnet.TenantID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderCompany, "3")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if tid != "3" {
		t.Fatalf("tenant = %q", tid)
	}
}
