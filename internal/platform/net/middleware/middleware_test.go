package middleware

import (
	"bufio"
	"compress/flate"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "scanwedge/internal/platform/errors"
	pnet "scanwedge/internal/platform/net"
)

func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func TestChiAdapters(t *testing.T) {
	var reqID string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID = pnet.RequestID(r.Context())
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("4006381333931 ", 200)))
	}), RequestID(), RealIP(), NoCache(), Compress(flate.BestSpeed), Heartbeat("/health"), StripSlashes())

	req := httptest.NewRequest(http.MethodGet, "/scanner/defaults/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if reqID == "" {
		t.Fatal("request id missing")
	}
	if rr.Header().Get("Content-Encoding") != "gzip" || rr.Header().Get("Expires") == "" {
		t.Fatalf("headers = %v", rr.Header())
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "." {
		t.Fatalf("heartbeat = %d %q", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	RedirectSlashes()(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/", nil))
	if rr.Code != http.StatusMovedPermanently {
		t.Fatalf("redirect = %d", rr.Code)
	}
}

func TestCORS(t *testing.T) {
	h := CORS(CORSOptions{AllowedOrigins: []string{"https://pos.example"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/scanner/sessions", nil)
	req.Header.Set("Origin", "https://pos.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Company-Id")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "https://pos.example" {
		t.Fatalf("preflight headers = %v", rr.Header())
	}
	if !strings.Contains(strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")), "x-company-id") {
		t.Fatalf("company header not allowed: %v", rr.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("unlisted origin allowed")
	}
}

func TestStreamTimeout(t *testing.T) {
	var deadline bool
	h := StreamTimeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, deadline = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !deadline {
		t.Fatal("plain request has no deadline")
	}

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	req.Header.Set("Upgrade", "WebSocket")
	req.Header.Set("Connection", "keep-alive, Upgrade")
	if !IsUpgrade(req) {
		t.Fatal("upgrade not detected")
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if deadline {
		t.Fatal("websocket handshake got a deadline")
	}
}

type hijackable struct {
	*httptest.ResponseRecorder
	hijacked bool
}

func (h *hijackable) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h.hijacked = true
	return nil, nil, nil
}

func TestAccessLog_Recorder(t *testing.T) {
	h := AccessLogSlow(time.Nanosecond)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"s-1"}`))
		w.(http.Flusher).Flush()
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/scanner/sessions", nil))
	if rr.Code != http.StatusCreated || rr.Body.String() != `{"id":"s-1"}` || !rr.Flushed {
		t.Fatalf("passthrough = %d %q flushed=%v", rr.Code, rr.Body.String(), rr.Flushed)
	}

	up := &hijackable{ResponseRecorder: httptest.NewRecorder()}
	AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, _, err := w.(http.Hijacker).Hijack(); err != nil {
			t.Errorf("hijack: %v", err)
		}
	})).ServeHTTP(up, httptest.NewRequest(http.MethodGet, "/stream", nil))
	if !up.hijacked {
		t.Fatal("hijack not forwarded")
	}

	rw := &recorder{ResponseWriter: httptest.NewRecorder()}
	if _, _, err := rw.Hijack(); !perr.IsCode(err, perr.ErrorCodeUnknown) || err == nil {
		t.Fatalf("unsupported hijack err = %v", err)
	}
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("nil session") }), RequestID(), RecoverJSON)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError || rr.Header().Get("X-Request-Id") == "" {
		t.Fatalf("recover = %d %v", rr.Code, rr.Header())
	}
	var body pnet.Wire
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body: %v", err)
	}
	if body.Code != perr.ErrorCodePanic || strings.Contains(body.Error, "nil session") {
		t.Fatalf("body = %+v", body)
	}

	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatal("abort not re-raised")
		}
	}()
	RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) })).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

type portFunc func(*http.Request) (string, string, error)

func (f portFunc) Parse(r *http.Request) (string, string, error) { return f(r) }

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestAuth(t *testing.T) {
	var uid, tid string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		uid, tid = pnet.UserID(r.Context()), pnet.TenantID(r.Context())
	})

	rr := httptest.NewRecorder()
	Auth(nil, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("nil port = %d", rr.Code)
	}

	ok := portFunc(func(*http.Request) (string, string, error) { return "31", "4", nil })
	Auth(ok, writeJSON)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if uid != "31" || tid != "4" {
		t.Fatalf("ids = %q %q", uid, tid)
	}

	deny := portFunc(func(*http.Request) (string, string, error) { return "", "", perr.Unauthorizedf("invalid bearer token") })
	rr = httptest.NewRecorder()
	Auth(deny, writeJSON)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	var body pnet.Wire
	_ = json.Unmarshal(rr.Body.Bytes(), &body)
	if rr.Code != http.StatusUnauthorized || body.Error != "invalid bearer token" {
		t.Fatalf("deny = %d %+v", rr.Code, body)
	}
}
