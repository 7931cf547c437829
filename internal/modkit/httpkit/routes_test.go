package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "scanwedge/internal/platform/net/http"
)

type toggle struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func TestMountAPIV1_Helpers(t *testing.T) {
	m := chi.NewRouter()
	var scoped bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped = true
			next.ServeHTTP(w, r)
		})
	}
	MountAPIV1(phttp.AdaptChi(m), []func(http.Handler) http.Handler{mw}, func(api Router) {
		Get(api, "/sessions/{id}", func(r *http.Request) (any, error) { return Param(r, "id"), nil })
		Post(api, "/sessions/{id}/reset", func(r *http.Request) (any, error) { return OK("reset"), nil })
		Delete(api, "/sessions/{id}", func(*http.Request) (any, error) { return NoContent(), nil })
		PostJSON(api, "/sessions/{id}/enabled", func(_ *http.Request, in toggle) (any, error) {
			return Created(*in.Enabled), nil
		})
	})

	tests := []struct {
		method, path, body string
		status             int
		data               any
	}{
		{http.MethodGet, "/api/v1/sessions/s-1", "", 200, "s-1"},
		{http.MethodPost, "/api/v1/sessions/s-1/reset", "", 200, "reset"},
		{http.MethodDelete, "/api/v1/sessions/s-1", "", 204, nil},
		{http.MethodPost, "/api/v1/sessions/s-1/enabled", `{"enabled":false}`, 201, false},
		{http.MethodPost, "/api/v1/sessions/s-1/enabled", `{}`, 400, nil},
		{http.MethodGet, "/sessions/s-1", "", 404, nil},
	}
	for _, tc := range tests {
		scoped = false
		rr := httptest.NewRecorder()
		m.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))
		if rr.Code != tc.status {
			t.Fatalf("%s %s = %d %s", tc.method, tc.path, rr.Code, rr.Body)
		}
		if tc.status == 404 {
			continue
		}
		if !scoped {
			t.Fatalf("%s %s skipped the api middleware", tc.method, tc.path)
		}
		if tc.data == nil {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Data != tc.data {
			t.Fatalf("%s %s data = %v", tc.method, tc.path, env.Data)
		}
	}
}
