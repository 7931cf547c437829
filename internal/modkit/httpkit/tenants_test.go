package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "scanwedge/internal/platform/errors"
	pnet "scanwedge/internal/platform/net"
	phttp "scanwedge/internal/platform/net/http"
)

func TestTenancy_HeaderWinsOverToken(t *testing.T) {
	var got string
	h := Tenancy(nil, phttp.JSON)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = pnet.TenantID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "", "from-token"))
	req.Header.Set(HeaderCompany, " 42 ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "42" {
		t.Fatalf("tenant = %q, want 42", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), "", "from-token"))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "from-token" {
		t.Fatalf("tenant = %q, want token fallback", got)
	}
}

func TestTenancy_PortRejects(t *testing.T) {
	port := TenancyFunc(func(_ *http.Request, tid string) error {
		if tid == "" {
			return perrs.Forbiddenf("company required")
		}
		return nil
	})
	called := false
	h := Tenancy(port, phttp.JSON)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if called || rr.Code != http.StatusForbidden {
		t.Fatalf("called=%v code=%d", called, rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not json: %v", err)
	}
}
