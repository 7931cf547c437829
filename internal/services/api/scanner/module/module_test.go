package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"scanwedge/internal/modkit"
	"scanwedge/internal/platform/config"
	phttp "scanwedge/internal/platform/net/http"
	"scanwedge/internal/services/api/scanner/domain"
)

func TestFromConfig_DefaultsAndEnv(t *testing.T) {
	o := FromConfig(config.New())
	if o.Debounce != 150*time.Millisecond || o.IntervalThreshold != 50*time.Millisecond || o.MinLength != 6 {
		t.Fatalf("defaults = %+v", o)
	}
	if len(o.Terminators) != 1 || o.Terminators[0] != "Enter" || !o.AllowDocument || !o.FoldLayout {
		t.Fatalf("defaults = %+v", o)
	}

	t.Setenv("CORE_SCANNER_DEBOUNCE", "200ms")
	t.Setenv("CORE_SCANNER_MIN_LENGTH", "8")
	t.Setenv("CORE_SCANNER_TERMINATORS", "Enter, Tab")
	t.Setenv("CORE_SCANNER_ALLOW_DOCUMENT", "false")
	t.Setenv("CORE_SCANNER_CAPTURE_IDS", "barcode-capture")
	t.Setenv("SERVICE_CATALOG_URL", "https://catalog.example")
	t.Setenv("SERVICE_CATALOG_TIMEOUT", "3s")
	t.Setenv("SERVICE_CATALOG_MISSING_AS_ERROR", "yes")

	o = FromConfig(config.New())
	if o.Debounce != 200*time.Millisecond || o.MinLength != 8 || len(o.Terminators) != 2 || o.Terminators[1] != "Tab" {
		t.Fatalf("env = %+v", o)
	}
	if o.AllowDocument || o.CaptureIDs[0] != "barcode-capture" {
		t.Fatalf("policy = %+v", o)
	}
	if o.CatalogURL != "https://catalog.example" || o.CatalogTimeout != 3*time.Second || !o.CatalogMissingAsError {
		t.Fatalf("catalog = %+v", o)
	}

	sc := o.Service()
	if sc.Defaults.DebounceWindow != 200*time.Millisecond || sc.LookupTimeout != 3*time.Second || sc.Policy.AllowDocument {
		t.Fatalf("service config = %+v", sc)
	}
}

func TestModule_MountsUnderPrefix(t *testing.T) {
	o := FromConfig(config.New())
	m := New(modkit.Deps{}, modkit.WithPorts(o))
	if m.Name() != "scanner" {
		t.Fatalf("name = %q", m.Name())
	}
	ports, ok := m.Ports().(Ports)
	if !ok || ports.Sessions == nil || ports.Runner == nil {
		t.Fatalf("ports = %#v", m.Ports())
	}

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	req := httptest.NewRequest(http.MethodPost, "/scanner/sessions", strings.NewReader(`{}`))
	req.Header.Set("X-Company-Id", "7")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("open = %d %s", rr.Code, rr.Body.String())
	}
	var env struct {
		Data domain.SessionInfo `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.CompanyID != "7" {
		t.Fatalf("company header not applied: %+v", env.Data)
	}
	if ports.Sessions.Count() != 1 {
		t.Fatalf("count = %d", ports.Sessions.Count())
	}
}

func TestModule_RequireAuth(t *testing.T) {
	o := FromConfig(config.New())
	o.RequireAuth = true
	m := New(modkit.Deps{}, modkit.WithPorts(o))

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scanner/defaults", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("want 401 got %d", rr.Code)
	}
}
