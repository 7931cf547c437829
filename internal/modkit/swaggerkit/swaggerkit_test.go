package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "scanwedge/internal/platform/net/http"
)

func TestDocJSON_AddsErrorDefaults(t *testing.T) {
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), true)

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("doc.json = %d", rr.Code)
	}
	var spec struct {
		Paths      map[string]map[string]struct{ Responses map[string]any } `json:"paths"`
		Components struct{ Schemas map[string]any }                          `json:"components"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Components.Schemas["ErrorEnvelope"] == nil || spec.Components.Schemas["SessionInfo"] == nil {
		t.Fatalf("schemas = %v", spec.Components.Schemas)
	}
	open := spec.Paths["/scanner/sessions"]["post"].Responses
	for _, code := range []string{"201", "400", "422", "429", "500", "503"} {
		if open[code] == nil {
			t.Fatalf("open responses missing %s: %v", code, open)
		}
	}
	if d := open["422"].(map[string]any)["description"]; d != "invalid thresholds" {
		t.Fatalf("documented 422 overwritten: %v", d)
	}

	rr = httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect = %d", rr.Code)
	}
}

func TestDocJSON_BrokenDocument(t *testing.T) {
	prev := readDoc
	readDoc = func() string { return "{" }
	t.Cleanup(func() { readDoc = prev })

	rr := httptest.NewRecorder()
	docJSON()(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("broken doc = %d", rr.Code)
	}
}

func TestMount_Disabled(t *testing.T) {
	m := chi.NewRouter()
	Mount(phttp.AdaptChi(m), false)
	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("disabled = %d", rr.Code)
	}
}
