package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"scanwedge/internal/modkit/httpkit"
	"scanwedge/internal/platform/config"
	phttp "scanwedge/internal/platform/net/http"
	ptime "scanwedge/internal/platform/time"
)

func TestBuild_Options(t *testing.T) {
	mw := func(next http.Handler) http.Handler { return next }
	b := Build("scanner", "/scanner", WithPrefix("/pos/scanner"), WithMiddlewares(mw, mw), WithPorts(7))
	if b.Name != "scanner" || b.Prefix != "/pos/scanner" || len(b.Mw) != 2 || b.Ports != 7 {
		t.Fatalf("built = %+v", b)
	}
	if b = Build("meta", "/meta", WithName("status")); b.Name != "status" || b.Ports != nil {
		t.Fatalf("built = %+v", b)
	}
}

func TestBuilt_Mount(t *testing.T) {
	var tagged bool
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tagged = true
			next.ServeHTTP(w, r)
		})
	}
	m := chi.NewRouter()
	Build("meta", " meta/ ", WithMiddlewares(tag)).Mount(phttp.AdaptChi(m), func(r httpkit.Router) {
		httpkit.Get(r, "/health", func(*http.Request) (any, error) { return "up", nil })
	})

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/meta/health", nil))
	if rr.Code != http.StatusOK || !tagged {
		t.Fatalf("code=%d tagged=%v", rr.Code, tagged)
	}
}

func TestDeps_Clock(t *testing.T) {
	if (Deps{}).ClockOrSystem() == nil {
		t.Fatal("zero deps have no clock")
	}
	start := time.Unix(100, 0)
	d := Deps{Cfg: config.New(), Clock: ptime.NewManual(start)}
	if !d.ClockOrSystem().Now().Equal(start) {
		t.Fatal("injected clock ignored")
	}
}
