package httpkit

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perrs "scanwedge/internal/platform/errors"
	pnet "scanwedge/internal/platform/net"
)

func TestJWT(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def.ghi": "abc.def.ghi",
		"bearer   abc  ":     "abc",
		"BEARER x":           "x",
		"Basic dXNlcjpwYXNz": "",
		"Bearer":             "",
		"Bearer    ":         "",
		"":                   "",
		"Bearerabc.def.ghi":  "",
	}
	for header, want := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		got, err := JWT(r)
		if want == "" {
			if !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
				t.Errorf("JWT(%q) err = %v", header, err)
			}
			continue
		}
		if err != nil || got != want {
			t.Errorf("JWT(%q) = %q, %v", header, got, err)
		}
	}
}

func TestPort_Parse(t *testing.T) {
	p := NewPortFunc(func(tok string) (string, string, error) {
		if tok == "bad" {
			return "", "", errors.New("signature")
		}
		return "u-" + tok, "7", nil
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer cashier")
	uid, tid, err := p.Parse(r)
	if err != nil || uid != "u-cashier" || tid != "7" {
		t.Fatalf("Parse = %q %q %v", uid, tid, err)
	}

	r.Header.Set("Authorization", "Bearer bad")
	if _, _, err := p.Parse(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("parser failure = %v", err)
	}
	if _, _, err := NewPortFunc(nil).Parse(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("nil parser = %v", err)
	}
}

func TestAuth_PopulatesCaller(t *testing.T) {
	var uid, tid, tok string
	h := Auth(NewPortFunc(ClaimsTokenFunc))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, _ = User(r)
		tid, _ = Tenant(r)
		tok, _ = JWT(r)
	}))

	jwt := token(`{"user_id":31,"company_id":4}`)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+jwt)
	h.ServeHTTP(httptest.NewRecorder(), r)
	if uid != "31" || tid != "4" || tok != jwt {
		t.Fatalf("caller = %q %q %q", uid, tid, tok)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous = %d", rr.Code)
	}
}

func TestUserTenant_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := User(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("User err = %v", err)
	}
	if _, err := Tenant(r); !perrs.IsCode(err, perrs.ErrorCodeUnauthorized) {
		t.Fatalf("Tenant err = %v", err)
	}
	r = r.WithContext(pnet.WithUser(r.Context(), "9"))
	if uid, err := User(r); err != nil || uid != "9" {
		t.Fatalf("User = %q %v", uid, err)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, httptest.NewRequest(http.MethodGet, "/stream", nil), perrs.NotFoundf("session %s", "s-1"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rr.Code)
	}
}
