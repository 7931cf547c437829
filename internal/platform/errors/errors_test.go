package errors

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := map[ErrorCode]int{
		ErrorCodeValidation:      http.StatusBadRequest,
		ErrorCodeJSON:            http.StatusBadRequest,
		ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
		ErrorCodeNotFound:        http.StatusNotFound,
		ErrorCodeGone:            http.StatusGone,
		ErrorCodeTooManyRequests: http.StatusTooManyRequests,
		ErrorCodeUnauthorized:    http.StatusUnauthorized,
		ErrorCodeForbidden:       http.StatusForbidden,
		ErrorCodeUnavailable:     http.StatusServiceUnavailable,
		ErrorCodeTimeout:         http.StatusGatewayTimeout,
		ErrorCodePanic:           http.StatusInternalServerError,
		ErrorCodeUnknown:         http.StatusInternalServerError,
		ErrorCode(999):           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := HTTPStatusCode(code); got != want {
			t.Errorf("HTTPStatusCode(%s) = %d, want %d", code, got, want)
		}
	}
}

func TestErrorCode_Text(t *testing.T) {
	b, err := json.Marshal(Wire{Code: ErrorCodeGone, Message: "session closed"})
	if err != nil || string(b) != `{"code":"gone","message":"session closed"}` {
		t.Fatalf("marshal = %s %v", b, err)
	}
	var w Wire
	if err := json.Unmarshal([]byte(`{"code":"invalid_argument","message":"x","field":"terminators"}`), &w); err != nil {
		t.Fatal(err)
	}
	if w.Code != ErrorCodeInvalidArgument || w.Field != "terminators" {
		t.Fatalf("unmarshal = %+v", w)
	}
	if err := json.Unmarshal([]byte(`{"code":"brand_new"}`), &w); err != nil || w.Code != ErrorCodeUnknown {
		t.Fatalf("unknown name = %+v %v", w, err)
	}
	if ErrorCode(999).String() != "unknown" {
		t.Fatal("out of range code has a name")
	}
}

func TestWrapAndInspect(t *testing.T) {
	cause := stderrs.New("dial tcp: connection refused")
	err := Wrapf(cause, ErrorCodeUnavailable, "catalog %s", "down")
	if err.Error() != "catalog down: dial tcp: connection refused" {
		t.Fatalf("Error() = %q", err)
	}
	if !stderrs.Is(err, cause) || Root(fmt.Errorf("resolve: %w", err)) != cause {
		t.Fatal("cause lost")
	}
	if HTTPStatus(fmt.Errorf("ctx: %w", err)) != http.StatusServiceUnavailable {
		t.Fatal("status not found through foreign wrap")
	}
	if CodeOf(cause) != ErrorCodeUnknown || HTTPStatus(cause) != http.StatusInternalServerError {
		t.Fatal("foreign error classified")
	}
	if Root(cause) != cause {
		t.Fatal("Root of a leaf")
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatal("nil *Error")
	}
}

func TestWithFieldAndOp_CopyOnWrite(t *testing.T) {
	base := New(ErrorCodeValidation, "min_length must be at least 1")
	withField := WithField(base, "min_length")
	labelled := WithOp(withField, "scanner.Open")

	e, _ := As(labelled)
	if e.Field() != "min_length" || e.Op() != "scanner.Open" || e.Code() != ErrorCodeValidation {
		t.Fatalf("labelled = %+v", e)
	}
	if orig, _ := As(base); orig.Field() != "" || orig.Op() != "" {
		t.Fatal("original mutated")
	}

	foreign := stderrs.New("eof")
	if WithField(foreign, "keys") != foreign || WithOp(foreign, "read") != foreign {
		t.Fatal("foreign error rewrapped")
	}
}

func TestWireFrom(t *testing.T) {
	if WireFrom(nil) != (Wire{}) {
		t.Fatal("nil wire")
	}
	w := WireFrom(Wrap(stderrs.New("secret upstream detail"), ErrorCodeTimeout, "catalog lookup timed out"))
	if w.Code != ErrorCodeTimeout || w.Message != "catalog lookup timed out" {
		t.Fatalf("wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("session %s", "s-1"), ErrorCodeNotFound},
		{InvalidArgf("terminator %q is printable", "x"), ErrorCodeInvalidArgument},
		{Gonef("closed"), ErrorCodeGone},
		{Timeoutf("slow"), ErrorCodeTimeout},
		{JSONErrf("bad frame"), ErrorCodeJSON},
		{PanicErrf("panic"), ErrorCodePanic},
		{Unauthorizedf("token"), ErrorCodeUnauthorized},
		{Forbiddenf("company"), ErrorCodeForbidden},
		{Unavailablef("catalog"), ErrorCodeUnavailable},
		{Internalf("x"), ErrorCodeUnknown},
	}
	for _, tc := range cases {
		if !IsCode(tc.err, tc.code) {
			t.Errorf("%v: code = %s, want %s", tc.err, CodeOf(tc.err), tc.code)
		}
	}
}
