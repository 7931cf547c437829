// Package testkit holds assertions shared by package tests
package testkit

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// MustPanic fails t unless fn panics
func MustPanic(t testing.TB, fn func()) {
	t.Helper()
	if r := recovered(fn); r == nil {
		t.Fatal("expected a panic")
	}
}

// MustNotPanic fails t if fn panics
func MustNotPanic(t testing.TB, fn func()) {
	t.Helper()
	if r := recovered(fn); r != nil {
		t.Fatalf("unexpected panic: %v", r)
	}
}

func recovered(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}

// MustContain fails t unless out contains want. Long output is trimmed in the message.
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	shown := out
	if len(shown) > 2048 {
		shown = shown[:2048] + fmt.Sprintf("... (%d bytes)", len(out))
	}
	t.Fatalf("output does not contain %q:\n%s", want, shown)
}

// Eventually polls cond every 5ms until it holds or wait elapses
func Eventually(t testing.TB, wait time.Duration, cond func() bool, msg string) {
	t.Helper()
	tick := time.NewTicker(5 * time.Millisecond)
	defer tick.Stop()
	deadline := time.After(wait)
	for !cond() {
		select {
		case <-deadline:
			t.Fatalf("not met within %s: %s", wait, msg)
		case <-tick.C:
		}
	}
}
