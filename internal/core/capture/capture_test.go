package capture

import "testing"

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"":                KindDocument,
		"BODY":            KindDocument,
		"INPUT":           KindInput,
		" textarea ":      KindTextarea,
		"Select":          KindSelect,
		"contenteditable": KindEditable,
		"capture":         KindCapture,
		"canvas":          Kind("canvas"),
	}
	for in, want := range cases {
		if got := ParseKind(in); got != want {
			t.Errorf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPolicy_Allows(t *testing.T) {
	def := DefaultPolicy()
	pinned := Policy{CaptureIDs: []string{"barcode-capture"}}

	cases := []struct {
		name string
		p    Policy
		t    Target
		want bool
	}{
		{"document allowed by default", def, Target{Kind: KindDocument}, true},
		{"any capture field by default", def, Target{Kind: KindCapture, ID: "x"}, true},
		{"input denied", def, Target{Kind: KindInput, ID: "search"}, false},
		{"textarea denied", def, Target{Kind: KindTextarea}, false},
		{"select denied", def, Target{Kind: KindSelect}, false},
		{"editable denied", def, Target{Kind: KindEditable}, false},
		{"unknown denied", def, Target{Kind: "canvas"}, false},
		{"document off", pinned, Target{Kind: KindDocument}, false},
		{"pinned capture id", pinned, Target{Kind: KindCapture, ID: "barcode-capture"}, true},
		{"other capture id", pinned, Target{Kind: KindCapture, ID: "other"}, false},
	}
	for _, tc := range cases {
		if got := tc.p.Allows(tc.t); got != tc.want {
			t.Errorf("%s: Allows = %v, want %v", tc.name, got, tc.want)
		}
	}
}
