// Package capture decides which keystrokes are eligible for scanner classification.
//
// Keys typed into ordinary text fields belong to the user. Only keys observed on a
// dedicated capture field, or on the document while no field has focus, reach the
// classifier.
package capture

import "strings"

// Kind is where a keystroke was observed
type Kind string

const (
	// KindDocument is a key with no focused field
	KindDocument Kind = "document"
	// KindCapture is a key on a dedicated hidden capture field
	KindCapture Kind = "capture"
	// KindInput is a key on an ordinary input element
	KindInput Kind = "input"
	// KindTextarea is a key on a textarea
	KindTextarea Kind = "textarea"
	// KindSelect is a key on a select element
	KindSelect Kind = "select"
	// KindEditable is a key on a contenteditable element
	KindEditable Kind = "contenteditable"
)

// Target identifies the element that received a keystroke
type Target struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// ParseKind maps a DOM tag name or kind string to a Kind. Empty means document.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "document", "body":
		return KindDocument
	case "capture":
		return KindCapture
	case "input":
		return KindInput
	case "textarea":
		return KindTextarea
	case "select":
		return KindSelect
	case "contenteditable":
		return KindEditable
	default:
		return Kind(strings.ToLower(s))
	}
}

// Policy is a capture context
type Policy struct {
	// AllowDocument admits keys with no focused field
	AllowDocument bool `json:"allow_document"`
	// CaptureIDs restricts capture fields to these ids, empty admits any
	CaptureIDs []string `json:"capture_ids,omitempty"`
}

// DefaultPolicy listens on the document and on any capture field
func DefaultPolicy() Policy {
	return Policy{AllowDocument: true}
}

// Allows reports whether a keystroke on t should feed the classifier
func (p Policy) Allows(t Target) bool {
	switch t.Kind {
	case KindDocument:
		return p.AllowDocument
	case KindCapture:
		if len(p.CaptureIDs) == 0 {
			return true
		}
		for _, id := range p.CaptureIDs {
			if id == t.ID {
				return true
			}
		}
		return false
	default:
		return false
	}
}
