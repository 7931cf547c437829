// Package domain holds the scanner session types and service contracts
package domain

import (
	"time"

	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/scanner"
)

// Action is what a client should do with a completed scan
type Action string

const (
	// ActionOpenProduct means the barcode matched a catalog product
	ActionOpenProduct Action = "open_product"
	// ActionCreateProduct means no product matched, offer creation with the barcode prefilled
	ActionCreateProduct Action = "create_product"
	// ActionIgnored means the burst was human typing or normalized to nothing
	ActionIgnored Action = "ignored"
	// ActionError means the catalog lookup failed
	ActionError Action = "error"
)

// Source says how a scan entered the session
type Source string

const (
	// SourceKeys is a burst classified from keystrokes
	SourceKeys Source = "keys"
	// SourceManual is a code typed into the manual entry box
	SourceManual Source = "manual"
)

// Product is the catalog match returned to clients
type Product struct {
	ID       int64  `json:"id" example:"42"`
	Name     string `json:"name" example:"Stabilo Boss"`
	ImageURL string `json:"image_url,omitempty" example:"/images/42.png"`
	Category string `json:"category,omitempty" example:"Pens"`
}

// Outcome is the resolution of one scan
type Outcome struct {
	Action  Action   `json:"action" example:"open_product"`
	Barcode string   `json:"barcode,omitempty" example:"4006381333931"`
	Product *Product `json:"product,omitempty"`
	Message string   `json:"message,omitempty"`
}

// ScanEvent is one resolved scan in a session's queue
type ScanEvent struct {
	Seq       uint64          `json:"seq" example:"3"`
	ID        string          `json:"id" example:"7d7b3c9e-8c55-4c8e-a1a3-2f0f6fbc1f43"`
	SessionID string          `json:"session_id"`
	Source    Source          `json:"source" example:"keys"`
	Result    *scanner.Result `json:"result,omitempty"`
	Outcome   Outcome         `json:"outcome"`
	At        time.Time       `json:"at"`
}

// Thresholds is the wire view of classifier options
type Thresholds struct {
	DebounceMs          int64    `json:"debounce_ms" example:"150"`
	IntervalThresholdMs int64    `json:"interval_threshold_ms" example:"50"`
	MinLength           int      `json:"min_length" example:"6"`
	Terminators         []string `json:"terminators" example:"Enter"`
}

// ThresholdsOf renders scanner options for clients
func ThresholdsOf(o scanner.Options) Thresholds {
	return Thresholds{
		DebounceMs:          o.DebounceWindow.Milliseconds(),
		IntervalThresholdMs: o.IntervalThreshold.Milliseconds(),
		MinLength:           o.MinLength,
		Terminators:         append([]string(nil), o.Terminators...),
	}
}

// Options converts the wire view back, zero fields stay zero
func (t Thresholds) Options() scanner.Options {
	return scanner.Options{
		DebounceWindow:    time.Duration(t.DebounceMs) * time.Millisecond,
		IntervalThreshold: time.Duration(t.IntervalThresholdMs) * time.Millisecond,
		MinLength:         t.MinLength,
		Terminators:       append([]string(nil), t.Terminators...),
	}
}

// SessionInfo describes a live capture session
type SessionInfo struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id,omitempty" example:"7"`
	UserID     string         `json:"user_id,omitempty" example:"12"`
	Enabled    bool           `json:"enabled"`
	State      string         `json:"state" example:"idle"`
	Pending    int            `json:"pending"`
	LastSeq    uint64         `json:"last_seq"`
	Thresholds Thresholds     `json:"thresholds"`
	Policy     capture.Policy `json:"policy"`
	CreatedAt  time.Time      `json:"created_at"`
	LastSeenAt time.Time      `json:"last_seen_at"`
}

// Caller carries the identity a request acts under
type Caller struct {
	UserID    string
	CompanyID string
	Token     string
}
