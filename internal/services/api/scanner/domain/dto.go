package domain

import "scanwedge/internal/core/scanner"

// OpenInput creates a session. Zero thresholds take the service defaults.
type OpenInput struct {
	DebounceMs          int      `json:"debounce_ms,omitempty" validate:"omitempty,min=10,max=5000" example:"150"`
	IntervalThresholdMs int      `json:"interval_threshold_ms,omitempty" validate:"omitempty,min=1,max=1000" example:"50"`
	MinLength           int      `json:"min_length,omitempty" validate:"omitempty,min=1,max=128" example:"6"`
	Terminators         []string `json:"terminators,omitempty" validate:"omitempty,max=4,dive,keyname" example:"Enter"`
	AllowDocument       *bool    `json:"allow_document,omitempty" example:"true"`
	CaptureIDs          []string `json:"capture_ids,omitempty" validate:"omitempty,max=8,dive,min=1,max=64" example:"barcode-capture"`
	Disabled            bool     `json:"disabled,omitempty"`
}

// KeyInput is one key press as observed by the client
type KeyInput struct {
	Key      string `json:"key" validate:"required,keyname" example:"A"`
	AtMs     int64  `json:"at_ms" validate:"min=0" example:"1714564800123"`
	Target   string `json:"target,omitempty" validate:"omitempty,max=32" example:"document"`
	TargetID string `json:"target_id,omitempty" validate:"omitempty,max=64"`
}

// FeedInput is a batch of key presses in press order
type FeedInput struct {
	Keys []KeyInput `json:"keys" validate:"required,min=1,max=512,dive"`
}

// FeedResult reports what a batch did
type FeedResult struct {
	Accepted int              `json:"accepted" example:"8"`
	Ignored  int              `json:"ignored" example:"1"`
	Pending  int              `json:"pending" example:"0"`
	Results  []scanner.Result `json:"results"`
}

// SubmitInput is a manually entered code
type SubmitInput struct {
	Code string `json:"code" validate:"required,max=256" example:"4006381333931"`
}

// EnabledInput toggles the classifier
type EnabledInput struct {
	Enabled *bool `json:"enabled" validate:"required" example:"false"`
}

// EventsResult is a page of queued scan events
type EventsResult struct {
	Events  []ScanEvent `json:"events"`
	LastSeq uint64      `json:"last_seq"`
}
