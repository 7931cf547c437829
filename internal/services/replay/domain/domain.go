// Package domain defines the replay report and the port the CLI drives
package domain

import (
	"context"

	"scanwedge/internal/adapters/keylog"
	"scanwedge/internal/core/scanner"
)

// Source yields recorded key presses in log order; io.EOF ends the stream
type Source interface {
	Next() (keylog.Entry, error)
}

// Burst is one classified run of keys with the barcode a live session would have looked up
type Burst struct {
	scanner.Result
	Barcode string `json:"barcode,omitempty"`
}

// Summary aggregates a replay
type Summary struct {
	Keys     int `json:"keys"`
	Accepted int `json:"accepted"`
	Denied   int `json:"denied"`
	Bursts   int `json:"bursts"`
	Scans    int `json:"scans"`
	Typed    int `json:"typed"`

	// means over bursts with at least two keys
	MeanIntervalMs      float64 `json:"mean_interval_ms"`
	ScanMeanIntervalMs  float64 `json:"scan_mean_interval_ms"`
	TypedMeanIntervalMs float64 `json:"typed_mean_interval_ms"`
}

// Thresholds echoes the options a replay ran with
type Thresholds struct {
	DebounceMs          int64    `json:"debounce_ms"`
	IntervalThresholdMs int64    `json:"interval_threshold_ms"`
	MinLength           int      `json:"min_length"`
	Terminators         []string `json:"terminators"`
	AllowDocument       bool     `json:"allow_document"`
	CaptureIDs          []string `json:"capture_ids,omitempty"`
}

// Report is the outcome of one replay
type Report struct {
	Thresholds Thresholds `json:"thresholds"`
	Bursts     []Burst    `json:"bursts"`
	Summary    Summary    `json:"summary"`
}

// ReplayPort runs a keylog through a classifier
type ReplayPort interface {
	Replay(ctx context.Context, src Source) (Report, error)
}
