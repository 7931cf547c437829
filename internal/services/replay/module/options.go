package module

import (
	"time"

	"scanwedge/internal/core/scanner"
	"scanwedge/internal/platform/config"
)

// Options controls a replay. Thresholds share the CORE_SCANNER_ keys with the
// api so a replay runs against the deployed settings unless overridden.
type Options struct {
	Debounce          time.Duration
	IntervalThreshold time.Duration
	MinLength         int
	Terminators       []string
	AllowDocument     bool
	CaptureIDs        []string
	FoldLayout        bool
}

// FromConfig reads CORE_SCANNER_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_SCANNER_")
	d := scanner.DefaultOptions()
	return Options{
		Debounce:          c.MayDuration("DEBOUNCE", d.DebounceWindow),
		IntervalThreshold: c.MayDuration("INTERVAL_THRESHOLD", d.IntervalThreshold),
		MinLength:         c.MayInt("MIN_LENGTH", d.MinLength),
		Terminators:       c.MayCSV("TERMINATORS", d.Terminators),
		AllowDocument:     c.MayBool("ALLOW_DOCUMENT", true),
		CaptureIDs:        c.MayCSV("CAPTURE_IDS", nil),
		FoldLayout:        c.MayBool("FOLD_LAYOUT", true),
	}
}
