package module

import (
	"time"

	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/scanner"
	"scanwedge/internal/platform/config"
	svc "scanwedge/internal/services/api/scanner/service"
)

// Options holds configuration settings for the scanner module
type Options struct {
	Debounce          time.Duration
	IntervalThreshold time.Duration
	MinLength         int
	Terminators       []string
	AllowDocument     bool
	CaptureIDs        []string

	SessionTTL        time.Duration
	QueueSize         int
	MaxSessions       int
	LookupConcurrency int
	FoldLayout        bool
	RequireAuth       bool

	CatalogURL            string
	CatalogTimeout        time.Duration
	CatalogMissingAsError bool
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SCANNER_")
	cat := cfg.Prefix("SERVICE_CATALOG_")
	d := scanner.DefaultOptions()
	return Options{
		Debounce:              sc.MayDuration("DEBOUNCE", d.DebounceWindow),
		IntervalThreshold:     sc.MayDuration("INTERVAL_THRESHOLD", d.IntervalThreshold),
		MinLength:             sc.MayInt("MIN_LENGTH", d.MinLength),
		Terminators:           sc.MayCSV("TERMINATORS", d.Terminators),
		AllowDocument:         sc.MayBool("ALLOW_DOCUMENT", true),
		CaptureIDs:            sc.MayCSV("CAPTURE_IDS", nil),
		SessionTTL:            sc.MayDuration("SESSION_TTL", 15*time.Minute),
		QueueSize:             sc.MayInt("QUEUE_SIZE", 64),
		MaxSessions:           sc.MayInt("MAX_SESSIONS", 1024),
		LookupConcurrency:     sc.MayInt("LOOKUP_CONCURRENCY", 8),
		FoldLayout:            sc.MayBool("FOLD_LAYOUT", true),
		RequireAuth:           sc.MayBool("REQUIRE_AUTH", false),
		CatalogURL:            cat.MayString("URL", ""),
		CatalogTimeout:        cat.MayDuration("TIMEOUT", 10*time.Second),
		CatalogMissingAsError: cat.MayBool("MISSING_AS_ERROR", false),
	}
}

// Service converts module options into service settings
func (o Options) Service() svc.Config {
	return svc.Config{
		Defaults: scanner.Options{
			DebounceWindow:    o.Debounce,
			IntervalThreshold: o.IntervalThreshold,
			MinLength:         o.MinLength,
			Terminators:       o.Terminators,
		},
		Policy:            &capture.Policy{AllowDocument: o.AllowDocument, CaptureIDs: o.CaptureIDs},
		SessionTTL:        o.SessionTTL,
		QueueSize:         o.QueueSize,
		MaxSessions:       o.MaxSessions,
		LookupTimeout:     o.CatalogTimeout,
		LookupConcurrency: o.LookupConcurrency,
		FoldLayout:        o.FoldLayout,
	}
}
