// Package scanner classifies bursts of keystrokes as barcode scanner input or human typing.
//
// A keyboard wedge scanner types its decoded value as a fast run of key presses, usually
// followed by Enter. The Classifier buffers printable keys, waits for a quiet period or a
// terminator key, and then judges the burst by its mean inter-key interval and length.
package scanner

import (
	"time"

	perr "scanwedge/internal/platform/errors"
)

const (
	// DefaultDebounceWindow is the quiet period that ends a burst
	DefaultDebounceWindow = 150 * time.Millisecond
	// DefaultIntervalThreshold is the mean interval below which a burst counts as machine typed
	DefaultIntervalThreshold = 50 * time.Millisecond
	// DefaultMinLength is the shortest burst that can be classified as a scan
	DefaultMinLength = 6
	// KeyEnter is the default terminator
	KeyEnter = "Enter"
)

// Options tunes the classifier. The defaults are empirical, not laws.
type Options struct {
	// DebounceWindow is how long the buffer may sit idle before it is analyzed
	DebounceWindow time.Duration
	// IntervalThreshold is the exclusive upper bound on the mean inter-key interval of a scan
	IntervalThreshold time.Duration
	// MinLength is the inclusive lower bound on the character count of a scan
	MinLength int
	// Terminators are key names that end the buffer immediately
	Terminators []string
}

// DefaultOptions returns the stock thresholds
func DefaultOptions() Options {
	return Options{
		DebounceWindow:    DefaultDebounceWindow,
		IntervalThreshold: DefaultIntervalThreshold,
		MinLength:         DefaultMinLength,
		Terminators:       []string{KeyEnter},
	}
}

// WithDefaults fills zero fields from DefaultOptions
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.DebounceWindow == 0 {
		o.DebounceWindow = d.DebounceWindow
	}
	if o.IntervalThreshold == 0 {
		o.IntervalThreshold = d.IntervalThreshold
	}
	if o.MinLength == 0 {
		o.MinLength = d.MinLength
	}
	if len(o.Terminators) == 0 {
		o.Terminators = d.Terminators
	}
	return o
}

// Validate rejects options the classifier cannot run with
func (o Options) Validate() error {
	switch {
	case o.DebounceWindow <= 0:
		return perr.WithField(perr.InvalidArgf("debounce window must be positive, got %s", o.DebounceWindow), "debounce_window")
	case o.IntervalThreshold <= 0:
		return perr.WithField(perr.InvalidArgf("interval threshold must be positive, got %s", o.IntervalThreshold), "interval_threshold")
	case o.MinLength < 1:
		return perr.WithField(perr.InvalidArgf("min length must be at least 1, got %d", o.MinLength), "min_length")
	}
	for _, k := range o.Terminators {
		if Printable(k) {
			return perr.WithField(perr.InvalidArgf("terminator %q is a printable key", k), "terminators")
		}
	}
	return nil
}

func (o Options) isTerminator(key string) bool {
	for _, k := range o.Terminators {
		if k == key {
			return true
		}
	}
	return false
}
