// Package time contains time related helpers and the clock seam used by timer driven code
package time

import "time"

// Millis returns d as fractional milliseconds
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// FromMillis converts an epoch millisecond stamp to a UTC time
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Timer is the part of *time.Timer the clock seam exposes
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time and one-shot timers
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// System returns the process clock
func System() Clock { return systemClock{} }
