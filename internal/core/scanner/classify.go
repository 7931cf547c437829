package scanner

import (
	"time"

	ptime "scanwedge/internal/platform/time"
)

// Trigger says what ended a burst
type Trigger string

const (
	// TriggerIdle means the debounce window elapsed
	TriggerIdle Trigger = "idle_timeout"
	// TriggerTerminator means a terminator key was pressed
	TriggerTerminator Trigger = "terminator"
)

// Result is the verdict for one completed burst
type Result struct {
	Text              string    `json:"text"`
	IsScanner         bool      `json:"is_scanner"`
	AverageIntervalMs float64   `json:"average_interval_ms"`
	Length            int       `json:"length"`
	Trigger           Trigger   `json:"trigger"`
	StartedAt         time.Time `json:"started_at"`
	EndedAt           time.Time `json:"ended_at"`
}

// MeanIntervalMs is the mean gap between presses in float milliseconds, so
// sub-millisecond gaps are not truncated. It is 0 with fewer than two presses.
func MeanIntervalMs(intervals []time.Duration) float64 {
	if len(intervals) == 0 {
		return 0
	}
	var sum float64
	for _, d := range intervals {
		sum += ptime.Millis(d)
	}
	return sum / float64(len(intervals))
}

// IsScan applies the thresholds to a burst summary
func IsScan(avgMs float64, length int, o Options) bool {
	return avgMs < ptime.Millis(o.IntervalThreshold) && length >= o.MinLength
}

// Classify judges buf under o without touching it
func Classify(buf *Buffer, o Options, trigger Trigger) Result {
	avg, n := MeanIntervalMs(buf.Intervals()), buf.Len()
	return Result{
		Text:              buf.Text(),
		IsScanner:         IsScan(avg, n, o),
		AverageIntervalMs: avg,
		Length:            n,
		Trigger:           trigger,
		StartedAt:         buf.First(),
		EndedAt:           buf.Last(),
	}
}
