package scanner

import (
	"strings"
	"time"
)

// Buffer accumulates the characters of one burst with their press times.
// Both slices always have the same length and times never decrease.
type Buffer struct {
	chars []string
	times []time.Time
}

// Append adds a character. A timestamp older than the last one is clamped to it.
func (b *Buffer) Append(ch string, at time.Time) {
	if n := len(b.times); n > 0 && at.Before(b.times[n-1]) {
		at = b.times[n-1]
	}
	b.chars = append(b.chars, ch)
	b.times = append(b.times, at)
}

// Len is the number of buffered characters
func (b *Buffer) Len() int { return len(b.chars) }

// Empty reports whether nothing is buffered
func (b *Buffer) Empty() bool { return len(b.chars) == 0 }

// Text joins the buffered characters in press order
func (b *Buffer) Text() string { return strings.Join(b.chars, "") }

// Intervals returns the gaps between consecutive presses
func (b *Buffer) Intervals() []time.Duration {
	if len(b.times) < 2 {
		return nil
	}
	out := make([]time.Duration, 0, len(b.times)-1)
	for i := 1; i < len(b.times); i++ {
		out = append(out, b.times[i].Sub(b.times[i-1]))
	}
	return out
}

// First and Last return the bounding press times (zero when empty)
func (b *Buffer) First() time.Time {
	if len(b.times) == 0 {
		return time.Time{}
	}
	return b.times[0]
}

func (b *Buffer) Last() time.Time {
	if len(b.times) == 0 {
		return time.Time{}
	}
	return b.times[len(b.times)-1]
}

// Reset empties the buffer, keeping capacity
func (b *Buffer) Reset() {
	b.chars = b.chars[:0]
	b.times = b.times[:0]
}
