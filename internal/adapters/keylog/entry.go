package keylog

import (
	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/scanner"
	ptime "scanwedge/internal/platform/time"
)

// Entry is one recorded key press
type Entry struct {
	Key      string `json:"key"`
	AtMs     int64  `json:"at_ms"`
	Target   string `json:"target,omitempty"`
	TargetID string `json:"target_id,omitempty"`
}

// Event converts the entry for the classifier
func (e Entry) Event() scanner.KeyEvent {
	return scanner.KeyEvent{Key: e.Key, At: ptime.FromMillis(e.AtMs)}
}

// Where returns the element the key was observed on
func (e Entry) Where() capture.Target {
	return capture.Target{Kind: capture.ParseKind(e.Target), ID: e.TargetID}
}

// Burst renders text as presses step apart starting at startMs, followed by
// terminator when it is not empty
func Burst(text string, startMs, stepMs int64, target, terminator string) []Entry {
	out := make([]Entry, 0, len(text)+1)
	at := startMs
	for _, r := range text {
		out = append(out, Entry{Key: string(r), AtMs: at, Target: target})
		at += stepMs
	}
	if terminator != "" {
		out = append(out, Entry{Key: terminator, AtMs: at, Target: target})
	}
	return out
}
