package service

import (
	"time"

	"scanwedge/internal/core/capture"
	"scanwedge/internal/core/scanner"
)

// Config holds scanner service settings
type Config struct {
	Defaults scanner.Options
	// Policy is the capture policy new sessions start with, nil means capture.DefaultPolicy
	Policy        *capture.Policy
	SessionTTL    time.Duration
	ReapEvery     time.Duration
	QueueSize     int
	MaxSessions   int
	LookupTimeout time.Duration
	// LookupConcurrency bounds in-flight catalog lookups across all sessions
	LookupConcurrency int
	FoldLayout        bool
}

// DefaultConfig returns the stock service settings
func DefaultConfig() Config {
	pol := capture.DefaultPolicy()
	return Config{
		Defaults:          scanner.DefaultOptions(),
		Policy:            &pol,
		SessionTTL:        15 * time.Minute,
		ReapEvery:         30 * time.Second,
		QueueSize:         64,
		MaxSessions:       1024,
		LookupTimeout:     10 * time.Second,
		LookupConcurrency: 8,
		FoldLayout:        true,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	c.Defaults = c.Defaults.WithDefaults()
	if c.Policy == nil {
		c.Policy = d.Policy
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = d.SessionTTL
	}
	if c.ReapEvery <= 0 {
		c.ReapEvery = d.ReapEvery
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = d.MaxSessions
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = d.LookupTimeout
	}
	if c.LookupConcurrency <= 0 {
		c.LookupConcurrency = d.LookupConcurrency
	}
	return c
}
