// Package config reads typed settings from environment variables. Invalid
// values are logged and replaced by the default.
package config

import (
	"strconv"
	"time"

	"scanwedge/internal/platform/config/raw"
	"scanwedge/internal/platform/logger"
	pstrings "scanwedge/internal/platform/strings"
)

// Conf reads variables under a prefix, e.g. New().Prefix("CORE_SCANNER_")
type Conf struct{ env raw.Conf }

// New returns a Conf without a prefix
func New() Conf { return Conf{} }

// Prefix returns a Conf reading under c's prefix plus p
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Named("config").Warn().
			Str("key", c.env.Name(key)).
			Str("value", s).
			Interface("default", def).
			Msg("invalid setting, using default")
		return def
	}
	return v
}

// MayString returns the trimmed value or def
func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

// MayInt returns an integer or def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool returns a strconv.ParseBool value or def
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns a time.ParseDuration value such as 150ms, or def
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated list, dropping blanks. An empty list is def.
func (c Conf) MayCSV(key string, def []string) []string {
	s, ok := c.env.Lookup(key)
	if !ok {
		return def
	}
	out := pstrings.SplitList(s)
	if len(out) == 0 {
		return def
	}
	return out
}
