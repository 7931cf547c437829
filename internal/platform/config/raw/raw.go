// Package raw reads environment variables without logging. The logger
// bootstraps from it, so it must not import the logger.
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf reads variables under a name prefix such as "LOG_"
type Conf struct{ prefix string }

// New returns a Conf without a prefix
func New() Conf { return Conf{} }

// Prefix returns a Conf reading under c's prefix plus p
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Name is the full variable name for key
func (c Conf) Name(key string) string { return c.prefix + key }

// Lookup returns the trimmed value and whether it is non-empty
func (c Conf) Lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Name(key)))
	return v, v != ""
}

// Get returns the value or def when unset
func (c Conf) Get(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// GetBool accepts the strconv forms plus yes/no and on/off. Anything else is def.
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// GetInt returns a non negative integer, def when unset or unparsable
func (c Conf) GetInt(key string, def int) int {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
