// Package strings holds the few string helpers shared by config, routing and the CLIs
package strings

import std "strings"

// SplitList splits a comma separated list, trimming items and dropping blanks.
// A list with no items is nil.
func SplitList(s string) []string {
	var out []string
	for _, p := range std.Split(s, ",") {
		if p = std.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MustPrefix normalizes a route prefix to a single leading slash and no
// trailing slash. An empty or root prefix panics.
func MustPrefix(s string) string {
	s = "/" + std.Trim(s, " /")
	if s == "/" {
		panic("route prefix is required")
	}
	return s
}
