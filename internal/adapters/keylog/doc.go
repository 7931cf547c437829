// Package keylog reads and writes recorded keystroke streams as JSON lines.
//
// One line per key press:
//
//	{"key":"4","at_ms":1714564800000,"target":"document"}
//
// Files ending in .gz are gzip compressed. Malformed lines are skipped and counted.
package keylog
