package scanner

import (
	"time"
	"unicode/utf8"
)

// KeyEvent is one observed key press. Key follows the DOM KeyboardEvent.key
// convention: a single glyph for printable keys, a name such as "Enter" or
// "Shift" otherwise.
type KeyEvent struct {
	Key string
	At  time.Time
}

// Printable reports whether key is a single character with code point >= 32
func Printable(key string) bool {
	if key == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(key)
	if size != len(key) || r == utf8.RuneError {
		return false
	}
	return r >= 32
}
