package normalize

import (
	"strings"
	"unicode/utf8"
)

// junk reports runes a barcode never carries: C0 controls (terminators leak in
// as CR, LF or TAB), DEL and the C1 block
func junk(r rune) bool {
	return r < 0x20 || (r >= 0x7F && r <= 0x9F)
}

// Sanitize drops control characters and invalid UTF-8. Clean input is returned as is.
func Sanitize(s string) string {
	i := firstJunk(s)
	if i < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !junk(r) && !(r == utf8.RuneError && size == 1) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// firstJunk is the byte offset of the first rune Sanitize would drop, or -1
func firstJunk(s string) int {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if junk(r) || (r == utf8.RuneError && size == 1) {
			return i
		}
		i += size
	}
	return -1
}
