// Package normalize cleans scanner output into a lookup-ready barcode string
// Pipeline order
// 1 Drop control characters and invalid UTF-8
// 2 Optional keyboard layout fold (Cyrillic JCUKEN positions back to QWERTY)
// 3 Unicode NFKC normalization
// 4 Remove format chars (ZWJ ZWNJ BOM)
// 5 Width fold fullwidth to ASCII
// 6 Trim surrounding whitespace
//
// The layout fold runs before NFKC, which would otherwise turn № into "No".
//
// Case is preserved, Code 128 and QR payloads are case sensitive.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalizer turns raw scanner text into a lookup key. It holds no mutable
// state and may be shared between goroutines.
type Normalizer struct {
	foldLayout bool
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithLayoutFold maps Cyrillic letters to the QWERTY keys they share. A wedge
// scanner types key positions, so under a Russian layout "0123йцук" arrives
// for "0123qwer".
func WithLayoutFold(on bool) Option {
	return func(n *Normalizer) { n.foldLayout = on }
}

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// New constructs a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, fn := range opts {
		fn(n)
	}
	return n
}

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1
	s = Sanitize(s)

	// 2
	if n.foldLayout {
		s = LayoutFold(s)
	}

	// 3-5 transform via pooled chain then reset and return it
	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	// 6
	return strings.TrimSpace(ns)
}

// jcuken maps Russian layout output to the US key in the same position
var jcuken = map[rune]rune{
	'й': 'q', 'ц': 'w', 'у': 'e', 'к': 'r', 'е': 't', 'н': 'y', 'г': 'u', 'ш': 'i', 'щ': 'o', 'з': 'p', 'х': '[', 'ъ': ']',
	'ф': 'a', 'ы': 's', 'в': 'd', 'а': 'f', 'п': 'g', 'р': 'h', 'о': 'j', 'л': 'k', 'д': 'l', 'ж': ';', 'э': '\'',
	'я': 'z', 'ч': 'x', 'с': 'c', 'м': 'v', 'и': 'b', 'т': 'n', 'ь': 'm', 'б': ',', 'ю': '.', 'ё': '`',
	'Й': 'Q', 'Ц': 'W', 'У': 'E', 'К': 'R', 'Е': 'T', 'Н': 'Y', 'Г': 'U', 'Ш': 'I', 'Щ': 'O', 'З': 'P', 'Х': '{', 'Ъ': '}',
	'Ф': 'A', 'Ы': 'S', 'В': 'D', 'А': 'F', 'П': 'G', 'Р': 'H', 'О': 'J', 'Л': 'K', 'Д': 'L', 'Ж': ':', 'Э': '"',
	'Я': 'Z', 'Ч': 'X', 'С': 'C', 'М': 'V', 'И': 'B', 'Т': 'N', 'Ь': 'M', 'Б': '<', 'Ю': '>', 'Ё': '~',
	'№': '#',
}

// LayoutFold rewrites Cyrillic layout characters. Strings without Cyrillic pass through unchanged.
func LayoutFold(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { _, ok := jcuken[r]; return ok }) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if m, ok := jcuken[r]; ok {
			return m
		}
		return r
	}, s)
}
