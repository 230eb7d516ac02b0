// Package scoring implements the resume-vs-JD scoring core: text
// normalization, skill extraction, experience parsing, the composite score,
// and the explanation prose. Everything here is pure computation; the only
// I/O happens behind the injected similarity provider.
package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold strips combining marks after canonical decomposition, turning
// accented letters into their base ASCII form (résumé -> resume).
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// translit covers common Latin letters that do not decompose into an ASCII
// base plus combining marks.
var translit = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "AE", "œ", "oe", "Œ", "OE",
	"ø", "o", "Ø", "O", "đ", "d", "Đ", "D", "ł", "l", "Ł", "L",
	"þ", "th", "Þ", "Th", "ð", "d", "Ð", "D", "ı", "i",
)

// Normalize prepares raw text for skill extraction and similarity scoring:
// transliterate to ASCII, lowercase, expand the YOE shorthand, strip
// punctuation except '+' (so "c++" and "10+" survive), and collapse
// whitespace. It is pure, total over valid UTF-8, and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	if folded, _, err := transform.String(asciiFold, text); err == nil {
		text = folded
	}
	text = translit.Replace(text)
	text = strings.ToLower(text)

	// Standardize experience shorthand before punctuation stripping so the
	// dotted form is still intact.
	text = replaceWholeWord(text, "y.o.e", "years of experience")
	text = replaceWholeWord(text, "yoe", "years of experience")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '+':
			b.WriteRune(r)
		case r > unicode.MaxASCII, unicode.IsPunct(r), unicode.IsSymbol(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isWordRune mirrors the \w character class: letters, digits, underscore.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// boundedAt reports whether text[start:end] sits on non-word boundaries,
// i.e. the runes immediately before and after (when present) are not word
// runes. This covers both strict word boundaries for plain skills and the
// looser lookaround boundaries needed for symbol-edged skills like "c++",
// where a word boundary would land inside the symbol.
func boundedAt(text string, start, end int) bool {
	if start > 0 {
		if r := lastRune(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r := firstRune(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// containsBounded reports whether needle occurs in text on non-word
// boundaries. Matching is byte-wise; callers pass lowercased inputs.
func containsBounded(text, needle string) bool {
	if needle == "" {
		return false
	}
	for i := 0; i+len(needle) <= len(text); {
		j := strings.Index(text[i:], needle)
		if j < 0 {
			return false
		}
		start := i + j
		if boundedAt(text, start, start+len(needle)) {
			return true
		}
		i = start + 1
	}
	return false
}

// replaceWholeWord substitutes every bounded occurrence of old with new.
// Inputs are expected lowercased; occurrences abutting word runes are left
// untouched.
func replaceWholeWord(text, old, new string) string {
	if old == "" || !strings.Contains(text, old) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		j := strings.Index(text[i:], old)
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		start := i + j
		end := start + len(old)
		b.WriteString(text[i:start])
		if boundedAt(text, start, end) {
			b.WriteString(new)
		} else {
			b.WriteString(text[start:end])
		}
		i = end
	}
	return b.String()
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
