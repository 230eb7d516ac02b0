package scoring

import "strings"

// tokenKind tags a run of word runes.
type tokenKind int

const (
	tokWord   tokenKind = iota // letters only
	tokNumber                  // digits only
	tokMixed                   // letters, digits, underscore mixed
)

// token is a maximal run of word runes plus the raw separator text between
// it and the next token. Date and experience patterns are matched over these
// tagged tokens instead of a regex dialect, keeping the boundary semantics
// explicit.
type token struct {
	text string
	kind tokenKind
	gap  string // separator between this token and the next, "" for the last
}

// tokenize splits text into word-rune runs. Separator text is preserved
// verbatim so patterns can require pure whitespace or an exact "/" between
// neighboring tokens.
func tokenize(text string) []token {
	var toks []token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if !isWordRune(runes[i]) {
			i++
			continue
		}
		start := i
		letters, digits, other := 0, 0, 0
		for i < len(runes) && isWordRune(runes[i]) {
			switch {
			case runes[i] >= '0' && runes[i] <= '9':
				digits++
			case runes[i] == '_':
				other++
			default:
				letters++
			}
			i++
		}
		kind := tokMixed
		switch {
		case letters > 0 && digits == 0 && other == 0:
			kind = tokWord
		case digits > 0 && letters == 0 && other == 0:
			kind = tokNumber
		}
		toks = append(toks, token{text: string(runes[start:i]), kind: kind})
		gapStart := i
		for i < len(runes) && !isWordRune(runes[i]) {
			i++
		}
		if i < len(runes) {
			toks[len(toks)-1].gap = string(runes[gapStart:i])
		}
	}
	return toks
}

// wsGap reports whether a separator is non-empty whitespace only.
func wsGap(gap string) bool {
	return gap != "" && strings.TrimSpace(gap) == ""
}

// plusGap reports whether a separator is whitespace optionally carrying a
// single '+', covering "5 years", "5+ years", and "5+years".
func plusGap(gap string) bool {
	stripped := strings.Join(strings.Fields(gap), "")
	return stripped == "" || stripped == "+"
}
