package util

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldAccents strips combining marks so that á→a, ñ→n, Á→A and so on.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts any scalar cell value into the canonical matching form:
// accents folded, lowercased, everything outside letters/digits/space/comma
// replaced by a space, whitespace collapsed. Nil yields "". Total, never fails.
func Normalize(value any) string {
	s := Stringify(value)
	if s == "" {
		return ""
	}

	if folded, _, err := transform.String(foldAccents, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == ',':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Stringify renders a scalar cell value without normalizing it.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// Tokenize splits an already-normalized string into its words.
func Tokenize(input string) []string {
	return strings.Fields(input)
}

// WordOverlap is the Jaccard coefficient over whitespace-tokenized word sets.
func WordOverlap(a, b string) float64 {
	wordsA := Tokenize(a)
	wordsB := Tokenize(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := map[string]struct{}{}
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	setB := map[string]struct{}{}
	for _, w := range wordsB {
		setB[w] = struct{}{}
	}

	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
