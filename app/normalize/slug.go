package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify converts s into a lowercase ASCII slug: diacritics stripped,
// non-alphanumeric runs collapsed into single hyphens.
func Slugify(s string) string {
	if ascii, _, err := transform.String(deaccent, s); err == nil {
		s = ascii
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))

	prevHyphen := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			prevHyphen = false
			continue
		}
		if !prevHyphen {
			b.WriteByte('-')
			prevHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
