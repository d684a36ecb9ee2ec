package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces HTML markup to plain text with collapsed whitespace.
// Input that fails to parse is returned whitespace-collapsed as-is.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return collapseWhitespace(html)
	}

	return collapseWhitespace(doc.Text())
}

// Truncate bounds s to max bytes, cutting on a rune boundary.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := s[:max]
	for len(cut) > 0 {
		r, size := utf8.DecodeLastRuneInString(cut)
		if r == utf8.RuneError && size <= 1 {
			cut = cut[:len(cut)-1]
			continue
		}
		break
	}

	return strings.TrimRight(cut, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
