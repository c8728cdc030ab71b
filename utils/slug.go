package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugUnsafe     = regexp.MustCompile(`[^A-Za-z0-9_\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// Slugify turns a display label into a URL-safe identifier: accents are
// folded to their base letter, punctuation dropped, whitespace runs joined
// with a dash, result lower-cased.
func Slugify(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = slugUnsafe.ReplaceAllString(folded, "")
	folded = strings.TrimSpace(folded)
	folded = slugWhitespace.ReplaceAllString(folded, "-")
	return strings.ToLower(folded)
}
