package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRun  = regexp.MustCompile(`[\s\p{Z}]+`)
	nonCleanChars  = regexp.MustCompile(`[^a-z0-9 ]+`)
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\-_]+`)
	separatorRun   = regexp.MustCompile(`[\-_]{2,}`)
	spaceRun       = regexp.MustCompile(` {2,}`)
	letterFoldings = strings.NewReplacer(
		"ß", "ss",
		"æ", "ae",
		"œ", "oe",
		"ø", "o",
		"ł", "l",
		"đ", "d",
		"ð", "d",
		"þ", "th",
		"ı", "i",
	)
)

// removeDiacritics strips combining marks after canonical decomposition.
func removeDiacritics(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		return normalized
	}
	return s
}

// asciiFold lower-cases s and maps extended Latin letters to their base
// ASCII letters. Letters without a decomposition go through letterFoldings.
func asciiFold(s string) string {
	s = strings.ToLower(s)
	s = removeDiacritics(s)
	return letterFoldings.Replace(s)
}

// CleanTitle returns the comparison form of a title: lower-case ASCII
// letters, digits and single spaces. It is idempotent.
//
//	CleanTitle("Carnivàle") == "carnivale"
func CleanTitle(title string) string {
	s := asciiFold(title)
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = nonCleanChars.ReplaceAllString(s, "")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ToURLSlug returns a URL-safe slug containing only [a-z0-9-_], with no
// leading, trailing or doubled separators.
func ToURLSlug(title string) string {
	s := asciiFold(title)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = separatorRun.ReplaceAllStringFunc(s, func(run string) string {
		return run[:1]
	})
	return strings.Trim(s, "-_")
}
