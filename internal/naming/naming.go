// Package naming builds library folder and file names from parse results,
// in the "Title (Year) {edition-...} [imdbid-...]" layout Jellyfin and the
// TRaSH guides use.
package naming

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Nomadcxx/jellyparse/internal/parser"
	"github.com/Nomadcxx/jellyparse/internal/quality"
)

var (
	// Abbreviations keep their casing and dots: R.I.P.D., U.S., L.A.
	abbrevRegex = regexp.MustCompile(`^\(?(?:[A-Za-z]\.){2,}\)?$`)
	// Uppercase acronyms: 8MM, RIPD, USA.
	upperTokenRegex = regexp.MustCompile(`^\(?\d*[A-Z]{2,}\)?[!?]?$`)
	ordinalRegex    = regexp.MustCompile(`(?i)^(\d+)(st|nd|rd|th)$`)
	unsafeChars     = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	spaces          = regexp.MustCompile(`\s{2,}`)
)

// Options selects the optional parts of a name.
type Options struct {
	TitleCase bool
	Edition   bool
	ImdbID    bool
	TmdbID    bool
}

// DefaultOptions includes everything that is known.
func DefaultOptions() Options {
	return Options{TitleCase: true, Edition: true, ImdbID: true, TmdbID: true}
}

// FolderName returns the library folder name for a parsed title.
//
//	"The.Man.from.U.N.C.L.E.2015.1080p.BluRay.x264-SPARKS" -> "The Man From U.N.C.L.E. (2015)"
func FolderName(info parser.ParsedTitleInfo, opts Options) string {
	title := info.PrimaryTitle()
	if opts.TitleCase {
		title = TitleCase(title)
	}

	parts := []string{title}
	if year, ok := info.YearValue(); ok {
		parts = append(parts, "("+strconv.Itoa(year)+")")
	}
	if opts.Edition && info.Edition != "" {
		parts = append(parts, "{edition-"+TitleCase(info.Edition)+"}")
	}
	if opts.ImdbID && info.ImdbID != "" {
		parts = append(parts, "[imdbid-"+info.ImdbID+"]")
	}
	if tmdb, ok := info.TmdbValue(); opts.TmdbID && ok {
		parts = append(parts, "[tmdbid-"+strconv.Itoa(tmdb)+"]")
	}

	return sanitize(strings.Join(parts, " "))
}

// FileName returns a media file name: the folder name, then the quality and
// language tags in brackets, then ext.
func FileName(info parser.ParsedTitleInfo, q quality.Info, ext string, opts Options) string {
	name := FolderName(info, opts)
	if s := q.Summary(); s != "" {
		name += " [" + s + "]"
	}
	if tag := LanguageTag(info.Languages); tag != "" {
		name += " [" + tag + "]"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return sanitize(name) + ext
}

// LanguageTag joins ISO 639-1 codes, e.g. "DE+EN". Unknown contributes
// nothing.
func LanguageTag(langs []parser.Language) string {
	var codes []string
	for _, l := range langs {
		if c := l.Code(); c != "" {
			codes = append(codes, strings.ToUpper(c))
		}
	}
	return strings.Join(codes, "+")
}

// TitleCase capitalises each word while keeping abbreviations, uppercase
// acronyms and ordinal suffixes as they are.
func TitleCase(s string) string {
	caser := cases.Title(language.English, cases.NoLower)
	words := strings.Fields(s)
	for i, w := range words {
		switch {
		case abbrevRegex.MatchString(w), upperTokenRegex.MatchString(w):
		case ordinalRegex.MatchString(w):
			words[i] = strings.ToLower(w)
		default:
			words[i] = caser.String(strings.ToLower(w))
		}
	}
	return strings.Join(words, " ")
}

func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimRight(strings.TrimSpace(s), ".")
}
