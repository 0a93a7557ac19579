// Package parser extracts a structured description of a film from a release
// name, folder name or free-text query: title variants, year, edition,
// languages and embedded catalog identifiers.
//
// Every stage is pure. Pattern tables are compiled once at init and shared
// read-only, so a Parser may be used from any number of goroutines.
package parser

import (
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when a caller passes no input at all.
var ErrInvalidArgument = errors.New("invalid argument: title is required")

// ParsedTitleInfo is the result of parsing one input string.
type ParsedTitleInfo struct {
	OriginalTitle string `json:"originalTitle" yaml:"original_title"`
	CombinedTitle string `json:"combinedTitle" yaml:"combined_title"`
	// TitleVariants is [combined] or [combined, primary, secondary].
	TitleVariants []string   `json:"titleVariants" yaml:"title_variants"`
	Year          *int       `json:"year,omitempty" yaml:"year,omitempty"`
	Edition       string     `json:"edition" yaml:"edition"`
	ImdbID        string     `json:"imdbId,omitempty" yaml:"imdb_id,omitempty"`
	TmdbID        *int       `json:"tmdbId,omitempty" yaml:"tmdb_id,omitempty"`
	Languages     []Language `json:"languages" yaml:"languages"`
	ReleaseGroup  string     `json:"releaseGroup,omitempty" yaml:"release_group,omitempty"`
}

// PrimaryTitle is the single title callers should display or search for.
func (p ParsedTitleInfo) PrimaryTitle() string {
	if len(p.TitleVariants) == 3 {
		return p.TitleVariants[1]
	}
	if len(p.TitleVariants) == 0 {
		return p.CombinedTitle
	}
	return p.TitleVariants[0]
}

// YearValue returns the release year and whether one was found.
func (p ParsedTitleInfo) YearValue() (int, bool) {
	if p.Year == nil {
		return 0, false
	}
	return *p.Year, true
}

// TmdbValue returns the TMDb id and whether one was found.
func (p ParsedTitleInfo) TmdbValue() (int, bool) {
	if p.TmdbID == nil {
		return 0, false
	}
	return *p.TmdbID, true
}

// Parser holds the settings that vary between callers. The zero value is
// not usable; call New.
type Parser struct {
	clock       clockwork.Clock
	currentYear int
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the clock the plausible year range is derived from.
func WithClock(c clockwork.Clock) Option {
	return func(p *Parser) {
		p.clock = c
	}
}

// WithCurrentYear pins the current year, overriding the clock. Values <= 0
// are ignored.
func WithCurrentYear(year int) Option {
	return func(p *Parser) {
		if year > 0 {
			p.currentYear = year
		}
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// maxYear is the latest year accepted as a release year.
func (p *Parser) maxYear() int {
	if p.currentYear > 0 {
		return p.currentYear + 2
	}
	return p.clock.Now().Year() + 2
}

// Parse extracts title information from a release or folder name. It never
// fails: anything not found is left at its empty value, and Languages is
// [Unknown] when no language was named.
func (p *Parser) Parse(title string, isDir bool) ParsedTitleInfo {
	info, _ := p.parse(title, isDir)
	return info
}

// ParseInput is Parse for callers holding an optional value, such as a
// decoded JSON null. A nil title is rejected before any stage runs.
func (p *Parser) ParseInput(title *string, isDir bool) (ParsedTitleInfo, error) {
	if title == nil {
		return ParsedTitleInfo{}, ErrInvalidArgument
	}
	return p.Parse(*title, isDir), nil
}

// Explain parses title and also reports how the result was reached.
func (p *Parser) Explain(title string, isDir bool) (ParsedTitleInfo, Trace) {
	return p.parse(title, isDir)
}

func (p *Parser) parse(title string, isDir bool) (ParsedTitleInfo, Trace) {
	info := ParsedTitleInfo{OriginalTitle: title}

	t := prepare(title, isDir, &info)
	s := newScan(t, isDir, p.maxYear())
	l := s.resolve()

	end := l.cut
	if l.rule != "whole" {
		var edition string
		edition, end = s.resolveEdition(l)
		if info.Edition == "" {
			info.Edition = edition
		}
	}

	start, stop := s.titleBounds(l.from, end)
	combined := separate(trimTitle(t.excise(start, stop), l.cutOccurred(s.words)))
	if combined == "" {
		combined = separate(trimTitle(t.excise(0, len(t.src)), false))
	}

	info.CombinedTitle = combined
	info.TitleVariants = splitAka(combined)
	if l.hasYear() {
		year := l.year.value
		info.Year = &year
	}
	info.Languages = detectLanguages(s.outside(l.cut))
	if s.group >= 0 && s.group >= l.cut {
		info.ReleaseGroup = s.words[s.group].text
	}

	return info, newTrace(t, l, s)
}

// outside returns the words from index from on, minus the release group.
func (s *scan) outside(from int) []word {
	var out []word
	for i := from; i < len(s.words); i++ {
		if i != s.group {
			out = append(out, s.words[i])
		}
	}
	return out
}

// resolveEdition picks the edition for a layout and returns it with the
// word index the title now ends at. Preference order: a run that ends right
// at the cut (and leaves a real title behind), a run right after the year,
// then the first run after the title.
func (s *scan) resolveEdition(l layout) (string, int) {
	runs := findEditionRuns(s.words, l.from, s.limit)

	for _, r := range runs {
		if r.end == l.cut && r.start > l.from && !trivialTitle(s.words[l.from:r.start]) {
			return r.text(s.words), r.start
		}
	}
	if l.hasYear() {
		for _, r := range runs {
			if r.start == l.year.index+1 {
				return r.text(s.words), l.cut
			}
		}
	}
	for _, r := range runs {
		if r.start >= l.cut {
			return r.text(s.words), l.cut
		}
	}
	return "", l.cut
}

var defaultParser = New()

// ParseMovieTitle parses with a process-wide Parser using the real clock.
func ParseMovieTitle(title string, isDir bool) ParsedTitleInfo {
	return defaultParser.Parse(title, isDir)
}
