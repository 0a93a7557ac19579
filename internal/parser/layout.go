package parser

// scan is the word-level picture of a prepared input that the layout rules
// work from.
type scan struct {
	t     text
	view  string
	isDir bool

	words []word
	// limit excludes a trailing release group from every search.
	limit int
	group int
	years []candidate
}

type candidate struct {
	index int
	value int
}

// layout is the outcome of title extraction at word level.
type layout struct {
	rule string
	// from is the first word that can belong to the title.
	from int
	// cut is the word the title stops at; len(words) when nothing cut it.
	cut  int
	year candidate
}

func (l layout) hasYear() bool {
	return l.year.index >= 0
}

func (l layout) cutOccurred(words []word) bool {
	return l.cut < len(words)
}

var noYear = candidate{index: -1}

// Title layouts, first match wins. The order matters:
//
//  1. A scene language tag with no year before it closes the title. German
//     and French trackers put the year anywhere after it.
//  2. Otherwise the last plausible year closes the title, so a leading
//     number ("1941", "Die Klasse von 1999") stays title content.
//  3. A year that opens the name is a folder prefix, "(1995) Title", but
//     only when bracketed or when the input is a folder.
//  4. With no usable year, the first quality marker or language tag.
//  5. The whole string.
var layoutRules = []struct {
	name    string
	resolve func(s *scan) (layout, bool)
}{
	{name: "scene-language", resolve: sceneLanguageLayout},
	{name: "year", resolve: yearLayout},
	{name: "leading-year", resolve: leadingYearLayout},
	{name: "marker", resolve: markerLayout},
	{name: "whole", resolve: wholeLayout},
}

func newScan(t text, isDir bool, maxYear int) *scan {
	view := t.view()
	words := tokenize(view)
	s := &scan{t: t, view: view, isDir: isDir, words: words, group: -1, limit: len(words)}

	if g := releaseGroup(view, words); g >= 0 {
		s.group = g
		s.limit = g
	}

	for i := 0; i < s.limit; i++ {
		if y, ok := yearValue(words[i], maxYear); ok {
			s.years = append(s.years, candidate{index: i, value: y})
		}
	}
	return s
}

// releaseGroup returns the index of a trailing "-GROUP" word, or -1.
func releaseGroup(view string, words []word) int {
	n := len(words)
	if n < 2 {
		return -1
	}
	w := words[n-1]
	if w.start == 0 || view[w.start-1] != '-' {
		return -1
	}
	// "WEB-DL" ends in a marker pair, not a group.
	if isMarker(words, n-1) || (isMarker(words, n-2) && !markerPattern.MatchString(words[n-2].lower)) {
		return -1
	}
	return n - 1
}

func (s *scan) resolve() layout {
	for _, r := range layoutRules {
		if l, ok := r.resolve(s); ok {
			l.rule = r.name
			return l
		}
	}
	return layout{cut: len(s.words), year: noYear}
}

func (s *scan) lastYear() (candidate, bool) {
	if len(s.years) == 0 {
		return noYear, false
	}
	return s.years[len(s.years)-1], true
}

// firstMarker returns the first quality marker in [from, limit), or -1.
func (s *scan) firstMarker(from int) int {
	for i := from; i < s.limit; i++ {
		if isMarker(s.words, i) {
			return i
		}
	}
	return -1
}

// firstStop is firstMarker extended with scene language tags.
func (s *scan) firstStop(from int) int {
	for i := from; i < s.limit; i++ {
		if isMarker(s.words, i) || isLanguageAnchor(s.words, i) {
			return i
		}
	}
	return -1
}

func (s *scan) clampToMarker(cut, from int) int {
	if m := s.firstMarker(from); m >= 0 && m < cut {
		return m
	}
	return cut
}

func sceneLanguageLayout(s *scan) (layout, bool) {
	for i := 0; i < s.limit; i++ {
		if s.hasYearAt(i) {
			return layout{}, false
		}
		if i == 0 || !isLanguageAnchor(s.words, i) {
			continue
		}

		l := layout{from: 0, cut: s.clampToMarker(i, 1), year: noYear}
		if y, ok := s.lastYear(); ok && y.index > i {
			l.year = y
		}
		return l, true
	}
	return layout{}, false
}

func yearLayout(s *scan) (layout, bool) {
	y, ok := s.lastYear()
	if !ok || y.index == 0 {
		return layout{}, false
	}
	return layout{from: 0, cut: s.clampToMarker(y.index, 1), year: y}, true
}

func leadingYearLayout(s *scan) (layout, bool) {
	y, ok := s.lastYear()
	if !ok || y.index != 0 || s.limit < 2 {
		return layout{}, false
	}
	if !s.isDir && !bracketed(s.view, s.words[0]) {
		return layout{}, false
	}

	cut := len(s.words)
	if stop := s.firstStop(1); stop >= 0 {
		cut = stop
	}
	if cut <= 1 {
		return layout{}, false
	}
	return layout{from: 1, cut: cut, year: y}, true
}

func markerLayout(s *scan) (layout, bool) {
	stop := s.firstStop(1)
	if stop < 0 {
		return layout{}, false
	}
	return layout{from: 0, cut: stop, year: noYear}, true
}

func wholeLayout(s *scan) (layout, bool) {
	return layout{from: 0, cut: len(s.words), year: noYear}, true
}

func (s *scan) hasYearAt(i int) bool {
	for _, y := range s.years {
		if y.index == i {
			return true
		}
	}
	return false
}

// titleBounds returns the byte range of the title given the word range
// [from, end).
func (s *scan) titleBounds(from, end int) (int, int) {
	start := 0
	if from > 0 {
		start = s.words[from-1].end
	}
	stop := len(s.t.src)
	if end < len(s.words) {
		stop = s.words[end].start
	}
	return start, stop
}
