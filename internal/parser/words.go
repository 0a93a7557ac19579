package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// word is a run of letters and digits in the stage view, with byte offsets
// into the original input.
type word struct {
	text  string
	lower string
	start int
	end   int
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '’'
}

// tokenize splits a view into words. An apostrophe between a word rune and a
// letter stays inside the word (Director's, L'hypothèse).
func tokenize(view string) []word {
	var words []word
	start := -1

	flush := func(end int) {
		if start >= 0 {
			w := view[start:end]
			words = append(words, word{text: w, lower: strings.ToLower(w), start: start, end: end})
			start = -1
		}
	}

	for i, r := range view {
		switch {
		case isWordRune(r):
			if start < 0 {
				start = i
			}
		case isApostrophe(r) && start >= 0:
			next, _ := utf8.DecodeRuneInString(view[i+utf8.RuneLen(r):])
			if !unicode.IsLetter(next) {
				flush(i)
			}
		default:
			flush(i)
		}
	}
	flush(len(view))

	return words
}

// yearValue returns the year a word denotes when it is a standalone four
// digit token inside [minYear, maxYear].
func yearValue(w word, maxYear int) (int, bool) {
	if len(w.text) != 4 {
		return 0, false
	}
	for _, c := range w.text {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	y, err := strconv.Atoi(w.text)
	if err != nil || y < minYear || y > maxYear {
		return 0, false
	}
	return y, true
}

// bracketed reports whether the word is wrapped directly in () or [].
func bracketed(src string, w word) bool {
	if w.start == 0 || w.end >= len(src) {
		return false
	}
	open, closing := src[w.start-1], src[w.end]
	return (open == '(' || open == '[') && (closing == ')' || closing == ']')
}

// isMarker reports whether words[i] starts a quality, source or codec token.
func isMarker(words []word, i int) bool {
	w := words[i].lower
	if markerPattern.MatchString(w) {
		return true
	}
	if i+1 >= len(words) {
		return false
	}
	next := words[i+1].lower
	switch w {
	case "web":
		return next == "dl" || next == "rip"
	case "blu":
		return next == "ray"
	case "h":
		return next == "264" || next == "265"
	}
	return false
}

// isLanguageAnchor reports whether words[i] is a scene language tag that
// ends a title even when no year precedes it. "The German" and "Good German"
// are story titles, not tags.
func isLanguageAnchor(words []word, i int) bool {
	if !sceneAnchors[words[i].lower] {
		return false
	}
	if i > 0 {
		prev := words[i-1].lower
		if prev == "the" || prev == "good" {
			return false
		}
	}
	return true
}
