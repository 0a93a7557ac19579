package parser

import "strings"

// Edition vocabulary. Core words stand on their own; qualifiers only count
// when a suffix follows ("Final Cut" is an edition, "The Final Chapter" is not).
var (
	editionCore = map[string]bool{
		"extended":      true,
		"recut":         true,
		"theatrical":    true,
		"director's":    true,
		"directors":     true,
		"collector's":   true,
		"collectors":    true,
		"ultimate":      true,
		"unrated":       true,
		"uncut":         true,
		"uncensored":    true,
		"remastered":    true,
		"imax":          true,
		"despecialized": true,
		"restored":      true,
		"redux":         true,
	}

	editionQualifiers = map[string]bool{
		"special":   true,
		"final":     true,
		"assembly":  true,
		"imperial":  true,
		"diamond":   true,
		"signature": true,
		"hunter":    true,
		"rekall":    true,
		"rogue":     true,
	}

	editionSuffixes = map[string]bool{
		"cut":     true,
		"edition": true,
		"version": true,
	}
)

// editionRun is a maximal sequence of adjacent edition phrases, as word
// indices [start, end).
type editionRun struct {
	start int
	end   int
}

func (r editionRun) text(words []word) string {
	parts := make([]string, 0, r.end-r.start)
	for _, w := range words[r.start:r.end] {
		parts = append(parts, w.text)
	}
	return strings.Join(parts, " ")
}

// editionPhraseAt returns how many words starting at i form one edition
// phrase, or 0.
func editionPhraseAt(words []word, i, limit int) int {
	next := func(j int) string {
		if j < limit {
			return words[j].lower
		}
		return ""
	}

	w := words[i].lower
	j := i
	switch {
	case editionCore[w]:
		j = i + 1
	case editionQualifiers[w]:
		if editionSuffixes[next(i+1)] {
			return 2
		}
		return 0
	case w == "open" && next(i+1) == "matte":
		return 2
	case w == "fan" && next(i+1) == "edit":
		return 2
	case ordinalPattern.MatchString(w) && next(i+1) == "anniversary":
		j = i + 2
	default:
		return 0
	}

	if editionSuffixes[next(j)] {
		j++
	}
	return j - i
}

// findEditionRuns scans words[from:limit) left to right and merges adjacent
// phrases.
func findEditionRuns(words []word, from, limit int) []editionRun {
	var runs []editionRun
	for i := from; i < limit; {
		n := editionPhraseAt(words, i, limit)
		if n == 0 {
			i++
			continue
		}
		if len(runs) > 0 && runs[len(runs)-1].end == i {
			runs[len(runs)-1].end = i + n
		} else {
			runs = append(runs, editionRun{start: i, end: i + n})
		}
		i += n
	}
	return runs
}

// trivialTitle reports whether the words left after excising an edition
// would no longer make a title.
func trivialTitle(words []word) bool {
	if len(words) == 0 {
		return true
	}
	if len(words) == 1 {
		switch words[0].lower {
		case "the", "a", "an":
			return true
		}
	}
	return false
}
