// Package match ranks catalog titles against a free-text query or release
// name. Both sides go through the same parser and comparison key, so a scene
// name and a typed search meet on equal terms.
package match

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"

	"github.com/Nomadcxx/jellyparse/internal/parser"
)

// Word-level rewrites applied after CleanTitle so that common spelling
// variants compare equal.
var (
	romanNumerals = map[string]string{
		"ii":   "2",
		"iii":  "3",
		"iv":   "4",
		"vi":   "6",
		"vii":  "7",
		"viii": "8",
		"ix":   "9",
	}

	substitutions = map[string]string{
		"versus": "vs",
		"part":   "pt",
		"and":    "&",
	}
)

// Candidate is a title known to a catalog. Year 0 means unknown.
type Candidate struct {
	Title string `json:"title" yaml:"title"`
	Year  int    `json:"year,omitempty" yaml:"year,omitempty"`
}

// Result is a candidate with its similarity to the query, 0..1.
type Result struct {
	Candidate
	Similarity float32 `json:"similarity" yaml:"similarity"`
}

// Key returns the comparison key for a title.
func Key(title string) string {
	words := strings.Fields(parser.CleanTitle(strings.ReplaceAll(title, "&", " and ")))
	for i, w := range words {
		if n, ok := romanNumerals[w]; ok {
			words[i] = n
		} else if s, ok := substitutions[w]; ok {
			words[i] = s
		}
	}
	return strings.Join(words, " ")
}

// Similarity is the Jaro-Winkler similarity of the keys of a and b.
func Similarity(a, b string) float32 {
	ka, kb := Key(a), Key(b)
	if ka == kb {
		return 1
	}
	if ka == "" || kb == "" {
		return 0
	}
	return edlib.JaroWinklerSimilarity(ka, kb)
}

// Rank parses query with p and scores every candidate against each title
// variant, keeping the best variant score. A nil p uses the default parser.
// Candidates whose year is more than one off the parsed year are skipped.
// Results below minSimilarity are dropped; the rest are sorted best first.
func Rank(p *parser.Parser, query string, candidates []Candidate, minSimilarity float32) []Result {
	var info parser.ParsedTitleInfo
	if p == nil {
		info = parser.ParseMovieTitle(query, false)
	} else {
		info = p.Parse(query, false)
	}
	year, hasYear := info.YearValue()

	var results []Result
	for _, c := range candidates {
		if hasYear && c.Year != 0 && abs(c.Year-year) > 1 {
			continue
		}

		var best float32
		for _, variant := range info.TitleVariants {
			if s := Similarity(variant, c.Title); s > best {
				best = s
			}
		}

		if best > 0.7 {
			log.Debug().
				Str("query", info.PrimaryTitle()).
				Str("candidate", c.Title).
				Float32("similarity", best).
				Float32("minSimilarity", minSimilarity).
				Msg("match candidate evaluation")
		}

		if best >= minSimilarity {
			results = append(results, Result{Candidate: c, Similarity: best})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
