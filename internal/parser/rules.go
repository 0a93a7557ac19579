package parser

import (
	"regexp"
	"strconv"
	"strings"
)

const minYear = 1870

// rule is one entry of an ordered stage table. A stage evaluates its rules
// top-down and consumes every span a rule matches unless keep vetoes it.
type rule struct {
	name    string
	pattern *regexp.Regexp
	apply   func(info *ParsedTitleInfo, groups []string)
	keep    func(groups []string) bool
}

// Pre-compiled tables, shared read-only by every Parser.
var (
	fileRules    []rule
	cleanupRules []rule
	idRules      []rule
	noiseRules   []rule

	markerPattern  *regexp.Regexp
	ordinalPattern *regexp.Regexp
	yearOnly       *regexp.Regexp
	akaPattern     *regexp.Regexp
	imdbPattern    *regexp.Regexp
	digitsPattern  *regexp.Regexp

	sceneAnchors = map[string]bool{
		"german":     true,
		"french":     true,
		"truefrench": true,
	}
)

func init() {
	// Cleanup runs first: the file extension has to go before the trailing
	// separator trim, and the watermark is only recognised at the very start.
	fileRules = []rule{
		{
			name:    "extension",
			pattern: regexp.MustCompile(`(?i)\.(?:mkv|mp4|avi|m4v|mov|wmv|flv|webm|mpg|mpeg|m2ts|ts|vob|ogm|divx|iso|strm)$`),
		},
	}

	cleanupRules = []rule{
		{
			name:    "leading-separators",
			pattern: regexp.MustCompile(`^[\s\-_]+`),
		},
		{
			name:    "trailing-separators",
			pattern: regexp.MustCompile(`[\s\-_]+$`),
		},
		{
			name:    "website-prefix",
			pattern: regexp.MustCompile(`(?i)^\s*(?:\[\s*)?(?:www\.)?[-a-z0-9]{1,256}\.(?:[a-z]{2,6}\.[a-z]{2,6}|xn--[a-z0-9-]{4,}|[a-z]{2,})\b(?:\s*\]|[ -]{2,})[ -]*`),
		},
	}

	// Identifier tags run before the noise table so bracketed ids are
	// captured rather than discarded as annotation blocks.
	idRules = []rule{
		{
			name:    "imdb-bracket",
			pattern: regexp.MustCompile(`\[(tt\d{7,8})\]`),
			apply:   setImdb,
		},
		{
			name:    "imdb-tag",
			pattern: regexp.MustCompile(`[\[{](?i:imdb(?:id)?)-(tt\d{7,8})[\]}]`),
			apply:   setImdb,
		},
		{
			name:    "tmdb-tag",
			pattern: regexp.MustCompile(`(?i)[\[{]tmdb(?:id)?-(\d+)[\]}]`),
			apply:   setTmdb,
		},
		{
			name:    "edition-tag",
			pattern: regexp.MustCompile(`(?i)\{edition-([^{}]+)\}`),
			apply: func(info *ParsedTitleInfo, groups []string) {
				if info.Edition == "" {
					info.Edition = strings.TrimSpace(groups[1])
				}
			},
		},
	}

	keepYear := func(groups []string) bool {
		return yearOnly.MatchString(groups[1])
	}
	noiseRules = []rule{
		{name: "square-block", pattern: regexp.MustCompile(`\[([^\[\]]*)\]`), keep: keepYear},
		{name: "curly-block", pattern: regexp.MustCompile(`\{([^{}]*)\}`), keep: keepYear},
		{name: "angle-block", pattern: regexp.MustCompile(`<([^<>]*)>`), keep: keepYear},
		// Parentheses usually carry title content ("(500) Days of Summer")
		// or the year, so only comma lists (genres, cast) are dropped.
		{name: "comma-list", pattern: regexp.MustCompile(`\(([^()]*,[^()]*)\)`)},
	}

	markerPattern = regexp.MustCompile(`^(?:\d{3,4}[pi]|[48]k|uhd|hdr|hdr10|sdr|bluray|bdrip|brrip|bdremux|remux|webdl|webrip|hdtv|pdtv|sdtv|hdrip|dvdrip|dvdr|dvd5|dvd9|dvdscr|hdcam|hdts|telesync|telecine|x26[456]|h26[456]|hevc|xvid|divx|avc|av1|dts|ac3|ac3d|aac|aac\d|truehd|atmos|flac|ddp|ddp\d|eac3|dd\d|\d{1,2}bit)$`)
	ordinalPattern = regexp.MustCompile(`^\d{1,3}(?:st|nd|rd|th)$`)
	yearOnly = regexp.MustCompile(`^\s*\d{4}\s*$`)
	akaPattern = regexp.MustCompile(`(?i) +\(? *aka +`)
	imdbPattern = regexp.MustCompile(`^tt\d{7,8}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
}

func setImdb(info *ParsedTitleInfo, groups []string) {
	if info.ImdbID == "" {
		info.ImdbID = groups[1]
	}
}

func setTmdb(info *ParsedTitleInfo, groups []string) {
	if info.TmdbID != nil {
		return
	}
	id, err := strconv.Atoi(groups[1])
	if err != nil {
		return
	}
	info.TmdbID = &id
}

// run applies a rule to the current view. When all is false only the first
// match is considered.
func (r rule) run(t text, info *ParsedTitleInfo, all bool) text {
	n := 1
	if all {
		n = -1
	}

	view := t.view()
	for _, loc := range r.pattern.FindAllStringSubmatchIndex(view, n) {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = view[loc[2*g]:loc[2*g+1]]
			}
		}
		if r.keep != nil && r.keep(groups) {
			continue
		}
		if r.apply != nil {
			r.apply(info, groups)
		}
		t = t.consume(loc[0], loc[1])
	}
	return t
}

// runStage evaluates a rule table in order.
func runStage(t text, rules []rule, info *ParsedTitleInfo, all bool) text {
	for _, r := range rules {
		t = r.run(t, info, all)
	}
	return t
}

// stripNoise removes annotation blocks until nothing more matches, so that
// nested blocks are peeled from the inside out.
func stripNoise(t text) text {
	for {
		before := len(t.consumed)
		t = runStage(t, noiseRules, nil, true)
		if len(t.consumed) == before {
			return t
		}
	}
}
