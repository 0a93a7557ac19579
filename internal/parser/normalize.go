package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizedText is a cleaned input in two forms: Display keeps casing and
// meaningful punctuation, Compare is CleanTitle(Display).
type NormalizedText struct {
	Display string `json:"display" yaml:"display"`
	Compare string `json:"compare" yaml:"compare"`
}

// Normalize strips extensions, watermark prefixes, identifier tags and
// annotation blocks from raw, then applies the separator rules used for
// titles.
func Normalize(raw string) NormalizedText {
	t := prepare(raw, false, nil)
	display := separate(trimTitle(t.excise(0, len(t.src)), false))
	return NormalizedText{Display: display, Compare: CleanTitle(display)}
}

// prepare runs the stages that do not depend on word layout. Folder names
// keep anything that looks like an extension. info may be nil when
// identifiers are not wanted.
func prepare(raw string, isDir bool, info *ParsedTitleInfo) text {
	if info == nil {
		info = &ParsedTitleInfo{}
	}
	t := newText(raw)
	if !isDir {
		t = runStage(t, fileRules, info, false)
	}
	t = runStage(t, cleanupRules, info, false)
	t = runStage(t, idRules, info, false)
	return stripNoise(t)
}

// trimTitle drops separators left at the edges of a cut. Closing brackets
// and "!" are title content; an opening bracket is not. When the title was
// cut, a dangling connector ("and", "&") goes too.
func trimTitle(s string, cut bool) string {
	s = strings.TrimLeft(s, " ._-)]")
	s = trimRightNoise(s)
	if !cut {
		return s
	}

	i := strings.LastIndexAny(s, " ._")
	if i < 0 {
		return s
	}
	if last := s[i+1:]; strings.EqualFold(last, "and") || last == "&" {
		s = trimRightNoise(s[:i])
	}
	return s
}

func trimRightNoise(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return !isWordRune(r) && r != ')' && r != ']' && r != '!'
	})
}

// separate turns scene separators into spaces. Underscores always become
// spaces and colons are dropped. Dots are resolved per whitespace-delimited
// field: in a dotted field a dot stays only after single letters that form
// an acronym (U.N.C.L.E., L.A.) and after "Dr", every other dot is a word
// break. A field with no inner dot keeps its trailing dot ("Mr.", "E.T.").
// Fields are joined by single spaces.
func separate(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, ":", "")

	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = separateField(f); f != "" {
			out = append(out, f)
		}
	}
	return strings.TrimSpace(strings.Join(out, " "))
}

func separateField(f string) string {
	var parts []string
	for _, p := range strings.Split(f, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return f
	}

	var b strings.Builder
	prevAcronym := false
	for i, p := range parts {
		acronym := singleLetter(p) && (prevAcronym || (i+1 < len(parts) && singleLetter(parts[i+1])))
		if i > 0 && !(acronym && prevAcronym) {
			b.WriteByte(' ')
		}
		b.WriteString(p)
		if acronym || strings.EqualFold(p, "dr") {
			b.WriteByte('.')
		}
		prevAcronym = acronym
	}

	// A scene field ending in a plain word keeps its last dot as a break.
	last := parts[len(parts)-1]
	if strings.HasSuffix(f, ".") && !prevAcronym && !strings.EqualFold(last, "dr") {
		b.WriteByte(' ')
	}
	return b.String()
}

func singleLetter(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && unicode.IsLetter(r)
}
