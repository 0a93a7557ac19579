package parser

import (
	"fmt"
	"strings"
)

// Language is a spoken language detected in a release name.
type Language int

const (
	Unknown Language = iota
	English
	French
	German
	Spanish
	Italian
	Danish
	Dutch
	Japanese
	Icelandic
	Chinese
	Russian
	Polish
	Vietnamese
	Swedish
	Norwegian
	Finnish
	Turkish
	Portuguese
	Flemish
	Greek
	Korean
	Hungarian
	Hebrew
	Lithuanian
	Czech
	Hindi
	Arabic
	Thai
	Bulgarian
	Ukrainian
	Romanian
	Persian
)

type languageEntry struct {
	lang    Language
	code2   string   // ISO 639-1
	display string   // Human-readable name
	words   []string // Whole-word tokens, names and unambiguous codes
}

// Two-letter codes are never matched: "it", "no" and "de" are ordinary words.
var languageTable = []languageEntry{
	{Unknown, "", "Unknown", nil},
	{English, "en", "English", []string{"english", "eng"}},
	{French, "fr", "French", []string{"french", "truefrench", "vff", "vfq", "vf2", "vfi", "fre", "fra"}},
	{German, "de", "German", []string{"german", "ger", "deutsch", "swissgerman"}},
	{Spanish, "es", "Spanish", []string{"spanish", "espanol", "castellano", "esp", "spa"}},
	{Italian, "it", "Italian", []string{"italian", "ita"}},
	{Danish, "da", "Danish", []string{"danish", "dan"}},
	{Dutch, "nl", "Dutch", []string{"dutch"}},
	{Japanese, "ja", "Japanese", []string{"japanese", "jpn", "jap"}},
	{Icelandic, "is", "Icelandic", []string{"icelandic"}},
	{Chinese, "zh", "Chinese", []string{"chinese", "mandarin", "cantonese"}},
	{Russian, "ru", "Russian", []string{"russian", "rus"}},
	{Polish, "pl", "Polish", []string{"polish"}},
	{Vietnamese, "vi", "Vietnamese", []string{"vietnamese"}},
	{Swedish, "sv", "Swedish", []string{"swedish", "swe"}},
	{Norwegian, "no", "Norwegian", []string{"norwegian"}},
	{Finnish, "fi", "Finnish", []string{"finnish"}},
	{Turkish, "tr", "Turkish", []string{"turkish"}},
	{Portuguese, "pt", "Portuguese", []string{"portuguese"}},
	{Flemish, "nl", "Flemish", []string{"flemish"}},
	{Greek, "el", "Greek", []string{"greek"}},
	{Korean, "ko", "Korean", []string{"korean", "kor"}},
	{Hungarian, "hu", "Hungarian", []string{"hungarian", "hun"}},
	{Hebrew, "he", "Hebrew", []string{"hebrew", "heb"}},
	{Lithuanian, "lt", "Lithuanian", []string{"lithuanian"}},
	{Czech, "cs", "Czech", []string{"czech"}},
	{Hindi, "hi", "Hindi", []string{"hindi", "hin"}},
	{Arabic, "ar", "Arabic", []string{"arabic"}},
	{Thai, "th", "Thai", []string{"thai"}},
	{Bulgarian, "bg", "Bulgarian", []string{"bulgarian"}},
	{Ukrainian, "uk", "Ukrainian", []string{"ukrainian", "ukr"}},
	{Romanian, "ro", "Romanian", []string{"romanian"}},
	{Persian, "fa", "Persian", []string{"persian", "farsi"}},
}

var (
	languageByWord map[string]Language
	languageByName map[string]Language
)

func init() {
	languageByWord = make(map[string]Language)
	languageByName = make(map[string]Language, len(languageTable))
	for i, e := range languageTable {
		if Language(i) != e.lang {
			panic(fmt.Sprintf("language table out of order at %d (%s)", i, e.display))
		}
		languageByName[strings.ToLower(e.display)] = e.lang
		for _, w := range e.words {
			if _, dup := languageByWord[w]; dup {
				panic(fmt.Sprintf("language word %q listed twice", w))
			}
			languageByWord[w] = e.lang
		}
	}
}

func (l Language) entry() languageEntry {
	if l < 0 || int(l) >= len(languageTable) {
		return languageTable[Unknown]
	}
	return languageTable[l]
}

func (l Language) String() string {
	return l.entry().display
}

// Code returns the ISO 639-1 code, or "" for Unknown.
func (l Language) Code() string {
	return l.entry().code2
}

// MarshalText renders the display name so languages serialise as strings.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts a display name or any word the detector knows.
func (l *Language) UnmarshalText(b []byte) error {
	lang, ok := LanguageFromString(string(b))
	if !ok {
		return fmt.Errorf("unknown language %q", string(b))
	}
	*l = lang
	return nil
}

// LanguageFromString looks up a display name or a detector word.
func LanguageFromString(s string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if lang, ok := languageByName[key]; ok {
		return lang, true
	}
	lang, ok := languageByWord[key]
	return lang, ok
}

// detectLanguages scans words outside the title and release group. A
// "multi" tag next to exactly one named language adds English.
func detectLanguages(words []word) []Language {
	var found []Language
	seen := make(map[Language]bool)
	multi := false

	for _, w := range words {
		if w.lower == "multi" {
			multi = true
			continue
		}
		if lang, ok := languageByWord[w.lower]; ok && !seen[lang] {
			seen[lang] = true
			found = append(found, lang)
		}
	}

	if multi && len(found) == 1 && found[0] != English {
		found = append(found, English)
	}
	if len(found) == 0 {
		return []Language{Unknown}
	}
	return found
}
