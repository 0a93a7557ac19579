package parser

import (
	"fmt"
	"strconv"
)

// NormalizeImdbID converts user or catalog input into the canonical
// tt-prefixed form.
//
//	"123"        -> "tt0000123"
//	"1234567"    -> "tt1234567"
//	"12345678"   -> "tt12345678"
//	"tt1234567"  -> "tt1234567"
//	"asfd"       -> "", false
func NormalizeImdbID(input string) (string, bool) {
	switch {
	case imdbPattern.MatchString(input):
		return input, true
	case digitsPattern.MatchString(input) && len(input) <= 7:
		n, err := strconv.Atoi(input)
		if err != nil {
			return "", false
		}
		return fmt.Sprintf("tt%07d", n), true
	case digitsPattern.MatchString(input) && len(input) == 8:
		return "tt" + input, true
	}
	return "", false
}
