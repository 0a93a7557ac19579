package parser

import "strings"

// splitAka splits a combined title on its first "aka" marker. It returns
// either [combined] or [combined, left, right]; a marker with nothing on one
// side is not a split, so a film called "AKA" stays whole.
func splitAka(combined string) []string {
	loc := akaPattern.FindStringIndex(combined)
	if loc == nil {
		return []string{combined}
	}

	left := combined[:loc[0]]
	right := combined[loc[1]:]
	if strings.Contains(combined[loc[0]:loc[1]], "(") {
		right = dropClosing(right)
	}

	left, right = trimVariant(left), trimVariant(right)
	if left == "" || right == "" {
		return []string{combined}
	}
	return []string{combined, left, right}
}

// dropClosing removes the first ")" not matched inside s, the one that
// closes an "(aka ...)" marker.
func dropClosing(s string) string {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return s[:i] + s[i+1:]
			}
			depth--
		}
	}
	return s
}

// trimVariant strips separators and unbalanced brackets from both ends.
func trimVariant(s string) string {
	for {
		prev := s
		s = strings.Trim(s, " \t,;:-_/|~&+")
		switch {
		case strings.HasPrefix(s, ")"), strings.HasPrefix(s, "]"):
			s = s[1:]
		case strings.HasSuffix(s, "("), strings.HasSuffix(s, "["):
			s = s[:len(s)-1]
		case strings.HasPrefix(s, "(") && strings.Count(s, "(") > strings.Count(s, ")"):
			s = s[1:]
		case strings.HasSuffix(s, ")") && strings.Count(s, ")") > strings.Count(s, "("):
			s = s[:len(s)-1]
		case strings.HasPrefix(s, "[") && strings.Count(s, "[") > strings.Count(s, "]"):
			s = s[1:]
		case strings.HasSuffix(s, "]") && strings.Count(s, "]") > strings.Count(s, "["):
			s = s[:len(s)-1]
		}
		if s == prev {
			return s
		}
	}
}
