package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextConsumeIsImmutable(t *testing.T) {
	base := newText("Movie [junk] 2010")
	next := base.consume(6, 12)

	assert.Empty(t, base.consumed)
	assert.Equal(t, "Movie [junk] 2010", base.view())
	assert.Equal(t, "Movie        2010", next.view())
	assert.Equal(t, "Movie  2010", next.excise(0, len(next.src)))
}

func TestTextExciseOverlappingSpans(t *testing.T) {
	tx := newText("abcdefghij").
		consume(2, 5).
		consume(4, 7).
		consume(0, 1)

	assert.Equal(t, "bhij", tx.excise(0, 10))
	assert.Equal(t, "h", tx.excise(3, 8))
	assert.Equal(t, " b     hij", tx.view())
}

func TestTextConsumeIgnoresCoveredAndEmpty(t *testing.T) {
	tx := newText("abcdef").consume(1, 4)

	assert.Len(t, tx.consume(2, 3).consumed, 1)
	assert.Len(t, tx.consume(3, 3).consumed, 1)
	assert.Len(t, tx.consume(5, 2).consumed, 1)
	assert.Len(t, tx.consume(-4, 99).consumed, 2)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"The.Man.from.U.N.C.L.E.2015", []string{"The", "Man", "from", "U", "N", "C", "L", "E", "2015"}},
		{"Director's Cut", []string{"Director's", "Cut"}},
		{"Nuke 'em High", []string{"Nuke", "em", "High"}},
		{"L'hypothèse.du.tableau.volé", []string{"L'hypothèse", "du", "tableau", "volé"}},
		{"Movies'.2010", []string{"Movies", "2010"}},
		{"WEB-DL.DD5.1", []string{"WEB", "DL", "DD5", "1"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for _, w := range tokenize(tt.input) {
				got = append(got, w.text)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestIsMarker(t *testing.T) {
	words := tokenize("1080p WEB-DL Blu-ray H.264 x265 DD5 Web Dvd Proper 10bit")

	marked := map[string]bool{}
	for i := range words {
		if isMarker(words, i) {
			marked[words[i].text] = true
		}
	}

	for _, w := range []string{"1080p", "WEB", "Blu", "H", "x265", "DD5", "10bit"} {
		assert.True(t, marked[w], "%s should be a marker", w)
	}
	for _, w := range []string{"Web", "Dvd", "Proper", "DL", "ray", "264"} {
		assert.False(t, marked[w], "%s should not be a marker", w)
	}
}
