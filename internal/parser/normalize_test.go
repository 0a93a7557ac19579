package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input   string
		display string
		compare string
	}{
		{"The.Man.from.U.N.C.L.E", "The Man from U.N.C.L.E.", "the man from uncle"},
		{"www.Torrenting.com - Revenge", "Revenge", "revenge"},
		{"[ www.site.org ] Carnivàle_Season", "Carnivàle Season", "carnivale season"},
		{"Movie [tt1234567] {ACTORS} <Genre, Genre>", "Movie", "movie"},
		{"Genres (Action, Horror) Movie", "Genres Movie", "genres movie"},
		{"Thor: The Dark World.mkv", "Thor The Dark World", "thor the dark world"},
		{"Die.fantastische.Reise.des.Dr.Dolittle", "Die fantastische Reise des Dr. Dolittle", "die fantastische reise des dr dolittle"},
		{"(500).Days.Of.Summer", "(500) Days Of Summer", "500 days of summer"},
		{"Movie [2010]", "Movie [2010]", "movie 2010"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Normalize(tt.input)
			assert.Equal(t, tt.display, got.Display)
			assert.Equal(t, tt.compare, got.Compare)
		})
	}
}

func TestSeparate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"V.H.S.2", "V.H.S. 2"},
		{"R.I.P.D", "R.I.P.D."},
		{"A.I.Artificial.Intelligence", "A.I. Artificial Intelligence"},
		{"A.Movie.Name", "A Movie Name"},
		{"G.I.Joe.Retaliation", "G.I. Joe Retaliation"},
		{"World.War.Z.2", "World War Z 2"},
		{"Some_Movie_Name", "Some Movie Name"},
		{"Movie..Name", "Movie Name"},
		{"The Man from U.N.C.L.E", "The Man from U.N.C.L.E."},
		{"To Live and Die in L.A", "To Live and Die in L.A."},
		{"E.T. the Extra-Terrestrial", "E.T. the Extra-Terrestrial"},
		{"Mr. Smith Goes to Washington", "Mr. Smith Goes to Washington"},
		{"Nochnoy.prodavet. AKA.Graveyard.Shift", "Nochnoy prodavet  AKA Graveyard Shift"},
		{"Spaced   out", "Spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, separate(tt.input))
		})
	}
}

func TestTrimTitle(t *testing.T) {
	tests := []struct {
		input    string
		cut      bool
		expected string
	}{
		{"Movie.(", true, "Movie"},
		{") Ghost in the Shell", false, "Ghost in the Shell"},
		{"We Are the Best!.", true, "We Are the Best!"},
		{"Fire (aka Water).", true, "Fire (aka Water)"},
		{"Fast.and.", true, "Fast"},
		{"Fast & ", true, "Fast"},
		{"Fast and", false, "Fast and"},
		{"and", true, "and"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, trimTitle(tt.input, tt.cut))
		})
	}
}
