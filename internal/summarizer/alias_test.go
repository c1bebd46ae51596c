package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveShortNameAliasMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exact alias", "ASIAN PAINTS", "ASIAN"},
		{"alias with suffix noise", "ASIAN PAINTS LTD", "ASIAN"},
		{"case insensitive", "asian paints limited", "ASIAN"},
		{"alias as substring", "M/S. INDIGO PAINTS DEPOT", "INDIGO"},
		{"punctuated alias", "T.A.L.C.ANNAMALAI NADAR & SONS", "T.A.L.C"},
		{"first declared entry wins", "SIMPSON & CO APC-DIVISION", "SIMPSON"},
		{"second simpson alias alone", "APC-DIVISION", "SIMPSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveShortName(tt.input))
		})
	}
}

func TestResolveShortNameFallback(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", ""},
		{"whitespace only", "   ", ""},
		{"legal suffixes removed", "ACME COATINGS PVT LTD", "ACME COATINGS"},
		{"parenthesized span removed", "ABC (CHENNAI) TRADERS", "ABC TRADERS"},
		{"multiple parens removed", "ABC (NORTH) DEPOT (SOUTH)", "ABC DEPOT"},
		{"cut at hyphen", "STERLING-COIMBATORE BRANCH", "STERLING"},
		{"cut at slash", "MEGHA / SALEM", "MEGHA"},
		{"hyphen before slash", "ALPHA-BETA/GAMMA", "ALPHA"},
		{"upper cased result", "sterling agencies", "STERLING AGENCIES"},
		{"all stripped keeps original", "Pvt Ltd", "PVT LTD"},
		{"india suffix", "BHARAT COATINGS INDIA", "BHARAT COATINGS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveShortName(tt.input))
		})
	}
}

// The alias table is ordered; keys that are substrings of later keys must
// stay in front so first-match resolution remains deterministic.
func TestAliasTableOrderPreserved(t *testing.T) {
	simpsonAt, apcAt := -1, -1
	for i, e := range aliasTable {
		switch e.Alias {
		case "SIMPSON & CO":
			simpsonAt = i
		case "APC-DIVISION":
			apcAt = i
		}
	}
	assert.GreaterOrEqual(t, simpsonAt, 0)
	assert.GreaterOrEqual(t, apcAt, 0)
	assert.Less(t, simpsonAt, apcAt)
}
