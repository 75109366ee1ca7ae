package validate

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeRegion reduces a voivodeship name to a comparison key: case
// folded, diacritics removed, only letters kept.
//
//	NormalizeRegion("Kujawsko-Pomorskie") == NormalizeRegion("kujawskopomorskie")
//	NormalizeRegion("Łódzkie") == "lodzkie"
func NormalizeRegion(s string) string {
	// Transformers carry state, so each call builds its own chain.
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(foldStroke),
		norm.NFC,
	)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = cases.Fold().String(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// foldStroke maps letters whose diacritic is not a combining mark.
func foldStroke(r rune) rune {
	switch r {
	case 'ł':
		return 'l'
	case 'Ł':
		return 'L'
	}
	return r
}
