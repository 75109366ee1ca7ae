// Package repair fixes records whose gmina was printed inside the
// number range column.
//
// On some pages of the register the number range runs into the gmina
// column, and the extractor reads both into number_range:
//
//	number_range: "1-33(n), 2a-22(p) Białystok"
//	gmina:        ""
//
// [Gmina] moves the trailing name back when it is a gmina or powiat seen
// elsewhere in the same data set.
package repair

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/pna/model"
)

// Fix describes one repaired record.
type Fix struct {
	// Index is the record's position in the input slice
	Index int

	// Gmina is the name moved out of the number range
	Gmina string

	// Before and After are the number range around the repair
	Before string
	After  string
}

// KnownNames returns every distinct gmina and powiat value, longest first.
// Names of equal length are ordered alphabetically.
func KnownNames(records []model.Record) []string {
	seen := make(map[string]bool)
	var names []string
	for _, rec := range records {
		for _, v := range []string{rec.Gmina, rec.Powiat} {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			names = append(names, v)
		}
	}

	sort.Slice(names, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(names[i]), utf8.RuneCountInString(names[j])
		if li != lj {
			return li > lj
		}
		return names[i] < names[j]
	})
	return names
}

// Gmina returns a copy of records with merged gmina names split out of
// number_range. Only records with an empty gmina are touched. The input is
// not modified.
func Gmina(records []model.Record) ([]model.Record, []Fix) {
	names := KnownNames(records)
	out := make([]model.Record, len(records))
	var fixes []Fix

	for i, rec := range records {
		out[i] = rec
		if strings.TrimSpace(rec.Gmina) != "" || rec.NumberRange == "" {
			continue
		}
		rest, name, ok := SplitName(rec.NumberRange, names)
		if !ok {
			continue
		}
		out[i] = rec.With(model.NumberRange, rest).With(model.Gmina, name)
		fixes = append(fixes, Fix{Index: i, Gmina: name, Before: rec.NumberRange, After: rest})
	}
	return out, fixes
}

// SplitName finds the first of names (in order) that ends s and is
// preceded by a space, ')' or '-'. It returns the trimmed remainder and the
// name.
func SplitName(s string, names []string) (rest, name string, ok bool) {
	for _, n := range names {
		if len(s) <= len(n) || !strings.HasSuffix(s, n) {
			continue
		}
		prefix := s[:len(s)-len(n)]
		last, _ := utf8.DecodeLastRuneInString(prefix)
		switch last {
		case ' ', ')', '-':
			return strings.TrimSpace(prefix), n, true
		}
	}
	return "", "", false
}
