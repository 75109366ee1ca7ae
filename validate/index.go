package validate

import (
	"sort"
	"strings"

	"github.com/tsawler/pna/model"
)

// Index maps each postal code to the voivodeships it appears under.
// It is built once from the complete record set and only read afterwards.
type Index struct {
	// regions maps postal code -> normalized voivodeship -> first spelling seen
	regions map[string]map[string]string
}

// BuildIndex scans all records. Records with an empty postal code or an
// empty voivodeship are not indexed.
func BuildIndex(records []model.Record) Index {
	idx := Index{regions: make(map[string]map[string]string)}
	for _, rec := range records {
		if rec.PostalCode == "" || rec.Wojewodztwo == "" {
			continue
		}
		key := regionKey(rec.Wojewodztwo)
		if key == "" {
			continue
		}
		set, ok := idx.regions[rec.PostalCode]
		if !ok {
			set = make(map[string]string)
			idx.regions[rec.PostalCode] = set
		}
		if _, seen := set[key]; !seen {
			set[key] = rec.Wojewodztwo
		}
	}
	return idx
}

// regionKey is the normalized voivodeship, or the trimmed spelling when
// normalization leaves nothing (digits, punctuation).
func regionKey(s string) string {
	if key := NormalizeRegion(s); key != "" {
		return key
	}
	return strings.TrimSpace(s)
}

// Len returns the number of distinct indexed postal codes.
func (idx Index) Len() int {
	return len(idx.regions)
}

// Conflicting reports whether code appears under more than one voivodeship.
func (idx Index) Conflicting(code string) bool {
	return len(idx.regions[code]) > 1
}

// Regions returns the voivodeships recorded for code, sorted.
func (idx Index) Regions(code string) []string {
	set := idx.regions[code]
	out := make([]string, 0, len(set))
	for _, spelling := range set {
		out = append(out, spelling)
	}
	sort.Strings(out)
	return out
}

// Conflicts returns every conflicting postal code, sorted.
func (idx Index) Conflicts() []string {
	var codes []string
	for code, set := range idx.regions {
		if len(set) > 1 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
