// Package report produces diagnostics over reconciled records: records
// missing a gmina, run-to-run differences and summary counts.
package report

import (
	"sort"
	"strings"

	"github.com/tsawler/pna/model"
)

// Entry is a record together with its position in the data set.
type Entry struct {
	Index  int          `json:"index"`
	Record model.Record `json:"record"`
}

// MissingGmina returns the records whose gmina is empty.
func MissingGmina(records []model.Record) []Entry {
	var out []Entry
	for i, rec := range records {
		if strings.TrimSpace(rec.Gmina) == "" {
			out = append(out, Entry{Index: i, Record: rec})
		}
	}
	return out
}

// Summary holds counts over a set of records.
type Summary struct {
	Records           int            `json:"records"`
	UniquePostalCodes int            `json:"unique_postal_codes"`
	Flagged           int            `json:"flagged"`
	Orphans           int            `json:"orphans"`
	Unconverged       int            `json:"unconverged"`
	PerWojewodztwo    map[string]int `json:"per_wojewodztwo"`
	PerFlag           map[string]int `json:"per_flag"`
}

// Summarize counts records, distinct postal codes, records per
// voivodeship and records per flag.
func Summarize(records []model.Record) Summary {
	s := Summary{
		Records:        len(records),
		PerWojewodztwo: make(map[string]int),
		PerFlag:        make(map[string]int),
	}

	codes := make(map[string]bool)
	for _, rec := range records {
		if rec.PostalCode != "" {
			codes[rec.PostalCode] = true
		}
		s.PerWojewodztwo[rec.Wojewodztwo]++
		if !rec.Flags.Empty() {
			s.Flagged++
		}
		for _, k := range rec.Flags.Kinds() {
			s.PerFlag[k.String()]++
		}
		if rec.Orphan {
			s.Orphans++
		}
		if rec.Unconverged {
			s.Unconverged++
		}
	}
	s.UniquePostalCodes = len(codes)
	return s
}

// Wojewodztwa returns the voivodeship names in the summary, sorted.
func (s Summary) Wojewodztwa() []string {
	names := make([]string, 0, len(s.PerWojewodztwo))
	for name := range s.PerWojewodztwo {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
