package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/report"
	"github.com/tsawler/pna/validate"
)

// Store holds the records of one processing run. It is read-only after
// construction and safe for concurrent use.
type Store struct {
	RunID     uuid.UUID
	Source    string
	Generated time.Time

	records []model.Record
	summary report.Summary
	index   validate.Index
	byCode  map[string][]int
}

// NewStore indexes records for lookup.
func NewStore(runID uuid.UUID, source string, records []model.Record) *Store {
	s := &Store{
		RunID:     runID,
		Source:    source,
		Generated: time.Now(),
		records:   records,
		summary:   report.Summarize(records),
		index:     validate.BuildIndex(records),
		byCode:    make(map[string][]int),
	}
	for i, rec := range records {
		s.byCode[rec.PostalCode] = append(s.byCode[rec.PostalCode], i)
	}
	return s
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns every record.
func (s *Store) Records() []model.Record {
	return s.records
}

// Summary returns the counts over all records.
func (s *Store) Summary() report.Summary {
	return s.summary
}

// Record returns the record at seq.
func (s *Store) Record(seq int) (model.Record, bool) {
	if seq < 0 || seq >= len(s.records) {
		return model.Record{}, false
	}
	return s.records[seq], true
}

// PostalCode returns the records carrying code.
func (s *Store) PostalCode(code string) []report.Entry {
	idx := s.byCode[code]
	out := make([]report.Entry, len(idx))
	for i, seq := range idx {
		out[i] = report.Entry{Index: seq, Record: s.records[seq]}
	}
	return out
}

// Regions returns the voivodeship spellings recorded for code.
func (s *Store) Regions(code string) []string {
	return s.index.Regions(code)
}

// Conflicting reports whether code appears in several voivodeships.
func (s *Store) Conflicting(code string) bool {
	return s.index.Conflicting(code)
}

// Query filters records. Zero filter values match everything; a zero
// Limit returns every match.
type Query struct {
	Flag        *model.FlagKind
	PostalCode  string
	Wojewodztwo string
	Offset      int
	Limit       int
}

// Find returns one page of matching records and the total match count.
func (s *Store) Find(q Query) ([]report.Entry, int) {
	woj := validate.NormalizeRegion(q.Wojewodztwo)

	var out []report.Entry
	total := 0
	for i, rec := range s.records {
		if q.Flag != nil && !rec.Flags.Has(*q.Flag) {
			continue
		}
		if q.PostalCode != "" && rec.PostalCode != q.PostalCode {
			continue
		}
		if woj != "" && validate.NormalizeRegion(rec.Wojewodztwo) != woj {
			continue
		}
		total++
		if total <= q.Offset || (q.Limit > 0 && len(out) >= q.Limit) {
			continue
		}
		out = append(out, report.Entry{Index: i, Record: rec})
	}
	return out, total
}
