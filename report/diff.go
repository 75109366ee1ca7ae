package report

import (
	"sort"

	"github.com/tsawler/pna/model"
)

// RowDiff is a position where two data sets disagree.
type RowDiff struct {
	Index  int
	A, B   model.Record
	Fields []model.Field

	// FlagsDiffer is set when the flag sets differ
	FlagsDiffer bool
}

// ColumnCount is the number of differing rows for one field.
type ColumnCount struct {
	Field model.Field
	Count int
}

// DiffResult compares two record sets row by row.
type DiffResult struct {
	LenA, LenB int

	// Rows lists the differing rows in the common range
	Rows []RowDiff

	// OnlyA and OnlyB hold the rows past the end of the shorter set
	OnlyA []Entry
	OnlyB []Entry
}

// Equal reports whether the two sets are identical.
func (d DiffResult) Equal() bool {
	return len(d.Rows) == 0 && len(d.OnlyA) == 0 && len(d.OnlyB) == 0
}

// Columns returns the number of differing rows per field, most first.
// Fields without differences are omitted.
func (d DiffResult) Columns() []ColumnCount {
	counts := make(map[model.Field]int)
	for _, r := range d.Rows {
		for _, f := range r.Fields {
			counts[f]++
		}
	}

	out := make([]ColumnCount, 0, len(counts))
	for f, n := range counts {
		out = append(out, ColumnCount{Field: f, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Field < out[j].Field
	})
	return out
}

// Diff compares a and b position by position.
func Diff(a, b []model.Record) DiffResult {
	d := DiffResult{LenA: len(a), LenB: len(b)}

	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		var fields []model.Field
		for _, f := range model.Fields() {
			if a[i].Get(f) != b[i].Get(f) {
				fields = append(fields, f)
			}
		}
		flags := a[i].Flags != b[i].Flags
		if len(fields) > 0 || flags {
			d.Rows = append(d.Rows, RowDiff{Index: i, A: a[i], B: b[i], Fields: fields, FlagsDiffer: flags})
		}
	}

	for i := n; i < len(a); i++ {
		d.OnlyA = append(d.OnlyA, Entry{Index: i, Record: a[i]})
	}
	for i := n; i < len(b); i++ {
		d.OnlyB = append(d.OnlyB, Entry{Index: i, Record: b[i]})
	}
	return d
}
