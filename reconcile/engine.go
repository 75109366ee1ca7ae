package reconcile

import "github.com/tsawler/pna/model"

// Options configures [Reconcile].
type Options struct {
	// MaxPasses bounds the fixed-point loop. Zero or negative selects the
	// default of one pass per input row plus one.
	MaxPasses int
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{}
}

// Result is the outcome of [Reconcile].
type Result struct {
	// Records are the logical records in document order.
	Records []model.Record

	// Passes is the number of merge passes applied.
	Passes int

	// Converged is false when the pass limit was reached while the record
	// count was still changing.
	Converged bool
}

// Unconverged returns the records marked Unconverged.
func (r Result) Unconverged() []model.Record {
	var out []model.Record
	for _, rec := range r.Records {
		if rec.Unconverged {
			out = append(out, rec)
		}
	}
	return out
}

// Reconcile merges raw rows into logical records. Rows must be in document
// order (page, then row within page). The input slice is not modified.
func Reconcile(rows []model.RawRow, opts Options) Result {
	bound := opts.MaxPasses
	if bound <= 0 {
		bound = len(rows) + 1
	}

	current := make([]model.Record, len(rows))
	for i, row := range rows {
		current[i] = model.RecordFromRow(row)
	}

	res := Result{}
	var changed []bool
	for res.Passes < bound {
		var next []model.Record
		next, changed = mergePass(current)
		res.Passes++
		stable := len(next) == len(current)
		current = next
		if stable {
			res.Converged = true
			break
		}
	}

	if !res.Converged {
		for i := range current {
			if changed[i] {
				current[i].Unconverged = true
			}
		}
	}

	res.Records = current
	return res
}

// mergePass applies one left-to-right pass and reports, per output record,
// whether the pass merged anything into it.
func mergePass(units []model.Record) ([]model.Record, []bool) {
	out := make([]model.Record, 0, len(units))
	changed := make([]bool, 0, len(units))

	s := State{Kind: NoOpenRecord}
	for _, u := range units {
		prev := s
		var closed model.Record
		var emitted bool
		s, closed, emitted = Step(s, u)
		if emitted {
			out = append(out, closed)
			changed = append(changed, prev.Merged)
		}
	}
	if s.Kind == OpenRecord {
		out = append(out, s.Partial)
		changed = append(changed, s.Merged)
	}
	return out, changed
}

// Rows turns records back into raw rows, one per record, so that output can
// be fed through the engine again. Provenance is the record's first source.
func Rows(records []model.Record) []model.RawRow {
	rows := make([]model.RawRow, len(records))
	for i, rec := range records {
		row := model.RawRow{Cells: rec.Values(), RowIndex: i}
		if len(rec.Sources) > 0 {
			row.Page = rec.Sources[0].Page
			row.RowIndex = rec.Sources[0].RowIndex
		}
		rows[i] = row
	}
	return rows
}
