package reconcile

import (
	"strings"

	"github.com/tsawler/pna/model"
)

// StateKind is the state of a merge pass.
type StateKind int

const (
	NoOpenRecord StateKind = iota
	OpenRecord
)

// String returns the state name.
func (k StateKind) String() string {
	if k == OpenRecord {
		return "OPEN_RECORD"
	}
	return "NO_OPEN_RECORD"
}

// State is the merge pass state between two rows. Partial is only meaningful
// when Kind is OpenRecord.
type State struct {
	Kind    StateKind
	Partial model.Record

	// Merged is set once a continuation has been folded into Partial
	// during the current pass.
	Merged bool
}

// Step consumes one unit and returns the next state. When the unit closes the
// open record, the closed record is returned with emitted set to true.
//
// A unit with a postal code always opens a new record. Any other unit
// (continuation or blank) is merged into the open record, or becomes an
// orphan record when nothing is open.
func Step(s State, u model.Record) (next State, closed model.Record, emitted bool) {
	if u.PostalCode != "" {
		if s.Kind == OpenRecord {
			closed, emitted = s.Partial, true
		}
		return State{Kind: OpenRecord, Partial: u}, closed, emitted
	}

	if s.Kind == NoOpenRecord {
		u.Orphan = true
		return State{Kind: OpenRecord, Partial: u}, model.Record{}, false
	}

	return State{Kind: OpenRecord, Partial: Merge(s.Partial, u), Merged: true}, model.Record{}, false
}

// Merge appends the fields of a continuation unit to an open record and
// returns the combined record. Neither argument is modified.
func Merge(open, cont model.Record) model.Record {
	out := open
	for _, f := range model.Fields() {
		if f == model.PostalCode {
			continue
		}
		out = out.With(f, JoinFragment(f, open.Get(f), cont.Get(f)))
	}
	out.Sources = append(append([]model.RowRef(nil), open.Sources...), cont.Sources...)
	out.Unconverged = open.Unconverged || cont.Unconverged
	return out
}

// JoinFragment joins continuation text onto the current value of field f.
func JoinFragment(f model.Field, current, fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return current
	}
	if current == "" {
		return fragment
	}
	if strings.HasSuffix(current, "-") {
		if f == model.NumberRange {
			return current + fragment
		}
		return strings.TrimSuffix(current, "-") + fragment
	}
	return current + " " + fragment
}
