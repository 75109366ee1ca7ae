package model

// Record is a reconciled logical row of the register.
//
// Field values are fixed once the reconciliation engine has built the record.
// Flags are added by validation and never removed.
type Record struct {
	PostalCode  string `json:"postal_code"`
	Street      string `json:"street"`
	NumberRange string `json:"number_range"`
	PlaceName   string `json:"place_name"`
	Gmina       string `json:"gmina"`
	Powiat      string `json:"powiat"`
	Wojewodztwo string `json:"wojewodztwo"`

	// Sources lists every raw row merged into this record, in document order.
	Sources []RowRef `json:"sources,omitempty"`

	// Orphan marks a record that started with a continuation row because no
	// record was open.
	Orphan bool `json:"orphan,omitempty"`

	// Unconverged marks a record that still looked like a continuation when
	// the reconciliation pass limit was reached.
	Unconverged bool `json:"unconverged,omitempty"`

	Flags FlagSet `json:"flags"`
}

// Get returns the value of a field.
func (r Record) Get(f Field) string {
	switch f {
	case PostalCode:
		return r.PostalCode
	case Street:
		return r.Street
	case NumberRange:
		return r.NumberRange
	case PlaceName:
		return r.PlaceName
	case Gmina:
		return r.Gmina
	case Powiat:
		return r.Powiat
	case Wojewodztwo:
		return r.Wojewodztwo
	}
	return ""
}

// With returns a copy of r with field f set to v.
func (r Record) With(f Field, v string) Record {
	out := r.with(f, v)
	out.Sources = append([]RowRef(nil), r.Sources...)
	return out
}

// Values returns the seven field values in canonical order.
func (r Record) Values() [NumFields]string {
	var v [NumFields]string
	for _, f := range Fields() {
		v[f] = r.Get(f)
	}
	return v
}

// IsBlank reports whether every field is empty.
func (r Record) IsBlank() bool {
	for _, v := range r.Values() {
		if v != "" {
			return false
		}
	}
	return true
}

// Consumed returns the number of raw rows merged into the record.
func (r Record) Consumed() int {
	return len(r.Sources)
}

// RecordFromRow builds a single-row record.
func RecordFromRow(row RawRow) Record {
	rec := Record{Sources: []RowRef{row.Ref()}}
	for _, f := range Fields() {
		rec = rec.with(f, row.Cell(f))
	}
	return rec
}

// with sets a field without copying Sources.
func (r Record) with(f Field, v string) Record {
	switch f {
	case PostalCode:
		r.PostalCode = v
	case Street:
		r.Street = v
	case NumberRange:
		r.NumberRange = v
	case PlaceName:
		r.PlaceName = v
	case Gmina:
		r.Gmina = v
	case Powiat:
		r.Powiat = v
	case Wojewodztwo:
		r.Wojewodztwo = v
	}
	return r
}
