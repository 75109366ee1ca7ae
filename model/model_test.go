package model

import (
	"encoding/json"
	"testing"
)

// ============================================================================
// Field Tests
// ============================================================================

func TestFieldString(t *testing.T) {
	tests := []struct {
		field    Field
		expected string
	}{
		{PostalCode, "postal_code"},
		{Street, "street"},
		{NumberRange, "number_range"},
		{PlaceName, "place_name"},
		{Gmina, "gmina"},
		{Powiat, "powiat"},
		{Wojewodztwo, "wojewodztwo"},
		{Field(42), "field(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.field.String(); got != tt.expected {
				t.Errorf("Field.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	for _, f := range Fields() {
		got, err := ParseField(f.String())
		if err != nil {
			t.Fatalf("ParseField(%q) returned error: %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseField(%q) = %v, want %v", f.String(), got, f)
		}
	}

	if _, err := ParseField("ulica"); err == nil {
		t.Error("Expected error for unknown field name")
	}
}

// ============================================================================
// RawRow Tests
// ============================================================================

func TestRawRowClassification(t *testing.T) {
	tests := []struct {
		name         string
		cells        []string
		blank        bool
		continuation bool
	}{
		{"opener", []string{"12-345", "Lipowa", "", "Warszawa", "Wola", "Warszawa", "mazowieckie"}, false, false},
		{"continuation", []string{"", "", "1-10"}, false, true},
		{"blank", []string{"", "", "", "", "", "", ""}, true, false},
		{"whitespace only", []string{"  ", "\t"}, true, false},
		{"postal code only", []string{"00-001"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := NewRawRow(1, 0, tt.cells...)
			if row.IsBlank() != tt.blank {
				t.Errorf("IsBlank() = %v, want %v", row.IsBlank(), tt.blank)
			}
			if row.IsContinuation() != tt.continuation {
				t.Errorf("IsContinuation() = %v, want %v", row.IsContinuation(), tt.continuation)
			}
		})
	}
}

func TestNewRawRowTrimsAndTruncates(t *testing.T) {
	row := NewRawRow(3, 7, " 12-345 ", "a", "b", "c", "d", "e", "f", "extra")
	if row.Cell(PostalCode) != "12-345" {
		t.Errorf("Cell(PostalCode) = %q, want %q", row.Cell(PostalCode), "12-345")
	}
	if row.Cell(Wojewodztwo) != "f" {
		t.Errorf("Cell(Wojewodztwo) = %q, want %q", row.Cell(Wojewodztwo), "f")
	}
	if row.Ref().String() != "p3:r7" {
		t.Errorf("Ref().String() = %q, want %q", row.Ref().String(), "p3:r7")
	}
}

// ============================================================================
// Record Tests
// ============================================================================

func TestRecordFromRow(t *testing.T) {
	row := NewRawRow(2, 4, "12-345", "Lipowa", "", "Warszawa", "Wola", "Warszawa", "mazowieckie")
	rec := RecordFromRow(row)

	if rec.PostalCode != "12-345" || rec.Street != "Lipowa" || rec.PlaceName != "Warszawa" {
		t.Errorf("Unexpected record fields: %+v", rec)
	}
	if rec.Consumed() != 1 {
		t.Errorf("Expected 1 consumed row, got %d", rec.Consumed())
	}
	if !rec.Flags.Empty() {
		t.Errorf("Expected no flags on a fresh record, got %s", rec.Flags)
	}
}

func TestRecordWithCopiesSources(t *testing.T) {
	rec := Record{PlaceName: "Kraków", Sources: []RowRef{{Page: 1, RowIndex: 0}}}
	changed := rec.With(Gmina, "Kraków")
	changed.Sources[0].Page = 99

	if rec.Sources[0].Page != 1 {
		t.Error("With() must not share the Sources slice with the original")
	}
	if rec.Gmina != "" {
		t.Error("With() must not modify the receiver")
	}
	if changed.Get(Gmina) != "Kraków" {
		t.Errorf("Get(Gmina) = %q, want %q", changed.Get(Gmina), "Kraków")
	}
}

// ============================================================================
// FlagSet Tests
// ============================================================================

func TestFlagSet(t *testing.T) {
	var s FlagSet
	if !s.Empty() {
		t.Error("Expected zero FlagSet to be empty")
	}

	s = s.Add(FieldTooLong).Add(InvalidWojewodztwo).Add(FieldTooLong)
	if s.Len() != 2 {
		t.Errorf("Expected 2 flags, got %d", s.Len())
	}
	if !s.Has(FieldTooLong) || !s.Has(InvalidWojewodztwo) {
		t.Errorf("Missing expected flags in %s", s)
	}
	if s.Has(MissingEssentialField) {
		t.Error("Unexpected missing_essential_field flag")
	}

	kinds := s.Kinds()
	if kinds[0] != InvalidWojewodztwo || kinds[1] != FieldTooLong {
		t.Errorf("Kinds() not in column order: %v", kinds)
	}
	if s.String() != "invalid_wojewodztwo|field_too_long" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestFlagSetJSON(t *testing.T) {
	s := NewFlagSet(DuplicatePNACrossWojewodztwo, NumericInPlaceName)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["numeric_in_place_name","duplicate_pna_cross_wojewodztwo"]` {
		t.Errorf("Marshal = %s", data)
	}

	var back FlagSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back != s {
		t.Errorf("Unmarshal = %s, want %s", back, s)
	}

	if err := json.Unmarshal([]byte(`["no_such_flag"]`), &back); err == nil {
		t.Error("Expected error for unknown flag name")
	}
}

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBoxFromCorners(t *testing.T) {
	// Table area as "left,top,right,bottom"
	b := NewBBoxFromCorners(28, 813, 567, 27)
	if b.Left() != 28 || b.Right() != 567 || b.Bottom() != 27 || b.Top() != 813 {
		t.Errorf("Unexpected box %+v", b)
	}
	if !b.Contains(Point{X: 100, Y: 400}) {
		t.Error("Expected point inside table area")
	}
	if b.Contains(Point{X: 10, Y: 400}) {
		t.Error("Expected point left of table area to be outside")
	}
}
