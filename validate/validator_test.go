package validate

import (
	"strings"
	"testing"

	"github.com/tsawler/pna/model"
)

func complete(code, place, woj string) model.Record {
	return model.Record{
		PostalCode:  code,
		PlaceName:   place,
		Gmina:       "Gmina",
		Powiat:      "Powiat",
		Wojewodztwo: woj,
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name     string
		record   model.Record
		expected []model.FlagKind
	}{
		{"clean", complete("00-001", "Warszawa", "mazowieckie"), nil},
		{"numeral in place", complete("00-001", "Nowa Wieś 3", "mazowieckie"), []model.FlagKind{model.NumericInPlaceName}},
		{"roman numeral", complete("00-001", "Dzielnica XII", "mazowieckie"), nil},
		{"unknown voivodeship", complete("00-001", "Warszawa", "mazowsze"), []model.FlagKind{model.InvalidWojewodztwo}},
		{"voivodeship without diacritics", complete("90-001", "Łódź", "LODZKIE"), nil},
		{"empty voivodeship", complete("00-001", "Warszawa", ""), []model.FlagKind{model.MissingEssentialField}},
		{"bad postal code", complete("00001", "Warszawa", "mazowieckie"), []model.FlagKind{model.InvalidPostalCodeFormat}},
		{"postal code with spaces", complete(" 00-001", "Warszawa", "mazowieckie"), []model.FlagKind{model.InvalidPostalCodeFormat}},
		{"missing postal code", complete("", "Warszawa", "mazowieckie"), []model.FlagKind{model.MissingEssentialField}},
		{"too long", complete("00-001", strings.Repeat("a", 121), "mazowieckie"), []model.FlagKind{model.FieldTooLong}},
		{"long number range allowed", func() model.Record {
			r := complete("00-001", "Warszawa", "mazowieckie")
			r.NumberRange = strings.Repeat("1-9, ", 60)
			return r
		}(), nil},
		{"orphan", func() model.Record {
			r := complete("00-001", "Warszawa", "mazowieckie")
			r.Orphan = true
			return r
		}(), []model.FlagKind{model.MissingEssentialField}},
		{"unconverged", func() model.Record {
			r := complete("00-001", "Warszawa", "mazowieckie")
			r.Unconverged = true
			return r
		}(), []model.FlagKind{model.UnreconciledContinuation}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Validate([]model.Record{tt.record})
			want := model.NewFlagSet(tt.expected...)
			if out[0].Flags != want {
				t.Errorf("Flags = %q, want %q", out[0].Flags, want)
			}
		})
	}
}

func TestValidateDuplicateAcrossRegions(t *testing.T) {
	records := []model.Record{
		complete("12-345", "A", "mazowieckie"),
		complete("12-345", "B", "łódzkie"),
		complete("12-345", "C", "Mazowieckie"),
		complete("22-100", "D", "lubelskie"),
		complete("22-100", "E", "lubelskie"),
		complete("", "F", "opolskie"),
	}

	out := Validate(records)
	for i, want := range []bool{true, true, true, false, false, false} {
		got := out[i].Flags.Has(model.DuplicatePNACrossWojewodztwo)
		if got != want {
			t.Errorf("record %d (%s): duplicate flag = %v, want %v", i, out[i].PlaceName, got, want)
		}
	}
}

func TestValidateDuplicateUnnormalizableRegion(t *testing.T) {
	out := Validate([]model.Record{
		complete("12-345", "A", "mazowieckie"),
		complete("12-345", "B", "123"),
		complete("12-346", "C", "456"),
		complete("12-346", "D", " 456 "),
	})
	for i, want := range []bool{true, true, false, false} {
		if got := out[i].Flags.Has(model.DuplicatePNACrossWojewodztwo); got != want {
			t.Errorf("record %d (%s): duplicate flag = %v, want %v", i, out[i].PlaceName, got, want)
		}
	}
}

func TestNewPartialConfig(t *testing.T) {
	v := New(Config{Workers: 2})
	cfg := v.Config()
	if cfg.MaxFieldLength != 120 {
		t.Errorf("MaxFieldLength = %d, want 120", cfg.MaxFieldLength)
	}
	if cfg.FieldLimits[model.NumberRange] != 400 {
		t.Errorf("NumberRange limit = %d, want 400", cfg.FieldLimits[model.NumberRange])
	}

	ranges := complete("00-001", "A", "mazowieckie")
	ranges.NumberRange = strings.Repeat("1", 300)
	street := complete("00-001", "B", "mazowieckie")
	street.Street = strings.Repeat("a", 130)

	out := v.Validate([]model.Record{ranges, street})
	if out[0].Flags.Has(model.FieldTooLong) {
		t.Errorf("300-rune number range flagged with flags %v", out[0].Flags)
	}
	if !out[1].Flags.Has(model.FieldTooLong) {
		t.Errorf("130-rune street not flagged")
	}
}

func TestValidatePreservesOrderAndInput(t *testing.T) {
	var records []model.Record
	for i := 0; i < 5000; i++ {
		place := "Miejscowość"
		if i%7 == 0 {
			place = "Kolonia 7"
		}
		records = append(records, complete("00-001", place, "mazowieckie"))
		records[i].Street = string(rune('a' + i%26))
	}

	v := New(Config{Workers: 4, ChunkSize: 100})
	out := v.Validate(records)

	if len(out) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(out))
	}
	for i := range out {
		if out[i].Street != records[i].Street {
			t.Fatalf("Record %d reordered", i)
		}
		if want := i%7 == 0; out[i].Flags.Has(model.NumericInPlaceName) != want {
			t.Errorf("Record %d numeric flag = %v, want %v", i, !want, want)
		}
		if !records[i].Flags.Empty() {
			t.Fatalf("Validate modified input record %d", i)
		}
	}
}

func TestValidateKeepsExistingFlags(t *testing.T) {
	rec := complete("00-001", "Warszawa", "mazowieckie")
	rec.Flags = model.NewFlagSet(model.FieldTooLong)

	out := Validate([]model.Record{rec})
	if !out[0].Flags.Has(model.FieldTooLong) {
		t.Error("Validate removed an existing flag")
	}
}

func TestValidateFormatInvariant(t *testing.T) {
	codes := []string{"00-001", "0-001", "00-0011", "ab-cde", "00–001", "99-999"}
	var records []model.Record
	for _, c := range codes {
		records = append(records, complete(c, "X", "opolskie"))
	}
	for _, rec := range Validate(records) {
		if !rec.Flags.Has(model.InvalidPostalCodeFormat) && !ValidPostalCode(rec.PostalCode) {
			t.Errorf("Unflagged record with bad postal code %q", rec.PostalCode)
		}
	}
}

func TestIndex(t *testing.T) {
	idx := BuildIndex([]model.Record{
		complete("12-345", "A", "mazowieckie"),
		complete("12-345", "B", "łódzkie"),
		complete("12-346", "C", "łódzkie"),
		complete("12-347", "D", ""),
	})

	if idx.Len() != 2 {
		t.Errorf("Expected 2 indexed codes, got %d", idx.Len())
	}
	if got := idx.Conflicts(); len(got) != 1 || got[0] != "12-345" {
		t.Errorf("Conflicts() = %v", got)
	}
	if got := idx.Regions("12-345"); len(got) != 2 || got[0] != "mazowieckie" || got[1] != "łódzkie" {
		t.Errorf("Regions() = %v", got)
	}
}
