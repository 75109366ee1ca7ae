package report

import (
	"testing"

	"github.com/tsawler/pna/model"
)

func sample() []model.Record {
	return []model.Record{
		{PostalCode: "00-001", PlaceName: "Warszawa", Gmina: "Warszawa", Powiat: "Warszawa", Wojewodztwo: "mazowieckie"},
		{PostalCode: "00-001", PlaceName: "Warszawa", Street: "Lipowa", Powiat: "Warszawa", Wojewodztwo: "mazowieckie",
			Flags: model.NewFlagSet(model.MissingEssentialField)},
		{PostalCode: "30-001", PlaceName: "Kraków", Gmina: "Kraków", Powiat: "Kraków", Wojewodztwo: "małopolskie",
			Flags: model.NewFlagSet(model.DuplicatePNACrossWojewodztwo, model.FieldTooLong)},
		{PlaceName: "Kraków", Wojewodztwo: "małopolskie", Orphan: true},
	}
}

func TestMissingGmina(t *testing.T) {
	got := MissingGmina(sample())
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 3 {
		t.Errorf("Unexpected indexes %d, %d", got[0].Index, got[1].Index)
	}

	if got := MissingGmina(nil); got != nil {
		t.Errorf("MissingGmina(nil) = %v, want nil", got)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sample())

	if s.Records != 4 {
		t.Errorf("Records = %d, want 4", s.Records)
	}
	if s.UniquePostalCodes != 2 {
		t.Errorf("UniquePostalCodes = %d, want 2", s.UniquePostalCodes)
	}
	if s.Flagged != 2 {
		t.Errorf("Flagged = %d, want 2", s.Flagged)
	}
	if s.Orphans != 1 {
		t.Errorf("Orphans = %d, want 1", s.Orphans)
	}
	if s.PerWojewodztwo["małopolskie"] != 2 || s.PerWojewodztwo["mazowieckie"] != 2 {
		t.Errorf("PerWojewodztwo = %v", s.PerWojewodztwo)
	}
	if s.PerFlag["field_too_long"] != 1 || s.PerFlag["missing_essential_field"] != 1 {
		t.Errorf("PerFlag = %v", s.PerFlag)
	}

	names := s.Wojewodztwa()
	if len(names) != 2 || names[0] != "mazowieckie" {
		t.Errorf("Wojewodztwa() = %v", names)
	}
}

func TestDiff(t *testing.T) {
	a := sample()
	b := sample()[:3]
	b[0] = b[0].With(model.Gmina, "Śródmieście")
	b[2] = b[2].With(model.Gmina, "Krowodrza").With(model.Powiat, "krakowski")
	b[1].Flags = model.FlagSet(0)

	d := Diff(a, b)
	if d.Equal() {
		t.Fatal("Expected differences")
	}
	if d.LenA != 4 || d.LenB != 3 {
		t.Errorf("LenA, LenB = %d, %d", d.LenA, d.LenB)
	}
	if len(d.Rows) != 3 {
		t.Fatalf("Expected 3 differing rows, got %d", len(d.Rows))
	}
	if !d.Rows[1].FlagsDiffer || len(d.Rows[1].Fields) != 0 {
		t.Errorf("Row 1 should differ in flags only: %+v", d.Rows[1])
	}
	if len(d.OnlyA) != 1 || d.OnlyA[0].Index != 3 || len(d.OnlyB) != 0 {
		t.Errorf("OnlyA = %v, OnlyB = %v", d.OnlyA, d.OnlyB)
	}

	cols := d.Columns()
	if len(cols) != 2 {
		t.Fatalf("Columns() = %v", cols)
	}
	if cols[0].Field != model.Gmina || cols[0].Count != 2 {
		t.Errorf("Columns()[0] = %+v, want gmina 2", cols[0])
	}
	if cols[1].Field != model.Powiat || cols[1].Count != 1 {
		t.Errorf("Columns()[1] = %+v, want powiat 1", cols[1])
	}
}

func TestDiffEqual(t *testing.T) {
	if d := Diff(sample(), sample()); !d.Equal() {
		t.Errorf("Expected equal sets, got %+v", d)
	}
}
