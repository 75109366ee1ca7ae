package repair

import (
	"testing"

	"github.com/tsawler/pna/model"
)

func rec(numbers, gmina, powiat string) model.Record {
	return model.Record{
		PostalCode:  "15-001",
		PlaceName:   "Białystok",
		NumberRange: numbers,
		Gmina:       gmina,
		Powiat:      powiat,
		Wojewodztwo: "podlaskie",
		Sources:     []model.RowRef{{Page: 1, RowIndex: 0}},
	}
}

func TestKnownNames(t *testing.T) {
	records := []model.Record{
		rec("", "Wola", "Warszawa"),
		rec("", "Nowe Miasto", "płoński"),
		rec("", "Wola", ""),
		rec("", "", "Białystok"),
	}

	got := KnownNames(records)
	want := []string{"Nowe Miasto", "Białystok", "Warszawa", "płoński", "Wola"}
	if len(got) != len(want) {
		t.Fatalf("KnownNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("KnownNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitName(t *testing.T) {
	names := []string{"Nowe Miasto", "Białystok", "Miasto"}

	tests := []struct {
		input    string
		wantRest string
		wantName string
		wantOK   bool
	}{
		{"1-33(n), 2a-22(p) Białystok", "1-33(n), 2a-22(p)", "Białystok", true},
		{"1-9(n)Białystok", "1-9(n)", "Białystok", true},
		{"1-9-Białystok", "1-9-", "Białystok", true},
		{"2-20 Nowe Miasto", "2-20", "Nowe Miasto", true},
		{"2-20 Stare Miasto", "2-20 Stare", "Miasto", true},
		{"1-9xBiałystok", "", "", false},
		{"Białystok", "", "", false},
		{"1-9", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rest, name, ok := SplitName(tt.input, names)
			if ok != tt.wantOK || rest != tt.wantRest || name != tt.wantName {
				t.Errorf("SplitName(%q) = %q, %q, %v; want %q, %q, %v",
					tt.input, rest, name, ok, tt.wantRest, tt.wantName, tt.wantOK)
			}
		})
	}
}

func TestGmina(t *testing.T) {
	records := []model.Record{
		rec("1-9", "Białystok", "Białystok"),
		rec("1-33(n), 2a-22(p) Białystok", "", "Białystok"),
		rec("5-7 Białystok", "Supraśl", "białostocki"),
		rec("", "", "białostocki"),
	}

	out, fixes := Gmina(records)
	if len(out) != len(records) {
		t.Fatalf("Expected %d records, got %d", len(records), len(out))
	}
	if len(fixes) != 1 {
		t.Fatalf("Expected 1 fix, got %d: %+v", len(fixes), fixes)
	}

	fix := fixes[0]
	if fix.Index != 1 || fix.Gmina != "Białystok" || fix.After != "1-33(n), 2a-22(p)" {
		t.Errorf("Unexpected fix %+v", fix)
	}
	if out[1].Gmina != "Białystok" || out[1].NumberRange != "1-33(n), 2a-22(p)" {
		t.Errorf("Record not repaired: %+v", out[1])
	}

	// A record with a gmina keeps its number range
	if out[2].NumberRange != "5-7 Białystok" {
		t.Errorf("Record with gmina was changed: %+v", out[2])
	}

	// Input untouched
	if records[1].Gmina != "" || records[1].NumberRange != "1-33(n), 2a-22(p) Białystok" {
		t.Errorf("Input record was modified: %+v", records[1])
	}
	if len(out[1].Sources) != 1 {
		t.Errorf("Sources lost: %+v", out[1].Sources)
	}
}
