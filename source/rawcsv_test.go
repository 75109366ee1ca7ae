package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/tsawler/pna/model"
)

const rawDump = "page,row_index,postal_code,street,number_range,place_name,gmina,powiat,wojewodztwo\n" +
	"3,0,12-345,Lipowa,,Warszawa,Wola,Warszawa,mazowieckie\n" +
	"3,1,,,1-10,,,,\n" +
	"4,0,90-001,,,Łódź,Łódź,Łódź,łódzkie\n"

func TestReadRawRows(t *testing.T) {
	rows, err := ReadRawRows(strings.NewReader("\xEF\xBB\xBF"+rawDump), "utf-8")
	if err != nil {
		t.Fatalf("ReadRawRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[0].Cell(model.PlaceName) != "Warszawa" {
		t.Errorf("PlaceName = %q", rows[0].Cell(model.PlaceName))
	}
	if !rows[1].IsContinuation() || rows[1].RowIndex != 1 {
		t.Errorf("Expected continuation at index 1, got %+v", rows[1])
	}
	if rows[2].Page != 4 || rows[2].Cell(model.Wojewodztwo) != "łódzkie" {
		t.Errorf("Unexpected row %+v", rows[2])
	}
}

func TestReadRawRowsWindows1250(t *testing.T) {
	encoded, err := charmap.Windows1250.NewEncoder().String(rawDump)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	rows, err := ReadRawRows(strings.NewReader(encoded), "windows-1250")
	if err != nil {
		t.Fatalf("ReadRawRows failed: %v", err)
	}
	if rows[2].Cell(model.PlaceName) != "Łódź" {
		t.Errorf("PlaceName = %q, want %q", rows[2].Cell(model.PlaceName), "Łódź")
	}
}

func TestReadRawRowsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		enc   string
	}{
		{"empty", "", "utf-8"},
		{"wrong header", "postal_code,street\n", "utf-8"},
		{"bad page", strings.Replace(rawDump, "\n3,0,", "\nx,0,", 1), "utf-8"},
		{"short row", rawDump + "5,0,00-001\n", "utf-8"},
		{"unknown encoding", rawDump, "koi8-r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadRawRows(strings.NewReader(tt.input), tt.enc); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestRawCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.csv")
	if err := os.WriteFile(path, []byte(rawDump), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := OpenRawCSV(path, DefaultOptions())
	if err != nil {
		t.Fatalf("OpenRawCSV failed: %v", err)
	}
	defer src.Close()

	ctx := context.Background()
	if n, _ := src.PageCount(ctx); n != 4 {
		t.Errorf("PageCount = %d, want 4", n)
	}

	rows, warnings, err := src.Rows(ctx, []int{3})
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows on page 3, got %d", len(rows))
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}

	_, warnings, err = src.Rows(ctx, nil)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	// Pages 1 and 2 are absent from the dump
	if len(warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %v", warnings)
	}
}
