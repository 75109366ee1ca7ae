package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/pna/format"
)

// testPDF is an optional register excerpt; tests using it are skipped when
// it is absent.
const testPDF = "testdata/spis_excerpt.pdf"

func TestOpenPDFMissingFile(t *testing.T) {
	if _, err := OpenPDF(filepath.Join(t.TempDir(), "missing.pdf"), DefaultOptions()); err == nil {
		t.Error("Expected error opening a missing file")
	}
}

func TestOpenUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path, format.Unknown, DefaultOptions()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestPDFRows(t *testing.T) {
	if _, err := os.Stat(testPDF); err != nil {
		t.Skipf("fixture %s not available", testPDF)
	}

	src, err := OpenPDF(testPDF, DefaultOptions())
	if err != nil {
		t.Fatalf("OpenPDF failed: %v", err)
	}
	defer src.Close()

	rows, _, err := src.Rows(context.Background(), []int{1})
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(rows) == 0 {
		t.Error("Expected rows from the first page")
	}
	for _, r := range rows {
		if r.Page != 1 {
			t.Errorf("Row from unexpected page %d", r.Page)
		}
	}
}

func TestPreflight(t *testing.T) {
	if _, err := os.Stat(testPDF); err != nil {
		t.Skipf("fixture %s not available", testPDF)
	}

	report, err := Preflight(testPDF)
	if err != nil {
		t.Fatalf("Preflight failed: %v", err)
	}
	if report.PageCount < 1 {
		t.Errorf("PageCount = %d", report.PageCount)
	}
}

func TestPreflightRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\nnot really a pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Preflight(path); err == nil {
		t.Error("Expected preflight to reject a broken file")
	}
}
