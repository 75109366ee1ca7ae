package source

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/pna/layout"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/ocr"
)

// fakeRecognizer returns canned words, one slice per call.
type fakeRecognizer struct {
	pages  [][]ocr.Word
	calls  int
	closed bool
	err    error
}

func (f *fakeRecognizer) Words(imageData []byte) ([]ocr.Word, error) {
	if f.err != nil {
		return nil, f.err
	}
	words := f.pages[f.calls%len(f.pages)]
	f.calls++
	return words, nil
}

func (f *fakeRecognizer) Close() error {
	f.closed = true
	return nil
}

// writeScan writes a blank A4 page at 72 DPI, so pixels equal points.
func writeScan(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 595, 842))); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// box places a word whose baseline is at y points from the bottom.
func box(text string, x, y, width int) ocr.Word {
	return ocr.Word{Text: text, Box: image.Rect(x, 842-y-7, x+width, 842-y), Confidence: 90}
}

func TestImagesRows(t *testing.T) {
	dir := t.TempDir()
	p1 := writeScan(t, dir, "page-001.png")
	p2 := writeScan(t, dir, "page-002.png")

	rec := &fakeRecognizer{pages: [][]ocr.Word{
		{
			box("PNA", 30, 800, 15), box("Miejscowość", 65, 800, 40),
			box("12-345", 30, 700, 25), box("Warszawa", 65, 700, 30), box("Lipowa", 150, 700, 25),
			box("Wola", 340, 700, 15), box("Warszawa", 425, 700, 30), box("mazowieckie", 500, 700, 40),
			box("1-10", 270, 690, 15),
			box("~", 300, 600, 5),
		},
		{
			box("90-001", 30, 700, 25), box("Łódź", 65, 700, 20), box("Łódź", 340, 700, 20),
			box("Łódź", 425, 700, 20), box("łódzkie", 500, 700, 30),
		},
	}}
	rec.pages[0][len(rec.pages[0])-1].Confidence = 5

	opts := DefaultOptions()
	opts.DPI, opts.TargetDPI = 72, 72
	src := NewImages([]string{p1, p2}, rec, opts)
	defer src.Close()

	rows, warnings, err := src.Rows(context.Background(), nil)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", warnings)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d: %+v", len(rows), rows)
	}

	want := model.NewRawRow(1, 0, "12-345", "Lipowa", "", "Warszawa", "Wola", "Warszawa", "mazowieckie")
	if rows[0] != want {
		t.Errorf("rows[0] = %v, want %v", rows[0].Cells, want.Cells)
	}
	if rows[1].Cell(model.NumberRange) != "1-10" || !rows[1].IsContinuation() {
		t.Errorf("rows[1] = %v", rows[1].Cells)
	}
	if rows[2].Page != 2 || rows[2].Cell(model.Wojewodztwo) != "łódzkie" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}

func TestImagesRowsFailsOnPageError(t *testing.T) {
	dir := t.TempDir()
	p1 := writeScan(t, dir, "page-001.png")

	src := NewImages([]string{p1}, &fakeRecognizer{err: errors.New("engine crashed")}, DefaultOptions())
	_, _, err := src.Rows(context.Background(), nil)
	if err == nil {
		t.Fatal("Expected extraction error")
	}
	if err.Error() != "extract page 1: engine crashed" {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestImagesRowsCancelled(t *testing.T) {
	dir := t.TempDir()
	p1 := writeScan(t, dir, "page-001.png")
	src := NewImages([]string{p1}, &fakeRecognizer{pages: [][]ocr.Word{nil}}, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := src.Rows(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestListScans(t *testing.T) {
	dir := t.TempDir()
	writeScan(t, dir, "b.png")
	writeScan(t, dir, "a.png")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := listScans(dir)
	if err != nil {
		t.Fatalf("listScans failed: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.png" {
		t.Errorf("listScans = %v", files)
	}

	if _, err := listScans(t.TempDir()); !errors.Is(err, ErrNoPages) {
		t.Errorf("Expected ErrNoPages for empty dir, got %v", err)
	}
}

func TestPrepareScanUpscales(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 100, 50))); err != nil {
		t.Fatal(err)
	}

	scan, err := PrepareScan(buf.Bytes(), 150, 300)
	if err != nil {
		t.Fatalf("PrepareScan failed: %v", err)
	}
	if scan.Bounds.Dx() != 200 || scan.Bounds.Dy() != 100 {
		t.Errorf("Bounds = %v, want 200x100", scan.Bounds)
	}
	if scan.DPI != 300 {
		t.Errorf("DPI = %v, want 300", scan.DPI)
	}

	if _, err := PrepareScan([]byte("not an image"), 300, 300); err == nil {
		t.Error("Expected decode error")
	}
}

func TestImagesCalibrate(t *testing.T) {
	dir := t.TempDir()
	p1 := writeScan(t, dir, "page-001.png")

	cols := []struct {
		text     string
		x, width int
	}{
		{"12-345", 30, 25}, {"Zalesie", 70, 40}, {"Polna", 150, 30}, {"1-9", 275, 20},
		{"Wola", 340, 30}, {"Kutno", 430, 30}, {"łódzkie", 505, 40},
	}
	var words []ocr.Word
	for _, y := range []int{700, 690, 680} {
		for _, c := range cols {
			words = append(words, box(c.text, c.x, y, c.width))
		}
	}

	opts := DefaultOptions()
	opts.DPI, opts.TargetDPI = 72, 72
	src := NewImages([]string{p1}, &fakeRecognizer{pages: [][]ocr.Word{words}}, opts)
	defer src.Close()

	var _ Calibrator = src

	p, err := src.Calibrate(context.Background(), nil, layout.DefaultColumnConfig())
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}

	want := []float64{63, 130, 228, 318, 400, 483}
	if len(p.Separators) != len(want) {
		t.Fatalf("Separators = %v, want %v", p.Separators, want)
	}
	for i := range want {
		if p.Separators[i] != want[i] {
			t.Errorf("Separators[%d] = %v, want %v", i, p.Separators[i], want[i])
		}
	}
}
