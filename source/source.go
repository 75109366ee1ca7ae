// Package source produces the raw rows of the postal code register.
//
// A [Source] reads pages in document order and returns one [model.RawRow]
// per physical table row. Three sources are provided:
//
//   - [PDF] reads positioned glyphs from the official PDF
//   - [Images] runs OCR over a directory of scanned pages
//   - [RawCSV] reads back a raw row dump written by an earlier run
//
// A page that cannot be read fails the whole extraction: continuation rows
// depend on the rows before them, so a gap would silently corrupt merges.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/pna/format"
	"github.com/tsawler/pna/layout"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/tables"
)

var (
	// ErrNoPages is returned when a source holds no pages.
	ErrNoPages = errors.New("source has no pages")

	// ErrPageRange is returned for an unparseable page range.
	ErrPageRange = errors.New("invalid page range")
)

// Source produces raw rows from register pages.
type Source interface {
	// PageCount returns the number of pages available.
	PageCount(ctx context.Context) (int, error)

	// Rows returns the rows of the given 1-indexed pages in document order.
	// An empty page list selects every page.
	Rows(ctx context.Context, pages []int) ([]model.RawRow, []Warning, error)

	// Close releases the underlying file.
	Close() error
}

// Warning is a non-fatal extraction issue.
type Warning struct {
	Page    int
	Message string
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// Options configures the sources.
type Options struct {
	// Profile is the column layout used to cut lines into cells
	Profile tables.Profile

	// Headers configures header and footer removal
	Headers layout.HeaderFooterConfig

	// OCRLanguage is the Tesseract language for scans (default: "pol")
	OCRLanguage string

	// DPI is the resolution the scans were made at (default: 300)
	DPI int

	// TargetDPI is the resolution scans are upscaled to before OCR (default: 300)
	TargetDPI int

	// MinConfidence drops OCR words below this confidence (default: 30)
	MinConfidence float64

	// Encoding of raw dumps: "utf-8", "windows-1250" or "iso-8859-2"
	Encoding string
}

// DefaultOptions returns the options for the 2025 register.
func DefaultOptions() Options {
	return Options{
		Profile:       tables.SpisPNA2025(),
		Headers:       layout.DefaultHeaderFooterConfig(),
		OCRLanguage:   "pol",
		DPI:           300,
		TargetDPI:     300,
		MinConfidence: 30,
		Encoding:      "utf-8",
	}
}

// Open opens path with the source matching fm. Unknown detects the format
// from the path.
func Open(path string, fm format.Format, opts Options) (Source, error) {
	if fm == format.Unknown {
		detected, err := format.DetectPath(path)
		if err != nil {
			return nil, fmt.Errorf("failed to detect format: %w", err)
		}
		fm = detected
	}

	switch fm {
	case format.PDF:
		return OpenPDF(path, opts)
	case format.RawCSV:
		return OpenRawCSV(path, opts)
	case format.ImageDir, format.Image:
		return OpenImages(path, opts)
	default:
		return nil, fmt.Errorf("unsupported source format: %s", fm)
	}
}

// ParsePageRange parses "start-end" or a single page number. Both ends are
// 1-indexed and inclusive. An empty string returns 0, 0 (all pages).
func ParsePageRange(s string) (start, end int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, nil
	}

	parts := strings.SplitN(s, "-", 2)
	start, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w %q", ErrPageRange, s)
	}
	end = start
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, fmt.Errorf("%w %q", ErrPageRange, s)
		}
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("%w %q", ErrPageRange, s)
	}
	return start, end, nil
}

// PageList expands an inclusive range into page numbers. A zero start
// returns nil (all pages).
func PageList(start, end int) []int {
	if start <= 0 {
		return nil
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// ResolvePages validates requested 1-indexed pages against the page count,
// removes duplicates and sorts them. No request selects every page.
func ResolvePages(requested []int, pageCount int) ([]int, error) {
	if pageCount <= 0 {
		return nil, ErrNoPages
	}

	if len(requested) == 0 {
		return PageList(1, pageCount), nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, p := range requested {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}

	sort.Ints(pages)
	return pages, nil
}

// pageText is the positioned text of one page.
type pageText struct {
	number    int
	height    float64
	fragments []layout.Fragment
}

// readPages reads the requested pages in order with read, failing on the
// first page that cannot be read.
func readPages(ctx context.Context, pages []int, count int, read func(int) (pageText, error)) ([]pageText, error) {
	resolved, err := ResolvePages(pages, count)
	if err != nil {
		return nil, err
	}

	texts := make([]pageText, 0, len(resolved))
	for _, n := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pt, err := read(n)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", n, err)
		}
		texts = append(texts, pt)
	}
	return texts, nil
}

// tableLines clips each page to the table area, groups it into lines and
// drops headers and footers.
func tableLines(pages []pageText, grid *tables.Grid, opts Options) []layout.PageLines {
	detector := layout.NewLineDetectorWithConfig(grid.LineConfig())

	pageLines := make([]layout.PageLines, len(pages))
	for i, p := range pages {
		pageLines[i] = layout.PageLines{
			Page:   p.number,
			Height: p.height,
			Lines:  detector.Detect(grid.Clip(p.fragments)),
		}
	}

	hf := layout.NewHeaderFooterDetectorWithConfig(opts.Headers).Detect(pageLines)
	for i := range pageLines {
		pageLines[i].Lines, _ = hf.Filter(pageLines[i])
	}
	return pageLines
}

// rowsFromPages turns positioned text into raw rows: clip to the table
// area, group into lines, drop headers and footers, cut into cells.
func rowsFromPages(pages []pageText, opts Options) ([]model.RawRow, []Warning, error) {
	grid, err := tables.NewGrid(opts.Profile)
	if err != nil {
		return nil, nil, err
	}

	var rows []model.RawRow
	var warnings []Warning
	for _, pl := range tableLines(pages, grid, opts) {
		pageRows := grid.Rows(pl.Page, pl.Lines)
		if len(pageRows) == 0 {
			warnings = append(warnings, Warning{Page: pl.Page, Message: "no table rows found"})
		}
		rows = append(rows, pageRows...)
	}
	return rows, warnings, nil
}

// Calibrator is implemented by sources that can derive column separators
// from page text.
type Calibrator interface {
	Calibrate(ctx context.Context, pages []int, cfg layout.ColumnConfig) (tables.Profile, error)
}

func calibrateFromPages(pages []pageText, opts Options, cfg layout.ColumnConfig) (tables.Profile, error) {
	grid, err := tables.NewGrid(opts.Profile)
	if err != nil {
		return tables.Profile{}, err
	}

	var lines []layout.Line
	for _, pl := range tableLines(pages, grid, opts) {
		lines = append(lines, pl.Lines...)
	}
	return tables.Calibrate(opts.Profile, lines, cfg)
}
