package source

import (
	"context"
	"fmt"
	"os"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/tsawler/pna/layout"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/tables"
)

// defaultPageHeight is A4 in points, used when a page has no MediaBox.
const defaultPageHeight = 842.0

// PDF reads register rows from the positioned glyphs of a PDF file.
type PDF struct {
	path   string
	file   *os.File
	reader *lpdf.Reader
	opts   Options
}

// OpenPDF opens a PDF file. The caller must Close it.
func OpenPDF(path string, opts Options) (*PDF, error) {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &PDF{path: path, file: f, reader: r, opts: opts}, nil
}

// Close releases the file. It is safe to call Close multiple times.
func (p *PDF) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// PageCount returns the number of pages in the document.
func (p *PDF) PageCount(ctx context.Context) (int, error) {
	if p.reader == nil {
		return 0, fmt.Errorf("PDF %s is closed", p.path)
	}
	return p.reader.NumPage(), nil
}

// Rows extracts the rows of the requested pages.
func (p *PDF) Rows(ctx context.Context, pages []int) ([]model.RawRow, []Warning, error) {
	texts, err := p.readPages(ctx, pages)
	if err != nil {
		return nil, nil, err
	}
	return rowsFromPages(texts, p.opts)
}

// Calibrate derives the column separators of the configured profile from
// the text of the requested pages.
func (p *PDF) Calibrate(ctx context.Context, pages []int, cfg layout.ColumnConfig) (tables.Profile, error) {
	texts, err := p.readPages(ctx, pages)
	if err != nil {
		return tables.Profile{}, err
	}
	return calibrateFromPages(texts, p.opts, cfg)
}

func (p *PDF) readPages(ctx context.Context, pages []int) ([]pageText, error) {
	count, err := p.PageCount(ctx)
	if err != nil {
		return nil, err
	}
	return readPages(ctx, pages, count, p.pageText)
}

// pageText reads the glyphs of one page. The PDF decoder panics on some
// malformed content streams; that is reported as an error.
func (p *PDF) pageText(n int) (pt pageText, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while decoding page content: %v", r)
		}
	}()

	page := p.reader.Page(n)
	if page.V.IsNull() {
		return pageText{}, fmt.Errorf("page object missing")
	}

	content := page.Content()
	frags := make([]layout.Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		frags = append(frags, layout.Fragment{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			Height:   t.FontSize,
			FontSize: t.FontSize,
		})
	}

	return pageText{number: n, height: pageHeight(page), fragments: frags}, nil
}

// pageHeight reads the MediaBox height, following inherited values up the
// page tree.
func pageHeight(page lpdf.Page) float64 {
	for v := page.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() == lpdf.Array && box.Len() == 4 {
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if h < 0 {
				h = -h
			}
			if h > 0 {
				return h
			}
		}
	}
	return defaultPageHeight
}
