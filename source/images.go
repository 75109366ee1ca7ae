package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tsawler/pna/format"
	"github.com/tsawler/pna/layout"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/ocr"
	"github.com/tsawler/pna/tables"
)

// Recognizer finds words on a page image.
type Recognizer interface {
	Words(imageData []byte) ([]ocr.Word, error)
	Close() error
}

// Images reads register rows from scanned page images. Files are taken in
// name order; the first file is page 1.
type Images struct {
	files      []string
	recognizer Recognizer
	opts       Options
}

// OpenImages opens a directory of scans, or a single scan, with a Tesseract
// recognizer. It fails with ocr.ErrOCRNotEnabled unless built with -tags ocr.
func OpenImages(path string, opts Options) (*Images, error) {
	files, err := listScans(path)
	if err != nil {
		return nil, err
	}

	client, err := ocr.New()
	if err != nil {
		return nil, err
	}
	lang := opts.OCRLanguage
	if lang == "" {
		lang = DefaultOptions().OCRLanguage
	}
	if err := client.SetLanguage(lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetPageSegMode(ocr.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation: %w", err)
	}

	return NewImages(files, client, opts), nil
}

// NewImages creates an image source over the given files.
func NewImages(files []string, rec Recognizer, opts Options) *Images {
	return &Images{files: files, recognizer: rec, opts: opts}
}

func listScans(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && format.IsImageExt(e.Name()) {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoPages)
	}
	sort.Strings(files)
	return files, nil
}

// Close releases the recognizer.
func (s *Images) Close() error {
	if s.recognizer == nil {
		return nil
	}
	err := s.recognizer.Close()
	s.recognizer = nil
	return err
}

// PageCount returns the number of scans.
func (s *Images) PageCount(ctx context.Context) (int, error) {
	return len(s.files), nil
}

// Rows runs OCR over the requested pages and cuts the words into rows.
func (s *Images) Rows(ctx context.Context, pages []int) ([]model.RawRow, []Warning, error) {
	texts, err := readPages(ctx, pages, len(s.files), s.pageText)
	if err != nil {
		return nil, nil, err
	}
	return rowsFromPages(texts, s.opts)
}

// Calibrate derives the column separators of the configured profile from
// the recognized words of the requested pages.
func (s *Images) Calibrate(ctx context.Context, pages []int, cfg layout.ColumnConfig) (tables.Profile, error) {
	texts, err := readPages(ctx, pages, len(s.files), s.pageText)
	if err != nil {
		return tables.Profile{}, err
	}
	return calibrateFromPages(texts, s.opts, cfg)
}

func (s *Images) pageText(n int) (pageText, error) {
	data, err := os.ReadFile(s.files[n-1])
	if err != nil {
		return pageText{}, err
	}
	scan, err := PrepareScan(data, s.opts.DPI, s.opts.TargetDPI)
	if err != nil {
		return pageText{}, err
	}
	words, err := s.recognizer.Words(scan.PNG)
	if err != nil {
		return pageText{}, err
	}
	words = ocr.FilterConfidence(words, s.opts.MinConfidence)

	height := pixelsToPoints(scan.Bounds.Dy(), scan.DPI)
	return pageText{number: n, height: height, fragments: wordFragments(words, scan.DPI, height)}, nil
}

// wordFragments converts pixel boxes (origin top left) into fragments in
// PDF user space (origin bottom left, points).
func wordFragments(words []ocr.Word, dpi, pageHeight float64) []layout.Fragment {
	frags := make([]layout.Fragment, 0, len(words))
	for _, w := range words {
		h := pixelsToPoints(w.Box.Dy(), dpi)
		frags = append(frags, layout.Fragment{
			Text:     w.Text,
			X:        pixelsToPoints(w.Box.Min.X, dpi),
			Y:        pageHeight - pixelsToPoints(w.Box.Max.Y, dpi),
			Width:    pixelsToPoints(w.Box.Dx(), dpi),
			Height:   h,
			FontSize: h,
		})
	}
	return frags
}

func pixelsToPoints(px int, dpi float64) float64 {
	if dpi <= 0 {
		return float64(px)
	}
	return float64(px) * 72 / dpi
}
