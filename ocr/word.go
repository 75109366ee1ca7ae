// Package ocr reads word boxes from scanned register pages.
//
// The Tesseract engine is wrapped via gosseract and only compiled in with
// the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract and its Polish language data to be installed. On
// Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-pol
//
// Without the tag every [Client] operation returns [ErrOCRNotEnabled].
package ocr

import (
	"errors"
	"image"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Word is one recognized word and its box in image pixels
// (origin top left).
type Word struct {
	Text       string
	Box        image.Rectangle
	Confidence float64 // 0-100
}

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract.
const (
	PSM_AUTO          PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK  PageSegMode = 6  // Single uniform block of text
	PSM_SPARSE_TEXT   PageSegMode = 11 // Find as much text as possible
)

// FilterConfidence drops words below the given confidence.
func FilterConfidence(words []Word, min float64) []Word {
	out := words[:0:0]
	for _, w := range words {
		if w.Confidence >= min {
			out = append(out, w)
		}
	}
	return out
}
