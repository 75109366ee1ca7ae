// Package format detects which kind of register input a path holds.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates the register as a PDF document.
	PDF
	// RawCSV indicates a raw row dump written by an earlier run.
	RawCSV
	// Image indicates a single scanned page.
	Image
	// ImageDir indicates a directory of scanned pages.
	ImageDir
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case RawCSV:
		return "RawCSV"
	case Image:
		return "Image"
	case ImageDir:
		return "ImageDir"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case RawCSV:
		return ".csv"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Parse maps a configuration value ("pdf", "raw-csv", "images") to a Format.
// "auto" and "" return Unknown, meaning detect from the path.
func Parse(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Unknown, nil
	case "pdf":
		return PDF, nil
	case "raw-csv", "rawcsv", "csv":
		return RawCSV, nil
	case "image":
		return Image, nil
	case "images", "image-dir":
		return ImageDir, nil
	}
	return Unknown, fmt.Errorf("unknown source format %q", s)
}

// IsImageExt reports whether a file name has a scan image extension.
func IsImageExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return true
	}
	return false
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch {
	case ext == ".pdf":
		return PDF
	case ext == ".csv":
		return RawCSV
	case IsImageExt(filename):
		return Image
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from magic bytes alone.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}

	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		return Image
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return Image
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return Image
	}

	// Raw dumps start with their header row, possibly behind a UTF-8 BOM
	text := bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	if bytes.HasPrefix(text, []byte("page,row_index,")) {
		return RawCSV
	}

	return Unknown
}

// DetectFromReader inspects the first bytes of the content.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 512)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectPath determines the format of a file or directory. Directories are
// ImageDir; files are detected by content and then by extension.
func DetectPath(path string) (Format, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Unknown, err
	}
	if info.IsDir() {
		return ImageDir, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()

	fm, err := DetectFromReader(f)
	if err != nil {
		return Unknown, err
	}
	if fm != Unknown {
		return fm, nil
	}
	return Detect(path), nil
}
