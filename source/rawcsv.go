package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/tsawler/pna/model"
)

// RawCSV reads rows back from a raw row dump. The dump is read once on
// open; Rows filters the cached rows by page.
type RawCSV struct {
	*Memory
	path string
}

// OpenRawCSV reads a raw row dump written by an earlier run.
func OpenRawCSV(path string, opts Options) (*RawCSV, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw dump: %w", err)
	}
	defer f.Close()

	rows, err := ReadRawRows(f, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &RawCSV{Memory: NewMemory(rows), path: path}, nil
}

// Path returns the dump file name.
func (s *RawCSV) Path() string {
	return s.path
}

// Decoding returns the text encoding for a configuration name.
func Decoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "windows-1250", "cp1250":
		return charmap.Windows1250, nil
	case "iso-8859-2", "latin2":
		return charmap.ISO8859_2, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", name)
}

// ReadRawRows parses a raw dump. The header row must match
// [model.RawHeader]; a UTF-8 byte order mark is skipped.
func ReadRawRows(r io.Reader, enc string) ([]model.RawRow, error) {
	e, err := Decoding(enc)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(e.NewDecoder().Reader(r))
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte("\xEF\xBB\xBF")) {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = len(model.RawHeader())

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty raw dump")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, want := range model.RawHeader() {
		if strings.TrimSpace(header[i]) != want {
			return nil, fmt.Errorf("unexpected column %d %q, want %q", i+1, header[i], want)
		}
	}

	var rows []model.RawRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		page, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid page %q", line, rec[0])
		}
		idx, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid row_index %q", line, rec[1])
		}
		rows = append(rows, model.NewRawRow(page, idx, rec[2:]...))
	}
	return rows, nil
}
