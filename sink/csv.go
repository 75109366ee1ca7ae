// Package sink writes records and raw rows to files and databases.
package sink

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

	"github.com/tsawler/pna/model"
)

// Columns selects the flag columns of the CSV output.
type Columns struct {
	// SkipFlags omits every flag column
	SkipFlags bool

	// Suppress omits individual flag columns
	Suppress model.FlagSet
}

// FlagKinds returns the flag columns that are written, in order.
func (c Columns) FlagKinds() []model.FlagKind {
	if c.SkipFlags {
		return nil
	}
	var kinds []model.FlagKind
	for _, k := range model.FlagKinds() {
		if !c.Suppress.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Header returns the output header: the seven fields followed by one
// column per written flag.
func (c Columns) Header() []string {
	header := make([]string, 0, model.NumFields+len(model.FlagKinds()))
	for _, f := range model.Fields() {
		header = append(header, f.String())
	}
	for _, k := range c.FlagKinds() {
		header = append(header, k.String())
	}
	return header
}

// WriteCSV writes records with the selected columns.
func WriteCSV(w io.Writer, records []model.Record, cols Columns) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols.Header()); err != nil {
		return err
	}

	kinds := cols.FlagKinds()
	row := make([]string, 0, model.NumFields+len(kinds))
	for _, rec := range records {
		row = row[:0]
		for _, v := range rec.Values() {
			row = append(row, v)
		}
		for _, k := range kinds {
			row = append(row, strconv.FormatBool(rec.Flags.Has(k)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes records to path, replacing any existing file.
func WriteCSVFile(path string, records []model.Record, cols Columns) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteCSV(w, records, cols)
	})
}

// ReadRecords reads records written by [WriteCSV]. The seven field columns
// are required; flag columns are optional and may appear in any order.
// Unknown columns are ignored.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty record file")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	fieldCol := make(map[model.Field]int)
	flagCol := make(map[model.FlagKind]int)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if f, err := model.ParseField(name); err == nil {
			fieldCol[f] = i
			continue
		}
		if k, err := model.ParseFlagKind(name); err == nil {
			flagCol[k] = i
		}
	}
	for _, f := range model.Fields() {
		if _, ok := fieldCol[f]; !ok {
			return nil, fmt.Errorf("missing column %q", f)
		}
	}

	var records []model.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(row) != len(header) {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", line, len(header), len(row))
		}

		var rec model.Record
		for f, i := range fieldCol {
			rec = rec.With(f, row[i])
		}
		for k, i := range flagCol {
			set, err := strconv.ParseBool(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("line %d: column %s: %w", line, k, err)
			}
			if set {
				rec.Flags = rec.Flags.Add(k)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadRecordsFile reads a record CSV from path.
func ReadRecordsFile(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := ReadRecords(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// WriteRawRows writes the raw row dump: page, row index and the seven
// cells of every row.
func WriteRawRows(w io.Writer, rows []model.RawRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.RawHeader()); err != nil {
		return err
	}

	line := make([]string, 0, 2+model.NumFields)
	for _, r := range rows {
		line = append(line[:0], strconv.Itoa(r.Page), strconv.Itoa(r.RowIndex))
		line = append(line, r.Cells[:]...)
		if err := cw.Write(line); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteRawRowsFile writes the raw row dump to path.
func WriteRawRowsFile(path string, rows []model.RawRow) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteRawRows(w, rows)
	})
}

// writeFile writes through a buffered file and reports close errors.
func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return bw.Flush()
}
