package model

import (
	"fmt"
	"strings"
)

// RawRow is one physical table row as produced by a row source: seven cells
// in canonical [Field] order plus the position it was read from.
// RawRows are never modified after they are produced.
type RawRow struct {
	Cells    [NumFields]string
	Page     int // 1-indexed page number
	RowIndex int // 0-indexed row within the page
}

// NewRawRow builds a RawRow from up to seven cells. Cells are trimmed;
// missing trailing cells are left empty.
func NewRawRow(page, rowIndex int, cells ...string) RawRow {
	r := RawRow{Page: page, RowIndex: rowIndex}
	for i := 0; i < len(cells) && i < NumFields; i++ {
		r.Cells[i] = strings.TrimSpace(cells[i])
	}
	return r
}

// Cell returns the text of the given column.
func (r RawRow) Cell(f Field) string {
	if !f.Valid() {
		return ""
	}
	return r.Cells[f]
}

// IsBlank reports whether every cell is empty.
func (r RawRow) IsBlank() bool {
	for _, c := range r.Cells {
		if c != "" {
			return false
		}
	}
	return true
}

// IsContinuation reports whether the row extends the previous record:
// it has no postal code but at least one other non-empty cell.
func (r RawRow) IsContinuation() bool {
	return r.Cells[PostalCode] == "" && !r.IsBlank()
}

// Ref returns the provenance of the row.
func (r RawRow) Ref() RowRef {
	return RowRef{Page: r.Page, RowIndex: r.RowIndex}
}

// RawHeader returns the column names of a raw row dump: page, row_index
// and the seven fields in canonical order.
func RawHeader() []string {
	h := []string{"page", "row_index"}
	for _, f := range Fields() {
		h = append(h, f.String())
	}
	return h
}

// RowRef identifies a RawRow by its position in the document.
type RowRef struct {
	Page     int `json:"page"`
	RowIndex int `json:"row_index"`
}

// String returns "p<page>:r<row>".
func (r RowRef) String() string {
	return fmt.Sprintf("p%d:r%d", r.Page, r.RowIndex)
}
