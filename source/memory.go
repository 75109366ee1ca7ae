package source

import (
	"context"

	"github.com/tsawler/pna/model"
)

// Memory serves rows that are already in memory, such as rows produced by
// another extractor.
type Memory struct {
	rows  []model.RawRow
	pages int
}

// NewMemory creates a source over rows. The page count is the highest
// page number among the rows.
func NewMemory(rows []model.RawRow) *Memory {
	m := &Memory{rows: rows}
	for _, r := range rows {
		if r.Page > m.pages {
			m.pages = r.Page
		}
	}
	return m
}

// All returns every row in input order.
func (m *Memory) All() []model.RawRow {
	return m.rows
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

// PageCount returns the highest page number.
func (m *Memory) PageCount(ctx context.Context) (int, error) {
	return m.pages, nil
}

// Rows returns the rows of the requested pages in input order. A requested
// page without rows yields a warning.
func (m *Memory) Rows(ctx context.Context, pages []int) ([]model.RawRow, []Warning, error) {
	resolved, err := ResolvePages(pages, m.pages)
	if err != nil {
		return nil, nil, err
	}
	want := make(map[int]bool, len(resolved))
	for _, p := range resolved {
		want[p] = true
	}

	var out []model.RawRow
	present := make(map[int]bool)
	for _, r := range m.rows {
		if want[r.Page] {
			out = append(out, r)
			present[r.Page] = true
		}
	}

	var warnings []Warning
	for _, p := range resolved {
		if !present[p] {
			warnings = append(warnings, Warning{Page: p, Message: "no rows"})
		}
	}
	return out, warnings, nil
}
