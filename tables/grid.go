package tables

import (
	"sort"

	"github.com/tsawler/pna/layout"
	"github.com/tsawler/pna/model"
)

// Grid assigns text to the columns of a [Profile]
type Grid struct {
	profile Profile
}

// NewGrid creates a grid for a validated profile
func NewGrid(p Profile) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seps := make([]float64, len(p.Separators))
	copy(seps, p.Separators)
	p.Separators = seps
	return &Grid{profile: p}, nil
}

// Profile returns the grid's profile
func (g *Grid) Profile() Profile {
	return g.profile
}

// LineConfig returns the line detection settings for the profile
func (g *Grid) LineConfig() layout.LineConfig {
	cfg := layout.DefaultLineConfig()
	cfg.Tolerance = g.profile.RowTolerance
	return cfg
}

// Clip keeps the fragments whose center lies in the table area
func (g *Grid) Clip(frags []layout.Fragment) []layout.Fragment {
	if g.profile.Area.IsZero() {
		return frags
	}
	out := make([]layout.Fragment, 0, len(frags))
	for _, f := range frags {
		if g.profile.Area.Contains(f.Center()) {
			out = append(out, f)
		}
	}
	return out
}

// Column returns the column index for an X position
func (g *Grid) Column(x float64) int {
	return sort.Search(len(g.profile.Separators), func(i int) bool {
		return g.profile.Separators[i] > x
	})
}

// Cells splits one line into cells in canonical field order
func (g *Grid) Cells(line layout.Line) [model.NumFields]string {
	bands := make([][]layout.Fragment, len(g.profile.Columns))
	for _, f := range line.Fragments {
		col := g.Column(f.Center().X)
		bands[col] = append(bands[col], f)
	}

	var cells [model.NumFields]string
	for col, frags := range bands {
		layout.SortByX(frags)
		cells[g.profile.Columns[col]] = layout.AssembleText(frags)
	}
	return cells
}

// Rows converts the lines of one page into raw rows. Blank rows are
// dropped; row indexes count the rows that are kept.
func (g *Grid) Rows(page int, lines []layout.Line) []model.RawRow {
	rows := make([]model.RawRow, 0, len(lines))
	for _, line := range lines {
		row := model.RawRow{Cells: g.Cells(line), Page: page, RowIndex: len(rows)}
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}
