// Package tables cuts text lines into register rows using fixed column
// positions.
//
// The postal code register is printed as a ruled-less table whose columns
// sit at the same X positions on every page. Rather than detecting the
// table, the package applies a [Profile]: the table area, the X positions of
// the column separators and the field printed in each column.
//
// # Profiles
//
// Profiles are registered globally and can be retrieved by name:
//
//	profile, ok := tables.GetProfile("spis-pna-2025")
//	grid, err := tables.NewGrid(profile)
//	rows := grid.Rows(page, lines)
//
// The built-in [SpisPNA2025] profile matches the 2025 edition of the
// register; [ParseArea] and [ParseSeparators] read overrides from
// configuration strings.
//
// # Cell Assignment
//
// [Grid.Rows] clips fragments to the table area, assigns every fragment of a
// line to the column band its center falls in, and assembles each band into
// cell text. Cells are returned in canonical [model.Field] order, whatever
// order the columns are printed in.
package tables
