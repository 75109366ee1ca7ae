// Package layout turns positioned text on a page into text lines.
//
// Row sources hand the package a page worth of [Fragment] values, either PDF
// glyphs or OCR words. The [LineDetector] groups them by baseline into
// [Line] values sorted top to bottom, each with its fragments sorted left to
// right:
//
//	detector := layout.NewLineDetector()
//	lines := detector.Detect(fragments)
//
// The [HeaderFooterDetector] removes the parts of a page that are not
// register rows: lines carrying the register's title, column header,
// copyright and page number keywords, and lines that repeat at the same
// position across many pages.
//
// The [ColumnDetector] finds the whitespace gutters that run down a table
// across most of its lines. It is used to calibrate column separators when
// the printed layout of the register changes.
//
// [AssembleText] joins fragments into text, inserting a space wherever the
// horizontal gap is wider than a fraction of the font size. It is used both
// for whole lines and for individual table cells.
package layout
