// Package model defines the records that flow through the postal code
// register pipeline.
//
// # Rows and Records
//
// A [RawRow] is one physical table row as read from a page: seven cells in
// [Field] order tagged with the page and row it came from. The reconciliation
// engine folds runs of raw rows into a [Record], remembering every
// contributing row in [Record.Sources].
//
// # Flags
//
// Validation attaches [FlagKind] values to records through a [FlagSet].
// A set only grows; nothing in the pipeline removes a flag once added.
//
//	rec.Flags = rec.Flags.Add(model.InvalidPostalCodeFormat)
//
// # Geometry
//
// [BBox] and [Point] describe positions in PDF user space for the layout and
// tables packages.
package model
