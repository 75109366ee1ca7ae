// Package pna turns the official Polish postal code register (Oficjalny
// Spis Pocztowych Numerów Adresowych) into flagged records.
//
// Basic usage:
//
//	res, warnings, err := pna.Open("oficjalny_spis_pna_2025.pdf").
//	    PageRange(3, 1672).
//	    Process(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", pna.FormatWarnings(warnings))
//	}
//
// The pipeline reads raw table rows, merges continuation rows into
// records, optionally repairs gmina names merged into the number range,
// and validates every record. Records are never dropped: suspicious data
// is flagged for review.
//
// For lower-level control use the source, reconcile and validate packages
// directly.
package pna

import (
	"github.com/tsawler/pna/format"
	"github.com/tsawler/pna/model"
	"github.com/tsawler/pna/source"
)

// Open returns a Processor reading the register at path. The source is
// opened lazily by the terminal operation and closed when it returns.
//
// Example:
//
//	res, warnings, err := pna.Open("spis.pdf").Process(ctx)
func Open(path string) *Processor {
	return &Processor{
		path:    path,
		format:  format.Unknown,
		options: defaultOptions(),
	}
}

// FromSource creates a Processor over an already-opened source.
// The caller is responsible for closing the source.
//
// Example:
//
//	src := source.NewMemory(rows)
//	res, _, err := pna.FromSource(src).Process(ctx)
func FromSource(src source.Source) *Processor {
	return &Processor{
		src:        src,
		srcOpened:  true,
		ownsSource: false,
		options:    defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := pna.Must(pna.Open("spis.pdf").PageCount(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRecords wraps a call to Process and panics if the error is non-nil.
// It discards warnings and returns just the records.
//
// Example:
//
//	records := pna.MustRecords(pna.Open("spis.pdf").Process(ctx))
func MustRecords(res *Result, _ []Warning, err error) []model.Record {
	if err != nil {
		panic(err)
	}
	return res.Records
}
