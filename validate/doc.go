// Package validate flags suspicious register records without discarding them.
//
// [Validator.Validate] runs the per-record checks over every record in
// parallel, then builds a read-only [Index] of postal code to voivodeship and
// flags every record whose postal code appears under more than one
// voivodeship. The returned slice has the same length and order as the input.
//
// Basic usage:
//
//	v := validate.New(validate.DefaultConfig())
//	flagged := v.Validate(records)
//
// Voivodeship names are compared after [NormalizeRegion], which folds case,
// drops Polish diacritics and ignores hyphens and spaces.
//
// The numeral exceptions for place names live in an [Allowlist]. The default
// table accepts Roman numerals and Polish ordinal forms such as "3." or
// "1000-lecia"; operators can replace it with their own patterns.
package validate
