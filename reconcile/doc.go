// Package reconcile folds physical table rows into logical register records.
//
// The register prints one logical entry per postal code line, but long place
// names, street names and number ranges wrap onto following physical rows
// that carry no postal code of their own. [Reconcile] walks the rows in
// document order and attaches every such continuation row to the record that
// is currently open.
//
// # Merge Pass
//
// A single pass is a two-state machine (no open record, open record) driven
// by [Step]. Continuation text is appended field by field: a field ending in
// a hyphen is rejoined without a space ("Długa-" + "polna" = "Długapolna"),
// otherwise the fragments are separated by one space. Number ranges keep the
// hyphen because there it is the range operator ("12-" + "20" = "12-20").
//
// # Fixed Point
//
// The pass is repeated over its own output until the number of records stops
// changing. The loop is bounded; records still being merged when the bound is
// reached are marked Unconverged so validation can flag them.
//
// Every raw row ends up in exactly one record ([model.Record.Sources]) and
// running the engine again over its own output changes nothing.
package reconcile
