package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlagKind is a validation finding attached to a [Record].
type FlagKind int

const (
	InvalidWojewodztwo FlagKind = iota
	NumericInPlaceName
	FieldTooLong
	MissingEssentialField
	InvalidPostalCodeFormat
	DuplicatePNACrossWojewodztwo
	UnreconciledContinuation

	numFlagKinds
)

var flagNames = [numFlagKinds]string{
	InvalidWojewodztwo:           "invalid_wojewodztwo",
	NumericInPlaceName:           "numeric_in_place_name",
	FieldTooLong:                 "field_too_long",
	MissingEssentialField:        "missing_essential_field",
	InvalidPostalCodeFormat:      "invalid_postal_code_format",
	DuplicatePNACrossWojewodztwo: "duplicate_pna_cross_wojewodztwo",
	UnreconciledContinuation:     "unreconciled_continuation",
}

// FlagKinds returns every flag kind in output column order.
func FlagKinds() []FlagKind {
	kinds := make([]FlagKind, numFlagKinds)
	for i := range kinds {
		kinds[i] = FlagKind(i)
	}
	return kinds
}

// String returns the column name of the flag.
func (k FlagKind) String() string {
	if k < 0 || k >= numFlagKinds {
		return fmt.Sprintf("flag(%d)", int(k))
	}
	return flagNames[k]
}

// ParseFlagKind maps a column name to its FlagKind.
func ParseFlagKind(name string) (FlagKind, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	for i, n := range flagNames {
		if n == name {
			return FlagKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// FlagSet is a set of FlagKinds. The zero value is empty.
// Flags can be added but there is no way to remove one.
type FlagSet uint16

// NewFlagSet returns a set holding the given kinds.
func NewFlagSet(kinds ...FlagKind) FlagSet {
	var s FlagSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add returns s with k included.
func (s FlagSet) Add(k FlagKind) FlagSet {
	if k < 0 || k >= numFlagKinds {
		return s
	}
	return s | 1<<uint(k)
}

// Union returns the kinds present in either set.
func (s FlagSet) Union(o FlagSet) FlagSet {
	return s | o
}

// Has reports whether k is in the set.
func (s FlagSet) Has(k FlagKind) bool {
	if k < 0 || k >= numFlagKinds {
		return false
	}
	return s&(1<<uint(k)) != 0
}

// Len returns the number of kinds in the set.
func (s FlagSet) Len() int {
	n := 0
	for _, k := range FlagKinds() {
		if s.Has(k) {
			n++
		}
	}
	return n
}

// Empty reports whether no flag is set.
func (s FlagSet) Empty() bool {
	return s == 0
}

// Kinds returns the kinds in the set in column order.
func (s FlagSet) Kinds() []FlagKind {
	var kinds []FlagKind
	for _, k := range FlagKinds() {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the flag names joined with "|".
func (s FlagSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, "|")
}

// MarshalJSON encodes the set as a list of flag names.
func (s FlagSet) MarshalJSON() ([]byte, error) {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return json.Marshal(names)
}

// UnmarshalJSON decodes a list of flag names.
func (s *FlagSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	var out FlagSet
	for _, n := range names {
		k, err := ParseFlagKind(n)
		if err != nil {
			return err
		}
		out = out.Add(k)
	}
	*s = out
	return nil
}
