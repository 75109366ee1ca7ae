package model

import "fmt"

// Field identifies one of the seven columns of the postal code register.
// The numeric order is the canonical cell order of a [RawRow] and the
// column order of the output schema.
type Field int

const (
	PostalCode Field = iota
	Street
	NumberRange
	PlaceName
	Gmina
	Powiat
	Wojewodztwo
)

// NumFields is the width of a [RawRow].
const NumFields = 7

var fieldNames = [NumFields]string{
	PostalCode:  "postal_code",
	Street:      "street",
	NumberRange: "number_range",
	PlaceName:   "place_name",
	Gmina:       "gmina",
	Powiat:      "powiat",
	Wojewodztwo: "wojewodztwo",
}

// Fields returns all fields in canonical order.
func Fields() []Field {
	return []Field{PostalCode, Street, NumberRange, PlaceName, Gmina, Powiat, Wojewodztwo}
}

// EssentialFields are the fields a complete record must carry.
func EssentialFields() []Field {
	return []Field{PostalCode, PlaceName, Gmina, Powiat, Wojewodztwo}
}

// String returns the schema column name of the field.
func (f Field) String() string {
	if f < 0 || int(f) >= NumFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Valid reports whether f names one of the seven columns.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < NumFields
}

// ParseField maps a schema column name back to its Field.
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", name)
}
