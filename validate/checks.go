package validate

import (
	"regexp"
	"unicode/utf8"

	"github.com/tsawler/pna/model"
)

var postalCodePattern = regexp.MustCompile(`^\d{2}-\d{3}$`)

// ValidPostalCode reports whether s has the DD-DDD form.
func ValidPostalCode(s string) bool {
	return postalCodePattern.MatchString(s)
}

// checkRecord runs every per-record check and returns the flags raised.
func (v *Validator) checkRecord(rec model.Record) model.FlagSet {
	var flags model.FlagSet

	if rec.Wojewodztwo != "" && !v.regions.contains(rec.Wojewodztwo) {
		flags = flags.Add(model.InvalidWojewodztwo)
	}

	if len(v.config.Allowlist.numeralTokens(rec.PlaceName)) > 0 {
		flags = flags.Add(model.NumericInPlaceName)
	}

	for _, f := range model.Fields() {
		if utf8.RuneCountInString(rec.Get(f)) > v.config.limit(f) {
			flags = flags.Add(model.FieldTooLong)
			break
		}
	}

	if rec.Orphan {
		flags = flags.Add(model.MissingEssentialField)
	}
	for _, f := range model.EssentialFields() {
		if rec.Get(f) == "" {
			flags = flags.Add(model.MissingEssentialField)
			break
		}
	}

	if rec.PostalCode != "" && !ValidPostalCode(rec.PostalCode) {
		flags = flags.Add(model.InvalidPostalCodeFormat)
	}

	if rec.Unconverged {
		flags = flags.Add(model.UnreconciledContinuation)
	}

	return flags
}
