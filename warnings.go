package pna

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal processing issue.
type WarningCode string

const (
	// WarnExtraction is a page-level issue reported by the source,
	// such as a page without table rows
	WarnExtraction WarningCode = "extraction"

	// WarnOrphanRows reports continuation rows with no record to join
	WarnOrphanRows WarningCode = "orphan_rows"

	// WarnUnconverged reports that reconciliation hit its pass limit
	WarnUnconverged WarningCode = "unconverged"

	// WarnGminaRepaired reports records whose gmina was split out of the
	// number range
	WarnGminaRepaired WarningCode = "gmina_repaired"

	// WarnDuplicateCodes reports postal codes seen in several voivodeships
	WarnDuplicateCodes WarningCode = "duplicate_codes"
)

// Warning is a non-fatal issue. Processing succeeded but the results
// deserve a look.
type Warning struct {
	Code    WarningCode
	Message string

	// Page is the 1-indexed page the warning concerns, or 0
	Page int
}

func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("[%s] page %d: %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Code, w.Message)
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
