package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one entry of the place name numeral allowlist.
type Pattern struct {
	Name string
	Expr *regexp.Regexp
}

// Allowlist holds the token patterns that may appear in a place name without
// raising numeric_in_place_name. A token is a whitespace separated word with
// surrounding punctuation removed.
type Allowlist []Pattern

// DefaultAllowlist returns the built-in table: Roman numerals and Polish
// ordinal forms.
func DefaultAllowlist() Allowlist {
	return Allowlist{
		{Name: "roman", Expr: regexp.MustCompile(`^[IVXLCDM]+$`)},
		{Name: "ordinal", Expr: regexp.MustCompile(`^\d+\.$`)},
		{Name: "ordinal-suffix", Expr: regexp.MustCompile(`^\d+-(go|ego|gi|ci|ty|ta|te|cia|lecia)$`)},
	}
}

// ParseAllowlist compiles one pattern per expression. Expressions are
// anchored if they are not already.
func ParseAllowlist(exprs []string) (Allowlist, error) {
	var list Allowlist
	for i, e := range exprs {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, "^") {
			e = "^" + e
		}
		if !strings.HasSuffix(e, "$") {
			e += "$"
		}
		re, err := regexp.Compile(e)
		if err != nil {
			return nil, fmt.Errorf("allowlist entry %d: %w", i+1, err)
		}
		list = append(list, Pattern{Name: fmt.Sprintf("custom-%d", i+1), Expr: re})
	}
	return list, nil
}

// Allows reports whether the token matches any entry.
func (a Allowlist) Allows(token string) bool {
	for _, p := range a {
		if p.Expr.MatchString(token) {
			return true
		}
	}
	return false
}

// numeralTokens returns the digit-bearing tokens of s that the allowlist
// does not accept.
func (a Allowlist) numeralTokens(s string) []string {
	var bad []string
	for _, tok := range strings.Fields(s) {
		tok = strings.Trim(tok, "()[],;:\"'")
		if !strings.ContainsAny(tok, "0123456789") {
			continue
		}
		if !a.Allows(tok) {
			bad = append(bad, tok)
		}
	}
	return bad
}
