package condition

import "strings"

// PatternType is the kind of test a PatternMatch performs.
type PatternType string

const (
	PatternContains   PatternType = "CONTAINS"
	PatternStartsWith PatternType = "STARTS_WITH"
	PatternEndsWith   PatternType = "ENDS_WITH"
	PatternEquals     PatternType = "EQUALS"
	PatternRegex      PatternType = "REGEX"

	PatternNotContains   PatternType = "NOT_CONTAINS"
	PatternNotStartsWith PatternType = "NOT_STARTS_WITH"
	PatternNotEndsWith   PatternType = "NOT_ENDS_WITH"
	PatternNotEquals     PatternType = "NOT_EQUALS"
	PatternNotRegex      PatternType = "NOT_REGEX"
)

const negatedPrefix = "NOT_"

var patternTypes = map[PatternType]struct{}{
	PatternContains:      {},
	PatternStartsWith:    {},
	PatternEndsWith:      {},
	PatternEquals:        {},
	PatternRegex:         {},
	PatternNotContains:   {},
	PatternNotStartsWith: {},
	PatternNotEndsWith:   {},
	PatternNotEquals:     {},
	PatternNotRegex:      {},
}

// Valid reports whether t is one of the known pattern types.
func (t PatternType) Valid() bool {
	_, ok := patternTypes[t]
	return ok
}

// IsNegated reports whether the pattern must not match.
func (t PatternType) IsNegated() bool {
	return strings.HasPrefix(string(t), negatedPrefix)
}

// Base returns the type without negation.
func (t PatternType) Base() PatternType {
	return PatternType(strings.TrimPrefix(string(t), negatedPrefix))
}

// Negate returns the opposite type.
func (t PatternType) Negate() PatternType {
	if t.IsNegated() {
		return t.Base()
	}

	return negatedPrefix + t
}

// Range is a lower and upper bound with independent inclusiveness.
type Range struct {
	Lower          string `json:"lower"`
	Upper          string `json:"upper"`
	LowerInclusive bool   `json:"lower_inclusive"`
	UpperInclusive bool   `json:"upper_inclusive"`
}

// NewRange returns a range that includes both bounds.
func NewRange(lower, upper string) Range {
	return Range{Lower: lower, Upper: upper, LowerInclusive: true, UpperInclusive: true}
}

// Compare applies Operator (`<`, `<=`, `>`, `>=` or `<>`) to Value.
type Compare struct {
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// PatternMatch is a substring, prefix, suffix, equality or regex test.
type PatternMatch struct {
	Type            PatternType `json:"type"`
	Value           string      `json:"value"`
	CaseInsensitive bool        `json:"case_insensitive,omitempty"`
}

// CompareOperators lists the operators accepted by Compare.
var CompareOperators = []string{"<>", "<=", ">=", "<", ">"}
