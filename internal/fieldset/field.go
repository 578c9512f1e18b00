package fieldset

import (
	"strings"

	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"golang.org/x/text/cases"
)

const (
	// OrderFieldPrefix marks a field that takes part in the order clause.
	OrderFieldPrefix = "@"
	// PrivateFieldPrefix marks a field that cannot be used in user input.
	PrivateFieldPrefix = "_"
)

// FieldConfig describes one field of a FieldSet.
type FieldConfig struct {
	// Comparator checks range bounds. A nil comparator skips the check.
	Comparator ValueComparator
	// Grammar reads the raw values of the field in place of the default string grammar.
	Grammar lexer.ValueGrammar
	// DirectionAliases maps case-insensitive words to directions for order fields.
	DirectionAliases map[string]condition.Direction
	Name             string
	// Label is an alternative name accepted in the input.
	Label string
	// DefaultDirection is applied when the input has no order clause.
	DefaultDirection        condition.Direction
	SupportsRanges          bool
	SupportsCompares        bool
	SupportsPatternMatchers bool
}

// NewField returns a field that only accepts simple values.
func NewField(name string) *FieldConfig {
	return &FieldConfig{Name: name}
}

// Supports reports whether the field accepts values of the given type.
func (field *FieldConfig) Supports(valueType lexer.ValueType) bool {
	switch valueType {
	case lexer.ValueTypeSimple:
		return true
	case lexer.ValueTypeRange:
		return field.SupportsRanges
	case lexer.ValueTypeCompare:
		return field.SupportsCompares
	case lexer.ValueTypePatternMatch:
		return field.SupportsPatternMatchers
	case lexer.ValueTypeNone:
	}

	return false
}

func (field *FieldConfig) IsOrder() bool {
	return IsOrderField(field.Name)
}

func (field *FieldConfig) IsPrivate() bool {
	return IsPrivateField(field.Name)
}

// ResolveDirection turns an order value into a direction. Aliases and ASC/DESC match in any
// letter case.
func (field *FieldConfig) ResolveDirection(value string) (condition.Direction, bool) {
	// a Caser is stateful, it cannot be shared between parsers running in parallel
	folder := cases.Fold()
	folded := folder.String(value)

	for alias, dir := range field.DirectionAliases {
		if folder.String(alias) == folded {
			return dir, true
		}
	}

	dir, err := condition.ParseDirection(value)
	if err != nil {
		return "", false
	}

	return dir, true
}

// IsOrderField reports whether name addresses the order clause.
func IsOrderField(name string) bool {
	return strings.HasPrefix(name, OrderFieldPrefix)
}

// IsPrivateField reports whether name is reserved for internal use.
func IsPrivateField(name string) bool {
	return strings.HasPrefix(name, PrivateFieldPrefix)
}
