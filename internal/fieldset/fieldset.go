// Package fieldset describes the fields a query may reference: which value types each field
// accepts, how its range bounds compare, which value grammar reads it and how order fields
// resolve their direction. Field sets are read-only once built and safe for concurrent use.
package fieldset

import (
	"slices"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/lexer"
)

// FieldSet is the read-only field registry consulted by the parser.
type FieldSet interface {
	// Name identifies the set in logs and telemetry.
	Name() string
	// Get returns the named field or an UnknownFieldError.
	Get(name string) (*FieldConfig, error)
	Has(name string) bool
	// All returns the fields in registration order.
	All() []*FieldConfig
}

// UnknownFieldError is returned by Get for a field that is not registered.
type UnknownFieldError struct {
	Field string
}

func (err UnknownFieldError) Error() string {
	return "field " + err.Field + " is not registered in the field set"
}

// GenericFieldSet is the FieldSet built by Builder.
type GenericFieldSet struct {
	fields map[string]*FieldConfig
	name   string
	order  []string
}

func (set *GenericFieldSet) Name() string {
	return set.name
}

func (set *GenericFieldSet) Get(name string) (*FieldConfig, error) {
	field, ok := set.fields[name]
	if !ok {
		return nil, errors.New(UnknownFieldError{Field: name})
	}

	return field, nil
}

func (set *GenericFieldSet) Has(name string) bool {
	_, ok := set.fields[name]
	return ok
}

func (set *GenericFieldSet) All() []*FieldConfig {
	fields := make([]*FieldConfig, 0, len(set.order))

	for _, name := range set.order {
		fields = append(fields, set.fields[name])
	}

	return fields
}

// Grammars returns the value grammars registered on the fields of set, keyed by field name.
func Grammars(set FieldSet) map[string]lexer.ValueGrammar {
	grammars := make(map[string]lexer.ValueGrammar)

	for _, field := range set.All() {
		if field.Grammar != nil {
			grammars[field.Name] = field.Grammar
		}
	}

	return grammars
}

// GrammarFields returns the names of the fields read by a custom value grammar, in
// registration order. Exporters write their values raw, see condition.WithRawFields.
func GrammarFields(set FieldSet) []string {
	var names []string

	for _, field := range set.All() {
		if field.Grammar != nil {
			names = append(names, field.Name)
		}
	}

	return names
}

// Builder collects fields for a GenericFieldSet.
type Builder struct {
	fields map[string]*FieldConfig
	name   string
	order  []string
}

func NewBuilder(name string) *Builder {
	return &Builder{name: name, fields: make(map[string]*FieldConfig)}
}

// Add registers a field, replacing one with the same name.
func (b *Builder) Add(field *FieldConfig) *Builder {
	if _, ok := b.fields[field.Name]; !ok {
		b.order = append(b.order, field.Name)
	}

	b.fields[field.Name] = field

	return b
}

func (b *Builder) Remove(name string) *Builder {
	delete(b.fields, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })

	return b
}

func (b *Builder) Has(name string) bool {
	_, ok := b.fields[name]
	return ok
}

// FieldSet returns the set. Fields added to the builder afterwards do not affect it.
func (b *Builder) FieldSet() *GenericFieldSet {
	fields := make(map[string]*FieldConfig, len(b.fields))

	for name, field := range b.fields {
		fields[name] = field
	}

	return &GenericFieldSet{
		name:   b.name,
		fields: fields,
		order:  slices.Clone(b.order),
	}
}
