package input

import (
	"dario.cat/mergo"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/internal/lexer"
)

// Default structural limits.
const (
	DefaultMaxNesting = 5
	DefaultMaxValues  = 100
	DefaultMaxGroups  = 10
)

// Limits bound the size of a parsed condition. A zero limit means the default.
type Limits struct {
	// MaxNesting counts the root group as level 1.
	MaxNesting int
	// MaxValues is the number of values one field statement may list.
	MaxValues int
	// MaxGroups is the number of subgroups one group may hold.
	MaxGroups int
}

// DefaultLimits returns the default structural limits.
func DefaultLimits() Limits {
	return Limits{
		MaxNesting: DefaultMaxNesting,
		MaxValues:  DefaultMaxValues,
		MaxGroups:  DefaultMaxGroups,
	}
}

// WithDefaults returns limits with every zero field taken from DefaultLimits.
func (limits Limits) WithDefaults() Limits {
	if err := mergo.Merge(&limits, DefaultLimits()); err != nil {
		// mergo only fails on mismatched types
		panic(errors.New(err))
	}

	return limits
}

// ProcessorConfig is the read-only configuration of a parse. It may be shared by parsers
// running in parallel.
type ProcessorConfig struct {
	FieldSet fieldset.FieldSet
	// DefaultField receives the values listed without a field name.
	DefaultField string
	Profile      lexer.Profile
	Limits       Limits
}

// NewProcessorConfig returns a config with default limits and the default profile.
func NewProcessorConfig(fields fieldset.FieldSet) *ProcessorConfig {
	return &ProcessorConfig{
		FieldSet: fields,
		Limits:   DefaultLimits(),
	}
}
