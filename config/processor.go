package config

import (
	"context"

	"dario.cat/mergo"
	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/internal/input"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/fieldquery/fieldquery/options"
)

// LoadProcessorConfig reads the configuration file and turns it into a ProcessorConfig.
// Profile, default field and non-zero limits from opts override the file.
func LoadProcessorConfig(ctx context.Context, opts *options.QueryOptions) (*input.ProcessorConfig, error) {
	cfg, err := ReadQueryConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyOptions(opts); err != nil {
		return nil, err
	}

	return cfg.ProcessorConfig()
}

// ApplyOptions overrides the file settings with the ones set from flags.
func (cfg *QueryConfig) ApplyOptions(opts *options.QueryOptions) error {
	if opts.Profile != "" {
		cfg.Profile = opts.Profile
	}

	if opts.DefaultField != "" {
		cfg.DefaultField = opts.DefaultField
	}

	if cfg.Limits == nil {
		cfg.Limits = new(LimitsConfig)
	}

	overrides := LimitsConfig{
		MaxNesting: opts.Limits.MaxNesting,
		MaxValues:  opts.Limits.MaxValues,
		MaxGroups:  opts.Limits.MaxGroups,
	}

	if err := mergo.Merge(cfg.Limits, overrides, mergo.WithOverride); err != nil {
		return errors.New(err)
	}

	return nil
}

// ProcessorConfig validates the configuration and builds the parser configuration. Every
// invalid setting is reported, not only the first.
func (cfg *QueryConfig) ProcessorConfig() (*input.ProcessorConfig, error) {
	errs := &errors.MultiError{}

	profile, err := lexer.ParseProfile(cfg.Profile)
	if err != nil {
		errs = errs.Append(err)
	}

	fields, err := cfg.FieldSet()
	if err != nil {
		errs = errs.Append(errors.UnwrapMultiErrors(err)...)
	}

	if cfg.DefaultField != "" && fields != nil && !fields.Has(cfg.DefaultField) {
		errs = errs.Append(errors.New(UnknownDefaultFieldError{Field: cfg.DefaultField}))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	procCfg := input.NewProcessorConfig(fields)
	procCfg.Profile = profile
	procCfg.DefaultField = cfg.DefaultField

	if cfg.Limits != nil {
		procCfg.Limits = input.Limits{
			MaxNesting: cfg.Limits.MaxNesting,
			MaxValues:  cfg.Limits.MaxValues,
			MaxGroups:  cfg.Limits.MaxGroups,
		}.WithDefaults()
	}

	return procCfg, nil
}

// FieldSet builds the field set from the field blocks, in file order.
func (cfg *QueryConfig) FieldSet() (*fieldset.GenericFieldSet, error) {
	var (
		errs    = &errors.MultiError{}
		builder = fieldset.NewBuilder("")
	)

	for i := range cfg.Fields {
		block := &cfg.Fields[i]

		if builder.Has(block.Name) {
			errs = errs.Append(errors.New(DuplicateFieldError{Field: block.Name}))
			continue
		}

		field, err := block.fieldConfig()
		if err != nil {
			errs = errs.Append(errors.UnwrapMultiErrors(err)...)
			continue
		}

		builder.Add(field)
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return builder.FieldSet(), nil
}

func (block *FieldConfig) fieldConfig() (*fieldset.FieldConfig, error) {
	var (
		errs  = &errors.MultiError{}
		field = &fieldset.FieldConfig{
			Name:                    block.Name,
			Label:                   block.Label,
			SupportsRanges:          block.Ranges,
			SupportsCompares:        block.Compares,
			SupportsPatternMatchers: block.PatternMatchers,
		}
		invalid = func(err error) {
			errs = errs.Append(errors.New(InvalidFieldError{Field: block.Name, Err: err}))
		}
	)

	comparator, err := fieldset.ComparatorByName(block.Comparator)
	if err != nil {
		invalid(err)
	}

	field.Comparator = comparator

	if block.Grammar != "" {
		grammar, err := fieldset.GrammarByName(block.Grammar)
		if err != nil {
			invalid(err)
		}

		field.Grammar = grammar
	}

	if block.DefaultDirection != "" || len(block.Aliases) > 0 {
		if !fieldset.IsOrderField(block.Name) {
			invalid(errors.Errorf("default_direction and aliases require an order field (%s%s)", fieldset.OrderFieldPrefix, block.Name))
		}
	}

	if block.DefaultDirection != "" {
		dir, err := condition.ParseDirection(block.DefaultDirection)
		if err != nil {
			invalid(err)
		}

		field.DefaultDirection = dir
	}

	if len(block.Aliases) > 0 {
		field.DirectionAliases = make(map[string]condition.Direction, len(block.Aliases))

		for alias, value := range block.Aliases {
			dir, err := condition.ParseDirection(value)
			if err != nil {
				invalid(errors.Errorf("alias %q: %w", alias, err))
				continue
			}

			field.DirectionAliases[alias] = dir
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return field, nil
}
