// Package config reads the HCL file that describes the field set, the structural limits, the
// default field and the lexer profile:
//
//	profile       = "default"
//	default_field = "name"
//
//	limits {
//	  max_values = 50
//	}
//
//	field "id" {
//	  comparator = "number"
//	  ranges     = true
//	  compares   = true
//	}
//
//	field "@id" {
//	  default_direction = "ASC"
//	  aliases           = { up = "ASC", down = "DESC" }
//	}
//
// Attribute expressions may call get_env("NAME", "default").
package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/options"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/mitchellh/go-homedir"
)

// QueryConfig is the decoded configuration file.
type QueryConfig struct {
	Limits       *LimitsConfig `hcl:"limits,block"`
	Profile      string        `hcl:"profile,optional"`
	DefaultField string        `hcl:"default_field,optional"`
	Fields       []FieldConfig `hcl:"field,block"`
}

// LimitsConfig mirrors input.Limits; omitted attributes keep their defaults.
type LimitsConfig struct {
	MaxNesting int `hcl:"max_nesting,optional"`
	MaxValues  int `hcl:"max_values,optional"`
	MaxGroups  int `hcl:"max_groups,optional"`
}

// FieldConfig is one `field "name" { ... }` block.
type FieldConfig struct {
	Aliases          map[string]string `hcl:"aliases,optional"`
	Name             string            `hcl:"name,label"`
	Label            string            `hcl:"label,optional"`
	Comparator       string            `hcl:"comparator,optional"`
	Grammar          string            `hcl:"grammar,optional"`
	DefaultDirection string            `hcl:"default_direction,optional"`
	Ranges           bool              `hcl:"ranges,optional"`
	Compares         bool              `hcl:"compares,optional"`
	PatternMatchers  bool              `hcl:"pattern_matchers,optional"`
}

// FindConfigPath returns the config path to read: opts.ConfigPath with `~` expanded, or
// DefaultConfigPath in the working directory.
func FindConfigPath(opts *options.QueryOptions) (string, error) {
	if opts.ConfigPath == "" {
		return filepath.Join(opts.WorkingDir, options.DefaultConfigPath), nil
	}

	path, err := homedir.Expand(opts.ConfigPath)
	if err != nil {
		return "", errors.New(err)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(opts.WorkingDir, path)
	}

	return filepath.Clean(path), nil
}

// ReadQueryConfig locates, parses and decodes the configuration file.
func ReadQueryConfig(ctx context.Context, opts *options.QueryOptions) (*QueryConfig, error) {
	configPath, err := FindConfigPath(opts)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(ConfigNotFoundError{Path: configPath})
		}

		return nil, errors.New(err)
	}

	opts.Logger.Debugf("Reading config %s", configPath)

	file, err := NewParser(WithLogger(opts.Logger)).ParseFromFile(configPath)
	if err != nil {
		return nil, err
	}

	return file.Decode(ctx, opts)
}

// ParseQueryConfigString decodes content as if it was read from configPath. The extension of
// configPath selects HCL or JSON syntax.
func ParseQueryConfigString(ctx context.Context, opts *options.QueryOptions, content, configPath string) (*QueryConfig, error) {
	file, err := NewParser(WithLogger(opts.Logger)).ParseFromString(content, configPath)
	if err != nil {
		return nil, err
	}

	return file.Decode(ctx, opts)
}

// Decode decodes the file body into a QueryConfig.
func (file *File) Decode(_ context.Context, opts *options.QueryOptions) (*QueryConfig, error) {
	cfg := new(QueryConfig)

	if diags := gohcl.DecodeBody(file.Body, newEvalContext(opts), cfg); diags.HasErrors() {
		file.logger.Warnf("Failed to decode config %s: %v", file.ConfigPath, diags)

		return nil, errors.New(diags)
	}

	return cfg, nil
}
