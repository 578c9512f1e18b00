package config_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldquery/fieldquery/config"
	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/internal/input"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/fieldquery/fieldquery/options"
	"github.com/fieldquery/fieldquery/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
profile       = "legacy"
default_field = "name"

limits {
  max_values = 50
}

field "id" {
  comparator = "number"
  ranges     = true
  compares   = true
}

field "name" {
  label            = "first-name"
  pattern_matchers = true
}

field "geo" {
  grammar = "geo-point"
  ranges  = true
}

field "@id" {
  default_direction = get_env("ID_ORDER", "desc")
  aliases           = { up = "ASC", down = "desc" }
}
`

func newOptions(t *testing.T) *options.QueryOptions {
	t.Helper()

	opts := options.NewQueryOptionsWithWriters(new(bytes.Buffer), new(bytes.Buffer))
	opts.WorkingDir = t.TempDir()
	opts.Logger = log.New(log.WithOutput(new(bytes.Buffer)))

	return opts
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadProcessorConfig(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)
	writeConfig(t, opts.WorkingDir, options.DefaultConfigPath, testConfig)

	cfg, err := config.LoadProcessorConfig(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, lexer.LegacyProfile, cfg.Profile)
	assert.Equal(t, "name", cfg.DefaultField)
	assert.Equal(t, input.Limits{
		MaxNesting: input.DefaultMaxNesting,
		MaxValues:  50,
		MaxGroups:  input.DefaultMaxGroups,
	}, cfg.Limits)

	var names []string
	for _, field := range cfg.FieldSet.All() {
		names = append(names, field.Name)
	}

	assert.Equal(t, []string{"id", "name", "geo", "@id"}, names)

	id, err := cfg.FieldSet.Get("id")
	require.NoError(t, err)
	assert.Equal(t, fieldset.NumberComparator{}, id.Comparator)
	assert.True(t, id.SupportsRanges)
	assert.True(t, id.SupportsCompares)
	assert.False(t, id.SupportsPatternMatchers)

	name, err := cfg.FieldSet.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "first-name", name.Label)
	assert.Nil(t, name.Comparator)

	geo, err := cfg.FieldSet.Get("geo")
	require.NoError(t, err)
	assert.NotNil(t, geo.Grammar)

	order, err := cfg.FieldSet.Get("@id")
	require.NoError(t, err)
	assert.Equal(t, condition.DirectionDesc, order.DefaultDirection)
	assert.Equal(t, map[string]condition.Direction{"up": condition.DirectionAsc, "down": condition.DirectionDesc}, order.DirectionAliases)
}

func TestLoadProcessorConfig_Overrides(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)
	opts.ConfigPath = writeConfig(t, t.TempDir(), "custom.hcl", testConfig)
	opts.Profile = "default"
	opts.DefaultField = "id"
	opts.Limits = input.Limits{MaxGroups: 2}
	opts.Env = map[string]string{"ID_ORDER": "ASC"}

	cfg, err := config.LoadProcessorConfig(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, lexer.DefaultProfile, cfg.Profile)
	assert.Equal(t, "id", cfg.DefaultField)
	assert.Equal(t, input.Limits{MaxNesting: input.DefaultMaxNesting, MaxValues: 50, MaxGroups: 2}, cfg.Limits)

	order, err := cfg.FieldSet.Get("@id")
	require.NoError(t, err)
	assert.Equal(t, condition.DirectionAsc, order.DefaultDirection)
}

func TestLoadProcessorConfig_JSON(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)
	opts.ConfigPath = writeConfig(t, opts.WorkingDir, "fields.json", `{
  "default_field": "title",
  "field": {
    "title": {"pattern_matchers": true},
    "id": {"comparator": "number", "ranges": true}
  }
}`)

	cfg, err := config.LoadProcessorConfig(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "title", cfg.DefaultField)
	assert.True(t, cfg.FieldSet.Has("id"))
	assert.Equal(t, input.DefaultLimits(), cfg.Limits)
}

func TestLoadProcessorConfig_NotFound(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)

	_, err := config.LoadProcessorConfig(context.Background(), opts)

	var notFound config.ConfigNotFoundError

	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, filepath.Join(opts.WorkingDir, options.DefaultConfigPath), notFound.Path)
}

func TestProcessorConfig_ReportsEveryError(t *testing.T) {
	t.Parallel()

	opts := newOptions(t)

	cfg, err := config.ParseQueryConfigString(context.Background(), opts, `
profile       = "modern"
default_field = "missing"

field "id" {
  comparator = "roman"
  grammar    = "unknown"
}

field "id" {}

field "name" {
  default_direction = "DESC"
}

field "@date" {
  aliases = { up = "sideways" }
}
`, "fieldquery.hcl")
	require.NoError(t, err)

	_, err = cfg.ProcessorConfig()
	require.Error(t, err)

	var multi *errors.MultiError

	require.True(t, errors.As(err, &multi))
	assert.Equal(t, 6, multi.Len(), err.Error())

	var duplicate config.DuplicateFieldError

	assert.True(t, errors.As(err, &duplicate))

	var unknownDefault config.UnknownDefaultFieldError

	assert.False(t, errors.As(err, &unknownDefault), "default field is not checked without a field set")
}

func TestParseQueryConfigString_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := config.ParseQueryConfigString(context.Background(), newOptions(t), `field "id" {`, "fieldquery.hcl")
	require.Error(t, err)
}

func TestParseQueryConfigString_UnknownAttribute(t *testing.T) {
	t.Parallel()

	_, err := config.ParseQueryConfigString(context.Background(), newOptions(t), `colour = "red"`, "fieldquery.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestFindConfigPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	testCases := []struct {
		configPath string
		expected   string
	}{
		{configPath: "", expected: filepath.Join("/work", options.DefaultConfigPath)},
		{configPath: "conf/fields.hcl", expected: "/work/conf/fields.hcl"},
		{configPath: "/etc/fieldquery.hcl", expected: "/etc/fieldquery.hcl"},
		{configPath: "~/fieldquery.hcl", expected: filepath.Join(home, "fieldquery.hcl")},
	}

	for _, tc := range testCases {
		t.Run(tc.configPath, func(t *testing.T) {
			t.Parallel()

			opts := newOptions(t)
			opts.WorkingDir = "/work"
			opts.ConfigPath = tc.configPath

			path, err := config.FindConfigPath(opts)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, path)
		})
	}
}
