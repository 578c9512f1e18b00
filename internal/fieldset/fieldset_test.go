package fieldset_test

import (
	"testing"

	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/fieldquery/fieldquery/internal/errors"
	"github.com/fieldquery/fieldquery/internal/fieldset"
	"github.com/fieldquery/fieldquery/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_FieldSet(t *testing.T) {
	t.Parallel()

	builder := fieldset.NewBuilder("users").
		Add(fieldset.NewField("name")).
		Add(&fieldset.FieldConfig{Name: "id", SupportsRanges: true}).
		Add(fieldset.NewField("_secret"))

	set := builder.FieldSet()

	builder.Add(fieldset.NewField("late")).Remove("name")

	assert.Equal(t, "users", set.Name())
	assert.True(t, set.Has("name"))
	assert.False(t, set.Has("late"))

	var names []string
	for _, field := range set.All() {
		names = append(names, field.Name)
	}

	assert.Equal(t, []string{"name", "id", "_secret"}, names)

	field, err := set.Get("id")
	require.NoError(t, err)
	assert.True(t, field.Supports(lexer.ValueTypeRange))
	assert.False(t, field.Supports(lexer.ValueTypeCompare))
	assert.True(t, field.Supports(lexer.ValueTypeSimple))

	_, err = set.Get("missing")

	var unknown fieldset.UnknownFieldError

	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "missing", unknown.Field)
}

func TestFieldMarkers(t *testing.T) {
	t.Parallel()

	assert.True(t, fieldset.NewField("@id").IsOrder())
	assert.False(t, fieldset.NewField("@id").IsPrivate())
	assert.True(t, fieldset.NewField("_id").IsPrivate())
	assert.False(t, fieldset.NewField("id").IsOrder())
}

func TestFieldConfig_ResolveDirection(t *testing.T) {
	t.Parallel()

	field := &fieldset.FieldConfig{
		Name: "@date",
		DirectionAliases: map[string]condition.Direction{
			"up":   condition.DirectionAsc,
			"Down": condition.DirectionDesc,
		},
	}

	testCases := []struct {
		value    string
		expected condition.Direction
		ok       bool
	}{
		{value: "uP", expected: condition.DirectionAsc, ok: true},
		{value: "Up", expected: condition.DirectionAsc, ok: true},
		{value: "DOWN", expected: condition.DirectionDesc, ok: true},
		{value: "desc", expected: condition.DirectionDesc, ok: true},
		{value: "Asc", expected: condition.DirectionAsc, ok: true},
		{value: "sideways"},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			t.Parallel()

			dir, ok := field.ResolveDirection(tc.value)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, dir)
		})
	}
}

func TestGrammars(t *testing.T) {
	t.Parallel()

	geo, err := fieldset.GrammarByName(fieldset.GrammarGeoPoint)
	require.NoError(t, err)

	set := fieldset.NewBuilder("").
		Add(&fieldset.FieldConfig{Name: "geo", Grammar: geo}).
		Add(fieldset.NewField("name")).
		FieldSet()

	grammars := fieldset.Grammars(set)
	assert.Len(t, grammars, 1)
	assert.Contains(t, grammars, "geo")

	_, err = fieldset.GrammarByName("nope")
	require.Error(t, err)
	assert.Contains(t, fieldset.GrammarNames(), fieldset.GrammarGeoPoint)
}

func TestGeoPointGrammar(t *testing.T) {
	t.Parallel()

	geo, err := fieldset.GrammarByName(fieldset.GrammarGeoPoint)
	require.NoError(t, err)

	grammars := map[string]lexer.ValueGrammar{"geo": geo}

	testCases := []struct {
		input    string
		expected string
		column   int
		wantErr  bool
	}{
		{input: "geo: (12,24);", expected: "(12,24)"},
		{input: "geo: ( 12, -24.5 );", expected: "(12, -24.5)"},
		{input: "geo: value, value2;", wantErr: true, column: 5},
		{input: "geo: (value, value2);", wantErr: true, column: 6},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			l := lexer.New(lexer.DefaultProfile)
			l.Parse(tc.input, grammars)

			field, err := l.FieldIdentification()
			require.NoError(t, err)

			value, err := l.ValuePart(field, lexer.ValueTerminators)
			if tc.wantErr {
				var syntaxErr lexer.SyntaxError

				require.True(t, errors.As(err, &syntaxErr))
				assert.Equal(t, tc.column, syntaxErr.Column)
				assert.Equal(t, "value, val", syntaxErr.Found)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}
