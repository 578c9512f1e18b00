package condition_test

import (
	"testing"

	"github.com/fieldquery/fieldquery/internal/condition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		cond     *condition.SearchCondition
		expected string
	}{
		{
			name:     "empty",
			cond:     condition.NewSearchCondition(nil, nil),
			expected: "",
		},
		{
			name: "simple and excluded values",
			cond: condition.NewBuilder(condition.LogicalAnd).
				Field("name").SimpleValue("value").SimpleValue(`value"2`).ExcludedSimpleValue("foo").End().
				SearchCondition(),
			expected: `name: value, "value""2", !foo`,
		},
		{
			name: "values needing quotes",
			cond: condition.NewBuilder(condition.LogicalAnd).
				Field("name").SimpleValue("New York").SimpleValue("!foo").SimpleValue("").SimpleValue("a:b").End().
				SearchCondition(),
			expected: `name: "New York", "!foo", "", "a:b"`,
		},
		{
			name: "ranges",
			cond: condition.NewBuilder(condition.LogicalAnd).
				Field("id").
				Range(condition.NewRange("1", "10")).
				Range(condition.Range{Lower: "20", Upper: "30"}).
				ExcludedRange(condition.Range{Lower: "5", Upper: "6", LowerInclusive: true}).
				End().
				SearchCondition(),
			expected: `id: 1~10, ]20~30[, ![5~6[`,
		},
		{
			name: "comparisons and pattern matchers",
			cond: condition.NewBuilder(condition.LogicalAnd).
				Field("age").Compare(">=", "18").Compare("<>", "30").End().
				Field("name").
				PatternMatch(condition.PatternContains, "foo", false).
				PatternMatch(condition.PatternNotStartsWith, "bar baz", true).
				End().
				SearchCondition(),
			expected: `age: >=18, <>30; name: ~*foo, ~i!>"bar baz"`,
		},
		{
			name: "groups and order",
			cond: condition.NewBuilder(condition.LogicalOr).
				Field("name").SimpleValue("foo").End().
				Group(condition.LogicalOr).
				Field("title").SimpleValue("paris").End().
				Field("teaser").SimpleValue("paris").End().
				End().
				Group(condition.LogicalAnd).
				Field("id").SimpleValue("1").End().
				End().
				Order("@id", condition.DirectionDesc).
				SearchCondition(),
			expected: `*name: foo; *(title: paris; teaser: paris); (id: 1); @id: DESC`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, condition.Export(tc.cond))
		})
	}
}

func TestExport_RawFields(t *testing.T) {
	t.Parallel()

	cond := condition.NewBuilder(condition.LogicalAnd).
		Field("geo").
		SimpleValue("(12,24)").
		ExcludedSimpleValue("(1, 2)").
		Range(condition.NewRange("(12,24)", "(12,25)")).
		Compare(">", "(12,24)").
		PatternMatch(condition.PatternContains, "(1,2)", false).
		End().
		Field("name").SimpleValue("(12,24)").End().
		SearchCondition()

	assert.Equal(t,
		`geo: (12,24), !(1, 2), (12,24)~(12,25), >(12,24), ~*"(1,2)"; name: "(12,24)"`,
		condition.Export(cond, condition.WithRawFields("geo")),
	)

	bag, ok := cond.Values.Field("geo")
	require.True(t, ok)
	assert.Equal(t, `(12,24), !(1, 2), (12,24)~(12,25), >(12,24), ~*"(1,2)"`, condition.ExportValues("geo", bag, condition.WithRawFields("geo")))
	assert.Equal(t, `"(12,24)", !"(1, 2)", "(12,24)"~"(12,25)", >"(12,24)", ~*"(1,2)"`, condition.ExportValues("geo", bag))
}

func TestQuoteValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "foo", condition.QuoteValue("foo"))
	assert.Equal(t, "café", condition.QuoteValue("café"))
	assert.Equal(t, `""`, condition.QuoteValue(""))
	assert.Equal(t, `"a""b"`, condition.QuoteValue(`a"b`))
	assert.Equal(t, `"1~2"`, condition.QuoteValue("1~2"))
	assert.Equal(t, "\"a\tb\"", condition.QuoteValue("a\tb"))
}
