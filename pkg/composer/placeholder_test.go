package composer

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders_Question(t *testing.T) {
	c := New(WithPlaceholders(Question))

	query, args, err := c.Select("*").From("users").
		Where("age", ">", 18).
		And("name", "=", "bob").
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE age > ? AND name = ?", query)
	assert.Equal(t, []any{18, "bob"}, args)
}

func TestPlaceholders_DollarNumberingAcrossNesting(t *testing.T) {
	c := New(WithPlaceholders(Dollar))
	inner := NewSimple().Where("b", "=", 2).Or("c", "=", 3)

	query, args, err := c.Select("*").From("t").
		Where("a", "=", 1).
		AndExpr().Brackets(inner).
		And("d", "IN", 4).
		ToSQL()

	// IN, whitelist'te olmadığı için reddedilir; önceki kısım etkilenmez.
	require.ErrorIs(t, err, ErrInvalidOperator)
	assert.Empty(t, query)
	assert.Nil(t, args)

	query, args, err = New(WithPlaceholders(Dollar)).Select("*").From("t").
		Where("a", "=", 1).
		AndExpr().Brackets(inner).
		AndExpr().In("e", Select("id").From("u").Where("f", "=", 5)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND (b = $2 OR c = $3) AND e IN (SELECT id FROM u WHERE f = $4)", query)
	assert.Equal(t, []any{1, 2, 3, 5}, args)
}

func TestPlaceholders_NilAlwaysInline(t *testing.T) {
	query, args, err := New(WithPlaceholders(Dollar)).Select("*").From("users").
		Where("deleted_at", "IS", nil).
		And("id", "=", 9).
		And("nick", "IS", (*string)(nil)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE deleted_at IS NULL AND id = $1 AND nick IS NULL", query)
	assert.Equal(t, []any{9}, args)
}

func TestPlaceholders_NilValuerPointer(t *testing.T) {
	for _, style := range []PlaceholderStyle{Inline, Question, Dollar, Colon} {
		t.Run(style.String(), func(t *testing.T) {
			query, args, err := New(WithPlaceholders(style)).Select("*").From("t").
				Where("a", "IS", (*sql.NullString)(nil)).
				ToSQL()

			require.NoError(t, err)
			assert.Equal(t, "SELECT * FROM t WHERE a IS NULL", query)
			assert.Empty(t, args)
		})
	}
}

func TestPlaceholders_Colon(t *testing.T) {
	query, args, err := New(WithPlaceholders(Colon)).Select("*").From("t").
		Where("a", "=", 1).
		And("b", "=", sql.Named("name", "x")).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = :p1 AND b = :name", query)
	assert.Equal(t, []any{sql.Named("p1", 1), sql.Named("name", "x")}, args)
}

func TestPlaceholders_NamedArgUnwrappedForPositional(t *testing.T) {
	_, args, err := New(WithPlaceholders(Question)).Insert("t", "a").
		Values(sql.Named("a", 10)).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, []any{10}, args)
}

func TestPlaceholders_InlineHasNoArgs(t *testing.T) {
	query, args, err := Select("*").From("t").Where("a", "=", "x").ToSQL()

	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = 'x'", query)
	assert.Empty(t, args)
}

func TestPlaceholders_PlaceholderSkipsInlineValidation(t *testing.T) {
	type point struct{ X, Y int }

	_, args, err := New(WithPlaceholders(Question)).Select("*").From("t").
		Where("p", "=", point{1, 2}).
		ToSQL()

	require.NoError(t, err)
	assert.Equal(t, []any{point{1, 2}}, args)
}

func TestPlaceholders_UnknownStyle(t *testing.T) {
	_, err := New(WithPlaceholders(PlaceholderStyle(42))).Select().From("t").ComposedQuery()
	assert.ErrorIs(t, err, ErrUnknownPlaceholderStyle)
}

func TestParsePlaceholderStyle(t *testing.T) {
	tests := []struct {
		input    string
		expected PlaceholderStyle
	}{
		{"", Inline},
		{"inline", Inline},
		{"?", Question},
		{"QUESTION", Question},
		{"$", Dollar},
		{"dollar", Dollar},
		{"named", Colon},
		{":", Colon},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			style, err := ParsePlaceholderStyle(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, style)
		})
	}

	_, err := ParsePlaceholderStyle("percent")
	assert.ErrorIs(t, err, ErrUnknownPlaceholderStyle)
}
