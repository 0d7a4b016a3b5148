package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		input    string
		expected condition
	}{
		{"id = 5", condition{"id", "=", int64(5)}},
		{"name LIKE 'A%'", condition{"name", "LIKE", "A%"}},
		{"name not like 'A%'", condition{"name", "NOT LIKE", "A%"}},
		{"deleted_at IS NULL", condition{"deleted_at", "IS", nil}},
		{"deleted_at is not null", condition{"deleted_at", "IS NOT", nil}},
		{"title = 'two words'", condition{"title", "=", "two words"}},
		{"score >= 4.5", condition{"score", ">=", 4.5}},
		{"active = true", condition{"active", "=", true}},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseCondition(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := parseCondition("id =")
	assert.ErrorIs(t, err, errConditionSyntax)
}

func TestParseAssignment(t *testing.T) {
	column, value, err := parseAssignment("email = a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "email", column)
	assert.Equal(t, "a@example.com", value)

	column, value, err = parseAssignment("note='it''s'")
	require.NoError(t, err)
	assert.Equal(t, "note", column)
	assert.Equal(t, "it's", value)

	_, _, err = parseAssignment("=1")
	assert.ErrorIs(t, err, errAssignmentSyntax)

	_, _, err = parseAssignment("email")
	assert.ErrorIs(t, err, errAssignmentSyntax)
}

func TestParseValue(t *testing.T) {
	assert.Nil(t, parseValue("null"))
	assert.Equal(t, int64(-3), parseValue("-3"))
	assert.Equal(t, "NaN", parseValue("NaN"))
	assert.Equal(t, "01234", parseValue("01234"))
	assert.Equal(t, 0.5, parseValue("0.5"))
	assert.Equal(t, int64(0), parseValue("0"))
	assert.Equal(t, "abc", parseValue("abc"))
	assert.Equal(t, "", parseValue("''"))
}
