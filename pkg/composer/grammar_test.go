package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_Wrap(t *testing.T) {
	tests := []struct {
		name       string
		grammar    Grammar
		identifier string
		expected   string
	}{
		{"plain dotted", NewPlainGrammar(), "users.id", "users.id"},
		{"plain alias", NewPlainGrammar(), "users as u", "users AS u"},
		{"plain star", NewPlainGrammar(), "*", "*"},
		{"plain table star", NewPlainGrammar(), "users.*", "users.*"},
		{"plain trims", NewPlainGrammar(), "  name ", "name"},
		{"mysql dotted", NewMySQLGrammar(), "users.id", "`users`.`id`"},
		{"mysql table star", NewMySQLGrammar(), "users.*", "`users`.*"},
		{"mysql doubles backtick", NewMySQLGrammar(), "we`ird", "`we``ird`"},
		{"ansi alias", NewANSIGrammar(), "users AS u", `"users" AS "u"`},
		{"ansi doubles quote", NewANSIGrammar(), `we"ird`, `"we""ird"`},
		{"ansi schema table column", NewANSIGrammar(), "s.t.c", `"s"."t"."c"`},
		{"postgres schema", NewPostgresGrammar(), "public.users", `"public"."users"`},
		{"postgres star", NewPostgresGrammar(), "*", "*"},
		{"postgres table star", NewPostgresGrammar(), "users.*", `"users".*`},
		{"postgres doubles quote", NewPostgresGrammar(), `a"b`, `"a""b"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wrapped, err := tc.grammar.Wrap(tc.identifier)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, wrapped)
		})
	}
}

func TestGrammar_WrapRejects(t *testing.T) {
	tests := []struct {
		name       string
		grammar    Grammar
		identifier string
	}{
		{"empty", NewPlainGrammar(), ""},
		{"blank", NewMySQLGrammar(), "   "},
		{"empty part", NewANSIGrammar(), "a..b"},
		{"trailing dot", NewPostgresGrammar(), "users."},
		{"nul byte", NewMySQLGrammar(), "id\x00"},
		{"plain space", NewPlainGrammar(), "first name"},
		{"plain dangling alias", NewPlainGrammar(), "users AS "},
		{"dotted alias", NewANSIGrammar(), "users AS a.b"},
		{"star alias", NewANSIGrammar(), "users AS *"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.grammar.Wrap(tc.identifier)
			assert.ErrorIs(t, err, ErrInvalidIdentifier)
		})
	}
}

func TestGrammar_Quote(t *testing.T) {
	tests := []struct {
		name     string
		grammar  Grammar
		value    string
		expected string
	}{
		{"plain doubles quote", NewPlainGrammar(), "it's", "'it''s'"},
		{"ansi keeps backslash", NewANSIGrammar(), `a\b`, `'a\b'`},
		{"mysql escapes quote and backslash", NewMySQLGrammar(), `it's \`, `'it\'s \\'`},
		{"mysql escapes newline", NewMySQLGrammar(), "a\nb", `'a\nb'`},
		{"postgres doubles quote", NewPostgresGrammar(), "it's", "'it''s'"},
		{"postgres backslash uses E string", NewPostgresGrammar(), `a\b`, `E'a\\b'`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.grammar.Quote(tc.value))
		})
	}
}

func TestGrammar_Quoted(t *testing.T) {
	tests := []struct {
		name     string
		grammar  Grammar
		text     string
		expected bool
	}{
		{"simple literal", NewPlainGrammar(), "'bob'", true},
		{"empty literal", NewPlainGrammar(), "''", true},
		{"doubled quote", NewPlainGrammar(), "'it''s'", true},
		{"bare word", NewPlainGrammar(), "bob", false},
		{"single quote", NewPlainGrammar(), "'", false},
		{"two literals", NewPlainGrammar(), "'a' OR 'b'", false},
		{"lone inner quote", NewPlainGrammar(), "'a'b'", false},
		{"mysql backslash", NewMySQLGrammar(), `'a\'`, false},
		{"ansi backslash allowed", NewANSIGrammar(), `'a\'`, true},
		{"postgres backslash", NewPostgresGrammar(), `'a\b'`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.grammar.Quoted(tc.text))
		})
	}
}

func TestGrammarByName(t *testing.T) {
	for input, expected := range map[string]string{
		"":           "plain",
		"plain":      "plain",
		"ANSI":       "ansi",
		"MySQL":      "mysql",
		"postgres":   "postgres",
		"postgresql": "postgres",
		"pgx":        "postgres",
	} {
		g, err := GrammarByName(input)
		require.NoError(t, err, input)
		assert.Equal(t, expected, g.Name(), input)
	}

	_, err := GrammarByName("oracle")
	assert.ErrorIs(t, err, ErrUnknownGrammar)
}

func TestGrammar_ComposerUsesGrammar(t *testing.T) {
	query, err := New(WithGrammar(NewPostgresGrammar())).
		Select("u.id", "u.name AS n").
		From("public.users AS u").
		Where("u.name", "=", "o'neil").
		ComposedQuery()

	require.NoError(t, err)
	assert.Equal(t, `SELECT "u"."id", "u"."name" AS "n" FROM "public"."users" AS "u" WHERE "u"."name" = 'o''neil'`, query)
}
