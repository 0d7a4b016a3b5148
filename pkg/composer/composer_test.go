package composer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// CHECKED COMPOSER TESTLERİ
// -----------------------------------------------------------------------------

func TestComposer_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		build    func() Renderer
		expected string
	}{
		{
			name: "select with where",
			build: func() Renderer {
				return Select("id", "name").From("users").Where("age", ">", "18")
			},
			expected: "SELECT id, name FROM users WHERE age > 18",
		},
		{
			name: "delete with where",
			build: func() Renderer {
				return Delete("users").Where("id", "=", "5")
			},
			expected: "DELETE FROM users WHERE id = 5",
		},
		{
			name: "insert with pre-quoted literal",
			build: func() Renderer {
				return Insert("users", "name", "age").Values("'bob'", "30")
			},
			expected: "INSERT INTO users (name, age) VALUES ('bob', 30)",
		},
		{
			name: "brackets after AND",
			build: func() Renderer {
				cond := NewSimple().Where("b", "=", "2").Or("c", "=", "3")
				return Select("*").From("t").Where("a", "=", "1").AndExpr().Brackets(cond)
			},
			expected: "SELECT * FROM t WHERE a = 1 AND (b = 2 OR c = 3)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, err := tc.build().ComposedQuery()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, query)
		})
	}
}

func TestComposer_GroupByWithoutColumns(t *testing.T) {
	_, err := Select("*").From("t").GroupBy().ComposedQuery()
	assert.ErrorIs(t, err, ErrEmptyColumnList)
}

func TestComposer_Select(t *testing.T) {
	tests := []struct {
		name     string
		build    func() Renderer
		expected string
	}{
		{
			name:     "no columns renders star",
			build:    func() Renderer { return Select().From("t") },
			expected: "SELECT * FROM t",
		},
		{
			name:     "distinct with order",
			build:    func() Renderer { return SelectDistinct("city").From("users").OrderBy("city") },
			expected: "SELECT DISTINCT city FROM users ORDER BY city",
		},
		{
			name:     "count star",
			build:    func() Renderer { return SelectCount().From("users") },
			expected: "SELECT COUNT(*) FROM users",
		},
		{
			name:     "count columns",
			build:    func() Renderer { return SelectCount("id", "email").From("users") },
			expected: "SELECT COUNT(id), COUNT(email) FROM users",
		},
		{
			name:     "avg with bool value",
			build:    func() Renderer { return SelectAvg("price").From("products").Where("active", "=", true) },
			expected: "SELECT AVG(price) FROM products WHERE active = TRUE",
		},
		{
			name:     "sum min max",
			build:    func() Renderer { return SelectSum("total").From("orders") },
			expected: "SELECT SUM(total) FROM orders",
		},
		{
			name:     "min",
			build:    func() Renderer { return SelectMin("price").From("products") },
			expected: "SELECT MIN(price) FROM products",
		},
		{
			name:     "max",
			build:    func() Renderer { return SelectMax("price").From("products") },
			expected: "SELECT MAX(price) FROM products",
		},
		{
			name: "left join with alias",
			build: func() Renderer {
				return Select("u.id", "o.total").
					From("users AS u").
					LJoin("orders AS o").On("o.user_id", "u.id").
					Where("o.total", ">", 100).
					OrderByDesc("o.total")
			},
			expected: "SELECT u.id, o.total FROM users AS u LEFT JOIN orders AS o ON o.user_id = u.id WHERE o.total > 100 ORDER BY o.total DESC",
		},
		{
			name: "chained joins",
			build: func() Renderer {
				return Select().From("a").
					Join("b").On("b.a_id", "a.id").
					RJoin("c").On("c.b_id", "b.id")
			},
			expected: "SELECT * FROM a INNER JOIN b ON b.a_id = a.id RIGHT JOIN c ON c.b_id = b.id",
		},
		{
			name: "group by then order by",
			build: func() Renderer {
				return SelectCount().From("orders").
					Where("status", "=", "paid").
					GroupBy("user_id").
					OrderByDesc("user_id")
			},
			expected: "SELECT COUNT(*) FROM orders WHERE status = 'paid' GROUP BY user_id ORDER BY user_id DESC",
		},
		{
			name: "subquery in from",
			build: func() Renderer {
				inner := Select("id").From("orders").Where("total", ">", 100)
				return Select("*").FromQuery(inner, "big")
			},
			expected: "SELECT * FROM (SELECT id FROM orders WHERE total > 100) AS big",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, err := tc.build().ComposedQuery()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, query)
		})
	}
}

func TestComposer_Conditions(t *testing.T) {
	tests := []struct {
		name     string
		build    func() Renderer
		expected string
	}{
		{
			name: "condition with trailing OR",
			build: func() Renderer {
				return Select("*").From("t").WhereExpr().
					Condition("a", "=", 1, "OR").
					Condition("b", "=", 2, "")
			},
			expected: "SELECT * FROM t WHERE a = 1 OR b = 2",
		},
		{
			name: "condition default separator is AND",
			build: func() Renderer {
				return Select("*").From("t").WhereExpr().
					Condition("a", "=", 1, "").
					Condition("b", "=", 2, "")
			},
			expected: "SELECT * FROM t WHERE a = 1 AND b = 2",
		},
		{
			name: "pending separator dropped before And",
			build: func() Renderer {
				return Select("*").From("t").WhereExpr().
					Condition("a", "=", 1, "OR").
					And("c", "<", 3)
			},
			expected: "SELECT * FROM t WHERE a = 1 AND c < 3",
		},
		{
			name: "not with operands",
			build: func() Renderer {
				return Select("*").From("t").Where("a", "=", 1).AndExpr().Not("b", "=", 2)
			},
			expected: "SELECT * FROM t WHERE a = 1 AND NOT b = 2",
		},
		{
			name: "not between",
			build: func() Renderer {
				return Select("*").From("users").WhereExpr().NotExpr().Between("age", 18, 30)
			},
			expected: "SELECT * FROM users WHERE NOT age BETWEEN 18 AND 30",
		},
		{
			name: "like or in values",
			build: func() Renderer {
				return Select("*").From("users").WhereExpr().
					Like("name", "jo%").
					OrExpr().InValues("id", 1, 2, 3)
			},
			expected: "SELECT * FROM users WHERE name LIKE 'jo%' OR id IN (1, 2, 3)",
		},
		{
			name: "in subquery",
			build: func() Renderer {
				banned := Select("id").From("users").Where("banned", "=", false)
				return Select("*").From("orders").WhereExpr().In("user_id", banned)
			},
			expected: "SELECT * FROM orders WHERE user_id IN (SELECT id FROM users WHERE banned = FALSE)",
		},
		{
			name: "is null",
			build: func() Renderer {
				return Select("*").From("users").Where("deleted_at", "is", nil)
			},
			expected: "SELECT * FROM users WHERE deleted_at IS NULL",
		},
		{
			name: "not like with extra whitespace",
			build: func() Renderer {
				return Select("*").From("users").Where("email", "not   like", "%@test.local")
			},
			expected: "SELECT * FROM users WHERE email NOT LIKE '%@test.local'",
		},
		{
			name: "brackets then continue",
			build: func() Renderer {
				return Select("*").From("t").
					WhereExpr().Brackets(Cond("a", "=", 1).Or("b", "=", 2)).
					And("c", "=", 3).
					OrderBy("c")
			},
			expected: "SELECT * FROM t WHERE (a = 1 OR b = 2) AND c = 3 ORDER BY c",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, err := tc.build().ComposedQuery()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, query)
		})
	}
}

func TestComposer_Write(t *testing.T) {
	tests := []struct {
		name     string
		build    func() Renderer
		expected string
	}{
		{
			name: "update with explicit comma",
			build: func() Renderer {
				return Update("users").
					Condition("name", "=", "bob", ",").
					Condition("age", "=", 30, "").
					Where("id", "=", 7)
			},
			expected: "UPDATE users SET name = 'bob', age = 30 WHERE id = 7",
		},
		{
			name: "update default separator is comma",
			build: func() Renderer {
				return Update("t").
					Condition("a", "=", 1, "").
					Condition("b", "=", 2, "").
					Where("id", "=", 1)
			},
			expected: "UPDATE t SET a = 1, b = 2 WHERE id = 1",
		},
		{
			name: "update with bracketed where",
			build: func() Renderer {
				return Update("users").
					Condition("active", "=", false, "").
					WhereExpr().Brackets(Cond("role", "=", "guest").Or("role", "=", "bot"))
			},
			expected: "UPDATE users SET active = FALSE WHERE (role = 'guest' OR role = 'bot')",
		},
		{
			name: "insert multiple rows",
			build: func() Renderer {
				return Insert("users", "name", "age").Values("ann", 30).Values("bob", 31)
			},
			expected: "INSERT INTO users (name, age) VALUES ('ann', 30), ('bob', 31)",
		},
		{
			name: "insert without column list",
			build: func() Renderer {
				return Insert("t").Values(1, "x")
			},
			expected: "INSERT INTO t VALUES (1, 'x')",
		},
		{
			name: "insert select",
			build: func() Renderer {
				return Insert("archive", "id", "name").
					Select("id", "name").From("users").
					Where("deleted", "=", true)
			},
			expected: "INSERT INTO archive (id, name) SELECT id, name FROM users WHERE deleted = TRUE",
		},
		{
			name: "delete with brackets",
			build: func() Renderer {
				return Delete("sessions").WhereExpr().
					Brackets(Cond("expired", "=", true).Or("revoked", "=", true))
			},
			expected: "DELETE FROM sessions WHERE (expired = TRUE OR revoked = TRUE)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			query, err := tc.build().ComposedQuery()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, query)
		})
	}
}

func TestComposer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() Renderer
		want  []error
	}{
		{
			name:  "operator outside whitelist",
			build: func() Renderer { return Select("*").From("t").Where("a", "~", 1) },
			want:  []error{ErrInvalidOperator},
		},
		{
			name:  "order by without columns",
			build: func() Renderer { return Select("*").From("t").OrderBy() },
			want:  []error{ErrEmptyColumnList},
		},
		{
			name:  "on with empty operand",
			build: func() Renderer { return Select("*").From("a").Join("b").On("", "a.id") },
			want:  []error{ErrEmptyColumnList},
		},
		{
			name:  "group by on delete",
			build: func() Renderer { return Delete("t").Where("a", "=", 1).GroupBy("a") },
			want:  []error{ErrInvalidClause},
		},
		{
			name:  "order by on update",
			build: func() Renderer { return Update("t").Condition("a", "=", 1, "").Where("id", "=", 1).OrderBy("id") },
			want:  []error{ErrInvalidClause},
		},
		{
			name:  "set assignment with comparison operator",
			build: func() Renderer { return Update("t").Condition("a", ">", 1, "").Where("id", "=", 1) },
			want:  []error{ErrInvalidOperator},
		},
		{
			name:  "set list with AND separator",
			build: func() Renderer { return Update("t").Condition("a", "=", 1, "AND").Where("id", "=", 1) },
			want:  []error{ErrInvalidSeparator},
		},
		{
			name:  "where chain with comma separator",
			build: func() Renderer { return Select("*").From("t").WhereExpr().Condition("a", "=", 1, ",") },
			want:  []error{ErrInvalidSeparator},
		},
		{
			name:  "unknown separator",
			build: func() Renderer { return Select("*").From("t").WhereExpr().Condition("a", "=", 1, "XOR") },
			want:  []error{ErrInvalidSeparator},
		},
		{
			name:  "values count mismatch",
			build: func() Renderer { return Insert("t", "a", "b").Values(1) },
			want:  []error{ErrColumnCountMismatch},
		},
		{
			name:  "empty IN list",
			build: func() Renderer { return Select("*").From("t").WhereExpr().InValues("id") },
			want:  []error{ErrEmptyValueList},
		},
		{
			name:  "unsupported value",
			build: func() Renderer { return Select("*").From("t").Where("a", "=", struct{}{}) },
			want:  []error{ErrUnsupportedValue},
		},
		{
			name:  "aggregate without column",
			build: func() Renderer { return SelectAvg("").From("t") },
			want:  []error{ErrInvalidIdentifier},
		},
		{
			name: "failing child",
			build: func() Renderer {
				child := Select("id").From("t").Where("x", "bad", 1)
				return Select("*").From("u").WhereExpr().In("id", child)
			},
			want: []error{ErrNestedComposition, ErrInvalidOperator},
		},
		{
			name: "empty child",
			build: func() Renderer {
				return Select("*").From("t").WhereExpr().Brackets(NewSimple())
			},
			want: []error{ErrNestedComposition, ErrUnterminatedComposition},
		},
		{
			name: "nil child",
			build: func() Renderer {
				var child *Simple
				return Select("*").From("t").WhereExpr().Brackets(child)
			},
			want: []error{ErrNestedComposition},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.build()

			query, err := r.ComposedQuery()
			assert.Empty(t, query)
			for _, want := range tc.want {
				assert.ErrorIs(t, err, want)
			}

			_, args, err := r.ToSQL()
			assert.Nil(t, args)
			assert.ErrorIs(t, err, tc.want[0])
			assert.ErrorIs(t, r.Err(), tc.want[0])
		})
	}
}

func TestComposer_ErrorIsSticky(t *testing.T) {
	w := Select("*").From("t").Where("a", "~", 1).And("b", "=", 2).Or("c", "bad", 3)

	require.ErrorIs(t, w.Err(), ErrInvalidOperator)
	assert.Contains(t, w.Err().Error(), `"~"`)
}

func TestComposer_SelfNesting(t *testing.T) {
	w := Select("*").From("t").Where("a", "=", 1)
	b := w.AndExpr().Brackets(w)

	assert.ErrorIs(t, b.Err(), ErrNestedComposition)
}

func TestComposer_RenderIsSideEffectFree(t *testing.T) {
	w := Select("id").From("users").Where("age", ">", 18).OrderBy("id")

	first, err := w.ComposedQuery()
	require.NoError(t, err)
	second, err := w.ComposedQuery()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComposer_ResetMatchesFreshSession(t *testing.T) {
	build := func(c *Composer) Renderer {
		return c.Select("id").From("users").Where("age", ">", 18)
	}

	fresh, err := build(New()).ComposedQuery()
	require.NoError(t, err)

	used := Update("t").Condition("a", "=", 1, "").Where("b", "~", 2)
	require.Error(t, used.Err())

	root := used.Reset()
	assert.NoError(t, root.Err())

	again, err := build(root).ComposedQuery()
	require.NoError(t, err)
	assert.Equal(t, fresh, again)
}

func TestComposer_ResetKeepsGrammar(t *testing.T) {
	c := New(WithGrammar(NewMySQLGrammar()))
	_, err := c.Select("id").From("t").ComposedQuery()
	require.NoError(t, err)

	query, err := c.Select("id").From("t").Reset().Select("id").From("t").ComposedQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT `id` FROM `t`", query)
}

func TestComposer_DynamicPredicate(t *testing.T) {
	var p Predicate = Select("*").From("users").Where("active", "=", true)
	for _, col := range []string{"verified", "subscribed"} {
		p = p.And(col, "=", true)
	}

	query, err := p.ComposedQuery()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE active = TRUE AND verified = TRUE AND subscribed = TRUE", query)
}

// TestComposer_RoleMethodSets, tip grafiğinin yasak geçişleri sunmadığını doğrular.
func TestComposer_RoleMethodSets(t *testing.T) {
	tests := []struct {
		role    any
		present []string
		absent  []string
	}{
		{SelectComposer{}, []string{"From", "FromQuery"}, []string{"Where", "ComposedQuery", "GroupBy"}},
		{FromComposer{}, []string{"Join", "Where", "WhereExpr", "Brackets", "ComposedQuery"}, []string{"On", "And", "Values"}},
		{JoinComposer{}, []string{"On"}, []string{"Where", "ComposedQuery", "Join"}},
		{OnComposer{}, []string{"Join", "LJoin", "RJoin", "Where", "ComposedQuery"}, []string{"On", "And"}},
		{ExprComposer{}, []string{"Condition", "Not", "NotExpr", "In", "InValues", "Like", "Between", "Brackets"}, []string{"ComposedQuery", "And", "Or", "GroupBy"}},
		{WhereComposer{}, []string{"And", "AndExpr", "Or", "OrExpr", "GroupBy", "OrderBy", "ComposedQuery"}, []string{"Condition", "Where", "Not"}},
		{ConditionComposer{}, []string{"Condition", "And", "ComposedQuery"}, []string{"Where"}},
		{GroupByComposer{}, []string{"OrderBy", "OrderByDesc", "ComposedQuery"}, []string{"GroupBy", "Where", "And"}},
		{OrderByComposer{}, []string{"ComposedQuery", "ToSQL", "Reset"}, []string{"OrderBy", "GroupBy", "Where"}},
		{UpdateComposer{}, []string{"Condition"}, []string{"Where", "ComposedQuery"}},
		{SetComposer{}, []string{"Condition", "Where", "WhereExpr"}, []string{"ComposedQuery"}},
		{DeleteComposer{}, []string{"Where", "WhereExpr"}, []string{"ComposedQuery", "From"}},
		{InsertComposer{}, []string{"Values", "Select", "SelectDistinct"}, []string{"ComposedQuery", "Where"}},
		{ValuesComposer{}, []string{"Values", "ComposedQuery"}, []string{"Where", "Select"}},
	}

	for _, tc := range tests {
		typ := reflect.TypeOf(tc.role)
		t.Run(typ.Name(), func(t *testing.T) {
			for _, name := range tc.present {
				_, ok := typ.MethodByName(name)
				assert.True(t, ok, "%s should expose %s", typ.Name(), name)
			}
			for _, name := range tc.absent {
				_, ok := typ.MethodByName(name)
				assert.False(t, ok, "%s should not expose %s", typ.Name(), name)
			}
		})
	}
}
