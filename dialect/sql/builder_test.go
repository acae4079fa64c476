package sql

import (
	"strings"
	"testing"

	"github.com/syssam/sphinx/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name      string
		input     Querier
		wantQuery string
		wantArgs  []any
	}{
		{
			name: "insert",
			input: Dialect(dialect.MySQL).Insert("users").
				Columns("name", "age").
				Values("a8m", 10).
				Values("foo", 20),
			wantQuery: "INSERT INTO `users` (`name`, `age`) VALUES (?, ?), (?, ?)",
			wantArgs:  []any{"a8m", 10, "foo", 20},
		},
		{
			name: "replace",
			input: Dialect(dialect.SphinxQL).Insert("products").
				Replace().
				Columns("id", "title").
				Values(1, "phone"),
			wantQuery: "REPLACE INTO `products` (`id`, `title`) VALUES (?, ?)",
			wantArgs:  []any{1, "phone"},
		},
		{
			name:      "insert_raw_argument",
			input:     Dialect(dialect.MySQL).Insert("users").Columns("name", "created_at").Values("a8m", Raw("NOW()")),
			wantQuery: "INSERT INTO `users` (`name`, `created_at`) VALUES (?, NOW())",
			wantArgs:  []any{"a8m"},
		},
		{
			name: "update",
			input: Dialect(dialect.MySQL).Update("users").
				Set("name", "foo").
				Set("age", 10).
				Where(EQ("id", 1)),
			wantQuery: "UPDATE `users` SET `name` = ?, `age` = ? WHERE `id` = ?",
			wantArgs:  []any{"foo", 10, 1},
		},
		{
			name: "update_where_and",
			input: Dialect(dialect.MySQL).Update("users").
				Set("name", "foo").
				Where(EQ("id", 1)).
				Where(GT("age", 18)),
			wantQuery: "UPDATE `users` SET `name` = ? WHERE (`id` = ?) AND (`age` > ?)",
			wantArgs:  []any{"foo", 1, 18},
		},
		{
			name: "delete",
			input: Delete("users").
				Where(
					Or(
						And(EQ("name", "foo"), EQ("age", 10)),
						And(EQ("name", "bar"), EQ("age", 20)),
					),
				),
			wantQuery: `DELETE FROM "users" WHERE (("name" = ?) AND ("age" = ?)) OR (("name" = ?) AND ("age" = ?))`,
			wantArgs:  []any{"foo", 10, "bar", 20},
		},
		{
			name:      "delete_not",
			input:     Dialect(dialect.MySQL).Delete("users").Where(Not(IsNull("email"))),
			wantQuery: "DELETE FROM `users` WHERE NOT (`email` IS NULL)",
		},
		{
			name: "select",
			input: Dialect(dialect.MySQL).Select("id", "name").
				From(Table("users")).
				Where(EQ("active", true)).
				OrderBy(Desc("name")).
				Limit(10).
				Offset(5),
			wantQuery: "SELECT `id`, `name` FROM `users` WHERE `active` = ? ORDER BY `name` DESC LIMIT 10 OFFSET 5",
			wantArgs:  []any{true},
		},
		{
			name:      "select_all",
			input:     Select().From(Table("users")),
			wantQuery: `SELECT * FROM "users"`,
		},
		{
			name: "select_join",
			input: func() Querier {
				t1 := Table("users").As("u")
				t2 := Table("groups").As("g")
				return Dialect(dialect.MySQL).Select(t1.C("id"), t2.C("name")).
					From(t1).
					Join(t2).
					On(t1.C("id"), t2.C("user_id"))
			}(),
			wantQuery: "SELECT `u`.`id`, `g`.`name` FROM `users` AS `u` JOIN `groups` AS `g` ON `u`.`id` = `g`.`user_id`",
		},
		{
			name: "select_derived",
			input: Dialect(dialect.MySQL).Select().
				From(Select("id").From(Table("users")).As("t")),
			wantQuery: "SELECT * FROM (SELECT `id` FROM `users`) AS `t`",
		},
		{
			name: "select_in_query",
			input: Dialect(dialect.MySQL).Select("name").
				From(Table("users")).
				Where(InQuery("id", Select("user_id").From(Table("groups")))),
			wantQuery: "SELECT `name` FROM `users` WHERE `id` IN (SELECT `user_id` FROM `groups`)",
		},
		{
			name: "select_group_having",
			input: Dialect(dialect.MySQL).Select("category_id", "COUNT(*) AS n").
				From(Table("products")).
				GroupBy("category_id").
				Having(Expr("n > ?", 2)),
			wantQuery: "SELECT `category_id`, COUNT(*) AS n FROM `products` GROUP BY `category_id` HAVING n > ?",
			wantArgs:  []any{2},
		},
		{
			name: "predicates",
			input: Dialect(dialect.MySQL).Select().
				From(Table("products")).
				Where(And(
					Between("price", 1, 10),
					Like("title", "%phone%"),
					NotIn("category_id", 4, 5),
					NotNull("title"),
					NEQ("status", 0),
					LTE("stock", 100),
				)),
			wantQuery: "SELECT * FROM `products` WHERE (`price` BETWEEN ? AND ?) AND (`title` LIKE ?) AND (`category_id` NOT IN (?, ?)) AND (`title` IS NOT NULL) AND (`status` <> ?) AND (`stock` <= ?)",
			wantArgs:  []any{1, 10, "%phone%", 4, 5, 0, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := Render(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   Querier
		wantErr string
	}{
		{"insert_missing_table", Insert("").Columns("a").Values(1), "missing table name"},
		{"insert_no_values", Insert("users"), "no values"},
		{"insert_row_mismatch", Insert("users").Columns("a", "b").Values(1), "row 0 has 1 values, expected 2"},
		{"update_no_columns", Update("users").Where(EQ("id", 1)), "no columns to set"},
		{"delete_missing_table", Delete("").Where(EQ("id", 1)), "missing table name"},
		{"on_without_join", Select().From(Table("users")).On("a", "b"), "ON called without JOIN"},
		{"empty_in", Select().From(Table("users")).Where(In("id")), "requires at least one value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Render(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuilderQuote(t *testing.T) {
	tests := []struct {
		dialect string
		ident   string
		want    string
	}{
		{dialect.MySQL, "users", "`users`"},
		{dialect.SphinxQL, "products", "`products`"},
		{"", "users", `"users"`},
		{dialect.MySQL, "u.id", "`u`.`id`"},
		{dialect.MySQL, "u.*", "u.*"},
		{dialect.MySQL, "*", "*"},
		{dialect.MySQL, "COUNT(*)", "COUNT(*)"},
		{dialect.MySQL, "weight() AS w", "weight() AS w"},
		{dialect.MySQL, "`quoted`", "`quoted`"},
	}

	for _, tt := range tests {
		t.Run(tt.dialect+"/"+tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, NewBuilder(tt.dialect).Quote(tt.ident))
		})
	}
}

func TestBuilderOrder(t *testing.T) {
	b := NewBuilder(dialect.MySQL)
	b.OrderComma("price desc", "title", "weight() DESC", "id ASC")
	assert.Equal(t, "`price` DESC, `title`, weight() DESC, `id` ASC", b.String())
}

func TestBuilderNested(t *testing.T) {
	b := NewBuilder(dialect.MySQL)
	assert.False(t, b.Nested())
	InQuery("id", Select("user_id").From(Table("groups"))).Render(b)
	assert.True(t, b.Nested())
	assert.Equal(t, "`id` IN (SELECT `user_id` FROM `groups`)", b.String())
}

func TestBuilderJoinErrors(t *testing.T) {
	b := NewBuilder(dialect.MySQL)
	b.WriteString("x ").Join(Insert(""))
	require.Error(t, b.Err())
	assert.True(t, strings.HasPrefix(b.String(), "x INSERT INTO"))
}

func TestSelectParts(t *testing.T) {
	derived := Select("id").From(Table("users"))
	s := Select("id").
		Distinct().
		From(Table("a"), Table("b").As("bb"), derived).
		Join(Table("c")).
		Where(EQ("x", 1)).
		GroupBy("g").
		OrderBy("o").
		Limit(5)
	p := s.Parts()
	assert.True(t, p.Distinct)
	assert.Equal(t, []string{"id"}, p.Columns)
	require.Len(t, p.Tables, 2)
	assert.Equal(t, "a", p.Tables[0].Name())
	assert.Equal(t, "bb", p.Tables[1].Alias())
	require.Len(t, p.Derived, 1)
	assert.Same(t, derived, p.Derived[0])
	assert.Equal(t, 1, p.Joins)
	assert.NotNil(t, p.Where)
	assert.Nil(t, p.Having)
	assert.Equal(t, []string{"g"}, p.GroupBy)
	assert.Equal(t, []string{"o"}, p.OrderBy)
	require.NotNil(t, p.Limit)
	assert.Equal(t, 5, *p.Limit)
	assert.Nil(t, p.Offset)
}

func TestSelectSetDialect(t *testing.T) {
	s := Select("id").From(Table("users"))
	assert.Equal(t, "", s.Dialect())
	s.SetDialect(dialect.MySQL)
	query, _ := s.Query()
	assert.Equal(t, "SELECT `id` FROM `users`", query)
}

// TestValidIdentifier tests SQL identifier validation.
func TestValidIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid_simple", "foo", true},
		{"valid_with_underscore", "foo_bar", true},
		{"valid_with_number", "foo123", true},
		{"valid_with_dot", "schema.table", true},
		{"valid_starting_underscore", "_private", true},
		{"invalid_empty", "", false},
		{"invalid_starting_number", "123foo", false},
		{"invalid_with_space", "foo bar", false},
		{"invalid_with_quote", "foo'bar", false},
		{"invalid_with_semicolon", "foo;DROP TABLE", false},
		{"invalid_with_dash", "foo-bar", false},
		{"invalid_too_long", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidIdentifier(tt.input))
		})
	}
}

type selectorFunc func(*Selector)

func TestFields(t *testing.T) {
	var (
		price    = FloatField[selectorFunc]("price")
		groupID  = IntField[selectorFunc]("group_id")
		title    = StringField[selectorFunc]("title")
		featured = BoolField[selectorFunc]("featured")
	)
	assert.Equal(t, "price", price.Name())
	assert.Equal(t, "group_id", groupID.Name())
	assert.Equal(t, "title", title.Name())
	assert.Equal(t, "featured", featured.Name())

	tests := []struct {
		name      string
		pred      selectorFunc
		wantWhere string
		wantArgs  []any
	}{
		{"int_eq", groupID.EQ(1), "`group_id` = ?", []any{int64(1)}},
		{"int_in", groupID.In(1, 2), "`group_id` IN (?, ?)", []any{int64(1), int64(2)}},
		{"int_not_in", groupID.NotIn(3), "`group_id` NOT IN (?)", []any{int64(3)}},
		{"int_between", groupID.Between(1, 9), "`group_id` BETWEEN ? AND ?", []any{int64(1), int64(9)}},
		{"float_lt", price.LT(9.5), "`price` < ?", []any{9.5}},
		{"float_gte", price.GTE(1), "`price` >= ?", []any{1.0}},
		{"string_neq", title.NEQ("x"), "`title` <> ?", []any{"x"}},
		{"string_in", title.In("a", "b"), "`title` IN (?, ?)", []any{"a", "b"}},
		{"bool_eq", featured.EQ(true), "`featured` = ?", []any{true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Dialect(dialect.MySQL).Select().From(Table("products"))
			tt.pred(s)
			query, args, err := Render(s)
			require.NoError(t, err)
			assert.Equal(t, "SELECT * FROM `products` WHERE "+tt.wantWhere, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
