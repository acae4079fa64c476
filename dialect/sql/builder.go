package sql

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/syssam/sphinx/dialect"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// ValidIdentifier reports whether s is a plain SQL identifier that is safe to
// write without quoting.
func ValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// Querier wraps the basic Query method that is implemented
// by the different builders in this package.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Argument is implemented by values that write their own placeholder form
// instead of a single "?".
type Argument interface {
	WriteArg(*Builder)
}

// Raw is an argument written verbatim into the statement.
type Raw string

// WriteArg implements the Argument interface.
func (r Raw) WriteArg(b *Builder) { b.WriteString(string(r)) }

// Builder is the base query builder for the sql dsl.
type Builder struct {
	sb      strings.Builder
	args    []any
	dialect string
	errs    []error
	nested  bool
}

// NewBuilder returns an empty Builder for the given dialect.
func NewBuilder(dialect string) *Builder {
	return &Builder{dialect: dialect}
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string { return b.dialect }

// String returns the accumulated string.
func (b *Builder) String() string { return b.sb.String() }

// Len returns the number of accumulated bytes.
func (b *Builder) Len() int { return b.sb.Len() }

// Query implements the Querier interface.
func (b *Builder) Query() (string, []any) { return b.String(), b.args }

// Nested reports whether a nested query (subquery) was written to the builder.
func (b *Builder) Nested() bool { return b.nested }

// AddError appends non-nil errors to the builder errors.
func (b *Builder) AddError(errs ...error) *Builder {
	for _, err := range errs {
		if err != nil {
			b.errs = append(b.errs, err)
		}
	}
	return b
}

// Err returns a concatenated error of all errors encountered during
// the query-building, or were added manually by calling AddError.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// WriteString writes the given string as-is.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte writes the given byte as-is.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Pad adds a space to the query.
func (b *Builder) Pad() *Builder { return b.WriteByte(' ') }

// Comma adds a comma to the query.
func (b *Builder) Comma() *Builder { return b.WriteString(", ") }

// Quote quotes the given identifier with the dialect quote character.
// Expressions ("*", function calls, aliases) and already quoted identifiers
// are returned unchanged.
func (b *Builder) Quote(ident string) string {
	if strings.ContainsAny(ident, "`\"( *") {
		return ident
	}
	q := `"`
	if b.dialect == dialect.MySQL || b.dialect == dialect.SphinxQL {
		q = "`"
	}
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		parts[i] = q + p + q
	}
	return strings.Join(parts, ".")
}

// Ident appends the given string as a quoted identifier.
func (b *Builder) Ident(s string) *Builder {
	return b.WriteString(b.Quote(s))
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s[i])
	}
	return b
}

// Order writes an ordering term of the form "column [ASC|DESC]", quoting
// only the column part.
func (b *Builder) Order(term string) *Builder {
	col, dir := term, ""
	if i := strings.LastIndexByte(term, ' '); i > 0 {
		switch d := strings.ToUpper(term[i+1:]); d {
		case "ASC", "DESC":
			col, dir = term[:i], d
		}
	}
	b.Ident(col)
	if dir != "" {
		b.Pad().WriteString(dir)
	}
	return b
}

// OrderComma calls Order on all terms and adds a comma between them.
func (b *Builder) OrderComma(terms ...string) *Builder {
	for i := range terms {
		if i > 0 {
			b.Comma()
		}
		b.Order(terms[i])
	}
	return b
}

// Arg appends an input argument to the builder.
func (b *Builder) Arg(a any) *Builder {
	if w, ok := a.(Argument); ok {
		w.WriteArg(b)
		return b
	}
	b.args = append(b.args, a)
	return b.WriteByte('?')
}

// Args appends a list of arguments to the builder, separated by commas.
func (b *Builder) Args(a ...any) *Builder {
	for i := range a {
		if i > 0 {
			b.Comma()
		}
		b.Arg(a[i])
	}
	return b
}

// Int writes an integer literal.
func (b *Builder) Int(n int) *Builder {
	return b.WriteString(strconv.Itoa(n))
}

// Join joins a list of Queries to the builder, merging their arguments
// and errors.
func (b *Builder) Join(qs ...Querier) *Builder {
	for _, q := range qs {
		query, args := q.Query()
		b.WriteString(query)
		b.args = append(b.args, args...)
		if e, ok := q.(interface{ Err() error }); ok {
			b.AddError(e.Err())
		}
	}
	return b
}

// Nest writes the given query wrapped with parentheses and marks the
// builder as containing a nested query.
func (b *Builder) Nest(q Querier) *Builder {
	if s, ok := q.(*Selector); ok && s.dialect == "" {
		s.dialect = b.dialect
	}
	b.nested = true
	b.WriteByte('(')
	b.Join(q)
	return b.WriteByte(')')
}

// Render returns the query, its arguments and any error collected while
// building it. It is the error-returning form of Querier.Query.
func Render(q Querier) (string, []any, error) {
	query, args := q.Query()
	if e, ok := q.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			return "", nil, err
		}
	}
	return query, args, nil
}

// DialectBuilder prefixes all root builders with the given dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Select creates a Selector for the configured dialect.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	s := Select(columns...)
	s.dialect = d.dialect
	return s
}

// Insert creates an InsertBuilder for the configured dialect.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	i := Insert(table)
	i.dialect = d.dialect
	return i
}

// Update creates an UpdateBuilder for the configured dialect.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	u := Update(table)
	u.dialect = d.dialect
	return u
}

// Delete creates a DeleteBuilder for the configured dialect.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	del := Delete(table)
	del.dialect = d.dialect
	return del
}

// InsertBuilder is a builder for `INSERT INTO` and `REPLACE INTO` statements.
type InsertBuilder struct {
	dialect string
	verb    string
	table   string
	columns []string
	values  [][]any
}

// Insert creates a builder for the `INSERT INTO` statement.
//
//	Insert("users").
//		Columns("name", "age").
//		Values("a8m", 10).
//		Values("foo", 20)
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table, verb: "INSERT"}
}

// Replace switches the statement verb to REPLACE.
func (i *InsertBuilder) Replace() *InsertBuilder {
	i.verb = "REPLACE"
	return i
}

// Table returns the target table of the statement.
func (i *InsertBuilder) Table() string { return i.table }

// Columns sets the columns of the insert statement.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append(i.columns, columns...)
	return i
}

// Values append a value tuple for the insert statement.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append(i.values, values)
	return i
}

func (i *InsertBuilder) render(b *Builder) {
	if i.table == "" {
		b.AddError(fmt.Errorf("dialect/sql: %s: missing table name", strings.ToLower(i.verb)))
	}
	if len(i.columns) == 0 || len(i.values) == 0 {
		b.AddError(fmt.Errorf("dialect/sql: %s: no values", strings.ToLower(i.verb)))
	}
	b.WriteString(i.verb).WriteString(" INTO ").Ident(i.table).Pad()
	b.WriteByte('(').IdentComma(i.columns...).WriteString(") VALUES ")
	for j, v := range i.values {
		if len(v) != len(i.columns) {
			b.AddError(fmt.Errorf("dialect/sql: %s: row %d has %d values, expected %d", strings.ToLower(i.verb), j, len(v), len(i.columns)))
		}
		if j > 0 {
			b.Comma()
		}
		b.WriteByte('(').Args(v...).WriteByte(')')
	}
}

// Query returns query representation of an `INSERT INTO` statement.
func (i *InsertBuilder) Query() (string, []any) {
	b := NewBuilder(i.dialect)
	i.render(b)
	return b.Query()
}

// Err returns the errors found while building the statement.
func (i *InsertBuilder) Err() error {
	b := NewBuilder(i.dialect)
	i.render(b)
	return b.Err()
}

// UpdateBuilder is a builder for `UPDATE` statement.
type UpdateBuilder struct {
	dialect string
	table   string
	columns []string
	values  []any
	where   *Predicate
}

// Update creates a builder for the `UPDATE` statement.
//
//	Update("users").Set("name", "foo").Set("age", 10)
func Update(table string) *UpdateBuilder { return &UpdateBuilder{table: table} }

// Table returns the target table of the statement.
func (u *UpdateBuilder) Table() string { return u.table }

// Set sets a column to a given value.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where adds a where predicate for update statement. Calling it again
// combines the predicates with AND.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	u.where = and(u.where, p)
	return u
}

// WhereP returns the where predicate of the statement, or nil.
func (u *UpdateBuilder) WhereP() *Predicate { return u.where }

func (u *UpdateBuilder) render(b *Builder) {
	if u.table == "" {
		b.AddError(errors.New("dialect/sql: update: missing table name"))
	}
	if len(u.columns) == 0 {
		b.AddError(errors.New("dialect/sql: update: no columns to set"))
	}
	b.WriteString("UPDATE ").Ident(u.table).WriteString(" SET ")
	for i, c := range u.columns {
		if i > 0 {
			b.Comma()
		}
		b.Ident(c).WriteString(" = ").Arg(u.values[i])
	}
	if u.where != nil {
		b.WriteString(" WHERE ")
		u.where.Render(b)
	}
}

// Query returns query representation of an `UPDATE` statement.
func (u *UpdateBuilder) Query() (string, []any) {
	b := NewBuilder(u.dialect)
	u.render(b)
	return b.Query()
}

// Err returns the errors found while building the statement.
func (u *UpdateBuilder) Err() error {
	b := NewBuilder(u.dialect)
	u.render(b)
	return b.Err()
}

// DeleteBuilder is a builder for `DELETE` statement.
type DeleteBuilder struct {
	dialect string
	table   string
	where   *Predicate
}

// Delete creates a builder for the `DELETE` statement.
//
//	Delete("users").
//		Where(
//			Or(
//				And(EQ("name", "foo"), EQ("age", 10)),
//				And(EQ("name", "bar"), EQ("age", 20)),
//			),
//		)
func Delete(table string) *DeleteBuilder { return &DeleteBuilder{table: table} }

// Table returns the target table of the statement.
func (d *DeleteBuilder) Table() string { return d.table }

// Where appends a where predicate to the `DELETE` statement.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	d.where = and(d.where, p)
	return d
}

// WhereP returns the where predicate of the statement, or nil.
func (d *DeleteBuilder) WhereP() *Predicate { return d.where }

func (d *DeleteBuilder) render(b *Builder) {
	if d.table == "" {
		b.AddError(errors.New("dialect/sql: delete: missing table name"))
	}
	b.WriteString("DELETE FROM ").Ident(d.table)
	if d.where != nil {
		b.WriteString(" WHERE ")
		d.where.Render(b)
	}
}

// Query returns query representation of a `DELETE` statement.
func (d *DeleteBuilder) Query() (string, []any) {
	b := NewBuilder(d.dialect)
	d.render(b)
	return b.Query()
}

// Err returns the errors found while building the statement.
func (d *DeleteBuilder) Err() error {
	b := NewBuilder(d.dialect)
	d.render(b)
	return b.Err()
}

func and(p1, p2 *Predicate) *Predicate {
	switch {
	case p1 == nil:
		return p2
	case p2 == nil:
		return p1
	default:
		return And(p1, p2)
	}
}
