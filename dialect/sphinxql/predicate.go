package sphinxql

import (
	"strings"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// UpdatePredicate is the condition of an UPDATE statement: a Literal, an
// UpdateFunc or a Filter.
type UpdatePredicate interface {
	applyUpdate(*UpdateBuilder)
}

// DeletePredicate is the condition of a DELETE statement: a Literal, a
// DeleteFunc or a Filter.
type DeletePredicate interface {
	applyDelete(*DeleteBuilder)
}

// SelectPredicate is an additional condition of a SELECT statement: a
// Literal, a SelectFunc or a Filter.
type SelectPredicate interface {
	applySelect(*Selector)
}

// Literal is a condition written verbatim into the WHERE clause.
// An empty literal means no condition.
//
//	sphinxql.Literal("id = 2")
type Literal string

func (l Literal) predicate() *sql.Predicate {
	if strings.TrimSpace(string(l)) == "" {
		return nil
	}
	return sql.Expr(string(l))
}

func (l Literal) applyUpdate(u *UpdateBuilder) { u.where = l.predicate() }
func (l Literal) applyDelete(d *DeleteBuilder) { d.where = l.predicate() }

func (l Literal) applySelect(s *Selector) {
	if p := l.predicate(); p != nil {
		s.Where(p)
	}
}

// UpdateFunc configures an UPDATE statement in place, typically by calling
// WhereP. It is invoked once, when passed to UpdateBuilder.Where.
type UpdateFunc func(*UpdateBuilder)

func (f UpdateFunc) applyUpdate(u *UpdateBuilder) { f(u) }

// DeleteFunc configures a DELETE statement in place. It is invoked once,
// when passed to DeleteBuilder.Where.
type DeleteFunc func(*DeleteBuilder)

func (f DeleteFunc) applyDelete(d *DeleteBuilder) { f(d) }

// SelectFunc configures a SELECT statement in place.
type SelectFunc func(*Selector)

func (f SelectFunc) applySelect(s *Selector) { f(s) }

// Filter is a predicate over the generic selector, as produced by the typed
// fields of dialect/sql:
//
//	var Price = sql.FloatField[sphinxql.Filter]("price")
//	ix.Delete(ctx, "products", Price.LT(1))
type Filter func(*sql.Selector)

func (f Filter) applySelect(s *Selector) { f(s.Selector) }

func (f Filter) where() *sql.Predicate {
	s := sql.Select()
	f(s)
	return s.Parts().Where
}

func (f Filter) applyUpdate(u *UpdateBuilder) { u.where = f.where() }
func (f Filter) applyDelete(d *DeleteBuilder) { d.where = f.where() }

// nested reports whether p embeds a subquery.
func nested(p *sql.Predicate) bool {
	if p == nil {
		return false
	}
	b := sql.NewBuilder(dialect.SphinxQL)
	p.Render(b)
	return b.Nested()
}

// Match returns the full-text MATCH predicate. searchd accepts a single
// MATCH per statement.
//
//	sphinxql.Select().From("products").Where(sphinxql.Match("@title phone"))
func Match(query string) *sql.Predicate {
	return sql.P(func(b *sql.Builder) {
		b.WriteString("MATCH(").Arg(query).WriteByte(')')
	})
}

var matchEscaper = strings.NewReplacer(
	`\`, `\\`, `(`, `\(`, `)`, `\)`, `|`, `\|`, `-`, `\-`, `!`, `\!`,
	`@`, `\@`, `~`, `\~`, `"`, `\"`, `&`, `\&`, `/`, `\/`, `^`, `\^`,
	`$`, `\$`, `=`, `\=`, `<`, `\<`,
)

// EscapeMatch escapes the characters that have a meaning in the extended
// query syntax, so user input can be matched literally.
func EscapeMatch(s string) string {
	return matchEscaper.Replace(s)
}
