package sql

import "fmt"

// Predicate is a where predicate. It is rendered lazily into the builder
// of the statement that holds it, so quoting follows that statement's dialect.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate.
//
//	P(func(b *Builder) {
//		b.Ident("name").WriteString(" = ").Arg("a8m")
//	})
func P(fns ...func(*Builder)) *Predicate {
	return &Predicate{fns: fns}
}

// Append appends a new function to the predicate callbacks.
func (p *Predicate) Append(f func(*Builder)) *Predicate {
	p.fns = append(p.fns, f)
	return p
}

// Render writes the predicate into b.
func (p *Predicate) Render(b *Builder) {
	for _, f := range p.fns {
		f(b)
	}
}

// Query returns query representation of a predicate.
func (p *Predicate) Query() (string, []any) {
	b := NewBuilder("")
	p.Render(b)
	return b.Query()
}

// Expr returns an SQL expression written as-is. Placeholders in the
// expression bind to args in order.
//
//	Expr("id = ?", 2)
func Expr(raw string, args ...any) *Predicate {
	return P(func(b *Builder) {
		b.WriteString(raw)
		b.args = append(b.args, args...)
	})
}

func compare(col, op string, v any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(op).Arg(v)
	})
}

// EQ returns a "=" predicate.
func EQ(col string, value any) *Predicate { return compare(col, " = ", value) }

// NEQ returns a "<>" predicate.
func NEQ(col string, value any) *Predicate { return compare(col, " <> ", value) }

// LT returns a "<" predicate.
func LT(col string, value any) *Predicate { return compare(col, " < ", value) }

// LTE returns a "<=" predicate.
func LTE(col string, value any) *Predicate { return compare(col, " <= ", value) }

// GT returns a ">" predicate.
func GT(col string, value any) *Predicate { return compare(col, " > ", value) }

// GTE returns a ">=" predicate.
func GTE(col string, value any) *Predicate { return compare(col, " >= ", value) }

// Like returns a "LIKE" predicate.
func Like(col, pattern string) *Predicate { return compare(col, " LIKE ", pattern) }

// Between returns a "BETWEEN" predicate.
func Between(col string, lo, hi any) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" BETWEEN ").Arg(lo).WriteString(" AND ").Arg(hi)
	})
}

// IsNull returns an "IS NULL" predicate.
func IsNull(col string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" IS NULL") })
}

// NotNull returns an "IS NOT NULL" predicate.
func NotNull(col string) *Predicate {
	return P(func(b *Builder) { b.Ident(col).WriteString(" IS NOT NULL") })
}

func in(col, op string, args []any) *Predicate {
	return P(func(b *Builder) {
		if len(args) == 0 {
			b.AddError(fmt.Errorf("dialect/sql: %s%s requires at least one value", col, op))
		}
		b.Ident(col).WriteString(op).WriteByte('(').Args(args...).WriteByte(')')
	})
}

// In returns an "IN" predicate.
func In(col string, args ...any) *Predicate { return in(col, " IN ", args) }

// NotIn returns a "NOT IN" predicate.
func NotIn(col string, args ...any) *Predicate { return in(col, " NOT IN ", args) }

// InQuery returns an "IN" predicate over a nested query.
//
//	InQuery("id", Select("user_id").From(Table("groups")))
func InQuery(col string, q Querier) *Predicate {
	return P(func(b *Builder) {
		b.Ident(col).WriteString(" IN ").Nest(q)
	})
}

func join(op string, preds []*Predicate) *Predicate {
	return P(func(b *Builder) {
		if len(preds) == 1 {
			preds[0].Render(b)
			return
		}
		for i, p := range preds {
			if i > 0 {
				b.WriteString(op)
			}
			b.WriteByte('(')
			p.Render(b)
			b.WriteByte(')')
		}
	})
}

// And combines all given predicates with AND between them.
func And(preds ...*Predicate) *Predicate { return join(" AND ", preds) }

// Or combines all given predicates with OR between them.
func Or(preds ...*Predicate) *Predicate { return join(" OR ", preds) }

// Not wraps the given predicate with the not predicate.
func Not(pred *Predicate) *Predicate {
	return P(func(b *Builder) {
		b.WriteString("NOT (")
		pred.Render(b)
		b.WriteByte(')')
	})
}
