package sphinxql

import (
	"maps"
	"slices"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// UpdateBuilder is an UPDATE statement against an index.
type UpdateBuilder struct {
	index   string
	set     map[string]any
	where   *sql.Predicate
	options options
}

// Update returns an UPDATE statement for the index.
func Update(index string) *UpdateBuilder {
	return &UpdateBuilder{index: index}
}

// Table sets the target index.
func (u *UpdateBuilder) Table(index string) *UpdateBuilder {
	u.index = index
	return u
}

// Set sets the attribute values to write. It replaces any mapping set
// before.
func (u *UpdateBuilder) Set(values map[string]any) *UpdateBuilder {
	u.set = maps.Clone(values)
	return u
}

// Where sets the statement condition, replacing the previous one.
// A Literal is written as-is; an UpdateFunc is called once with u.
// A nil predicate clears the condition.
func (u *UpdateBuilder) Where(p UpdatePredicate) *UpdateBuilder {
	u.where = nil
	if p != nil {
		p.applyUpdate(u)
	}
	return u
}

// WhereP sets the statement condition to the conjunction of ps,
// replacing the previous one.
func (u *UpdateBuilder) WhereP(ps ...*sql.Predicate) *UpdateBuilder {
	u.where = conjunction(ps)
	return u
}

// HasWhere reports whether the statement has a condition.
func (u *UpdateBuilder) HasWhere() bool { return u.where != nil }

// Option sets an OPTION clause entry, e.g. Option("strict", 1).
func (u *UpdateBuilder) Option(name string, value any) *UpdateBuilder {
	u.options.set(name, value)
	return u
}

// Kind implements the Statement interface.
func (*UpdateBuilder) Kind() Kind { return KindUpdate }

// Index implements the Statement interface.
func (u *UpdateBuilder) Index() string { return u.index }

func (u *UpdateBuilder) render(b *sql.Builder) {
	upd := sql.Dialect(dialect.SphinxQL).Update(u.index)
	for _, c := range slices.Sorted(maps.Keys(u.set)) {
		upd.Set(c, attrValue(u.set[c]))
	}
	if u.where != nil {
		upd.Where(u.where)
	}
	b.Join(upd)
	u.options.render(b)
}

// Query returns the statement text and arguments.
func (u *UpdateBuilder) Query() (string, []any) {
	b := sql.NewBuilder(dialect.SphinxQL)
	u.render(b)
	return b.Query()
}

// Err returns the errors found while building the statement.
func (u *UpdateBuilder) Err() error {
	switch {
	case u.index == "":
		return ErrMissingIndex
	case len(u.set) == 0:
		return ErrEmptyValues
	case u.where == nil:
		return ErrMissingWhere
	}
	if err := checkColumns(slices.Sorted(maps.Keys(u.set))); err != nil {
		return err
	}
	b := sql.NewBuilder(dialect.SphinxQL)
	u.render(b)
	if nested(u.where) {
		return unsupported("subquery")
	}
	return b.Err()
}

func conjunction(ps []*sql.Predicate) *sql.Predicate {
	ps = slices.DeleteFunc(slices.Clone(ps), func(p *sql.Predicate) bool { return p == nil })
	switch len(ps) {
	case 0:
		return nil
	case 1:
		return ps[0]
	default:
		return sql.And(ps...)
	}
}
