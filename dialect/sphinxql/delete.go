package sphinxql

import (
	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// DeleteBuilder is a DELETE statement against an index.
type DeleteBuilder struct {
	index string
	where *sql.Predicate
}

// Delete returns a DELETE statement for the index.
func Delete(index string) *DeleteBuilder {
	return &DeleteBuilder{index: index}
}

// From sets the target index.
func (d *DeleteBuilder) From(index string) *DeleteBuilder {
	d.index = index
	return d
}

// Where sets the statement condition, replacing the previous one.
// A nil predicate clears the condition.
func (d *DeleteBuilder) Where(p DeletePredicate) *DeleteBuilder {
	d.where = nil
	if p != nil {
		p.applyDelete(d)
	}
	return d
}

// WhereP sets the statement condition to the conjunction of ps.
func (d *DeleteBuilder) WhereP(ps ...*sql.Predicate) *DeleteBuilder {
	d.where = conjunction(ps)
	return d
}

// HasWhere reports whether the statement has a condition.
func (d *DeleteBuilder) HasWhere() bool { return d.where != nil }

// Kind implements the Statement interface.
func (*DeleteBuilder) Kind() Kind { return KindDelete }

// Index implements the Statement interface.
func (d *DeleteBuilder) Index() string { return d.index }

func (d *DeleteBuilder) build() *sql.DeleteBuilder {
	del := sql.Dialect(dialect.SphinxQL).Delete(d.index)
	if d.where != nil {
		del.Where(d.where)
	}
	return del
}

// Query returns the statement text and arguments.
func (d *DeleteBuilder) Query() (string, []any) {
	return d.build().Query()
}

// Err returns the errors found while building the statement.
func (d *DeleteBuilder) Err() error {
	switch {
	case d.index == "":
		return ErrMissingIndex
	case d.where == nil:
		return ErrMissingWhere
	}
	b := sql.NewBuilder(dialect.SphinxQL)
	b.Join(d.build())
	if nested(d.where) {
		return unsupported("subquery")
	}
	return b.Err()
}
