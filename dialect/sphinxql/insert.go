package sphinxql

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// MVA is a multi-value attribute. It renders as a tuple, (?, ?, ...).
type MVA []int64

// WriteArg implements the sql.Argument interface.
func (m MVA) WriteArg(b *sql.Builder) {
	b.WriteByte('(')
	for i, v := range m {
		if i > 0 {
			b.Comma()
		}
		b.Arg(v)
	}
	b.WriteByte(')')
}

// attrValue converts integer slices to MVA tuples.
func attrValue(v any) any {
	switch v := v.(type) {
	case []int64:
		return MVA(v)
	case []int:
		return toMVA(v)
	case []int32:
		return toMVA(v)
	case []uint32:
		return toMVA(v)
	case []uint64:
		for _, u := range v {
			if u > math.MaxInt64 {
				return invalidValue{fmt.Errorf("sphinxql: MVA value %d overflows int64", u)}
			}
		}
		return toMVA(v)
	default:
		return v
	}
}

func toMVA[T int | int32 | uint32 | uint64](vs []T) MVA {
	m := make(MVA, len(vs))
	for i, v := range vs {
		m[i] = int64(v)
	}
	return m
}

// invalidValue is a value that cannot be bound. Writing it fails the
// statement.
type invalidValue struct{ err error }

// WriteArg implements the sql.Argument interface.
func (v invalidValue) WriteArg(b *sql.Builder) {
	b.AddError(v.err).WriteString("()")
}

// checkColumns reports the first column name that cannot be written as a
// quoted identifier.
func checkColumns(columns []string) error {
	for _, c := range columns {
		if !sql.ValidIdentifier(c) {
			return fmt.Errorf("sphinxql: invalid column name %q", c)
		}
	}
	return nil
}

// InsertBuilder is an INSERT or REPLACE statement against an index.
type InsertBuilder struct {
	replace bool
	index   string
	values  map[string]any
}

// Insert returns an INSERT statement for the index.
func Insert(index string) *InsertBuilder {
	return &InsertBuilder{index: index}
}

// Replace returns a REPLACE statement for the index.
func Replace(index string) *InsertBuilder {
	return &InsertBuilder{index: index, replace: true}
}

// Into sets the target index.
func (i *InsertBuilder) Into(index string) *InsertBuilder {
	i.index = index
	return i
}

// Values sets the document attributes and fields. It replaces any mapping
// set before; values are not merged.
func (i *InsertBuilder) Values(values map[string]any) *InsertBuilder {
	i.values = maps.Clone(values)
	return i
}

// Columns returns the column names in rendering order.
func (i *InsertBuilder) Columns() []string {
	return slices.Sorted(maps.Keys(i.values))
}

// Kind implements the Statement interface.
func (i *InsertBuilder) Kind() Kind {
	if i.replace {
		return KindReplace
	}
	return KindInsert
}

// Index implements the Statement interface.
func (i *InsertBuilder) Index() string { return i.index }

func (i *InsertBuilder) build() *sql.InsertBuilder {
	ins := sql.Dialect(dialect.SphinxQL).Insert(i.index)
	if i.replace {
		ins.Replace()
	}
	columns := i.Columns()
	values := make([]any, len(columns))
	for j, c := range columns {
		values[j] = attrValue(i.values[c])
	}
	return ins.Columns(columns...).Values(values...)
}

// Query returns the statement text and arguments.
func (i *InsertBuilder) Query() (string, []any) {
	return i.build().Query()
}

// Err returns the errors found while building the statement.
func (i *InsertBuilder) Err() error {
	switch {
	case i.index == "":
		return ErrMissingIndex
	case len(i.values) == 0:
		return ErrEmptyValues
	}
	if err := checkColumns(i.Columns()); err != nil {
		return err
	}
	return i.build().Err()
}
