package sphinxql

import (
	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// TruncateBuilder is a TRUNCATE RTINDEX statement. It removes every
// document of a real-time index.
type TruncateBuilder struct {
	index string
}

// Truncate returns a TRUNCATE RTINDEX statement for the index.
func Truncate(index string) *TruncateBuilder {
	return &TruncateBuilder{index: index}
}

// Kind implements the Statement interface.
func (*TruncateBuilder) Kind() Kind { return KindTruncate }

// Index implements the Statement interface.
func (t *TruncateBuilder) Index() string { return t.index }

// Query returns the statement text.
func (t *TruncateBuilder) Query() (string, []any) {
	b := sql.NewBuilder(dialect.SphinxQL)
	b.WriteString("TRUNCATE RTINDEX ").Ident(t.index)
	return b.Query()
}

// Err returns ErrMissingIndex when no index is set.
func (t *TruncateBuilder) Err() error {
	if t.index == "" {
		return ErrMissingIndex
	}
	return nil
}
