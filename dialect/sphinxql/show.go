package sphinxql

import (
	"fmt"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// ShowTarget is the object of a SHOW statement.
type ShowTarget string

// SHOW statement targets.
const (
	ShowMeta     ShowTarget = "META"
	ShowStatus   ShowTarget = "STATUS"
	ShowWarnings ShowTarget = "WARNINGS"
	ShowTables   ShowTarget = "TABLES"
)

// ShowBuilder is a SHOW statement. META, STATUS and WARNINGS describe the
// current session; TABLES lists the indexes served by the daemon.
type ShowBuilder struct {
	target ShowTarget
	like   string
}

// Show returns a SHOW statement for the target.
func Show(target ShowTarget) *ShowBuilder {
	return &ShowBuilder{target: target}
}

// Like filters the returned variables or indexes by a LIKE pattern.
func (s *ShowBuilder) Like(pattern string) *ShowBuilder {
	s.like = pattern
	return s
}

// Target returns the object of the statement.
func (s *ShowBuilder) Target() ShowTarget { return s.target }

// Kind implements the Statement interface.
func (*ShowBuilder) Kind() Kind { return KindShow }

// Index implements the Statement interface. SHOW statements have no
// target index.
func (*ShowBuilder) Index() string { return "" }

func (s *ShowBuilder) render(b *sql.Builder) {
	switch s.target {
	case ShowMeta, ShowStatus, ShowTables:
	case ShowWarnings:
		if s.like != "" {
			b.AddError(unsupported("SHOW WARNINGS LIKE"))
		}
	default:
		b.AddError(fmt.Errorf("sphinxql: unknown SHOW target %q", s.target))
	}
	b.WriteString("SHOW ").WriteString(string(s.target))
	if s.like != "" {
		b.WriteString(" LIKE ").Arg(s.like)
	}
}

// Query returns the statement text and arguments.
func (s *ShowBuilder) Query() (string, []any) {
	b := sql.NewBuilder(dialect.SphinxQL)
	s.render(b)
	return b.Query()
}

// Err returns the errors found while building the statement.
func (s *ShowBuilder) Err() error {
	b := sql.NewBuilder(dialect.SphinxQL)
	s.render(b)
	return b.Err()
}
