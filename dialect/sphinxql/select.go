package sphinxql

import (
	"fmt"
	"strings"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// maxLimit is the row count written when a statement has an offset but no
// limit. searchd still caps the result at max_matches.
const maxLimit = 2147483647

// Selector is a SELECT statement against one or more indexes. It embeds
// the generic selector and adds the SphinxQL-only clauses.
type Selector struct {
	*sql.Selector
	withinGroup []string
	options     options
}

// Select returns a SELECT statement with the given columns.
func Select(columns ...string) *Selector {
	return &Selector{Selector: sql.Dialect(dialect.SphinxQL).Select(columns...)}
}

// FromSelector wraps a generic selector so it renders as SphinxQL.
func FromSelector(s *sql.Selector) *Selector {
	return &Selector{Selector: s.SetDialect(dialect.SphinxQL)}
}

// Select changes the columns selection.
func (s *Selector) Select(columns ...string) *Selector {
	s.Selector.Select(columns...)
	return s
}

// From appends indexes to the FROM clause.
func (s *Selector) From(indexes ...string) *Selector {
	for _, idx := range indexes {
		s.Selector.From(sql.Table(idx))
	}
	return s
}

// Where appends the given predicate with AND.
func (s *Selector) Where(p *sql.Predicate) *Selector {
	s.Selector.Where(p)
	return s
}

// Match appends a full-text MATCH condition.
func (s *Selector) Match(query string) *Selector {
	return s.Where(Match(query))
}

// GroupBy appends the GROUP BY clause.
func (s *Selector) GroupBy(columns ...string) *Selector {
	s.Selector.GroupBy(columns...)
	return s
}

// WithinGroupOrderBy sets how the best row of each group is chosen.
func (s *Selector) WithinGroupOrderBy(terms ...string) *Selector {
	s.withinGroup = append(s.withinGroup, terms...)
	return s
}

// Having appends a predicate for the HAVING clause.
func (s *Selector) Having(p *sql.Predicate) *Selector {
	s.Selector.Having(p)
	return s
}

// OrderBy appends the ORDER BY clause.
func (s *Selector) OrderBy(terms ...string) *Selector {
	s.Selector.OrderBy(terms...)
	return s
}

// Limit sets the number of returned rows.
func (s *Selector) Limit(limit int) *Selector {
	s.Selector.Limit(limit)
	return s
}

// Offset sets the number of skipped rows.
func (s *Selector) Offset(offset int) *Selector {
	s.Selector.Offset(offset)
	return s
}

// Apply applies an additional condition to the statement. A nil predicate
// is a no-op.
func (s *Selector) Apply(p SelectPredicate) *Selector {
	if p != nil {
		p.applySelect(s)
	}
	return s
}

// Option sets an OPTION clause entry, e.g. Option("ranker", "bm25") or
// Option("field_weights", Weights{"title": 10}).
func (s *Selector) Option(name string, value any) *Selector {
	s.options.set(name, value)
	return s
}

// Kind implements the Statement interface.
func (*Selector) Kind() Kind { return KindSelect }

// Index implements the Statement interface.
func (s *Selector) Index() string {
	var names []string
	for _, t := range s.Selector.Parts().Tables {
		names = append(names, t.Name())
	}
	return strings.Join(names, ",")
}

// Query renders the statement as SphinxQL. Errors are reported by Err.
func (s *Selector) Query() (string, []any) {
	query, args, _ := SelectDecorator{}.Render(s)
	return query, args
}

// Err returns the errors found while rendering the statement.
func (s *Selector) Err() error {
	_, _, err := SelectDecorator{}.Render(s)
	return err
}

// SelectDecorator renders SELECT statements in the SphinxQL grammar.
// It reads the generic selector model and rejects what searchd cannot
// execute: DISTINCT, joins, subqueries, index aliases and more than one
// MATCH.
type SelectDecorator struct{}

func unsupported(construct string) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, construct)
}

// Render implements the Renderer interface.
func (SelectDecorator) Render(stmt Statement) (string, []any, error) {
	s, ok := stmt.(*Selector)
	if !ok {
		return "", nil, fmt.Errorf("sphinxql: select decorator cannot render %T", stmt)
	}
	if err := s.Selector.Err(); err != nil {
		return "", nil, err
	}
	p := s.Selector.Parts()
	switch {
	case p.Distinct:
		return "", nil, unsupported("SELECT DISTINCT")
	case p.Joins > 0:
		return "", nil, unsupported("JOIN")
	case len(p.Derived) > 0:
		return "", nil, unsupported("subquery in FROM")
	case len(p.Tables) == 0:
		return "", nil, ErrMissingIndex
	case len(s.withinGroup) > 0 && len(p.GroupBy) == 0:
		return "", nil, fmt.Errorf("sphinxql: WITHIN GROUP ORDER BY requires GROUP BY")
	case p.Having != nil && len(p.GroupBy) == 0:
		return "", nil, fmt.Errorf("sphinxql: HAVING requires GROUP BY")
	}
	b := sql.NewBuilder(dialect.SphinxQL)
	b.WriteString("SELECT ")
	if len(p.Columns) > 0 {
		b.IdentComma(p.Columns...)
	} else {
		b.WriteByte('*')
	}
	b.WriteString(" FROM ")
	for i, t := range p.Tables {
		switch {
		case t.Name() == "":
			return "", nil, ErrMissingIndex
		case t.Alias() != "":
			return "", nil, unsupported("index alias " + t.Alias())
		}
		if i > 0 {
			b.Comma()
		}
		b.Ident(t.Name())
	}
	if p.Where != nil {
		b.WriteString(" WHERE ")
		start := b.Len()
		p.Where.Render(b)
		if n := strings.Count(strings.ToUpper(b.String()[start:]), "MATCH("); n > 1 {
			return "", nil, unsupported("multiple MATCH")
		}
	}
	if len(p.GroupBy) > 0 {
		b.WriteString(" GROUP BY ").IdentComma(p.GroupBy...)
	}
	if len(s.withinGroup) > 0 {
		b.WriteString(" WITHIN GROUP ORDER BY ").OrderComma(s.withinGroup...)
	}
	if p.Having != nil {
		b.WriteString(" HAVING ")
		p.Having.Render(b)
	}
	if len(p.OrderBy) > 0 {
		b.WriteString(" ORDER BY ").OrderComma(p.OrderBy...)
	}
	switch {
	case p.Offset != nil:
		limit := maxLimit
		if p.Limit != nil {
			limit = *p.Limit
		}
		b.WriteString(" LIMIT ").Int(*p.Offset).Comma().Int(limit)
	case p.Limit != nil:
		b.WriteString(" LIMIT ").Int(*p.Limit)
	}
	s.options.render(b)
	if b.Nested() {
		return "", nil, unsupported("subquery")
	}
	if err := b.Err(); err != nil {
		return "", nil, err
	}
	query, args := b.Query()
	return query, args, nil
}
