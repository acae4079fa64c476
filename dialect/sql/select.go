package sql

import "errors"

// TableView is a view that returns a table view. Can be a Table or a Selector.
type TableView interface {
	view()
}

// SelectTable is a table selector.
type SelectTable struct {
	name string
	as   string
}

// Table returns a new table selector.
//
//	t1 := Table("users").As("u")
//	return Select(t1.C("name"))
func Table(name string) *SelectTable {
	return &SelectTable{name: name}
}

// As adds the AS clause to the table selector.
func (s *SelectTable) As(alias string) *SelectTable {
	s.as = alias
	return s
}

// C returns a formatted string for the table column.
func (s *SelectTable) C(column string) string {
	name := s.name
	if s.as != "" {
		name = s.as
	}
	return name + "." + column
}

// Name returns the table name.
func (s *SelectTable) Name() string { return s.name }

// Alias returns the table alias, if any.
func (s *SelectTable) Alias() string { return s.as }

func (*SelectTable) view() {}

// joinClause describes a JOIN clause.
type joinClause struct {
	kind  string
	table TableView
	on    *Predicate
}

// Selector is a builder for the `SELECT` statement.
type Selector struct {
	dialect  string
	as       string
	distinct bool
	columns  []string
	from     []TableView
	joins    []joinClause
	where    *Predicate
	group    []string
	having   *Predicate
	order    []string
	limit    *int
	offset   *int
	errs     []error
}

// Select returns a new selector for the `SELECT` statement.
//
//	t1 := Table("users").As("u")
//	t2 := Select().From(Table("groups")).Where(EQ("user_id", 10)).As("g")
//	return Select(t1.C("id"), t2.C("name")).
//			From(t1).
//			Join(t2).
//			On(t1.C("id"), t2.C("user_id"))
func Select(columns ...string) *Selector {
	return (&Selector{}).Select(columns...)
}

// Select changes the columns selection of the SELECT statement.
// Empty selection means all columns *.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = append(s.columns[:0:0], columns...)
	return s
}

// AppendSelect appends additional columns to the SELECT statement.
func (s *Selector) AppendSelect(columns ...string) *Selector {
	s.columns = append(s.columns, columns...)
	return s
}

// Distinct adds the DISTINCT keyword to the `SELECT` statement.
func (s *Selector) Distinct() *Selector {
	s.distinct = true
	return s
}

// From sets the source of `FROM` clause. Calling it again appends
// another source.
func (s *Selector) From(ts ...TableView) *Selector {
	s.from = append(s.from, ts...)
	return s
}

// As give this selection an alias.
func (s *Selector) As(alias string) *Selector {
	s.as = alias
	return s
}

// C returns a formatted string for a selected column from this statement.
func (s *Selector) C(column string) string {
	if s.as != "" {
		return s.as + "." + column
	}
	return column
}

// Join appends a `JOIN` clause to the statement.
func (s *Selector) Join(t TableView) *Selector {
	return s.join("JOIN", t)
}

// LeftJoin appends a `LEFT JOIN` clause to the statement.
func (s *Selector) LeftJoin(t TableView) *Selector {
	return s.join("LEFT JOIN", t)
}

func (s *Selector) join(kind string, t TableView) *Selector {
	s.joins = append(s.joins, joinClause{kind: kind, table: t})
	return s
}

// On sets the `ON` clause for the last `JOIN` operation.
func (s *Selector) On(c1, c2 string) *Selector {
	if len(s.joins) == 0 {
		s.errs = append(s.errs, errors.New("dialect/sql: ON called without JOIN"))
		return s
	}
	s.joins[len(s.joins)-1].on = P(func(b *Builder) {
		b.Ident(c1).WriteString(" = ").Ident(c2)
	})
	return s
}

// Where sets or appends the given predicate to the statement.
func (s *Selector) Where(p *Predicate) *Selector {
	s.where = and(s.where, p)
	return s
}

// GroupBy appends the `GROUP BY` clause to the `SELECT` statement.
func (s *Selector) GroupBy(columns ...string) *Selector {
	s.group = append(s.group, columns...)
	return s
}

// Having appends a predicate for the `HAVING` clause.
func (s *Selector) Having(p *Predicate) *Selector {
	s.having = and(s.having, p)
	return s
}

// OrderBy appends the `ORDER BY` clause to the `SELECT` statement.
// Terms are column names optionally suffixed with ASC or DESC.
func (s *Selector) OrderBy(terms ...string) *Selector {
	s.order = append(s.order, terms...)
	return s
}

// Limit adds the `LIMIT` clause to the `SELECT` statement.
func (s *Selector) Limit(limit int) *Selector {
	s.limit = &limit
	return s
}

// Offset adds the `OFFSET` clause to the `SELECT` statement.
func (s *Selector) Offset(offset int) *Selector {
	s.offset = &offset
	return s
}

// Asc adds the ASC suffix for the given column.
func Asc(column string) string { return column + " ASC" }

// Desc adds the DESC suffix for the given column.
func Desc(column string) string { return column + " DESC" }

func (*Selector) view() {}

// SelectParts is a read-only view of the selector model, consumed by
// dialect renderers that emit their own grammar.
type SelectParts struct {
	Distinct bool
	Columns  []string
	Tables   []*SelectTable
	Derived  []*Selector
	Joins    int
	Where    *Predicate
	GroupBy  []string
	Having   *Predicate
	OrderBy  []string
	Limit    *int
	Offset   *int
}

// Parts returns the selector model.
func (s *Selector) Parts() SelectParts {
	p := SelectParts{
		Distinct: s.distinct,
		Columns:  s.columns,
		Joins:    len(s.joins),
		Where:    s.where,
		GroupBy:  s.group,
		Having:   s.having,
		OrderBy:  s.order,
		Limit:    s.limit,
		Offset:   s.offset,
	}
	for _, t := range s.from {
		switch t := t.(type) {
		case *SelectTable:
			p.Tables = append(p.Tables, t)
		case *Selector:
			p.Derived = append(p.Derived, t)
		}
	}
	return p
}

func (s *Selector) writeView(b *Builder, t TableView) {
	switch t := t.(type) {
	case *SelectTable:
		b.Ident(t.name)
		if t.as != "" {
			b.WriteString(" AS ").Ident(t.as)
		}
	case *Selector:
		t.dialect = s.dialect
		b.Nest(t)
		if t.as != "" {
			b.WriteString(" AS ").Ident(t.as)
		}
	}
}

func (s *Selector) render(b *Builder) {
	b.AddError(s.errs...)
	b.WriteString("SELECT ")
	if s.distinct {
		b.WriteString("DISTINCT ")
	}
	if len(s.columns) > 0 {
		b.IdentComma(s.columns...)
	} else {
		b.WriteByte('*')
	}
	if len(s.from) > 0 {
		b.WriteString(" FROM ")
		for i, t := range s.from {
			if i > 0 {
				b.Comma()
			}
			s.writeView(b, t)
		}
	}
	for _, j := range s.joins {
		b.Pad().WriteString(j.kind).Pad()
		s.writeView(b, j.table)
		if j.on != nil {
			b.WriteString(" ON ")
			j.on.Render(b)
		}
	}
	if s.where != nil {
		b.WriteString(" WHERE ")
		s.where.Render(b)
	}
	if len(s.group) > 0 {
		b.WriteString(" GROUP BY ").IdentComma(s.group...)
	}
	if s.having != nil {
		b.WriteString(" HAVING ")
		s.having.Render(b)
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ").OrderComma(s.order...)
	}
	if s.limit != nil {
		b.WriteString(" LIMIT ").Int(*s.limit)
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ").Int(*s.offset)
	}
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	b := NewBuilder(s.dialect)
	s.render(b)
	return b.Query()
}

// Err returns the errors found while building the statement.
func (s *Selector) Err() error {
	b := NewBuilder(s.dialect)
	s.render(b)
	return b.Err()
}

// Dialect returns the dialect of the selector.
func (s *Selector) Dialect() string { return s.dialect }

// SetDialect sets the dialect of the selector.
func (s *Selector) SetDialect(dialect string) *Selector {
	s.dialect = dialect
	return s
}
