package sphinxql

// SQL creates statements bound to a platform. An empty index passed to a
// constructor falls back to the default index, when one is configured.
type SQL struct {
	platform *Platform
	index    string
}

// Option configures an SQL factory.
type Option func(*SQL)

// WithPlatform sets the platform used by Render.
func WithPlatform(p *Platform) Option {
	return func(s *SQL) {
		if p != nil {
			s.platform = p
		}
	}
}

// WithDefaultIndex sets the index used when a constructor is called with
// an empty one.
func WithDefaultIndex(index string) Option {
	return func(s *SQL) {
		s.index = index
	}
}

// New returns a statement factory for the SphinxQL platform.
func New(opts ...Option) *SQL {
	s := &SQL{platform: NewPlatform()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Platform returns the platform of the factory.
func (s *SQL) Platform() *Platform { return s.platform }

// DefaultIndex returns the configured default index.
func (s *SQL) DefaultIndex() string { return s.index }

func (s *SQL) indexOr(index string) string {
	if index == "" {
		return s.index
	}
	return index
}

// Select returns a SELECT statement over the given indexes.
func (s *SQL) Select(indexes ...string) *Selector {
	if len(indexes) == 0 {
		indexes = []string{""}
	}
	names := make([]string, len(indexes))
	for i, idx := range indexes {
		names[i] = s.indexOr(idx)
	}
	return Select().From(names...)
}

// Insert returns an INSERT statement.
func (s *SQL) Insert(index string) *InsertBuilder { return Insert(s.indexOr(index)) }

// Replace returns a REPLACE statement.
func (s *SQL) Replace(index string) *InsertBuilder { return Replace(s.indexOr(index)) }

// Update returns an UPDATE statement.
func (s *SQL) Update(index string) *UpdateBuilder { return Update(s.indexOr(index)) }

// Delete returns a DELETE statement.
func (s *SQL) Delete(index string) *DeleteBuilder { return Delete(s.indexOr(index)) }

// Truncate returns a TRUNCATE RTINDEX statement.
func (s *SQL) Truncate(index string) *TruncateBuilder { return Truncate(s.indexOr(index)) }

// Show returns a SHOW statement.
func (s *SQL) Show(target ShowTarget) *ShowBuilder { return Show(target) }

// Render renders the statement through the platform.
func (s *SQL) Render(stmt Statement) (string, []any, error) {
	return s.platform.Render(stmt)
}
