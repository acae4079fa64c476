package sphinx

import (
	"log/slog"

	"github.com/syssam/sphinx/dialect/sphinxql"
)

type options struct {
	sql    *sphinxql.SQL
	logger *slog.Logger
}

// Option configures an Indexer or a Searcher.
type Option func(*options)

// WithSQL sets the statement factory. It defaults to sphinxql.New().
func WithSQL(s *sphinxql.SQL) Option {
	return func(o *options) {
		if s != nil {
			o.sql = s
		}
	}
}

// WithLogger sets the logger used for statement tracing at debug level.
// It defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		sql:    sphinxql.New(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
