package sphinx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sphinxql"
	"github.com/syssam/sphinx/dialect/sql"
)

// Row is a result row keyed by column name. Text values are strings.
type Row map[string]any

// Warning is a row of SHOW WARNINGS.
type Warning struct {
	Level   string
	Code    int64
	Message string
}

// Searcher runs SELECT and SHOW statements.
//
//	s := sphinx.NewSearcher(drv)
//	rows, err := s.SearchWith(ctx, sphinxql.Select("id", "title").From("products").Match("phone").Limit(10))
//	meta, err := s.ShowMeta(ctx, "total%")
type Searcher struct {
	driver dialect.ExecQuerier
	sql    *sphinxql.SQL
	logger *slog.Logger
}

// NewSearcher returns a Searcher that runs statements on drv.
func NewSearcher(drv dialect.ExecQuerier, opts ...Option) *Searcher {
	o := newOptions(opts)
	return &Searcher{driver: drv, sql: o.sql, logger: o.logger}
}

// SQL returns the statement factory.
func (s *Searcher) SQL() *sphinxql.SQL { return s.sql }

// Search selects all columns of the documents matching where. A nil
// condition selects every document, up to the daemon's default limit.
func (s *Searcher) Search(ctx context.Context, index string, where sphinxql.SelectPredicate) ([]Row, error) {
	return s.SearchWith(ctx, s.sql.Select(index).Apply(where))
}

// SearchWith runs a prepared SELECT statement.
func (s *Searcher) SearchWith(ctx context.Context, stmt *sphinxql.Selector) ([]Row, error) {
	rows, err := s.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	maps, err := sql.ScanMaps(rows)
	if err != nil {
		return nil, NewStatementError(stmt.Kind().String(), stmt.Index(), err)
	}
	out := make([]Row, len(maps))
	for i, m := range maps {
		out[i] = m
	}
	return out, nil
}

// Get returns the document with the given id. It returns a *NotFoundError
// when the index has no such document.
func (s *Searcher) Get(ctx context.Context, index string, id int64) (Row, error) {
	rows, err := s.SearchWith(ctx, s.sql.Select(index).Where(sql.EQ("id", id)).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, NewNotFoundError(index, id)
	}
	return rows[0], nil
}

// ShowMeta returns the metadata of the last search in the session,
// optionally filtered by a LIKE pattern.
func (s *Searcher) ShowMeta(ctx context.Context, like string) (map[string]string, error) {
	return s.pairs(ctx, s.sql.Show(sphinxql.ShowMeta).Like(like))
}

// ShowStatus returns the daemon counters, optionally filtered by a LIKE
// pattern.
func (s *Searcher) ShowStatus(ctx context.Context, like string) (map[string]string, error) {
	return s.pairs(ctx, s.sql.Show(sphinxql.ShowStatus).Like(like))
}

// ShowTables returns the served indexes and their types.
func (s *Searcher) ShowTables(ctx context.Context, like string) (map[string]string, error) {
	return s.pairs(ctx, s.sql.Show(sphinxql.ShowTables).Like(like))
}

// ShowWarnings returns the warnings of the last statement in the session.
func (s *Searcher) ShowWarnings(ctx context.Context) (_ []Warning, rerr error) {
	stmt := s.sql.Show(sphinxql.ShowWarnings)
	rows, err := s.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { rerr = errors.Join(rerr, rows.Close()) }()
	var ws []Warning
	for rows.Next() {
		var w Warning
		if err := rows.Scan(&w.Level, &w.Code, &w.Message); err != nil {
			return nil, NewStatementError(stmt.Kind().String(), "", fmt.Errorf("scan warning: %w", err))
		}
		ws = append(ws, w)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStatementError(stmt.Kind().String(), "", err)
	}
	return ws, nil
}

// pairs scans a two-column result, such as SHOW META, into a map.
func (s *Searcher) pairs(ctx context.Context, stmt *sphinxql.ShowBuilder) (_ map[string]string, rerr error) {
	rows, err := s.query(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer func() { rerr = errors.Join(rerr, rows.Close()) }()
	out := make(map[string]string)
	for rows.Next() {
		var k, v sql.NullString
		if err := rows.Scan(&k, &v); err != nil {
			return nil, NewStatementError(stmt.Kind().String(), "", fmt.Errorf("scan %s: %w", stmt.Target(), err))
		}
		out[k.String] = v.String
	}
	if err := rows.Err(); err != nil {
		return nil, NewStatementError(stmt.Kind().String(), "", err)
	}
	return out, nil
}

func (s *Searcher) query(ctx context.Context, stmt sphinxql.Statement) (*sql.Rows, error) {
	op, index := stmt.Kind().String(), stmt.Index()
	query, args, err := s.sql.Render(stmt)
	if err != nil {
		return nil, NewStatementError(op, index, err)
	}
	s.logger.DebugContext(ctx, "sphinx: query", "op", op, "index", index, "query", query, "args", args)
	rows := &sql.Rows{}
	if err := s.driver.Query(ctx, query, args, rows); err != nil {
		return nil, NewStatementError(op, index, err)
	}
	return rows, nil
}
