package sphinx

import (
	"context"
	"errors"
	"log/slog"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sphinxql"
	"github.com/syssam/sphinx/dialect/sql"
)

// Result is the outcome of a write statement.
type Result struct {
	// RowsAffected is the count reported by the daemon, unchanged.
	RowsAffected int64
	// LastInsertID is the last generated document id. It is set for
	// INSERT and REPLACE statements only.
	LastInsertID int64
}

// Indexer writes documents to indexes. Every call builds one statement,
// executes it once and returns the affected-row count reported by the
// daemon.
//
// Render and driver failures are returned wrapped in a *StatementError that
// names the operation and index. The wrapped error is reachable with
// errors.Is and errors.As, so driver errors such as *mysql.MySQLError and
// the sphinxql sentinel errors still match.
//
//	ix := sphinx.NewIndexer(drv)
//	n, err := ix.Insert(ctx, "products", map[string]any{"id": 1, "title": "phone"})
//	n, err = ix.Update(ctx, "products", map[string]any{"price": 10}, sphinxql.Literal("id = 1"))
type Indexer struct {
	driver dialect.ExecQuerier
	sql    *sphinxql.SQL
	logger *slog.Logger
}

// NewIndexer returns an Indexer that executes statements on drv.
func NewIndexer(drv dialect.ExecQuerier, opts ...Option) *Indexer {
	o := newOptions(opts)
	return &Indexer{driver: drv, sql: o.sql, logger: o.logger}
}

// Driver returns the underlying driver.
func (ix *Indexer) Driver() dialect.ExecQuerier { return ix.driver }

// SQL returns the statement factory.
func (ix *Indexer) SQL() *sphinxql.SQL { return ix.sql }

// Insert inserts a document into the index.
func (ix *Indexer) Insert(ctx context.Context, index string, values map[string]any) (int64, error) {
	return ix.insert(ctx, index, values, false)
}

// Replace inserts a document into the index, replacing the document with
// the same id if there is one.
func (ix *Indexer) Replace(ctx context.Context, index string, values map[string]any) (int64, error) {
	return ix.insert(ctx, index, values, true)
}

func (ix *Indexer) insert(ctx context.Context, index string, values map[string]any, replace bool) (int64, error) {
	stmt := ix.sql.Insert(index)
	if replace {
		stmt = ix.sql.Replace(index)
	}
	return ix.InsertWith(ctx, stmt.Values(values))
}

// InsertWith executes a prepared INSERT or REPLACE statement.
func (ix *Indexer) InsertWith(ctx context.Context, stmt *sphinxql.InsertBuilder) (int64, error) {
	return ix.affected(ctx, stmt)
}

// Update sets attribute values on the documents matching where. The
// condition is a sphinxql.Literal, a sphinxql.UpdateFunc or a
// sphinxql.Filter. A nil condition fails with sphinxql.ErrMissingWhere
// and nothing is sent to the daemon.
func (ix *Indexer) Update(ctx context.Context, index string, values map[string]any, where sphinxql.UpdatePredicate) (int64, error) {
	return ix.UpdateWith(ctx, ix.sql.Update(index).Set(values).Where(where))
}

// UpdateWith executes a prepared UPDATE statement.
func (ix *Indexer) UpdateWith(ctx context.Context, stmt *sphinxql.UpdateBuilder) (int64, error) {
	return ix.affected(ctx, stmt)
}

// Delete removes the documents matching where from the index.
func (ix *Indexer) Delete(ctx context.Context, index string, where sphinxql.DeletePredicate) (int64, error) {
	return ix.DeleteWith(ctx, ix.sql.Delete(index).Where(where))
}

// DeleteWith executes a prepared DELETE statement.
func (ix *Indexer) DeleteWith(ctx context.Context, stmt *sphinxql.DeleteBuilder) (int64, error) {
	return ix.affected(ctx, stmt)
}

// Truncate removes every document from a real-time index.
func (ix *Indexer) Truncate(ctx context.Context, index string) error {
	_, err := ix.ExecWith(ctx, ix.sql.Truncate(index))
	return err
}

func (ix *Indexer) affected(ctx context.Context, stmt sphinxql.Statement) (int64, error) {
	res, err := ix.ExecWith(ctx, stmt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// ExecWith renders and executes a write statement.
func (ix *Indexer) ExecWith(ctx context.Context, stmt sphinxql.Statement) (Result, error) {
	if stmt == nil {
		return Result{}, NewStatementError("exec", "", errors.New("nil statement"))
	}
	op, index := stmt.Kind().String(), stmt.Index()
	query, args, err := ix.sql.Render(stmt)
	if err != nil {
		return Result{}, NewStatementError(op, index, err)
	}
	ix.logger.DebugContext(ctx, "sphinx: exec", "op", op, "index", index, "query", query, "args", args)
	var res sql.Result
	if err := ix.driver.Exec(ctx, query, args, &res); err != nil {
		return Result{}, NewStatementError(op, index, err)
	}
	var r Result
	if r.RowsAffected, err = res.RowsAffected(); err != nil {
		return Result{}, NewStatementError(op, index, err)
	}
	if k := stmt.Kind(); k == sphinxql.KindInsert || k == sphinxql.KindReplace {
		if r.LastInsertID, err = res.LastInsertId(); err != nil {
			return Result{}, NewStatementError(op, index, err)
		}
	}
	return r, nil
}
