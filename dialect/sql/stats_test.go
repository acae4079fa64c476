package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/syssam/sphinx/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var slow []string
	drv := NewStatsDriver(OpenDB(dialect.SphinxQL, db),
		WithSlowThreshold(-1),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			slow = append(slow, query)
		}),
	)
	assert.Equal(t, time.Duration(-1), drv.SlowThreshold())

	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(10, 5))
	var res Result
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO products (id) VALUES (?)", []any{1}, &res))

	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM products WHERE id = 1", []any{}, nil))

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT id FROM products", []any{}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectExec("UPDATE").WillReturnError(errors.New("unknown column"))
	require.Error(t, drv.Exec(context.Background(), "UPDATE products SET x = 1 WHERE id = 1", []any{}, &res))
	require.NoError(t, mock.ExpectationsWereMet())

	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), s.TotalQueries)
	assert.Equal(t, int64(3), s.TotalExecs)
	assert.Equal(t, int64(5), s.RowsAffected, "only results read through *Result are counted")
	assert.Equal(t, int64(1), s.Errors)
	assert.Equal(t, int64(4), s.SlowQueries)
	assert.Len(t, slow, 4)
	assert.Equal(t, map[string]int64{"INSERT": 1, "DELETE": 1, "SELECT": 1, "UPDATE": 1}, s.Verbs)
	assert.Contains(t, s.String(), "queries=1 execs=3 rows=5")
	assert.Contains(t, s.String(), "errors=1 delete=1 insert=1 select=1 update=1")

	drv.QueryStats().Reset()
	assert.Equal(t, StatsSnapshot{}, drv.QueryStats().Stats())
	assert.Equal(t, time.Duration(0), drv.QueryStats().Stats().AvgDuration())
}

func TestStatsDriverThreshold(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.SphinxQL, db))
	assert.Equal(t, 100*time.Millisecond, drv.SlowThreshold())
	drv.SetSlowThreshold(time.Hour)

	mock.ExpectExec("TRUNCATE").WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, drv.Exec(context.Background(), "TRUNCATE RTINDEX products", []any{}, nil))
	assert.Equal(t, int64(0), drv.QueryStats().Stats().SlowQueries)
}

func TestStatsTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.SphinxQL, db))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	var res Result
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO products (id) VALUES (1)", []any{}, &res))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), s.TotalExecs)
	assert.Equal(t, int64(1), s.RowsAffected)
	assert.Equal(t, map[string]int64{"INSERT": 1}, s.Verbs)
}

func TestSlowQueryLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	drv := NewStatsDriver(OpenDB(dialect.SphinxQL, db), WithSlowThreshold(-1), WithSlowQueryLog(logger))

	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, drv.Exec(context.Background(), "DELETE FROM products WHERE id = 1", []any{}, nil))
	assert.Contains(t, buf.String(), "slow statement detected")
	assert.Contains(t, buf.String(), "DELETE FROM products WHERE id = 1")
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := NewDebugDriver(OpenDB(dialect.SphinxQL, db), logger)
	assert.Equal(t, dialect.SphinxQL, drv.Dialect())

	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO products (id) VALUES (?)", []any{7}, nil))
	assert.Contains(t, buf.String(), "msg=exec")
	assert.Contains(t, buf.String(), "INSERT INTO products (id) VALUES (?)")

	buf.Reset()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()
	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	rows := &Rows{}
	require.NoError(t, tx.Query(context.Background(), "SELECT id FROM products", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), "begin transaction")
	assert.Contains(t, buf.String(), `msg="tx query"`)
	assert.Contains(t, buf.String(), "rollback transaction")
}

func TestVerb(t *testing.T) {
	tests := map[string]string{
		"SELECT * FROM products":         "SELECT",
		"  replace INTO products VALUES": "REPLACE",
		"\n\tSHOW META":                  "SHOW",
		"(SELECT 1)":                     "SELECT",
		"TRUNCATE RTINDEX rt":            "TRUNCATE",
		"COMMIT":                         "COMMIT",
		"":                               "",
	}
	for query, want := range tests {
		assert.Equal(t, want, Verb(query), query)
	}
}
