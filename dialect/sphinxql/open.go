package sphinxql

import (
	stdsql "database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sql"
)

// Open opens a connection pool to a searchd mysql41 listener.
//
//	drv, err := sphinxql.Open("tcp(127.0.0.1:9306)/")
//
// searchd does not support server-side prepared statements, so arguments
// are always interpolated by the client.
func Open(dsn string) (*sql.Driver, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("sphinxql: parse dsn: %w", err)
	}
	cfg.InterpolateParams = true
	conn, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("sphinxql: connector: %w", err)
	}
	return OpenDB(stdsql.OpenDB(conn)), nil
}

// OpenDB wraps an existing pool with a SphinxQL driver. The pool must
// interpolate parameters on the client.
func OpenDB(db *stdsql.DB) *sql.Driver {
	return sql.OpenDB(dialect.SphinxQL, db)
}
