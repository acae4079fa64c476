// Package dialect provides the driver abstraction shared by the SQL builder
// and the SphinxQL dialect.
//
// Statements are rendered by dialect/sql (generic SQL) or dialect/sphinxql
// (the Sphinx search daemon's restricted grammar) and handed to a Driver for
// execution. The package itself has no knowledge of either grammar.
//
// # Dialect Constants
//
//	dialect.MySQL    = "mysql"
//	dialect.SphinxQL = "sphinxql"
//
// SphinxQL is spoken over the MySQL wire protocol, so both dialects share
// identifier quoting (backticks) and placeholders (?).
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The ExecQuerier interface is implemented by both Driver and Tx, and is all
// the facades in the root package need:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// # Usage
//
//	drv, err := sphinxql.Open("tcp(127.0.0.1:9306)/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
//	ix := sphinx.NewIndexer(drv)
//
// # Sub-packages
//
//   - dialect/sql: generic SQL builders and the database/sql backed driver
//   - dialect/sphinxql: SphinxQL statements, platform and connector
package dialect
