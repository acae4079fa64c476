// Package sql provides SQL query building primitives and a database/sql
// backed driver.
//
// The package is dialect-agnostic: it renders standard SQL and knows only
// about identifier quoting. Dialects with a restricted grammar, such as
// SphinxQL, read the builder model through Selector.Parts and render their
// own statements (see dialect/sphinxql).
//
// # Builder Types
//
//   - Builder: low-level SQL string builder with identifier quoting, argument
//     collection and error accumulation
//   - Selector: SELECT query builder with joins, predicates and pagination
//   - InsertBuilder: INSERT (or REPLACE) statement builder
//   - UpdateBuilder: UPDATE statement builder with SET and WHERE clauses
//   - DeleteBuilder: DELETE statement builder with WHERE predicates
//
// Builders never fail on construction. Errors are collected while rendering
// and reported by Err, or by Render which returns them alongside the query:
//
//	query, args, err := sql.Render(sql.Insert("users").Columns("id").Values(1))
//
// # Dialect Support
//
//	b := sql.Dialect(dialect.MySQL)
//	b.Select("id", "name").From(sql.Table("users")).Where(sql.EQ("status", "active"))
//	// SELECT `id`, `name` FROM `users` WHERE `status` = ?
//
// # Predicates
//
//	sql.EQ("name", "john")              // `name` = ?
//	sql.In("status", "active", "done")  // `status` IN (?, ?)
//	sql.Between("price", 10, 20)        // `price` BETWEEN ? AND ?
//	sql.Expr("id = ?", 2)               // id = ?
//	sql.InQuery("id", sub)              // `id` IN (SELECT ...)
//
// # Drivers
//
// Driver wraps *sql.DB and implements dialect.Driver. StatsDriver and
// DebugDriver decorate any dialect.Driver with statistics and slog logging.
package sql
