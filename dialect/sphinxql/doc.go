// Package sphinxql provides the SphinxQL dialect: statement builders for
// the restricted grammar of the Sphinx search daemon (and Manticore), the
// platform that renders them, and a connector for the daemon's mysql41
// listener.
//
//	q := sphinxql.Select("id", "title").
//		From("products").
//		Match("@title phone").
//		Where(sql.GT("price", 10)).
//		Limit(20).
//		Offset(40).
//		Option("ranker", "bm25")
//
//	// SELECT `id`, `title` FROM `products` WHERE (MATCH(?)) AND (`price` > ?) LIMIT 40, 20 OPTION ranker=bm25
//
// Statements report configuration errors, such as a missing index or an
// UPDATE without a condition, from Err and Platform.Render. Nothing is
// validated at construction time.
package sphinxql
