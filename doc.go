// Package sphinx provides facades for writing to and searching the indexes
// of a Sphinx or Manticore search daemon over SphinxQL.
//
//	drv, err := sphinxql.Open("tcp(127.0.0.1:9306)/")
//	if err != nil {
//		return err
//	}
//	defer drv.Close()
//
//	ix := sphinx.NewIndexer(drv)
//	if _, err := ix.Insert(ctx, "products", map[string]any{"id": 1, "title": "phone", "tags": []int64{3, 7}}); err != nil {
//		return err
//	}
//	n, err := ix.Update(ctx, "products", map[string]any{"price": 10}, sphinxql.UpdateFunc(func(u *sphinxql.UpdateBuilder) {
//		u.WhereP(sql.EQ("id", 1))
//	}))
//
// Statements are built with the dialect/sphinxql package and rendered by its
// platform; the facades only execute them and report affected rows.
package sphinx
