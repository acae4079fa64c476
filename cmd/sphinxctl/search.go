package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/sphinx/dialect/sphinxql"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		columns       []string
		match, where  string
		order         []string
		limit, offset int
		ranker        string
	)
	cmd := &cobra.Command{
		Use:     "search INDEX[,INDEX...]",
		Short:   "Search one or more indexes",
		Example: `  sphinxctl search products --match 'phone' --where 'price > 10' --order 'price DESC' --limit 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmt := sphinxql.Select(columns...).From(strings.Split(args[0], ",")...)
			if match != "" {
				stmt.Match(match)
			}
			stmt.Apply(sphinxql.Literal(where)).OrderBy(order...)
			if limit > 0 {
				stmt.Limit(limit)
			}
			if offset > 0 {
				stmt.Offset(offset)
			}
			if ranker != "" {
				stmt.Option("ranker", ranker)
			}
			rows, err := a.searcher().SearchWith(cmd.Context(), stmt)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(rows)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, string(out))
			fmt.Fprintln(a.out, color.New(color.FgGreen).Sprintf("%d row(s)", len(rows)))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringSliceVar(&columns, "columns", nil, "columns to select (default all)")
	flags.StringVar(&match, "match", "", "full-text query")
	flags.StringVar(&where, "where", "", "additional condition, written as-is")
	flags.StringSliceVar(&order, "order", nil, "ORDER BY terms, e.g. 'price DESC'")
	flags.IntVar(&limit, "limit", 0, "maximum number of rows")
	flags.IntVar(&offset, "offset", 0, "number of rows to skip")
	flags.StringVar(&ranker, "ranker", "", "ranker option, e.g. bm25")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var like string
	cmd := &cobra.Command{
		Use:       "show status|tables",
		Short:     "Show daemon counters or served indexes",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"status", "tables"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := a.searcher()
			var (
				vars map[string]string
				err  error
			)
			switch args[0] {
			case "status":
				vars, err = s.ShowStatus(cmd.Context(), like)
			case "tables":
				vars, err = s.ShowTables(cmd.Context(), like)
			default:
				return fmt.Errorf("unknown show target %q", args[0])
			}
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(vars)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&like, "like", "", "LIKE pattern, e.g. 'query%'")
	return cmd
}
