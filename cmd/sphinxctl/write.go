package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/syssam/sphinx/dialect/sphinxql"
	"github.com/syssam/sphinx/internal/batch"
)

// parseDoc parses a YAML (or JSON) mapping of column values.
func parseDoc(s string) (map[string]any, error) {
	if s == "" {
		return nil, fmt.Errorf("--doc is required")
	}
	var m map[string]any
	if err := yaml.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("parse --doc: %w", err)
	}
	return batch.Values(m), nil
}

func newInsertCmd(a *app, replace bool) *cobra.Command {
	var doc string
	name, short, verb := "insert", "Insert a document", "inserted"
	if replace {
		name, short, verb = "replace", "Insert or replace a document", "replaced"
	}
	cmd := &cobra.Command{
		Use:     name + " INDEX",
		Short:   short,
		Example: "  sphinxctl " + name + " products --doc '{id: 1, title: phone, tags: [3, 7]}'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseDoc(doc)
			if err != nil {
				return err
			}
			ix := a.indexer()
			stmt := ix.SQL().Insert(args[0])
			if replace {
				stmt = ix.SQL().Replace(args[0])
			}
			res, err := ix.ExecWith(cmd.Context(), stmt.Values(values))
			if err != nil {
				return err
			}
			a.done("%s %d row(s), last id %d", verb, res.RowsAffected, res.LastInsertID)
			return nil
		},
	}
	cmd.Flags().StringVar(&doc, "doc", "", "document as a YAML or JSON mapping")
	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var doc, where string
	cmd := &cobra.Command{
		Use:     "update INDEX",
		Short:   "Update attributes of matching documents",
		Example: `  sphinxctl update products --doc '{price: 10}' --where 'id = 1'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseDoc(doc)
			if err != nil {
				return err
			}
			n, err := a.indexer().Update(cmd.Context(), args[0], values, sphinxql.Literal(where))
			if err != nil {
				return err
			}
			a.done("updated %d row(s)", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&doc, "doc", "", "attribute values as a YAML or JSON mapping")
	cmd.Flags().StringVar(&where, "where", "", "condition, written as-is into WHERE")
	_ = cmd.MarkFlagRequired("where")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:     "delete INDEX",
		Short:   "Delete matching documents",
		Example: `  sphinxctl delete products --where 'id IN (1, 2)'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.indexer().Delete(cmd.Context(), args[0], sphinxql.Literal(where))
			if err != nil {
				return err
			}
			a.done("deleted %d row(s)", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "condition, written as-is into WHERE")
	_ = cmd.MarkFlagRequired("where")
	return cmd
}

func newTruncateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "truncate INDEX",
		Short: "Remove every document from a real-time index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.indexer().Truncate(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.done("truncated %s", args[0])
			return nil
		},
	}
}
