package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/syssam/sphinx/internal/batch"
)

func newApplyCmd(a *app) *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply a YAML file of write operations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := batch.ReadFile(args[0])
			if err != nil {
				return err
			}
			rep, err := batch.Apply(cmd.Context(), a.indexer(), f, keepGoing)
			c := color.New(color.FgGreen)
			if rep.Failed > 0 {
				c = color.New(color.FgYellow)
			}
			c.Fprintf(a.out, "applied %d operation(s), %d failed, %d row(s) affected\n", rep.Applied, rep.Failed, rep.RowsAffected)
			return err
		},
	}
	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue after a failed operation")
	return cmd
}
