package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/sphinx/internal/seed"
)

func newSeedCmd(a *app) *cobra.Command {
	var (
		fields []string
		opts   seed.Options
		rnd    int64
	)
	cmd := &cobra.Command{
		Use:     "seed INDEX",
		Short:   "Insert generated documents",
		Example: `  sphinxctl seed products --field title:sentence --field price:float --field tags:mva --count 1000`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := seed.ParseFields(fields)
			if err != nil {
				return err
			}
			if rnd == 0 {
				rnd = time.Now().UnixNano()
			}
			opts.Index = args[0]
			start := time.Now()
			n, err := seed.Run(cmd.Context(), a.indexer(), seed.NewGenerator(rnd, fs), opts)
			if err != nil {
				return err
			}
			a.done("seeded %d row(s) in %s", n, time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringArrayVar(&fields, "field", nil, "generated field as name:kind (word, sentence, paragraph, name, email, int, float, timestamp, bool, mva)")
	flags.IntVar(&opts.Count, "count", 100, "number of documents")
	flags.Int64Var(&opts.StartID, "start-id", 1, "id of the first document")
	flags.IntVar(&opts.Concurrency, "concurrency", 4, "concurrent inserts")
	flags.Int64Var(&rnd, "seed", 0, "random seed (default time based)")
	return cmd
}
