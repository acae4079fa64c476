package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/syssam/sphinx"
	"github.com/syssam/sphinx/dialect"
	"github.com/syssam/sphinx/dialect/sphinxql"
	"github.com/syssam/sphinx/dialect/sql"
	"github.com/syssam/sphinx/internal/config"
)

// app holds the state shared by the commands. The driver is opened in the
// root PersistentPreRunE and closed in PersistentPostRunE.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
	drv     dialect.Driver
	stats   *sql.StatsDriver
	out     io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New(), out: os.Stdout}
	root := &cobra.Command{
		Use:   "sphinxctl",
		Short: "Write to and query Sphinx indexes over SphinxQL",
		Long: `sphinxctl executes SphinxQL statements against a searchd (or Manticore)
mysql41 listener. Settings are read from flags, SPHINXCTL_* environment
variables and sphinxctl.yaml, in that order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./sphinxctl.yaml)")
	flags.String("dsn", "", "searchd DSN, e.g. tcp(127.0.0.1:9306)/")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Bool("debug-sql", false, "log every statement")
	flags.Bool("stats", false, "print statement statistics on exit")
	_ = a.v.BindPFlag("searchd.dsn", flags.Lookup("dsn"))
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("log.debug_sql", flags.Lookup("debug-sql"))
	_ = a.v.BindPFlag("stats.enabled", flags.Lookup("stats"))

	root.AddCommand(
		newInsertCmd(a, false),
		newInsertCmd(a, true),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newTruncateCmd(a),
		newSearchCmd(a),
		newShowCmd(a),
		newApplyCmd(a),
		newSeedCmd(a),
	)
	return root
}

func (a *app) open() error {
	if err := config.ReadFile(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg
	lvl, _ := cfg.Log.SlogLevel()
	if cfg.Log.DebugSQL && lvl > slog.LevelDebug {
		lvl = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	drv, err := sphinxql.Open(cfg.Searchd.DSN)
	if err != nil {
		return err
	}
	db := drv.DB()
	db.SetMaxOpenConns(cfg.Searchd.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.Searchd.ConnMaxLifetime)

	a.drv = drv
	if cfg.Log.DebugSQL {
		a.drv = sql.NewDebugDriver(a.drv, a.logger)
	}
	if cfg.Stats.Enabled {
		a.stats = sql.NewStatsDriver(a.drv,
			sql.WithSlowThreshold(cfg.Stats.SlowThreshold),
			sql.WithSlowQueryLog(a.logger),
		)
		a.drv = a.stats
	}
	a.logger.Debug("opened searchd pool", "dsn", cfg.Searchd.DSN, "max_open_conns", cfg.Searchd.MaxOpenConns)
	return nil
}

func (a *app) close() error {
	if a.drv == nil {
		return nil
	}
	if a.stats != nil {
		fmt.Fprintln(a.out, color.New(color.FgCyan).Sprint("stats: ", a.stats.QueryStats().Stats()))
	}
	return a.drv.Close()
}

func (a *app) indexer() *sphinx.Indexer {
	return sphinx.NewIndexer(a.drv, sphinx.WithLogger(a.logger))
}

func (a *app) searcher() *sphinx.Searcher {
	return sphinx.NewSearcher(a.drv, sphinx.WithLogger(a.logger))
}

func (a *app) done(format string, args ...any) {
	fmt.Fprintln(a.out, color.New(color.FgGreen).Sprintf(format, args...))
}
