package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/biyonik/sql-composer/internal/config"
	"github.com/biyonik/sql-composer/internal/logging"
)

// app, PersistentPreRunE içinde doldurulan ve alt komutların paylaştığı
// durumdur.
type app struct {
	cfg        *config.Config
	configPath string
	logger     zerolog.Logger

	cfgFile      string
	dialect      string
	placeholders string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "composer",
		Short: "Fluent SQL statement composer",
		Long: `composer - Fluent SQL statement composer

Builds SELECT, INSERT, UPDATE and DELETE statements from flags, quoting
identifiers and literals for the selected dialect. With --exec the statement
is run against the configured database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return a.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./composer.yaml if present)")
	flags.StringVar(&a.dialect, "dialect", "", "identifier/literal dialect: plain, ansi, mysql, postgres")
	flags.StringVar(&a.placeholders, "placeholders", "", "parameter style: inline, question, dollar, colon")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides log.level)")

	root.AddCommand(
		newSelectCmd(a),
		newInsertCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, path, err := config.Load(a.cfgFile)
	if err != nil {
		return configError("loading configuration", err)
	}

	if a.dialect != "" {
		cfg.Dialect = a.dialect
	}
	if a.placeholders != "" {
		cfg.Placeholders = a.placeholders
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return configError("validating flags", err)
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return configError("configuring logger", err)
	}

	a.cfg, a.configPath, a.logger = cfg, path, logger
	return nil
}

// Execute, kök komutu çalıştırır.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		exitWithError(err)
	}
}
