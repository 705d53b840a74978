package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogo/internal/config"
	logpkg "github.com/kailas-cloud/catalogo/internal/logger"
)

// runtimeEnv is filled by the root command before any subcommand runs.
type runtimeEnv struct {
	configPath string
	env        string
	cfg        config.Config
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtimeEnv{}

	cmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Specimen catalog search service",
		Long: `Catalogo serves a read-only biological specimen catalog: paginated
listings, free-text and field-by-field search, and a detail page per specimen.

Configuration is read from config/<ENV>.yaml (ENV defaults to local) after
loading an optional .env file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			return rt.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.logger != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&rt.configPath, "config", "c", "",
		"Path to a config file (overrides ENV lookup)")

	cmd.AddCommand(newServeCmd(rt))
	cmd.AddCommand(newCheckCmd(rt))

	return cmd
}

func (rt *runtimeEnv) load() error {
	rt.env = config.GetEnv()

	var err error
	if rt.configPath != "" {
		rt.cfg, err = config.LoadFile(rt.configPath)
	} else {
		rt.cfg, err = config.Load(rt.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rt.logger, err = logpkg.NewLogger(rt.env, rt.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	return nil
}
