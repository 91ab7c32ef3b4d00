package main

import (
	"fmt"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tupyy/jobsystem/internal/config"
)

const envPrefix = "JOBSYS"

var (
	cfg        = config.NewConfigurationWithOptionsAndDefaults()
	configFile string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jobsys",
		Short: "Work-stealing job system",
		Long: `jobsys runs synthetic workloads on a work-stealing job system.

Every flag can also be set from the environment with the JOBSYS_ prefix,
for example JOBSYS_WORKERS=8 or JOBSYS_LOG_LEVEL=debug, or from a config
file keyed by flag name. Flags win over the environment, which wins over
the config file.`,
		PersistentPreRunE: cobrautil.CommandStack(
			cobrautil.SyncViperPreRunE(envPrefix),
			loadConfigFile,
			setupLogger,
		),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console, json)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newVersionCmd(),
	)

	return root
}

func registerSchedulerFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&cfg.Scheduler.NumWorkers, "workers", cfg.Scheduler.NumWorkers, "Number of workers (0 means one per CPU)")
	cmd.Flags().StringVar(&cfg.Scheduler.Placement, "placement", cfg.Scheduler.Placement, "Queue placement for external submissions (round-robin, shortest-queue)")
	cmd.Flags().StringVar(&cfg.Scheduler.ShutdownMode, "shutdown-mode", cfg.Scheduler.ShutdownMode, "Shutdown mode (graceful, immediate)")
	cmd.Flags().StringVar(&cfg.Store.DataFolder, "data-folder", cfg.Store.DataFolder, "Folder holding the run history database (empty keeps it in memory)")
}

// loadConfigFile sets every flag not already set on the command line or
// from the environment from the config file.
func loadConfigFile(cmd *cobra.Command, _ []string) error {
	if configFile == "" {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		if setErr := cmd.Flags().Set(f.Name, v.GetString(f.Name)); setErr != nil {
			err = fmt.Errorf("invalid value for %s in %s: %w", f.Name, configFile, setErr)
		}
	})
	return err
}

func setupLogger(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func newLogger(format, level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var zcfg zap.Config
	switch format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'console' or 'json'", format)
	}
	zcfg.Level = lvl

	return zcfg.Build()
}
