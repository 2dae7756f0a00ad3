package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/config"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:          "restaurant-floor",
		Short:        "Restaurant floor service: wait list, orders and checks",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "Path to YAML config (optional; config.yaml in the working directory is used if present)")
	cmd.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "Override log level: debug|info|warn|error")

	cmd.AddCommand(serveCmd(&f), kitchenCmd(&f), migrateCmd(&f))
	return cmd
}

// loadConfig resolves the config file and loads it. Without a file the
// defaults plus FLOOR_* environment variables are used.
func loadConfig(f *rootFlags) (*config.Config, error) {
	path := f.configPath
	if path == "" {
		found, err := config.FindConfig()
		switch {
		case err == nil:
			path = found
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	return cfg, nil
}

func newLogger(service string, cfg *config.Config) *logger.Logger {
	return logger.NewWithWriter(service, os.Stdout, cfg.Log.Level)
}
