package nutri

import (
	"fmt"
	"os"
	"strings"

	"github.com/nelsoncalle/nutricion/internal/config"
	"github.com/nelsoncalle/nutricion/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dbPath   string
	logLevel string
	cfg      *config.Config
)

var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:           "nutri",
	Short:         "nutri records weight, meals and workouts in a local database",
	Long:          "nutri is a local-first tracker for body weight, food intake and exercise with daily calorie rollups.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if strings.TrimSpace(dbPath) != "" {
			loaded.DBPath = dbPath
		}
		if strings.TrimSpace(logLevel) != "" {
			loaded.LogLevel = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		l, err := logging.New(logging.Config{Env: loaded.Env, Level: loaded.LogLevel})
		if err != nil {
			return err
		}
		cfg = loaded
		logger = l
		logger.Debug("configuration loaded", zap.String("db", cfg.DBPath), zap.String("env", cfg.Env))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync(logger)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides "+config.EnvDBPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides "+config.EnvLogLevel+")")
}
